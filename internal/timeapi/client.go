package timeapi

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/atarukun/home/internal/fault"
)

// Getter is the HTTP fetch capability consumed by the date fetch service.
// Implementations must honour timeout and return an error on transport
// failure or an unusable status.
type Getter interface {
	Get(ctx context.Context, url string, timeout time.Duration) ([]byte, error)
}

// Ensure Client implements Getter at compile time.
var _ Getter = (*Client)(nil)

// Client fetches endpoint bodies over HTTP.
type Client struct {
	http      *http.Client
	userAgent string
	maxBody   int64
}

const (
	defaultUserAgent = "christmas/0.1"
	defaultTimeout   = 3 * time.Second
	maxBodyBytes     = 64 * 1024
)

// StatusError reports an HTTP status >= 400.
type StatusError struct {
	URL    string
	Status int
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("api %s returned status %d", e.URL, e.Status)
}

// FaultCode classifies the status as an Other code tagged with it.
func (e *StatusError) FaultCode() fault.Code {
	return fault.OtherCode("http_" + strconv.Itoa(e.Status))
}

// NewClient builds a Client. A nil httpClient uses a fresh http.Client with
// no overall timeout; each Get applies its own.
func NewClient(httpClient *http.Client) *Client {
	if httpClient == nil {
		httpClient = &http.Client{}
	}
	return &Client{
		http:      httpClient,
		userAgent: defaultUserAgent,
		maxBody:   maxBodyBytes,
	}
}

// Get performs a GET against url bounded by timeout and returns the body.
func (c *Client) Get(ctx context.Context, url string, timeout time.Duration) ([]byte, error) {
	if c == nil {
		return nil, fmt.Errorf("client is nil")
	}
	if strings.TrimSpace(url) == "" {
		return nil, fmt.Errorf("url is empty")
	}
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", c.userAgent)

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("execute request: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode >= 400 {
		return nil, &StatusError{URL: url, Status: resp.StatusCode}
	}
	body, err := io.ReadAll(io.LimitReader(resp.Body, c.maxBody))
	if err != nil {
		return nil, fmt.Errorf("read response: %w", err)
	}
	return body, nil
}
