// Package fault classifies adapter and transport failures into the small set
// of error codes shown to the user and written to the diagnostic log.
package fault

import (
	"context"
	"errors"
	"io"
	"net"
	"net/url"
	"strings"
)

// Kind enumerates the error classes.
type Kind uint8

const (
	// None means no error is recorded.
	None Kind = iota
	// NoNetwork means the network capability is absent altogether.
	NoNetwork
	// NoWifi means the link exists but is not associated yet.
	NoWifi
	// NoCredentials means no SSID is configured.
	NoCredentials
	// WifiTimeout means the association deadline passed.
	WifiTimeout
	// Timeout is an endpoint request that ran out of time.
	Timeout
	// NetworkError is any other transport failure.
	NetworkError
	// DNSFailure is a failed host lookup.
	DNSFailure
	// ParseError is a response body the endpoint parser rejected.
	ParseError
	// AllEndpointsFailed means a whole sweep produced no date.
	AllEndpointsFailed
	// Other carries a free-form tag.
	Other
)

var kindNames = map[Kind]string{
	None:               "",
	NoNetwork:          "NO_NETWORK",
	NoWifi:             "NO_WIFI",
	NoCredentials:      "NO_CREDENTIALS",
	WifiTimeout:        "WIFI_TIMEOUT",
	Timeout:            "TIMEOUT",
	NetworkError:       "NETWORK_ERROR",
	DNSFailure:         "DNS_FAILURE",
	ParseError:         "PARSE_ERROR",
	AllEndpointsFailed: "ALL_ENDPOINTS_FAILED",
	Other:              "OTHER",
}

// Code is a classified error. The zero Code means "no error".
type Code struct {
	Kind Kind
	Tag  string
}

// Common codes.
var (
	Clear           = Code{}
	CodeNoNetwork   = Code{Kind: NoNetwork}
	CodeNoWifi      = Code{Kind: NoWifi}
	CodeNoCreds     = Code{Kind: NoCredentials}
	CodeWifiTimeout = Code{Kind: WifiTimeout}
	CodeTimeout     = Code{Kind: Timeout}
	CodeNetwork     = Code{Kind: NetworkError}
	CodeDNS         = Code{Kind: DNSFailure}
	CodeParse       = Code{Kind: ParseError}
	CodeAllFailed   = Code{Kind: AllEndpointsFailed}
)

// OtherCode builds an Other code with the given tag.
func OtherCode(tag string) Code {
	tag = strings.TrimSpace(tag)
	if tag == "" {
		tag = "unknown"
	}
	return Code{Kind: Other, Tag: tag}
}

// IsZero reports whether no error is recorded.
func (c Code) IsZero() bool {
	return c.Kind == None
}

// String returns the upper snake case token, e.g. ALL_ENDPOINTS_FAILED or
// OTHER:http_503. The zero Code renders as an empty string.
func (c Code) String() string {
	name := kindNames[c.Kind]
	if c.Kind == Other && c.Tag != "" {
		return name + ":" + c.Tag
	}
	return name
}

// Coder is implemented by errors that already know their classification.
type Coder interface {
	FaultCode() Code
}

// Classify converts err into a Code. It never panics and a nil error yields
// the zero Code.
func Classify(err error) Code {
	if err == nil {
		return Clear
	}

	var coder Coder
	if errors.As(err, &coder) {
		return coder.FaultCode()
	}

	if errors.Is(err, context.DeadlineExceeded) {
		return CodeTimeout
	}
	if errors.Is(err, context.Canceled) {
		return OtherCode("canceled")
	}

	var dnsErr *net.DNSError
	if errors.As(err, &dnsErr) {
		return CodeDNS
	}

	var netErr net.Error
	if errors.As(err, &netErr) {
		if netErr.Timeout() {
			return CodeTimeout
		}
		return CodeNetwork
	}

	var opErr *net.OpError
	var urlErr *url.Error
	if errors.As(err, &opErr) || errors.As(err, &urlErr) {
		return CodeNetwork
	}
	if errors.Is(err, io.ErrUnexpectedEOF) || errors.Is(err, io.EOF) {
		return CodeNetwork
	}

	return OtherCode("unknown")
}
