// Package publish mirrors countdown frames to an MQTT broker so other
// displays on the network can show the same values.
package publish

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	mqtt "github.com/eclipse/paho.mqtt.golang"
	"github.com/rs/zerolog"

	"github.com/atarukun/home/internal/countdown"
)

// Publisher is the subset of mqtt.Client the renderer uses.
type Publisher interface {
	Publish(topic string, qos byte, retained bool, payload interface{}) mqtt.Token
}

// connectionState is implemented by mqtt.Client. Publishers without it are
// assumed to be connected.
type connectionState interface {
	IsConnectionOpen() bool
}

// Options configure the broker connection.
type Options struct {
	Broker   string // tcp://host:1883
	Topic    string
	ClientID string
	Username string
	Password string
	QoS      byte
	Retained bool
	// Wait bounds how long Render blocks on the broker acknowledging a
	// publish. Render does not publish, and so never waits, while the
	// connection is down.
	Wait time.Duration
}

const (
	defaultWait           = 2 * time.Second
	defaultConnectTimeout = 5 * time.Second
)

// Payload is the JSON document published for each frame.
type Payload struct {
	Status    countdown.Status `json:"status"`
	Days      *int             `json:"days,omitempty"`
	Date      string           `json:"date,omitempty"`
	ErrorCode string           `json:"error_code,omitempty"`
	Message   string           `json:"message"`
	At        time.Time        `json:"at"`
}

// NewPayload converts a frame to its wire form.
func NewPayload(d countdown.Display) Payload {
	p := Payload{
		Status:    d.Status,
		ErrorCode: d.ErrorCode,
		Message:   d.Message,
		At:        d.At.UTC(),
	}
	if d.HasDate {
		days := d.Days
		p.Days = &days
		p.Date = d.Date
	}
	return p
}

// MQTT is a countdown.Renderer that publishes each changed frame.
type MQTT struct {
	pub      Publisher
	client   mqtt.Client // set when Dial created the connection
	topic    string
	qos      byte
	retained bool
	wait     time.Duration
	log      zerolog.Logger

	last    countdown.Display
	hasLast bool
}

// New wraps an existing publisher.
func New(pub Publisher, opts Options, log zerolog.Logger) (*MQTT, error) {
	if pub == nil {
		return nil, errors.New("mqtt publisher is nil")
	}
	topic := strings.TrimSpace(opts.Topic)
	if topic == "" {
		return nil, errors.New("mqtt topic is empty")
	}
	if opts.QoS > 2 {
		return nil, fmt.Errorf("mqtt qos %d out of range", opts.QoS)
	}
	wait := opts.Wait
	if wait <= 0 {
		wait = defaultWait
	}
	return &MQTT{
		pub:      pub,
		topic:    topic,
		qos:      opts.QoS,
		retained: opts.Retained,
		wait:     wait,
		log:      log,
	}, nil
}

// Dial connects to the broker and returns a renderer that owns the
// connection. The client keeps reconnecting in the background, so an
// unreachable broker at start-up is logged rather than returned.
func Dial(opts Options, log zerolog.Logger) (*MQTT, error) {
	broker := strings.TrimSpace(opts.Broker)
	if broker == "" {
		return nil, errors.New("mqtt broker is empty")
	}

	clientOpts := mqtt.NewClientOptions().
		AddBroker(broker).
		SetClientID(clientID(opts.ClientID)).
		SetConnectTimeout(defaultConnectTimeout).
		SetAutoReconnect(true).
		SetConnectRetry(true).
		SetConnectionLostHandler(func(_ mqtt.Client, err error) {
			log.Warn().Err(err).Str("broker", broker).Msg("mqtt_connection_lost")
		}).
		SetOnConnectHandler(func(mqtt.Client) {
			log.Info().Str("broker", broker).Msg("mqtt_connected")
		})
	if opts.Username != "" {
		clientOpts.SetUsername(opts.Username)
		clientOpts.SetPassword(opts.Password)
	}

	client := mqtt.NewClient(clientOpts)
	if token := client.Connect(); !token.WaitTimeout(defaultConnectTimeout) {
		log.Warn().Str("broker", broker).Msg("mqtt_connect_pending")
	} else if err := token.Error(); err != nil {
		return nil, fmt.Errorf("connect mqtt broker: %w", err)
	}

	m, err := New(client, opts, log)
	if err != nil {
		client.Disconnect(250)
		return nil, err
	}
	m.client = client
	return m, nil
}

// Render implements countdown.Renderer. Frames identical to the previous
// one, apart from their timestamp, are not republished. While the broker is
// unreachable frames are dropped; the first frame after reconnecting is
// published because nothing was recorded as sent.
func (m *MQTT) Render(d countdown.Display) {
	if m.hasLast && d.Same(m.last) {
		return
	}
	if cs, ok := m.pub.(connectionState); ok && !cs.IsConnectionOpen() {
		if m.hasLast {
			m.log.Debug().Str("topic", m.topic).Msg("mqtt_offline_skip")
		}
		m.hasLast = false
		return
	}

	payload, err := json.Marshal(NewPayload(d))
	if err != nil {
		m.log.Error().Err(err).Msg("mqtt_marshal_failed")
		return
	}

	token := m.pub.Publish(m.topic, m.qos, m.retained, payload)
	if !token.WaitTimeout(m.wait) {
		m.log.Warn().Str("topic", m.topic).Dur("wait", m.wait).Msg("mqtt_publish_pending")
		return
	}
	if err := token.Error(); err != nil {
		m.log.Warn().Err(err).Str("topic", m.topic).Msg("mqtt_publish_failed")
		return
	}
	m.last = d
	m.hasLast = true
}

// Close disconnects a connection opened by Dial.
func (m *MQTT) Close() {
	if m == nil || m.client == nil {
		return
	}
	m.client.Disconnect(250)
}

func clientID(configured string) string {
	if id := strings.TrimSpace(configured); id != "" {
		return id
	}
	host, err := os.Hostname()
	if err != nil || host == "" {
		host = "christmas"
	}
	return fmt.Sprintf("christmas-%s-%d", host, os.Getpid())
}
