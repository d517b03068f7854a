package notify

import (
	"context"
	"errors"
	"fmt"
	"time"

	paho "github.com/eclipse/paho.mqtt.golang"

	"smarthub/internal/models"
)

const (
	connectTimeout       = 10 * time.Second
	connectRetryInterval = 5 * time.Second
	disconnectQuiesceMs  = 1000
)

var ErrPublishTimeout = errors.New("mqtt publish timeout")

// MQTTConfig selects the broker and topic.
type MQTTConfig struct {
	Broker   string
	ClientID string
	Topic    string
	Username string
	Password string
	Timeout  time.Duration // per-publish wait
}

// pahoClient is the subset of paho.Client used here.
type pahoClient interface {
	Publish(topic string, qos byte, retained bool, payload interface{}) paho.Token
	Disconnect(quiesce uint)
}

// MQTTPublisher publishes to an MQTT broker at QoS 0, not retained.
type MQTTPublisher struct {
	client  pahoClient
	topic   string
	timeout time.Duration
}

// NewMQTTPublisher connects to cfg.Broker. The client reconnects on its own
// after the initial connection succeeds.
func NewMQTTPublisher(cfg MQTTConfig) (*MQTTPublisher, error) {
	opts := paho.NewClientOptions().
		AddBroker(cfg.Broker).
		SetClientID(cfg.ClientID).
		SetAutoReconnect(true).
		SetConnectRetry(true).
		SetConnectRetryInterval(connectRetryInterval)
	if cfg.Username != "" {
		opts.SetUsername(cfg.Username)
		opts.SetPassword(cfg.Password)
	}

	client := paho.NewClient(opts)
	token := client.Connect()
	if !token.WaitTimeout(connectTimeout) {
		return nil, fmt.Errorf("connect to %s: timeout", cfg.Broker)
	}
	if err := token.Error(); err != nil {
		return nil, fmt.Errorf("connect to %s: %w", cfg.Broker, err)
	}
	return newMQTTPublisher(client, cfg.Topic, cfg.Timeout), nil
}

func newMQTTPublisher(client pahoClient, topic string, timeout time.Duration) *MQTTPublisher {
	if topic == "" {
		topic = DefaultTopic
	}
	if timeout <= 0 {
		timeout = 5 * time.Second
	}
	return &MQTTPublisher{client: client, topic: topic, timeout: timeout}
}

func (p *MQTTPublisher) Publish(ctx context.Context, r models.Reading) error {
	payload, err := FormatPayload(r)
	if err != nil {
		return fmt.Errorf("format payload: %w", err)
	}

	token := p.client.Publish(p.topic, 0, false, payload)
	timer := time.NewTimer(p.timeout)
	defer timer.Stop()

	select {
	case <-token.Done():
	case <-timer.C:
		return ErrPublishTimeout
	case <-ctx.Done():
		return ctx.Err()
	}
	if err := token.Error(); err != nil {
		return fmt.Errorf("publish: %w", err)
	}
	return nil
}

func (p *MQTTPublisher) Close() error {
	p.client.Disconnect(disconnectQuiesceMs)
	return nil
}
