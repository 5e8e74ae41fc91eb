// Package notify announces refreshed sensor catalogs over MQTT.
package notify

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	mqtt "github.com/eclipse/paho.mqtt.golang"
	"github.com/sguter90/sensormaestro/pkg/models"
	"go.uber.org/zap"
)

const (
	defaultTopicPrefix = "sensormaestro"
	defaultTimeout     = 10 * time.Second
)

// Config holds the MQTT connection settings
type Config struct {
	Broker      string
	ClientID    string
	Username    string
	Password    string
	TopicPrefix string
	QoS         byte
	Timeout     time.Duration
}

// Enabled reports whether a broker is configured
func (c Config) Enabled() bool {
	return c.Broker != ""
}

// Topic returns the retained topic catalog summaries are published to
func (c Config) Topic() string {
	prefix := strings.TrimSuffix(c.TopicPrefix, "/")
	if prefix == "" {
		prefix = defaultTopicPrefix
	}
	return prefix + "/catalog"
}

// Publisher publishes catalog summaries as retained JSON messages
type Publisher struct {
	client  mqtt.Client
	topic   string
	qos     byte
	timeout time.Duration
	logger  *zap.SugaredLogger
}

// NewPublisher connects to the configured broker
func NewPublisher(cfg Config, logger *zap.SugaredLogger) (*Publisher, error) {
	if !cfg.Enabled() {
		return nil, fmt.Errorf("no MQTT broker configured")
	}
	if logger == nil {
		logger = zap.NewNop().Sugar()
	}

	clientID := cfg.ClientID
	if clientID == "" {
		clientID = fmt.Sprintf("sensormaestro-%d", time.Now().UnixNano())
	}

	opts := mqtt.NewClientOptions()
	opts.AddBroker(brokerURL(cfg.Broker))
	opts.SetClientID(clientID)
	opts.SetCleanSession(true)
	opts.SetAutoReconnect(true)
	if cfg.Username != "" {
		opts.SetUsername(cfg.Username)
		opts.SetPassword(cfg.Password)
	}
	opts.SetOnConnectHandler(func(client mqtt.Client) {
		logger.Infow("Connected to MQTT broker", "broker", cfg.Broker)
	})
	opts.SetConnectionLostHandler(func(client mqtt.Client, err error) {
		logger.Warnw("Lost connection to MQTT broker", "broker", cfg.Broker, "error", err)
	})

	client := mqtt.NewClient(opts)
	p := newPublisher(client, cfg, logger)

	token := client.Connect()
	if !token.WaitTimeout(p.timeout) {
		return nil, fmt.Errorf("timed out connecting to MQTT broker %s", cfg.Broker)
	}
	if err := token.Error(); err != nil {
		return nil, fmt.Errorf("failed to connect to MQTT broker: %w", err)
	}

	return p, nil
}

func newPublisher(client mqtt.Client, cfg Config, logger *zap.SugaredLogger) *Publisher {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	return &Publisher{
		client:  client,
		topic:   cfg.Topic(),
		qos:     cfg.QoS,
		timeout: timeout,
		logger:  logger,
	}
}

// Publish sends summary as a retained message
func (p *Publisher) Publish(ctx context.Context, summary models.CatalogSummary) error {
	payload, err := json.Marshal(summary)
	if err != nil {
		return fmt.Errorf("failed to serialize catalog summary: %w", err)
	}

	token := p.client.Publish(p.topic, p.qos, true, payload)

	timer := time.NewTimer(p.timeout)
	defer timer.Stop()

	select {
	case <-token.Done():
	case <-ctx.Done():
		return fmt.Errorf("publish to %s aborted: %w", p.topic, ctx.Err())
	case <-timer.C:
		return fmt.Errorf("timed out publishing to %s", p.topic)
	}

	if err := token.Error(); err != nil {
		return fmt.Errorf("failed to publish to topic %s: %w", p.topic, err)
	}

	p.logger.Debugw("Published catalog summary", "topic", p.topic, "id", summary.ID)
	return nil
}

// Close disconnects from the broker
func (p *Publisher) Close() {
	p.client.Disconnect(250)
}

// brokerURL adds the tcp scheme to bare host:port addresses
func brokerURL(broker string) string {
	if strings.Contains(broker, "://") {
		return broker
	}
	return "tcp://" + broker
}
