package jetstream

import (
	"context"
	"fmt"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/nats-io/nats.go"
	"go.uber.org/zap"

	"github.com/namehaus/registrar/internal/adapter"
	"github.com/namehaus/registrar/internal/domain"
	"github.com/namehaus/registrar/internal/logger"
	"github.com/namehaus/registrar/internal/messaging"
)

// Config holds the configuration for the NATS JetStream connection
type Config struct {
	URL            string
	StreamName     string
	MaxReconnects  int
	ReconnectWait  time.Duration
	ConnectionName string
	// PublishMaxElapsed bounds the publish retry window; zero disables retries
	PublishMaxElapsed time.Duration
}

type publisher struct {
	nc         adapter.NatsConn
	js         adapter.JetStream
	streamName string
	json       adapter.JSON
	maxElapsed time.Duration
}

// NewPublisher creates a new NATS JetStream publisher for registrar events
func NewPublisher(cfg Config, natsJS adapter.NatsJetStream, jsonAdapter adapter.JSON) (messaging.Publisher, error) {
	opts := []nats.Option{
		nats.Name(cfg.ConnectionName),
		nats.MaxReconnects(cfg.MaxReconnects),
		nats.ReconnectWait(cfg.ReconnectWait),
		nats.DisconnectErrHandler(func(nc *nats.Conn, err error) {
			if err != nil {
				logger.Error(err, zap.String("message", "Disconnected from NATS"))
			}
		}),
		nats.ReconnectHandler(func(nc *nats.Conn) {
			logger.Info("Reconnected to NATS", zap.String("url", nc.ConnectedUrl()))
		}),
		nats.ClosedHandler(func(nc *nats.Conn) {
			logger.Info("NATS connection closed")
		}),
	}

	nc, js, err := natsJS.Connect(cfg.URL, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to NATS and create JetStream: %w", err)
	}

	return &publisher{
		nc:         nc,
		js:         js,
		streamName: cfg.StreamName,
		json:       jsonAdapter,
		maxElapsed: cfg.PublishMaxElapsed,
	}, nil
}

// PublishEvent publishes a registrar event to NATS JetStream, retrying
// transient failures with exponential backoff.
func (p *publisher) PublishEvent(ctx context.Context, event domain.Event) error {
	logger.Debug("Publishing NATS event", zap.Any("event", event))

	data, err := p.json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to marshal event: %w", err)
	}

	subject := p.buildSubject(event)

	publish := func() error {
		_, err := p.js.Publish(ctx, subject, data)
		return err
	}

	if p.maxElapsed <= 0 {
		if err := publish(); err != nil {
			return fmt.Errorf("failed to publish event: %w", err)
		}
		return nil
	}

	policy := backoff.NewExponentialBackOff()
	policy.MaxElapsedTime = p.maxElapsed
	if err := backoff.Retry(publish, backoff.WithContext(policy, ctx)); err != nil {
		return fmt.Errorf("failed to publish event: %w", err)
	}
	return nil
}

// buildSubject constructs the NATS subject for an event.
// Format: registrar.{namespace}.{event_type}, e.g. registrar.haus.domain_registered
func (p *publisher) buildSubject(event domain.Event) string {
	namespace := event.Namespace
	if namespace == "" {
		namespace = "factory"
	}
	return fmt.Sprintf("registrar.%s.%s", namespace, event.Type)
}

// Close closes the NATS connection
func (p *publisher) Close() {
	if p.nc == nil {
		return
	}

	p.nc.Close()
}
