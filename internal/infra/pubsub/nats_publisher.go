package pubsub

import (
	"context"
	"encoding/json"
	"log/slog"

	"soko/internal/domain/service"

	"github.com/nats-io/nats.go"
	"github.com/pkg/errors"
)

// natsPublisher implements EventPublisher on a NATS connection. Each event
// type maps to its own subject under the configured prefix so consumers can
// subscribe to "<prefix>.listing.sold" without filtering client-side.
type natsPublisher struct {
	conn          *nats.Conn
	subjectPrefix string
	logger        *slog.Logger
}

// NewNATSPublisher connects to the NATS server and returns a publisher.
func NewNATSPublisher(url, subjectPrefix string, logger *slog.Logger) (service.EventPublisher, error) {
	conn, err := nats.Connect(url,
		nats.MaxReconnects(-1),
		nats.RetryOnFailedConnect(true),
	)
	if err != nil {
		return nil, errors.Wrap(err, "failed to connect to NATS")
	}

	logger.Info("NATS publisher initialized", slog.String("url", url))

	return &natsPublisher{
		conn:          conn,
		subjectPrefix: subjectPrefix,
		logger:        logger,
	}, nil
}

// PublishListingEvent publishes an event to NATS.
func (p *natsPublisher) PublishListingEvent(_ context.Context, event *service.ListingEvent) error {
	data, err := json.Marshal(event)
	if err != nil {
		return errors.WithStack(err)
	}

	subject := string(event.Type)
	if p.subjectPrefix != "" {
		subject = p.subjectPrefix + "." + subject
	}

	if err := p.conn.Publish(subject, data); err != nil {
		return errors.Wrapf(err, "failed to publish to %s", subject)
	}

	p.logger.Debug("[NATS] Event published",
		slog.String("subject", subject),
		slog.String("listing_id", event.ListingID),
	)

	return nil
}

// Close drains pending messages and closes the connection.
func (p *natsPublisher) Close() error {
	if p.conn != nil {
		return errors.WithStack(p.conn.Drain())
	}

	return nil
}
