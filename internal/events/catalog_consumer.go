package events

import (
	"context"
	"encoding/json"
	"errors"

	kafkago "github.com/segmentio/kafka-go"
	"go.uber.org/zap"

	"github.com/northeast-trails/service-trip/internal/domain"
	"github.com/northeast-trails/service-trip/internal/domain/catalog"
	"github.com/northeast-trails/service-trip/internal/kafka"
)

// CatalogWriter applies content-pipeline changes to the place catalog.
type CatalogWriter interface {
	UpsertPlace(ctx context.Context, place catalog.Place) error
	RemovePlace(ctx context.Context, id string) error
}

// CatalogEventConsumer listens to content-pipeline catalog events and
// keeps the place catalog current.
type CatalogEventConsumer struct {
	consumer *kafka.Consumer
	service  CatalogWriter
	logger   *zap.Logger
}

// NewCatalogEventConsumer creates a new CatalogEventConsumer.
func NewCatalogEventConsumer(
	brokers []string,
	groupID string,
	service CatalogWriter,
	logger *zap.Logger,
) *CatalogEventConsumer {
	consumer := kafka.NewConsumer(brokers, groupID, TopicCatalogEvents, logger)
	return &CatalogEventConsumer{
		consumer: consumer,
		service:  service,
		logger:   logger,
	}
}

// Start begins consuming catalog events. This blocks until the context
// is cancelled.
func (c *CatalogEventConsumer) Start(ctx context.Context) error {
	return c.consumer.Consume(ctx, c.handleMessage)
}

// Close closes the underlying Kafka consumer.
func (c *CatalogEventConsumer) Close() error {
	return c.consumer.Close()
}

func (c *CatalogEventConsumer) handleMessage(ctx context.Context, msg kafkago.Message) error {
	var cloudEvent kafka.CloudEvent
	if err := json.Unmarshal(msg.Value, &cloudEvent); err != nil {
		c.logger.Error("failed to parse cloud event from catalog topic",
			zap.Error(err),
			zap.String("raw", string(msg.Value)),
		)
		return nil // Don't retry malformed messages
	}

	switch cloudEvent.Type {
	case CatalogPlaceUpserted:
		return c.handlePlaceUpserted(ctx, cloudEvent)
	case CatalogPlaceRemoved:
		return c.handlePlaceRemoved(ctx, cloudEvent)
	default:
		c.logger.Debug("ignoring unhandled catalog event type",
			zap.String("type", cloudEvent.Type),
		)
		return nil
	}
}

func (c *CatalogEventConsumer) handlePlaceUpserted(ctx context.Context, cloudEvent kafka.CloudEvent) error {
	var evt PlaceUpsertedEvent
	if err := cloudEvent.ParseData(&evt); err != nil {
		c.logger.Error("failed to parse PlaceUpsertedEvent data",
			zap.Error(err),
		)
		return nil // Don't retry malformed data
	}

	if err := c.service.UpsertPlace(ctx, evt.Place); err != nil {
		var validationErr *domain.ValidationError
		if errors.As(err, &validationErr) {
			c.logger.Warn("skipping invalid catalog place",
				zap.String("place_id", evt.Place.ID),
				zap.Error(err),
			)
			return nil
		}
		c.logger.Error("failed to upsert catalog place",
			zap.String("place_id", evt.Place.ID),
			zap.Error(err),
		)
		return err
	}
	return nil
}

func (c *CatalogEventConsumer) handlePlaceRemoved(ctx context.Context, cloudEvent kafka.CloudEvent) error {
	var evt PlaceRemovedFromCatalogEvent
	if err := cloudEvent.ParseData(&evt); err != nil {
		c.logger.Error("failed to parse PlaceRemovedFromCatalogEvent data",
			zap.Error(err),
		)
		return nil // Don't retry malformed data
	}

	if err := c.service.RemovePlace(ctx, evt.PlaceID); err != nil {
		c.logger.Error("failed to remove catalog place",
			zap.String("place_id", evt.PlaceID),
			zap.Error(err),
		)
		return err
	}
	return nil
}
