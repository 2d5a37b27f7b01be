// Package handlerwrapper adapts typed event handlers to Watermill. A handler
// receives a decoded payload and returns the follow-up events to publish;
// the wrapper owns decoding, tracing, correlation metadata and publishing.
package handlerwrapper

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/message/router/middleware"
	"go.opentelemetry.io/otel/trace"

	"github.com/dank-league/memebot/internal/observability/attr"
)

// Result is one event a handler wants published.
type Result struct {
	Topic   string
	Payload any
}

// Publisher is the outbound side of the event bus.
type Publisher interface {
	Publish(topic string, messages ...*message.Message) error
}

// WrapTyped wraps a typed transformation handler into a Watermill handler
// func. Payloads that fail to decode are acked and dropped: a poison message
// must never wedge the subscription.
func WrapTyped[T any](
	handlerName string,
	logger *slog.Logger,
	tracer trace.Tracer,
	publisher Publisher,
	handler func(ctx context.Context, payload *T) ([]Result, error),
) message.NoPublishHandlerFunc {
	return func(msg *message.Message) error {
		ctx := msg.Context()

		correlationID := middleware.MessageCorrelationID(msg)
		if correlationID == "" {
			correlationID = watermill.NewUUID()
		}

		ctx, span := tracer.Start(ctx, handlerName)
		defer span.End()

		var payload T
		if err := json.Unmarshal(msg.Payload, &payload); err != nil {
			span.RecordError(err)
			logger.ErrorContext(ctx, "Dropping undecodable message",
				attr.String("handler", handlerName),
				attr.String("message_id", msg.UUID),
				attr.String("correlation_id", correlationID),
				attr.Error(err),
			)
			return nil
		}

		results, err := handler(ctx, &payload)
		if err != nil {
			span.RecordError(err)
			logger.ErrorContext(ctx, "Handler failed",
				attr.String("handler", handlerName),
				attr.String("correlation_id", correlationID),
				attr.Error(err),
			)
			return err
		}

		for _, result := range results {
			out, err := NewResultMessage(correlationID, handlerName, result.Payload)
			if err != nil {
				span.RecordError(err)
				return err
			}
			if err := publisher.Publish(result.Topic, out); err != nil {
				span.RecordError(err)
				return fmt.Errorf("failed to publish %s from %s: %w", result.Topic, handlerName, err)
			}
			logger.DebugContext(ctx, "Published follow-up event",
				attr.String("handler", handlerName),
				attr.String("topic", result.Topic),
				attr.String("message_id", out.UUID),
				attr.String("correlation_id", correlationID),
			)
		}

		return nil
	}
}

// NewResultMessage builds a Watermill message carrying the JSON-encoded
// payload with correlation and provenance metadata set.
func NewResultMessage(correlationID, causedBy string, payload any) (*message.Message, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal payload from %s: %w", causedBy, err)
	}

	msg := message.NewMessage(watermill.NewUUID(), data)
	middleware.SetCorrelationID(correlationID, msg)
	msg.Metadata.Set("caused_by", causedBy)
	return msg, nil
}
