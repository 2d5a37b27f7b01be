package eventbus

import (
	"context"
	"log/slog"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
)

type inMemoryEventBus struct {
	pubsub *gochannel.GoChannel
}

// NewInMemoryEventBus creates a GoChannel-backed EventBus. Messages are
// delivered only within this process; used by tests and local development.
func NewInMemoryEventBus(logger *slog.Logger) EventBus {
	pubsub := gochannel.NewGoChannel(
		gochannel.Config{
			OutputChannelBuffer: 64,
		},
		watermill.NewSlogLogger(logger),
	)
	return &inMemoryEventBus{pubsub: pubsub}
}

func (eb *inMemoryEventBus) Publish(topic string, messages ...*message.Message) error {
	for _, msg := range messages {
		if msg.UUID == "" {
			msg.UUID = watermill.NewUUID()
		}
	}
	return eb.pubsub.Publish(topic, messages...)
}

func (eb *inMemoryEventBus) Subscribe(ctx context.Context, topic string) (<-chan *message.Message, error) {
	return eb.pubsub.Subscribe(ctx, topic)
}

func (eb *inMemoryEventBus) Close() error {
	return eb.pubsub.Close()
}
