package handlerwrapper

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"testing"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/message/router/middleware"
	"go.opentelemetry.io/otel/trace/noop"

	"github.com/dank-league/memebot/internal/observability"
)

type testPayload struct {
	Name string `json:"name"`
}

type recordingPublisher struct {
	mu        sync.Mutex
	published map[string][]*message.Message
	err       error
}

func newRecordingPublisher() *recordingPublisher {
	return &recordingPublisher{published: make(map[string][]*message.Message)}
}

func (p *recordingPublisher) Publish(topic string, messages ...*message.Message) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.err != nil {
		return p.err
	}
	p.published[topic] = append(p.published[topic], messages...)
	return nil
}

func (p *recordingPublisher) topic(topic string) []*message.Message {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.published[topic]
}

func newMessage(t *testing.T, payload any, correlationID string) *message.Message {
	t.Helper()
	data, err := json.Marshal(payload)
	if err != nil {
		t.Fatal(err)
	}
	msg := message.NewMessage(watermill.NewUUID(), data)
	if correlationID != "" {
		middleware.SetCorrelationID(correlationID, msg)
	}
	return msg
}

func TestWrapTyped(t *testing.T) {
	logger := observability.NoOpLogger
	tracer := noop.NewTracerProvider().Tracer("test")

	t.Run("decodes payload and publishes results", func(t *testing.T) {
		publisher := newRecordingPublisher()
		handler := WrapTyped("test.handler", logger, tracer, publisher,
			func(ctx context.Context, payload *testPayload) ([]Result, error) {
				return []Result{{Topic: "out.topic", Payload: testPayload{Name: payload.Name + "!"}}}, nil
			})

		if err := handler(newMessage(t, testPayload{Name: "hi"}, "corr-1")); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		out := publisher.topic("out.topic")
		if len(out) != 1 {
			t.Fatalf("got %d published messages, want 1", len(out))
		}

		var result testPayload
		if err := json.Unmarshal(out[0].Payload, &result); err != nil {
			t.Fatal(err)
		}
		if result.Name != "hi!" {
			t.Errorf("got name %q, want hi!", result.Name)
		}
		if got := middleware.MessageCorrelationID(out[0]); got != "corr-1" {
			t.Errorf("got correlation ID %q, want corr-1", got)
		}
		if got := out[0].Metadata.Get("caused_by"); got != "test.handler" {
			t.Errorf("got caused_by %q, want test.handler", got)
		}
	})

	t.Run("acks undecodable payloads without calling the handler", func(t *testing.T) {
		publisher := newRecordingPublisher()
		called := false
		handler := WrapTyped("test.handler", logger, tracer, publisher,
			func(ctx context.Context, payload *testPayload) ([]Result, error) {
				called = true
				return nil, nil
			})

		msg := message.NewMessage(watermill.NewUUID(), []byte("{not json"))
		if err := handler(msg); err != nil {
			t.Errorf("got error %v, want nil for poison message", err)
		}
		if called {
			t.Error("handler called for undecodable payload")
		}
	})

	t.Run("propagates handler errors", func(t *testing.T) {
		publisher := newRecordingPublisher()
		handler := WrapTyped("test.handler", logger, tracer, publisher,
			func(ctx context.Context, payload *testPayload) ([]Result, error) {
				return nil, errors.New("boom")
			})

		if err := handler(newMessage(t, testPayload{}, "")); err == nil {
			t.Error("expected error")
		}
	})

	t.Run("propagates publish failures", func(t *testing.T) {
		publisher := newRecordingPublisher()
		publisher.err = errors.New("bus down")
		handler := WrapTyped("test.handler", logger, tracer, publisher,
			func(ctx context.Context, payload *testPayload) ([]Result, error) {
				return []Result{{Topic: "out.topic", Payload: testPayload{}}}, nil
			})

		if err := handler(newMessage(t, testPayload{}, "")); err == nil {
			t.Error("expected error")
		}
	})

	t.Run("assigns a correlation ID when missing", func(t *testing.T) {
		publisher := newRecordingPublisher()
		handler := WrapTyped("test.handler", logger, tracer, publisher,
			func(ctx context.Context, payload *testPayload) ([]Result, error) {
				return []Result{{Topic: "out.topic", Payload: testPayload{}}}, nil
			})

		if err := handler(newMessage(t, testPayload{}, "")); err != nil {
			t.Fatal(err)
		}
		out := publisher.topic("out.topic")
		if got := middleware.MessageCorrelationID(out[0]); got == "" {
			t.Error("published message has no correlation ID")
		}
	})
}
