// Package consumer projects audit events read from Kafka into durable storage.
package consumer

import (
	"context"
	"log/slog"

	"github.com/twmb/franz-go/pkg/kgo"
)

// TopicHandler handles records from a specific topic.
type TopicHandler interface {
	Handle(ctx context.Context, record *kgo.Record) error
}

// Router dispatches records to topic-specific handlers.
type Router struct {
	handlers map[string]TopicHandler
	fallback TopicHandler
	logger   *slog.Logger
}

// NewRouter creates a topic router with an optional fallback handler.
func NewRouter(logger *slog.Logger, fallback TopicHandler) *Router {
	if logger == nil {
		logger = slog.Default()
	}
	return &Router{
		handlers: make(map[string]TopicHandler),
		fallback: fallback,
		logger:   logger,
	}
}

// Register adds a handler for a specific topic.
func (r *Router) Register(topic string, handler TopicHandler) {
	r.handlers[topic] = handler
}

// Handle routes the record to the handler registered for its topic.
func (r *Router) Handle(ctx context.Context, record *kgo.Record) error {
	handler, ok := r.handlers[record.Topic]
	if !ok {
		if r.fallback != nil {
			return r.fallback.Handle(ctx, record)
		}
		r.logger.Warn("no handler for topic, skipping record",
			"topic", record.Topic,
			"key", string(record.Key),
		)
		// committed so the record is not redelivered
		return nil
	}
	return handler.Handle(ctx, record)
}
