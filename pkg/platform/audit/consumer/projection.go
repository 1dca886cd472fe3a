package consumer

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/twmb/franz-go/pkg/kgo"

	audit "vetting/pkg/platform/audit"
	kafkastore "vetting/pkg/platform/audit/store/kafka"
)

// ProjectionHandler copies audit records into a store, typically PostgreSQL.
type ProjectionHandler struct {
	store  audit.Store
	logger *slog.Logger
}

// NewProjectionHandler creates a handler that appends decoded events to store.
func NewProjectionHandler(store audit.Store, logger *slog.Logger) *ProjectionHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return &ProjectionHandler{store: store, logger: logger}
}

// Handle decodes and stores one record. Malformed records are logged and
// skipped; store failures are returned so the offset is not committed.
func (h *ProjectionHandler) Handle(ctx context.Context, record *kgo.Record) error {
	event, err := kafkastore.Decode(record.Value)
	if err != nil {
		h.logger.Error("skipping malformed audit record",
			"topic", record.Topic,
			"partition", record.Partition,
			"offset", record.Offset,
			"error", err,
		)
		return nil
	}
	if event.ID == "" || event.Subject == "" {
		h.logger.Error("skipping audit record without id or subject",
			"offset", record.Offset,
			"action", event.Action,
		)
		return nil
	}

	if err := h.store.Append(ctx, event); err != nil {
		return fmt.Errorf("store audit event %s: %w", event.ID, err)
	}
	h.logger.Debug("projected audit event",
		"event_id", event.ID,
		"action", event.Action,
		"subject", event.Subject,
	)
	return nil
}
