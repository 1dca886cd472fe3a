package adapters

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"vetting/internal/vetting/models"
	"vetting/internal/vetting/ports"
	nomineestore "vetting/internal/vetting/store/nominee"
	dErrors "vetting/pkg/domain-errors"
	"vetting/pkg/platform/audit"
	"vetting/pkg/platform/sentinel"
)

// CacheInvalidator drops cached copies of nominees after they change.
type CacheInvalidator interface {
	Invalidate(ctx context.Context, ids ...models.NomineeID) error
}

// StoreSubmitter implements ports.Submitter by writing a batch to the nominee
// store inside one transaction.
type StoreSubmitter struct {
	store     nomineestore.TxRunner
	cache     CacheInvalidator
	publisher ports.AuditPublisher
	logger    *slog.Logger
}

// SubmitterOption configures a StoreSubmitter.
type SubmitterOption func(*StoreSubmitter)

// WithCacheInvalidator invalidates the given cache after each successful batch.
func WithCacheInvalidator(cache CacheInvalidator) SubmitterOption {
	return func(s *StoreSubmitter) {
		s.cache = cache
	}
}

// WithAuditPublisher emits one audit event per committed record.
func WithAuditPublisher(publisher ports.AuditPublisher) SubmitterOption {
	return func(s *StoreSubmitter) {
		s.publisher = publisher
	}
}

// WithSubmitterLogger sets the submitter's logger.
func WithSubmitterLogger(logger *slog.Logger) SubmitterOption {
	return func(s *StoreSubmitter) {
		s.logger = logger
	}
}

// NewStoreSubmitter creates a new store-backed submitter.
func NewStoreSubmitter(store nomineestore.TxRunner, opts ...SubmitterOption) (*StoreSubmitter, error) {
	if store == nil {
		return nil, errors.New("nominee store is required")
	}
	s := &StoreSubmitter{store: store, logger: slog.Default()}
	for _, opt := range opts {
		opt(s)
	}
	return s, nil
}

// Submit writes every record of the batch or none of them.
func (s *StoreSubmitter) Submit(ctx context.Context, records []models.Nominee, kind models.UpdateKind) error {
	if !kind.IsValid() {
		return dErrors.Newf(dErrors.CodeValidation, "unknown update kind %q", kind)
	}
	if len(records) == 0 {
		return dErrors.New(dErrors.CodeValidation, "update batch is empty")
	}

	err := s.store.RunInTx(ctx, func(ctx context.Context, w nomineestore.Writer) error {
		for _, record := range records {
			if err := apply(ctx, w, record, kind); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return err
	}

	ids := make([]models.NomineeID, len(records))
	for i, r := range records {
		ids[i] = r.ID
	}
	if s.cache != nil {
		if err := s.cache.Invalidate(ctx, ids...); err != nil {
			s.logger.WarnContext(ctx, "failed to invalidate nominee cache", "error", err)
		}
	}

	batchID := uuid.NewString()
	for _, record := range records {
		event := audit.EventNomineeDataUpdated
		attrs := []any{"nominee_id", record.ID, "batch_id", batchID, "batch_size", len(records)}
		if kind == models.UpdateKindStatus {
			event = audit.EventNomineeStatusChanged
			attrs = append(attrs, "decision", describeChanges(record.StatusChanges))
		}
		ports.LogAudit(ctx, s.logger, s.publisher, event, attrs...)
	}
	return nil
}

func apply(ctx context.Context, w nomineestore.Writer, record models.Nominee, kind models.UpdateKind) error {
	switch kind {
	case models.UpdateKindStatus:
		if len(record.StatusChanges) == 0 {
			return dErrors.Newf(dErrors.CodeValidation, "status record %s has no changes", record.ID)
		}
		statuses := make(map[models.CategoryID]models.StatusCode, len(record.StatusChanges))
		for _, change := range record.StatusChanges {
			statuses[change.Category] = change.Status
		}
		if err := w.UpdateStatuses(ctx, record.ID, statuses); err != nil {
			return wrapStoreErr(err, record.ID)
		}
	default:
		if err := w.UpdateData(ctx, record.ID, record.Data); err != nil {
			return wrapStoreErr(err, record.ID)
		}
	}
	return nil
}

func wrapStoreErr(err error, id models.NomineeID) error {
	if errors.Is(err, sentinel.ErrNotFound) {
		return dErrors.Wrap(err, dErrors.CodeNotFound, fmt.Sprintf("nominee %s not found", id))
	}
	return fmt.Errorf("update nominee %s: %w", id, err)
}

func describeChanges(changes []models.StatusChange) string {
	if len(changes) == 1 {
		return fmt.Sprintf("%s:%s", changes[0].Category, changes[0].Status.Label())
	}
	return fmt.Sprintf("%d categories", len(changes))
}
