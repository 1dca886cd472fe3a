package service

import (
	"context"

	"vetting/internal/vetting/edit"
	"vetting/internal/vetting/models"
	"vetting/internal/vetting/ports"
	"vetting/pkg/platform/audit"
)

// Edit applies field changes to the open nominee. With replace the fields are
// the complete new data; otherwise they are merged over the working data.
func (s *Service) Edit(ctx context.Context, reviewer string, fields models.Data, replace bool) (*Review, error) {
	return s.mutate(ctx, reviewer, "edit", func(session *edit.Session) (edit.Outcome, error) {
		return session.ApplyEdit(fields, replace)
	})
}

// Toggle flips a boolean flag on the working data.
func (s *Service) Toggle(ctx context.Context, reviewer, key string) (*Review, error) {
	return s.mutate(ctx, reviewer, "toggle", func(session *edit.Session) (edit.Outcome, error) {
		return session.ToggleFlag(key)
	})
}

// AddField applies the keys updated adds over existing. A nil existing means
// the current working data.
func (s *Service) AddField(ctx context.Context, reviewer string, existing, updated models.Data) (*Review, error) {
	return s.mutate(ctx, reviewer, "add_field", func(session *edit.Session) (edit.Outcome, error) {
		base := existing
		if base == nil {
			base = session.Working()
		}
		return session.AddField(base, updated)
	})
}

// RemoveField drops a key from the working data.
func (s *Service) RemoveField(ctx context.Context, reviewer, key string) (*Review, error) {
	return s.mutate(ctx, reviewer, "remove_field", func(session *edit.Session) (edit.Outcome, error) {
		return session.RemoveField(key)
	})
}

// Discard drops the open nominee's uncommitted edits.
func (s *Service) Discard(ctx context.Context, reviewer string) (*Review, error) {
	rc, err := s.review(reviewer)
	if err != nil {
		return nil, err
	}
	rc.mu.Lock()
	defer rc.mu.Unlock()

	if rc.session != nil && rc.session.HasPending() {
		ports.LogAudit(ctx, s.logger, s.auditPublisher, audit.EventEditsDiscarded,
			"nominee_id", rc.nominee.ID,
			"reason", "reviewer_discarded",
		)
	}
	rc.session = nil
	s.metrics.IncrementEdit("discard", "reverted")
	return s.view(ctx, rc), nil
}

func (s *Service) mutate(ctx context.Context, reviewer, operation string, fn func(*edit.Session) (edit.Outcome, error)) (*Review, error) {
	rc, err := s.review(reviewer)
	if err != nil {
		return nil, err
	}
	rc.mu.Lock()
	defer rc.mu.Unlock()

	outcome, err := fn(rc.workingSession())
	if err != nil {
		s.metrics.IncrementEdit(operation, "rejected")
		s.logger.InfoContext(ctx, "edit rejected",
			"operation", operation,
			"nominee_id", rc.nominee.ID,
			"error", err,
		)
		return nil, err
	}
	s.metrics.IncrementEdit(operation, string(outcome))
	s.logger.DebugContext(ctx, "edit applied",
		"operation", operation,
		"nominee_id", rc.nominee.ID,
		"outcome", outcome,
	)
	return s.view(ctx, rc), nil
}
