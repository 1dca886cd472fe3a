package service

import (
	"context"
	"slices"
	"time"

	"go.opentelemetry.io/otel/attribute"

	"vetting/internal/vetting/models"
	"vetting/internal/vetting/status"
	dErrors "vetting/pkg/domain-errors"
)

// ChangeStatus applies a status action to one category of the open nominee or
// one of its duplicates, and submits it immediately as its own status batch.
// Pending data edits are neither included nor affected. A zero target means
// the open nominee.
func (s *Service) ChangeStatus(ctx context.Context, reviewer string, target models.NomineeID, categoryID models.CategoryID, action string) (*Review, error) {
	return s.changeStatus(ctx, reviewer, target, action, func(n models.Nominee, a status.Action) (models.Nominee, int, error) {
		next, _, err := status.Apply(n, categoryID, a)
		return next, 1, err
	})
}

// ChangeAllStatuses applies a status action to every category the target
// nominee was entered into, as one status batch.
func (s *Service) ChangeAllStatuses(ctx context.Context, reviewer string, target models.NomineeID, action string) (*Review, error) {
	return s.changeStatus(ctx, reviewer, target, action, func(n models.Nominee, a status.Action) (models.Nominee, int, error) {
		next, changes, err := status.ApplyAll(n, a)
		return next, len(changes), err
	})
}

type statusTransition func(models.Nominee, status.Action) (models.Nominee, int, error)

func (s *Service) changeStatus(ctx context.Context, reviewer string, target models.NomineeID, rawAction string, apply statusTransition) (*Review, error) {
	action, err := status.ParseAction(rawAction)
	if err != nil {
		return nil, err
	}
	rc, err := s.review(reviewer)
	if err != nil {
		return nil, err
	}
	rc.mu.Lock()
	defer rc.mu.Unlock()

	subject, err := s.statusTarget(ctx, rc, target)
	if err != nil {
		return nil, err
	}

	ctx, span := s.tracer.Start(ctx, "vetting.commit_status")
	defer span.End()
	span.SetAttributes(
		attribute.String("nominee.id", subject.ID.String()),
		attribute.String("status.action", string(action)),
	)

	next, changes, err := apply(subject, action)
	if err != nil {
		return nil, err
	}

	start := time.Now()
	if err := s.committer.CommitStatus(ctx, next); err != nil {
		s.recordCommitFailure(ctx, span, string(models.UpdateKindStatus), subject.ID, err, start)
		return nil, err
	}
	s.metrics.ObserveCommit(string(models.UpdateKindStatus), "success", 1, time.Since(start))
	s.metrics.IncrementStatusTransition(string(action))
	s.logger.InfoContext(ctx, "nominee status changed",
		"nominee_id", subject.ID,
		"action", action,
		"categories", changes,
	)

	if subject.ID == rc.nominee.ID {
		next.StatusChanges = nil
		rc.nominee.Statuses = next.Statuses
	}
	return s.view(ctx, rc), nil
}

// statusTarget resolves the nominee a status action applies to: the open
// nominee itself, or one of its duplicates.
func (s *Service) statusTarget(ctx context.Context, rc *reviewContext, target models.NomineeID) (models.Nominee, error) {
	if target.IsZero() || target == rc.nominee.ID {
		return rc.nominee, nil
	}
	if !slices.Contains(rc.nominee.Duplicates, target) {
		return models.Nominee{}, dErrors.Newf(dErrors.CodeValidation,
			"nominee %s is not a duplicate of %s", target, rc.nominee.ID)
	}
	dup, err := s.loadNominee(ctx, target)
	if err != nil {
		if dErrors.HasCode(err, dErrors.CodeNotFound) {
			return models.Nominee{}, dErrors.Wrap(err, dErrors.CodeUnresolvedReference,
				"duplicate "+target.String()+" could not be resolved")
		}
		return models.Nominee{}, err
	}
	return *dup, nil
}
