package service

import (
	"context"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"vetting/internal/vetting/models"
	"vetting/internal/vetting/ports"
	"vetting/internal/vetting/resolve"
	dErrors "vetting/pkg/domain-errors"
	"vetting/pkg/platform/audit"
)

// Commit saves the open nominee's working data. With includeDuplicates every
// resolvable duplicate receives the same data in the same batch. On success the
// nominee is reloaded and the edit session cleared; on failure pending edits
// are kept.
func (s *Service) Commit(ctx context.Context, reviewer string, includeDuplicates bool) (*Review, error) {
	rc, err := s.review(reviewer)
	if err != nil {
		return nil, err
	}
	rc.mu.Lock()
	defer rc.mu.Unlock()

	ctx, span := s.tracer.Start(ctx, "vetting.commit_data")
	defer span.End()
	span.SetAttributes(
		attribute.String("nominee.id", rc.nominee.ID.String()),
		attribute.Bool("commit.include_duplicates", includeDuplicates),
	)

	start := time.Now()
	session := rc.workingSession()

	var records []models.Nominee
	if includeDuplicates {
		duplicates := resolve.Resolved(s.resolver.Duplicates(ctx, rc.nominee))
		records, err = s.committer.CommitDataWithDuplicates(ctx, session, rc.nominee, duplicates)
	} else {
		records, err = s.committer.CommitData(ctx, session, rc.nominee)
	}
	if err != nil {
		s.recordCommitFailure(ctx, span, string(models.UpdateKindData), rc.nominee.ID, err, start)
		return nil, err
	}

	span.SetAttributes(attribute.Int("commit.batch_size", len(records)))
	s.metrics.ObserveCommit(string(models.UpdateKindData), "success", len(records), time.Since(start))
	s.logger.InfoContext(ctx, "nominee data committed",
		"nominee_id", rc.nominee.ID,
		"batch_size", len(records),
		"duration_ms", time.Since(start).Milliseconds(),
	)

	rc.nominee = s.reload(ctx, rc.nominee.ID, records[0])
	rc.session = nil
	return s.view(ctx, rc), nil
}

// reload fetches the canonical nominee after a commit, falling back to the
// submitted record when the lookup fails.
func (s *Service) reload(ctx context.Context, id models.NomineeID, submitted models.Nominee) models.Nominee {
	n, err := s.loadNominee(ctx, id)
	if err != nil {
		s.logger.WarnContext(ctx, "failed to reload nominee after commit",
			"nominee_id", id,
			"error", err,
		)
		fallback := submitted.Clone()
		fallback.StatusChanges = nil
		return fallback
	}
	return *n
}

func (s *Service) recordCommitFailure(ctx context.Context, span trace.Span, kind string, id models.NomineeID, err error, start time.Time) {
	span.RecordError(err)
	span.SetStatus(codes.Error, err.Error())

	result := "failure"
	if !dErrors.HasCode(err, dErrors.CodeCommitFailure) {
		result = "blocked"
	}
	s.metrics.ObserveCommit(kind, result, 0, time.Since(start))

	if result == "failure" {
		ports.LogAudit(ctx, s.logger, s.auditPublisher, audit.EventCommitFailed,
			"nominee_id", id,
			"kind", kind,
			"reason", err.Error(),
		)
		return
	}
	s.logger.InfoContext(ctx, "commit blocked",
		"nominee_id", id,
		"kind", kind,
		"error", err,
	)
}
