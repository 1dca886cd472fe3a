// Package commit builds update batches from reviewed nominees and hands them
// to the submitter.
//
// Data batches carry the session's working data (pending, or the committed
// data when nothing is pending, so an empty commit is legal). Status batches
// carry the change list produced by the status machine. The committer never
// retries: on failure the session keeps its pending edits for the caller to
// retry or discard.
package commit

import (
	"context"
	"errors"
	"strings"

	"vetting/internal/vetting/edit"
	"vetting/internal/vetting/models"
	"vetting/internal/vetting/ports"
	dErrors "vetting/pkg/domain-errors"
)

// Committer submits data and status batches.
type Committer struct {
	submitter ports.Submitter
}

// New creates a Committer.
func New(submitter ports.Submitter) (*Committer, error) {
	if submitter == nil {
		return nil, errors.New("submitter is required")
	}
	return &Committer{submitter: submitter}, nil
}

// CommitData submits a one-record data batch for nominee and, on success,
// marks the session committed. It returns the submitted records.
func (c *Committer) CommitData(ctx context.Context, session *edit.Session, nominee models.Nominee) ([]models.Nominee, error) {
	return c.commitData(ctx, session, nominee, nil)
}

// CommitDataWithDuplicates submits one data batch holding nominee and every
// resolved duplicate, each carrying an identical copy of the new data. Nil
// entries (unresolved duplicates) are skipped.
func (c *Committer) CommitDataWithDuplicates(ctx context.Context, session *edit.Session, nominee models.Nominee, duplicates []*models.Nominee) ([]models.Nominee, error) {
	return c.commitData(ctx, session, nominee, duplicates)
}

// CommitStatus submits a one-record status batch. The record must carry the
// change list from the status machine.
func (c *Committer) CommitStatus(ctx context.Context, nominee models.Nominee) error {
	if len(nominee.StatusChanges) == 0 {
		return dErrors.New(dErrors.CodeValidation, "status commit has no changes")
	}
	for _, change := range nominee.StatusChanges {
		if change.Status == models.StatusSelectedExternally {
			return dErrors.Newf(dErrors.CodeValidation, "status %d is read-only", change.Status)
		}
	}
	if err := c.submitter.Submit(ctx, []models.Nominee{nominee.Clone()}, models.UpdateKindStatus); err != nil {
		return dErrors.Wrap(err, dErrors.CodeCommitFailure, "status update was not saved")
	}
	return nil
}

func (c *Committer) commitData(ctx context.Context, session *edit.Session, nominee models.Nominee, duplicates []*models.Nominee) ([]models.Nominee, error) {
	data := nominee.Data
	if session != nil {
		data = session.Working()
	}
	if models.ContainsNull(data) {
		return nil, dErrors.Newf(dErrors.CodeNullAttributeValue,
			"data contains null values at %s; fill or remove them before saving", strings.Join(models.NullPaths(data), ", "))
	}

	records := make([]models.Nominee, 0, 1+len(duplicates))
	records = append(records, withData(nominee, data))
	for _, dup := range duplicates {
		if dup == nil || dup.ID == nominee.ID {
			continue
		}
		records = append(records, withData(*dup, data))
	}

	if err := c.submitter.Submit(ctx, records, models.UpdateKindData); err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeCommitFailure, "data update was not saved")
	}
	if session != nil {
		session.Committed()
	}
	return records, nil
}

func withData(n models.Nominee, data models.Data) models.Nominee {
	out := n.Clone()
	out.Data = data.Clone()
	out.StatusChanges = nil
	return out
}
