// Package edit tracks uncommitted changes to a nominee's attribute data.
//
// A Session holds the last committed snapshot and at most one pending candidate.
// Every mutation goes through ApplyEdit, which drops edits that round-trip back to
// the committed data and ignores edits that change nothing relative to the
// current working state. A Session is owned by a single review context and is
// not safe for concurrent use.
package edit

import (
	"vetting/internal/vetting/diff"
	"vetting/internal/vetting/models"
	dErrors "vetting/pkg/domain-errors"
)

// Outcome describes what an accepted edit did to the session.
type Outcome string

const (
	// OutcomeReverted means the candidate equals the committed data; pending was cleared.
	OutcomeReverted Outcome = "reverted"
	// OutcomeUnchanged means the candidate equals the current working data.
	OutcomeUnchanged Outcome = "unchanged"
	// OutcomeStaged means the candidate became the new pending snapshot.
	OutcomeStaged Outcome = "staged"
)

// Session is the per-nominee edit state.
type Session struct {
	original     models.Data
	pending      models.Data
	containsNull bool
}

// New starts a clean session over the committed data.
func New(original models.Data) *Session {
	s := &Session{original: original.Clone()}
	s.rescan()
	return s
}

// Original returns a copy of the committed snapshot.
func (s *Session) Original() models.Data {
	return s.original.Clone()
}

// Pending returns a copy of the pending snapshot, or nil when there is none.
func (s *Session) Pending() models.Data {
	return s.pending.Clone()
}

// HasPending reports whether uncommitted edits exist.
func (s *Session) HasPending() bool {
	return s.pending != nil
}

// Working returns pending if present, otherwise the committed snapshot.
func (s *Session) Working() models.Data {
	return s.working().Clone()
}

// ContainsNull reports whether the working snapshot holds a null value anywhere.
// Commits are refused while this is true.
func (s *Session) ContainsNull() bool {
	return s.containsNull
}

// ApplyEdit reconciles an edit into the session. With replace the fields are the
// complete candidate snapshot; otherwise they are merged over the working snapshot.
func (s *Session) ApplyEdit(fields models.Data, replace bool) (Outcome, error) {
	var candidate models.Data
	if replace {
		candidate = fields.Clone()
	} else {
		candidate = models.Merge(s.working(), fields)
	}
	if len(candidate) == 0 {
		return "", dErrors.New(dErrors.CodeInvalidEdit, "edit would leave the nominee without data")
	}

	if diff.Compute(s.original, candidate).IsEmpty() {
		s.pending = nil
		s.rescan()
		return OutcomeReverted, nil
	}

	if diff.Compute(s.working(), candidate).IsEmpty() {
		return OutcomeUnchanged, nil
	}

	s.pending = candidate
	s.rescan()
	return OutcomeStaged, nil
}

// ToggleFlag removes key when it is present and not false, otherwise sets it true.
func (s *Session) ToggleFlag(key string) (Outcome, error) {
	if key == "" {
		return "", dErrors.New(dErrors.CodeInvalidEdit, "flag name is required")
	}
	next := s.working().Clone()
	if next == nil {
		next = models.Data{}
	}
	if v, ok := next[key]; ok && v != false {
		delete(next, key)
	} else {
		next[key] = true
	}
	return s.ApplyEdit(next, true)
}

// AddField applies the keys updated adds over existing as a full replacement of
// existing. Keys updated changes or drops are ignored.
func (s *Session) AddField(existing, updated models.Data) (Outcome, error) {
	added := diff.AddedOnly(existing, updated)
	return s.ApplyEdit(models.Merge(existing, added), true)
}

// RemoveField drops key from the working snapshot.
func (s *Session) RemoveField(key string) (Outcome, error) {
	if key == "" {
		return "", dErrors.New(dErrors.CodeInvalidEdit, "field name is required")
	}
	return s.ApplyEdit(s.working().Without(key), true)
}

// Discard drops pending edits.
func (s *Session) Discard() {
	s.pending = nil
	s.rescan()
}

// Committed records that the pending data (or the original, if nothing was
// pending) is now canonical and clears pending.
func (s *Session) Committed() {
	if s.pending != nil {
		s.original = s.pending
	}
	s.pending = nil
	s.rescan()
}

func (s *Session) working() models.Data {
	if s.pending != nil {
		return s.pending
	}
	return s.original
}

func (s *Session) rescan() {
	s.containsNull = models.ContainsNull(s.working())
}
