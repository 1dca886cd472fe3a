package nominee

import (
	"context"
	"sort"
	"sync"

	"vetting/internal/vetting/models"
	dErrors "vetting/pkg/domain-errors"
	"vetting/pkg/platform/sentinel"
)

// InMemoryStore keeps nominees in a map guarded by a RWMutex.
// Records are cloned on the way in and out so callers never share state
// with the store.
type InMemoryStore struct {
	mu       sync.RWMutex
	nominees map[models.NomineeID]models.Nominee
}

func NewInMemoryStore() *InMemoryStore {
	return &InMemoryStore{nominees: make(map[models.NomineeID]models.Nominee)}
}

// Save upserts a nominee after normalizing it.
func (s *InMemoryStore) Save(_ context.Context, n models.Nominee) error {
	if n.ID.IsZero() {
		return dErrors.New(dErrors.CodeValidation, "nominee id is required")
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.nominees[n.ID] = models.NormalizeNominee(n.Clone())
	return nil
}

func (s *InMemoryStore) FindByID(_ context.Context, id models.NomineeID) (*models.Nominee, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	n, ok := s.nominees[id]
	if !ok {
		return nil, sentinel.ErrNotFound
	}
	out := n.Clone()
	return &out, nil
}

// List returns every nominee ordered by ID.
func (s *InMemoryStore) List(_ context.Context) ([]models.Nominee, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]models.Nominee, 0, len(s.nominees))
	for _, n := range s.nominees {
		out = append(out, n.Clone())
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (s *InMemoryStore) UpdateData(_ context.Context, id models.NomineeID, data models.Data) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.updateDataLocked(id, data)
}

func (s *InMemoryStore) UpdateStatuses(_ context.Context, id models.NomineeID, statuses map[models.CategoryID]models.StatusCode) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.updateStatusesLocked(id, statuses)
}

// RunInTx holds the write lock for the duration of fn and restores the
// previous contents if fn fails.
func (s *InMemoryStore) RunInTx(ctx context.Context, fn func(ctx context.Context, w Writer) error) error {
	if err := ctx.Err(); err != nil {
		return dErrors.Wrap(err, dErrors.CodeTimeout, "transaction aborted: context cancelled")
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	backup := make(map[models.NomineeID]models.Nominee, len(s.nominees))
	for id, n := range s.nominees {
		backup[id] = n
	}
	if err := fn(ctx, lockedWriter{s}); err != nil {
		s.nominees = backup
		return err
	}
	return nil
}

func (s *InMemoryStore) updateDataLocked(id models.NomineeID, data models.Data) error {
	n, ok := s.nominees[id]
	if !ok {
		return sentinel.ErrNotFound
	}
	n = n.Clone()
	n.Data = data.Clone()
	if n.Data == nil {
		n.Data = models.Data{}
	}
	s.nominees[id] = n
	return nil
}

func (s *InMemoryStore) updateStatusesLocked(id models.NomineeID, statuses map[models.CategoryID]models.StatusCode) error {
	n, ok := s.nominees[id]
	if !ok {
		return sentinel.ErrNotFound
	}
	n = n.Clone()
	for cat, code := range statuses {
		n.Statuses[cat] = code
	}
	s.nominees[id] = n
	return nil
}

// lockedWriter writes through to a store whose lock is already held.
type lockedWriter struct {
	s *InMemoryStore
}

func (w lockedWriter) UpdateData(_ context.Context, id models.NomineeID, data models.Data) error {
	return w.s.updateDataLocked(id, data)
}

func (w lockedWriter) UpdateStatuses(_ context.Context, id models.NomineeID, statuses map[models.CategoryID]models.StatusCode) error {
	return w.s.updateStatusesLocked(id, statuses)
}
