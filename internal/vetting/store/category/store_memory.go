// Package category stores the award categories nominees are entered into.
package category

import (
	"context"
	"sort"
	"strings"
	"sync"

	"vetting/internal/vetting/models"
	dErrors "vetting/pkg/domain-errors"
	"vetting/pkg/platform/sentinel"
)

type InMemoryStore struct {
	mu         sync.RWMutex
	categories map[models.CategoryID]models.Category
}

func NewInMemoryStore() *InMemoryStore {
	return &InMemoryStore{categories: make(map[models.CategoryID]models.Category)}
}

func (s *InMemoryStore) Save(_ context.Context, c models.Category) error {
	if err := validate(&c); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.categories[c.ID] = c
	return nil
}

func (s *InMemoryStore) FindByID(_ context.Context, id models.CategoryID) (*models.Category, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	c, ok := s.categories[id]
	if !ok {
		return nil, sentinel.ErrNotFound
	}
	return &c, nil
}

func (s *InMemoryStore) List(_ context.Context) ([]models.Category, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]models.Category, 0, len(s.categories))
	for _, c := range s.categories {
		out = append(out, c)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func validate(c *models.Category) error {
	c.Name = strings.TrimSpace(c.Name)
	if c.Name == "" {
		return dErrors.New(dErrors.CodeValidation, "category name is required")
	}
	if !c.Kind.IsValid() {
		return dErrors.Newf(dErrors.CodeValidation, "category %d has unknown kind %q", c.ID, c.Kind)
	}
	return nil
}
