// Package resolve maps a nominee's duplicate and category references to
// records from the external directories.
//
// Lookups degrade instead of failing: an identifier with no match yields a nil
// entry at its position so callers can show "data unavailable" without losing
// the order of the remaining references.
package resolve

import (
	"context"
	"errors"
	"log/slog"

	"vetting/internal/vetting/models"
	"vetting/internal/vetting/ports"
	"vetting/pkg/platform/sentinel"
)

// Resolver resolves duplicates and sibling categories.
type Resolver struct {
	nominees   ports.NomineeLookup
	categories ports.CategoryDirectory
	logger     *slog.Logger
}

// Option configures a Resolver.
type Option func(*Resolver)

// WithLogger sets the logger used for lookup failures.
func WithLogger(logger *slog.Logger) Option {
	return func(r *Resolver) {
		r.logger = logger
	}
}

// New creates a Resolver.
func New(nominees ports.NomineeLookup, categories ports.CategoryDirectory, opts ...Option) (*Resolver, error) {
	if nominees == nil {
		return nil, errors.New("nominee lookup is required")
	}
	if categories == nil {
		return nil, errors.New("category directory is required")
	}
	r := &Resolver{
		nominees:   nominees,
		categories: categories,
		logger:     slog.Default(),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r, nil
}

// Duplicates resolves every entry of nominee.Duplicates in order.
// Misses and lookup errors produce nil entries.
func (r *Resolver) Duplicates(ctx context.Context, nominee models.Nominee) []*models.Nominee {
	if len(nominee.Duplicates) == 0 {
		return nil
	}
	out := make([]*models.Nominee, len(nominee.Duplicates))
	for i, id := range nominee.Duplicates {
		dup, err := r.nominees.FindByID(ctx, id)
		if err != nil {
			r.logMiss(ctx, "duplicate", id.String(), nominee.ID, err)
			continue
		}
		out[i] = dup
	}
	return out
}

// OtherCategories resolves every category in nominee.Statuses except current,
// ordered by category ID. Misses and lookup errors produce nil entries.
func (r *Resolver) OtherCategories(ctx context.Context, nominee models.Nominee, current models.CategoryID) []*models.Category {
	var out []*models.Category
	for _, id := range nominee.CategoryIDs() {
		if id == current {
			continue
		}
		cat, err := r.categories.FindByID(ctx, id)
		if err != nil {
			r.logMiss(ctx, "category", id.String(), nominee.ID, err)
			out = append(out, nil)
			continue
		}
		out = append(out, cat)
	}
	return out
}

// Resolved drops the nil entries of a resolution result.
func Resolved[T any](list []*T) []*T {
	out := make([]*T, 0, len(list))
	for _, v := range list {
		if v != nil {
			out = append(out, v)
		}
	}
	return out
}

func (r *Resolver) logMiss(ctx context.Context, kind, ref string, nominee models.NomineeID, err error) {
	if errors.Is(err, sentinel.ErrNotFound) {
		r.logger.DebugContext(ctx, "unresolved reference",
			"kind", kind,
			"reference", ref,
			"nominee_id", nominee,
		)
		return
	}
	r.logger.WarnContext(ctx, "reference lookup failed",
		"kind", kind,
		"reference", ref,
		"nominee_id", nominee,
		"error", err,
	)
}
