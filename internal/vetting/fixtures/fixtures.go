// Package fixtures loads category and nominee seed data from YAML.
package fixtures

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"

	"vetting/internal/vetting/models"
	dErrors "vetting/pkg/domain-errors"
)

// File is the YAML layout of a fixture file.
type File struct {
	Categories []Category `yaml:"categories"`
	Nominees   []Nominee  `yaml:"nominees"`
}

type Category struct {
	ID   int    `yaml:"id"`
	Name string `yaml:"name"`
	Kind string `yaml:"kind"`
}

type Nominee struct {
	ID          string         `yaml:"id"`
	Kind        string         `yaml:"kind"`
	NominatedBy string         `yaml:"nominated_by"`
	Data        map[string]any `yaml:"data"`
	Statuses    map[int]int    `yaml:"statuses"`
	Duplicates  []string       `yaml:"duplicates"`
}

// CategorySaver persists categories.
type CategorySaver interface {
	Save(ctx context.Context, c models.Category) error
}

// NomineeSaver persists nominees.
type NomineeSaver interface {
	Save(ctx context.Context, n models.Nominee) error
}

// Summary counts what Apply wrote.
type Summary struct {
	Categories int
	Nominees   int
}

// Load decodes a fixture document. Unknown keys are rejected.
func Load(r io.Reader) (*File, error) {
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	var f File
	if err := dec.Decode(&f); err != nil {
		if errors.Is(err, io.EOF) {
			return &f, nil
		}
		return nil, dErrors.Wrap(err, dErrors.CodeInvalidInput, "decode fixtures")
	}
	return &f, nil
}

// LoadFile opens and decodes path.
func LoadFile(path string) (*File, error) {
	fh, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open fixtures: %w", err)
	}
	defer fh.Close()
	return Load(fh)
}

// Models converts the file into domain values, validating ids and kinds.
func (f *File) Models() ([]models.Category, []models.Nominee, error) {
	categories := make([]models.Category, 0, len(f.Categories))
	for i, c := range f.Categories {
		kind, err := models.ParseKind(c.Kind)
		if err != nil {
			return nil, nil, fmt.Errorf("category %d: %w", i, err)
		}
		categories = append(categories, models.Category{ID: models.CategoryID(c.ID), Name: c.Name, Kind: kind})
	}

	nominees := make([]models.Nominee, 0, len(f.Nominees))
	for i, n := range f.Nominees {
		id, err := models.ParseNomineeID(n.ID)
		if err != nil {
			return nil, nil, fmt.Errorf("nominee %d: %w", i, err)
		}
		nominee := models.Nominee{
			ID:          id,
			Data:        models.Data(n.Data).Clone(),
			Statuses:    make(map[models.CategoryID]models.StatusCode, len(n.Statuses)),
			NominatedBy: n.NominatedBy,
		}
		if n.Kind != "" {
			kind, err := models.ParseKind(n.Kind)
			if err != nil {
				return nil, nil, fmt.Errorf("nominee %s: %w", id, err)
			}
			nominee.Kind = kind
		}
		for cat, code := range n.Statuses {
			nominee.Statuses[models.CategoryID(cat)] = models.NormalizeStatus(models.StatusCode(code))
		}
		for _, dup := range n.Duplicates {
			nominee.Duplicates = append(nominee.Duplicates, models.NomineeID(dup))
		}
		nominees = append(nominees, models.NormalizeNominee(nominee))
	}
	return categories, nominees, nil
}

// Apply writes every category and then every nominee.
func (f *File) Apply(ctx context.Context, categories CategorySaver, nominees NomineeSaver) (Summary, error) {
	cats, noms, err := f.Models()
	if err != nil {
		return Summary{}, err
	}
	var sum Summary
	for _, c := range cats {
		if err := categories.Save(ctx, c); err != nil {
			return sum, fmt.Errorf("save category %d: %w", c.ID, err)
		}
		sum.Categories++
	}
	for _, n := range noms {
		if err := nominees.Save(ctx, n); err != nil {
			return sum, fmt.Errorf("save nominee %s: %w", n.ID, err)
		}
		sum.Nominees++
	}
	return sum, nil
}
