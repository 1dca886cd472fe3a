package fixtures

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"vetting/internal/vetting/models"
	categorystore "vetting/internal/vetting/store/category"
	nomineestore "vetting/internal/vetting/store/nominee"
	dErrors "vetting/pkg/domain-errors"
)

const sample = `
categories:
  - id: 1
    name: Best Fic
    kind: fic
  - id: 2
    name: Best Art
    kind: art
nominees:
  - id: n1
    nominated_by: someone
    data:
      title: Small Hours
      words: 4200
      meta:
        rating: teen
    statuses:
      1: 0
      2: 7
    duplicates: [n2, n1, " "]
`

func TestLoadAndApply(t *testing.T) {
	f, err := Load(strings.NewReader(sample))
	require.NoError(t, err)

	ctx := context.Background()
	categories := categorystore.NewInMemoryStore()
	nominees := nomineestore.NewInMemoryStore()

	sum, err := f.Apply(ctx, categories, nominees)
	require.NoError(t, err)
	assert.Equal(t, Summary{Categories: 2, Nominees: 1}, sum)

	n, err := nominees.FindByID(ctx, "n1")
	require.NoError(t, err)
	assert.Equal(t, float64(4200), n.Data["words"], "numbers normalize to float64")
	assert.Equal(t, map[string]any{"rating": "teen"}, n.Data["meta"])
	assert.Equal(t, models.StatusUnvetted, n.Statuses[2], "unknown status codes reset")
	assert.Equal(t, []models.NomineeID{"n2"}, n.Duplicates)

	c, err := categories.FindByID(ctx, 2)
	require.NoError(t, err)
	assert.Equal(t, models.KindArt, c.Kind)
}

func TestLoadRejectsUnknownKeys(t *testing.T) {
	_, err := Load(strings.NewReader("nominess: []\n"))
	require.Error(t, err)
	assert.True(t, dErrors.HasCode(err, dErrors.CodeInvalidInput))
}

func TestLoadEmptyDocument(t *testing.T) {
	f, err := Load(strings.NewReader(""))
	require.NoError(t, err)
	assert.Empty(t, f.Nominees)
}

func TestModelsRejectsBadKind(t *testing.T) {
	f := &File{Categories: []Category{{ID: 1, Name: "x", Kind: "poetry"}}}
	_, _, err := f.Models()
	require.Error(t, err)
}
