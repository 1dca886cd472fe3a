package category

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"vetting/internal/vetting/models"
	dErrors "vetting/pkg/domain-errors"
	"vetting/pkg/platform/sentinel"
)

func TestInMemoryStore(t *testing.T) {
	ctx := context.Background()
	store := NewInMemoryStore()

	require.NoError(t, store.Save(ctx, models.Category{ID: 2, Name: " Best Art ", Kind: models.KindArt}))
	require.NoError(t, store.Save(ctx, models.Category{ID: 1, Name: "Best Fic", Kind: models.KindFic}))

	t.Run("find trims name", func(t *testing.T) {
		c, err := store.FindByID(ctx, 2)
		require.NoError(t, err)
		assert.Equal(t, "Best Art", c.Name)
	})

	t.Run("missing category", func(t *testing.T) {
		_, err := store.FindByID(ctx, 9)
		assert.ErrorIs(t, err, sentinel.ErrNotFound)
	})

	t.Run("list is ordered", func(t *testing.T) {
		list, err := store.List(ctx)
		require.NoError(t, err)
		require.Len(t, list, 2)
		assert.Equal(t, models.CategoryID(1), list[0].ID)
	})

	t.Run("rejects unknown kind", func(t *testing.T) {
		err := store.Save(ctx, models.Category{ID: 3, Name: "Odd", Kind: "poem"})
		assert.True(t, dErrors.HasCode(err, dErrors.CodeValidation))
	})
}
