package status

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"vetting/internal/vetting/models"
	dErrors "vetting/pkg/domain-errors"
)

func TestTransitionIsDeterministic(t *testing.T) {
	priors := []models.StatusCode{
		models.StatusRejected,
		models.StatusUnvetted,
		models.StatusApproved,
		models.StatusSelectedExternally,
		models.StatusCode(17),
	}
	expected := map[Action]models.StatusCode{
		ActionApprove: models.StatusApproved,
		ActionReject:  models.StatusRejected,
		ActionReset:   models.StatusUnvetted,
	}

	for action, want := range expected {
		for _, prior := range priors {
			n := models.Nominee{ID: "n1", Statuses: map[models.CategoryID]models.StatusCode{5: prior}}
			next, change, err := Apply(n, 5, action)
			require.NoError(t, err)
			assert.Equal(t, want, next.Statuses[5], "%s from %d", action, prior)
			assert.Equal(t, models.StatusChange{Category: 5, Status: want}, change)
			assert.Equal(t, []models.StatusChange{change}, next.StatusChanges)
			assert.NotEqual(t, models.StatusSelectedExternally, next.Statuses[5])
		}
	}
}

func TestApplyIsCopyOnWrite(t *testing.T) {
	n := models.Nominee{ID: "n1", Statuses: map[models.CategoryID]models.StatusCode{5: models.StatusUnvetted}}

	next, _, err := Apply(n, 5, ActionApprove)
	require.NoError(t, err)

	assert.Equal(t, models.StatusUnvetted, n.Statuses[5], "input nominee must not change")
	assert.Nil(t, n.StatusChanges)
	assert.Equal(t, models.StatusApproved, next.Statuses[5])
}

func TestApplyToMissingStatusMap(t *testing.T) {
	next, _, err := Apply(models.Nominee{ID: "n1"}, 3, ActionReject)
	require.NoError(t, err)
	assert.Equal(t, models.StatusRejected, next.Statuses[3])
}

func TestUnrecognizedAction(t *testing.T) {
	for _, raw := range []string{"", "approved", "delete", "2"} {
		_, err := ParseAction(raw)
		require.Error(t, err, raw)
		assert.True(t, dErrors.HasCode(err, dErrors.CodeUnrecognizedAction))
	}

	n := models.Nominee{ID: "n1", Statuses: map[models.CategoryID]models.StatusCode{1: models.StatusApproved}}
	_, _, err := Apply(n, 1, Action("promote"))
	require.Error(t, err)
	assert.Equal(t, models.StatusApproved, n.Statuses[1])
}

func TestParseActionNormalizes(t *testing.T) {
	a, err := ParseAction("  Approve ")
	require.NoError(t, err)
	assert.Equal(t, ActionApprove, a)
}

func TestApplyAll(t *testing.T) {
	n := models.Nominee{ID: "n1", Statuses: map[models.CategoryID]models.StatusCode{
		9: models.StatusApproved,
		2: models.StatusUnvetted,
		4: models.StatusSelectedExternally,
	}}

	next, changes, err := ApplyAll(n, ActionReject)
	require.NoError(t, err)
	assert.Equal(t, []models.StatusChange{
		{Category: 2, Status: models.StatusRejected},
		{Category: 4, Status: models.StatusRejected},
		{Category: 9, Status: models.StatusRejected},
	}, changes)
	assert.Equal(t, changes, next.StatusChanges)
	assert.Equal(t, models.StatusApproved, n.Statuses[9])

	t.Run("nominee without categories is a validation error", func(t *testing.T) {
		_, _, err := ApplyAll(models.Nominee{ID: "lonely"}, ActionApprove)
		require.Error(t, err)
		assert.True(t, dErrors.HasCode(err, dErrors.CodeValidation))
	})
}
