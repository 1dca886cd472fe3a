package tx

import (
	"context"
	"database/sql"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWithTxIgnoresNil(t *testing.T) {
	ctx := WithTx(context.Background(), nil)
	_, ok := From(ctx)
	assert.False(t, ok)
}

func TestRunReusesTransactionOnContext(t *testing.T) {
	outer := &sql.Tx{}
	ctx := WithTx(context.Background(), outer)
	sentinel := errors.New("inner")

	// a nil pool proves no new transaction is started
	err := Run(ctx, nil, func(ctx context.Context) error {
		got, ok := From(ctx)
		require.True(t, ok)
		assert.Same(t, outer, got)
		return sentinel
	})
	assert.ErrorIs(t, err, sentinel)
}
