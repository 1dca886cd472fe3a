// Package nominee persists nominee records.
//
// Three implementations share one contract: an in-memory store for tests and
// local runs, a PostgreSQL store, and a Redis read-through cache in front of
// either.
package nominee

import (
	"context"

	"vetting/internal/vetting/models"
)

// Writer applies committed changes to stored nominees.
type Writer interface {
	// UpdateData replaces the attribute data of a nominee.
	UpdateData(ctx context.Context, id models.NomineeID, data models.Data) error
	// UpdateStatuses merges status codes into a nominee's status map.
	UpdateStatuses(ctx context.Context, id models.NomineeID, statuses map[models.CategoryID]models.StatusCode) error
}

// TxRunner groups writes under one transaction. The context passed to fn
// carries the transaction and must be used for every write.
type TxRunner interface {
	RunInTx(ctx context.Context, fn func(ctx context.Context, w Writer) error) error
}
