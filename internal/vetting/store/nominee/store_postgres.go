package nominee

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/lib/pq"

	"vetting/internal/vetting/models"
	dErrors "vetting/pkg/domain-errors"
	"vetting/pkg/platform/sentinel"
	txcontext "vetting/pkg/platform/tx"
)

// defaultTxTimeout bounds a commit transaction when the caller set no deadline.
const defaultTxTimeout = 5 * time.Second

// PostgresStore persists nominees in PostgreSQL.
type PostgresStore struct {
	db      *sql.DB
	timeout time.Duration
}

// NewPostgres constructs a PostgreSQL-backed nominee store.
func NewPostgres(db *sql.DB) *PostgresStore {
	return &PostgresStore{db: db, timeout: defaultTxTimeout}
}

type dbExecutor interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
}

func (s *PostgresStore) execer(ctx context.Context) dbExecutor {
	if tx, ok := txcontext.From(ctx); ok {
		return tx
	}
	return s.db
}

const selectNominee = `
	SELECT id, data, statuses, duplicates, nominated_by, kind
	FROM nominees`

func (s *PostgresStore) FindByID(ctx context.Context, id models.NomineeID) (*models.Nominee, error) {
	row := s.execer(ctx).QueryRowContext(ctx, selectNominee+` WHERE id = $1`, id.String())
	n, err := scanNominee(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, sentinel.ErrNotFound
		}
		return nil, fmt.Errorf("find nominee by id: %w", err)
	}
	return &n, nil
}

// List returns every nominee ordered by ID.
func (s *PostgresStore) List(ctx context.Context) ([]models.Nominee, error) {
	rows, err := s.execer(ctx).QueryContext(ctx, selectNominee+` ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("list nominees: %w", err)
	}
	defer rows.Close()

	var out []models.Nominee
	for rows.Next() {
		n, err := scanNominee(rows)
		if err != nil {
			return nil, fmt.Errorf("scan nominee: %w", err)
		}
		out = append(out, n)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate nominees: %w", err)
	}
	return out, nil
}

// Save upserts a nominee.
func (s *PostgresStore) Save(ctx context.Context, n models.Nominee) error {
	if n.ID.IsZero() {
		return dErrors.New(dErrors.CodeValidation, "nominee id is required")
	}
	n = models.NormalizeNominee(n)
	dataBytes, err := json.Marshal(n.Data)
	if err != nil {
		return fmt.Errorf("marshal nominee data: %w", err)
	}
	statusBytes, err := json.Marshal(n.Statuses)
	if err != nil {
		return fmt.Errorf("marshal nominee statuses: %w", err)
	}
	dups := make([]string, len(n.Duplicates))
	for i, d := range n.Duplicates {
		dups[i] = d.String()
	}
	_, err = s.execer(ctx).ExecContext(ctx, `
		INSERT INTO nominees (id, data, statuses, duplicates, nominated_by, kind, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, NOW())
		ON CONFLICT (id) DO UPDATE SET
			data = EXCLUDED.data,
			statuses = EXCLUDED.statuses,
			duplicates = EXCLUDED.duplicates,
			nominated_by = EXCLUDED.nominated_by,
			kind = EXCLUDED.kind,
			updated_at = NOW()
	`, n.ID.String(), dataBytes, statusBytes, pq.Array(dups), nullString(n.NominatedBy), string(n.Kind))
	if err != nil {
		return fmt.Errorf("save nominee: %w", err)
	}
	return nil
}

func (s *PostgresStore) UpdateData(ctx context.Context, id models.NomineeID, data models.Data) error {
	if data == nil {
		data = models.Data{}
	}
	dataBytes, err := json.Marshal(data)
	if err != nil {
		return fmt.Errorf("marshal nominee data: %w", err)
	}
	res, err := s.execer(ctx).ExecContext(ctx, `
		UPDATE nominees SET data = $2, updated_at = NOW() WHERE id = $1
	`, id.String(), dataBytes)
	if err != nil {
		return fmt.Errorf("update nominee data: %w", err)
	}
	return requireRow(res)
}

func (s *PostgresStore) UpdateStatuses(ctx context.Context, id models.NomineeID, statuses map[models.CategoryID]models.StatusCode) error {
	statusBytes, err := json.Marshal(statuses)
	if err != nil {
		return fmt.Errorf("marshal nominee statuses: %w", err)
	}
	res, err := s.execer(ctx).ExecContext(ctx, `
		UPDATE nominees SET statuses = statuses || $2::jsonb, updated_at = NOW() WHERE id = $1
	`, id.String(), statusBytes)
	if err != nil {
		return fmt.Errorf("update nominee statuses: %w", err)
	}
	return requireRow(res)
}

// RunInTx runs fn inside a database transaction carried on the context.
func (s *PostgresStore) RunInTx(ctx context.Context, fn func(ctx context.Context, w Writer) error) error {
	if err := ctx.Err(); err != nil {
		return dErrors.Wrap(err, dErrors.CodeTimeout, "transaction aborted: context cancelled")
	}
	if _, hasDeadline := ctx.Deadline(); !hasDeadline {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.timeout)
		defer cancel()
	}

	err := txcontext.Run(ctx, s.db, func(ctx context.Context) error {
		return fn(ctx, s)
	})
	if err != nil {
		return fmt.Errorf("nominee transaction: %w", err)
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanNominee(row rowScanner) (models.Nominee, error) {
	var (
		id          string
		dataBytes   []byte
		statusBytes []byte
		dups        []string
		nominatedBy sql.NullString
		kind        string
	)
	if err := row.Scan(&id, &dataBytes, &statusBytes, pq.Array(&dups), &nominatedBy, &kind); err != nil {
		return models.Nominee{}, err
	}
	n := models.Nominee{
		ID:          models.NomineeID(id),
		NominatedBy: nominatedBy.String,
		Kind:        models.Kind(kind),
	}
	if len(dataBytes) > 0 {
		if err := json.Unmarshal(dataBytes, &n.Data); err != nil {
			return models.Nominee{}, fmt.Errorf("unmarshal nominee data: %w", err)
		}
	}
	if len(statusBytes) > 0 {
		if err := json.Unmarshal(statusBytes, &n.Statuses); err != nil {
			return models.Nominee{}, fmt.Errorf("unmarshal nominee statuses: %w", err)
		}
	}
	for _, d := range dups {
		n.Duplicates = append(n.Duplicates, models.NomineeID(d))
	}
	return models.NormalizeNominee(n), nil
}

func requireRow(res sql.Result) error {
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected: %w", err)
	}
	if n == 0 {
		return sentinel.ErrNotFound
	}
	return nil
}

func nullString(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}
