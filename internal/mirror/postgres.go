package mirror

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/xaysimo/xaysimo/internal/apperrors"
	"github.com/xaysimo/xaysimo/internal/core/domain"
)

// The remote schema is one table holding a single row: the whole document as
// its payload, upserted by fixed id.
const (
	storageTable = "erp_storage"
	masterRowID  = "master_db"
)

// postgresMirror pushes the document into a hosted Postgres project.
type postgresMirror struct {
	pool *pgxpool.Pool
}

// NewPostgres connects to the hosted database at databaseURL.
func NewPostgres(ctx context.Context, databaseURL string) (Mirror, error) {
	if databaseURL == "" {
		return nil, fmt.Errorf("mirror database URL cannot be empty")
	}
	config, err := pgxpool.ParseConfig(databaseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to parse mirror database config: %w", err)
	}
	pool, err := pgxpool.NewWithConfig(ctx, config)
	if err != nil {
		return nil, fmt.Errorf("failed to create mirror connection pool: %w", err)
	}
	return &postgresMirror{pool: pool}, nil
}

var _ Mirror = (*postgresMirror)(nil)

func (m *postgresMirror) Name() string { return "postgres" }

// Test performs a cheap select so table-missing and permission problems are
// reported before the first real push.
func (m *postgresMirror) Test(ctx context.Context) error {
	_, err := m.pool.Exec(ctx, fmt.Sprintf("SELECT id FROM %s LIMIT 1", storageTable))
	if err != nil {
		return classifyPgError(err)
	}
	return nil
}

// Push upserts the whole document into the master row.
func (m *postgresMirror) Push(ctx context.Context, data *domain.AppData) error {
	payload, err := json.Marshal(data)
	if err != nil {
		return fmt.Errorf("failed to encode document for mirror: %w", err)
	}
	query := fmt.Sprintf(`INSERT INTO %s (id, payload, updated_at) VALUES ($1, $2, now())
		ON CONFLICT (id) DO UPDATE SET payload = EXCLUDED.payload, updated_at = EXCLUDED.updated_at`, storageTable)
	if _, err := m.pool.Exec(ctx, query, masterRowID, payload); err != nil {
		return classifyPgError(err)
	}
	return nil
}

// Pull reads the master row back, used for startup recovery.
func (m *postgresMirror) Pull(ctx context.Context) (*domain.AppData, error) {
	var payload []byte
	query := fmt.Sprintf("SELECT payload FROM %s WHERE id = $1", storageTable)
	err := m.pool.QueryRow(ctx, query, masterRowID).Scan(&payload)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, apperrors.ErrNotFound
	}
	if err != nil {
		return nil, classifyPgError(err)
	}

	var data domain.AppData
	if err := json.Unmarshal(payload, &data); err != nil {
		return nil, fmt.Errorf("failed to decode mirrored document: %w", err)
	}
	return &data, nil
}

// Close releases the connection pool.
func (m *postgresMirror) Close() {
	m.pool.Close()
}

// classifyPgError maps well-known Postgres error codes onto the mirror error
// taxonomy so the UI can show actionable text.
func classifyPgError(err error) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case "42P01":
			return fmt.Errorf("%w: the '%s' table must be created first", ErrTableMissing, storageTable)
		case "42501":
			return fmt.Errorf("%w: row-level security or grants are blocking access", ErrPermissionDenied)
		case "28P01", "28000":
			return fmt.Errorf("%w: check the connection credentials", ErrBadCredentials)
		}
	}
	return err
}
