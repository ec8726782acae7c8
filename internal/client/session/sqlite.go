package session

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/aerofy/aerofy-cli/internal/client/migrations"
	"github.com/aerofy/aerofy-cli/internal/common"
	"github.com/pressly/goose/v3"

	_ "modernc.org/sqlite"
)

const snapshotKey = "session"

// InitDatabase opens the cache database and applies pending migrations.
func InitDatabase(ctx context.Context, dsn string) (*sql.DB, error) {
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open session db: %w", err)
	}
	if err := runMigrations(ctx, db); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrate session db: %w", err)
	}
	return db, nil
}

func runMigrations(ctx context.Context, db *sql.DB) error {
	goose.SetBaseFS(migrations.Migrations)
	if err := goose.SetDialect("sqlite3"); err != nil {
		return err
	}
	return goose.UpContext(ctx, db, ".")
}

// SQLiteStore keeps the snapshot as a single JSON value in the metadata
// key/value table.
type SQLiteStore struct {
	db *sql.DB
}

func NewSQLiteStore(db *sql.DB) *SQLiteStore {
	return &SQLiteStore{db: db}
}

func (s *SQLiteStore) Load(ctx context.Context) (*Snapshot, error) {
	var value []byte
	err := s.db.QueryRowContext(ctx, `SELECT value FROM metadata WHERE key = ?`, snapshotKey).Scan(&value)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("%w: load session snapshot: %v", common.ErrInternal, err)
	}

	var snap Snapshot
	if err := json.Unmarshal(value, &snap); err != nil {
		// A corrupt snapshot is as good as no snapshot.
		return nil, nil
	}
	return &snap, nil
}

func (s *SQLiteStore) Save(ctx context.Context, snap *Snapshot) error {
	value, err := json.Marshal(snap)
	if err != nil {
		return fmt.Errorf("failed to encode session snapshot: %w", err)
	}
	_, err = s.db.ExecContext(ctx, `
		INSERT INTO metadata (key, value) VALUES (?, ?)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value
	`, snapshotKey, value)
	if err != nil {
		return fmt.Errorf("%w: save session snapshot: %v", common.ErrInternal, err)
	}
	return nil
}

func (s *SQLiteStore) Clear(ctx context.Context) error {
	_, err := s.db.ExecContext(ctx, `DELETE FROM metadata WHERE key = ?`, snapshotKey)
	if err != nil {
		return fmt.Errorf("%w: clear session snapshot: %v", common.ErrInternal, err)
	}
	return nil
}
