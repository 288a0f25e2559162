package persistence

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/jmoiron/sqlx"
	_ "modernc.org/sqlite"
)

// Dialect selects the SQL backend.
type Dialect string

const (
	DialectSQLite   Dialect = "sqlite"
	DialectPostgres Dialect = "postgres"
)

// DB is a SaveStore and history table over SQLite or Postgres.
type DB struct {
	conn    *sqlx.DB
	dialect Dialect
}

// Open connects to the database and creates the schema. For SQLite dsn is a
// file path.
func Open(ctx context.Context, dialect Dialect, dsn string) (*DB, error) {
	var driver string
	switch dialect {
	case DialectSQLite:
		driver = "sqlite"
		dsn += "?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)"
	case DialectPostgres:
		driver = "pgx"
		if dsn == "" {
			return nil, errors.New("postgres requires a DSN")
		}
	default:
		return nil, fmt.Errorf("unsupported dialect %q", dialect)
	}

	conn, err := sqlx.Open(driver, dsn)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", dialect, err)
	}
	if dialect == DialectSQLite {
		conn.SetMaxOpenConns(1)
	}

	pingCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()
	if err := conn.PingContext(pingCtx); err != nil {
		conn.Close()
		return nil, fmt.Errorf("ping %s: %w", dialect, err)
	}

	db := &DB{conn: conn, dialect: dialect}
	if err := db.migrate(ctx); err != nil {
		conn.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}
	slog.Info("database opened", "dialect", string(dialect))
	return db, nil
}

// Close closes the connection.
func (db *DB) Close() error {
	return db.conn.Close()
}

func (db *DB) migrate(ctx context.Context) error {
	id := "INTEGER PRIMARY KEY AUTOINCREMENT"
	if db.dialect == DialectPostgres {
		id = "BIGSERIAL PRIMARY KEY"
	}
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS saves (
			key TEXT PRIMARY KEY,
			value TEXT NOT NULL,
			updated_at TIMESTAMP NOT NULL
		)`,
		`CREATE TABLE IF NOT EXISTS monthly_history (
			id ` + id + `,
			year INTEGER NOT NULL,
			month INTEGER NOT NULL,
			budget BIGINT NOT NULL,
			mayor_rating DOUBLE PRECISION NOT NULL,
			happiness DOUBLE PRECISION NOT NULL,
			ecology DOUBLE PRECISION NOT NULL,
			infrastructure DOUBLE PRECISION NOT NULL,
			unemployment DOUBLE PRECISION NOT NULL,
			recorded_at TIMESTAMP NOT NULL
		)`,
		`CREATE INDEX IF NOT EXISTS idx_history_period ON monthly_history(year, month)`,
	}
	for _, s := range stmts {
		if _, err := db.conn.ExecContext(ctx, s); err != nil {
			return err
		}
	}
	return nil
}

// Get returns the blob under key, or ErrNoSave.
func (db *DB) Get(ctx context.Context, key string) ([]byte, error) {
	var value string
	err := db.conn.GetContext(ctx, &value, db.conn.Rebind("SELECT value FROM saves WHERE key = ?"), key)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNoSave
	}
	if err != nil {
		return nil, fmt.Errorf("get %s: %w", key, err)
	}
	return []byte(value), nil
}

// Set upserts the blob under key.
func (db *DB) Set(ctx context.Context, key string, value []byte) error {
	q := db.conn.Rebind(`INSERT INTO saves (key, value, updated_at) VALUES (?, ?, ?)
		ON CONFLICT (key) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at`)
	if _, err := db.conn.ExecContext(ctx, q, key, string(value), time.Now().UTC()); err != nil {
		return fmt.Errorf("set %s: %w", key, err)
	}
	return nil
}

// Clear deletes key. Clearing a missing key is not an error.
func (db *DB) Clear(ctx context.Context, key string) error {
	if _, err := db.conn.ExecContext(ctx, db.conn.Rebind("DELETE FROM saves WHERE key = ?"), key); err != nil {
		return fmt.Errorf("clear %s: %w", key, err)
	}
	return nil
}
