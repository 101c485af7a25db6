package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	_ "github.com/mattn/go-sqlite3"

	"github.com/boogeyman0929/chat-backend/internal/store"
)

const schema = `
CREATE TABLE IF NOT EXISTS access_keys (
	id         INTEGER PRIMARY KEY AUTOINCREMENT,
	label      TEXT NOT NULL,
	key_hash   TEXT NOT NULL,
	created_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
);
`

// SQLiteStore implements store.KeyStore for SQLite.
type SQLiteStore struct {
	db *sql.DB
}

// New opens (or creates) the database at dbPath and applies the schema.
func New(dbPath string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite3", dbPath+"?_journal_mode=WAL&_busy_timeout=5000")
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}

	// SQLite works best with a single connection.
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)

	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("apply schema: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping sqlite: %w", err)
	}

	return &SQLiteStore{db: db}, nil
}

// Close closes the database connection.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

// CreateKey stores a new key hash under a label.
func (s *SQLiteStore) CreateKey(ctx context.Context, label, keyHash string) (*store.AccessKey, error) {
	result, err := s.db.ExecContext(ctx,
		`INSERT INTO access_keys (label, key_hash) VALUES (?, ?)`, label, keyHash)
	if err != nil {
		return nil, fmt.Errorf("insert access key: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("get last insert id: %w", err)
	}

	return s.getKey(ctx, id)
}

func (s *SQLiteStore) getKey(ctx context.Context, id int64) (*store.AccessKey, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT id, label, key_hash, created_at FROM access_keys WHERE id = ?`, id)

	var k store.AccessKey
	if err := row.Scan(&k.ID, &k.Label, &k.KeyHash, &k.CreatedAt); err != nil {
		return nil, fmt.Errorf("scan access key: %w", err)
	}
	return &k, nil
}

// ListKeys returns all provisioned keys, oldest first.
func (s *SQLiteStore) ListKeys(ctx context.Context) ([]*store.AccessKey, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, label, key_hash, created_at FROM access_keys ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("query access keys: %w", err)
	}
	defer rows.Close()

	var keys []*store.AccessKey
	for rows.Next() {
		var k store.AccessKey
		if err := rows.Scan(&k.ID, &k.Label, &k.KeyHash, &k.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan access key: %w", err)
		}
		keys = append(keys, &k)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate access keys: %w", err)
	}
	return keys, nil
}

// DeleteKey removes a key by ID.
func (s *SQLiteStore) DeleteKey(ctx context.Context, id int64) error {
	if _, err := s.db.ExecContext(ctx, `DELETE FROM access_keys WHERE id = ?`, id); err != nil {
		return fmt.Errorf("delete access key: %w", err)
	}
	return nil
}
