package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"slices"
	"sync"
	"time"

	"github.com/HerbHall/kartstats/internal/store"
)

// Document is a named, opaque value. Collections are stored as one document
// each, so a write replaces the whole collection.
type Document struct {
	Key       string    `json:"key"`
	Value     []byte    `json:"value"`
	UpdatedAt time.Time `json:"updated_at"`
}

// DocumentRepository stores Documents by key.
type DocumentRepository interface {
	// Get returns a document by key, or ErrNotFound.
	Get(ctx context.Context, key string) (*Document, error)

	// Put creates or replaces a document.
	Put(ctx context.Context, key string, value []byte) error

	// Delete removes a document by key, or returns ErrNotFound.
	Delete(ctx context.Context, key string) error

	// Keys lists stored keys in ascending order.
	Keys(ctx context.Context) ([]string, error)
}

// Compile-time interface guards.
var (
	_ DocumentRepository = (*SQLiteDocumentRepository)(nil)
	_ DocumentRepository = (*MemoryDocumentRepository)(nil)
)

// SQLiteDocumentRepository implements DocumentRepository using SQLite.
type SQLiteDocumentRepository struct {
	db *sql.DB
}

// NewSQLiteDocumentRepository creates a DocumentRepository and runs the
// documents migration.
func NewSQLiteDocumentRepository(ctx context.Context, s store.Store) (*SQLiteDocumentRepository, error) {
	if err := s.Migrate(ctx, "documents", documentMigrations); err != nil {
		return nil, fmt.Errorf("documents migrations: %w", err)
	}
	return &SQLiteDocumentRepository{db: s.DB()}, nil
}

func (r *SQLiteDocumentRepository) Get(ctx context.Context, key string) (*Document, error) {
	var d Document
	err := r.db.QueryRowContext(ctx,
		`SELECT key, value, updated_at FROM documents WHERE key = ?`, key,
	).Scan(&d.Key, &d.Value, &d.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get document %q: %w", key, err)
	}
	return &d, nil
}

func (r *SQLiteDocumentRepository) Put(ctx context.Context, key string, value []byte) error {
	now := time.Now().UTC()
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO documents (key, value, updated_at)
		VALUES (?, ?, ?)
		ON CONFLICT (key) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at`,
		key, value, now,
	)
	if err != nil {
		return fmt.Errorf("put document %q: %w", key, err)
	}
	return nil
}

func (r *SQLiteDocumentRepository) Delete(ctx context.Context, key string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM documents WHERE key = ?`, key)
	if err != nil {
		return fmt.Errorf("delete document %q: %w", key, err)
	}
	n, _ := res.RowsAffected()
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *SQLiteDocumentRepository) Keys(ctx context.Context) ([]string, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT key FROM documents ORDER BY key`)
	if err != nil {
		return nil, fmt.Errorf("list documents: %w", err)
	}
	defer rows.Close()

	var keys []string
	for rows.Next() {
		var k string
		if err := rows.Scan(&k); err != nil {
			return nil, fmt.Errorf("scan document key: %w", err)
		}
		keys = append(keys, k)
	}
	return keys, rows.Err()
}

// documentMigrations defines the database schema for documents.
var documentMigrations = []store.Migration{
	{
		Version:     1,
		Description: "create documents table",
		Up: func(tx *sql.Tx) error {
			_, err := tx.Exec(`
				CREATE TABLE documents (
					key        TEXT PRIMARY KEY,
					value      BLOB NOT NULL,
					updated_at DATETIME NOT NULL
				)`)
			return err
		},
	},
}

// MemoryDocumentRepository keeps documents in process memory. It backs
// session-only mode and tests.
type MemoryDocumentRepository struct {
	mu   sync.RWMutex
	docs map[string]Document
}

// NewMemoryDocumentRepository creates an empty MemoryDocumentRepository.
func NewMemoryDocumentRepository() *MemoryDocumentRepository {
	return &MemoryDocumentRepository{docs: make(map[string]Document)}
}

func (r *MemoryDocumentRepository) Get(_ context.Context, key string) (*Document, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	d, ok := r.docs[key]
	if !ok {
		return nil, ErrNotFound
	}
	d.Value = slices.Clone(d.Value)
	return &d, nil
}

func (r *MemoryDocumentRepository) Put(_ context.Context, key string, value []byte) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.docs[key] = Document{Key: key, Value: slices.Clone(value), UpdatedAt: time.Now().UTC()}
	return nil
}

func (r *MemoryDocumentRepository) Delete(_ context.Context, key string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.docs[key]; !ok {
		return ErrNotFound
	}
	delete(r.docs, key)
	return nil
}

func (r *MemoryDocumentRepository) Keys(_ context.Context) ([]string, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	keys := make([]string, 0, len(r.docs))
	for k := range r.docs {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	return keys, nil
}
