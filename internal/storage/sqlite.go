// Package storage provides the data persistence layer for the ledger.
//
// State lives in two JSON documents, the expense list and the category
// registry, kept in a SQLite key-value table. Both documents are read
// once when the store opens; the in-memory copies are authoritative for
// the session and are rewritten to disk after every mutation. A failed
// write is logged and swallowed so a full disk never breaks a mutation.
package storage

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sync"

	"cardledger/internal/model"
	"cardledger/internal/rules"

	_ "github.com/mattn/go-sqlite3" // SQLite driver
)

// Document names for the two persisted entries.
const (
	docExpenses   = "expenses"
	docCategories = "categories"
)

// SQLiteStore holds the expense collection and category registry backed
// by a SQLite document table.
type SQLiteStore struct {
	db         *sql.DB
	dbPath     string
	expenses   []model.Expense
	categories []model.Category
	mu         sync.Mutex
}

// NewSQLiteStore opens (creating if needed) the database at dbPath.
// Callers must run Migrate and Load before using the store.
func NewSQLiteStore(dbPath string) (*SQLiteStore, error) {
	if err := validateString(dbPath, "dbPath"); err != nil {
		return nil, err
	}

	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0750); err != nil {
		return nil, fmt.Errorf("failed to create database directory: %w", err)
	}

	db, err := sql.Open("sqlite3", dbPath+"?_journal_mode=WAL&_busy_timeout=5000")
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// SQLite doesn't benefit from multiple connections
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(0)

	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return &SQLiteStore{db: db, dbPath: dbPath}, nil
}

// Close closes the database connection.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

// Load reads both documents into memory. A missing expenses document
// starts the session empty; a missing categories document seeds the
// default registry (and persists it).
func (s *SQLiteStore) Load(ctx context.Context) error {
	if err := validateContext(ctx); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	var expenses []model.Expense
	found, err := s.readDocument(ctx, docExpenses, &expenses)
	if err != nil {
		return fmt.Errorf("failed to load expenses: %w", err)
	}
	if !found {
		expenses = []model.Expense{}
	}
	s.expenses = expenses

	var categories []model.Category
	found, err = s.readDocument(ctx, docCategories, &categories)
	if err != nil {
		return fmt.Errorf("failed to load categories: %w", err)
	}
	if !found {
		categories = rules.Defaults()
		s.persist(ctx, docCategories, categories)
	}
	s.categories = categories

	slog.Debug("loaded documents",
		"expenses", len(s.expenses),
		"categories", len(s.categories))
	return nil
}

func (s *SQLiteStore) readDocument(ctx context.Context, name string, v any) (bool, error) {
	var body []byte
	err := s.db.QueryRowContext(ctx,
		`SELECT body FROM documents WHERE name = ?`, name).Scan(&body)
	if err == sql.ErrNoRows {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("failed to query document %q: %w", name, err)
	}
	if err := json.Unmarshal(body, v); err != nil {
		return false, fmt.Errorf("failed to decode document %q: %w", name, err)
	}
	return true, nil
}

// persist rewrites one document. Persistence failures are deliberately
// swallowed: the in-memory state stays authoritative for the session.
func (s *SQLiteStore) persist(ctx context.Context, name string, v any) {
	body, err := json.Marshal(v)
	if err != nil {
		slog.Warn("failed to encode document, keeping in-memory state",
			"document", name, "error", err)
		return
	}

	_, err = s.db.ExecContext(ctx, `
		INSERT INTO documents (name, body, updated_at)
		VALUES (?, ?, CURRENT_TIMESTAMP)
		ON CONFLICT(name) DO UPDATE SET
			body = excluded.body,
			updated_at = excluded.updated_at`,
		name, body)
	if err != nil {
		slog.Warn("failed to persist document, keeping in-memory state",
			"document", name, "error", err)
	}
}
