// Package store persists saved palettes and their derived tokens in a
// local sqlite database. At most five records are retained; saving a
// sixth evicts the oldest.
package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"

	"github.com/chromata/chromata/internal/colour"
)

// MaxRecords is the retention cap. Oldest records are evicted first.
const MaxRecords = 5

// Record is one saved palette with its derived token sets. A stored
// palette is a valid re-entry point for token derivation: Get returns it
// in exactly the shape AssemblePalette produced it.
type Record struct {
	ID        string          `json:"id"`
	Name      string          `json:"name"`
	CreatedAt time.Time       `json:"timestamp"`
	Palette   []colour.Swatch `json:"palette"`
	Tokens    colour.Themes   `json:"tokens"`
}

// Store wraps the sqlite database holding saved palettes.
type Store struct {
	db *sql.DB
}

const schema = `
CREATE TABLE IF NOT EXISTS palettes (
	id         TEXT PRIMARY KEY,
	name       TEXT NOT NULL,
	created_at INTEGER NOT NULL,
	palette    TEXT NOT NULL,
	tokens     TEXT NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_palettes_created_at ON palettes(created_at);
`

// Open opens (creating if needed) the palette store at dbPath.
func Open(dbPath string) (*Store, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0o755); err != nil {
		return nil, fmt.Errorf("create db directory: %w", err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}

	pragmas := []string{
		"PRAGMA journal_mode=WAL;",
		"PRAGMA busy_timeout=5000;",
	}
	for _, pragma := range pragmas {
		if _, err := db.Exec(pragma); err != nil {
			db.Close()
			return nil, fmt.Errorf("apply sqlite pragma %q: %w", pragma, err)
		}
	}

	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("create schema: %w", err)
	}

	return &Store{db: db}, nil
}

// Close closes the underlying database.
func (s *Store) Close() error {
	return s.db.Close()
}

// Save inserts a new record and evicts the oldest rows beyond MaxRecords.
func (s *Store) Save(ctx context.Context, name string, palette []colour.Swatch, tokens colour.Themes) (Record, error) {
	rec := Record{
		ID:        uuid.NewString(),
		Name:      name,
		CreatedAt: time.Now().UTC(),
		Palette:   palette,
		Tokens:    tokens,
	}

	paletteJSON, err := json.Marshal(rec.Palette)
	if err != nil {
		return Record{}, fmt.Errorf("encode palette: %w", err)
	}
	tokensJSON, err := json.Marshal(rec.Tokens)
	if err != nil {
		return Record{}, fmt.Errorf("encode tokens: %w", err)
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return Record{}, fmt.Errorf("begin transaction: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck

	if _, err := tx.ExecContext(ctx,
		`INSERT INTO palettes (id, name, created_at, palette, tokens) VALUES (?, ?, ?, ?, ?)`,
		rec.ID, rec.Name, rec.CreatedAt.UnixMilli(), string(paletteJSON), string(tokensJSON),
	); err != nil {
		return Record{}, fmt.Errorf("insert palette: %w", err)
	}

	if _, err := tx.ExecContext(ctx,
		`DELETE FROM palettes WHERE id NOT IN (
			SELECT id FROM palettes ORDER BY created_at DESC, id DESC LIMIT ?
		)`, MaxRecords,
	); err != nil {
		return Record{}, fmt.Errorf("evict old palettes: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return Record{}, fmt.Errorf("commit: %w", err)
	}
	return rec, nil
}

// List returns all records, newest first.
func (s *Store) List(ctx context.Context) ([]Record, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, name, created_at, palette, tokens FROM palettes ORDER BY created_at DESC, id DESC`)
	if err != nil {
		return nil, fmt.Errorf("query palettes: %w", err)
	}
	defer rows.Close()

	var records []Record
	for rows.Next() {
		rec, err := scanRecord(rows)
		if err != nil {
			return nil, err
		}
		records = append(records, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate palettes: %w", err)
	}
	return records, nil
}

// Get returns the record with the given id, or an id prefix when the
// prefix is unambiguous.
func (s *Store) Get(ctx context.Context, id string) (Record, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, name, created_at, palette, tokens FROM palettes WHERE id = ? OR id LIKE ? ORDER BY created_at DESC`,
		id, id+"%")
	if err != nil {
		return Record{}, fmt.Errorf("query palette: %w", err)
	}
	defer rows.Close()

	var matches []Record
	for rows.Next() {
		rec, err := scanRecord(rows)
		if err != nil {
			return Record{}, err
		}
		matches = append(matches, rec)
	}
	if err := rows.Err(); err != nil {
		return Record{}, fmt.Errorf("iterate palettes: %w", err)
	}

	switch len(matches) {
	case 0:
		return Record{}, fmt.Errorf("no saved palette matches %q", id)
	case 1:
		return matches[0], nil
	default:
		return Record{}, fmt.Errorf("id %q is ambiguous (%d matches)", id, len(matches))
	}
}

// Delete removes the record with the given id.
func (s *Store) Delete(ctx context.Context, id string) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM palettes WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("delete palette: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete palette: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("no saved palette with id %q", id)
	}
	return nil
}

func scanRecord(rows *sql.Rows) (Record, error) {
	var rec Record
	var createdAt int64
	var paletteJSON, tokensJSON string

	if err := rows.Scan(&rec.ID, &rec.Name, &createdAt, &paletteJSON, &tokensJSON); err != nil {
		return Record{}, fmt.Errorf("scan palette row: %w", err)
	}
	rec.CreatedAt = time.UnixMilli(createdAt).UTC()

	if err := json.Unmarshal([]byte(paletteJSON), &rec.Palette); err != nil {
		return Record{}, fmt.Errorf("decode palette: %w", err)
	}
	if err := json.Unmarshal([]byte(tokensJSON), &rec.Tokens); err != nil {
		return Record{}, fmt.Errorf("decode tokens: %w", err)
	}
	return rec, nil
}
