// Package data persists resolved card payloads between runs. Cards and
// tokens live in disjoint key spaces, since a token can share a name with
// a real card (Blood token vs. Flesh // Blood).
package data

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	_ "github.com/marcboeker/go-duckdb/v2"

	"github.com/indiecore/bwproxy/pkg/card"
)

// DefaultPath is the cache database location under the user cache dir.
func DefaultPath() string {
	dir, err := os.UserCacheDir()
	if err != nil {
		dir = "."
	}
	return filepath.Join(dir, "bwproxy", "cardcache.db")
}

// InitDuckDB opens (creating if needed) the cache database and ensures
// its tables exist.
func InitDuckDB(path string) (*sql.DB, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("failed to create cache directory: %w", err)
	}

	db, err := sql.Open("duckdb", path)
	if err != nil {
		return nil, err
	}

	for _, table := range []string{"cards", "tokens"} {
		stmt := fmt.Sprintf(
			`CREATE TABLE IF NOT EXISTS %s (name VARCHAR PRIMARY KEY, payload VARCHAR NOT NULL)`,
			table,
		)
		if _, err := db.Exec(stmt); err != nil {
			db.Close()
			return nil, fmt.Errorf("failed to create %s table: %w", table, err)
		}
	}

	return db, nil
}

// Repository is the read-through cache over the two lookup tables.
type Repository struct {
	db *sql.DB
}

func NewRepository(db *sql.DB) *Repository {
	return &Repository{db: db}
}

// Open is the convenience constructor used by the CLI.
func Open(path string) (*Repository, error) {
	db, err := InitDuckDB(path)
	if err != nil {
		return nil, err
	}
	return NewRepository(db), nil
}

func (r *Repository) Close() error {
	return r.db.Close()
}

// normalizeKey folds the lookup name so that spacing and case differences
// hit the same cache row.
func normalizeKey(name string) string {
	return strings.ToLower(strings.Join(strings.Fields(name), " "))
}

func (r *Repository) get(table, name string) (*card.Payload, bool, error) {
	var raw string
	row := r.db.QueryRow(
		fmt.Sprintf(`SELECT payload FROM %s WHERE name = ?`, table),
		normalizeKey(name),
	)
	if err := row.Scan(&raw); err != nil {
		if err == sql.ErrNoRows {
			return nil, false, nil
		}
		return nil, false, err
	}

	var payload card.Payload
	if err := json.Unmarshal([]byte(raw), &payload); err != nil {
		// A corrupt row behaves like a miss; the next store overwrites it.
		return nil, false, nil
	}
	return &payload, true, nil
}

func (r *Repository) put(table, name string, payload *card.Payload) error {
	raw, err := json.Marshal(payload)
	if err != nil {
		return err
	}
	_, err = r.db.Exec(
		fmt.Sprintf(`INSERT OR REPLACE INTO %s (name, payload) VALUES (?, ?)`, table),
		normalizeKey(name), string(raw),
	)
	return err
}

func (r *Repository) GetCard(name string) (*card.Payload, bool, error) {
	return r.get("cards", name)
}

func (r *Repository) PutCard(name string, payload *card.Payload) error {
	return r.put("cards", name, payload)
}

func (r *Repository) GetToken(name string) (*card.Payload, bool, error) {
	return r.get("tokens", name)
}

func (r *Repository) PutToken(name string, payload *card.Payload) error {
	return r.put("tokens", name, payload)
}

// Entry is one cached lookup, as shown by the cache inspection command.
type Entry struct {
	Key      string
	CardName string
	TypeLine string
}

func (r *Repository) list(table string) ([]Entry, error) {
	rows, err := r.db.Query(
		fmt.Sprintf(`SELECT name, payload FROM %s ORDER BY name`, table),
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var entries []Entry
	for rows.Next() {
		var key, raw string
		if err := rows.Scan(&key, &raw); err != nil {
			return nil, err
		}
		var payload card.Payload
		if err := json.Unmarshal([]byte(raw), &payload); err != nil {
			continue
		}
		entries = append(entries, Entry{
			Key:      key,
			CardName: payload.Name,
			TypeLine: payload.TypeLine,
		})
	}
	return entries, rows.Err()
}

func (r *Repository) ListCards() ([]Entry, error)  { return r.list("cards") }
func (r *Repository) ListTokens() ([]Entry, error) { return r.list("tokens") }

// Clear empties both caches.
func (r *Repository) Clear() error {
	for _, table := range []string{"cards", "tokens"} {
		if _, err := r.db.Exec(fmt.Sprintf(`DELETE FROM %s`, table)); err != nil {
			return err
		}
	}
	return nil
}
