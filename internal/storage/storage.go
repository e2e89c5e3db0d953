// Package storage persists k-mer counts in an SQLite database.
//
// A Storage holds named groups. Each group has a set of string properties
// and any number of partitioned collections of (k-mer, abundance) counts.
// The layout follows the one the counting tools write: group "dsk" holds the
// "solid" collection plus the "kmer_size" and "kmers_nb_solid" properties.
package storage

import (
	"context"
	"database/sql"
	"fmt"

	"go.uber.org/zap"

	_ "modernc.org/sqlite" // pure Go driver, registers "sqlite"
)

const driverName = "sqlite"

const schema = `
CREATE TABLE IF NOT EXISTS properties (
	grp   TEXT NOT NULL,
	key   TEXT NOT NULL,
	value TEXT NOT NULL,
	PRIMARY KEY (grp, key)
);
CREATE TABLE IF NOT EXISTS counts (
	grp       TEXT    NOT NULL,
	coll      TEXT    NOT NULL,
	part      INTEGER NOT NULL,
	value     BLOB    NOT NULL,
	abundance INTEGER NOT NULL
);
CREATE INDEX IF NOT EXISTS counts_coll ON counts (grp, coll, part);
`

type Storage struct {
	db   *sql.DB
	path string
}

// Open opens the database at path, creating it and its tables if needed.
// Use ":memory:" for a throwaway database.
func Open(ctx context.Context, path string) (*Storage, error) {
	db, err := sql.Open(driverName, path)
	if err != nil {
		return nil, fmt.Errorf("storage: open %s: %w", path, err)
	}

	// An in-memory database only lives as long as its connection.
	if path == ":memory:" {
		db.SetMaxOpenConns(1)
	}

	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("storage: open %s: %w", path, err)
	}
	if _, err := db.ExecContext(ctx, schema); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("storage: create schema in %s: %w", path, err)
	}

	Logger().Debug("storage opened", zap.String("path", path))
	return &Storage{db: db, path: path}, nil
}

func (s *Storage) Path() string { return s.path }

func (s *Storage) Close() error {
	Logger().Debug("storage closed", zap.String("path", s.path))
	return s.db.Close()
}

// Group returns a handle on the named group. Groups exist implicitly; nothing
// is written until a property or count is stored.
func (s *Storage) Group(name string) *Group {
	return &Group{s: s, name: name}
}

type Group struct {
	s    *Storage
	name string
}

func (g *Group) Name() string { return g.name }

func (g *Group) SetProperty(ctx context.Context, key, value string) error {
	if !validKey(key) {
		return fmt.Errorf("storage: group %q: invalid property key %q", g.name, key)
	}
	_, err := g.s.db.ExecContext(ctx,
		`INSERT INTO properties (grp, key, value) VALUES (?, ?, ?)
		 ON CONFLICT (grp, key) DO UPDATE SET value = excluded.value`,
		g.name, key, value)
	if err != nil {
		return fmt.Errorf("storage: group %q: set property %q: %w", g.name, key, err)
	}
	return nil
}

// Property returns the value stored under key. ok is false if there is none.
func (g *Group) Property(ctx context.Context, key string) (value string, ok bool, err error) {
	row := g.s.db.QueryRowContext(ctx,
		`SELECT value FROM properties WHERE grp = ? AND key = ?`, g.name, key)
	if err := row.Scan(&value); err == sql.ErrNoRows {
		return "", false, nil
	} else if err != nil {
		return "", false, fmt.Errorf("storage: group %q: property %q: %w", g.name, key, err)
	}
	return value, true, nil
}

// Properties returns every property of the group as a Properties document.
func (g *Group) Properties(ctx context.Context) (*Properties, error) {
	rows, err := g.s.db.QueryContext(ctx,
		`SELECT key, value FROM properties WHERE grp = ? ORDER BY key`, g.name)
	if err != nil {
		return nil, fmt.Errorf("storage: group %q: properties: %w", g.name, err)
	}
	defer rows.Close()

	var kvs [][2]string
	for rows.Next() {
		var kv [2]string
		if err := rows.Scan(&kv[0], &kv[1]); err != nil {
			return nil, fmt.Errorf("storage: group %q: properties: %w", g.name, err)
		}
		kvs = append(kvs, kv)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: group %q: properties: %w", g.name, err)
	}

	return ParseProperties(renderProperties(kvs))
}

// validKey accepts keys that are usable as XML element names.
func validKey(key string) bool {
	if key == "" {
		return false
	}
	for i := 0; i < len(key); i++ {
		c := key[i]
		switch {
		case c >= 'a' && c <= 'z', c >= 'A' && c <= 'Z', c == '_':
		case i > 0 && (c >= '0' && c <= '9' || c == '-' || c == '.'):
		default:
			return false
		}
	}
	return true
}
