package storage

import (
	"context"
	"database/sql"
	"encoding/binary"
	"fmt"
	"strconv"

	"go.uber.org/zap"

	largeint "github.com/shabbyrobe/go-largeint"
	"github.com/shabbyrobe/go-largeint/kmer"
)

// Partition is a collection of counts split into a fixed number of
// partitions. Values are stored as 8*W little-endian bytes, so a collection
// written with one width cannot be read back with another.
type Partition[W largeint.Words] struct {
	g    *Group
	name string
	nb   int
}

// OpenPartition returns the collection called name in g, creating it with nb
// partitions if it does not exist. An existing collection keeps the number of
// partitions and width it was created with; asking for a different width is
// an error.
func OpenPartition[W largeint.Words](ctx context.Context, g *Group, name string, nb int) (*Partition[W], error) {
	var zero largeint.LargeInt[W]
	words := zero.Size() / 64

	nbKey, wordsKey := name+"_nb_partitions", name+"_words"

	if s, ok, err := g.Property(ctx, nbKey); err != nil {
		return nil, err
	} else if ok {
		if nb, err = strconv.Atoi(s); err != nil {
			return nil, fmt.Errorf("storage: collection %q: bad partition count %q: %w", name, s, err)
		}
		ws, _, err := g.Property(ctx, wordsKey)
		if err != nil {
			return nil, err
		}
		if ws != strconv.Itoa(words) {
			return nil, fmt.Errorf("storage: collection %q holds %s-word values, not %d", name, ws, words)
		}

	} else {
		if nb <= 0 {
			return nil, fmt.Errorf("storage: collection %q: partition count %d must be positive", name, nb)
		}
		if err := g.SetProperty(ctx, nbKey, strconv.Itoa(nb)); err != nil {
			return nil, err
		}
		if err := g.SetProperty(ctx, wordsKey, strconv.Itoa(words)); err != nil {
			return nil, err
		}
		Logger().Debug("collection created",
			zap.String("group", g.name), zap.String("collection", name),
			zap.Int("partitions", nb), zap.String("type", zero.Name()))
	}

	return &Partition[W]{g: g, name: name, nb: nb}, nil
}

func (p *Partition[W]) Name() string { return p.name }

// Size returns the number of partitions.
func (p *Partition[W]) Size() int { return p.nb }

// Insert appends counts to partition part in a single transaction.
func (p *Partition[W]) Insert(ctx context.Context, part int, counts ...kmer.Count[W]) error {
	if err := p.checkPart(part); err != nil {
		return err
	}
	return p.insert(ctx, func(stmt *sql.Stmt) error {
		return p.insertPart(ctx, stmt, part, counts)
	})
}

// InsertAll appends parts[i] to partition i. Every count is written in one
// transaction, so either all of them are stored or none is.
func (p *Partition[W]) InsertAll(ctx context.Context, parts [][]kmer.Count[W]) error {
	if len(parts) > p.nb {
		return fmt.Errorf("storage: collection %q: %d partitions given, collection has %d", p.name, len(parts), p.nb)
	}
	return p.insert(ctx, func(stmt *sql.Stmt) error {
		for part, counts := range parts {
			if err := p.insertPart(ctx, stmt, part, counts); err != nil {
				return err
			}
		}
		return nil
	})
}

func (p *Partition[W]) checkPart(part int) error {
	if part < 0 || part >= p.nb {
		return fmt.Errorf("storage: collection %q: partition %d out of range [0, %d)", p.name, part, p.nb)
	}
	return nil
}

func (p *Partition[W]) insert(ctx context.Context, fn func(stmt *sql.Stmt) error) error {
	tx, err := p.g.s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("storage: collection %q: insert: %w", p.name, err)
	}
	defer func() { _ = tx.Rollback() }()

	stmt, err := tx.PrepareContext(ctx,
		`INSERT INTO counts (grp, coll, part, value, abundance) VALUES (?, ?, ?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("storage: collection %q: insert: %w", p.name, err)
	}
	defer stmt.Close()

	if err := fn(stmt); err != nil {
		return err
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("storage: collection %q: insert: %w", p.name, err)
	}
	return nil
}

func (p *Partition[W]) insertPart(ctx context.Context, stmt *sql.Stmt, part int, counts []kmer.Count[W]) error {
	for _, c := range counts {
		if _, err := stmt.ExecContext(ctx, p.g.name, p.name, part, EncodeValue(c.Value), int64(c.Abundance)); err != nil {
			return fmt.Errorf("storage: collection %q: insert: %w", p.name, err)
		}
	}
	return nil
}

// Iterate calls fn for every count, partition by partition, in insertion
// order. Iteration stops at the first error returned by fn.
func (p *Partition[W]) Iterate(ctx context.Context, fn func(part int, c kmer.Count[W]) error) error {
	rows, err := p.g.s.db.QueryContext(ctx,
		`SELECT part, value, abundance FROM counts WHERE grp = ? AND coll = ? ORDER BY part, rowid`,
		p.g.name, p.name)
	if err != nil {
		return fmt.Errorf("storage: collection %q: iterate: %w", p.name, err)
	}
	defer rows.Close()

	for rows.Next() {
		var (
			part      int
			raw       []byte
			abundance int64
		)
		if err := rows.Scan(&part, &raw, &abundance); err != nil {
			return fmt.Errorf("storage: collection %q: iterate: %w", p.name, err)
		}
		v, err := DecodeValue[W](raw)
		if err != nil {
			return fmt.Errorf("storage: collection %q: iterate: %w", p.name, err)
		}
		if err := fn(part, kmer.Count[W]{Value: v, Abundance: uint64(abundance)}); err != nil {
			return err
		}
	}
	if err := rows.Err(); err != nil {
		return fmt.Errorf("storage: collection %q: iterate: %w", p.name, err)
	}
	return nil
}

// Len returns the number of counts across all partitions.
func (p *Partition[W]) Len(ctx context.Context) (n int64, err error) {
	row := p.g.s.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM counts WHERE grp = ? AND coll = ?`, p.g.name, p.name)
	if err := row.Scan(&n); err != nil {
		return 0, fmt.Errorf("storage: collection %q: len: %w", p.name, err)
	}
	return n, nil
}

// EncodeValue returns the words of v as little-endian bytes, word 0 first.
func EncodeValue[W largeint.Words](v largeint.LargeInt[W]) []byte {
	w := v.Words()
	buf := make([]byte, 8*len(w))
	for i := 0; i < len(w); i++ {
		binary.LittleEndian.PutUint64(buf[8*i:], w[i])
	}
	return buf
}

func DecodeValue[W largeint.Words](buf []byte) (v largeint.LargeInt[W], err error) {
	var w W
	if len(buf) != 8*len(w) {
		return v, fmt.Errorf("storage: value of %d bytes does not fit %s", len(buf), v.Name())
	}
	for i := 0; i < len(w); i++ {
		w[i] = binary.LittleEndian.Uint64(buf[8*i:])
	}
	return largeint.FromWords(w), nil
}
