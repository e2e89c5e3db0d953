package main

import (
	"bufio"
	"context"
	"encoding/hex"
	"fmt"
	"io"
	"math"
	"os"
	"slices"
	"strconv"
	"strings"

	"github.com/ulikunitz/xz"
	"github.com/zeebo/blake3"
	"go.uber.org/zap"

	largeint "github.com/shabbyrobe/go-largeint"
	"github.com/shabbyrobe/go-largeint/internal/storage"
	"github.com/shabbyrobe/go-largeint/kmer"
)

type LoadCmd struct {
	Input string `arg:"" type:"existingfile" help:"Text table, one 'SEQUENCE ABUNDANCE' per line; .xz files are decompressed"`
	DB    string `arg:"" type:"path" help:"Storage file to write"`

	KmerSize   uint   `name:"kmer-size" short:"k" default:"31" help:"Length of the k-mers in the table"`
	Partitions int    `short:"p" default:"32" help:"Number of partitions to spread the k-mers over"`
	Group      string `default:"dsk" help:"Storage group"`
	Collection string `default:"solid" help:"Collection inside the group"`
}

func (c *LoadCmd) Run(g *Globals) error {
	words, err := wordsFor(c.KmerSize)
	if err != nil {
		return err
	}
	if c.Partitions <= 0 || uint64(c.Partitions) > math.MaxUint32 {
		return fmt.Errorf("partition count %d must be between 1 and %d", c.Partitions, uint32(math.MaxUint32))
	}
	ctx := context.Background()

	switch words {
	case 1:
		return load[[1]uint64](ctx, c, g)
	case 2:
		return load[[2]uint64](ctx, c, g)
	case 3:
		return load[[3]uint64](ctx, c, g)
	default:
		return load[[4]uint64](ctx, c, g)
	}
}

func openInput(path string) (io.ReadCloser, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	if !strings.HasSuffix(path, ".xz") {
		return f, nil
	}

	xr, err := xz.NewReader(bufio.NewReader(f))
	if err != nil {
		_ = f.Close()
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return struct {
		io.Reader
		io.Closer
	}{xr, f}, nil
}

// readCounts parses the table, folding each k-mer onto its canonical form and
// summing the abundances of k-mers that share one.
func readCounts[W largeint.Words](r io.Reader, model *kmer.Model[W]) (map[largeint.LargeInt[W]]uint64, error) {
	counts := make(map[largeint.LargeInt[W]]uint64)

	scanner := bufio.NewScanner(r)
	line := 0
	for scanner.Scan() {
		line++
		text := strings.TrimSpace(scanner.Text())
		if text == "" || text[0] == '#' {
			continue
		}

		fields := strings.Fields(text)
		if len(fields) != 2 {
			return nil, fmt.Errorf("line %d: expected 'SEQUENCE ABUNDANCE', found %q", line, text)
		}
		v, err := model.Encode(fields[0])
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", line, err)
		}
		abundance, err := strconv.ParseUint(fields[1], 10, 64)
		if err != nil {
			return nil, fmt.Errorf("line %d: abundance: %w", line, err)
		}
		counts[model.Canonical(v)] += abundance
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return counts, nil
}

func load[W largeint.Words](ctx context.Context, c *LoadCmd, g *Globals) error {
	model, err := kmer.NewModel[W](c.KmerSize)
	if err != nil {
		return err
	}

	in, err := openInput(c.Input)
	if err != nil {
		return err
	}
	counts, err := readCounts(in, model)
	_ = in.Close()
	if err != nil {
		return fmt.Errorf("%s: %w", c.Input, err)
	}

	st, err := storage.Open(ctx, c.DB)
	if err != nil {
		return err
	}
	defer st.Close()

	group := st.Group(c.Group)
	kmerSize := strconv.FormatUint(uint64(c.KmerSize), 10)
	if stored, ok, err := group.Property(ctx, "kmer_size"); err != nil {
		return err
	} else if ok && stored != kmerSize {
		return fmt.Errorf("%s: group %q holds %s-mers, not %s-mers", c.DB, c.Group, stored, kmerSize)
	}

	coll, err := storage.OpenPartition[W](ctx, group, c.Collection, c.Partitions)
	if err != nil {
		return err
	}
	if n, err := coll.Len(ctx); err != nil {
		return err
	} else if n > 0 {
		return fmt.Errorf("%s: collection %q already holds %d counts", c.DB, c.Collection, n)
	}

	// An existing empty collection keeps the partition count it was created with.
	parts := make([][]kmer.Count[W], coll.Size())
	for v, abundance := range counts {
		p, err := model.Partition(v, uint32(coll.Size()))
		if err != nil {
			return err
		}
		parts[p] = append(parts[p], kmer.Count[W]{Value: v, Abundance: abundance})
	}

	digest := blake3.New()
	for _, part := range parts {
		slices.SortFunc(part, func(a, b kmer.Count[W]) int { return a.Value.Cmp(b.Value) })
		for _, cnt := range part {
			_, _ = digest.Write(storage.EncodeValue(cnt.Value))
		}
	}
	if err := coll.InsertAll(ctx, parts); err != nil {
		return err
	}

	props := [][2]string{
		{"kmer_size", kmerSize},
		{"kmers_nb_solid", strconv.Itoa(len(counts))},
		{c.Collection + "_blake3", hex.EncodeToString(digest.Sum(nil))},
	}
	for _, kv := range props {
		if err := group.SetProperty(ctx, kv[0], kv[1]); err != nil {
			return err
		}
	}

	g.Log.Info("loaded k-mers",
		zap.String("input", c.Input),
		zap.String("db", c.DB),
		zap.String("type", largeint.LargeInt[W]{}.Name()),
		zap.Int("kmers", len(counts)),
		zap.Int("partitions", coll.Size()))

	fmt.Fprintf(g.Out, "loaded %d solid kmers into %s\n", len(counts), c.DB)
	return nil
}
