package main

import (
	"context"
	"encoding/hex"
	"fmt"
	"sort"

	"github.com/zeebo/blake3"
	"go.uber.org/zap"

	largeint "github.com/shabbyrobe/go-largeint"
	"github.com/shabbyrobe/go-largeint/internal/storage"
	"github.com/shabbyrobe/go-largeint/kmer"
)

const (
	displayNone = iota
	displayKmers
	displayDistrib
)

type DumpCmd struct {
	DB string `arg:"" type:"existingfile" help:"Storage file written by load"`

	Display    int    `short:"d" default:"0" help:"0: summary only, 1: print every k-mer, 2: print the abundance distribution"`
	Group      string `default:"dsk" help:"Storage group"`
	Collection string `default:"solid" help:"Collection inside the group"`
}

func (c *DumpCmd) Run(g *Globals) error {
	if c.Display < displayNone || c.Display > displayDistrib {
		return fmt.Errorf("display mode %d not supported, must be 0, 1 or 2", c.Display)
	}
	ctx := context.Background()

	st, err := storage.Open(ctx, c.DB)
	if err != nil {
		return err
	}
	defer st.Close()

	group := st.Group(c.Group)
	props, err := group.Properties(ctx)
	if err != nil {
		return err
	}
	fmt.Fprintln(g.Out, props.XML())

	k, err := props.Int("kmer_size")
	if err != nil {
		return err
	}
	nbSolid, err := props.Int("kmers_nb_solid")
	if err != nil {
		return err
	}
	fmt.Fprintf(g.Out, "kmer size:      %d\n", k)
	fmt.Fprintf(g.Out, "nb solid kmers: %d\n", nbSolid)

	if k <= 0 {
		return fmt.Errorf("kmer size %d not supported, must be between 1 and 128", k)
	}
	words, err := wordsFor(uint(k))
	if err != nil {
		return err
	}

	switch words {
	case 1:
		return dump[[1]uint64](ctx, c, g, group, uint(k))
	case 2:
		return dump[[2]uint64](ctx, c, g, group, uint(k))
	case 3:
		return dump[[3]uint64](ctx, c, g, group, uint(k))
	default:
		return dump[[4]uint64](ctx, c, g, group, uint(k))
	}
}

func dump[W largeint.Words](ctx context.Context, c *DumpCmd, g *Globals, group *storage.Group, k uint) error {
	model, err := kmer.NewModel[W](k)
	if err != nil {
		return err
	}
	coll, err := storage.OpenPartition[W](ctx, group, c.Collection, 0)
	if err != nil {
		return err
	}

	var (
		checksum largeint.LargeInt[W]
		distrib  = make(map[uint64]uint64)
		digest   = blake3.New()
		n        int
	)

	err = coll.Iterate(ctx, func(part int, cnt kmer.Count[W]) error {
		n++
		checksum.AddAssign(cnt.Value)
		distrib[cnt.Abundance]++
		_, _ = digest.Write(storage.EncodeValue(cnt.Value))

		if c.Display == displayKmers {
			fmt.Fprintf(g.Out, "[%d]  %s  %v  %d\n", n, model.String(cnt.Value), cnt.Value, cnt.Abundance)
		}
		return nil
	})
	if err != nil {
		return err
	}

	fmt.Fprintf(g.Out, "kmer checksum:  %v\n", checksum)

	if c.Display == displayDistrib {
		abundances := make([]uint64, 0, len(distrib))
		for a := range distrib {
			abundances = append(abundances, a)
		}
		sort.Slice(abundances, func(i, j int) bool { return abundances[i] < abundances[j] })
		for _, a := range abundances {
			fmt.Fprintf(g.Out, "%d  %d\n", a, distrib[a])
		}
	}

	want, ok, err := group.Property(ctx, c.Collection+"_blake3")
	if err != nil {
		return err
	}
	if ok {
		if got := hex.EncodeToString(digest.Sum(nil)); got != want {
			return fmt.Errorf("%s: collection %q digest mismatch: stored %s, computed %s", c.DB, c.Collection, want, got)
		}
	}

	g.Log.Debug("dumped k-mers",
		zap.String("db", c.DB),
		zap.String("type", checksum.Name()),
		zap.Int("kmers", n),
		zap.Int("partitions", coll.Size()))
	return nil
}
