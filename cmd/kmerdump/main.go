// Command kmerdump loads k-mer count tables into a storage file and dumps
// them back as nucleotides, with a checksum and an abundance histogram.
package main

import (
	"fmt"
	"io"
	"os"

	"github.com/alecthomas/kong"
	"go.uber.org/zap"

	"github.com/shabbyrobe/go-largeint/internal/storage"
)

const version = "0.1.0"

// CLI defines the command-line interface for kmerdump.
var CLI struct {
	Verbose bool `short:"v" env:"KMERDUMP_VERBOSE" help:"Log debug output to stderr"`

	Load    LoadCmd    `cmd:"" help:"Load a SEQUENCE ABUNDANCE table into a storage file"`
	Dump    DumpCmd    `cmd:"" help:"Iterate the solid k-mers of a storage file"`
	Version VersionCmd `cmd:"" help:"Print version information"`
}

// Globals is bound into every command's Run.
type Globals struct {
	Log *zap.Logger
	Out io.Writer
}

type VersionCmd struct{}

func (c *VersionCmd) Run(g *Globals) error {
	fmt.Fprintf(g.Out, "kmerdump %s\n", version)
	return nil
}

func newLogger(verbose bool) (*zap.Logger, error) {
	if verbose {
		return zap.NewDevelopment()
	}
	cfg := zap.NewProductionConfig()
	cfg.Level = zap.NewAtomicLevelAt(zap.WarnLevel)
	return cfg.Build()
}

// wordsFor returns how many 64-bit words hold a k-mer of size k.
func wordsFor(k uint) (int, error) {
	words := int((k + 31) / 32)
	if k == 0 || words > 4 {
		return 0, fmt.Errorf("kmer size %d not supported, must be between 1 and 128", k)
	}
	return words, nil
}

func main() {
	ctx := kong.Parse(&CLI,
		kong.Name("kmerdump"),
		kong.Description("Load and dump solid k-mer counts"),
		kong.UsageOnError(),
		kong.ConfigureHelp(kong.HelpOptions{
			Compact: true,
		}),
	)

	log, err := newLogger(CLI.Verbose)
	ctx.FatalIfErrorf(err)
	defer func() { _ = log.Sync() }()

	storage.SetLogger(log.Named("storage"))

	err = ctx.Run(&Globals{Log: log, Out: os.Stdout})
	ctx.FatalIfErrorf(err)
}
