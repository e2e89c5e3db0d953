// Package kmer converts between nucleotide strings and k-mers packed two
// bits per nucleotide into a largeint.LargeInt.
//
// The first nucleotide of a k-mer is the most significant. Codes are A=0,
// C=1, T=2, G=3, which makes the complement of a code code^2.
package kmer

import (
	"fmt"

	"github.com/brickingsoft/errors"

	largeint "github.com/shabbyrobe/go-largeint"
)

var (
	ErrInvalidNucleotide = errors.Define("invalid nucleotide")
	ErrLength            = errors.Define("sequence length does not match kmer size")
)

const (
	errMetaPkgKey = "pkg"
	errMetaPkgVal = "kmer"
	errMetaOpKey  = "op"
)

const codeToNT = "ACTG"

var ntToCode [256]int8

func init() {
	for i := range ntToCode {
		ntToCode[i] = -1
	}
	for code, nt := range codeToNT {
		ntToCode[nt] = int8(code)
		ntToCode[nt|0x20] = int8(code) // lower case
	}
}

// Count pairs a k-mer with the number of times it was seen.
type Count[W largeint.Words] struct {
	Value     largeint.LargeInt[W]
	Abundance uint64
}

// Kmer is a single window produced by Model.Iterate.
type Kmer[W largeint.Words] struct {
	Forward largeint.LargeInt[W]
	Reverse largeint.LargeInt[W]
	Pos     int
}

// Canonical returns the lesser of the forward and reverse complement values.
func (k Kmer[W]) Canonical() largeint.LargeInt[W] {
	return largeint.Smaller(k.Forward, k.Reverse)
}

// Model knows the kmer size and how to pack and unpack k-mers of that size.
type Model[W largeint.Words] struct {
	k    uint
	mask largeint.LargeInt[W]
}

// NewModel creates a Model for k-mers of size k. k must be between 1 and the
// number of nucleotides W can hold.
func NewModel[W largeint.Words](k uint) (*Model[W], error) {
	var zero largeint.LargeInt[W]
	if k == 0 || k > uint(zero.Size()/2) {
		return nil, errors.From(
			largeint.ErrKmerSize,
			errors.WithMeta(errMetaPkgKey, errMetaPkgVal),
			errors.WithMeta(errMetaOpKey, "model"),
			errors.WithWrap(fmt.Errorf("kmer size %d does not fit %s", k, zero.Name())),
		)
	}

	// (1 << 2k) - 1; when 2k is the full width the shift gives 0 and the
	// subtraction wraps to all ones, which is still the right mask.
	one := largeint.From64[W](1)
	mask := one.Lsh(2 * k).Sub(one)

	return &Model[W]{k: k, mask: mask}, nil
}

func (m *Model[W]) KmerSize() uint { return m.k }

// Encode packs seq, which must be exactly KmerSize() nucleotides long.
func (m *Model[W]) Encode(seq string) (v largeint.LargeInt[W], err error) {
	if uint(len(seq)) != m.k {
		return v, errors.From(
			ErrLength,
			errors.WithMeta(errMetaPkgKey, errMetaPkgVal),
			errors.WithMeta(errMetaOpKey, "encode"),
			errors.WithWrap(fmt.Errorf("sequence of length %d cannot be encoded as a %d-mer", len(seq), m.k)),
		)
	}

	for i := 0; i < len(seq); i++ {
		code := ntToCode[seq[i]]
		if code < 0 {
			return v, errInvalidNucleotide(seq[i], i)
		}
		v = v.Lsh(2).Or(largeint.From64[W](uint64(code)))
	}
	return v, nil
}

// String unpacks v into KmerSize() nucleotides.
func (m *Model[W]) String(v largeint.LargeInt[W]) string {
	out := make([]byte, m.k)
	for i := int(m.k) - 1; i >= 0; i-- {
		out[i] = codeToNT[v.AndUint8(3).AsUint64()]
		v = v.Rsh(2)
	}
	return string(out)
}

func (m *Model[W]) RevComp(v largeint.LargeInt[W]) largeint.LargeInt[W] {
	rc, err := largeint.RevComp(v, m.k)
	if err != nil {
		// m.k was checked against W in NewModel.
		panic(err)
	}
	return rc
}

// Canonical returns the lesser of v and its reverse complement, so a k-mer
// and its reverse complement share a key.
func (m *Model[W]) Canonical(v largeint.LargeInt[W]) largeint.LargeInt[W] {
	return largeint.Smaller(v, m.RevComp(v))
}

// Iterate calls fn for every window of KmerSize() nucleotides in seq. Windows
// spanning a symbol other than ACGT are skipped. Iteration stops at the first
// error returned by fn.
func (m *Model[W]) Iterate(seq string, fn func(k Kmer[W]) error) error {
	var fwd, rev largeint.LargeInt[W]
	var filled uint
	top := 2 * (m.k - 1)

	for i := 0; i < len(seq); i++ {
		code := ntToCode[seq[i]]
		if code < 0 {
			fwd, rev, filled = largeint.LargeInt[W]{}, largeint.LargeInt[W]{}, 0
			continue
		}

		c := largeint.From64[W](uint64(code))
		comp := largeint.From64[W](uint64(code) ^ 2)
		fwd = fwd.Lsh(2).Or(c).And(m.mask)
		rev = rev.Rsh(2).Or(comp.Lsh(top))

		if filled < m.k {
			filled++
		}
		if filled == m.k {
			if err := fn(Kmer[W]{Forward: fwd, Reverse: rev, Pos: i + 1 - int(m.k)}); err != nil {
				return err
			}
		}
	}
	return nil
}

// Partition assigns v to one of nb partitions using its remainder modulo nb.
func (m *Model[W]) Partition(v largeint.LargeInt[W], nb uint32) (uint32, error) {
	return v.Rem32(nb)
}

// Bucket spreads v over nb buckets using SimpleHash16 of its last eight
// nucleotides. It is cheap and good enough for in-memory grouping.
func (m *Model[W]) Bucket(v largeint.LargeInt[W], nb uint64) uint64 {
	if nb == 0 {
		return 0
	}
	return largeint.SimpleHash16(v, 0) % nb
}

// Hash returns the full-width hash of v.
func (m *Model[W]) Hash(v largeint.LargeInt[W], seed uint64) uint64 {
	return largeint.Hash(v, seed)
}

func errInvalidNucleotide(nt byte, pos int) error {
	return errors.From(
		ErrInvalidNucleotide,
		errors.WithMeta(errMetaPkgKey, errMetaPkgVal),
		errors.WithMeta(errMetaOpKey, "encode"),
		errors.WithWrap(fmt.Errorf("symbol %q at position %d", nt, pos)),
	)
}
