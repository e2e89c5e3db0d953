package kmer

import (
	"fmt"
	"math/rand"
	"testing"

	"github.com/brickingsoft/errors"
	"github.com/shabbyrobe/golib/assert"

	largeint "github.com/shabbyrobe/go-largeint"
)

func mustModel[W largeint.Words](t *testing.T, k uint) *Model[W] {
	t.Helper()
	m, err := NewModel[W](k)
	if err != nil {
		t.Fatal(err)
	}
	return m
}

func randSeq(rng *rand.Rand, n int) string {
	out := make([]byte, n)
	for i := range out {
		out[i] = "ACGT"[rng.Intn(4)]
	}
	return string(out)
}

func TestNewModelSize(t *testing.T) {
	for _, tc := range []struct {
		k  uint
		ok bool
	}{
		{0, false},
		{1, true},
		{31, true},
		{32, true},
		{33, false},
	} {
		t.Run(fmt.Sprintf("%d", tc.k), func(t *testing.T) {
			tt := assert.WrapTB(t)
			m, err := NewModel[[1]uint64](tc.k)
			if tc.ok {
				tt.MustOK(err)
				tt.MustEqual(tc.k, m.KmerSize())
			} else {
				tt.MustAssert(errors.Is(err, largeint.ErrKmerSize), "unexpected error %v", err)
			}
		})
	}
}

func TestEncode(t *testing.T) {
	for _, tc := range []struct {
		seq string
		out uint64
	}{
		{"A", 0},
		{"C", 1},
		{"T", 2},
		{"G", 3},
		{"ACGT", 0x1e},
		{"acgt", 0x1e},
		{"GGGG", 0xff},
	} {
		t.Run(tc.seq, func(t *testing.T) {
			tt := assert.WrapTB(t)
			m := mustModel[[1]uint64](t, uint(len(tc.seq)))
			v, err := m.Encode(tc.seq)
			tt.MustOK(err)
			tt.MustEqual(tc.out, v.AsUint64())
		})
	}
}

func TestEncodeErrors(t *testing.T) {
	tt := assert.WrapTB(t)
	m := mustModel[[2]uint64](t, 4)

	_, err := m.Encode("ACNT")
	tt.MustAssert(errors.Is(err, ErrInvalidNucleotide), "unexpected error %v", err)

	_, err = m.Encode("ACG")
	tt.MustAssert(errors.Is(err, ErrLength), "unexpected error %v", err)

	_, err = m.Encode("ACGTA")
	tt.MustAssert(errors.Is(err, ErrLength), "unexpected error %v", err)
}

func testStringRoundTrip[W largeint.Words](t *testing.T, k uint, rng *rand.Rand) {
	tt := assert.WrapTB(t)
	m := mustModel[W](t, k)
	for i := 0; i < 100; i++ {
		seq := randSeq(rng, int(k))
		v, err := m.Encode(seq)
		tt.MustOK(err)
		tt.MustEqual(seq, m.String(v))
	}
}

func TestStringRoundTrip(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	t.Run("k=5", func(t *testing.T) { testStringRoundTrip[[1]uint64](t, 5, rng) })
	t.Run("k=32", func(t *testing.T) { testStringRoundTrip[[1]uint64](t, 32, rng) })
	t.Run("k=33", func(t *testing.T) { testStringRoundTrip[[2]uint64](t, 33, rng) })
	t.Run("k=95", func(t *testing.T) { testStringRoundTrip[[3]uint64](t, 95, rng) })
	t.Run("k=128", func(t *testing.T) { testStringRoundTrip[[4]uint64](t, 128, rng) })
}

func TestRevCompCanonical(t *testing.T) {
	for _, tc := range []struct {
		seq, rc, canonical string
	}{
		{"AACG", "CGTT", "AACG"},
		{"TTTT", "AAAA", "AAAA"},
		{"ACGT", "ACGT", "ACGT"},
		{"GATTACA", "TGTAATC", "TGTAATC"}, // T=2 < G=3 in the first position
	} {
		t.Run(tc.seq, func(t *testing.T) {
			tt := assert.WrapTB(t)
			m := mustModel[[2]uint64](t, uint(len(tc.seq)))
			v, err := m.Encode(tc.seq)
			tt.MustOK(err)
			tt.MustEqual(tc.rc, m.String(m.RevComp(v)))
			tt.MustEqual(tc.canonical, m.String(m.Canonical(v)))
		})
	}
}

func TestIterate(t *testing.T) {
	tt := assert.WrapTB(t)
	m := mustModel[[1]uint64](t, 3)

	var fwd []string
	var pos []int
	err := m.Iterate("ACGTNACGTA", func(k Kmer[[1]uint64]) error {
		fwd = append(fwd, m.String(k.Forward))
		pos = append(pos, k.Pos)
		tt.MustAssert(k.Reverse.Equal(m.RevComp(k.Forward)))
		tt.MustAssert(k.Canonical().Equal(m.Canonical(k.Forward)))
		return nil
	})
	tt.MustOK(err)
	tt.MustEqual([]string{"ACG", "CGT", "ACG", "CGT", "GTA"}, fwd)
	tt.MustEqual([]int{0, 1, 5, 6, 7}, pos)
}

func testIterateMatchesEncode[W largeint.Words](t *testing.T, k uint, rng *rand.Rand) {
	tt := assert.WrapTB(t)
	m := mustModel[W](t, k)
	seq := randSeq(rng, int(k)+50)

	n := 0
	err := m.Iterate(seq, func(km Kmer[W]) error {
		v, err := m.Encode(seq[km.Pos : km.Pos+int(k)])
		tt.MustOK(err)
		tt.MustAssert(v.Equal(km.Forward), "pos %d: %s != %s", km.Pos, v, km.Forward)
		tt.MustAssert(m.RevComp(v).Equal(km.Reverse), "pos %d", km.Pos)
		n++
		return nil
	})
	tt.MustOK(err)
	tt.MustEqual(51, n)
}

func TestIterateMatchesEncode(t *testing.T) {
	rng := rand.New(rand.NewSource(2))
	t.Run("k=21", func(t *testing.T) { testIterateMatchesEncode[[1]uint64](t, 21, rng) })
	t.Run("k=32", func(t *testing.T) { testIterateMatchesEncode[[1]uint64](t, 32, rng) })
	t.Run("k=63", func(t *testing.T) { testIterateMatchesEncode[[2]uint64](t, 63, rng) })
	t.Run("k=96", func(t *testing.T) { testIterateMatchesEncode[[3]uint64](t, 96, rng) })
	t.Run("k=101", func(t *testing.T) { testIterateMatchesEncode[[4]uint64](t, 101, rng) })
}

func TestIterateStops(t *testing.T) {
	tt := assert.WrapTB(t)
	m := mustModel[[1]uint64](t, 2)
	stop := fmt.Errorf("stop")

	n := 0
	err := m.Iterate("ACGTACGT", func(k Kmer[[1]uint64]) error {
		n++
		if n == 3 {
			return stop
		}
		return nil
	})
	tt.MustEqual(stop, err)
	tt.MustEqual(3, n)
}

func TestPartition(t *testing.T) {
	tt := assert.WrapTB(t)
	m := mustModel[[2]uint64](t, 40)

	p, err := m.Partition(largeint.U128From64(1000003), 32)
	tt.MustOK(err)
	tt.MustEqual(uint32(1000003%32), p)

	// 2**64 % 10 == 6
	p, err = m.Partition(largeint.U128FromRaw(1, 0), 10)
	tt.MustOK(err)
	tt.MustEqual(uint32(6), p)

	_, err = m.Partition(largeint.U128From64(1), 0)
	tt.MustAssert(errors.Is(err, largeint.ErrDivideByZero))
}

func TestBucketHash(t *testing.T) {
	tt := assert.WrapTB(t)
	m := mustModel[[1]uint64](t, 31)
	rng := rand.New(rand.NewSource(3))

	for i := 0; i < 100; i++ {
		v, err := m.Encode(randSeq(rng, 31))
		tt.MustOK(err)
		tt.MustAssert(m.Bucket(v, 7) < 7)
		tt.MustEqual(largeint.Hash(v, 5), m.Hash(v, 5))
	}
	tt.MustEqual(uint64(0), m.Bucket(largeint.U64From64(1), 0))
}

func TestCanonicalSharedWithRevComp(t *testing.T) {
	tt := assert.WrapTB(t)
	m := mustModel[[3]uint64](t, 77)
	rng := rand.New(rand.NewSource(4))

	for i := 0; i < 200; i++ {
		v, err := m.Encode(randSeq(rng, 77))
		tt.MustOK(err)
		rc := m.RevComp(v)
		tt.MustAssert(m.Canonical(v).Equal(m.Canonical(rc)))
		tt.MustAssert(m.RevComp(rc).Equal(v))
	}
}
