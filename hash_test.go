package largeint

import (
	"fmt"
	"testing"

	"github.com/shabbyrobe/golib/assert"
)

func TestHashDeterministic(t *testing.T) {
	tt := assert.WrapTB(t)
	v := FromWords([4]uint64{1, 2, 3, 4})
	for seed := uint64(0); seed < 10; seed++ {
		tt.MustEqual(Hash(v, seed), Hash(v, seed))
	}
	tt.MustAssert(Hash64(1, 0) != Hash64(1, 1))
}

func TestHashFold(t *testing.T) {
	for idx, tc := range []struct {
		words [2]uint64
		seed  uint64
	}{
		{[2]uint64{0, 0}, 0},
		{[2]uint64{1, 0}, 0},
		{[2]uint64{0xdeadbeef, 0xcafebabe}, 7},
		{[2]uint64{maxUint64, maxUint64}, maxUint64},
	} {
		t.Run(fmt.Sprintf("%d", idx), func(t *testing.T) {
			tt := assert.WrapTB(t)
			v := FromWords(tc.words)
			expected := Hash64(tc.words[0], tc.seed) ^ Hash64(tc.words[1], tc.seed)
			tt.MustEqual(expected, Hash(v, tc.seed))

			// Order does not matter to an XOR fold.
			swapped := FromWords([2]uint64{tc.words[1], tc.words[0]})
			tt.MustEqual(Hash(v, tc.seed), Hash(swapped, tc.seed))
		})
	}
}

func TestHashSingleWord(t *testing.T) {
	tt := assert.WrapTB(t)
	for _, k := range []uint64{0, 1, 42, maxUint64} {
		tt.MustEqual(Hash64(k, 99), Hash(U64From64(k), 99))
	}
}

func TestSimpleHash16(t *testing.T) {
	tt := assert.WrapTB(t)

	// Only the 16 bits at shift take part.
	tt.MustEqual(SimpleHash16Uint64(0xabcd, 0), SimpleHash16Uint64(0x1234000000ffabcd&^0xff0000, 0))
	tt.MustEqual(SimpleHash16Uint64(0xabcd, 0), SimpleHash16Uint64(0xabcd<<8, 8))
	tt.MustEqual(SimpleHash16Uint64(0xabcd, 0), SimpleHash16(U256From64(0xabcd).Or(U256From64(1).Lsh(200)), 0))

	tt.MustAssert(SimpleHash16Uint64(0x0001, 0) != SimpleHash16Uint64(0x0100, 0))

	seen := make(map[uint64]bool)
	for i := uint64(0); i < 256; i++ {
		seen[SimpleHash16Uint64(i, 0)] = true
	}
	tt.MustEqual(256, len(seen))
}

func TestHash64Known(t *testing.T) {
	for _, tc := range []struct {
		key, seed, out uint64
	}{
		{0, 0, 0x1f89206e3f8ec794},
		{1, 0, 0x035aa4d90731d05a},
		{1, 1, 0xa8edc6efd25842a1},
		{0xdeadbeef, 42, 0xef4b49617ddc2b1a},
		{maxUint64, maxUint64, 0x913f66d3b1ecd148},
	} {
		t.Run(fmt.Sprintf("%x/%x", tc.key, tc.seed), func(t *testing.T) {
			tt := assert.WrapTB(t)
			tt.MustEqual(tc.out, Hash64(tc.key, tc.seed))
		})
	}
}
