package largeint

import "math/big"

// Words is the set of backing arrays a LargeInt can be built on. Word 0 is
// the least significant.
type Words interface {
	[1]uint64 | [2]uint64 | [3]uint64 | [4]uint64
}

type (
	U64  = LargeInt[[1]uint64]
	U128 = LargeInt[[2]uint64]
	U192 = LargeInt[[3]uint64]
	U256 = LargeInt[[4]uint64]
)

const (
	maxUint64 = 1<<64 - 1
	mask32    = 1<<32 - 1

	// nucleotides per 64-bit word
	nucleotidesPerWord = 32

	intSize = 32 << (^uint(0) >> 63)
)

var (
	MaxU64  = Max[[1]uint64]()
	MaxU128 = Max[[2]uint64]()
	MaxU192 = Max[[3]uint64]()
	MaxU256 = Max[[4]uint64]()

	big1 = new(big.Int).SetInt64(1)
)
