package largeint

import "math/bits"

// Hash64 mixes a single word with a seed. It is the per-word primitive
// behind Hash.
func Hash64(key, seed uint64) uint64 {
	hash := seed
	hash ^= (hash << 7) ^ key*(hash>>3) ^ ^((hash << 11) + (key ^ (hash >> 5)))
	hash = ^hash + (hash << 21) // (hash << 21) - hash - 1
	hash = hash ^ (hash >> 24)
	hash = (hash + (hash << 3)) + (hash << 8) // hash * 265
	hash = hash ^ (hash >> 14)
	hash = (hash + (hash << 2)) + (hash << 4) // hash * 21
	hash = hash ^ (hash >> 28)
	hash = hash + (hash << 31)
	return hash
}

// Hash XORs together the Hash64 of every word of v. XOR is commutative, so
// the word order does not matter.
func Hash[W Words](v LargeInt[W], seed uint64) (result uint64) {
	for i := 0; i < len(v.w); i++ {
		result ^= Hash64(v.w[i], seed)
	}
	return result
}

// simpleHashTable is filled once at init from a fixed splitmix64 stream, so
// SimpleHash16 is stable across runs and processes.
var simpleHashTable [256]uint64

func init() {
	x := uint64(0x5851f42d4c957f2d)
	for i := range simpleHashTable {
		x += 0x9e3779b97f4a7c15
		z := x
		z = (z ^ (z >> 30)) * 0xbf58476d1ce4e5b9
		z = (z ^ (z >> 27)) * 0x94d049bb133111eb
		simpleHashTable[i] = z ^ (z >> 31)
	}
}

// SimpleHash16Uint64 hashes the 16 bits of key starting at bit shift with
// two table lookups. It is much cheaper than Hash64 and collides much more.
func SimpleHash16Uint64(key uint64, shift uint) uint64 {
	input := key >> shift
	res := simpleHashTable[input&0xff]
	input >>= 8
	res ^= bits.RotateLeft64(simpleHashTable[input&0xff], 32)
	return res
}

// SimpleHash16 is SimpleHash16Uint64 applied to the least significant word
// of v; the other words are ignored.
func SimpleHash16[W Words](v LargeInt[W], shift uint) uint64 {
	return SimpleHash16Uint64(v.w[0], shift)
}
