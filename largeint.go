package largeint

import (
	"fmt"
	"math/bits"
)

// LargeInt is an unsigned integer of len(W)*64 bits. The zero value is 0.
type LargeInt[W Words] struct {
	w W
}

func From64[W Words](v uint64) (out LargeInt[W]) {
	out.w[0] = v
	return out
}

func FromWords[W Words](w W) LargeInt[W] { return LargeInt[W]{w: w} }

// Max returns the largest value representable with W, all bits set.
func Max[W Words]() (out LargeInt[W]) {
	for i := 0; i < len(out.w); i++ {
		out.w[i] = maxUint64
	}
	return out
}

func U64From64(v uint64) U64   { return From64[[1]uint64](v) }
func U128From64(v uint64) U128 { return From64[[2]uint64](v) }
func U192From64(v uint64) U192 { return From64[[3]uint64](v) }
func U256From64(v uint64) U256 { return From64[[4]uint64](v) }

// U128FromRaw mirrors the hi/lo constructor of a plain 128-bit integer.
func U128FromRaw(hi, lo uint64) U128 { return FromWords([2]uint64{lo, hi}) }

// Name returns the type name including the word count, e.g. "LargeInt<2>".
func (u LargeInt[W]) Name() string { return fmt.Sprintf("LargeInt<%d>", len(u.w)) }

// Size returns the width in bits.
func (u LargeInt[W]) Size() int { return 64 * len(u.w) }

// Words returns a copy of the backing words, least significant first.
func (u LargeInt[W]) Words() W { return u.w }

func (u LargeInt[W]) IsZero() bool {
	for i := 0; i < len(u.w); i++ {
		if u.w[i] != 0 {
			return false
		}
	}
	return true
}

// AsUint64 truncates u to its least significant word.
func (u LargeInt[W]) AsUint64() uint64 { return u.w[0] }

// IsUint64 reports whether u can be represented as a uint64.
func (u LargeInt[W]) IsUint64() bool {
	for i := 1; i < len(u.w); i++ {
		if u.w[i] != 0 {
			return false
		}
	}
	return true
}

func (u LargeInt[W]) Add(n LargeInt[W]) (v LargeInt[W]) {
	var carry uint64
	for i := 0; i < len(u.w); i++ {
		v.w[i], carry = bits.Add64(u.w[i], n.w[i], carry)
	}
	return v
}

func (u LargeInt[W]) Sub(n LargeInt[W]) (v LargeInt[W]) {
	var borrow uint64
	for i := 0; i < len(u.w); i++ {
		v.w[i], borrow = bits.Sub64(u.w[i], n.w[i], borrow)
	}
	return v
}

// AddAssign sets u to u + n.
func (u *LargeInt[W]) AddAssign(n LargeInt[W]) {
	*u = u.Add(n)
}

// XorAssign sets u to u ^ n.
func (u *LargeInt[W]) XorAssign(n LargeInt[W]) {
	for i := 0; i < len(u.w); i++ {
		u.w[i] ^= n.w[i]
	}
}

// Mul multiplies u by one of the coefficients the k-mer code needs: 2, 4 or
// 21. Anything else returns an error wrapping ErrUnsupportedMultiplier.
func (u LargeInt[W]) Mul(coeff int) (LargeInt[W], error) {
	switch coeff {
	case 2, 4:
		return u.Lsh(uint(coeff / 2)), nil
	case 21:
		// 21 == 16 + 4 + 1
		return u.Lsh(4).Add(u.Lsh(2)).Add(u), nil
	default:
		return LargeInt[W]{}, errUnsupportedMultiplier(coeff)
	}
}

// QuoRem32 returns the quotient and remainder of u / by. It walks u one
// 32-bit half-word at a time from the top, carrying the remainder, so the
// intermediate dividend always fits in a uint64.
func (u LargeInt[W]) QuoRem32(by uint32) (q LargeInt[W], r uint32, err error) {
	if by == 0 {
		return q, 0, errDivideByZero()
	}

	d := uint64(by)
	var rem uint64
	for i := len(u.w) - 1; i >= 0; i-- {
		for j := 1; j >= 0; j-- { // j=1: high half, j=0: low half
			sh := uint(32 * j)
			n := (rem << 32) | ((u.w[i] >> sh) & mask32)
			q.w[i] |= ((n / d) & mask32) << sh
			rem = n % d
		}
	}
	return q, uint32(rem), nil
}

func (u LargeInt[W]) Quo32(by uint32) (q LargeInt[W], err error) {
	q, _, err = u.QuoRem32(by)
	return q, err
}

func (u LargeInt[W]) Rem32(by uint32) (r uint32, err error) {
	if by == 0 {
		return 0, errDivideByZero()
	}

	d := uint64(by)
	var rem uint64
	for i := len(u.w) - 1; i >= 0; i-- {
		rem = ((rem << 32) | (u.w[i] >> 32)) % d
		rem = ((rem << 32) | (u.w[i] & mask32)) % d
	}
	return uint32(rem), nil
}

func (u LargeInt[W]) Cmp(n LargeInt[W]) int {
	for i := len(u.w) - 1; i >= 0; i-- {
		if u.w[i] > n.w[i] {
			return 1
		} else if u.w[i] < n.w[i] {
			return -1
		}
	}
	return 0
}

func (u LargeInt[W]) Equal(n LargeInt[W]) bool {
	for i := 0; i < len(u.w); i++ {
		if u.w[i] != n.w[i] {
			return false
		}
	}
	return true
}

// LessThan compares from the most significant word down; the first pair of
// words that differ decides.
func (u LargeInt[W]) LessThan(n LargeInt[W]) bool {
	for i := len(u.w) - 1; i >= 0; i-- {
		if u.w[i] != n.w[i] {
			return u.w[i] < n.w[i]
		}
	}
	return false
}

func (u LargeInt[W]) LessOrEqualTo(n LargeInt[W]) bool {
	return u.Equal(n) || u.LessThan(n)
}

func (u LargeInt[W]) GreaterThan(n LargeInt[W]) bool      { return n.LessThan(u) }
func (u LargeInt[W]) GreaterOrEqualTo(n LargeInt[W]) bool { return !u.LessThan(n) }

func (u LargeInt[W]) And(n LargeInt[W]) (v LargeInt[W]) {
	for i := 0; i < len(u.w); i++ {
		v.w[i] = u.w[i] & n.w[i]
	}
	return v
}

// AndUint8 masks the least significant byte of u with b, discarding every
// other bit.
func (u LargeInt[W]) AndUint8(b uint8) (v LargeInt[W]) {
	v.w[0] = u.w[0] & uint64(b)
	return v
}

func (u LargeInt[W]) Or(n LargeInt[W]) (v LargeInt[W]) {
	for i := 0; i < len(u.w); i++ {
		v.w[i] = u.w[i] | n.w[i]
	}
	return v
}

func (u LargeInt[W]) Xor(n LargeInt[W]) (v LargeInt[W]) {
	for i := 0; i < len(u.w); i++ {
		v.w[i] = u.w[i] ^ n.w[i]
	}
	return v
}

func (u LargeInt[W]) Not() (v LargeInt[W]) {
	for i := 0; i < len(u.w); i++ {
		v.w[i] = ^u.w[i]
	}
	return v
}

// Lsh returns u << n. Bits pushed past the top word are lost; n >= Size()
// returns 0.
func (u LargeInt[W]) Lsh(n uint) (v LargeInt[W]) {
	nw := len(u.w)
	if n == 0 {
		return u
	} else if n >= uint(64*nw) {
		return v
	}

	ws, bs := int(n/64), n%64
	for i := nw - 1; i >= ws; i-- {
		v.w[i] = u.w[i-ws] << bs

		// x >> 64 is not x >> 0: with a whole-word shift the neighbour
		// contributes nothing.
		if bs != 0 && i-ws > 0 {
			v.w[i] |= u.w[i-ws-1] >> (64 - bs)
		}
	}
	return v
}

// Rsh returns u >> n. n >= Size() returns 0.
func (u LargeInt[W]) Rsh(n uint) (v LargeInt[W]) {
	nw := len(u.w)
	if n == 0 {
		return u
	} else if n >= uint(64*nw) {
		return v
	}

	ws, bs := int(n/64), n%64
	for i := 0; i < nw-ws; i++ {
		v.w[i] = u.w[i+ws] >> bs
		if bs != 0 && i+ws+1 < nw {
			v.w[i] |= u.w[i+ws+1] << (64 - bs)
		}
	}
	return v
}

// Bit returns the value of the i'th bit of u.
func (u LargeInt[W]) Bit(i int) uint {
	if i < 0 || i >= 64*len(u.w) {
		return 0
	}
	return uint(u.w[i/64]>>(uint(i)%64)) & 1
}

// BitLen returns the length of the absolute value of u in bits. The bit
// length of 0 is 0.
func (u LargeInt[W]) BitLen() int {
	for i := len(u.w) - 1; i >= 0; i-- {
		if u.w[i] != 0 {
			return 64*i + bits.Len64(u.w[i])
		}
	}
	return 0
}
