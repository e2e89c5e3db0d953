package largeint

import (
	"fmt"
	"io"
	"math/big"
	"strconv"
	"strings"
)

// String renders u in hex one word at a time, most significant first,
// separated by '.'. Leading zero words are skipped.
func (u LargeInt[W]) String() string {
	if u.IsZero() {
		return "0"
	}

	i := len(u.w) - 1
	for u.w[i] == 0 {
		i--
	}

	var sb strings.Builder
	for ; i >= 0; i-- {
		sb.WriteString(strconv.FormatUint(u.w[i], 16))
		if i > 0 {
			sb.WriteByte('.')
		}
	}
	return sb.String()
}

// Format renders %v and %s with String; every other verb formats the whole
// number as a big.Int would.
func (u LargeInt[W]) Format(s fmt.State, c rune) {
	switch c {
	case 'v', 's':
		_, _ = io.WriteString(s, u.String())
	default:
		u.AsBigInt().Format(s, c)
	}
}

// FromBigInt creates a LargeInt from a big.Int. Overflow truncates to Max
// and sets accurate to 'false'.
func FromBigInt[W Words](v *big.Int) (out LargeInt[W], accurate bool) {
	if v.Sign() < 0 {
		return out, false
	}

	nw := len(out.w)
	if v.BitLen() > 64*nw {
		return Max[W](), false
	}

	words := v.Bits()

	switch intSize {
	case 64:
		for i, w := range words {
			out.w[i] = uint64(w)
		}
	case 32:
		for i, w := range words {
			out.w[i/2] |= uint64(w) << (32 * uint(i%2))
		}
	default:
		panic("largeint: unsupported bit size")
	}
	return out, true
}

func (u LargeInt[W]) IntoBigInt(b *big.Int) {
	nw := len(u.w)

	switch intSize {
	case 64:
		bits := make([]big.Word, nw)
		for i := 0; i < nw; i++ {
			bits[i] = big.Word(u.w[i])
		}
		b.SetBits(bits)

	case 32:
		bits := make([]big.Word, nw*2)
		for i := 0; i < nw; i++ {
			bits[i*2] = big.Word(u.w[i] & mask32)
			bits[i*2+1] = big.Word(u.w[i] >> 32)
		}
		b.SetBits(bits)

	default:
		b.SetUint64(0)
		for i := nw - 1; i >= 0; i-- {
			var w big.Int
			w.SetUint64(u.w[i])
			b.Lsh(b, 64)
			b.Add(b, &w)
		}
	}
}

func (u LargeInt[W]) AsBigInt() (b *big.Int) {
	var v big.Int
	u.IntoBigInt(&v)
	return &v
}
