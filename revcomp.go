package largeint

// Nucleotides are packed two bits each as A=0, C=1, T=2, G=3, so the
// complement of a code is code^2 (A<->T, C<->G).
const complementMask = 2

// revcomp4NT maps a byte holding four packed nucleotides to the byte holding
// their complements in reverse order.
var revcomp4NT [256]byte

func init() {
	for b := 0; b < 256; b++ {
		var out byte
		for f := uint(0); f < 4; f++ {
			code := byte(b>>(2*f)) & 3
			out |= (code ^ complementMask) << (2 * (3 - f))
		}
		revcomp4NT[b] = out
	}
}

// RevComp returns the reverse complement of the k-mer of length k packed in
// the low 2k bits of v, first nucleotide most significant.
//
// The words are read as a little-endian byte string (byte j is bits
// 8*(j%8).. of word j/8), the byte order is reversed through revcomp4NT, and
// the result is shifted down to drop the 32*W-k padding nucleotides that
// end up at the bottom.
func RevComp[W Words](v LargeInt[W], k uint) (out LargeInt[W], err error) {
	nw := len(v.w)
	if k > uint(nucleotidesPerWord*nw) {
		return out, errKmerSize(k, nw)
	}

	nb := 8 * nw
	for i := 0; i < nb; i++ {
		j := nb - 1 - i
		in := byte(v.w[j/8] >> (8 * uint(j%8)))
		out.w[i/8] |= uint64(revcomp4NT[in]) << (8 * uint(i%8))
	}

	return out.Rsh(2 * (uint(nucleotidesPerWord*nw) - k)), nil
}
