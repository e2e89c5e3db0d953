/*
Package largeint provides LargeInt, a fixed-width unsigned integer made of
1 to 4 64-bit words, sized at compile time. It exists to hold DNA k-mers
packed at two bits per nucleotide when k is larger than 32, and implements
only what that encoding needs: addition, subtraction, multiplication by a
handful of small constants, division by a uint32, bitwise operators, shifts,
comparison, hashing and reverse complement.

LargeInt is a value type; all operations return new values, except AddAssign
and XorAssign which update the receiver in place. Arithmetic wraps modulo
2^(64*W) where W is the number of words.

The width is picked by instantiating with an array type:

	var a largeint.LargeInt[[2]uint64]       // 128 bits, k <= 64
	b := largeint.From64[[2]uint64](21)
	c := largeint.U128From64(21)              // same as b

Aliases are provided for each supported width:

	U64  = LargeInt[[1]uint64]
	U128 = LargeInt[[2]uint64]
	U192 = LargeInt[[3]uint64]
	U256 = LargeInt[[4]uint64]

Operations that can fail return an error instead of a wrong result:

	Mul(coeff int) (LargeInt, error)      // only 2, 4 and 21 are supported
	Quo32(by uint32) (LargeInt, error)    // by == 0 is an error
	Rem32(by uint32) (uint32, error)
	RevComp(v, k) (LargeInt, error)       // k > 32*W is an error

Use errors.Is against ErrUnsupportedMultiplier, ErrDivideByZero and
ErrKmerSize to tell them apart.

LargeInt supports the following formatting interfaces:

	- fmt.Formatter
	- fmt.Stringer

String renders the words in hex, most significant first, separated by '.',
e.g. "1.ffffffffffffffff". The other fmt verbs (%d, %x, %b...) render the
whole number through math/big.
*/
package largeint
