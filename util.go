package largeint

// Difference subtracts the smaller of a and b from the larger.
func Difference[W Words](a, b LargeInt[W]) LargeInt[W] {
	if a.LessThan(b) {
		return b.Sub(a)
	}
	return a.Sub(b)
}

func Larger[W Words](a, b LargeInt[W]) LargeInt[W] {
	if a.LessThan(b) {
		return b
	}
	return a
}

// Smaller returns the lesser of a and b; this is how a k-mer and its reverse
// complement are reduced to a canonical form.
func Smaller[W Words](a, b LargeInt[W]) LargeInt[W] {
	if b.LessThan(a) {
		return b
	}
	return a
}
