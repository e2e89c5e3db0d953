package largeint

import (
	"fmt"

	"github.com/brickingsoft/errors"
)

var (
	ErrUnsupportedMultiplier = errors.Define("unsupported multiplier")
	ErrDivideByZero          = errors.Define("division by zero")
	ErrKmerSize              = errors.Define("kmer size out of range")
)

const (
	errMetaPkgKey = "pkg"
	errMetaPkgVal = "largeint"
	errMetaOpKey  = "op"
	errMetaOpMul  = "mul"
	errMetaOpQuo  = "quo"
	errMetaOpRev  = "revcomp"
)

func errUnsupportedMultiplier(coeff int) error {
	return errors.From(
		ErrUnsupportedMultiplier,
		errors.WithMeta(errMetaPkgKey, errMetaPkgVal),
		errors.WithMeta(errMetaOpKey, errMetaOpMul),
		errors.WithWrap(fmt.Errorf("coefficient %d is not one of 2, 4 or 21", coeff)),
	)
}

func errDivideByZero() error {
	return errors.From(
		ErrDivideByZero,
		errors.WithMeta(errMetaPkgKey, errMetaPkgVal),
		errors.WithMeta(errMetaOpKey, errMetaOpQuo),
	)
}

func errKmerSize(k uint, words int) error {
	return errors.From(
		ErrKmerSize,
		errors.WithMeta(errMetaPkgKey, errMetaPkgVal),
		errors.WithMeta(errMetaOpKey, errMetaOpRev),
		errors.WithWrap(fmt.Errorf("%d nucleotides do not fit in %d words", k, words)),
	)
}
