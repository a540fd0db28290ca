// Package ac defines the interfaces the growing precision arithmetic coding algorithm requires.
// See the root bigac package for the realization built on math/big.
package ac

import (
	"math/big"
)

// Baseline is the precision in bits that the working interval starts at.
// Encoders and decoders must agree on it, since the precision of an encoded value is
// Baseline + n*step for a message of n symbols.
const Baseline uint = 32

// A Model maps every symbol of an alphabet to a disjoint sub-interval of [0,1),
// as expected by the arithmetic coding algorithm.
type Model interface {
	// Bounds returns the sub-interval [low, high) of sym.
	// ok is false if sym is not part of the alphabet.
	// The returned values must not be modified.
	Bounds(sym byte) (low, high *big.Float, ok bool)

	// StepPrecision returns the number of bits the working precision grows by per symbol.
	StepPrecision() uint

	// Symbols returns the alphabet in ascending order of its sub-intervals.
	Symbols() []byte
}
