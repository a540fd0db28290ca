// Package bigac provides an arithmetic coder that represents a whole message as a single arbitrary precision fraction in [0,1).
// Unlike the usual renormalizing coders, the working interval is never rescaled.
// Instead its precision grows by a fixed number of bits for every symbol, and the interval ends are narrowed with directed rounding:
// the upper end is rounded down and the lower end is rounded up, so that a narrowed interval never leaves its parent.
// Sub-intervals are half-open: a value v belongs to [low, high) if low <= v < high, so a value on a shared boundary decodes to the upper symbol.
//
// Below is an example of using this package to compress Lincoln's Gettysburg address:
//    go run compress/main.go gettysburg.txt > gettys.bgac
//    cat gettys.bgac | go run decompress/main.go > gettys.dbgac
//    diff gettysburg.txt gettys.dbgac
package bigac

import (
	"math/big"
	"math/bits"

	"github.com/fumin/bigac/ac"
)

// Symbol is the atomic unit of the input alphabet.
type Symbol = byte

// Baseline is the precision in bits of the working interval before any symbol is coded.
const Baseline = ac.Baseline

// StepPrecision returns the number of bits the working precision grows by per symbol for a message of n symbols.
// It is ceil(log2(n)), but never less than 1.
func StepPrecision(n uint64) uint {
	if n <= 2 {
		return 1
	}
	return uint(bits.Len64(n - 1))
}

// requiredPrecision returns the precision of the encoded value of an n symbol message.
// ok is false if the precision does not fit in maxPrec.
func requiredPrecision(n uint64, step, maxPrec uint) (uint64, bool) {
	hi, lo := bits.Mul64(n, uint64(step))
	req, carry := bits.Add64(lo, uint64(Baseline), 0)
	if hi != 0 || carry != 0 {
		return ^uint64(0), false
	}
	if maxPrec == 0 || maxPrec > big.MaxPrec {
		maxPrec = big.MaxPrec
	}
	return req, req <= uint64(maxPrec)
}
