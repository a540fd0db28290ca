package bigac

import (
	"fmt"
)

// Overhead is the number of bits charged for the exponent and bookkeeping of an encoded value on top of its significand.
const Overhead = 32

// A Ratio compares the size of a message before and after encoding.
// Following the reporting convention of the codec, the encoded size is counted in bits while the original size is counted in bytes.
type Ratio struct {
	BeforeBytes uint64
	AfterBits   uint64
	Symbols     uint64
}

// CompressionRatio reports the sizes of input and of its encoding v.
func CompressionRatio(input []byte, v *EncodedValue) Ratio {
	return Ratio{
		BeforeBytes: uint64(len(input)),
		AfterBits:   uint64(v.Precision()) + Overhead,
		Symbols:     v.Count,
	}
}

// Ratio returns AfterBits / BeforeBytes.
func (r Ratio) Ratio() float64 {
	if r.BeforeBytes == 0 {
		return 0
	}
	return float64(r.AfterBits) / float64(r.BeforeBytes)
}

// BitsPerSymbol returns the number of encoded bits spent per symbol.
func (r Ratio) BitsPerSymbol() float64 {
	if r.Symbols == 0 {
		return 0
	}
	return float64(r.AfterBits) / float64(r.Symbols)
}

func (r Ratio) String() string {
	return fmt.Sprintf("before: %d bytes, after: %d bits, ratio: %.4f, %.3f bits/symbol", r.BeforeBytes, r.AfterBits, r.Ratio(), r.BitsPerSymbol())
}
