package bigac

import (
	"fmt"
)

// ErrEmptyInput is returned when asked to code a message with no symbols, for which there is no interval table.
var ErrEmptyInput = fmt.Errorf("empty input")

// ErrIntervalCollapsed is returned when narrowing leaves the working interval without interior.
// This does not happen with tables built by NewIntervalTable.
var ErrIntervalCollapsed = fmt.Errorf("working interval collapsed")

// ErrBadMagic is returned when a stream does not start with the container magic.
var ErrBadMagic = fmt.Errorf("not a bigac stream")

// ErrChecksum is returned when the decoded message does not match the checksum recorded by the encoder.
var ErrChecksum = fmt.Errorf("checksum mismatch")

// An UnknownSymbolError is returned when the encoder meets a symbol that has no interval in the table.
type UnknownSymbolError struct {
	Symbol   Symbol
	Position int
}

func (e *UnknownSymbolError) Error() string {
	return fmt.Sprintf("unknown symbol %q at position %d", e.Symbol, e.Position)
}

// A DecodeIntegrityError is returned when an encoded value cannot be decoded with a table.
// Step is the index of the symbol being decoded, or -1 if the value was rejected before decoding started.
type DecodeIntegrityError struct {
	Step   int64
	Reason string
}

func (e *DecodeIntegrityError) Error() string {
	if e.Step < 0 {
		return fmt.Sprintf("decode integrity: %s", e.Reason)
	}
	return fmt.Sprintf("decode integrity at step %d: %s", e.Step, e.Reason)
}

// A PrecisionOverflowError is returned when a message needs a working precision larger than allowed.
type PrecisionOverflowError struct {
	Required uint64
	Max      uint
}

func (e *PrecisionOverflowError) Error() string {
	return fmt.Sprintf("required precision %d bits exceeds maximum %d", e.Required, e.Max)
}
