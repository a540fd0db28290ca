package bigac

import (
	"math/big"

	"github.com/fumin/bigac/ac"
	"github.com/pkg/errors"
)

// An EncodedValue is a whole message coded as a single fraction in [0,1).
// The precision of Value is always Baseline + Count*StepPrecision bits.
type EncodedValue struct {
	Value         *big.Float
	Count         uint64
	StepPrecision uint
}

// Precision returns the number of significand bits of the encoded value.
func (v *EncodedValue) Precision() uint {
	return v.Value.Prec()
}

// An Encoder narrows a working interval by the sub-interval of each symbol it is given.
// An Encoder must not be used concurrently, but any number of Encoders may share one model.
type Encoder struct {
	model   ac.Model
	w       *window
	n       uint64
	maxPrec uint
}

// NewEncoder returns an Encoder whose working interval is [0,1) at Baseline bits of precision.
func NewEncoder(model ac.Model) *Encoder {
	return &Encoder{model: model, w: newWindow(model), maxPrec: big.MaxPrec}
}

// SetMaxPrecision limits the working precision to maxPrec bits.
// Encode returns a PrecisionOverflowError instead of growing beyond it.
func (e *Encoder) SetMaxPrecision(maxPrec uint) {
	if maxPrec == 0 || maxPrec > big.MaxPrec {
		maxPrec = big.MaxPrec
	}
	e.maxPrec = maxPrec
}

// Encode narrows the working interval by the sub-interval of sym.
// On any error, including a collapsed sub-interval, the Encoder is left unchanged.
func (e *Encoder) Encode(sym Symbol) error {
	if req, ok := requiredPrecision(e.n+1, e.w.step, e.maxPrec); !ok {
		return &PrecisionOverflowError{Required: req, Max: e.maxPrec}
	}
	ok, err := e.w.narrow(sym)
	if !ok {
		return &UnknownSymbolError{Symbol: sym, Position: int(e.n)}
	}
	if err != nil {
		return errors.Wrapf(err, "symbol %d", e.n)
	}
	e.n++
	return nil
}

// Count returns the number of symbols encoded so far.
func (e *Encoder) Count() uint64 {
	return e.n
}

// Precision returns the current working precision, which is Baseline + Count()*StepPrecision bits.
func (e *Encoder) Precision() uint {
	return e.w.prec
}

// Low returns a copy of the lower end of the working interval.
func (e *Encoder) Low() *big.Float {
	return new(big.Float).Copy(e.w.low)
}

// High returns a copy of the upper end of the working interval.
func (e *Encoder) High() *big.Float {
	return new(big.Float).Copy(e.w.high)
}

// Width returns high - low, rounded down to the working precision.
func (e *Encoder) Width() *big.Float {
	return new(big.Float).SetPrec(e.w.prec).SetMode(big.ToZero).Sub(e.w.high, e.w.low)
}

// CodeLength returns the number of bits needed to single out the working interval within [0,1), that is -log2(Width()) rounded up.
func (e *Encoder) CodeLength() int {
	return 1 - e.Width().MantExp(nil)
}

// Value returns the midpoint of the working interval, which identifies the encoded symbols.
func (e *Encoder) Value() (*EncodedValue, error) {
	if e.n == 0 {
		return nil, ErrEmptyInput
	}
	v := &EncodedValue{
		Value:         e.w.midpoint(),
		Count:         e.n,
		StepPrecision: e.w.step,
	}
	return v, nil
}

// Encode codes input with the intervals of model.
func Encode(input []byte, model ac.Model) (*EncodedValue, error) {
	return encode(input, model, big.MaxPrec)
}

func encode(input []byte, model ac.Model, maxPrec uint) (*EncodedValue, error) {
	if len(input) == 0 {
		return nil, ErrEmptyInput
	}
	enc := NewEncoder(model)
	enc.SetMaxPrecision(maxPrec)
	if req, ok := requiredPrecision(uint64(len(input)), enc.w.step, enc.maxPrec); !ok {
		return nil, &PrecisionOverflowError{Required: req, Max: enc.maxPrec}
	}
	for _, c := range input {
		if err := enc.Encode(c); err != nil {
			return nil, err
		}
	}
	return enc.Value()
}
