package bigac

import (
	"math/big"

	"github.com/fumin/bigac/ac"
)

var _ ac.Model = (*IntervalTable)(nil)

// A window is the working interval [low, high] shared by the encoder and the decoder.
// Both sides must narrow it with exactly the same precision and rounding.
type window struct {
	model ac.Model
	step  uint
	prec  uint
	next  uint

	low  *big.Float
	high *big.Float
	rng  *big.Float

	// scratch
	prod  *big.Float
	nlow  *big.Float
	nhigh *big.Float
}

func newWindow(model ac.Model) *window {
	w := &window{model: model, step: model.StepPrecision(), prec: ac.Baseline}
	w.low = new(big.Float).SetPrec(w.prec)
	w.high = new(big.Float).SetPrec(w.prec).SetInt64(1)
	w.rng = new(big.Float)
	w.prod = new(big.Float)
	w.nlow = new(big.Float)
	w.nhigh = new(big.Float)
	return w
}

// grow computes the range at step more bits of precision, rounded down.
// The window itself only takes the new precision in commit.
func (w *window) grow() {
	w.next = w.prec + w.step
	w.rng.SetPrec(w.next).SetMode(big.ToZero).Sub(w.high, w.low)
}

// mulRange sets prod to rng*x exactly.
func (w *window) mulRange(x *big.Float) *big.Float {
	p := w.rng.MinPrec() + x.MinPrec()
	if p == 0 {
		p = 1
	}
	return w.prod.SetPrec(p).Mul(w.rng, x)
}

// upper sets nhigh to low + rng*symHigh rounded toward zero.
func (w *window) upper(symHigh *big.Float) *big.Float {
	return w.nhigh.SetPrec(w.next).SetMode(big.ToZero).Add(w.low, w.mulRange(symHigh))
}

// lower sets nlow to low + rng*symLow rounded away from zero.
func (w *window) lower(symLow *big.Float) *big.Float {
	return w.nlow.SetPrec(w.next).SetMode(big.AwayFromZero).Add(w.low, w.mulRange(symLow))
}

// commit replaces the working interval with [nlow, nhigh].
// A collapsed sub-interval leaves the window as it was.
func (w *window) commit() error {
	if w.nlow.Cmp(w.nhigh) >= 0 {
		return ErrIntervalCollapsed
	}
	w.prec = w.next
	w.low, w.nlow = w.nlow, w.low
	w.high, w.nhigh = w.nhigh, w.high
	return nil
}

// narrow grows the window and narrows it to the sub-interval of sym.
func (w *window) narrow(sym Symbol) (bool, error) {
	symLow, symHigh, ok := w.model.Bounds(sym)
	if !ok {
		return false, nil
	}
	w.grow()
	w.upper(symHigh)
	w.lower(symLow)
	return true, w.commit()
}

// locate grows the window and narrows it to the sub-interval that contains v, which is then returned.
// A sub-interval [nlow, nhigh) contains v if nlow <= v < nhigh.
func (w *window) locate(v *big.Float, syms []Symbol) (Symbol, bool, error) {
	w.grow()
	for _, sym := range syms {
		symLow, symHigh, ok := w.model.Bounds(sym)
		if !ok {
			continue
		}
		if v.Cmp(w.upper(symHigh)) >= 0 {
			continue
		}
		// Sub-intervals ascend, so v lies in a gap and no later symbol contains it.
		if v.Cmp(w.lower(symLow)) < 0 {
			break
		}
		return sym, true, w.commit()
	}
	return 0, false, nil
}

// midpoint returns (low+high)/2 at the current precision.
func (w *window) midpoint() *big.Float {
	m := new(big.Float).SetPrec(w.prec).Add(w.low, w.high)
	return m.SetMantExp(m, -1)
}
