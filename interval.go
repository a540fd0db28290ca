package bigac

import (
	"fmt"
	"math/big"
	"strings"
)

// An Interval is the sub-interval [Low, High) of [0,1) assigned to a symbol.
type Interval struct {
	Symbol Symbol
	Count  uint64
	Low    *big.Float
	High   *big.Float
}

// An IntervalTable assigns every symbol of a FrequencyTable a sub-interval of [0,1) whose width approximates the symbol's probability.
// The sub-intervals are assigned in ascending symbol order, are pairwise disjoint, and cover [0,1) exactly.
//
// Every bound is a multiple of 2^-step, where step is the table's step precision, and is therefore exact at step bits of precision.
// Since step = ceil(log2(n)), a symbol seen once still gets a width of at least 2^-step.
//
// An IntervalTable is read-only after construction and can be shared by any number of encoders and decoders.
// IntervalTable implements the ac.Model interface.
type IntervalTable struct {
	step      uint
	total     uint64
	intervals []Interval
	index     [256]int // position in intervals plus one, zero for unknown symbols
}

// NewIntervalTable builds the interval table of ft.
func NewIntervalTable(ft *FrequencyTable) (*IntervalTable, error) {
	if ft.Total() == 0 {
		return nil, ErrEmptyInput
	}
	t := &IntervalTable{
		step:  StepPrecision(ft.Total()),
		total: ft.Total(),
	}

	n := new(big.Int).SetUint64(t.total)
	cum := new(big.Int)
	low := t.gridPoint(cum, n)
	for _, sym := range ft.Symbols() {
		count := ft.Count(sym)
		cum.Add(cum, new(big.Int).SetUint64(count))
		high := t.gridPoint(cum, n)
		t.intervals = append(t.intervals, Interval{Symbol: sym, Count: count, Low: low, High: high})
		t.index[sym] = len(t.intervals)
		low = high
	}
	return t, nil
}

// gridPoint returns floor(cum * 2^step / n) * 2^-step at step bits of precision.
func (t *IntervalTable) gridPoint(cum, n *big.Int) *big.Float {
	k := new(big.Int).Lsh(cum, t.step)
	k.Quo(k, n)
	f := new(big.Float).SetPrec(t.step).SetInt(k)
	return f.SetMantExp(f, -int(t.step))
}

// Bounds returns the sub-interval of sym.
func (t *IntervalTable) Bounds(sym Symbol) (low, high *big.Float, ok bool) {
	i := t.index[sym]
	if i == 0 {
		return nil, nil, false
	}
	iv := &t.intervals[i-1]
	return iv.Low, iv.High, true
}

// StepPrecision returns the number of bits the working precision grows by per coded symbol.
func (t *IntervalTable) StepPrecision() uint {
	return t.step
}

// Total returns the length of the message the table was built for.
func (t *IntervalTable) Total() uint64 {
	return t.total
}

// Symbols returns the symbols in the order their sub-intervals were assigned.
func (t *IntervalTable) Symbols() []Symbol {
	syms := make([]Symbol, 0, len(t.intervals))
	for _, iv := range t.intervals {
		syms = append(syms, iv.Symbol)
	}
	return syms
}

// Intervals returns the sub-intervals in assignment order.
// The bounds are shared with the table and must not be modified.
func (t *IntervalTable) Intervals() []Interval {
	ivs := make([]Interval, len(t.intervals))
	copy(ivs, t.intervals)
	return ivs
}

// Width returns the width of the sub-interval of sym, or nil if sym is unknown.
func (t *IntervalTable) Width(sym Symbol) *big.Float {
	low, high, ok := t.Bounds(sym)
	if !ok {
		return nil
	}
	return new(big.Float).SetPrec(t.step).Sub(high, low)
}

func (t *IntervalTable) String() string {
	var b strings.Builder
	b.WriteString("{")
	for i, iv := range t.intervals {
		if i > 0 {
			b.WriteString(", ")
		}
		fmt.Fprintf(&b, "%q:[%s, %s)", iv.Symbol, iv.Low.Text('g', 6), iv.High.Text('g', 6))
	}
	b.WriteString("}")
	return b.String()
}
