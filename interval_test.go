package bigac

import (
	"math/big"
	"math/rand"
	"testing"
)

func TestStepPrecision(t *testing.T) {
	tests := []struct {
		n    uint64
		step uint
	}{
		{1, 1}, {2, 1}, {3, 2}, {4, 2}, {5, 3}, {8, 3}, {9, 4}, {1024, 10}, {1025, 11},
	}
	for _, test := range tests {
		if s := StepPrecision(test.n); s != test.step {
			t.Errorf("%d: %d != %d", test.n, s, test.step)
		}
	}
}

// TestIntervalTableAAB checks the table of the message "aab", for which N=3 and the step precision is 2.
// With two bits, 2/3 truncates to 0.5.
func TestIntervalTableAAB(t *testing.T) {
	table, err := NewIntervalTable(NewFrequencyTable([]byte("aab")))
	if err != nil {
		t.Fatalf("%v", err)
	}
	if table.StepPrecision() != 2 {
		t.Errorf("%d", table.StepPrecision())
	}
	tests := []struct {
		sym       Symbol
		low, high float64
	}{
		{'a', 0, 0.5},
		{'b', 0.5, 1},
	}
	for _, test := range tests {
		low, high, ok := table.Bounds(test.sym)
		if !ok {
			t.Fatalf("%q missing", test.sym)
		}
		if low.Cmp(big.NewFloat(test.low)) != 0 || high.Cmp(big.NewFloat(test.high)) != 0 {
			t.Errorf("%q: [%s, %s)", test.sym, low.String(), high.String())
		}
	}
	if _, _, ok := table.Bounds('c'); ok {
		t.Errorf("unknown symbol found")
	}
	if s := table.String(); s != `{'a':[0, 0.5), 'b':[0.5, 1)}` {
		t.Errorf("%s", s)
	}
}

func TestIntervalTableCompleteness(t *testing.T) {
	rnd := rand.New(rand.NewSource(1))
	inputs := [][]byte{
		[]byte("a"),
		[]byte("aaaaaaa"),
		[]byte("abracadabra"),
		[]byte("the quick brown fox jumps over the lazy dog"),
	}
	for i := 0; i < 20; i++ {
		b := make([]byte, 1+rnd.Intn(3000))
		alphabet := 1 + rnd.Intn(256)
		for j := range b {
			b[j] = byte(rnd.Intn(alphabet))
		}
		inputs = append(inputs, b)
	}

	for _, input := range inputs {
		table, err := NewIntervalTable(NewFrequencyTable(input))
		if err != nil {
			t.Fatalf("%v", err)
		}
		step := table.StepPrecision()
		minWidth := new(big.Float).SetMantExp(big.NewFloat(1), -int(step))

		sum := new(big.Float).SetPrec(64)
		prevHigh := new(big.Float)
		for _, iv := range table.Intervals() {
			if iv.Low.Cmp(prevHigh) != 0 {
				t.Errorf("%d: %q starts at %s, previous ends at %s", len(input), iv.Symbol, iv.Low.String(), prevHigh.String())
			}
			if iv.Low.MinPrec() > step || iv.High.MinPrec() > step {
				t.Errorf("%d: %q bounds need more than %d bits", len(input), iv.Symbol, step)
			}
			w := table.Width(iv.Symbol)
			if w.Cmp(minWidth) < 0 {
				t.Errorf("%d: %q width %s", len(input), iv.Symbol, w.String())
			}
			sum.Add(sum, w)
			prevHigh = iv.High
		}
		if sum.Cmp(big.NewFloat(1)) != 0 {
			t.Errorf("%d: widths sum to %s", len(input), sum.String())
		}
	}
}

func TestIntervalTableOrder(t *testing.T) {
	// Tables are built in ascending symbol order regardless of the order of first appearance.
	x, err := NewIntervalTable(NewFrequencyTable([]byte("zzyx")))
	if err != nil {
		t.Fatalf("%v", err)
	}
	y, err := NewIntervalTable(NewFrequencyTable([]byte("xyzz")))
	if err != nil {
		t.Fatalf("%v", err)
	}
	if string(x.Symbols()) != "xyz" {
		t.Errorf("%q", x.Symbols())
	}
	for _, sym := range []Symbol("xyz") {
		xl, xh, _ := x.Bounds(sym)
		yl, yh, _ := y.Bounds(sym)
		if xl.Cmp(yl) != 0 || xh.Cmp(yh) != 0 {
			t.Errorf("%q: [%s, %s) != [%s, %s)", sym, xl.String(), xh.String(), yl.String(), yh.String())
		}
	}
}
