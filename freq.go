package bigac

import (
	"encoding/binary"

	"github.com/cespare/xxhash/v2"
	"github.com/pkg/errors"
)

// A FrequencyTable holds the number of occurrences of every distinct symbol of a message.
// It is immutable after construction.
type FrequencyTable struct {
	counts  [256]uint64
	symbols []Symbol // ascending, nonzero counts only
	total   uint64
}

// NewFrequencyTable counts the symbols of input in a single pass.
// An empty input yields an empty table.
func NewFrequencyTable(input []byte) *FrequencyTable {
	ft := &FrequencyTable{}
	for _, c := range input {
		ft.counts[c]++
	}
	ft.total = uint64(len(input))
	ft.index()
	return ft
}

// FrequencyTableFromCounts rebuilds a table from previously recorded counts.
func FrequencyTableFromCounts(counts map[Symbol]uint64) (*FrequencyTable, error) {
	if len(counts) == 0 {
		return nil, ErrEmptyInput
	}
	ft := &FrequencyTable{}
	for sym, n := range counts {
		if n == 0 {
			return nil, errors.Errorf("zero count for symbol %q", sym)
		}
		total := ft.total + n
		if total < ft.total {
			return nil, errors.Errorf("total count overflows")
		}
		ft.total = total
		ft.counts[sym] = n
	}
	ft.index()
	return ft, nil
}

func (ft *FrequencyTable) index() {
	ft.symbols = ft.symbols[:0]
	for sym, n := range ft.counts {
		if n > 0 {
			ft.symbols = append(ft.symbols, Symbol(sym))
		}
	}
}

// Count returns the number of occurrences of sym.
func (ft *FrequencyTable) Count(sym Symbol) uint64 {
	return ft.counts[sym]
}

// Total returns the length of the counted message.
func (ft *FrequencyTable) Total() uint64 {
	return ft.total
}

// Len returns the number of distinct symbols.
func (ft *FrequencyTable) Len() int {
	return len(ft.symbols)
}

// Symbols returns the distinct symbols in ascending order.
func (ft *FrequencyTable) Symbols() []Symbol {
	syms := make([]Symbol, len(ft.symbols))
	copy(syms, ft.symbols)
	return syms
}

// Counts returns a copy of the table as a map.
func (ft *FrequencyTable) Counts() map[Symbol]uint64 {
	m := make(map[Symbol]uint64, len(ft.symbols))
	for _, sym := range ft.symbols {
		m[sym] = ft.counts[sym]
	}
	return m
}

// Fingerprint returns a hash of the canonical encoding of the table.
// Equal tables have equal fingerprints.
func (ft *FrequencyTable) Fingerprint() uint64 {
	d := xxhash.New()
	var buf [9]byte
	for _, sym := range ft.symbols {
		buf[0] = sym
		binary.BigEndian.PutUint64(buf[1:], ft.counts[sym])
		d.Write(buf[:])
	}
	return d.Sum64()
}

// Equal reports whether ft and other hold the same counts.
func (ft *FrequencyTable) Equal(other *FrequencyTable) bool {
	return ft.counts == other.counts
}
