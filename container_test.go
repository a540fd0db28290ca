package bigac

import (
	"bytes"
	"io"
	"runtime"
	"testing"

	"github.com/cespare/xxhash/v2"
	"github.com/icza/bitio"
	"github.com/pkg/errors"
)

func TestContainerRoundTrip(t *testing.T) {
	inputs := []string{"a", "aab", "abracadabra", string(bytes.Repeat([]byte{0, 255, 7}, 300))}
	for _, input := range inputs {
		ft := NewFrequencyTable([]byte(input))
		table, err := NewIntervalTable(ft)
		if err != nil {
			t.Fatalf("%v", err)
		}
		v, err := Encode([]byte(input), table)
		if err != nil {
			t.Fatalf("%v", err)
		}

		buf := bytes.NewBuffer(nil)
		ctr := &Container{Frequencies: ft, Value: v, Checksum: xxhash.Sum64String(input)}
		if err := WriteContainer(buf, ctr); err != nil {
			t.Fatalf("%v", err)
		}
		got, err := ReadContainer(buf, 0)
		if err != nil {
			t.Fatalf("%q: %+v", input, err)
		}
		if !got.Frequencies.Equal(ft) {
			t.Errorf("%q: %v != %v", input, got.Frequencies.Counts(), ft.Counts())
		}
		if got.Value.Value.Cmp(v.Value) != 0 || got.Value.Precision() != v.Precision() {
			t.Errorf("%q: %s != %s", input, got.Value.Value.Text('p', 0), v.Value.Text('p', 0))
		}
		if got.Value.Count != v.Count || got.Value.StepPrecision != v.StepPrecision {
			t.Errorf("%q: %+v != %+v", input, got.Value, v)
		}
		if got.Checksum != ctr.Checksum {
			t.Errorf("%q: %x != %x", input, got.Checksum, ctr.Checksum)
		}
	}
}

func writeContainer(t *testing.T, input []byte) []byte {
	ft := NewFrequencyTable(input)
	v, err := Encode(input, mustTable(t, input))
	if err != nil {
		t.Fatalf("%v", err)
	}
	buf := bytes.NewBuffer(nil)
	if err := WriteContainer(buf, &Container{Frequencies: ft, Value: v, Checksum: xxhash.Sum64(input)}); err != nil {
		t.Fatalf("%v", err)
	}
	return buf.Bytes()
}

func TestContainerErrors(t *testing.T) {
	b := writeContainer(t, []byte("abracadabra"))

	bad := append([]byte{}, b...)
	bad[0] ^= 0xff
	if _, err := ReadContainer(bytes.NewReader(bad), 0); errors.Cause(err) != ErrBadMagic {
		t.Errorf("%v", err)
	}

	for _, n := range []int{0, 3, 10, len(b) - 9} {
		_, err := ReadContainer(bytes.NewReader(b[:n]), 0)
		if cause := errors.Cause(err); cause != io.ErrUnexpectedEOF && cause != io.EOF {
			t.Errorf("%d: %v", n, err)
		}
	}

	// 11 symbols with a step precision of 4 need 76 bits.
	_, err := ReadContainer(bytes.NewReader(b), 70)
	if pe, ok := errors.Cause(err).(*PrecisionOverflowError); !ok || pe.Required != 76 {
		t.Errorf("%v", err)
	}

	// Corrupt the count in the header, so that it no longer matches the symbol counts.
	bad = append([]byte{}, b...)
	bad[11] ^= 1
	if _, ok := errors.Cause(readErr(bad)).(*DecodeIntegrityError); !ok {
		t.Errorf("%v", readErr(bad))
	}

	if err := WriteContainer(bytes.NewBuffer(nil), &Container{Frequencies: NewFrequencyTable(nil)}); err != ErrEmptyInput {
		t.Errorf("%v", err)
	}
}

func TestContainerTruncatedLargePrecision(t *testing.T) {
	// A header claiming 2^26 symbols needs a 32+2^26*26 bit significand, but the stream ends right after the header.
	const count = 1 << 26
	var b bytes.Buffer
	w := bitio.NewWriter(&b)
	w.TryWriteBits(magic, 32)
	w.TryWriteBits(count, 64)
	w.TryWriteBits(1, 9)
	w.TryWriteBits(27, 7)
	w.TryWriteBits('a', 8)
	w.TryWriteBits(count, 27)
	w.TryWriteBits(uint64(Baseline)+count*26, 32)
	w.TryWriteBits(0, 32)
	if err := w.Close(); err != nil {
		t.Fatalf("%v", err)
	}
	if w.TryError != nil {
		t.Fatalf("%v", w.TryError)
	}

	var before, after runtime.MemStats
	runtime.GC()
	runtime.ReadMemStats(&before)
	err := readErr(b.Bytes())
	runtime.ReadMemStats(&after)
	if errors.Cause(err) != io.ErrUnexpectedEOF {
		t.Fatalf("%v", err)
	}
	if alloc := after.TotalAlloc - before.TotalAlloc; alloc > 16<<20 {
		t.Errorf("truncated container allocated %d bytes", alloc)
	}
}

func readErr(b []byte) error {
	_, err := ReadContainer(bytes.NewReader(b), 0)
	return err
}
