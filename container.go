package bigac

import (
	"bytes"
	"fmt"
	"io"
	"math/big"
	"math/bits"

	"github.com/icza/bitio"
	"github.com/pkg/errors"
)

// magic starts every container, "BGAC".
const magic = 0x42474143

// A Container is everything needed to decode a message in another process:
// the symbol counts to rebuild the interval table, the encoded value, and a checksum of the message.
//
// The bit layout, most significant bit first, is
//    magic          32 bits
//    count          64 bits  number of coded symbols
//    alphabet size   9 bits
//    count width     7 bits  w
//    per symbol      8 bits symbol, w bits count, in ascending symbol order
//    precision      32 bits  p
//    exponent       32 bits  two's complement
//    significand     p bits
//    checksum       64 bits  xxhash64 of the message
// followed by zero padding to a byte boundary.
// The encoded value is significand * 2^(exponent-p).
type Container struct {
	Frequencies *FrequencyTable
	Value       *EncodedValue
	Checksum    uint64
}

type bitWriter struct {
	w   *bitio.Writer
	err error
}

func (bw *bitWriter) bits(v uint64, n uint8) {
	if bw.err != nil {
		return
	}
	if n < 64 {
		v &= (1 << n) - 1
	}
	bw.err = bw.w.WriteBits(v, n)
}

func (bw *bitWriter) bytes(p []byte) {
	if bw.err != nil {
		return
	}
	_, bw.err = bw.w.Write(p)
}

// WriteContainer writes c to w.
func WriteContainer(w io.Writer, c *Container) error {
	ft, v := c.Frequencies, c.Value
	if ft.Total() == 0 || v == nil || v.Count == 0 {
		return ErrEmptyInput
	}
	if v.Value.Sign() <= 0 {
		return errors.Errorf("encoded value %s is not positive", v.Value.Text('g', 10))
	}

	bw := &bitWriter{w: bitio.NewWriter(w)}
	bw.bits(magic, 32)
	bw.bits(v.Count, 64)
	syms := ft.Symbols()
	width := uint8(bits.Len64(ft.Total()))
	bw.bits(uint64(len(syms)), 9)
	bw.bits(uint64(width), 7)
	for _, sym := range syms {
		bw.bits(uint64(sym), 8)
		bw.bits(ft.Count(sym), width)
	}

	prec := v.Value.Prec()
	mant := new(big.Float)
	exp := v.Value.MantExp(mant)
	mant.SetMantExp(mant, int(prec))
	sig, _ := mant.Int(nil)
	buf := sig.FillBytes(make([]byte, (prec+7)/8))
	lead := prec - 8*uint(len(buf)-1)
	bw.bits(uint64(prec), 32)
	bw.bits(uint64(uint32(int32(exp))), 32)
	bw.bits(uint64(buf[0]), uint8(lead))
	bw.bytes(buf[1:])
	bw.bits(c.Checksum, 64)
	if bw.err != nil {
		return errors.Wrap(bw.err, "")
	}
	if err := bw.w.Close(); err != nil {
		return errors.Wrap(err, "")
	}
	return nil
}

type bitReader struct {
	r   *bitio.Reader
	err error
}

func (br *bitReader) bits(n uint8) uint64 {
	if br.err != nil {
		return 0
	}
	v, err := br.r.ReadBits(n)
	if err != nil {
		if err == io.EOF {
			err = io.ErrUnexpectedEOF
		}
		br.err = err
	}
	return v
}

// copyN copies n bytes to w, which must follow a byte aligned read.
func (br *bitReader) copyN(w io.Writer, n int64) {
	if br.err != nil {
		return
	}
	if _, err := io.CopyN(w, br.r, n); err != nil {
		if err == io.EOF {
			err = io.ErrUnexpectedEOF
		}
		br.err = err
	}
}

// ReadContainer reads a container written by WriteContainer.
// Values whose precision exceeds maxPrec bits are rejected with a PrecisionOverflowError before they are read; a zero maxPrec means big.MaxPrec.
func ReadContainer(r io.Reader, maxPrec uint) (*Container, error) {
	if maxPrec == 0 || maxPrec > big.MaxPrec {
		maxPrec = big.MaxPrec
	}
	br := &bitReader{r: bitio.NewReader(r)}
	m := br.bits(32)
	if br.err != nil {
		return nil, errors.Wrap(br.err, "magic")
	}
	if m != magic {
		return nil, ErrBadMagic
	}

	count := br.bits(64)
	alphabet := int(br.bits(9))
	width := uint8(br.bits(7))
	if br.err != nil {
		return nil, errors.Wrap(br.err, "header")
	}
	if alphabet == 0 || alphabet > 256 || width == 0 || width > 64 {
		return nil, &DecodeIntegrityError{Step: -1, Reason: fmt.Sprintf("alphabet size %d, count width %d", alphabet, width)}
	}
	counts := make(map[Symbol]uint64, alphabet)
	for i := 0; i < alphabet; i++ {
		sym := Symbol(br.bits(8))
		n := br.bits(width)
		if _, ok := counts[sym]; ok {
			return nil, &DecodeIntegrityError{Step: -1, Reason: fmt.Sprintf("symbol %q repeated", sym)}
		}
		counts[sym] = n
	}
	if br.err != nil {
		return nil, errors.Wrap(br.err, "frequencies")
	}
	ft, err := FrequencyTableFromCounts(counts)
	if err != nil {
		return nil, errors.Wrap(err, "")
	}
	if ft.Total() != count {
		return nil, &DecodeIntegrityError{Step: -1, Reason: fmt.Sprintf("counts sum to %d, header says %d", ft.Total(), count)}
	}

	step := StepPrecision(count)
	req, ok := requiredPrecision(count, step, maxPrec)
	if !ok {
		return nil, &PrecisionOverflowError{Required: req, Max: maxPrec}
	}
	prec := br.bits(32)
	exp := int32(uint32(br.bits(32)))
	if br.err != nil {
		return nil, errors.Wrap(br.err, "value header")
	}
	if prec != req {
		return nil, &DecodeIntegrityError{Step: -1, Reason: fmt.Sprintf("precision %d bits, %d symbols need %d", prec, count, req)}
	}
	// The significand is buffered as it arrives, not sized from the header.
	nbytes := (prec + 7) / 8
	lead := prec - 8*(nbytes-1)
	buf := bytes.NewBuffer([]byte{byte(br.bits(uint8(lead)))})
	br.copyN(buf, int64(nbytes-1))
	checksum := br.bits(64)
	if br.err != nil {
		return nil, errors.Wrap(br.err, "value")
	}
	sig := new(big.Int).SetBytes(buf.Bytes())
	if uint64(sig.BitLen()) != prec {
		return nil, &DecodeIntegrityError{Step: -1, Reason: "significand is not normalized"}
	}
	f := new(big.Float).SetPrec(uint(prec)).SetInt(sig)
	f.SetMantExp(f, int(exp)-int(prec))

	c := &Container{
		Frequencies: ft,
		Value:       &EncodedValue{Value: f, Count: count, StepPrecision: step},
		Checksum:    checksum,
	}
	return c, nil
}
