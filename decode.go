package bigac

import (
	"fmt"
	"math/big"

	"github.com/fumin/bigac/ac"
	"github.com/pkg/errors"
)

// Decode recovers the symbols coded in v, given the exact model used to encode them.
//
// Decoding retraces the encoder: at every step the working interval is grown and narrowed with the same precision and rounding as in Encode,
// and the decoded symbol is the one whose narrowed sub-interval [low, high) contains the encoded value.
// Exactly v.Count symbols are decoded.
// A DecodeIntegrityError is returned if v is inconsistent with model, or if at some step no sub-interval contains it.
func Decode(v *EncodedValue, model ac.Model) ([]byte, error) {
	if err := checkEncoded(v, model); err != nil {
		return nil, err
	}

	w := newWindow(model)
	syms := model.Symbols()
	capacity := v.Count
	if capacity > 1<<20 {
		capacity = 1 << 20
	}
	out := make([]byte, 0, capacity)
	for i := uint64(0); i < v.Count; i++ {
		sym, ok, err := w.locate(v.Value, syms)
		if !ok {
			return nil, &DecodeIntegrityError{Step: int64(i), Reason: fmt.Sprintf("no symbol interval contains %s", v.Value.Text('g', 10))}
		}
		if err != nil {
			return nil, errors.Wrapf(err, "step %d", i)
		}
		out = append(out, sym)
	}
	return out, nil
}

func checkEncoded(v *EncodedValue, model ac.Model) error {
	if v == nil || v.Value == nil {
		return &DecodeIntegrityError{Step: -1, Reason: "missing value"}
	}
	if v.Count == 0 {
		return ErrEmptyInput
	}
	if v.StepPrecision != model.StepPrecision() {
		return &DecodeIntegrityError{Step: -1, Reason: fmt.Sprintf("step precision %d, table has %d", v.StepPrecision, model.StepPrecision())}
	}
	req, ok := requiredPrecision(v.Count, v.StepPrecision, big.MaxPrec)
	if !ok {
		return &PrecisionOverflowError{Required: req, Max: big.MaxPrec}
	}
	if uint64(v.Value.Prec()) != req {
		return &DecodeIntegrityError{Step: -1, Reason: fmt.Sprintf("precision %d bits, %d symbols need %d", v.Value.Prec(), v.Count, req)}
	}
	if v.Value.IsInf() || v.Value.Sign() < 0 || v.Value.Cmp(big.NewFloat(1)) >= 0 {
		return &DecodeIntegrityError{Step: -1, Reason: fmt.Sprintf("value %s outside [0,1)", v.Value.Text('g', 10))}
	}
	return nil
}
