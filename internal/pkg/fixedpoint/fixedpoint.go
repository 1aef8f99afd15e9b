package fixedpoint

import (
	"errors"
	"math/big"
)

var (
	ErrOverflow     = errors.New("fixed-point overflow")
	ErrDivideByZero = errors.New("fixed-point division by zero")
	ErrNegative     = errors.New("fixed-point value must be non-negative")
)

// maxBits bounds every value and intermediate product. Amounts are
// unsigned 256-bit quantities; anything wider is a fault, never a wrap.
const maxBits = 256

// Amount pairs an integer value with an implied decimal-point position.
type Amount struct {
	Value    *big.Int
	Decimals uint8
}

// NewAmount copies value into an Amount at the given precision.
func NewAmount(value *big.Int, decimals uint8) Amount {
	return Amount{Value: new(big.Int).Set(value), Decimals: decimals}
}

func pow10(n uint8) *big.Int {
	return new(big.Int).Exp(big.NewInt(10), big.NewInt(int64(n)), nil)
}

func checkBounds(v *big.Int) error {
	if v.Sign() < 0 {
		return ErrNegative
	}
	if v.BitLen() > maxBits {
		return ErrOverflow
	}
	return nil
}

// NormalizePair rescales both amounts to the larger of the two decimal
// counts. Upscaling only; no precision is ever dropped here.
func NormalizePair(a, b Amount) (Amount, Amount, error) {
	if err := checkBounds(a.Value); err != nil {
		return Amount{}, Amount{}, err
	}
	if err := checkBounds(b.Value); err != nil {
		return Amount{}, Amount{}, err
	}

	target := a.Decimals
	if b.Decimals > target {
		target = b.Decimals
	}

	av, err := Rescale(a.Value, a.Decimals, target)
	if err != nil {
		return Amount{}, Amount{}, err
	}
	bv, err := Rescale(b.Value, b.Decimals, target)
	if err != nil {
		return Amount{}, Amount{}, err
	}
	return Amount{Value: av, Decimals: target}, Amount{Value: bv, Decimals: target}, nil
}

// Div computes num * 10^workingDecimals / den with truncation. The
// quotient is expressed at workingDecimals precision. The widened
// numerator is bounds-checked before dividing; a zero denominator is
// rejected rather than left to panic inside math/big.
func Div(num, den *big.Int, workingDecimals uint8) (*big.Int, error) {
	if err := checkBounds(num); err != nil {
		return nil, err
	}
	if den.Sign() < 0 {
		return nil, ErrNegative
	}
	if den.Sign() == 0 {
		return nil, ErrDivideByZero
	}

	wide := new(big.Int).Mul(num, pow10(workingDecimals))
	if wide.BitLen() > maxBits {
		return nil, ErrOverflow
	}

	return wide.Quo(wide, den), nil
}

// Rescale converts v from one precision to another. Scaling up
// multiplies (overflow-checked); scaling down truncate-divides, it
// never rounds up.
func Rescale(v *big.Int, from, to uint8) (*big.Int, error) {
	if err := checkBounds(v); err != nil {
		return nil, err
	}

	switch {
	case from == to:
		return new(big.Int).Set(v), nil
	case to > from:
		scaled := new(big.Int).Mul(v, pow10(to-from))
		if scaled.BitLen() > maxBits {
			return nil, ErrOverflow
		}
		return scaled, nil
	default:
		return new(big.Int).Quo(v, pow10(from-to)), nil
	}
}
