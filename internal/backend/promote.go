package backend

import (
	"errors"
	"fmt"

	"github.com/born-ml/dtypes/internal/dtype"
)

// ErrNoPromotion is returned when a backend defines no implicit promotion
// between two dtypes.
var ErrNoPromotion = errors.New("no implicit promotion")

// Policy holds the backend-defined parts of type promotion. The rest of the
// lattice (same-kind widening, signed/unsigned mixing below 64 bits, half
// precision mixing) is shared by every backend.
type Policy struct {
	// IntFloat resolves an integer operand combined with a floating one.
	// A nil IntFloat means the backend refuses the combination.
	IntFloat func(i, f dtype.Dtype) dtype.Dtype

	// Uint64Signed is the result of uint64 combined with a signed integer.
	// The zero value means the backend refuses the combination.
	Uint64Signed dtype.Dtype

	// BoolNumeric lets bool promote to the other operand's type.
	BoolNumeric bool
}

// FloatOperand is an IntFloat policy that keeps the floating operand.
func FloatOperand(_, f dtype.Dtype) dtype.Dtype { return f }

// Always64 is an IntFloat policy that always yields float64.
func Always64(_, _ dtype.Dtype) dtype.Dtype { return dtype.Float64 }

// Promote returns the dtype resulting from combining a and b under policy.
func Promote(a, b dtype.Dtype, policy Policy) (dtype.Dtype, error) {
	if a == b {
		return a, nil
	}

	switch {
	case a.IsBool() || b.IsBool():
		if !policy.BoolNumeric {
			return "", noPromotion(a, b)
		}
		if a.IsBool() {
			return b, nil
		}
		return a, nil

	case a.IsInt() && b.IsInt():
		return promoteInts(a, b, policy)

	case a.IsFloat() && b.IsFloat():
		if (a == dtype.Float16 && b == dtype.BFloat16) || (a == dtype.BFloat16 && b == dtype.Float16) {
			return dtype.Float32, nil
		}
		if b.Bits() > a.Bits() {
			return b, nil
		}
		return a, nil

	case a.IsInt() && b.IsFloat():
		if policy.IntFloat == nil {
			return "", noPromotion(a, b)
		}
		return policy.IntFloat(a, b), nil

	case a.IsFloat() && b.IsInt():
		if policy.IntFloat == nil {
			return "", noPromotion(a, b)
		}
		return policy.IntFloat(b, a), nil
	}

	return "", noPromotion(a, b)
}

func promoteInts(a, b dtype.Dtype, policy Policy) (dtype.Dtype, error) {
	if a.IsUnsigned() == b.IsUnsigned() {
		if b.Bits() > a.Bits() {
			return b, nil
		}
		return a, nil
	}

	u, s := a, b
	if !u.IsUnsigned() {
		u, s = b, a
	}
	if s.Bits() > u.Bits() {
		return s, nil
	}
	switch u {
	case dtype.Uint8:
		return dtype.Int16, nil
	case dtype.Uint16:
		return dtype.Int32, nil
	case dtype.Uint32:
		return dtype.Int64, nil
	}
	if policy.Uint64Signed.IsZero() {
		return "", noPromotion(a, b)
	}
	return policy.Uint64Signed, nil
}

func noPromotion(a, b dtype.Dtype) error {
	return fmt.Errorf("%w between %s and %s", ErrNoPromotion, a, b)
}
