package backend

import (
	"fmt"

	"github.com/born-ml/dtypes/internal/dtype"
)

// Closest returns the valid dtype nearest to d: d itself when valid, else the
// narrowest valid dtype of the same category and signedness that is at least
// as wide, else any valid dtype of the same category at least as wide, else
// the widest valid dtype of the category.
//
// The two half-precision formats are not of the same kind: bfloat16 moves to
// float32 rather than float16.
func Closest(d dtype.Dtype, valid []dtype.Dtype) (dtype.Dtype, error) {
	if !d.Known() {
		return "", fmt.Errorf("%w: %q", dtype.ErrInvalidDtype, d)
	}
	if dtype.Contains(valid, d) {
		return d, nil
	}

	var sameKind, sameCategory, widest dtype.Dtype
	for _, v := range valid {
		if v.Category() != d.Category() {
			continue
		}
		if widest.IsZero() || v.Bits() > widest.Bits() {
			widest = v
		}
		if v.Bits() < d.Bits() {
			continue
		}
		if sameKindAs(d, v) && (sameKind.IsZero() || v.Bits() < sameKind.Bits()) {
			sameKind = v
		}
		if sameCategory.IsZero() || v.Bits() < sameCategory.Bits() {
			sameCategory = v
		}
	}

	switch {
	case !sameKind.IsZero():
		return sameKind, nil
	case !sameCategory.IsZero():
		return sameCategory, nil
	case !widest.IsZero():
		return widest, nil
	}
	return "", fmt.Errorf("%w: no valid %s type near %s", dtype.ErrUnsupportedDtype, d.Category(), d)
}

func sameKindAs(d, v dtype.Dtype) bool {
	if d.IsFloat() {
		return SafeCast(d, v)
	}
	return v.IsUnsigned() == d.IsUnsigned()
}
