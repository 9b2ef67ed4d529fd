package resolver

import (
	"math"
	"math/big"
	"strconv"
	"strings"

	"github.com/born-ml/dtypes/internal/dtype"
)

// exists reports whether any scalar reachable from v satisfies pred. The
// traversal is depth-first and stops at the first match. Arrays nested in
// containers contribute no scalars.
func exists(v dtype.Value, pred func(dtype.Scalar) bool) bool {
	switch x := v.(type) {
	case dtype.Scalar:
		return pred(x)
	case dtype.Sequence:
		for _, e := range x {
			if exists(e, pred) {
				return true
			}
		}
	case dtype.Mapping:
		found := false
		x.Each(func(_ string, e dtype.Value) bool {
			found = exists(e, pred)
			return !found
		})
		return found
	}
	return false
}

func kindIs(cat dtype.Category) func(dtype.Scalar) bool {
	return func(s dtype.Scalar) bool {
		switch s.Kind() {
		case dtype.KindInt:
			return cat == dtype.Integer
		case dtype.KindFloat:
			return cat == dtype.Floating
		default:
			return cat == dtype.Boolean
		}
	}
}

// above matches scalars strictly greater than limit, except +Inf.
func above(limit *big.Int) func(dtype.Scalar) bool {
	return func(s dtype.Scalar) bool {
		return !s.IsPosInf() && s.Greater(limit)
	}
}

const (
	maxFloat32    = 3.4028235e38
	mantissaBits  = 24
	minExponent10 = -126
	maxExponent10 = 127
)

var maxFloat32Int, _ = new(big.Float).SetFloat64(maxFloat32).Int(nil)

// needsFloat64 reports whether a finite scalar calls for float64. Booleans,
// NaN and infinities never do.
func needsFloat64(s dtype.Scalar) bool {
	switch s.Kind() {
	case dtype.KindInt:
		n := s.BigInt()
		n.Abs(n)
		if n.Cmp(maxFloat32Int) > 0 {
			return true
		}
		exp := 0
		if n.Sign() != 0 {
			exp = len(n.String()) - 1
		}
		return wideMantissa(n) || exp < minExponent10 || exp > maxExponent10

	case dtype.KindFloat:
		f := s.Float64()
		if math.IsNaN(f) || math.IsInf(f, 0) {
			return false
		}
		f = math.Abs(f)
		if f > maxFloat32 {
			return true
		}
		intPart, exp := decimalParts(f)
		return wideMantissa(intPart) || exp < minExponent10 || exp > maxExponent10
	}
	return false
}

// wideMantissa reports whether n needs more than 24 bits and has a set bit
// past the 24th most significant one.
func wideMantissa(n *big.Int) bool {
	extra := n.BitLen() - mantissaBits
	return extra > 0 && n.TrailingZeroBits() < uint(extra)
}

// decimalParts splits the shortest round-trip decimal form of a finite,
// non-negative f into the integer part of its mantissa and its base-10
// exponent. Values below 1e-4 or from 1e16 up are written in scientific
// form, so the integer part is the leading digit; otherwise it is the
// integer part of f itself.
func decimalParts(f float64) (*big.Int, int) {
	if f == 0 {
		return new(big.Int), 0
	}
	sci := strconv.FormatFloat(f, 'e', -1, 64)
	mant, expStr, _ := strings.Cut(sci, "e")
	exp, _ := strconv.Atoi(expStr)

	if exp < -4 || exp >= 16 {
		lead, _ := strconv.Atoi(mant[:1])
		return big.NewInt(int64(lead)), exp
	}
	intPart, _ := new(big.Float).SetFloat64(math.Floor(f)).Int(nil)
	return intPart, exp
}
