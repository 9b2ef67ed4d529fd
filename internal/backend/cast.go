package backend

import "github.com/born-ml/dtypes/internal/dtype"

// significand is the number of significand bits (including the implicit one)
// of each floating-point type.
var significand = map[dtype.Dtype]int{
	dtype.BFloat16: 8,
	dtype.Float16:  11,
	dtype.Float32:  24,
	dtype.Float64:  53,
}

// SafeCast reports whether every value of from is representable in to.
// 64-bit integers are allowed to cast to float64, as NumPy does.
func SafeCast(from, to dtype.Dtype) bool {
	if from == to {
		return true
	}

	switch {
	case from.IsBool():
		return to.Known()
	case to.IsBool():
		return false

	case from.IsInt() && to.IsInt():
		switch {
		case from.IsUnsigned() && to.IsUnsigned():
			return to.Bits() >= from.Bits()
		case from.IsUnsigned():
			return to.Bits() > from.Bits()
		case to.IsUnsigned():
			return false
		default:
			return to.Bits() >= from.Bits()
		}

	case from.IsInt() && to.IsFloat():
		if from.Bits() == 64 {
			return to == dtype.Float64
		}
		width := from.Bits()
		if !from.IsUnsigned() {
			width--
		}
		return significand[to] >= width

	case from.IsFloat() && to.IsFloat():
		if from == dtype.Float16 || from == dtype.BFloat16 {
			return to == dtype.Float32 || to == dtype.Float64
		}
		return to.Bits() > from.Bits()
	}

	return false
}
