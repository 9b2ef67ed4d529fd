package dtype

import (
	"fmt"
	"math"

	bfloat16 "github.com/d4l3k/go-bfloat16"
	"github.com/x448/float16"
)

// IInfo holds machine limits for an integer data type.
type IInfo struct {
	Dtype Dtype
	Bits  int
	Min   int64
	Max   uint64
}

// FInfo holds machine limits for a floating-point data type.
type FInfo struct {
	Dtype          Dtype
	Bits           int
	Eps            float64 // Difference between 1.0 and the next representable value.
	Max            float64 // Largest finite value.
	Min            float64 // Most negative finite value.
	SmallestNormal float64 // Smallest positive normal value.
	Resolution     float64 // Approximate decimal resolution, 10**-precision.
}

// IntInfo returns the limits of an integer dtype.
func IntInfo(d Dtype) (IInfo, error) {
	switch d {
	case Int8:
		return IInfo{d, 8, math.MinInt8, math.MaxInt8}, nil
	case Int16:
		return IInfo{d, 16, math.MinInt16, math.MaxInt16}, nil
	case Int32:
		return IInfo{d, 32, math.MinInt32, math.MaxInt32}, nil
	case Int64:
		return IInfo{d, 64, math.MinInt64, math.MaxInt64}, nil
	case Uint8:
		return IInfo{d, 8, 0, math.MaxUint8}, nil
	case Uint16:
		return IInfo{d, 16, 0, math.MaxUint16}, nil
	case Uint32:
		return IInfo{d, 32, 0, math.MaxUint32}, nil
	case Uint64:
		return IInfo{d, 64, 0, math.MaxUint64}, nil
	default:
		return IInfo{}, fmt.Errorf("dtype: iinfo: %w: %q is not an integer type", ErrInvalidDtype, d)
	}
}

// FloatInfo returns the limits of a floating-point dtype.
// Half-precision limits are decoded from their bit patterns.
func FloatInfo(d Dtype) (FInfo, error) {
	switch d {
	case Float16:
		maxv := float64(float16.Frombits(0x7bff).Float32())
		return FInfo{
			Dtype:          d,
			Bits:           16,
			Eps:            float64(float16.Frombits(0x1400).Float32()),
			Max:            maxv,
			Min:            -maxv,
			SmallestNormal: float64(float16.Frombits(0x0400).Float32()),
			Resolution:     1e-3,
		}, nil
	case BFloat16:
		maxv := decodeBFloat16(0x7f7f)
		return FInfo{
			Dtype:          d,
			Bits:           16,
			Eps:            decodeBFloat16(0x3c00),
			Max:            maxv,
			Min:            -maxv,
			SmallestNormal: decodeBFloat16(0x0080),
			Resolution:     1e-2,
		}, nil
	case Float32:
		return FInfo{
			Dtype:          d,
			Bits:           32,
			Eps:            float64(math.Nextafter32(1, 2) - 1),
			Max:            math.MaxFloat32,
			Min:            -math.MaxFloat32,
			SmallestNormal: float64(math.Float32frombits(0x00800000)),
			Resolution:     1e-6,
		}, nil
	case Float64:
		return FInfo{
			Dtype:          d,
			Bits:           64,
			Eps:            math.Nextafter(1, 2) - 1,
			Max:            math.MaxFloat64,
			Min:            -math.MaxFloat64,
			SmallestNormal: math.Float64frombits(0x0010000000000000),
			Resolution:     1e-15,
		}, nil
	default:
		return FInfo{}, fmt.Errorf("dtype: finfo: %w: %q is not a floating-point type", ErrInvalidDtype, d)
	}
}

// decodeBFloat16 expands a bfloat16 bit pattern (little-endian storage).
func decodeBFloat16(b uint16) float64 {
	return float64(bfloat16.DecodeFloat32([]byte{byte(b), byte(b >> 8)})[0])
}
