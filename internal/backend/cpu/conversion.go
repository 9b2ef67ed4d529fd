package cpu

import (
	"fmt"

	"github.com/born-ml/dtypes/internal/dtype"
	"github.com/born-ml/dtypes/internal/parallel"
	"github.com/born-ml/dtypes/internal/tensor"
)

var kernelConfig = parallel.DefaultConfig()

// AsType casts x to the canonical dtype d. Unlike Cast, it validates d
// against the backend first and reports failures as errors.
func (cpu *CPUBackend) AsType(x *tensor.RawTensor, d dtype.Dtype) (*tensor.RawTensor, error) {
	native, err := cpu.AsNative(d)
	if err != nil {
		return nil, fmt.Errorf("astype: %w", err)
	}
	return cpu.Cast(x, native.(tensor.DataType)), nil
}

// Cast converts the tensor to a different data type.
// Floats truncate toward zero when cast to integers; any non-zero value casts
// to true.
func (cpu *CPUBackend) Cast(x *tensor.RawTensor, dt tensor.DataType) *tensor.RawTensor {
	// No-op if same dtype
	if x.DType() == dt {
		return x
	}

	result, err := tensor.NewRaw(x.Shape(), dt, cpu.device)
	if err != nil {
		panic(fmt.Sprintf("cast: %v", err))
	}

	switch x.DType() {
	case tensor.Float32:
		castFrom(result, tensor.As[float32](x))
	case tensor.Float64:
		castFrom(result, tensor.As[float64](x))
	case tensor.Int32:
		castFrom(result, tensor.As[int32](x))
	case tensor.Int64:
		castFrom(result, tensor.As[int64](x))
	case tensor.Uint8:
		castFrom(result, tensor.As[uint8](x))
	case tensor.Bool:
		castFrom(result, boolsAsUint8(tensor.As[bool](x)))
	default:
		panic(fmt.Sprintf("cast: unsupported source dtype %v", x.DType()))
	}

	return result
}

type number interface {
	~float32 | ~float64 | ~int32 | ~int64 | ~uint8
}

func castFrom[S number](result *tensor.RawTensor, src []S) {
	switch result.DType() {
	case tensor.Float32:
		convert(tensor.As[float32](result), src)
	case tensor.Float64:
		convert(tensor.As[float64](result), src)
	case tensor.Int32:
		convert(tensor.As[int32](result), src)
	case tensor.Int64:
		convert(tensor.As[int64](result), src)
	case tensor.Uint8:
		convert(tensor.As[uint8](result), src)
	case tensor.Bool:
		dst := tensor.As[bool](result)
		parallel.Range(len(src), func(start, end int) {
			for i := start; i < end; i++ {
				dst[i] = src[i] != 0
			}
		}, kernelConfig)
	default:
		panic(fmt.Sprintf("cast: unsupported target dtype %v", result.DType()))
	}
}

func convert[D, S number](dst []D, src []S) {
	parallel.Range(len(src), func(start, end int) {
		for i := start; i < end; i++ {
			//nolint:gosec // G115: truncation is the expected behavior of a cast.
			dst[i] = D(src[i])
		}
	}, kernelConfig)
}

func boolsAsUint8(src []bool) []uint8 {
	out := make([]uint8, len(src))
	for i, v := range src {
		if v {
			out[i] = 1
		}
	}
	return out
}
