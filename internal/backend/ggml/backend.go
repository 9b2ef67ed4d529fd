// Package ggml describes the element types of GGML tensors as found in GGUF
// model files. Native dtype handles are Type values.
//
// Quantized block formats have no canonical dtype: they are storage layouts
// dequantized to float32 before compute.
package ggml

import (
	"fmt"

	"github.com/born-ml/dtypes/internal/backend"
	"github.com/born-ml/dtypes/internal/dtype"
)

// Name is the registry identifier of the GGML backend.
const Name = "ggml"

// ErrQuantized is returned when a quantized type is canonicalized.
var ErrQuantized = fmt.Errorf("quantized type has no element dtype: %w", dtype.ErrInvalidDtype)

// Backend maps canonical dtypes to GGML tensor types.
type Backend struct {
	*backend.Table
}

// New creates the GGML backend description.
func New() *Backend {
	natives := map[dtype.Dtype]any{
		dtype.Int8:     TypeI8,
		dtype.Int16:    TypeI16,
		dtype.Int32:    TypeI32,
		dtype.Int64:    TypeI64,
		dtype.Float16:  TypeF16,
		dtype.BFloat16: TypeBF16,
		dtype.Float32:  TypeF32,
		dtype.Float64:  TypeF64,
	}
	bits := make(map[dtype.Dtype]int, len(natives))
	for d, n := range natives {
		bits[d] = int(n.(Type).BitsPerElement())
	}
	return &Backend{
		Table: backend.NewTable(backend.Spec{
			Name:    Name,
			Natives: natives,
			Bits:    bits,
			Policy: backend.Policy{
				IntFloat: atLeast32,
			},
		}),
	}
}

// atLeast32 keeps the float operand but never computes below float32,
// matching ggml's f32 accumulation of mixed operands.
func atLeast32(_, f dtype.Dtype) dtype.Dtype {
	if f.Bits() < 32 {
		return dtype.Float32
	}
	return f
}

// AsDtype canonicalizes x. Besides Type values it accepts GGML names
// ("F32", "BF16"). Quantized types fail with ErrQuantized.
func (b *Backend) AsDtype(x any) (dtype.Dtype, error) {
	if s, ok := x.(string); ok {
		if t, ok := ParseType(s); ok {
			x = t
		}
	}
	if t, ok := x.(Type); ok {
		if t.IsQuantized() {
			return "", fmt.Errorf("%s: %s: %w", Name, t, ErrQuantized)
		}
		if !t.Known() {
			return "", fmt.Errorf("%s: %w: tensor type %s", Name, dtype.ErrInvalidDtype, t)
		}
	}
	return b.Table.AsDtype(x)
}

// Annotations lists dtypes rejected per operation. Quantized matmul
// accumulates in float32 and accepts no 64-bit operand.
func (b *Backend) Annotations() backend.Annotations {
	ints := []dtype.Dtype{dtype.Int8, dtype.Int16, dtype.Int32, dtype.Int64}
	return backend.Annotations{
		"matmul":           ints,
		"quantized_matmul": {dtype.Int8, dtype.Int16, dtype.Int32, dtype.Int64, dtype.Float64},
		"dequantize":       {dtype.Int8, dtype.Int16, dtype.Int32, dtype.Int64, dtype.BFloat16, dtype.Float64},
		"exp":              ints,
		"log":              ints,
		"sqrt":             ints,
		"softmax":          ints,
		"rope":             ints,
	}
}
