// Package webgpu implements the dtype capabilities of Born's WebGPU backend.
// Native dtype handles are WGSL scalar type spellings.
package webgpu

import (
	"fmt"

	"github.com/born-ml/dtypes/internal/backend"
	"github.com/born-ml/dtypes/internal/dtype"
)

// Name is the registry identifier of the WebGPU backend.
const Name = "webgpu"

// ScalarType is a WGSL scalar type name.
type ScalarType string

// WGSL scalar types usable in storage buffers. Booleans are stored as u32
// words on the GPU.
const (
	F16  ScalarType = "f16"
	F32  ScalarType = "f32"
	I32  ScalarType = "i32"
	U32  ScalarType = "u32"
	Bool ScalarType = "bool"
)

// String returns the WGSL spelling.
func (s ScalarType) String() string {
	return string(s)
}

// Backend describes the dtypes WGSL compute shaders can address.
type Backend struct {
	*backend.Table
}

// New creates a new WebGPU backend description. No GPU device is opened.
func New() *Backend {
	return &Backend{
		Table: backend.NewTable(backend.Spec{
			Name: Name,
			Natives: map[dtype.Dtype]any{
				dtype.Float16: F16,
				dtype.Float32: F32,
				dtype.Int32:   I32,
				dtype.Uint32:  U32,
				dtype.Bool:    Bool,
			},
			Bits: map[dtype.Dtype]int{
				dtype.Bool: 32,
			},
			Policy: backend.Policy{
				IntFloat: backend.FloatOperand,
			},
		}),
	}
}

// Annotations lists the dtypes without a shader variant, per operation.
// Arithmetic has f32 and i32 kernels; math, activations and matmul are f32 only.
func (b *Backend) Annotations() backend.Annotations {
	annotations := backend.Annotations{}
	for op := range binaryOps {
		annotations[op] = unsupportedBy(F32, I32)
	}
	for op := range unaryOps {
		annotations[op] = unsupportedBy(F32)
	}
	annotations["matmul"] = unsupportedBy(F32)
	return annotations
}

func unsupportedBy(kernels ...ScalarType) []dtype.Dtype {
	var out []dtype.Dtype
	for _, d := range []dtype.Dtype{dtype.Float16, dtype.Float32, dtype.Int32, dtype.Uint32, dtype.Bool} {
		supported := false
		for _, k := range kernels {
			if scalarOf[d] == k {
				supported = true
			}
		}
		if !supported {
			out = append(out, d)
		}
	}
	return out
}

var scalarOf = map[dtype.Dtype]ScalarType{
	dtype.Float16: F16,
	dtype.Float32: F32,
	dtype.Int32:   I32,
	dtype.Uint32:  U32,
	dtype.Bool:    Bool,
}

func (b *Backend) scalar(d dtype.Dtype) (ScalarType, error) {
	native, err := b.AsNative(d)
	if err != nil {
		return "", err
	}
	st, ok := native.(ScalarType)
	if !ok {
		return "", fmt.Errorf("%s: unexpected native dtype %T", Name, native)
	}
	return st, nil
}
