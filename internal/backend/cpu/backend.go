// Package cpu implements the dtype capabilities of Born's pure Go CPU backend.
package cpu

import (
	"github.com/born-ml/dtypes/internal/backend"
	"github.com/born-ml/dtypes/internal/dtype"
	"github.com/born-ml/dtypes/internal/tensor"
)

// Name is the registry identifier of the CPU backend.
const Name = "cpu"

// CPUBackend describes the dtypes born's CPU kernels handle. Native dtype
// handles are tensor.DataType values.
type CPUBackend struct {
	*backend.Table
	device tensor.Device
}

// New creates a new CPU backend.
func New() *CPUBackend {
	natives := make(map[dtype.Dtype]any, len(tensor.DataTypes))
	for _, dt := range tensor.DataTypes {
		natives[dt.Canonical()] = dt
	}

	return &CPUBackend{
		Table: backend.NewTable(backend.Spec{
			Name:    Name,
			Natives: natives,
			Policy: backend.Policy{
				IntFloat:     intFloat,
				Uint64Signed: dtype.Float64,
				BoolNumeric:  true,
			},
		}),
		device: tensor.CPU,
	}
}

// Device returns the compute device.
func (cpu *CPUBackend) Device() tensor.Device {
	return cpu.device
}

// intFloat widens to float64 when the integer operand has 32 or more bits,
// so that no int32 value loses precision.
func intFloat(i, f dtype.Dtype) dtype.Dtype {
	if i.Bits() >= 32 {
		return dtype.Float64
	}
	return f
}

// ValueOf wraps a RawTensor for dtype inference.
func ValueOf(raw *tensor.RawTensor) dtype.Value {
	return dtype.NativeArray{Dtype: raw.DType()}
}

// Annotations lists the dtypes born's CPU kernels reject, per operation.
func (cpu *CPUBackend) Annotations() backend.Annotations {
	nonFloat := []dtype.Dtype{dtype.Int32, dtype.Int64, dtype.Uint8, dtype.Bool}
	return backend.Annotations{
		"add":     {dtype.Uint8, dtype.Bool},
		"sub":     {dtype.Uint8, dtype.Bool},
		"mul":     {dtype.Uint8, dtype.Bool},
		"div":     {dtype.Uint8, dtype.Bool},
		"matmul":  {dtype.Uint8, dtype.Bool},
		"exp":     nonFloat,
		"log":     nonFloat,
		"sqrt":    nonFloat,
		"rsqrt":   nonFloat,
		"cos":     nonFloat,
		"sin":     nonFloat,
		"softmax": nonFloat,
		"and":     {dtype.Float32, dtype.Float64, dtype.Int32, dtype.Int64, dtype.Uint8},
		"or":      {dtype.Float32, dtype.Float64, dtype.Int32, dtype.Int64, dtype.Uint8},
		"not":     {dtype.Float32, dtype.Float64, dtype.Int32, dtype.Int64, dtype.Uint8},
	}
}
