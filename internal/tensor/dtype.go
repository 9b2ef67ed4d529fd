// Package tensor provides the CPU array handle used by Born's CPU backend:
// a runtime data type enum, shapes and raw byte-backed tensors.
package tensor

import "github.com/born-ml/dtypes/internal/dtype"

// Element is a constraint for Go element types a RawTensor can hold.
type Element interface {
	~float32 | ~float64 | ~int32 | ~int64 | ~uint8 | ~bool
}

// DataType represents runtime type information for tensors.
type DataType int

// Supported data types for tensors.
const (
	Float32 DataType = iota
	Float64
	Int32
	Int64
	Uint8
	Bool
)

// DataTypes lists every DataType.
var DataTypes = []DataType{Float32, Float64, Int32, Int64, Uint8, Bool}

// Size returns the byte size of the data type.
func (dt DataType) Size() int {
	switch dt {
	case Float32, Int32:
		return 4
	case Float64, Int64:
		return 8
	case Uint8, Bool:
		return 1
	default:
		panic("unknown data type")
	}
}

// String returns a human-readable name for the data type.
func (dt DataType) String() string {
	switch dt {
	case Float32:
		return "float32"
	case Float64:
		return "float64"
	case Int32:
		return "int32"
	case Int64:
		return "int64"
	case Uint8:
		return "uint8"
	case Bool:
		return "bool"
	default:
		return "unknown"
	}
}

// Canonical returns the backend-neutral dtype for dt.
func (dt DataType) Canonical() dtype.Dtype {
	return dtype.Dtype(dt.String())
}

// DataTypeOf infers the DataType of a Go element type.
func DataTypeOf[T Element]() DataType {
	var dummy T
	switch any(dummy).(type) {
	case float32:
		return Float32
	case float64:
		return Float64
	case int32:
		return Int32
	case int64:
		return Int64
	case uint8:
		return Uint8
	case bool:
		return Bool
	default:
		panic("unsupported type")
	}
}
