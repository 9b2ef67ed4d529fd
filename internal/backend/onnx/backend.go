// Package onnx describes the element types of ONNX tensors. Native dtype
// handles are TensorProto.DataType codes.
//
// ONNX operators require matching input types, so no implicit promotion
// between categories exists; graphs insert explicit Cast nodes instead.
package onnx

import (
	"fmt"

	"github.com/born-ml/dtypes/internal/backend"
	"github.com/born-ml/dtypes/internal/dtype"
)

// Name is the registry identifier of the ONNX backend.
const Name = "onnx"

// Backend maps canonical dtypes to TensorProto codes.
type Backend struct {
	*backend.Table
}

// New creates the ONNX backend description.
func New() *Backend {
	natives := make(map[dtype.Dtype]any, len(elementTypes))
	for code, d := range elementTypes {
		natives[d] = code
	}
	return &Backend{
		Table: backend.NewTable(backend.Spec{
			Name:    Name,
			Natives: natives,
		}),
	}
}

// elementTypes maps the numeric and boolean TensorProto codes to dtypes.
// STRING and the complex types have no canonical counterpart.
var elementTypes = map[DataType]dtype.Dtype{
	Float:    dtype.Float32,
	Uint8:    dtype.Uint8,
	Int8:     dtype.Int8,
	Uint16:   dtype.Uint16,
	Int16:    dtype.Int16,
	Int32:    dtype.Int32,
	Int64:    dtype.Int64,
	Bool:     dtype.Bool,
	Float16:  dtype.Float16,
	Double:   dtype.Float64,
	Uint32:   dtype.Uint32,
	Uint64:   dtype.Uint64,
	Bfloat16: dtype.BFloat16,
}

// AsDtype canonicalizes x. Besides DataType values it accepts the raw int32
// codes stored in TensorProto.DataType and the enum names ("FLOAT", "DOUBLE").
func (b *Backend) AsDtype(x any) (dtype.Dtype, error) {
	switch v := x.(type) {
	case int32:
		return b.AsDtype(DataType(v))
	case DataType:
		if _, ok := elementTypes[v]; !ok {
			return "", fmt.Errorf("%s: %w: tensor type %s", Name, dtype.ErrInvalidDtype, v)
		}
	case string:
		for code, name := range dataTypeNames {
			if name == v {
				return b.AsDtype(code)
			}
		}
	}
	return b.Table.AsDtype(x)
}

// Annotations lists dtypes rejected per operator, following the type
// constraints of the default ONNX operator set.
func (b *Backend) Annotations() backend.Annotations {
	nonNumeric := []dtype.Dtype{dtype.Bool}
	nonFloat := []dtype.Dtype{
		dtype.Int8, dtype.Int16, dtype.Int32, dtype.Int64,
		dtype.Uint8, dtype.Uint16, dtype.Uint32, dtype.Uint64, dtype.Bool,
	}
	nonBool := []dtype.Dtype{
		dtype.Int8, dtype.Int16, dtype.Int32, dtype.Int64,
		dtype.Uint8, dtype.Uint16, dtype.Uint32, dtype.Uint64,
		dtype.BFloat16, dtype.Float16, dtype.Float32, dtype.Float64,
	}
	return backend.Annotations{
		"add":     nonNumeric,
		"sub":     nonNumeric,
		"mul":     nonNumeric,
		"div":     nonNumeric,
		"matmul":  {dtype.Int8, dtype.Int16, dtype.Uint8, dtype.Uint16, dtype.Bool},
		"exp":     nonFloat,
		"log":     nonFloat,
		"sqrt":    nonFloat,
		"cos":     nonFloat,
		"sin":     nonFloat,
		"softmax": nonFloat,
		"and":     nonBool,
		"or":      nonBool,
		"not":     nonBool,
	}
}
