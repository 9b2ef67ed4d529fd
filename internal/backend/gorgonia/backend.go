// Package gorgonia describes the element types of gorgonia dense tensors.
// Native dtype handles are tensor.Dtype values.
package gorgonia

import (
	"fmt"

	gorgonia "github.com/pdevine/tensor"

	"github.com/born-ml/dtypes/internal/backend"
	"github.com/born-ml/dtypes/internal/dtype"
)

// Name is the registry identifier of the gorgonia backend.
const Name = "gorgonia"

// Backend maps canonical dtypes to gorgonia tensor dtypes.
type Backend struct {
	*backend.Table
}

// New creates the gorgonia backend description.
func New() *Backend {
	return &Backend{
		Table: backend.NewTable(backend.Spec{
			Name: Name,
			Natives: map[dtype.Dtype]any{
				dtype.Bool:    gorgonia.Bool,
				dtype.Int8:    gorgonia.Int8,
				dtype.Int16:   gorgonia.Int16,
				dtype.Int32:   gorgonia.Int32,
				dtype.Int64:   gorgonia.Int64,
				dtype.Uint8:   gorgonia.Uint8,
				dtype.Uint16:  gorgonia.Uint16,
				dtype.Uint32:  gorgonia.Uint32,
				dtype.Uint64:  gorgonia.Uint64,
				dtype.Float32: gorgonia.Float32,
				dtype.Float64: gorgonia.Float64,
			},
			Policy: backend.Policy{
				IntFloat:     backend.Always64,
				Uint64Signed: dtype.Float64,
				BoolNumeric:  true,
			},
		}),
	}
}

// AsDtype canonicalizes x. The platform-sized gorgonia Int and Uint resolve
// to their 64-bit forms.
func (b *Backend) AsDtype(x any) (dtype.Dtype, error) {
	if dt, ok := x.(gorgonia.Dtype); ok {
		switch dt {
		case gorgonia.Int:
			return dtype.Int64, nil
		case gorgonia.Uint:
			return dtype.Uint64, nil
		}
		if d, err := b.Table.AsDtype(dt); err == nil && d.Known() {
			return d, nil
		}
		return "", fmt.Errorf("%s: %w: tensor dtype %v", Name, dtype.ErrInvalidDtype, dt)
	}
	return b.Table.AsDtype(x)
}

// ValueOf wraps a gorgonia tensor for dtype inference.
func ValueOf(t gorgonia.Tensor) dtype.Value {
	return dtype.NativeArray{Dtype: t.Dtype()}
}
