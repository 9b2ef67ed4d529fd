package resolver

import (
	"fmt"
	"slices"

	"github.com/born-ml/dtypes/internal/backend"
	"github.com/born-ml/dtypes/internal/backends"
	"github.com/born-ml/dtypes/internal/dtype"
)

// ValidDtype reports whether the backend supports x. An unset x (nil or the
// zero Dtype) is valid; a value that cannot be canonicalized is not.
func (c *Context) ValidDtype(x any) bool {
	if isUnset(x) {
		return true
	}
	d, err := c.AsDtype(x)
	if err != nil {
		return false
	}
	return slices.Contains(c.provider.ValidDtypes(), d)
}

// InvalidDtype reports whether x is a canonical dtype the backend rejects.
// An unset x is not invalid, nor is a value that cannot be canonicalized.
func (c *Context) InvalidDtype(x any) bool {
	if isUnset(x) {
		return false
	}
	d, err := c.AsDtype(x)
	if err != nil {
		return false
	}
	return slices.Contains(c.provider.InvalidDtypes(), d)
}

// ConvertDtype reads x as a dtype of the backend named from and returns the
// Context backend's native handle for it. An unknown backend name fails with
// dtype.ErrUnknownBackend before any conversion is attempted.
func (c *Context) ConvertDtype(x any, from string) (any, error) {
	src, err := backends.New(from)
	if err != nil {
		return nil, fmt.Errorf("resolver: convert dtype: %w", err)
	}
	d, err := src.AsDtype(x)
	if err != nil {
		return nil, fmt.Errorf("resolver: convert dtype: %w", err)
	}
	return c.provider.AsNative(d)
}

// FunctionUnsupportedDtypes returns the dtypes op cannot run with on the
// named backend: the op's annotation plus every dtype the backend rejects,
// in canonical order.
func FunctionUnsupportedDtypes(op, backendName string) ([]dtype.Dtype, error) {
	p, err := backends.New(backendName)
	if err != nil {
		return nil, fmt.Errorf("resolver: unsupported dtypes: %w", err)
	}
	return unsupportedBy(op, p), nil
}

// FunctionSupportedDtypes returns the dtypes op runs with on the named
// backend. With FunctionUnsupportedDtypes it partitions dtype.All.
func FunctionSupportedDtypes(op, backendName string) ([]dtype.Dtype, error) {
	p, err := backends.New(backendName)
	if err != nil {
		return nil, fmt.Errorf("resolver: supported dtypes: %w", err)
	}
	unsupported := unsupportedBy(op, p)
	var supported []dtype.Dtype
	for _, d := range p.ValidDtypes() {
		if !dtype.Contains(unsupported, d) {
			supported = append(supported, d)
		}
	}
	return supported, nil
}

func unsupportedBy(op string, p backend.Provider) []dtype.Dtype {
	ds := p.InvalidDtypes()
	if a, ok := p.(backend.Annotated); ok {
		ds = append(ds, a.Annotations()[op]...)
	}
	return dtype.Sort(ds)
}
