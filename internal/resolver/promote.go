package resolver

import (
	"fmt"

	"github.com/born-ml/dtypes/internal/dtype"
)

// ResultType returns the dtype the backend produces when combining operands.
// Operands may be dtypes, names, native handles, Array or NativeArray values.
func (c *Context) ResultType(operands ...any) (dtype.Dtype, error) {
	ds := make([]dtype.Dtype, 0, len(operands))
	for _, op := range operands {
		d, err := c.AsDtype(op)
		if err != nil {
			return "", fmt.Errorf("resolver: result type: %w", err)
		}
		ds = append(ds, d)
	}
	d, err := c.provider.ResultType(ds...)
	if err != nil {
		return "", fmt.Errorf("resolver: result type of %v: %w", ds, err)
	}
	c.logger.Debug("result type", "operands", ds, "dtype", d)
	return d, nil
}

// CanCast reports whether the backend casts from into to without loss.
func (c *Context) CanCast(from, to any) (bool, error) {
	f, err := c.AsDtype(from)
	if err != nil {
		return false, fmt.Errorf("resolver: can cast: %w", err)
	}
	t, err := c.AsDtype(to)
	if err != nil {
		return false, fmt.Errorf("resolver: can cast: %w", err)
	}
	return c.provider.CanCast(f, t), nil
}
