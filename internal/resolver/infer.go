package resolver

import (
	"math"
	"math/big"

	"github.com/born-ml/dtypes/internal/dtype"
)

var (
	maxInt64 = new(big.Int).SetUint64(math.MaxInt64)
	maxInt32 = big.NewInt(math.MaxInt32)
)

// DefaultDtype returns the dtype an operation uses when q does not fix one.
//
// With an Input, a floating element selects the float path, an integer
// element the int path, and anything else bool. An empty container counts
// as no input. Without an Input the general stack top is used, then the
// float stack top, then float32.
func (c *Context) DefaultDtype(q Query) (dtype.Dtype, error) {
	if !isUnset(q.Dtype) {
		return c.explicit(q.Dtype)
	}
	if q.Input != nil && !dtype.IsEmpty(q.Input) {
		if d, typed, err := c.typed(q.Input); typed {
			return d, err
		}
		switch {
		case exists(q.Input, kindIs(dtype.Floating)):
			return c.DefaultFloatDtype(Query{Input: q.Input})
		case exists(q.Input, kindIs(dtype.Integer)):
			return c.DefaultIntDtype(Query{Input: q.Input})
		default:
			return c.validate(dtype.Bool)
		}
	}
	return c.validate(c.ambient())
}

// DefaultFloatDtype returns the floating dtype an operation uses when q does
// not fix one.
//
// With an Input, any finite element that float32 cannot represent (out of
// range, more than 24 significant bits, or a decimal exponent outside
// [-126, 127]) selects float64. Otherwise, and without an Input, the float
// stack top is used, then the general default if floating, then float32.
func (c *Context) DefaultFloatDtype(q Query) (dtype.Dtype, error) {
	if !isUnset(q.Dtype) {
		return c.explicit(q.Dtype)
	}
	if q.Input != nil {
		if d, typed, err := c.typed(q.Input); typed {
			return d, err
		}
		if exists(q.Input, needsFloat64) {
			c.logger.Debug("widening float dtype", "to", dtype.Float64)
			return c.validate(dtype.Float64)
		}
	}
	return c.validate(c.ambientFloat())
}

// DefaultIntDtype returns the integer dtype an operation uses when q does not
// fix one.
//
// With an Input, any element above the int64 range selects uint64 (when the
// backend supports it) and any element above the int32 range selects int64;
// +Inf never widens. Otherwise, and without an Input, the int stack top is
// used, then the general default if integer, then int32.
func (c *Context) DefaultIntDtype(q Query) (dtype.Dtype, error) {
	if !isUnset(q.Dtype) {
		return c.explicit(q.Dtype)
	}
	if q.Input != nil {
		if d, typed, err := c.typed(q.Input); typed {
			return d, err
		}
		if c.supports(dtype.Uint64) && exists(q.Input, above(maxInt64)) {
			c.logger.Debug("widening int dtype", "to", dtype.Uint64)
			return c.validate(dtype.Uint64)
		}
		if exists(q.Input, above(maxInt32)) {
			c.logger.Debug("widening int dtype", "to", dtype.Int64)
			return c.validate(dtype.Int64)
		}
	}
	return c.validate(c.ambientInt())
}

// explicit canonicalizes and validates an explicitly requested dtype.
func (c *Context) explicit(x any) (dtype.Dtype, error) {
	d, err := c.AsDtype(x)
	if err != nil {
		return "", err
	}
	return c.validate(d)
}

// typed reports the dtype of an already-typed input; such inputs are never
// scanned.
func (c *Context) typed(v dtype.Value) (d dtype.Dtype, ok bool, err error) {
	switch v.(type) {
	case dtype.Array, dtype.NativeArray:
		d, err = c.AsDtype(v)
		if err != nil {
			return "", true, err
		}
		d, err = c.validate(d)
		return d, true, err
	}
	return "", false, nil
}

func (c *Context) supports(d dtype.Dtype) bool {
	return dtype.Contains(c.provider.ValidDtypes(), d)
}
