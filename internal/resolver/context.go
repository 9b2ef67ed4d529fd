// Package resolver answers dtype questions for one backend: which dtype an
// operation uses when none is given, which dtype results from mixing
// operands, and whether a dtype is legal for the backend or an operation.
//
// A Context owns three default-dtype stacks (general, float and int) and a
// backend.Provider. It is not safe for concurrent use; goroutines should
// each own a Context.
package resolver

import (
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"math/big"

	"github.com/emirpasic/gods/v2/stacks/arraystack"

	"github.com/born-ml/dtypes/internal/backend"
	"github.com/born-ml/dtypes/internal/dtype"
)

// Context resolves dtypes against a single backend.
type Context struct {
	provider backend.Provider
	logger   *slog.Logger

	general *arraystack.Stack[dtype.Dtype]
	floats  *arraystack.Stack[dtype.Dtype]
	ints    *arraystack.Stack[dtype.Dtype]
}

// Option configures a Context.
type Option func(*Context)

// WithLogger sets the logger used for debug output. The default discards.
func WithLogger(l *slog.Logger) Option {
	return func(c *Context) {
		if l != nil {
			c.logger = l
		}
	}
}

// New creates a Context bound to p. A nil provider fails with
// dtype.ErrNoActiveBackend.
func New(p backend.Provider, opts ...Option) (*Context, error) {
	if p == nil {
		return nil, fmt.Errorf("resolver: %w", dtype.ErrNoActiveBackend)
	}
	c := &Context{
		provider: p,
		logger:   slog.New(slog.NewTextHandler(io.Discard, nil)),
		general:  arraystack.New[dtype.Dtype](),
		floats:   arraystack.New[dtype.Dtype](),
		ints:     arraystack.New[dtype.Dtype](),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// Backend returns the provider the Context resolves against.
func (c *Context) Backend() backend.Provider {
	return c.provider
}

// Query selects the inputs of a default-dtype query. A non-nil Dtype takes
// precedence over Input; with neither, the ambient default is returned.
// A zero Dtype counts as unset.
type Query struct {
	// Dtype is an explicit dtype: a dtype.Dtype, a name, or a native handle.
	Dtype any

	// Input is a representative value whose contents drive inference.
	Input dtype.Value
}

// Native converts the result of a query to the backend's native handle.
//
//	native, err := c.Native(c.DefaultFloatDtype(resolver.Query{}))
func (c *Context) Native(d dtype.Dtype, err error) (any, error) {
	if err != nil {
		return nil, err
	}
	return c.AsNativeDtype(d)
}

// AsDtype canonicalizes x: a dtype.Dtype, a name or alias, a native handle,
// or an Array/NativeArray value. It is idempotent and does not check that
// the backend supports the result.
func (c *Context) AsDtype(x any) (dtype.Dtype, error) {
	switch v := x.(type) {
	case nil:
		return "", fmt.Errorf("resolver: %w: nil", dtype.ErrInvalidDtype)
	case dtype.Array:
		if !v.Dtype.Known() {
			return "", fmt.Errorf("resolver: %w: array dtype %q", dtype.ErrInvalidDtype, v.Dtype)
		}
		return v.Dtype, nil
	case dtype.NativeArray:
		return c.provider.AsDtype(v.Dtype)
	case dtype.Typed:
		return c.AsDtype(dtype.Array{Dtype: v.Dtype()})
	}
	return c.provider.AsDtype(x)
}

// AsNativeDtype converts x to the backend's native handle. It fails with
// dtype.ErrUnsupportedDtype when the backend does not support x.
func (c *Context) AsNativeDtype(x any) (any, error) {
	d, err := c.AsDtype(x)
	if err != nil {
		return nil, err
	}
	return c.provider.AsNative(d)
}

// DtypeBits returns the storage width of x on the backend.
func (c *Context) DtypeBits(x any) (int, error) {
	d, err := c.AsDtype(x)
	if err != nil {
		return 0, err
	}
	return c.provider.DtypeBits(d)
}

// ClosestValidDtype returns x if the backend supports it, otherwise the
// nearest supported dtype of the same category. A nil or zero x resolves to
// the ambient default dtype.
func (c *Context) ClosestValidDtype(x any) (dtype.Dtype, error) {
	if isUnset(x) {
		return c.DefaultDtype(Query{})
	}
	d, err := c.AsDtype(x)
	if err != nil {
		return "", err
	}
	return c.provider.ClosestValid(d)
}

// DtypeOf returns the dtype of an already-typed value.
func (c *Context) DtypeOf(v dtype.Value) (dtype.Dtype, error) {
	switch v.(type) {
	case dtype.Array, dtype.NativeArray:
		return c.AsDtype(v)
	}
	return "", fmt.Errorf("resolver: %w: %T carries no dtype", dtype.ErrInvalidDtype, v)
}

// IsIntDtype reports whether x is an integer dtype. x may be anything
// AsDtype accepts or any value dtype.FromGo accepts; a container is integer
// if any element is an integer. Booleans are not integers.
func (c *Context) IsIntDtype(x any) bool {
	return c.is(x, dtype.Integer)
}

// IsFloatDtype reports whether x is a floating-point dtype, with the same
// container rule as IsIntDtype.
func (c *Context) IsFloatDtype(x any) bool {
	return c.is(x, dtype.Floating)
}

// IsBoolDtype reports whether x is the boolean dtype, with the same
// container rule as IsIntDtype.
func (c *Context) IsBoolDtype(x any) bool {
	return c.is(x, dtype.Boolean)
}

func (c *Context) is(x any, cat dtype.Category) bool {
	if isLiteral(x) {
		v, err := dtype.FromGo(x)
		return err == nil && exists(v, kindIs(cat))
	}
	if d, err := c.AsDtype(x); err == nil {
		return d.Category() == cat
	}
	v, err := dtype.FromGo(x)
	if err != nil || v == nil {
		return false
	}
	return exists(v, kindIs(cat))
}

// isLiteral reports whether x is a scalar or container value rather than a
// dtype spelling. Builtin Go numbers are literals, never native codes.
func isLiteral(x any) bool {
	switch x.(type) {
	case dtype.Scalar, dtype.Sequence, dtype.Mapping,
		bool, int, int8, int16, int32, int64,
		uint, uint8, uint16, uint32, uint64,
		float32, float64, *big.Int, json.Number:
		return true
	}
	return false
}

// IInfo returns the integer machine limits of x on the backend.
func (c *Context) IInfo(x any) (dtype.IInfo, error) {
	d, err := c.AsDtype(x)
	if err != nil {
		return dtype.IInfo{}, err
	}
	return c.provider.IInfo(d)
}

// FInfo returns the floating-point machine limits of x on the backend.
func (c *Context) FInfo(x any) (dtype.FInfo, error) {
	d, err := c.AsDtype(x)
	if err != nil {
		return dtype.FInfo{}, err
	}
	return c.provider.FInfo(d)
}

// validate checks that the backend supports d.
func (c *Context) validate(d dtype.Dtype) (dtype.Dtype, error) {
	if _, err := c.provider.AsNative(d); err != nil {
		return "", err
	}
	return d, nil
}

func isUnset(x any) bool {
	if x == nil {
		return true
	}
	d, ok := x.(dtype.Dtype)
	return ok && d.IsZero()
}
