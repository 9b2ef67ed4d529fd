// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

package dtypes

import (
	"github.com/born-ml/dtypes/internal/backend"
	"github.com/born-ml/dtypes/internal/backends"
	"github.com/born-ml/dtypes/internal/dtype"
	"github.com/born-ml/dtypes/internal/resolver"
)

// Dtype is a canonical, backend-neutral element type name.
type Dtype = dtype.Dtype

// Canonical dtypes.
const (
	Bool     = dtype.Bool
	Int8     = dtype.Int8
	Int16    = dtype.Int16
	Int32    = dtype.Int32
	Int64    = dtype.Int64
	Uint8    = dtype.Uint8
	Uint16   = dtype.Uint16
	Uint32   = dtype.Uint32
	Uint64   = dtype.Uint64
	Float16  = dtype.Float16
	BFloat16 = dtype.BFloat16
	Float32  = dtype.Float32
	Float64  = dtype.Float64
)

// All lists every canonical dtype in canonical order.
var All = dtype.All

// Errors reported by this package. Match them with errors.Is.
var (
	ErrUnknownBackend   = dtype.ErrUnknownBackend
	ErrNoActiveBackend  = dtype.ErrNoActiveBackend
	ErrUnsupportedDtype = dtype.ErrUnsupportedDtype
	ErrInvalidDtype     = dtype.ErrInvalidDtype
	ErrNoPromotion      = backend.ErrNoPromotion
)

// Machine limits.
type (
	IInfo = dtype.IInfo
	FInfo = dtype.FInfo
)

// Representative values handed to inference.
type (
	Value       = dtype.Value
	Scalar      = dtype.Scalar
	Array       = dtype.Array
	NativeArray = dtype.NativeArray
	Sequence    = dtype.Sequence
	Mapping     = dtype.Mapping
)

// Backend capabilities.
type (
	Provider    = backend.Provider
	Annotated   = backend.Annotated
	Annotations = backend.Annotations
)

// Resolution.
type (
	Context = resolver.Context
	Query   = resolver.Query
	Scope   = resolver.Scope
	Option  = resolver.Option
)

// Backends lists the known backend names.
var Backends = backends.Names

// WithLogger sets the logger a Context writes debug output to.
var WithLogger = resolver.WithLogger

// New creates a Context for the backend registered under name.
func New(name string, opts ...Option) (*Context, error) {
	p, err := backends.New(name)
	if err != nil {
		return nil, err
	}
	return resolver.New(p, opts...)
}

// NewContext creates a Context for an arbitrary provider.
func NewContext(p Provider, opts ...Option) (*Context, error) {
	return resolver.New(p, opts...)
}

// NewFromEnv creates a Context configured by the BORN_* environment.
func NewFromEnv(opts ...Option) (*Context, error) {
	return resolver.NewFromEnv(opts...)
}

// Parse canonicalizes a dtype name or alias.
func Parse(s string) (Dtype, error) {
	return dtype.Parse(s)
}

// FromGo converts Go numbers, booleans, slices and maps into a Value.
func FromGo(x any) (Value, error) {
	return dtype.FromGo(x)
}

// ParseLiteral parses a JSON literal into a Value.
func ParseLiteral(s string) (Value, error) {
	return dtype.ParseLiteral(s)
}

// Scalar constructors.
var (
	Int        = dtype.Int
	Uint       = dtype.Uint
	BigInt     = dtype.BigInt
	Float      = dtype.Float
	BoolScalar = dtype.BoolScalar
)

// NewMapping returns an empty insertion-ordered Mapping.
func NewMapping() Mapping {
	return dtype.NewMapping()
}

// FunctionSupportedDtypes returns the dtypes op runs with on the named backend.
func FunctionSupportedDtypes(op, backendName string) ([]Dtype, error) {
	return resolver.FunctionSupportedDtypes(op, backendName)
}

// FunctionUnsupportedDtypes returns the dtypes op cannot run with on the
// named backend.
func FunctionUnsupportedDtypes(op, backendName string) ([]Dtype, error) {
	return resolver.FunctionUnsupportedDtypes(op, backendName)
}
