// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package ggml exposes GGML tensor types, as stored in GGUF files, as a
// dtype provider. Quantized types have no canonical dtype.
package ggml

import (
	internalggml "github.com/born-ml/dtypes/internal/backend/ggml"
	"github.com/born-ml/dtypes/dtypes"
)

// Name is the backend identifier.
const Name = internalggml.Name

// Backend maps canonical dtypes to GGML tensor types.
type Backend = internalggml.Backend

// Type is a GGML tensor element type.
type Type = internalggml.Type

// ErrQuantized is returned when a quantized type is canonicalized.
var ErrQuantized = internalggml.ErrQuantized

// Compile-time checks that Backend is a dtype provider with annotations.
var (
	_ dtypes.Provider  = (*Backend)(nil)
	_ dtypes.Annotated = (*Backend)(nil)
)

// New creates the GGML backend description.
func New() *Backend {
	return internalggml.New()
}
