// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package webgpu exposes the dtype capabilities of Born's WebGPU backend.
//
// WGSL storage buffers hold f16, f32, i32, u32 and bool (as 32-bit words).
// Native dtype handles are ScalarType values. No GPU device is opened.
//
// Example:
//
//	gpu := webgpu.New()
//	src, err := gpu.Shader("add", dtypes.Float32)
package webgpu

import (
	internalwebgpu "github.com/born-ml/dtypes/internal/backend/webgpu"
	"github.com/born-ml/dtypes/dtypes"
)

// Name is the backend identifier.
const Name = internalwebgpu.Name

// Backend describes the dtypes WGSL compute shaders can address.
type Backend = internalwebgpu.Backend

// ScalarType is a WGSL scalar type name.
type ScalarType = internalwebgpu.ScalarType

// WGSL scalar types.
const (
	F16  = internalwebgpu.F16
	F32  = internalwebgpu.F32
	I32  = internalwebgpu.I32
	U32  = internalwebgpu.U32
	Bool = internalwebgpu.Bool
)

// Compile-time checks that Backend is a dtype provider with annotations.
var (
	_ dtypes.Provider  = (*Backend)(nil)
	_ dtypes.Annotated = (*Backend)(nil)
)

// New creates a new WebGPU backend description.
func New() *Backend {
	return internalwebgpu.New()
}
