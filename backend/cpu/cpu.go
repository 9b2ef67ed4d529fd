// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package cpu exposes the dtype capabilities of Born's pure Go CPU backend.
//
// The CPU kernels handle float32, float64, int32, int64, uint8 and bool.
// Native dtype handles are tensor.DataType values.
//
// Example:
//
//	import (
//	    "github.com/born-ml/dtypes/backend/cpu"
//	    "github.com/born-ml/dtypes/dtypes"
//	)
//
//	func main() {
//	    ctx, _ := dtypes.NewContext(cpu.New())
//	    d, _ := ctx.ResultType("int32", "float32") // float64
//	}
package cpu

import (
	internalcpu "github.com/born-ml/dtypes/internal/backend/cpu"
	"github.com/born-ml/dtypes/dtypes"
	"github.com/born-ml/dtypes/tensor"
)

// Name is the backend identifier.
const Name = internalcpu.Name

// Backend describes the dtypes the CPU kernels handle.
type Backend = internalcpu.CPUBackend

// Compile-time checks that Backend is a dtype provider with annotations.
var (
	_ dtypes.Provider  = (*Backend)(nil)
	_ dtypes.Annotated = (*Backend)(nil)
)

// New creates a new CPU backend.
func New() *Backend {
	return internalcpu.New()
}

// ValueOf wraps a RawTensor for dtype inference.
func ValueOf(raw *tensor.RawTensor) dtypes.Value {
	return internalcpu.ValueOf(raw)
}
