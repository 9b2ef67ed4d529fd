// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package dtypes resolves, infers and validates tensor element types for
// Born's interchangeable backends.
//
// # Overview
//
// A Context binds a backend provider to three stacks of default dtypes
// (general, float and int). It answers:
//   - which dtype an operation uses when none is given
//   - which dtype results from combining operands of different dtypes
//   - whether a dtype is legal for the backend and for a given operation
//
// # Basic Usage
//
//	import (
//	    "github.com/born-ml/dtypes/backend/cpu"
//	    "github.com/born-ml/dtypes/dtypes"
//	)
//
//	func main() {
//	    ctx, _ := dtypes.NewContext(cpu.New())
//
//	    v, _ := dtypes.ParseLiteral(`[1, 2, 9223372036854775808]`)
//	    d, _ := ctx.DefaultIntDtype(dtypes.Query{Input: v}) // uint64 where supported
//
//	    _ = ctx.WithDefaultFloatDtype("float64", func() error {
//	        d, _ = ctx.DefaultFloatDtype(dtypes.Query{}) // float64
//	        return nil
//	    })
//	}
//
// # Backends
//
// Five backends are known by name: cpu, webgpu, onnx, ggml and gorgonia.
// New builds a Context for one of them; NewContext accepts any Provider.
package dtypes
