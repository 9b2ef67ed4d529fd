// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package tensor provides the raw tensor handle of Born's CPU backend.
//
// A RawTensor carries a runtime DataType whose canonical dtype drives
// inference and casting:
//
//	raw, _ := tensor.FromSlice([]int32{1, 2, 3}, tensor.CPU)
//	d := raw.DType().Canonical() // "int32"
//
//	backend := cpu.New()
//	wide, _ := backend.AsType(raw, dtypes.Float64)
package tensor
