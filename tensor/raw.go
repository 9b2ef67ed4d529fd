// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

package tensor

import (
	"github.com/born-ml/dtypes/internal/tensor"
)

// RawTensor is the low-level tensor representation: a byte buffer with the
// shape and runtime data type needed to interpret it.
//
// Example:
//
//	raw, _ := tensor.NewRaw(tensor.Shape{2, 3}, tensor.Float32, tensor.CPU)
//	data := tensor.As[float32](raw) // Zero-copy access
type RawTensor = tensor.RawTensor

// Shape represents the dimensions of a tensor.
type Shape = tensor.Shape

// DataType represents runtime type information for tensors.
type DataType = tensor.DataType

// Device represents the compute device for tensor operations.
type Device = tensor.Device

// Element is a constraint for Go element types a RawTensor can hold.
type Element = tensor.Element

// Supported data types.
const (
	Float32 = tensor.Float32
	Float64 = tensor.Float64
	Int32   = tensor.Int32
	Int64   = tensor.Int64
	Uint8   = tensor.Uint8
	Bool    = tensor.Bool
)

// Supported compute devices.
const (
	CPU    = tensor.CPU
	WebGPU = tensor.WebGPU
)

// NewRaw creates a zeroed RawTensor with the given shape and type.
func NewRaw(shape Shape, dtype DataType, device Device) (*RawTensor, error) {
	return tensor.NewRaw(shape, dtype, device)
}

// FromSlice creates a 1-D RawTensor holding a copy of values.
func FromSlice[T Element](values []T, device Device) (*RawTensor, error) {
	return tensor.FromSlice(values, device)
}

// As interprets the data of r as []T. It panics if T does not match the
// tensor's data type.
func As[T Element](r *RawTensor) []T {
	return tensor.As[T](r)
}

// BroadcastShapes returns the shape a and b broadcast to under NumPy rules.
func BroadcastShapes(a, b Shape) (Shape, bool, error) {
	return tensor.BroadcastShapes(a, b)
}
