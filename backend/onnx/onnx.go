// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package onnx exposes ONNX tensor element types as a dtype provider.
// Native dtype handles are TensorProto.DataType codes.
package onnx

import (
	internalonnx "github.com/born-ml/dtypes/internal/backend/onnx"
	"github.com/born-ml/dtypes/dtypes"
)

// Name is the backend identifier.
const Name = internalonnx.Name

// Backend maps canonical dtypes to TensorProto codes.
type Backend = internalonnx.Backend

// DataType is an ONNX TensorProto.DataType code.
type DataType = internalonnx.DataType

// Compile-time checks that Backend is a dtype provider with annotations.
var (
	_ dtypes.Provider  = (*Backend)(nil)
	_ dtypes.Annotated = (*Backend)(nil)
)

// New creates the ONNX backend description.
func New() *Backend {
	return internalonnx.New()
}
