// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package gorgonia exposes gorgonia dense tensor dtypes as a dtype provider.
package gorgonia

import (
	"github.com/pdevine/tensor"

	internalgorgonia "github.com/born-ml/dtypes/internal/backend/gorgonia"
	"github.com/born-ml/dtypes/dtypes"
)

// Name is the backend identifier.
const Name = internalgorgonia.Name

// Backend maps canonical dtypes to gorgonia tensor dtypes.
type Backend = internalgorgonia.Backend

// Compile-time check that Backend is a dtype provider.
var _ dtypes.Provider = (*Backend)(nil)

// New creates the gorgonia backend description.
func New() *Backend {
	return internalgorgonia.New()
}

// ValueOf wraps a gorgonia tensor for dtype inference.
func ValueOf(t tensor.Tensor) dtypes.Value {
	return internalgorgonia.ValueOf(t)
}
