// Package backends is the fixed registry of dtype providers, keyed by the
// backend identifiers accepted across the module.
package backends

import (
	"fmt"
	"slices"

	"github.com/born-ml/dtypes/internal/backend"
	"github.com/born-ml/dtypes/internal/backend/cpu"
	"github.com/born-ml/dtypes/internal/backend/ggml"
	"github.com/born-ml/dtypes/internal/backend/gorgonia"
	"github.com/born-ml/dtypes/internal/backend/onnx"
	"github.com/born-ml/dtypes/internal/backend/webgpu"
	"github.com/born-ml/dtypes/internal/dtype"
)

// Default is the backend used when none is configured.
const Default = cpu.Name

// Names lists the known backend identifiers.
var Names = []string{cpu.Name, webgpu.Name, onnx.Name, ggml.Name, gorgonia.Name}

var constructors = map[string]func() backend.Provider{
	cpu.Name:      func() backend.Provider { return cpu.New() },
	webgpu.Name:   func() backend.Provider { return webgpu.New() },
	onnx.Name:     func() backend.Provider { return onnx.New() },
	ggml.Name:     func() backend.Provider { return ggml.New() },
	gorgonia.Name: func() backend.Provider { return gorgonia.New() },
}

// Known reports whether name is a known backend identifier.
func Known(name string) bool {
	return slices.Contains(Names, name)
}

// New builds the provider registered under name.
func New(name string) (backend.Provider, error) {
	ctor, ok := constructors[name]
	if !ok {
		return nil, fmt.Errorf("backends: %w: %q (known: %v)", dtype.ErrUnknownBackend, name, Names)
	}
	return ctor(), nil
}

// MustNew is like New but panics on an unknown name.
func MustNew(name string) backend.Provider {
	p, err := New(name)
	if err != nil {
		panic(err)
	}
	return p
}
