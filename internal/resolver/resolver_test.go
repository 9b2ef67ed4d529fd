package resolver

import (
	"bytes"
	"log/slog"
	"math"
	"math/big"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/born-ml/dtypes/internal/backend"
	"github.com/born-ml/dtypes/internal/backend/onnx"
	"github.com/born-ml/dtypes/internal/backend/webgpu"
	"github.com/born-ml/dtypes/internal/backends"
	"github.com/born-ml/dtypes/internal/dtype"
	"github.com/born-ml/dtypes/internal/tensor"
)

func newContext(t *testing.T, name string) *Context {
	t.Helper()
	c, err := New(backends.MustNew(name))
	require.NoError(t, err)
	return c
}

func TestNewWithoutBackend(t *testing.T) {
	_, err := New(nil)
	assert.ErrorIs(t, err, dtype.ErrNoActiveBackend)
}

func TestAsDtype(t *testing.T) {
	c := newContext(t, backends.Default)

	for _, x := range []any{"float32", "f32", "single", dtype.Float32, tensor.Float32, dtype.Array{Dtype: dtype.Float32}, dtype.NativeArray{Dtype: tensor.Float32}} {
		d, err := c.AsDtype(x)
		require.NoError(t, err, x)
		assert.Equal(t, dtype.Float32, d, x)

		again, err := c.AsDtype(d)
		require.NoError(t, err)
		assert.Equal(t, d, again, "canonicalization is idempotent")
	}

	_, err := c.AsDtype(nil)
	assert.ErrorIs(t, err, dtype.ErrInvalidDtype)
	_, err = c.AsDtype("float128")
	assert.ErrorIs(t, err, dtype.ErrInvalidDtype)
	_, err = c.AsDtype(dtype.Array{Dtype: "complex64"})
	assert.ErrorIs(t, err, dtype.ErrInvalidDtype)
}

func TestNativeRoundTrip(t *testing.T) {
	for _, name := range backends.Names {
		c := newContext(t, name)
		for _, d := range c.Backend().ValidDtypes() {
			native, err := c.AsNativeDtype(d)
			require.NoError(t, err, "%s/%s", name, d)
			back, err := c.AsDtype(native)
			require.NoError(t, err, "%s/%s", name, d)
			assert.Equal(t, d, back, "%s/%s", name, d)
		}
	}
}

func TestNative(t *testing.T) {
	c := newContext(t, backends.Default)

	native, err := c.Native(c.DefaultFloatDtype(Query{}))
	require.NoError(t, err)
	assert.Equal(t, tensor.Float32, native)

	_, err = c.Native(c.DefaultFloatDtype(Query{Dtype: "float16"}))
	assert.ErrorIs(t, err, dtype.ErrUnsupportedDtype)
}

func TestAmbientDefaults(t *testing.T) {
	c := newContext(t, backends.Default)

	d, err := c.DefaultDtype(Query{})
	require.NoError(t, err)
	assert.Equal(t, dtype.Float32, d)

	d, err = c.DefaultIntDtype(Query{})
	require.NoError(t, err)
	assert.Equal(t, dtype.Int32, d)

	// The float stack feeds the general default when the general stack is empty.
	require.NoError(t, c.SetDefaultFloatDtype(dtype.Float64))
	d, err = c.DefaultDtype(Query{})
	require.NoError(t, err)
	assert.Equal(t, dtype.Float64, d)

	// An integer general default feeds the int default but not the float one.
	require.NoError(t, c.SetDefaultDtype("int64"))
	d, err = c.DefaultIntDtype(Query{})
	require.NoError(t, err)
	assert.Equal(t, dtype.Int64, d)
	d, err = c.DefaultFloatDtype(Query{})
	require.NoError(t, err)
	assert.Equal(t, dtype.Float64, d)

	c.UnsetDefaultFloatDtype()
	d, err = c.DefaultFloatDtype(Query{})
	require.NoError(t, err)
	assert.Equal(t, dtype.Float32, d)
}

func TestStackDiscipline(t *testing.T) {
	c := newContext(t, backends.Default)

	require.NoError(t, c.SetDefaultIntDtype(dtype.Int32))
	require.NoError(t, c.SetDefaultIntDtype(dtype.Int64))
	assert.Equal(t, Depth{Int: 2}, c.Depth())

	d, err := c.DefaultIntDtype(Query{})
	require.NoError(t, err)
	assert.Equal(t, dtype.Int64, d)

	c.UnsetDefaultIntDtype()
	d, err = c.DefaultIntDtype(Query{})
	require.NoError(t, err)
	assert.Equal(t, dtype.Int32, d)

	c.UnsetDefaultIntDtype()
	assert.NotPanics(t, c.UnsetDefaultIntDtype)
	assert.NotPanics(t, c.UnsetDefaultDtype)
	assert.NotPanics(t, c.UnsetDefaultFloatDtype)
	assert.Equal(t, Depth{}, c.Depth())

	err = c.SetDefaultDtype("not-a-dtype")
	assert.ErrorIs(t, err, dtype.ErrInvalidDtype)
	assert.Equal(t, Depth{}, c.Depth())

	require.NoError(t, c.SetDefaultDtype(dtype.Bool))
	require.NoError(t, c.SetDefaultFloatDtype(dtype.Float64))
	c.Reset()
	assert.Equal(t, Depth{}, c.Depth())
}

func TestUnsupportedAmbientDefault(t *testing.T) {
	c := newContext(t, backends.Default)

	// Pushing only canonicalizes; the backend check happens on use.
	require.NoError(t, c.SetDefaultDtype(dtype.Float16))
	_, err := c.DefaultDtype(Query{})
	assert.ErrorIs(t, err, dtype.ErrUnsupportedDtype)
}

func TestExplicitDtype(t *testing.T) {
	c := newContext(t, backends.Default)
	input := dtype.Sequence{dtype.Uint(math.MaxUint64)}

	d, err := c.DefaultIntDtype(Query{Dtype: "int32", Input: input})
	require.NoError(t, err)
	assert.Equal(t, dtype.Int32, d, "an explicit dtype wins over inference")

	d, err = c.DefaultDtype(Query{Dtype: "double"})
	require.NoError(t, err)
	assert.Equal(t, dtype.Float64, d)

	_, err = c.DefaultFloatDtype(Query{Dtype: dtype.BFloat16})
	assert.ErrorIs(t, err, dtype.ErrUnsupportedDtype)

	_, err = c.DefaultDtype(Query{Dtype: "float128"})
	assert.ErrorIs(t, err, dtype.ErrInvalidDtype)
}

func TestUnsetExplicitDtype(t *testing.T) {
	c := newContext(t, backends.Default)
	require.NoError(t, c.SetDefaultIntDtype(dtype.Int64))

	d, err := c.DefaultDtype(Query{Dtype: dtype.Dtype("")})
	require.NoError(t, err)
	assert.Equal(t, dtype.Float32, d)

	d, err = c.DefaultIntDtype(Query{Dtype: dtype.Dtype(""), Input: dtype.Int(1)})
	require.NoError(t, err)
	assert.Equal(t, dtype.Int64, d)

	d, err = c.DefaultFloatDtype(Query{Dtype: dtype.Dtype(""), Input: dtype.Float(1e-130)})
	require.NoError(t, err)
	assert.Equal(t, dtype.Float64, d)
}

func TestZeroScalarInput(t *testing.T) {
	c := newContext(t, onnx.Name)

	var zero dtype.Scalar
	assert.NotPanics(t, func() {
		d, err := c.DefaultIntDtype(Query{Input: zero})
		require.NoError(t, err)
		assert.Equal(t, dtype.Int32, d)

		d, err = c.DefaultFloatDtype(Query{Input: dtype.Sequence{zero}})
		require.NoError(t, err)
		assert.Equal(t, dtype.Float32, d)

		d, err = c.DefaultDtype(Query{Input: zero})
		require.NoError(t, err)
		assert.Equal(t, dtype.Int32, d)
	})
}

func TestDefaultIntDtypeWidening(t *testing.T) {
	c := newContext(t, onnx.Name)

	tests := []struct {
		name  string
		input dtype.Value
		want  dtype.Dtype
	}{
		{"small", dtype.Int(5), dtype.Int32},
		{"int32 max", dtype.Int(math.MaxInt32), dtype.Int32},
		{"above int32", dtype.Int(math.MaxInt32 + 1), dtype.Int64},
		{"int64 max", dtype.Int(math.MaxInt64), dtype.Int64},
		{"above int64", dtype.Uint(math.MaxInt64 + 1), dtype.Uint64},
		{"negative", dtype.Int(math.MinInt64), dtype.Int32},
		{"float above int32", dtype.Float(3e9), dtype.Int64},
		{"positive infinity", dtype.Float(math.Inf(1)), dtype.Int32},
		{"nested", dtype.Sequence{dtype.Int(1), dtype.Sequence{dtype.Int(2), dtype.Uint(math.MaxUint64)}}, dtype.Uint64},
		{"array in container", dtype.Sequence{dtype.Array{Dtype: dtype.Int64}, dtype.Int(1)}, dtype.Int32},
		{"typed input", dtype.Array{Dtype: dtype.Uint16}, dtype.Uint16},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := c.DefaultIntDtype(Query{Input: tt.input})
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestDefaultIntDtypeWideningUsesIntDefault(t *testing.T) {
	c := newContext(t, onnx.Name)
	require.NoError(t, c.SetDefaultIntDtype(dtype.Int16))

	d, err := c.DefaultIntDtype(Query{Input: dtype.Int(7)})
	require.NoError(t, err)
	assert.Equal(t, dtype.Int16, d)

	huge := new(big.Int).Lsh(big.NewInt(1), 70)
	d, err = c.DefaultIntDtype(Query{Input: dtype.BigInt(huge)})
	require.NoError(t, err)
	assert.Equal(t, dtype.Uint64, d)
}

func TestDefaultIntDtypeWithoutUint64(t *testing.T) {
	// The CPU backend has no uint64, so values above int64 settle on int64.
	c := newContext(t, backends.Default)
	d, err := c.DefaultIntDtype(Query{Input: dtype.Uint(math.MaxUint64)})
	require.NoError(t, err)
	assert.Equal(t, dtype.Int64, d)

	// WebGPU has neither, so the widened result is rejected.
	c = newContext(t, "webgpu")
	_, err = c.DefaultIntDtype(Query{Input: dtype.Uint(math.MaxUint64)})
	assert.ErrorIs(t, err, dtype.ErrUnsupportedDtype)

	d, err = c.DefaultIntDtype(Query{Input: dtype.Int(3)})
	require.NoError(t, err)
	assert.Equal(t, dtype.Int32, d)
}

func TestDefaultFloatDtypeWidening(t *testing.T) {
	c := newContext(t, onnx.Name)

	tests := []struct {
		name  string
		input dtype.Value
		want  dtype.Dtype
	}{
		{"small", dtype.Float(1.5), dtype.Float32},
		{"fraction", dtype.Float(0.1), dtype.Float32},
		{"float32 max", dtype.Float(math.MaxFloat32), dtype.Float32},
		{"float32 max literal", dtype.Float(3.4028235e38), dtype.Float32},
		{"smallest exponent", dtype.Float(1e-126), dtype.Float32},
		{"below smallest exponent", dtype.Float(1e-127), dtype.Float64},
		{"negative small exponent", dtype.Float(-1e-127), dtype.Float64},
		{"largest float32 decade", dtype.Float(1e38), dtype.Float32},
		{"largest exponent", dtype.Float(1e127), dtype.Float64},
		{"above largest exponent", dtype.Float(1e128), dtype.Float64},
		{"above float32 max", dtype.Float(3.5e38), dtype.Float64},
		{"negative above max", dtype.Float(-3.5e38), dtype.Float64},
		{"24-bit mantissa", dtype.Float(16777216), dtype.Float32},
		{"25-bit mantissa", dtype.Float(16777217), dtype.Float64},
		{"integer 25-bit mantissa", dtype.Int(16777217), dtype.Float64},
		{"tiny exponent", dtype.Float(1e-130), dtype.Float64},
		{"scientific form", dtype.Float(1e20), dtype.Float32},
		{"nan", dtype.Float(math.NaN()), dtype.Float32},
		{"infinity", dtype.Float(math.Inf(-1)), dtype.Float32},
		{"bool", dtype.BoolScalar(true), dtype.Float32},
		{"nested", dtype.Sequence{dtype.Float(1), dtype.Sequence{dtype.Float(1e-130)}}, dtype.Float64},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := c.DefaultFloatDtype(Query{Input: tt.input})
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestDefaultFloatDtypeUsesFloatDefault(t *testing.T) {
	c := newContext(t, onnx.Name)
	require.NoError(t, c.SetDefaultFloatDtype(dtype.Float16))

	d, err := c.DefaultFloatDtype(Query{Input: dtype.Float(2.5)})
	require.NoError(t, err)
	assert.Equal(t, dtype.Float16, d)

	d, err = c.DefaultFloatDtype(Query{Input: dtype.Float(16777217)})
	require.NoError(t, err)
	assert.Equal(t, dtype.Float64, d)
}

func TestDefaultDtypeInference(t *testing.T) {
	c := newContext(t, backends.Default)
	m := dtype.NewMapping()
	m.Set("a", dtype.BoolScalar(false))
	m.Set("b", dtype.Int(1))

	tests := []struct {
		name  string
		input dtype.Value
		want  dtype.Dtype
	}{
		{"bool", dtype.BoolScalar(true), dtype.Bool},
		{"int", dtype.Int(4), dtype.Int32},
		{"float", dtype.Float(4), dtype.Float32},
		{"mixed", dtype.Sequence{dtype.Int(1), dtype.Float(2.5)}, dtype.Float32},
		{"int and bool", dtype.Sequence{dtype.BoolScalar(true), dtype.Int(1)}, dtype.Int32},
		{"mapping", m, dtype.Int32},
		{"empty sequence", dtype.Sequence{}, dtype.Float32},
		{"empty mapping", dtype.NewMapping(), dtype.Float32},
		{"array", dtype.Array{Dtype: dtype.Int64}, dtype.Int64},
		{"native array", dtype.NativeArray{Dtype: tensor.Uint8}, dtype.Uint8},
		{"wide int", dtype.Int(math.MaxInt32 + 1), dtype.Int64},
		{"wide float", dtype.Float(1e300), dtype.Float64},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := c.DefaultDtype(Query{Input: tt.input})
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}

	_, err := c.DefaultDtype(Query{Input: dtype.Array{Dtype: dtype.Float16}})
	assert.ErrorIs(t, err, dtype.ErrUnsupportedDtype)
}

func TestClosestValidDtype(t *testing.T) {
	c := newContext(t, backends.Default)

	d, err := c.ClosestValidDtype(nil)
	require.NoError(t, err)
	assert.Equal(t, dtype.Float32, d)

	d, err = c.ClosestValidDtype(dtype.Dtype(""))
	require.NoError(t, err)
	assert.Equal(t, dtype.Float32, d)

	for in, want := range map[dtype.Dtype]dtype.Dtype{
		dtype.Float16:  dtype.Float32,
		dtype.BFloat16: dtype.Float32,
		dtype.Int8:     dtype.Int32,
		dtype.Uint16:   dtype.Int32,
		dtype.Int64:    dtype.Int64,
	} {
		d, err := c.ClosestValidDtype(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, d, in)
	}
}

func TestValidity(t *testing.T) {
	c := newContext(t, backends.Default)

	assert.True(t, c.ValidDtype(nil))
	assert.False(t, c.InvalidDtype(nil))
	assert.True(t, c.ValidDtype(dtype.Dtype("")))

	assert.True(t, c.ValidDtype("float32"))
	assert.False(t, c.InvalidDtype("float32"))
	assert.False(t, c.ValidDtype("float16"))
	assert.True(t, c.InvalidDtype("float16"))

	// Values that cannot be canonicalized are neither.
	assert.False(t, c.ValidDtype("float128"))
	assert.False(t, c.InvalidDtype("float128"))

	for _, d := range dtype.All {
		assert.NotEqual(t, c.ValidDtype(d), c.InvalidDtype(d), d)
	}
}

func TestConvertDtype(t *testing.T) {
	c := newContext(t, backends.Default)

	native, err := c.ConvertDtype(onnx.Double, onnx.Name)
	require.NoError(t, err)
	assert.Equal(t, tensor.Float64, native)

	_, err = c.ConvertDtype(onnx.Float16, onnx.Name)
	assert.ErrorIs(t, err, dtype.ErrUnsupportedDtype)

	_, err = c.ConvertDtype("float32", "not-a-backend")
	assert.ErrorIs(t, err, dtype.ErrUnknownBackend)

	_, err = c.ConvertDtype(nil, "not-a-backend")
	assert.ErrorIs(t, err, dtype.ErrUnknownBackend)

	// Handles are read in the source backend's representation only.
	_, err = c.ConvertDtype(webgpu.F32, onnx.Name)
	assert.ErrorIs(t, err, dtype.ErrInvalidDtype)

	native, err = c.ConvertDtype(webgpu.F32, webgpu.Name)
	require.NoError(t, err)
	assert.Equal(t, tensor.Float32, native)

	_, err = c.AsDtype(webgpu.F32)
	assert.ErrorIs(t, err, dtype.ErrInvalidDtype)
}

func TestFunctionDtypesPartition(t *testing.T) {
	ops := []string{"add", "matmul", "exp", "and", "quantized_matmul", "no_such_op"}
	for _, name := range backends.Names {
		for _, op := range ops {
			supported, err := FunctionSupportedDtypes(op, name)
			require.NoError(t, err)
			unsupported, err := FunctionUnsupportedDtypes(op, name)
			require.NoError(t, err)

			for _, d := range supported {
				assert.NotContains(t, unsupported, d, "%s/%s", name, op)
			}
			assert.Equal(t, dtype.All, dtype.Sort(append(supported, unsupported...)), "%s/%s", name, op)
		}
	}
}

func TestFunctionDtypes(t *testing.T) {
	supported, err := FunctionSupportedDtypes("exp", backends.Default)
	require.NoError(t, err)
	assert.Equal(t, []dtype.Dtype{dtype.Float32, dtype.Float64}, supported)

	supported, err = FunctionSupportedDtypes("add", "webgpu")
	require.NoError(t, err)
	assert.Equal(t, []dtype.Dtype{dtype.Int32, dtype.Float32}, supported)

	_, err = FunctionSupportedDtypes("add", "not-a-backend")
	assert.ErrorIs(t, err, dtype.ErrUnknownBackend)
	_, err = FunctionUnsupportedDtypes("add", "not-a-backend")
	assert.ErrorIs(t, err, dtype.ErrUnknownBackend)
}

func TestResultType(t *testing.T) {
	c := newContext(t, backends.Default)

	d, err := c.ResultType("int32", dtype.Array{Dtype: dtype.Float32})
	require.NoError(t, err)
	assert.Equal(t, dtype.Float64, d)

	d, err = c.ResultType(tensor.Uint8, "int32")
	require.NoError(t, err)
	assert.Equal(t, dtype.Int32, d)

	d, err = c.ResultType(dtype.Bool, dtype.Float32)
	require.NoError(t, err)
	assert.Equal(t, dtype.Float32, d)

	_, err = c.ResultType("int8", "int32")
	assert.ErrorIs(t, err, dtype.ErrUnsupportedDtype)

	_, err = c.ResultType("float128")
	assert.ErrorIs(t, err, dtype.ErrInvalidDtype)

	c = newContext(t, onnx.Name)
	_, err = c.ResultType("int32", "float32")
	assert.ErrorIs(t, err, backend.ErrNoPromotion)
}

func TestCanCast(t *testing.T) {
	c := newContext(t, backends.Default)

	ok, err := c.CanCast("int32", "int64")
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = c.CanCast(dtype.Float64, dtype.Float32)
	require.NoError(t, err)
	assert.False(t, ok)

	_, err = c.CanCast("float128", "float32")
	assert.ErrorIs(t, err, dtype.ErrInvalidDtype)
}

func TestCategoryPredicates(t *testing.T) {
	c := newContext(t, backends.Default)

	assert.True(t, c.IsIntDtype("int32"))
	assert.True(t, c.IsIntDtype(5))
	assert.True(t, c.IsIntDtype([]any{1.5, 2}))
	assert.False(t, c.IsIntDtype(true))
	assert.False(t, c.IsIntDtype(dtype.Bool))
	assert.False(t, c.IsIntDtype([]float64{1, 2}))

	assert.True(t, c.IsFloatDtype(dtype.Array{Dtype: dtype.Float64}))
	assert.True(t, c.IsFloatDtype(tensor.Float32))
	assert.True(t, c.IsFloatDtype(map[string]any{"x": 1, "y": 0.5}))
	assert.False(t, c.IsFloatDtype("int64"))

	// Go numbers are literals on every backend, including those that read
	// raw int32 codes as native handles.
	for _, name := range backends.Names {
		b := newContext(t, name)
		assert.True(t, b.IsIntDtype(int32(1)), name)
		assert.False(t, b.IsFloatDtype(int32(1)), name)
		assert.True(t, b.IsFloatDtype(float32(2)), name)
		assert.False(t, b.IsBoolDtype(int32(9)), name)
	}
	onnxCtx := newContext(t, onnx.Name)
	assert.True(t, onnxCtx.IsFloatDtype(onnx.Float))
	assert.True(t, onnxCtx.IsBoolDtype(onnx.Bool))

	assert.True(t, c.IsBoolDtype([]bool{false}))
	assert.True(t, c.IsBoolDtype("bool"))
	assert.False(t, c.IsBoolDtype(1))
	assert.False(t, c.IsBoolDtype(struct{}{}))
}

func TestDtypeOf(t *testing.T) {
	c := newContext(t, backends.Default)

	d, err := c.DtypeOf(dtype.NativeArray{Dtype: tensor.Int64})
	require.NoError(t, err)
	assert.Equal(t, dtype.Int64, d)

	_, err = c.DtypeOf(dtype.Int(1))
	assert.ErrorIs(t, err, dtype.ErrInvalidDtype)
}

func TestInfo(t *testing.T) {
	c := newContext(t, backends.Default)

	ii, err := c.IInfo("int32")
	require.NoError(t, err)
	assert.Equal(t, 32, ii.Bits)

	_, err = c.IInfo("int8")
	assert.ErrorIs(t, err, dtype.ErrUnsupportedDtype)

	_, err = c.FInfo("float16")
	assert.ErrorIs(t, err, dtype.ErrUnsupportedDtype)

	bits, err := c.DtypeBits("float64")
	require.NoError(t, err)
	assert.Equal(t, 64, bits)
}

func TestLogger(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))
	c, err := New(backends.MustNew(backends.Default), WithLogger(logger))
	require.NoError(t, err)

	require.NoError(t, c.SetDefaultDtype("int64"))
	c.UnsetDefaultDtype()
	c.UnsetDefaultDtype()

	out := buf.String()
	assert.Contains(t, out, "push default dtype")
	assert.Contains(t, out, "pop default dtype")
	assert.Contains(t, out, "unset on empty default stack")
}
