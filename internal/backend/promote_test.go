package backend

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/born-ml/dtypes/internal/dtype"
)

var permissive = Policy{
	IntFloat:     Always64,
	Uint64Signed: dtype.Float64,
	BoolNumeric:  true,
}

func TestPromoteLattice(t *testing.T) {
	tests := []struct {
		a, b dtype.Dtype
		want dtype.Dtype
	}{
		{dtype.Int8, dtype.Int8, dtype.Int8},
		{dtype.Int8, dtype.Int32, dtype.Int32},
		{dtype.Uint16, dtype.Uint8, dtype.Uint16},
		{dtype.Uint8, dtype.Int8, dtype.Int16},
		{dtype.Uint16, dtype.Int16, dtype.Int32},
		{dtype.Uint32, dtype.Int8, dtype.Int64},
		{dtype.Int64, dtype.Uint32, dtype.Int64},
		{dtype.Uint8, dtype.Int64, dtype.Int64},
		{dtype.Uint64, dtype.Int8, dtype.Float64},
		{dtype.Float16, dtype.Float32, dtype.Float32},
		{dtype.Float16, dtype.BFloat16, dtype.Float32},
		{dtype.BFloat16, dtype.Float64, dtype.Float64},
		{dtype.Int32, dtype.Float16, dtype.Float64},
		{dtype.Float32, dtype.Uint8, dtype.Float64},
		{dtype.Bool, dtype.Int8, dtype.Int8},
		{dtype.Float16, dtype.Bool, dtype.Float16},
	}
	for _, tt := range tests {
		t.Run(string(tt.a)+"+"+string(tt.b), func(t *testing.T) {
			got, err := Promote(tt.a, tt.b, permissive)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)

			// Promotion is symmetric.
			got, err = Promote(tt.b, tt.a, permissive)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestPromoteStrictPolicy(t *testing.T) {
	strict := Policy{}
	for _, pair := range [][2]dtype.Dtype{
		{dtype.Int32, dtype.Float32},
		{dtype.Float64, dtype.Int8},
		{dtype.Bool, dtype.Int32},
		{dtype.Uint64, dtype.Int64},
	} {
		_, err := Promote(pair[0], pair[1], strict)
		assert.ErrorIs(t, err, ErrNoPromotion, pair)
	}

	// Same-kind widening needs no policy.
	got, err := Promote(dtype.Uint64, dtype.Uint8, strict)
	require.NoError(t, err)
	assert.Equal(t, dtype.Uint64, got)
}

func TestIntFloatPolicies(t *testing.T) {
	assert.Equal(t, dtype.Float16, FloatOperand(dtype.Int64, dtype.Float16))
	assert.Equal(t, dtype.Float64, Always64(dtype.Int8, dtype.Float16))
}

func TestSafeCast(t *testing.T) {
	tests := []struct {
		from, to dtype.Dtype
		want     bool
	}{
		{dtype.Int8, dtype.Int8, true},
		{dtype.Int8, dtype.Int16, true},
		{dtype.Int16, dtype.Int8, false},
		{dtype.Uint8, dtype.Int16, true},
		{dtype.Uint8, dtype.Int8, false},
		{dtype.Int8, dtype.Uint64, false},
		{dtype.Uint32, dtype.Uint64, true},
		{dtype.Int16, dtype.Float32, true},
		{dtype.Int16, dtype.Float16, false},
		{dtype.Int8, dtype.Float16, true},
		{dtype.Uint8, dtype.BFloat16, true},
		{dtype.Int32, dtype.Float32, false},
		{dtype.Int32, dtype.Float64, true},
		{dtype.Int64, dtype.Float64, true},
		{dtype.Uint64, dtype.Float64, true},
		{dtype.Int64, dtype.Float32, false},
		{dtype.Float16, dtype.BFloat16, false},
		{dtype.BFloat16, dtype.Float32, true},
		{dtype.Float32, dtype.Float64, true},
		{dtype.Float64, dtype.Float32, false},
		{dtype.Float32, dtype.Int64, false},
		{dtype.Bool, dtype.Uint8, true},
		{dtype.Bool, dtype.Float16, true},
		{dtype.Int8, dtype.Bool, false},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, SafeCast(tt.from, tt.to), "%s -> %s", tt.from, tt.to)
	}
}

func TestClosest(t *testing.T) {
	cpu := []dtype.Dtype{dtype.Int32, dtype.Int64, dtype.Uint8, dtype.Float32, dtype.Float64, dtype.Bool}
	wgsl := []dtype.Dtype{dtype.Int32, dtype.Uint32, dtype.Float16, dtype.Float32, dtype.Bool}

	tests := []struct {
		name  string
		d     dtype.Dtype
		valid []dtype.Dtype
		want  dtype.Dtype
	}{
		{"valid", dtype.Int64, cpu, dtype.Int64},
		{"narrower signed", dtype.Int8, cpu, dtype.Int32},
		{"wider unsigned falls back to signed", dtype.Uint16, cpu, dtype.Int32},
		{"half to float32", dtype.Float16, cpu, dtype.Float32},
		{"bfloat16 skips float16", dtype.BFloat16, wgsl, dtype.Float32},
		{"64-bit falls back to widest", dtype.Int64, wgsl, dtype.Int32},
		{"float64 falls back to widest", dtype.Float64, wgsl, dtype.Float32},
		{"unsigned kept", dtype.Uint8, wgsl, dtype.Uint32},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Closest(tt.d, tt.valid)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}

	_, err := Closest(dtype.Bool, []dtype.Dtype{dtype.Int8})
	assert.ErrorIs(t, err, dtype.ErrUnsupportedDtype)

	_, err = Closest("int128", cpu)
	assert.ErrorIs(t, err, dtype.ErrInvalidDtype)
}
