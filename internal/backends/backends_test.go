package backends

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/born-ml/dtypes/internal/backend"
	"github.com/born-ml/dtypes/internal/dtype"
)

func TestNewUnknown(t *testing.T) {
	_, err := New("tensorflow")
	require.Error(t, err)
	assert.True(t, errors.Is(err, dtype.ErrUnknownBackend))
	for _, name := range Names {
		assert.Contains(t, err.Error(), name)
	}
	assert.False(t, Known("tensorflow"))
	assert.Panics(t, func() { MustNew("tensorflow") })
}

func TestProviders(t *testing.T) {
	for _, name := range Names {
		t.Run(name, func(t *testing.T) {
			require.True(t, Known(name))
			p, err := New(name)
			require.NoError(t, err)
			assert.Equal(t, name, p.Name())

			t.Run("Partition", func(t *testing.T) {
				valid, invalid := p.ValidDtypes(), p.InvalidDtypes()
				assert.NotEmpty(t, valid)
				for _, d := range valid {
					assert.False(t, dtype.Contains(invalid, d), "%s both valid and invalid", d)
				}
				if diff := cmp.Diff(dtype.All, dtype.Sort(append(valid, invalid...))); diff != "" {
					t.Errorf("valid ∪ invalid mismatch (-want +got):\n%s", diff)
				}
			})

			t.Run("RoundTrip", func(t *testing.T) {
				for _, d := range p.ValidDtypes() {
					native, err := p.AsNative(d)
					require.NoError(t, err)
					back, err := p.AsDtype(native)
					require.NoError(t, err)
					assert.Equal(t, d, back)

					// Canonical names are accepted as is.
					again, err := p.AsDtype(d)
					require.NoError(t, err)
					assert.Equal(t, d, again)
				}
			})

			t.Run("InvalidHasNoNative", func(t *testing.T) {
				for _, d := range p.InvalidDtypes() {
					_, err := p.AsNative(d)
					assert.ErrorIs(t, err, dtype.ErrUnsupportedDtype)
					_, err = p.IInfo(d)
					assert.ErrorIs(t, err, dtype.ErrUnsupportedDtype)
				}
			})

			t.Run("ResultTypeIsValid", func(t *testing.T) {
				valid := p.ValidDtypes()
				for _, a := range valid {
					for _, b := range valid {
						res, err := p.ResultType(a, b)
						if err != nil {
							assert.ErrorIs(t, err, backend.ErrNoPromotion, "%s+%s", a, b)
							continue
						}
						assert.True(t, dtype.Contains(valid, res), "%s+%s = %s", a, b, res)
					}
				}
			})

			t.Run("CanCastReflexive", func(t *testing.T) {
				for _, d := range p.ValidDtypes() {
					assert.True(t, p.CanCast(d, d), d)
				}
				for _, d := range p.InvalidDtypes() {
					assert.False(t, p.CanCast(d, d), d)
				}
			})

			t.Run("ClosestValid", func(t *testing.T) {
				valid := p.ValidDtypes()
				for _, d := range dtype.All {
					c, err := p.ClosestValid(d)
					if err != nil {
						assert.ErrorIs(t, err, dtype.ErrUnsupportedDtype)
						continue
					}
					assert.True(t, dtype.Contains(valid, c), "%s -> %s", d, c)
					assert.Equal(t, d.Category(), c.Category())
				}
			})
		})
	}
}

func TestResultTypeRejectsInvalidOperand(t *testing.T) {
	p := MustNew("ggml")
	_, err := p.ResultType(dtype.Float32, dtype.Bool)
	assert.ErrorIs(t, err, dtype.ErrUnsupportedDtype)

	_, err = p.ResultType()
	assert.Error(t, err)
}
