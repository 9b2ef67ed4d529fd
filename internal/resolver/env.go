package resolver

import (
	"github.com/born-ml/dtypes/internal/backends"
	"github.com/born-ml/dtypes/internal/dtype"
	"github.com/born-ml/dtypes/internal/envconfig"
)

// NewFromEnv creates a Context for the backend named by BORN_BACKEND and
// seeds its default stacks from BORN_DEFAULT_DTYPE, BORN_DEFAULT_FLOAT_DTYPE
// and BORN_DEFAULT_INT_DTYPE.
func NewFromEnv(opts ...Option) (*Context, error) {
	p, err := backends.New(envconfig.Backend())
	if err != nil {
		return nil, err
	}
	c, err := New(p, opts...)
	if err != nil {
		return nil, err
	}
	if err := c.Seed(); err != nil {
		return nil, err
	}
	return c, nil
}

// Seed pushes the configured environment defaults onto the stacks. Unset
// variables push nothing.
func (c *Context) Seed() error {
	seeds := []struct {
		d   dtype.Dtype
		set func(any) error
	}{
		{envconfig.DefaultDtype(), c.SetDefaultDtype},
		{envconfig.DefaultFloatDtype(), c.SetDefaultFloatDtype},
		{envconfig.DefaultIntDtype(), c.SetDefaultIntDtype},
	}
	for _, s := range seeds {
		if s.d.IsZero() {
			continue
		}
		if err := s.set(s.d); err != nil {
			return err
		}
	}
	return nil
}
