package resolver

// Scope holds one pushed default dtype. Close pops it exactly once, so a
// deferred Close is safe alongside an explicit one.
//
//	scope, err := c.DefaultFloatDtypeScope("float64")
//	if err != nil {
//		return err
//	}
//	defer scope.Close()
type Scope struct {
	unset  func()
	closed bool
}

// Close pops the dtype pushed when the scope was opened. Later calls do
// nothing. It always returns nil.
func (s *Scope) Close() error {
	if s.closed {
		return nil
	}
	s.closed = true
	s.unset()
	return nil
}

// DefaultDtypeScope pushes x onto the general stack until Close.
func (c *Context) DefaultDtypeScope(x any) (*Scope, error) {
	if err := c.SetDefaultDtype(x); err != nil {
		return nil, err
	}
	return &Scope{unset: c.UnsetDefaultDtype}, nil
}

// DefaultFloatDtypeScope pushes x onto the float stack until Close.
func (c *Context) DefaultFloatDtypeScope(x any) (*Scope, error) {
	if err := c.SetDefaultFloatDtype(x); err != nil {
		return nil, err
	}
	return &Scope{unset: c.UnsetDefaultFloatDtype}, nil
}

// DefaultIntDtypeScope pushes x onto the int stack until Close.
func (c *Context) DefaultIntDtypeScope(x any) (*Scope, error) {
	if err := c.SetDefaultIntDtype(x); err != nil {
		return nil, err
	}
	return &Scope{unset: c.UnsetDefaultIntDtype}, nil
}

// WithDefaultDtype runs fn with x on top of the general stack. The entry is
// popped when fn returns or panics.
func (c *Context) WithDefaultDtype(x any, fn func() error) error {
	return with(c.DefaultDtypeScope, x, fn)
}

// WithDefaultFloatDtype runs fn with x on top of the float stack.
func (c *Context) WithDefaultFloatDtype(x any, fn func() error) error {
	return with(c.DefaultFloatDtypeScope, x, fn)
}

// WithDefaultIntDtype runs fn with x on top of the int stack.
func (c *Context) WithDefaultIntDtype(x any, fn func() error) error {
	return with(c.DefaultIntDtypeScope, x, fn)
}

func with(open func(any) (*Scope, error), x any, fn func() error) error {
	scope, err := open(x)
	if err != nil {
		return err
	}
	defer scope.Close()
	return fn()
}
