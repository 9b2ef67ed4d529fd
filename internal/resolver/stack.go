package resolver

import (
	"github.com/emirpasic/gods/v2/stacks/arraystack"

	"github.com/born-ml/dtypes/internal/dtype"
)

// Fallbacks used when every stack is empty.
const (
	FallbackDtype      = dtype.Float32
	FallbackFloatDtype = dtype.Float32
	FallbackIntDtype   = dtype.Int32
)

// SetDefaultDtype pushes x onto the general default stack.
func (c *Context) SetDefaultDtype(x any) error {
	return c.push(c.general, "general", x)
}

// UnsetDefaultDtype pops the general default stack. Popping an empty stack
// is a no-op.
func (c *Context) UnsetDefaultDtype() {
	c.pop(c.general, "general")
}

// SetDefaultFloatDtype pushes x onto the float default stack.
func (c *Context) SetDefaultFloatDtype(x any) error {
	return c.push(c.floats, "float", x)
}

// UnsetDefaultFloatDtype pops the float default stack. Popping an empty
// stack is a no-op.
func (c *Context) UnsetDefaultFloatDtype() {
	c.pop(c.floats, "float")
}

// SetDefaultIntDtype pushes x onto the int default stack.
func (c *Context) SetDefaultIntDtype(x any) error {
	return c.push(c.ints, "int", x)
}

// UnsetDefaultIntDtype pops the int default stack. Popping an empty stack is
// a no-op.
func (c *Context) UnsetDefaultIntDtype() {
	c.pop(c.ints, "int")
}

// Depth reports the number of entries on each default stack.
type Depth struct {
	General int
	Float   int
	Int     int
}

// Depth returns the current stack depths.
func (c *Context) Depth() Depth {
	return Depth{
		General: c.general.Size(),
		Float:   c.floats.Size(),
		Int:     c.ints.Size(),
	}
}

// Reset empties all three default stacks.
func (c *Context) Reset() {
	c.general.Clear()
	c.floats.Clear()
	c.ints.Clear()
}

func (c *Context) push(s *arraystack.Stack[dtype.Dtype], name string, x any) error {
	d, err := c.AsDtype(x)
	if err != nil {
		return err
	}
	s.Push(d)
	c.logger.Debug("push default dtype", "stack", name, "dtype", d, "depth", s.Size())
	return nil
}

func (c *Context) pop(s *arraystack.Stack[dtype.Dtype], name string) {
	d, ok := s.Pop()
	if !ok {
		c.logger.Debug("unset on empty default stack", "stack", name)
		return
	}
	c.logger.Debug("pop default dtype", "stack", name, "dtype", d, "depth", s.Size())
}

// ambient is the general default: the general stack top, else the float
// stack top, else float32.
func (c *Context) ambient() dtype.Dtype {
	if d, ok := c.general.Peek(); ok {
		return d
	}
	if d, ok := c.floats.Peek(); ok {
		return d
	}
	return FallbackDtype
}

// ambientFloat is the float default: the float stack top, else the general
// default if it is floating, else float32.
func (c *Context) ambientFloat() dtype.Dtype {
	if d, ok := c.floats.Peek(); ok {
		return d
	}
	if d := c.ambient(); d.IsFloat() {
		return d
	}
	return FallbackFloatDtype
}

// ambientInt is the int default: the int stack top, else the general default
// if it is an integer, else int32.
func (c *Context) ambientInt() dtype.Dtype {
	if d, ok := c.ints.Peek(); ok {
		return d
	}
	if d := c.ambient(); d.IsInt() {
		return d
	}
	return FallbackIntDtype
}
