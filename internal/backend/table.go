package backend

import (
	"fmt"

	"github.com/born-ml/dtypes/internal/dtype"
)

// Spec describes a table-driven backend.
type Spec struct {
	Name string

	// Natives maps every dtype the backend supports to its native handle.
	// Handles must be comparable. Dtypes absent from Natives are invalid.
	Natives map[dtype.Dtype]any

	// Bits overrides dtype.Bits for dtypes stored differently by the backend.
	Bits map[dtype.Dtype]int

	Policy Policy
}

// Table implements Provider from a Spec. Concrete backends embed it and
// extend AsDtype with their own native spellings.
type Table struct {
	name    string
	natives map[dtype.Dtype]any
	reverse map[any]dtype.Dtype
	bits    map[dtype.Dtype]int
	policy  Policy
	valid   []dtype.Dtype
	invalid []dtype.Dtype
}

// NewTable builds a Table. It panics if two dtypes share a native handle,
// since canonicalization would then be ambiguous.
func NewTable(spec Spec) *Table {
	t := &Table{
		name:    spec.Name,
		natives: make(map[dtype.Dtype]any, len(spec.Natives)),
		reverse: make(map[any]dtype.Dtype, len(spec.Natives)),
		bits:    spec.Bits,
		policy:  spec.Policy,
	}
	for d, n := range spec.Natives {
		if prev, ok := t.reverse[n]; ok {
			panic(fmt.Sprintf("%s: native dtype %v maps to both %s and %s", spec.Name, n, prev, d))
		}
		t.natives[d] = n
		t.reverse[n] = d
	}
	for _, d := range dtype.All {
		if _, ok := t.natives[d]; ok {
			t.valid = append(t.valid, d)
		} else {
			t.invalid = append(t.invalid, d)
		}
	}
	return t
}

// Name returns the backend name.
func (t *Table) Name() string {
	return t.name
}

// IsValid reports whether d is supported.
func (t *Table) IsValid(d dtype.Dtype) bool {
	_, ok := t.natives[d]
	return ok
}

// AsDtype canonicalizes a native handle, Dtype or string.
func (t *Table) AsDtype(x any) (dtype.Dtype, error) {
	if d, ok := t.lookupNative(x); ok {
		return d, nil
	}
	d, err := dtype.From(x)
	if err != nil {
		return "", fmt.Errorf("%s: %w", t.name, err)
	}
	return d, nil
}

func (t *Table) lookupNative(x any) (d dtype.Dtype, ok bool) {
	// Non-comparable dynamic types would panic as map keys.
	defer func() {
		if recover() != nil {
			d, ok = "", false
		}
	}()
	if _, isDtype := x.(dtype.Dtype); isDtype {
		return "", false
	}
	d, ok = t.reverse[x]
	return d, ok
}

// AsNative converts a canonical dtype to the backend's handle.
func (t *Table) AsNative(d dtype.Dtype) (any, error) {
	n, ok := t.natives[d]
	if !ok {
		return nil, t.unsupported(d)
	}
	return n, nil
}

// DtypeBits returns the bit width of d on this backend.
func (t *Table) DtypeBits(d dtype.Dtype) (int, error) {
	if !d.Known() {
		return 0, fmt.Errorf("%s: %w: %q", t.name, dtype.ErrInvalidDtype, d)
	}
	if b, ok := t.bits[d]; ok {
		return b, nil
	}
	return d.Bits(), nil
}

// ClosestValid returns the valid dtype nearest to d.
func (t *Table) ClosestValid(d dtype.Dtype) (dtype.Dtype, error) {
	c, err := Closest(d, t.valid)
	if err != nil {
		return "", fmt.Errorf("%s: %w", t.name, err)
	}
	return c, nil
}

// CanCast reports whether from casts safely to to. Both must be valid.
func (t *Table) CanCast(from, to dtype.Dtype) bool {
	return t.IsValid(from) && t.IsValid(to) && SafeCast(from, to)
}

// ResultType folds the promotion policy over ds. A result the backend cannot
// hold is moved to its closest valid dtype.
func (t *Table) ResultType(ds ...dtype.Dtype) (dtype.Dtype, error) {
	if len(ds) == 0 {
		return "", fmt.Errorf("%s: result type: at least one dtype is required", t.name)
	}
	for _, d := range ds {
		if !t.IsValid(d) {
			return "", t.unsupported(d)
		}
	}

	res := ds[0]
	for _, d := range ds[1:] {
		next, err := Promote(res, d, t.policy)
		if err != nil {
			return "", fmt.Errorf("%s: %w", t.name, err)
		}
		res = next
	}
	if !t.IsValid(res) {
		return t.ClosestValid(res)
	}
	return res, nil
}

// ValidDtypes returns the supported dtypes in canonical order.
func (t *Table) ValidDtypes() []dtype.Dtype {
	return append([]dtype.Dtype(nil), t.valid...)
}

// InvalidDtypes returns the unsupported dtypes in canonical order.
func (t *Table) InvalidDtypes() []dtype.Dtype {
	return append([]dtype.Dtype(nil), t.invalid...)
}

// IInfo returns integer machine limits for a supported dtype.
func (t *Table) IInfo(d dtype.Dtype) (dtype.IInfo, error) {
	if !t.IsValid(d) {
		return dtype.IInfo{}, t.unsupported(d)
	}
	info, err := dtype.IntInfo(d)
	if err != nil {
		return dtype.IInfo{}, fmt.Errorf("%s: %w", t.name, err)
	}
	return info, nil
}

// FInfo returns floating-point machine limits for a supported dtype.
func (t *Table) FInfo(d dtype.Dtype) (dtype.FInfo, error) {
	if !t.IsValid(d) {
		return dtype.FInfo{}, t.unsupported(d)
	}
	info, err := dtype.FloatInfo(d)
	if err != nil {
		return dtype.FInfo{}, fmt.Errorf("%s: %w", t.name, err)
	}
	return info, nil
}

func (t *Table) unsupported(d dtype.Dtype) error {
	return fmt.Errorf("%s: %w: %s (valid: %v)", t.name, dtype.ErrUnsupportedDtype, d, t.valid)
}
