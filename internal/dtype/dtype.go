// Package dtype provides the backend-neutral data type identifiers shared by
// every Born backend, together with the representative values used for
// dtype inference.
package dtype

import "strings"

// Dtype is a canonical, backend-neutral data type name such as "float32".
//
// The zero value means "no constraint": it is always valid, never invalid,
// and resolves to the ambient default wherever a dtype is required.
type Dtype string

// Canonical data types.
const (
	Bool     Dtype = "bool"
	Int8     Dtype = "int8"
	Int16    Dtype = "int16"
	Int32    Dtype = "int32"
	Int64    Dtype = "int64"
	Uint8    Dtype = "uint8"
	Uint16   Dtype = "uint16"
	Uint32   Dtype = "uint32"
	Uint64   Dtype = "uint64"
	Float16  Dtype = "float16"
	BFloat16 Dtype = "bfloat16"
	Float32  Dtype = "float32"
	Float64  Dtype = "float64"
)

// All lists every canonical data type in canonical order.
// Backends partition this list into valid and invalid dtypes.
var All = []Dtype{
	Int8, Int16, Int32, Int64,
	Uint8, Uint16, Uint32, Uint64,
	BFloat16, Float16, Float32, Float64,
	Bool,
}

// Category is the coarse kind of a data type.
type Category int

// Data type categories.
const (
	Unknown Category = iota
	Integer
	Floating
	Boolean
)

// String returns a human-readable name for the category.
func (c Category) String() string {
	switch c {
	case Integer:
		return "int"
	case Floating:
		return "float"
	case Boolean:
		return "bool"
	default:
		return "unknown"
	}
}

// String returns the canonical name.
func (d Dtype) String() string {
	return string(d)
}

// IsZero reports whether d is the "no constraint" sentinel.
func (d Dtype) IsZero() bool {
	return d == ""
}

// Category derives the category from the name.
func (d Dtype) Category() Category {
	s := string(d)
	switch {
	case strings.Contains(s, "int"):
		return Integer
	case strings.Contains(s, "float"):
		return Floating
	case s == string(Bool):
		return Boolean
	default:
		return Unknown
	}
}

// IsInt reports whether d is a signed or unsigned integer type.
func (d Dtype) IsInt() bool { return d.Category() == Integer }

// IsFloat reports whether d is a floating-point type.
func (d Dtype) IsFloat() bool { return d.Category() == Floating }

// IsBool reports whether d is the boolean type.
func (d Dtype) IsBool() bool { return d == Bool }

// IsUnsigned reports whether d is an unsigned integer type.
func (d Dtype) IsUnsigned() bool {
	return strings.HasPrefix(string(d), "uint")
}

// Known reports whether d is one of the canonical data types.
func (d Dtype) Known() bool {
	_, ok := bits[d]
	return ok
}

var bits = map[Dtype]int{
	Bool:     8,
	Int8:     8,
	Int16:    16,
	Int32:    32,
	Int64:    64,
	Uint8:    8,
	Uint16:   16,
	Uint32:   32,
	Uint64:   64,
	Float16:  16,
	BFloat16: 16,
	Float32:  32,
	Float64:  64,
}

// Bits returns the storage width in bits, or 0 for an unknown dtype.
// Booleans occupy one byte.
func (d Dtype) Bits() int {
	return bits[d]
}

// Size returns the byte size of one element.
func (d Dtype) Size() int {
	return d.Bits() / 8
}

// Wide returns the 64-bit variant of d's category: int64, uint64 or float64.
// Booleans and unknown dtypes are returned unchanged.
func (d Dtype) Wide() Dtype {
	switch {
	case d.IsUnsigned():
		return Uint64
	case d.IsInt():
		return Int64
	case d.IsFloat():
		return Float64
	default:
		return d
	}
}

// Sort orders ds in canonical order (the order of All) and drops duplicates
// and unknown names. The input slice is not modified.
func Sort(ds []Dtype) []Dtype {
	seen := make(map[Dtype]bool, len(ds))
	for _, d := range ds {
		seen[d] = true
	}
	out := make([]Dtype, 0, len(seen))
	for _, d := range All {
		if seen[d] {
			out = append(out, d)
		}
	}
	return out
}

// Contains reports whether d is in ds.
func Contains(ds []Dtype, d Dtype) bool {
	for _, x := range ds {
		if x == d {
			return true
		}
	}
	return false
}
