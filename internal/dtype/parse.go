package dtype

import (
	"fmt"
	"strings"
)

// aliases maps alternative spellings to canonical names. Canonical names map
// to themselves so that Parse is idempotent.
var aliases = map[string]Dtype{
	"bool":    Bool,
	"boolean": Bool,
	"b8":      Bool,

	"int8":  Int8,
	"i8":    Int8,
	"s8":    Int8,
	"int16": Int16,
	"i16":   Int16,
	"s16":   Int16,
	"short": Int16,
	"int32": Int32,
	"i32":   Int32,
	"s32":   Int32,
	"int":   Int32,
	"int64": Int64,
	"i64":   Int64,
	"s64":   Int64,
	"long":  Int64,

	"uint8":  Uint8,
	"u8":     Uint8,
	"byte":   Uint8,
	"uint16": Uint16,
	"u16":    Uint16,
	"uint32": Uint32,
	"u32":    Uint32,
	"uint":   Uint32,
	"uint64": Uint64,
	"u64":    Uint64,

	"float16":  Float16,
	"f16":      Float16,
	"half":     Float16,
	"bfloat16": BFloat16,
	"bf16":     BFloat16,
	"float32":  Float32,
	"f32":      Float32,
	"float":    Float32,
	"single":   Float32,
	"float64":  Float64,
	"f64":      Float64,
	"double":   Float64,
}

// Parse canonicalizes a dtype name. It is case-insensitive, accepts common
// aliases ("double", "f32", "bf16", ...) and is idempotent on canonical names.
//
// Example:
//
//	d, _ := dtype.Parse("F32")    // float32
//	d, _ = dtype.Parse(d.String()) // still float32
func Parse(s string) (Dtype, error) {
	key := strings.ToLower(strings.TrimSpace(s))
	if d, ok := aliases[key]; ok {
		return d, nil
	}
	return "", fmt.Errorf("dtype: %w: %q", ErrInvalidDtype, s)
}

// MustParse is like Parse but panics on an unknown name.
// It is intended for tables and tests.
func MustParse(s string) Dtype {
	d, err := Parse(s)
	if err != nil {
		panic(err)
	}
	return d
}

// From canonicalizes a Dtype or string. Other types are rejected; backend
// native handles are canonicalized by their backend, not here.
func From(x any) (Dtype, error) {
	switch v := x.(type) {
	case Dtype:
		if v.Known() {
			return v, nil
		}
		return Parse(string(v))
	case string:
		return Parse(v)
	default:
		return "", fmt.Errorf("dtype: %w: unsupported value %v (%T)", ErrInvalidDtype, x, x)
	}
}
