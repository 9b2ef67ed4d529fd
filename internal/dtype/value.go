package dtype

import (
	"encoding/json"
	"fmt"
	"math"
	"math/big"
	"reflect"
	"sort"
	"strings"

	orderedmap "github.com/wk8/go-ordered-map/v2"
)

// Value is a representative value handed to dtype inference. It is a closed
// set of variants: Scalar, Array, NativeArray, Sequence and Mapping.
// Conversion from arbitrary Go values happens once, in FromGo.
type Value interface {
	isValue()
}

// ScalarKind is the runtime kind of a Scalar.
type ScalarKind int

// Scalar kinds.
const (
	KindInt ScalarKind = iota
	KindFloat
	KindBool
)

// Scalar is an untyped literal number or boolean.
// Integers are kept exactly, whatever their magnitude. The zero Scalar is the
// integer 0.
type Scalar struct {
	kind ScalarKind
	i    *big.Int
	f    float64
	b    bool
}

// Int returns an integer scalar.
func Int(v int64) Scalar { return Scalar{kind: KindInt, i: big.NewInt(v)} }

// Uint returns an integer scalar from an unsigned value.
func Uint(v uint64) Scalar { return Scalar{kind: KindInt, i: new(big.Int).SetUint64(v)} }

// BigInt returns an integer scalar of arbitrary magnitude. v is copied.
func BigInt(v *big.Int) Scalar { return Scalar{kind: KindInt, i: new(big.Int).Set(v)} }

// Float returns a floating-point scalar.
func Float(v float64) Scalar { return Scalar{kind: KindFloat, f: v} }

// BoolScalar returns a boolean scalar.
func BoolScalar(v bool) Scalar { return Scalar{kind: KindBool, b: v} }

// Kind returns the scalar's runtime kind.
func (s Scalar) Kind() ScalarKind { return s.kind }

// BigInt returns a copy of the integer value. It returns nil for non-integers.
func (s Scalar) BigInt() *big.Int {
	if s.kind != KindInt {
		return nil
	}
	return new(big.Int).Set(s.integer())
}

// Float64 returns the value as a float64 (booleans are 0 or 1).
func (s Scalar) Float64() float64 {
	switch s.kind {
	case KindInt:
		f, _ := new(big.Float).SetInt(s.integer()).Float64()
		return f
	case KindBool:
		if s.b {
			return 1
		}
		return 0
	default:
		return s.f
	}
}

// IsPosInf reports whether s is +Inf, the "infinity" sentinel that never
// triggers integer widening.
func (s Scalar) IsPosInf() bool {
	return s.kind == KindFloat && math.IsInf(s.f, 1)
}

// Greater reports whether s is strictly greater than limit, comparing exactly.
// NaN and infinities compare false except +Inf, which is greater than any limit.
func (s Scalar) Greater(limit *big.Int) bool {
	switch s.kind {
	case KindInt:
		return s.integer().Cmp(limit) > 0
	case KindFloat:
		if math.IsNaN(s.f) || math.IsInf(s.f, -1) {
			return false
		}
		if math.IsInf(s.f, 1) {
			return true
		}
		return new(big.Float).SetFloat64(s.f).Cmp(new(big.Float).SetInt(limit)) > 0
	default:
		return false
	}
}

var bigZero = new(big.Int)

// integer returns the integer value, treating a nil value as 0.
func (s Scalar) integer() *big.Int {
	if s.i == nil {
		return bigZero
	}
	return s.i
}

// String formats the scalar.
func (s Scalar) String() string {
	switch s.kind {
	case KindInt:
		return s.integer().String()
	case KindBool:
		if s.b {
			return "true"
		}
		return "false"
	default:
		return fmt.Sprint(s.f)
	}
}

// Array is an already-typed array whose canonical dtype is known.
// Inference returns its dtype without scanning.
type Array struct {
	Dtype Dtype
}

// NativeArray is an already-typed array that reports a backend-native dtype
// handle. The active backend canonicalizes the handle.
type NativeArray struct {
	Dtype any
}

// Sequence is an ordered nested container.
type Sequence []Value

// Mapping is an insertion-ordered nested container.
type Mapping struct {
	m *orderedmap.OrderedMap[string, Value]
}

// NewMapping returns an empty Mapping.
func NewMapping() Mapping {
	return Mapping{m: orderedmap.New[string, Value]()}
}

// Set stores v under key, keeping the first insertion position. A zero
// Mapping is initialized on first use.
func (m *Mapping) Set(key string, v Value) {
	if m.m == nil {
		m.m = orderedmap.New[string, Value]()
	}
	m.m.Set(key, v)
}

// Get returns the value stored under key.
func (m Mapping) Get(key string) (Value, bool) {
	if m.m == nil {
		return nil, false
	}
	return m.m.Get(key)
}

// Len returns the number of entries.
func (m Mapping) Len() int {
	if m.m == nil {
		return 0
	}
	return m.m.Len()
}

// Each calls fn for every value in insertion order until fn returns false.
func (m Mapping) Each(fn func(key string, v Value) bool) {
	if m.m == nil {
		return
	}
	for pair := m.m.Oldest(); pair != nil; pair = pair.Next() {
		if !fn(pair.Key, pair.Value) {
			return
		}
	}
}

func (Scalar) isValue()      {}
func (Array) isValue()       {}
func (NativeArray) isValue() {}
func (Sequence) isValue()    {}
func (Mapping) isValue()     {}

// Typed is implemented by array types that know their canonical dtype.
type Typed interface {
	Dtype() Dtype
}

// IsEmpty reports whether v is an empty container.
func IsEmpty(v Value) bool {
	switch c := v.(type) {
	case Sequence:
		return len(c) == 0
	case Mapping:
		return c.Len() == 0
	default:
		return false
	}
}

// FromGo converts a Go value into a Value. It accepts Values, Typed arrays,
// booleans, all integer and float kinds, *big.Int, json.Number, slices,
// arrays and string-keyed maps (visited in sorted key order).
// A nil input yields a nil Value and no error.
func FromGo(x any) (Value, error) {
	switch v := x.(type) {
	case nil:
		return nil, nil
	case Value:
		return v, nil
	case Typed:
		return Array{Dtype: v.Dtype()}, nil
	case bool:
		return BoolScalar(v), nil
	case int:
		return Int(int64(v)), nil
	case int8:
		return Int(int64(v)), nil
	case int16:
		return Int(int64(v)), nil
	case int32:
		return Int(int64(v)), nil
	case int64:
		return Int(v), nil
	case uint:
		return Uint(uint64(v)), nil
	case uint8:
		return Uint(uint64(v)), nil
	case uint16:
		return Uint(uint64(v)), nil
	case uint32:
		return Uint(uint64(v)), nil
	case uint64:
		return Uint(v), nil
	case float32:
		return Float(float64(v)), nil
	case float64:
		return Float(v), nil
	case *big.Int:
		return BigInt(v), nil
	case json.Number:
		return numberValue(v)
	case map[string]any:
		keys := make([]string, 0, len(v))
		for k := range v {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		m := NewMapping()
		for _, k := range keys {
			elem, err := FromGo(v[k])
			if err != nil {
				return nil, err
			}
			m.Set(k, elem)
		}
		return m, nil
	}

	rv := reflect.ValueOf(x)
	switch rv.Kind() {
	case reflect.Slice, reflect.Array:
		seq := make(Sequence, 0, rv.Len())
		for i := 0; i < rv.Len(); i++ {
			elem, err := FromGo(rv.Index(i).Interface())
			if err != nil {
				return nil, err
			}
			seq = append(seq, elem)
		}
		return seq, nil
	default:
		return nil, fmt.Errorf("dtype: cannot infer from value of type %T", x)
	}
}

func numberValue(n json.Number) (Value, error) {
	s := n.String()
	if !strings.ContainsAny(s, ".eE") {
		if i, ok := new(big.Int).SetString(s, 10); ok {
			return BigInt(i), nil
		}
	}
	f, err := n.Float64()
	if err != nil {
		// Out-of-range literals still carry their sign and magnitude.
		if strings.HasPrefix(s, "-") {
			return Float(math.Inf(-1)), nil
		}
		return Float(math.Inf(1)), nil
	}
	return Float(f), nil
}

// ParseLiteral parses a JSON literal into a Value, keeping integer precision
// and object key order. The bare words inf, -inf and nan are also accepted.
//
// Example:
//
//	v, _ := dtype.ParseLiteral(`[1, 2, 9223372036854775808]`)
func ParseLiteral(s string) (Value, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "inf", "+inf", "infinity":
		return Float(math.Inf(1)), nil
	case "-inf", "-infinity":
		return Float(math.Inf(-1)), nil
	case "nan":
		return Float(math.NaN()), nil
	}

	dec := json.NewDecoder(strings.NewReader(s))
	dec.UseNumber()
	v, err := decodeValue(dec)
	if err != nil {
		return nil, fmt.Errorf("dtype: parse literal: %w", err)
	}
	if dec.More() {
		return nil, fmt.Errorf("dtype: parse literal: trailing data after value")
	}
	return v, nil
}

func decodeValue(dec *json.Decoder) (Value, error) {
	tok, err := dec.Token()
	if err != nil {
		return nil, err
	}
	switch t := tok.(type) {
	case json.Delim:
		switch t {
		case '[':
			seq := Sequence{}
			for dec.More() {
				elem, err := decodeValue(dec)
				if err != nil {
					return nil, err
				}
				seq = append(seq, elem)
			}
			if _, err := dec.Token(); err != nil {
				return nil, err
			}
			return seq, nil
		case '{':
			m := NewMapping()
			for dec.More() {
				keyTok, err := dec.Token()
				if err != nil {
					return nil, err
				}
				key, ok := keyTok.(string)
				if !ok {
					return nil, fmt.Errorf("unexpected object key %v", keyTok)
				}
				elem, err := decodeValue(dec)
				if err != nil {
					return nil, err
				}
				m.Set(key, elem)
			}
			if _, err := dec.Token(); err != nil {
				return nil, err
			}
			return m, nil
		default:
			return nil, fmt.Errorf("unexpected delimiter %v", t)
		}
	case json.Number:
		return numberValue(t)
	case bool:
		return BoolScalar(t), nil
	case nil:
		return nil, fmt.Errorf("null is not a numeric literal")
	default:
		return nil, fmt.Errorf("unexpected token %v (%T)", tok, tok)
	}
}
