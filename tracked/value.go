package tracked

import (
	"errors"
	"fmt"
	"math"
	"reflect"
)

// Kind identifies the payload type held by a Value.
type Kind uint8

const (
	KindNull Kind = iota
	KindBool
	KindInt
	KindInt64
	KindUint64
	KindFloat
	KindString
	KindMap
	KindSequence
)

var kindNames = [...]string{
	KindNull:     "null",
	KindBool:     "bool",
	KindInt:      "int",
	KindInt64:    "int64",
	KindUint64:   "uint64",
	KindFloat:    "float",
	KindString:   "string",
	KindMap:      "map",
	KindSequence: "sequence",
}

func (k Kind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}
	return fmt.Sprintf("kind(%d)", uint8(k))
}

// ErrUnsupportedType is returned by ValueOf for payloads outside the closed
// set of kinds.
var ErrUnsupportedType = errors.New("tracked: unsupported value type")

// Value is a copyable, dynamically typed payload. The zero Value is null.
//
// A Value holding a *Map or *Sequence owns that container: when the value
// is erased, overwritten or its parent destroyed, the nested container is
// destroyed too and its stamp tombstoned.
type Value struct {
	kind    Kind
	payload any
}

// Null returns the null value.
func Null() Value { return Value{} }

func Bool(b bool) Value { return Value{kind: KindBool, payload: b} }

func Int(i int) Value { return Value{kind: KindInt, payload: i} }

func Int64(i int64) Value { return Value{kind: KindInt64, payload: i} }

func Uint64(u uint64) Value { return Value{kind: KindUint64, payload: u} }

func Float(f float64) Value { return Value{kind: KindFloat, payload: f} }

func String(s string) Value { return Value{kind: KindString, payload: s} }

// MapValue wraps m; a nil map yields a null value.
func MapValue(m *Map) Value {
	if m == nil {
		return Value{}
	}
	return Value{kind: KindMap, payload: m}
}

// SequenceValue wraps s; a nil sequence yields a null value.
func SequenceValue(s *Sequence) Value {
	if s == nil {
		return Value{}
	}
	return Value{kind: KindSequence, payload: s}
}

// ValueOf converts a native Go value into a Value. Native maps and slices
// are converted recursively into fresh containers.
func ValueOf(x any) (Value, error) {
	switch v := x.(type) {
	case nil:
		return Null(), nil
	case Value:
		return v, nil
	case bool:
		return Bool(v), nil
	case int:
		return Int(v), nil
	case int32:
		return Int(int(v)), nil
	case int64:
		return Int64(v), nil
	case uint64:
		return Uint64(v), nil
	case float32:
		return Float(float64(v)), nil
	case float64:
		return Float(v), nil
	case string:
		return String(v), nil
	case *Map:
		return MapValue(v), nil
	case *Sequence:
		return SequenceValue(v), nil
	case map[string]any:
		m := NewMap()
		for key, item := range v {
			iv, err := ValueOf(item)
			if err != nil {
				m.Destroy()
				return Value{}, fmt.Errorf("key %q: %w", key, err)
			}
			m.Set(key, iv)
		}
		return MapValue(m), nil
	case []any:
		s := NewSequence()
		for i, item := range v {
			iv, err := ValueOf(item)
			if err != nil {
				s.Destroy()
				return Value{}, fmt.Errorf("index %d: %w", i, err)
			}
			s.Append(iv)
		}
		return SequenceValue(s), nil
	}
	return Value{}, fmt.Errorf("%w: %T", ErrUnsupportedType, x)
}

// Kind returns the payload kind.
func (v Value) Kind() Kind { return v.kind }

// IsNull reports whether v holds no payload.
func (v Value) IsNull() bool { return v.kind == KindNull }

// Interface returns the underlying Go payload (nil for null).
func (v Value) Interface() any { return v.payload }

// SameType reports whether v and other hold payloads of the same concrete type.
func (v Value) SameType(other Value) bool { return v.kind == other.kind }

// Map returns the nested map when v holds one.
func (v Value) Map() (*Map, bool) {
	m, ok := v.payload.(*Map)
	return m, ok
}

// Sequence returns the nested sequence when v holds one.
func (v Value) Sequence() (*Sequence, bool) {
	s, ok := v.payload.(*Sequence)
	return s, ok
}

// As returns the payload of v as T. It matches when the payload type is
// exactly T, or when T is one of the types ValueOf folds into another
// payload: int32, float32, Value, map[string]any, []any or any itself.
func As[T any](v Value) (T, bool) {
	var zero T
	target := reflect.TypeFor[T]()
	if v.payload != nil && reflect.TypeOf(v.payload) == target {
		return v.payload.(T), true
	}
	decoded, ok := decode(v, target)
	if !ok {
		return zero, false
	}
	out, _ := decoded.(T)
	return out, true
}

var (
	anyType         = reflect.TypeFor[any]()
	valueType       = reflect.TypeFor[Value]()
	int32Type       = reflect.TypeFor[int32]()
	float32Type     = reflect.TypeFor[float32]()
	nativeMapType   = reflect.TypeFor[map[string]any]()
	nativeSliceType = reflect.TypeFor[[]any]()
)

// decode reverses the conversions ValueOf applies to non-payload types.
func decode(v Value, target reflect.Type) (any, bool) {
	switch target {
	case anyType:
		return v.native(), true
	case valueType:
		return v, true
	case int32Type:
		if i, ok := v.payload.(int); ok && i >= math.MinInt32 && i <= math.MaxInt32 {
			return int32(i), true
		}
	case float32Type:
		if f, ok := v.payload.(float64); ok {
			return float32(f), true
		}
	case nativeMapType:
		if m, ok := v.payload.(*Map); ok {
			return m.native(), true
		}
	case nativeSliceType:
		if s, ok := v.payload.(*Sequence); ok {
			return s.native(), true
		}
	}
	return nil, false
}

// native copies v into plain Go values, containers included.
func (v Value) native() any {
	switch p := v.payload.(type) {
	case *Map:
		return p.native()
	case *Sequence:
		return p.native()
	}
	return v.payload
}

func (m *Map) native() map[string]any {
	result := make(map[string]any, m.Len())
	m.Ascend(func(key string, v Value) bool {
		result[key] = v.native()
		return true
	})
	return result
}

func (s *Sequence) native() []any {
	result := make([]any, 0, s.Len())
	for _, v := range s.Values() {
		result = append(result, v.native())
	}
	return result
}

// Clone returns a deep copy. Nested containers are copied as new
// identities and carry no stamp.
func (v Value) Clone() Value {
	switch p := v.payload.(type) {
	case *Map:
		return MapValue(p.Clone())
	case *Sequence:
		return SequenceValue(p.Clone())
	}
	return v
}

// Equal reports deep equality of kind and payload.
func (v Value) Equal(other Value) bool {
	if v.kind != other.kind {
		return false
	}
	switch p := v.payload.(type) {
	case *Map:
		return p.Equal(other.payload.(*Map))
	case *Sequence:
		return p.Equal(other.payload.(*Sequence))
	}
	return v.payload == other.payload
}

func (v Value) String() string {
	switch p := v.payload.(type) {
	case nil:
		return "null"
	case *Map:
		return fmt.Sprintf("map[%d]", p.Len())
	case *Sequence:
		return fmt.Sprintf("sequence[%d]", p.Len())
	case string:
		return fmt.Sprintf("%q", p)
	default:
		return fmt.Sprint(p)
	}
}

// Visitor receives the payload of a Value through the method matching its kind.
type Visitor interface {
	VisitNull() error
	VisitBool(b bool) error
	VisitInt(i int) error
	VisitInt64(i int64) error
	VisitUint64(u uint64) error
	VisitFloat(f float64) error
	VisitString(s string) error
	VisitMap(m *Map) error
	VisitSequence(s *Sequence) error
}

// Visit dispatches v to the visitor method for its kind.
func (v Value) Visit(visitor Visitor) error {
	switch v.kind {
	case KindNull:
		return visitor.VisitNull()
	case KindBool:
		return visitor.VisitBool(v.payload.(bool))
	case KindInt:
		return visitor.VisitInt(v.payload.(int))
	case KindInt64:
		return visitor.VisitInt64(v.payload.(int64))
	case KindUint64:
		return visitor.VisitUint64(v.payload.(uint64))
	case KindFloat:
		return visitor.VisitFloat(v.payload.(float64))
	case KindString:
		return visitor.VisitString(v.payload.(string))
	case KindMap:
		return visitor.VisitMap(v.payload.(*Map))
	case KindSequence:
		return visitor.VisitSequence(v.payload.(*Sequence))
	}
	return fmt.Errorf("tracked: unknown kind %v", v.kind)
}

// Destroy destroys the nested container owned by v, if any. Scalars are
// unaffected.
func (v Value) Destroy() { v.release() }

// release destroys a nested container owned by v.
func (v Value) release() {
	switch p := v.payload.(type) {
	case *Map:
		p.Destroy()
	case *Sequence:
		p.Destroy()
	}
}

// sameContainer reports whether v and other wrap the very same container.
func (v Value) sameContainer(other Value) bool {
	switch p := v.payload.(type) {
	case *Map:
		q, ok := other.payload.(*Map)
		return ok && p == q
	case *Sequence:
		q, ok := other.payload.(*Sequence)
		return ok && p == q
	}
	return false
}
