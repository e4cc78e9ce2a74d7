package conversion

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math"
	"strconv"

	"github.com/viant/tracked-mcp/tracked"
)

// FromJSON converts a decoded JSON (or YAML) document into a tracked value.
// Integral numbers narrow to the smallest fitting kind: int32 range becomes
// KindInt, then KindInt64, then KindUint64; anything else is KindFloat.
func FromJSON(v any) (tracked.Value, error) {
	switch actual := v.(type) {
	case nil:
		return tracked.Null(), nil
	case tracked.Value:
		return actual, nil
	case bool:
		return tracked.Bool(actual), nil
	case string:
		return tracked.String(actual), nil
	case json.Number:
		return fromNumber(actual)
	case float64:
		return fromFloat(actual), nil
	case float32:
		return fromFloat(float64(actual)), nil
	case int:
		return narrow(int64(actual)), nil
	case int32:
		return tracked.Int(int(actual)), nil
	case int64:
		return narrow(actual), nil
	case uint:
		return fromUint(uint64(actual)), nil
	case uint64:
		return fromUint(actual), nil
	case map[string]any:
		m := tracked.NewMap()
		for key, item := range actual {
			value, err := FromJSON(item)
			if err != nil {
				m.Destroy()
				return tracked.Value{}, fmt.Errorf("key %q: %w", key, err)
			}
			m.Set(key, value)
		}
		return tracked.MapValue(m), nil
	case []any:
		s := tracked.NewSequence()
		for i, item := range actual {
			value, err := FromJSON(item)
			if err != nil {
				s.Destroy()
				return tracked.Value{}, fmt.Errorf("index %d: %w", i, err)
			}
			s.Append(value)
		}
		return tracked.SequenceValue(s), nil
	}
	return tracked.Value{}, fmt.Errorf("%w: %T", tracked.ErrUnsupportedType, v)
}

// DecodeJSON parses data and converts it with FromJSON. Empty input is null.
func DecodeJSON(data []byte) (tracked.Value, error) {
	if len(bytes.TrimSpace(data)) == 0 {
		return tracked.Null(), nil
	}
	decoder := json.NewDecoder(bytes.NewReader(data))
	decoder.UseNumber()
	var doc any
	if err := decoder.Decode(&doc); err != nil {
		return tracked.Value{}, fmt.Errorf("failed to decode value: %w", err)
	}
	return FromJSON(doc)
}

func narrow(i int64) tracked.Value {
	if i >= math.MinInt32 && i <= math.MaxInt32 {
		return tracked.Int(int(i))
	}
	return tracked.Int64(i)
}

func fromUint(u uint64) tracked.Value {
	if u <= math.MaxInt64 {
		return narrow(int64(u))
	}
	return tracked.Uint64(u)
}

func fromNumber(n json.Number) (tracked.Value, error) {
	if i, err := n.Int64(); err == nil {
		return narrow(i), nil
	}
	if u, err := strconv.ParseUint(n.String(), 10, 64); err == nil {
		return tracked.Uint64(u), nil
	}
	f, err := n.Float64()
	if err != nil {
		return tracked.Value{}, fmt.Errorf("invalid number %q: %w", n.String(), err)
	}
	return tracked.Float(f), nil
}

// fromFloat narrows integral floats the same way as integers.
func fromFloat(f float64) tracked.Value {
	switch {
	case f != math.Trunc(f) || math.IsInf(f, 0):
		return tracked.Float(f)
	case f >= math.MinInt64 && f < math.MaxInt64:
		return narrow(int64(f))
	case f >= 0 && f < math.MaxUint64:
		return tracked.Uint64(uint64(f))
	}
	return tracked.Float(f)
}

// ToJSON converts v into plain Go values suitable for encoding/json. Map keys
// are emitted by encoding/json in byte-wise order, matching tracked.Map.
func ToJSON(v tracked.Value) any {
	enc := &encoder{}
	_ = v.Visit(enc)
	return enc.out
}

// EncodeJSON marshals v.
func EncodeJSON(v tracked.Value) (json.RawMessage, error) {
	return json.Marshal(ToJSON(v))
}

type encoder struct{ out any }

func (e *encoder) VisitNull() error {
	e.out = nil
	return nil
}

func (e *encoder) VisitBool(b bool) error {
	e.out = b
	return nil
}

func (e *encoder) VisitInt(i int) error {
	e.out = i
	return nil
}

func (e *encoder) VisitInt64(i int64) error {
	e.out = i
	return nil
}

func (e *encoder) VisitUint64(u uint64) error {
	e.out = u
	return nil
}

func (e *encoder) VisitFloat(f float64) error {
	e.out = f
	return nil
}

func (e *encoder) VisitString(s string) error {
	e.out = s
	return nil
}

func (e *encoder) VisitMap(m *tracked.Map) error {
	out := make(map[string]any, m.Len())
	for key, value := range m.All() {
		out[key] = ToJSON(value)
	}
	e.out = out
	return nil
}

func (e *encoder) VisitSequence(s *tracked.Sequence) error {
	out := make([]any, 0, s.Len())
	for _, value := range s.All() {
		out = append(out, ToJSON(value))
	}
	e.out = out
	return nil
}
