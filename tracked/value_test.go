package tracked

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValueOf(t *testing.T) {
	testCases := []struct {
		name   string
		input  any
		expect Kind
	}{
		{name: "nil", input: nil, expect: KindNull},
		{name: "bool", input: true, expect: KindBool},
		{name: "int", input: 1, expect: KindInt},
		{name: "int32", input: int32(1), expect: KindInt},
		{name: "int64", input: int64(1), expect: KindInt64},
		{name: "uint64", input: uint64(1), expect: KindUint64},
		{name: "float", input: 1.5, expect: KindFloat},
		{name: "string", input: "x", expect: KindString},
		{name: "native map", input: map[string]any{"a": 1}, expect: KindMap},
		{name: "native slice", input: []any{1, "x"}, expect: KindSequence},
		{name: "value", input: String("y"), expect: KindString},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			v, err := ValueOf(tc.input)
			require.NoError(t, err)
			assert.EqualValues(t, tc.expect, v.Kind())
		})
	}

	_, err := ValueOf(struct{}{})
	assert.True(t, errors.Is(err, ErrUnsupportedType))
	_, err = ValueOf(map[string]any{"bad": []any{struct{}{}}})
	assert.True(t, errors.Is(err, ErrUnsupportedType))
}

func TestValue_As(t *testing.T) {
	v := Int64(3)
	i64, ok := As[int64](v)
	assert.True(t, ok)
	assert.EqualValues(t, 3, i64)

	_, ok = As[int](v)
	assert.False(t, ok)
	_, ok = As[int32](v)
	assert.False(t, ok, "int32 reads back only from int payloads")
	_, ok = As[string](Null())
	assert.False(t, ok)

	i32, ok := As[int32](Int(-4))
	assert.True(t, ok)
	assert.EqualValues(t, -4, i32)
	_, ok = As[int32](Int(1 << 40))
	assert.False(t, ok)

	f32, ok := As[float32](Float(0.5))
	assert.True(t, ok)
	assert.EqualValues(t, 0.5, f32)

	wrapped, ok := As[Value](String("s"))
	assert.True(t, ok)
	assert.True(t, wrapped.Equal(String("s")))

	anything, ok := As[any](v)
	assert.True(t, ok)
	assert.EqualValues(t, int64(3), anything)
	anything, ok = As[any](Null())
	assert.True(t, ok)
	assert.Nil(t, anything)

	nested := MapValue(NewMapOf(
		Entry{Key: "a", Value: Int(1)},
		Entry{Key: "list", Value: SequenceValue(NewSequenceOf(String("x"), Bool(true)))},
	))
	native, ok := As[map[string]any](nested)
	assert.True(t, ok)
	assert.EqualValues(t, map[string]any{"a": 1, "list": []any{"x", true}}, native)
	_, ok = As[[]any](nested)
	assert.False(t, ok)
}

func TestValue_SameTypeAndEqual(t *testing.T) {
	assert.True(t, Int(1).SameType(Int(2)))
	assert.False(t, Int(1).SameType(Int64(1)))
	assert.True(t, String("a").Equal(String("a")))
	assert.False(t, String("a").Equal(String("b")))
	assert.True(t, MapValue(nil).IsNull())

	a := MapValue(NewMapOf(Entry{Key: "k", Value: Float(1.5)}))
	b := a.Clone()
	assert.True(t, a.Equal(b))
	m, _ := a.Map()
	n, _ := b.Map()
	assert.NotSame(t, m, n)
}

type kindRecorder struct{ kinds []Kind }

func (r *kindRecorder) record(k Kind) error {
	r.kinds = append(r.kinds, k)
	return nil
}

func (r *kindRecorder) VisitNull() error { return r.record(KindNull) }

func (r *kindRecorder) VisitBool(bool) error { return r.record(KindBool) }

func (r *kindRecorder) VisitInt(int) error { return r.record(KindInt) }

func (r *kindRecorder) VisitInt64(int64) error { return r.record(KindInt64) }

func (r *kindRecorder) VisitUint64(uint64) error { return r.record(KindUint64) }

func (r *kindRecorder) VisitFloat(float64) error { return r.record(KindFloat) }

func (r *kindRecorder) VisitString(string) error { return r.record(KindString) }

func (r *kindRecorder) VisitMap(*Map) error { return r.record(KindMap) }

func (r *kindRecorder) VisitSequence(*Sequence) error { return r.record(KindSequence) }

func TestValue_Visit(t *testing.T) {
	values := []Value{Null(), Bool(true), Int(1), Int64(2), Uint64(3), Float(4), String("5"), MapValue(NewMap()), SequenceValue(NewSequence())}
	rec := &kindRecorder{}
	for _, v := range values {
		require.NoError(t, v.Visit(rec))
	}
	assert.EqualValues(t, []Kind{KindNull, KindBool, KindInt, KindInt64, KindUint64, KindFloat, KindString, KindMap, KindSequence}, rec.kinds)
	assert.EqualValues(t, "sequence", KindSequence.String())
}
