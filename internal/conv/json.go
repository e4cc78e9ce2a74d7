package conv

import (
	"encoding/json"
	"errors"
	"fmt"
	"reflect"
)

// ErrTarget reports a Convert destination that cannot receive a value.
var ErrTarget = errors.New("conv: destination must be a non-nil pointer")

// Convert copies in into the value outPtr points to.
//
// Values already of the destination type (or pointers to it) are copied
// as is. Raw JSON, given as json.RawMessage or []byte, is decoded into the
// destination. Anything else is re-encoded through JSON, which is how tool
// argument maps become typed requests. A nil input leaves outPtr untouched.
func Convert(in any, outPtr any) error {
	target := reflect.ValueOf(outPtr)
	if outPtr == nil || target.Kind() != reflect.Ptr || target.IsNil() {
		return fmt.Errorf("%w, got %T", ErrTarget, outPtr)
	}
	if in == nil {
		return nil
	}
	data, isRaw := rawJSON(in)
	if !isRaw || target.Elem().Type() == reflect.TypeOf(in) {
		if assign(reflect.ValueOf(in), target.Elem()) {
			return nil
		}
	}
	if !isRaw {
		var err error
		if data, err = json.Marshal(in); err != nil {
			return fmt.Errorf("conv: encode %T: %w", in, err)
		}
	}
	if len(data) == 0 {
		return nil
	}
	if err := json.Unmarshal(data, outPtr); err != nil {
		return fmt.Errorf("conv: decode into %T: %w", outPtr, err)
	}
	return nil
}

func rawJSON(in any) ([]byte, bool) {
	switch raw := in.(type) {
	case json.RawMessage:
		return raw, true
	case []byte:
		return raw, true
	}
	return nil, false
}

// assign sets dest from src, dereferencing one pointer level, when the
// types line up.
func assign(src, dest reflect.Value) bool {
	if src.Type().AssignableTo(dest.Type()) {
		dest.Set(src)
		return true
	}
	if src.Kind() == reflect.Ptr && !src.IsNil() && src.Elem().Type().AssignableTo(dest.Type()) {
		dest.Set(src.Elem())
		return true
	}
	return false
}

// ToMap returns tool arguments as a generic map. A nil input yields an
// empty map so that argument-less calls still send an object.
func ToMap(in any) (map[string]interface{}, error) {
	switch actual := in.(type) {
	case nil:
		return map[string]interface{}{}, nil
	case map[string]interface{}:
		return actual, nil
	}
	result := map[string]interface{}{}
	if err := Convert(in, &result); err != nil {
		return nil, err
	}
	return result, nil
}
