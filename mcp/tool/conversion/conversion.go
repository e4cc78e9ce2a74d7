package conversion

import (
	"encoding/json"
	"fmt"
	"reflect"
	"strings"

	"github.com/viant/fluxor/model/types"
	schema "github.com/viant/mcp-protocol/schema"
	"github.com/viant/x"
)

// anyValueDescription marks properties that accept any JSON value.
const anyValueDescription = "any JSON value"

var rawMessageType = reflect.TypeOf(json.RawMessage{})

// BuildSchema derives the MCP tool definition from an action signature.
// json.RawMessage fields carry tracked values and are advertised without a
// type constraint.
func BuildSchema(sig *types.Signature) (schema.Tool, error) {
	var inputSchema schema.ToolInputSchema
	if sig.Input != nil {
		inputType := structType(sig.Input)
		RegisterType(inputType)
		if err := inputSchema.Load(reflect.New(inputType).Interface()); err != nil {
			return schema.Tool{}, fmt.Errorf("failed to build input schema for %s: %w", sig.Name, err)
		}
		inputSchema.Properties = markAnyValues(inputType, inputSchema.Properties)
	}
	if inputSchema.Type == "" {
		inputSchema.Type = "object"
	}
	var outputSchema *schema.ToolOutputSchema
	if sig.Output != nil {
		outputType := structType(sig.Output)
		RegisterType(outputType)
		props, required := schema.StructToProperties(outputType)
		outputSchema = &schema.ToolOutputSchema{Properties: markAnyValues(outputType, props), Required: required, Type: "object"}
	}
	desc := sig.Description
	return schema.Tool{Name: sig.Name, Description: &desc, InputSchema: inputSchema, OutputSchema: outputSchema}, nil
}

func structType(t reflect.Type) reflect.Type {
	if t.Kind() == reflect.Pointer {
		return t.Elem()
	}
	return t
}

func markAnyValues(t reflect.Type, props map[string]map[string]interface{}) map[string]map[string]interface{} {
	if t.Kind() != reflect.Struct {
		return props
	}
	for i := 0; i < t.NumField(); i++ {
		field := t.Field(i)
		if field.Type != rawMessageType {
			continue
		}
		name := jsonName(field)
		if name == "-" {
			continue
		}
		if props == nil {
			props = map[string]map[string]interface{}{}
		}
		prop := props[name]
		if prop == nil {
			prop = map[string]interface{}{}
		}
		delete(prop, "type")
		delete(prop, "items")
		if _, ok := prop["description"]; !ok {
			prop["description"] = anyValueDescription
		}
		props[name] = prop
	}
	return props
}

func jsonName(field reflect.StructField) string {
	tag := field.Tag.Get("json")
	if tag == "" {
		return field.Name
	}
	if name, _, _ := strings.Cut(tag, ","); name != "" {
		return name
	}
	return field.Name
}

// typeRegistry holds the Go types of every action signature.
var typeRegistry = x.NewRegistry()

// RegisterType registers a Go type used by an action signature.
func RegisterType(t reflect.Type, options ...x.Option) {
	typeRegistry.Register(x.NewType(t, options...))
}
