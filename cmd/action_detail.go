package cmd

import (
	"encoding/json"
	"fmt"
	"reflect"
	"strings"

	"github.com/viant/tracked-mcp/mcp/tool"
)

// ActionCmd shows the input and output of one action method.
type ActionCmd struct {
	Name string `short:"n" long:"name" description:"identifier in form service/method, service.method or service-method" positional-arg-name:"name" required:"yes"`
	JSON bool   `long:"json" description:"print result as JSON"`
}

type actionInfo struct {
	Service     string   `json:"service"`
	Method      string   `json:"method"`
	Tool        string   `json:"tool"`
	Description string   `json:"description"`
	Input       []string `json:"input,omitempty"`
	Output      []string `json:"output,omitempty"`
}

func (c *ActionCmd) Execute(_ []string) error {
	name := tool.Name(tool.Canonical(c.Name))
	if name.Method() == "" {
		return fmt.Errorf("name must be service/method")
	}

	svc, err := serviceSingleton()
	if err != nil {
		return err
	}
	action, ok := svc.Action(name.Service())
	if !ok {
		return fmt.Errorf("service %q not found", name.Service())
	}
	sig := action.Methods().Lookup(name.Method())
	if sig == nil {
		return fmt.Errorf("method %q not found in service %q", name.Method(), name.Service())
	}

	info := &actionInfo{
		Service:     name.Service(),
		Method:      name.Method(),
		Tool:        name.String(),
		Description: sig.Description,
		Input:       fieldLines(sig.Input),
		Output:      fieldLines(sig.Output),
	}
	if c.JSON {
		data, _ := json.MarshalIndent(info, "", "  ")
		fmt.Println(string(data))
		return nil
	}
	fmt.Printf("Service : %s\n", info.Service)
	fmt.Printf("Method  : %s\n", info.Method)
	fmt.Printf("Tool    : %s\n", info.Tool)
	fmt.Printf("Desc    : %s\n", info.Description)
	fmt.Printf("\nInput (%s):\n  %s\n", typeString(sig.Input), strings.Join(info.Input, "\n  "))
	fmt.Printf("\nOutput (%s):\n  %s\n", typeString(sig.Output), strings.Join(info.Output, "\n  "))
	return nil
}

func typeString(t reflect.Type) string {
	if t == nil {
		return "<none>"
	}
	if t.Kind() == reflect.Pointer {
		return "*" + t.Elem().String()
	}
	return t.String()
}

// fieldLines lists the JSON fields of a struct type as "name type: description".
func fieldLines(t reflect.Type) []string {
	if t == nil {
		return nil
	}
	if t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	if t.Kind() != reflect.Struct {
		return []string{t.String()}
	}
	var lines []string
	for i := 0; i < t.NumField(); i++ {
		f := t.Field(i)
		name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
		if name == "-" {
			continue
		}
		if name == "" {
			name = f.Name
		}
		line := name + " " + simpleTypeExpr(f.Type)
		if desc := f.Tag.Get("description"); desc != "" {
			line += ": " + desc
		}
		lines = append(lines, line)
	}
	return lines
}

func simpleTypeExpr(t reflect.Type) string {
	switch t.Kind() {
	case reflect.Pointer:
		return "*" + simpleTypeExpr(t.Elem())
	case reflect.Slice:
		if t.Elem().Kind() == reflect.Uint8 {
			return "json"
		}
		return "[]" + simpleTypeExpr(t.Elem())
	case reflect.Map:
		return fmt.Sprintf("map[%s]%s", simpleTypeExpr(t.Key()), simpleTypeExpr(t.Elem()))
	case reflect.Struct:
		if t.Name() != "" {
			return t.Name()
		}
		return "struct{…}"
	}
	return t.Kind().String()
}
