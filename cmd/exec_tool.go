package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/viant/tracked-mcp/internal/conv"
	"github.com/viant/tracked-mcp/mcp"
)

// ExecCmd executes a tool against the in-process service. Arguments come
// inline via -i/--input or from a JSON file via --file. A file holding a JSON
// array runs a script of {"tool", "args"} steps; a string argument "$N.field"
// refers to a field of the output of step N.
type ExecCmd struct {
	Name       string `short:"n" long:"name" positional-arg-name:"tool" description:"Tool name (service-method)"`
	Inline     string `short:"i" long:"input" description:"Inline JSON arguments (object)"`
	File       string `long:"file" description:"Path to JSON file with arguments or steps (use - for stdin)"`
	TimeoutSec int    `long:"timeout" description:"Seconds to wait for completion" default:"120"`
	JSON       bool   `long:"json" description:"Print result as indented JSON"`
}

type step struct {
	Tool string                 `json:"tool"`
	Args map[string]interface{} `json:"args,omitempty"`
}

func (c *ExecCmd) Execute(_ []string) error {
	if c.Inline != "" && c.File != "" {
		return fmt.Errorf("-i/--input and --file are mutually exclusive")
	}
	steps, err := c.steps()
	if err != nil {
		return err
	}

	svc, err := serviceSingleton()
	if err != nil {
		return err
	}
	timeout := time.Duration(c.TimeoutSec) * time.Second
	if timeout == 0 {
		timeout = 120 * time.Second
	}
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	outputs, err := runSteps(ctx, svc, steps)
	for _, out := range outputs {
		c.print(out)
	}
	return err
}

func (c *ExecCmd) steps() ([]*step, error) {
	var data []byte
	switch {
	case c.Inline != "":
		data = []byte(c.Inline)
	case c.File != "":
		var rdr io.Reader
		if c.File == "-" {
			rdr = os.Stdin
		} else {
			f, err := os.Open(c.File)
			if err != nil {
				return nil, fmt.Errorf("open input file: %w", err)
			}
			defer f.Close()
			rdr = f
		}
		var err error
		if data, err = io.ReadAll(rdr); err != nil {
			return nil, fmt.Errorf("read input: %w", err)
		}
	}
	if trimmed := strings.TrimSpace(string(data)); strings.HasPrefix(trimmed, "[") {
		var steps []*step
		if err := json.Unmarshal(data, &steps); err != nil {
			return nil, fmt.Errorf("decode steps: %w", err)
		}
		return steps, nil
	}
	if c.Name == "" {
		return nil, fmt.Errorf("tool name is required")
	}
	one := &step{Tool: c.Name}
	if len(data) > 0 {
		if err := json.Unmarshal(data, &one.Args); err != nil {
			return nil, fmt.Errorf("decode JSON arguments: %w", err)
		}
	}
	return []*step{one}, nil
}

// runSteps executes steps in order and stops at the first failure.
func runSteps(ctx context.Context, svc *mcp.Service, steps []*step) ([]interface{}, error) {
	var outputs []interface{}
	var fields []map[string]interface{}
	for i, s := range steps {
		args, err := resolveArgs(s.Args, fields)
		if err != nil {
			return outputs, fmt.Errorf("step %d (%s): %w", i, s.Tool, err)
		}
		out, err := svc.ExecuteTool(ctx, s.Tool, args)
		if err != nil {
			return outputs, fmt.Errorf("step %d (%s): %w", i, s.Tool, err)
		}
		outputs = append(outputs, out)
		m, _ := conv.ToMap(out)
		fields = append(fields, m)
	}
	return outputs, nil
}

// resolveArgs replaces "$N.field" references with values of earlier outputs.
func resolveArgs(args map[string]interface{}, fields []map[string]interface{}) (map[string]interface{}, error) {
	resolved := make(map[string]interface{}, len(args))
	for key, value := range args {
		ref, ok := value.(string)
		if !ok || !strings.HasPrefix(ref, "$") {
			resolved[key] = value
			continue
		}
		index, field, found := strings.Cut(ref[1:], ".")
		n, err := strconv.Atoi(index)
		if !found || err != nil {
			resolved[key] = value
			continue
		}
		if n < 0 || n >= len(fields) {
			return nil, fmt.Errorf("%s: no output for step %d", key, n)
		}
		if resolved[key], ok = fields[n][field]; !ok {
			return nil, fmt.Errorf("%s: step %d has no field %q", key, n, field)
		}
	}
	return resolved, nil
}

func (c *ExecCmd) print(out interface{}) {
	var data []byte
	if c.JSON {
		data, _ = json.MarshalIndent(out, "", "  ")
	} else {
		data, _ = json.Marshal(out)
	}
	fmt.Println(string(data))
}
