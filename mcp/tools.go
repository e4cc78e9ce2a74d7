package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"reflect"

	"github.com/viant/fluxor/model/types"
	"github.com/viant/jsonrpc"
	mcpschema "github.com/viant/mcp-protocol/schema"
	iconv "github.com/viant/tracked-mcp/internal/conv"
	"github.com/viant/tracked-mcp/mcp/tool"
	conv "github.com/viant/tracked-mcp/mcp/tool/conversion"
)

// toolEntry holds metadata and execution handlers for one MCP tool derived
// from an action method.
type toolEntry struct {
	name        string
	description string
	metadata    mcpschema.Tool
	call        func(ctx context.Context, args map[string]interface{}) (interface{}, error)
	handler     func(context.Context, *mcpschema.CallToolRequest) (*mcpschema.CallToolResult, *jsonrpc.Error)
}

// addToolEntries appends tool entries, keeping the first definition of a
// duplicated name.
func (s *Service) addToolEntries(entries []toolEntry) {
	if len(entries) == 0 {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	existing := make(map[string]struct{}, len(s.mcpTools))
	for _, e := range s.mcpTools {
		existing[e.name] = struct{}{}
	}
	for _, e := range entries {
		if _, dup := existing[e.name]; dup {
			s.logger.Warn("duplicate tool skipped", "tool", e.name)
			continue
		}
		s.mcpTools = append(s.mcpTools, e)
		existing[e.name] = struct{}{}
	}
}

// buildMcpToolRegistry creates the tool registry once during bootstrap.
func (s *Service) buildMcpToolRegistry() {
	for _, action := range s.actions {
		s.addToolEntries(serviceToToolEntries(action))
	}
}

// serviceToToolEntries converts a single action service to tool entries.
func serviceToToolEntries(svc types.Service) []toolEntry {
	entries := make([]toolEntry, 0, len(svc.Methods()))
	for _, sig := range svc.Methods() {
		methodName := tool.NewName(svc.Name(), sig.Name).String()
		toolMeta, buildErr := conv.BuildSchema(&sig)
		if buildErr != nil {
			// Fallback: input schema via reflection only.
			var inputSchema mcpschema.ToolInputSchema
			if sig.Input != nil {
				_ = inputSchema.Load(newValue(sig.Input))
			}
			if inputSchema.Type == "" {
				inputSchema.Type = "object"
			}
			toolMeta = mcpschema.Tool{Description: &sig.Description, InputSchema: inputSchema}
		}
		toolMeta.Name = methodName
		if toolMeta.Description == nil {
			toolMeta.Description = &sig.Description
		}

		svcCopy := svc
		sigCopy := sig
		call := func(ctx context.Context, args map[string]interface{}) (interface{}, error) {
			exec, err := svcCopy.Method(sigCopy.Name)
			if err != nil {
				return nil, err
			}
			if args == nil {
				args = map[string]interface{}{}
			}
			var output interface{}
			if err := exec(ctx, args, &output); err != nil {
				return nil, err
			}
			return output, nil
		}
		handler := func(ctx context.Context, req *mcpschema.CallToolRequest) (*mcpschema.CallToolResult, *jsonrpc.Error) {
			output, err := call(ctx, req.Params.Arguments)
			return toolResult(output, err), nil
		}
		entries = append(entries, toolEntry{
			name:        methodName,
			description: iconv.Dereference[string](toolMeta.Description),
			metadata:    toolMeta,
			call:        call,
			handler:     handler,
		})
	}
	return entries
}

// toolResult wraps an action outcome; failures are reported in-band so that
// a stale reference reaches the client as a readable error.
func toolResult(output interface{}, err error) *mcpschema.CallToolResult {
	res := &mcpschema.CallToolResult{}
	if err != nil {
		res.IsError = iconv.Pointer(true)
		res.Content = append(res.Content, mcpschema.CallToolResultContentElem{Type: "text", Text: err.Error()})
		return res
	}
	var data []byte
	switch actual := output.(type) {
	case string:
		data = []byte(actual)
	case []byte:
		data = actual
	default:
		if data, err = json.Marshal(output); err != nil {
			return toolResult(nil, fmt.Errorf("failed to encode tool output: %w", err))
		}
	}
	res.Content = append(res.Content, mcpschema.CallToolResultContentElem{Type: "text", Text: string(data)})
	return res
}

func newValue(t reflect.Type) interface{} {
	if t.Kind() == reflect.Pointer {
		return reflect.New(t.Elem()).Interface()
	}
	return reflect.New(t).Interface()
}
