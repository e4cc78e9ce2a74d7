package mcp

import (
	"context"
	"fmt"
	"strings"

	serverproto "github.com/viant/mcp-protocol/server"
	"github.com/viant/tracked-mcp/internal/conv"
	"github.com/viant/tracked-mcp/mcp/matcher"
	"github.com/viant/tracked-mcp/mcp/tool"
)

// Tools returns the tool entries in registration order.
func (s *Service) Tools() serverproto.Tools {
	s.mu.RLock()
	defer s.mu.RUnlock()
	result := make(serverproto.Tools, 0, len(s.mcpTools))
	for i := range s.mcpTools {
		result = append(result, s.mcpTools[i].serverEntry())
	}
	return result
}

// LookupTool returns the tool registered under name. "dict.get" and
// "dict/get" resolve to "dict-get".
func (s *Service) LookupTool(name string) (*serverproto.ToolEntry, error) {
	e, ok := s.toolEntryByName(canonical(name))
	if !ok {
		return nil, fmt.Errorf("unknown tool: %v", name)
	}
	return e.serverEntry(), nil
}

// MatchTools returns tools matching pattern: "*" for all, "service/" for
// every method of a service, "prefix*" for a name prefix, otherwise an exact
// tool name in any accepted spelling.
func (s *Service) MatchTools(pattern string) serverproto.Tools {
	var result serverproto.Tools
	serviceScoped := strings.HasSuffix(pattern, "/")
	if !serviceScoped && pattern != "*" {
		pattern = canonical(pattern)
	}
	for _, entry := range s.Tools() {
		name := entry.Metadata.Name
		if serviceScoped {
			name = tool.Name(name).Service() + "/"
		}
		if matcher.Match(pattern, name) {
			result = append(result, entry)
		}
	}
	return result
}

// ExecuteTool invokes a tool with args, a map or any struct convertible to
// one. The returned value is the action output.
func (s *Service) ExecuteTool(ctx context.Context, name string, args interface{}) (interface{}, error) {
	e, ok := s.toolEntryByName(canonical(name))
	if !ok {
		return nil, fmt.Errorf("unknown tool: %v", name)
	}
	input, err := conv.ToMap(args)
	if err != nil {
		return nil, fmt.Errorf("invalid %v arguments: %w", name, err)
	}
	return e.call(ctx, input)
}

func (e *toolEntry) serverEntry() *serverproto.ToolEntry {
	return &serverproto.ToolEntry{Metadata: e.metadata, Handler: e.handler}
}

func canonical(name string) string { return tool.Canonical(name) }
