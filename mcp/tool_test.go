package mcp

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	mcpsrv "github.com/viant/mcp"
	mcpschema "github.com/viant/mcp-protocol/schema"
	"github.com/viant/tracked-mcp/handle"
	"github.com/viant/tracked-mcp/mcp/config"
	"github.com/viant/tracked-mcp/mcp/dictaction"
)

func newTestService(t *testing.T, cfg *config.Config) *Service {
	t.Helper()
	ctx := context.Background()
	svc, err := NewWithConfig(ctx, cfg)
	require.NoError(t, err)
	require.NoError(t, svc.Start(ctx))
	t.Cleanup(func() { _ = svc.Shutdown(ctx) })
	return svc
}

// TestServiceTools ensures every action method is exposed as a tool and can
// be resolved individually.
func TestServiceTools(t *testing.T) {
	svc := newTestService(t, nil)

	var expected int
	for _, action := range svc.Actions() {
		expected += len(action.Methods())
	}
	tools := svc.Tools()
	assert.EqualValues(t, expected, len(tools))
	assert.EqualValues(t, expected, len(svc.ToolNames()))

	for _, te := range tools {
		entry, err := svc.LookupTool(te.Metadata.Name)
		if assert.NoError(t, err, "LookupTool(%q) returned error", te.Metadata.Name) {
			assert.EqualValues(t, te.Metadata.Name, entry.Metadata.Name)
			assert.NotNil(t, entry.Handler)
		}
	}

	_, err := svc.LookupTool("dict.get")
	assert.NoError(t, err)
	_, err = svc.LookupTool("dict-unknown")
	assert.Error(t, err)

	desc, schema, ok := svc.ToolMetadata("dict/set")
	require.True(t, ok)
	assert.NotEmpty(t, desc)
	assert.NotNil(t, schema)
}

func TestServiceMatchTools(t *testing.T) {
	svc := newTestService(t, nil)

	all := svc.Tools()
	assert.EqualValues(t, len(all), len(svc.MatchTools("*")))

	list := svc.MatchTools("list/")
	listService, ok := svc.Action(dictaction.ListName)
	require.True(t, ok)
	assert.EqualValues(t, len(listService.Methods()), len(list))
	for _, entry := range list {
		assert.Contains(t, entry.Metadata.Name, "list-")
	}

	exact := svc.MatchTools("dict-next")
	require.EqualValues(t, 1, len(exact))
	assert.EqualValues(t, "dict-next", exact[0].Metadata.Name)
	assert.Len(t, svc.MatchTools("dict.next"), 1)
	dictService, ok := svc.Action(dictaction.DictName)
	require.True(t, ok)
	assert.Len(t, svc.MatchTools("dict-*"), len(dictService.Methods()))
	assert.Empty(t, svc.MatchTools("nothing/"))
}

func TestService_ExecuteTool(t *testing.T) {
	svc := newTestService(t, &config.Config{
		Seeds: &config.Group[*config.Seed]{Items: []*config.Seed{
			{Name: "users", Data: map[string]interface{}{"alice": 1, "bob": 2}},
			{Name: "queue", Kind: config.KindList, Data: []interface{}{"a", "b"}},
		}},
	})
	ctx := context.Background()

	out, err := svc.ExecuteTool(ctx, "dict.open", map[string]interface{}{"name": "users"})
	require.NoError(t, err)
	opened, ok := out.(*dictaction.HandleOutput)
	require.True(t, ok)

	out, err = svc.ExecuteTool(ctx, "dict-iterate", &dictaction.HandleInput{Handle: opened.Handle})
	require.NoError(t, err)
	iterator := out.(*dictaction.IterateOutput).Iterator

	out, err = svc.ExecuteTool(ctx, "dict-next", map[string]interface{}{"iterator": iterator, "limit": 1})
	require.NoError(t, err)
	next := out.(*dictaction.NextOutput)
	require.Len(t, next.Entries, 1)
	assert.EqualValues(t, "alice", next.Entries[0].Key)

	_, err = svc.ExecuteTool(ctx, "dict-delete", map[string]interface{}{"handle": opened.Handle, "key": "bob"})
	require.NoError(t, err)
	_, err = svc.ExecuteTool(ctx, "dict-next", map[string]interface{}{"iterator": iterator})
	assert.ErrorIs(t, err, handle.ErrStale)

	out, err = svc.ExecuteTool(ctx, "list/len", map[string]interface{}{"handle": mustOpen(t, svc, "list-open", "queue")})
	require.NoError(t, err)
	assert.EqualValues(t, 2, out.(*dictaction.LenOutput).Len)

	_, err = svc.ExecuteTool(ctx, "dict-missing", nil)
	assert.Error(t, err)
}

func TestService_NewHandler(t *testing.T) {
	svc := newTestService(t, nil)
	ctx := context.Background()

	srv, err := mcpsrv.NewServer(svc.NewHandler, nil)
	require.NoError(t, err)
	cli := srv.AsClient(ctx)

	listed, err := cli.ListTools(ctx, nil)
	require.NoError(t, err)
	assert.EqualValues(t, len(svc.ToolNames()), len(listed.Tools))

	res, err := cli.CallTool(ctx, &mcpschema.CallToolRequestParams{
		Name:      "dict-create",
		Arguments: mcpschema.CallToolRequestParamsArguments(map[string]interface{}{"entries": map[string]interface{}{"k": 1}}),
	})
	require.NoError(t, err)
	require.False(t, res.IsError != nil && *res.IsError)
	require.Len(t, res.Content, 1)
	var created dictaction.HandleOutput
	require.NoError(t, json.Unmarshal([]byte(res.Content[0].Text), &created))
	assert.EqualValues(t, 1, created.Version)

	res, err = cli.CallTool(ctx, &mcpschema.CallToolRequestParams{
		Name:      "dict-get",
		Arguments: mcpschema.CallToolRequestParamsArguments(map[string]interface{}{"handle": created.Handle, "key": "k", "seen": 1}),
	})
	require.NoError(t, err)
	require.False(t, res.IsError != nil && *res.IsError)
	require.Len(t, res.Content, 1)
	var got dictaction.ValueOutput
	require.NoError(t, json.Unmarshal([]byte(res.Content[0].Text), &got))
	assert.True(t, got.Found)
	assert.JSONEq(t, "1", string(got.Value))

	res, err = cli.CallTool(ctx, &mcpschema.CallToolRequestParams{
		Name:      "dict-get",
		Arguments: mcpschema.CallToolRequestParamsArguments(map[string]interface{}{"handle": created.Handle, "key": "k", "seen": 7}),
	})
	require.NoError(t, err)
	require.NotNil(t, res.IsError)
	assert.True(t, *res.IsError)
	assert.Contains(t, res.Content[0].Text, "stale reference")
}

func TestToolResult(t *testing.T) {
	testCases := []struct {
		name    string
		output  interface{}
		err     error
		isError bool
		text    string
	}{
		{name: "string", output: "plain", text: "plain"},
		{name: "bytes", output: []byte(`{"a":1}`), text: `{"a":1}`},
		{name: "struct", output: &dictaction.HandleOutput{Handle: "h", Version: 2}, text: `"version":2`},
		{name: "action error", err: handle.ErrStale, isError: true, text: "stale reference"},
		{name: "unencodable output", output: map[string]interface{}{"ch": make(chan int)}, isError: true, text: "failed to encode tool output"},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			res := toolResult(tc.output, tc.err)
			require.Len(t, res.Content, 1)
			assert.Contains(t, res.Content[0].Text, tc.text)
			assert.EqualValues(t, tc.isError, res.IsError != nil && *res.IsError)
		})
	}
}

func TestService_Shutdown(t *testing.T) {
	ctx := context.Background()
	svc, err := NewWithConfig(ctx, &config.Config{
		Seeds: &config.Group[*config.Seed]{Items: []*config.Seed{{Name: "users"}, {Name: "orders"}}},
	})
	require.NoError(t, err)
	require.NoError(t, svc.Start(ctx))

	id := mustOpen(t, svc, "dict-open", "users")
	h, err := svc.Registry().Lookup(id)
	require.NoError(t, err)
	droppedID := mustOpen(t, svc, "dict-open", "orders")
	dropped, err := svc.Registry().Lookup(droppedID)
	require.NoError(t, err)
	_, err = svc.ExecuteTool(ctx, "dict-drop", map[string]interface{}{"name": "orders"})
	require.NoError(t, err)
	assert.ErrorIs(t, dropped.Err(), handle.ErrDestroyed)

	require.NoError(t, svc.Shutdown(ctx))
	assert.EqualValues(t, 0, svc.Registry().Len())
	assert.ErrorIs(t, h.Err(), handle.ErrStale)
	assert.True(t, dropped.Released())
	_, err = svc.NewHandler(ctx, nil, nil, nil)
	assert.Error(t, err)
	maps, sequences := svc.Store().Names()
	assert.Empty(t, maps)
	assert.Empty(t, sequences)
	require.NoError(t, svc.Shutdown(ctx))
}

func TestService_Limits(t *testing.T) {
	svc := newTestService(t, &config.Config{Limits: config.Limits{MaxHandles: 1}})
	ctx := context.Background()
	_, err := svc.ExecuteTool(ctx, "dict-create", nil)
	require.NoError(t, err)
	_, err = svc.ExecuteTool(ctx, "dict-create", nil)
	assert.ErrorIs(t, err, handle.ErrTooManyHandles)
}

func TestNew_InvalidConfig(t *testing.T) {
	_, err := NewWithConfig(context.Background(), &config.Config{Limits: config.Limits{MaxHandles: -1}})
	assert.Error(t, err)

	_, err = NewWithConfig(context.Background(), &config.Config{
		Seeds: &config.Group[*config.Seed]{Items: []*config.Seed{{Name: "bad", Data: "scalar"}}},
	})
	assert.Error(t, err)
}

func mustOpen(t *testing.T, svc *Service, tool, name string) string {
	t.Helper()
	out, err := svc.ExecuteTool(context.Background(), tool, map[string]interface{}{"name": name})
	require.NoError(t, err)
	return out.(*dictaction.HandleOutput).Handle
}
