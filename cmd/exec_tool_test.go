package cmd

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/viant/tracked-mcp/handle"
	"github.com/viant/tracked-mcp/mcp"
	"github.com/viant/tracked-mcp/mcp/dictaction"
)

func TestRunSteps(t *testing.T) {
	ctx := context.Background()
	svc, err := mcp.New(ctx)
	require.NoError(t, err)

	outputs, err := runSteps(ctx, svc, []*step{
		{Tool: "dict-create", Args: map[string]interface{}{"entries": map[string]interface{}{"a": 1, "b": 2}}},
		{Tool: "dict-iterate", Args: map[string]interface{}{"handle": "$0.handle"}},
		{Tool: "dict.delete", Args: map[string]interface{}{"handle": "$0.handle", "key": "b"}},
		{Tool: "dict-next", Args: map[string]interface{}{"iterator": "$1.iterator"}},
	})
	assert.ErrorIs(t, err, handle.ErrStale)
	require.Len(t, outputs, 3)
	deleted, ok := outputs[2].(*dictaction.DeleteOutput)
	require.True(t, ok)
	assert.EqualValues(t, 1, deleted.Removed)
	assert.EqualValues(t, 2, deleted.Version)

	_, err = runSteps(ctx, svc, []*step{{Tool: "dict-len", Args: map[string]interface{}{"handle": "$3.handle"}}})
	assert.Error(t, err)
}

func TestResolveArgs(t *testing.T) {
	fields := []map[string]interface{}{{"handle": "h1", "version": 1}}
	testCases := []struct {
		name    string
		args    map[string]interface{}
		expect  map[string]interface{}
		wantErr bool
	}{
		{name: "literal", args: map[string]interface{}{"key": "k", "limit": 2}, expect: map[string]interface{}{"key": "k", "limit": 2}},
		{name: "reference", args: map[string]interface{}{"handle": "$0.handle"}, expect: map[string]interface{}{"handle": "h1"}},
		{name: "not a reference", args: map[string]interface{}{"key": "$price"}, expect: map[string]interface{}{"key": "$price"}},
		{name: "missing step", args: map[string]interface{}{"handle": "$1.handle"}, wantErr: true},
		{name: "missing field", args: map[string]interface{}{"handle": "$0.iterator"}, wantErr: true},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			actual, err := resolveArgs(tc.args, fields)
			if tc.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.EqualValues(t, tc.expect, actual)
		})
	}
}

func TestExtractFlag(t *testing.T) {
	args := []string{"exec", "-f", "config.yaml", "--log-level=debug", "--", "--config", "ignored"}
	assert.EqualValues(t, "config.yaml", extractFlag(args, "-f", "--config"))
	assert.EqualValues(t, "debug", extractFlag(args, "", "--log-level"))
	assert.EqualValues(t, "", extractFlag([]string{"serve"}, "-f", "--config"))
}
