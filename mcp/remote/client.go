package remote

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/viant/mcp"
	mcpschema "github.com/viant/mcp-protocol/schema"
	mcpclient "github.com/viant/mcp/client"
	"github.com/viant/tracked-mcp/handle"
	"github.com/viant/tracked-mcp/internal/conv"
)

// Client calls tools of a tracked-mcp server.
type Client struct {
	cli   mcpclient.Interface
	token string
}

// New wraps an MCP client connected to a tracked-mcp server.
func New(cli mcpclient.Interface) *Client {
	return &Client{cli: cli}
}

// Dial connects to the server described by options.
func Dial(ctx context.Context, options *mcp.ClientOptions, logger *slog.Logger) (*Client, error) {
	if logger == nil {
		logger = slog.Default().With("component", "remote")
	}
	options.Init()
	cli, err := mcp.NewClient(newHandler(logger), options)
	if err != nil {
		return nil, fmt.Errorf("create mcp client %q: %w", options.Name, err)
	}
	return New(cli), nil
}

// Tools lists every tool the server exposes, following pagination.
func (c *Client) Tools(ctx context.Context) ([]mcpschema.Tool, error) {
	tools := make([]mcpschema.Tool, 0)
	var cursor *string
	for {
		res, err := c.cli.ListTools(c.authorize(ctx), cursor)
		if err != nil {
			return nil, err
		}
		tools = append(tools, res.Tools...)
		if res.NextCursor == nil || *res.NextCursor == "" {
			break
		}
		cursor = res.NextCursor
	}
	return tools, nil
}

// Call invokes a tool and decodes its JSON text result into out. A tool
// error whose text names a stale reference maps back to the handle
// sentinel errors.
func (c *Client) Call(ctx context.Context, name string, args, out interface{}) error {
	arguments, err := conv.ToMap(args)
	if err != nil {
		return fmt.Errorf("invalid %v arguments: %w", name, err)
	}
	res, err := c.cli.CallTool(c.authorize(ctx), &mcpschema.CallToolRequestParams{
		Name:      name,
		Arguments: mcpschema.CallToolRequestParamsArguments(arguments),
	})
	if err != nil {
		return err
	}
	text := resultText(res)
	if res.IsError != nil && *res.IsError {
		return toolError(name, text)
	}
	if out == nil || text == "" {
		return nil
	}
	if err = conv.Convert(json.RawMessage(text), out); err != nil {
		return fmt.Errorf("decode %v result: %w", name, err)
	}
	return nil
}

func resultText(res *mcpschema.CallToolResult) string {
	var parts []string
	for _, content := range res.Content {
		if content.Text != "" {
			parts = append(parts, content.Text)
		}
	}
	return strings.Join(parts, "\n")
}

func toolError(name, text string) error {
	for _, sentinel := range []error{handle.ErrDestroyed, handle.ErrReleased, handle.ErrStale, handle.ErrUnknownHandle, handle.ErrTooManyHandles, handle.ErrKind} {
		if prefix := sentinel.Error(); strings.HasPrefix(text, prefix) {
			if detail := strings.TrimPrefix(strings.TrimPrefix(text, prefix), ":"); strings.TrimSpace(detail) != "" {
				return fmt.Errorf("%v: %w:%v", name, sentinel, detail)
			}
			return fmt.Errorf("%v: %w", name, sentinel)
		}
	}
	if strings.Contains(text, handle.ErrStale.Error()) {
		return fmt.Errorf("%v: %w: %v", name, handle.ErrStale, text)
	}
	return fmt.Errorf("%v: %w", name, errors.New(text))
}
