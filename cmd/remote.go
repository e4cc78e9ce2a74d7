package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	mcp "github.com/viant/mcp"
	"github.com/viant/tracked-mcp/mcp/remote"
	"github.com/viant/tracked-mcp/mcp/tool"
)

// RemoteCmd calls a tool on a running tracked-mcp server, or lists its tools
// when no tool name is given.
type RemoteCmd struct {
	Address string `short:"a" long:"address" description:"HTTP address of the MCP server" required:"yes"`
	Name    string `short:"n" long:"name" description:"tool name (service-method)"`
	Input   string `short:"i" long:"input" description:"inline JSON arguments (object)"`
	Token   string `long:"token" description:"bearer token for authorized servers"`
	Version string `short:"v" long:"version" description:"expected protocol version (optional)"`
}

func (c *RemoteCmd) Execute(_ []string) error {
	ctx := context.Background()
	client, err := remote.Dial(ctx, &mcp.ClientOptions{
		Name:    "tracked-mcp",
		Version: c.Version,
		Transport: mcp.ClientTransport{
			Type:                "sse",
			ClientTransportHTTP: mcp.ClientTransportHTTP{URL: c.Address},
		},
	}, slog.Default())
	if err != nil {
		return err
	}
	if c.Token != "" {
		client = client.WithToken(c.Token)
	}

	if c.Name == "" {
		tools, err := client.Tools(ctx)
		if err != nil {
			return err
		}
		for _, t := range tools {
			desc := ""
			if t.Description != nil {
				desc = *t.Description
			}
			fmt.Printf("%s\t%s\n", t.Name, desc)
		}
		return nil
	}

	var args map[string]interface{}
	if c.Input != "" {
		if err := json.Unmarshal([]byte(c.Input), &args); err != nil {
			return fmt.Errorf("invalid inline JSON: %w", err)
		}
	}
	var out interface{}
	if err := client.Call(ctx, tool.Canonical(c.Name), args, &out); err != nil {
		return err
	}
	data, _ := json.MarshalIndent(out, "", "  ")
	fmt.Println(string(data))
	return nil
}
