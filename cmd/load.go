package cmd

import (
	"context"
	"fmt"

	mcpconfig "github.com/viant/tracked-mcp/mcp/config"
)

// LoadCmd loads a YAML/JSON document (local path or any afs URL) into a host
// container and prints the stored JSON, which shows how values narrow and
// how map keys are ordered.
type LoadCmd struct {
	Name string `short:"n" long:"name" description:"host container name" default:"loaded"`
	URL  string `short:"u" long:"url" description:"document location" positional-arg-name:"url" required:"yes"`
	List bool   `short:"l" long:"list" description:"load a list instead of a map"`
}

func (c *LoadCmd) Execute(_ []string) error {
	svc, err := serviceSingleton()
	if err != nil {
		return err
	}
	seed := &mcpconfig.Seed{Name: c.Name, Kind: mcpconfig.KindMap, URL: c.URL}
	if c.List {
		seed.Kind = mcpconfig.KindList
	}
	if err := svc.Seed(context.Background(), seed); err != nil {
		return err
	}
	data, err := svc.Snapshot(c.Name)
	if err != nil {
		return err
	}
	fmt.Println(string(data))
	return nil
}
