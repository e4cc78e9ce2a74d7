package cmd

import (
	"encoding/json"
	"fmt"

	"github.com/viant/tracked-mcp/internal/conv"
)

// ToolCmd prints metadata and schemas for a single tool.
type ToolCmd struct {
	Name string `short:"n" long:"name" description:"tool name (service-method, service/method or service.method)" positional-arg-name:"name" required:"yes"`
	JSON bool   `long:"json" description:"print result as JSON"`
}

func (c *ToolCmd) Execute(_ []string) error {
	svc, err := serviceSingleton()
	if err != nil {
		return err
	}
	entry, err := svc.LookupTool(c.Name)
	if err != nil {
		return fmt.Errorf("tool %q not found", c.Name)
	}

	found := struct {
		Name         string      `json:"name"`
		Description  string      `json:"description"`
		InputSchema  interface{} `json:"inputSchema"`
		OutputSchema interface{} `json:"outputSchema,omitempty"`
	}{entry.Metadata.Name, conv.Dereference(entry.Metadata.Description), entry.Metadata.InputSchema, entry.Metadata.OutputSchema}

	if c.JSON {
		data, _ := json.MarshalIndent(found, "", "  ")
		fmt.Println(string(data))
		return nil
	}
	fmt.Printf("Name : %s\n", found.Name)
	fmt.Printf("Desc : %s\n", found.Description)
	js, _ := json.MarshalIndent(found.InputSchema, "", "  ")
	fmt.Printf("InputSchema:\n%s\n", string(js))
	if entry.Metadata.OutputSchema != nil {
		js, _ = json.MarshalIndent(found.OutputSchema, "", "  ")
		fmt.Printf("OutputSchema:\n%s\n", string(js))
	}
	return nil
}
