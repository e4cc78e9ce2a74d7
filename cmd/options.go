package cmd

// Options is the root for the CLI. Struct tags are interpreted by
// github.com/jessevdk/go-flags.
type Options struct {
	Config   string `short:"f" long:"config" description:"service configuration YAML/JSON path"`
	LogLevel string `long:"log-level" description:"log level (debug, info, warn, error); overrides the config"`

	Serve       *ServeCmd       `command:"serve"        description:"Start MCP server exposing the dict and list tools"`
	ListTools   *ListToolsCmd   `command:"list-tools"   description:"List all registered tools"`
	Tool        *ToolCmd        `command:"tool"         description:"Show detailed info about one MCP tool"`
	ListActions *ListActionsCmd `command:"list-actions" description:"List action services and their methods"`
	Action      *ActionCmd      `command:"action"       description:"Show detailed info about one action method"`
	Exec        *ExecCmd        `command:"exec"         description:"Execute a tool against the local service"`
	Load        *LoadCmd        `command:"load"         description:"Load a YAML/JSON document into a host container and print it"`
	Remote      *RemoteCmd      `command:"remote"       description:"Call a tool on a running tracked-mcp server"`
}

// Init instantiates the sub-command referenced by the first positional argument
// so that go-flags can populate its fields.
func (o *Options) Init(firstArg string) {
	switch firstArg {
	case "serve":
		o.Serve = &ServeCmd{}
	case "list-tools":
		o.ListTools = &ListToolsCmd{}
	case "tool":
		o.Tool = &ToolCmd{}
	case "list-actions":
		o.ListActions = &ListActionsCmd{}
	case "action":
		o.Action = &ActionCmd{}
	case "exec":
		o.Exec = &ExecCmd{}
	case "load":
		o.Load = &LoadCmd{}
	case "remote":
		o.Remote = &RemoteCmd{}
	}
}
