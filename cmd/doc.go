// Package cmd implements the sub-commands of the tracked-mcp command-line
// interface. Each file registers a single sub-command (serve, exec, load,
// list-tools, …); configuration loading and service initialisation shared by
// the commands live in shared.go.
package cmd
