// Package config defines the YAML configuration of the tracked-mcp service:
// the MCP server options, the host containers seeded at start-up and the
// handle limits.
package config
