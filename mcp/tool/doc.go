// Package tool contains the naming rules that bridge action signatures and
// the MCP tool registry.
package tool
