// Package conversion builds MCP tool schemas from action signatures and
// converts JSON payloads to and from tracked values.
package conversion
