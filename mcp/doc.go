// Package mcp exposes mutation-tracked containers to remote MCP clients. Its
// Service seeds the named host containers, builds the dict and list action
// services and registers every action method as an MCP tool. Clients hold
// handle and iterator ids and detect concurrent host-side mutation through
// the stamp versions reported with each call.
package mcp
