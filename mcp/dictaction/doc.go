// Package dictaction exposes tracked maps and sequences as action services
// ("dict" and "list") whose methods become MCP tools. Remote callers hold
// handle and iterator ids; every call validates the stamp behind the id and
// reports a stale reference instead of touching a changed or destroyed
// container.
package dictaction
