// Package syncmap offers a small generic string-keyed registry guarded by a
// sync.RWMutex. It backs the handle and iterator tables shared by concurrent
// MCP sessions.
package syncmap
