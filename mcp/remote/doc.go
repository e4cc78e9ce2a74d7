// Package remote is the client side of the dict and list tools: it keeps the
// last observed version of every handle and passes it back with reads, so a
// host-side mutation surfaces as handle.ErrStale instead of stale data.
package remote
