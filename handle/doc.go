// Package handle implements the external side of the stamp protocol: a
// Handle aliases a tracked container through its stamp, and an Iterator
// caches a position together with the stamp version it was built against.
//
// Every access validates the stamp first. A destroyed, relocated or
// released container, or an iterator whose version no longer matches,
// yields an error wrapping ErrStale instead of touching stale state.
package handle
