// Package tracked provides ordered string-keyed maps and sequences of
// dynamically typed values whose iterator-invalidating operations are
// recorded on a lazily created mutation stamp.
//
// A Stamp is the side channel an external holder polls instead of keeping a
// direct reference to the container: its version grows by one on every
// invalidating operation and drops to Tombstone once the watched container
// is destroyed or relocated. Containers and stamps are not synchronized;
// callers that share them across goroutines must provide their own locking.
package tracked
