// Package store keeps the host-side named containers that remote clients
// open through handles. Host operations here (drop, relocate, swap) are what
// stale remote references must survive.
package store
