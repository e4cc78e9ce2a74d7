// Package conv provides small, reflection-based helpers to coerce tool
// arguments and action results between generic JSON shaped maps and the
// typed request/response structs of the dictionary actions.
package conv
