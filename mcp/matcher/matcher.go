// Package matcher selects tools and services by CLI pattern.
package matcher

import "strings"

// Match reports whether name satisfies pattern. "*" matches everything; a
// pattern ending in "*" or "/" selects names with that prefix (a "/" is
// kept, a "*" dropped); any other pattern must equal name.
func Match(pattern, name string) bool {
	switch {
	case pattern == "*":
		return true
	case pattern == "":
		return false
	case strings.HasSuffix(pattern, "*"):
		return strings.HasPrefix(name, strings.TrimSuffix(pattern, "*"))
	case strings.HasSuffix(pattern, "/"):
		return strings.HasPrefix(name, pattern)
	}
	return pattern == name
}
