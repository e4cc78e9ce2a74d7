package tool

import "strings"

// Name represents tool name in the service-method form, e.g. "dict-get".
type Name string

// Service returns the service part; underscores map back to slashes.
func (t Name) Service() string {
	tool := string(t)
	if idx := strings.LastIndex(tool, "-"); idx != -1 {
		return strings.ReplaceAll(tool[:idx], "_", "/")
	}
	return tool
}

// Method returns the method part or an empty string.
func (t Name) Method() string {
	tool := string(t)
	if idx := strings.LastIndex(tool, "-"); idx != -1 {
		return tool[idx+1:]
	}
	return ""
}

func (t Name) String() string {
	return string(t)
}

// NewName new name
func NewName(service, method string) Name {
	return Name(strings.ReplaceAll(service, "/", "_") + "-" + method)
}

// Canonical normalises the spellings accepted on the command line
// ("dict-get", "dict.get", "dict/get") into the registered tool name.
func Canonical(name string) string {
	if strings.Contains(name, "-") {
		return strings.ReplaceAll(name, "/", "_")
	}
	idx := strings.LastIndexAny(name, "./")
	if idx == -1 {
		return name
	}
	return NewName(name[:idx], name[idx+1:]).String()
}
