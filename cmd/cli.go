package cmd

import (
	"log"
	"strings"

	"github.com/jessevdk/go-flags"
)

// Run is the entry point for the CLI, kept outside the main package so that
// tests can drive it.
func Run(args []string) {
	if err := run(args); err != nil {
		log.Fatalf("%v", err)
	}
}

func run(args []string) error {
	// Make global flags discoverable by sub-commands via the service singleton.
	setConfigPath(extractFlag(args, "-f", "--config"))
	setLogLevel(extractFlag(args, "", "--log-level"))

	opts := &Options{}
	var first string
	if len(args) > 0 {
		first = args[0]
	}
	opts.Init(first)

	parser := flags.NewParser(opts, flags.HelpFlag|flags.PassDoubleDash)
	_, err := parser.ParseArgs(args)
	return err
}

// extractFlag searches the raw argument list for a global option before the
// full flags parsing is performed so that sub-commands can build the service
// from a deterministic configuration.
func extractFlag(args []string, short, long string) string {
	for i, a := range args {
		switch {
		case a == "--":
			return ""
		case (short != "" && a == short) || a == long:
			if i+1 < len(args) {
				return args[i+1]
			}
		case strings.HasPrefix(a, long+"="):
			return strings.TrimPrefix(a, long+"=")
		}
	}
	return ""
}
