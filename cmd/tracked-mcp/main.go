package main

import (
	"os"

	"github.com/viant/tracked-mcp/cmd"
)

func main() {
	cmd.Run(os.Args[1:])
}
