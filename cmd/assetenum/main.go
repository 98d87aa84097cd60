// Where: cmd/assetenum/main.go
// What: CLI entrypoint.
// Why: Execute assetenum commands with configured dependencies.
package main

import (
	"os"

	"github.com/poruru-code/assetenum/internal/command"
)

func main() {
	os.Exit(command.Run(os.Args[1:], buildDependencies()))
}
