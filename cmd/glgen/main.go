// Command glgen generates GL API wrapper sources from a Khronos-style XML
// registry.
package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/roach88/glgen/internal/cli"
	"github.com/roach88/glgen/internal/logger"
)

func main() {
	err := cli.NewRootCommand().Execute()
	_ = logger.Logger.Sync()
	if err != nil {
		var exitErr *cli.ExitError
		if !errors.As(err, &exitErr) {
			// Flag and argument errors come straight from cobra.
			fmt.Fprintln(os.Stderr, "Error:", err)
		}
	}
	os.Exit(cli.GetExitCode(err))
}
