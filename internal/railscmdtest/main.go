// railscmdtest is a small internal harness for transcript tests.
//
// It provisions a disposable workspace under `/tmp/railskit-transcripts/app-<id>`,
// installs the hermetic rails/bundle/rake stub, serves the remote assets
// from an in-process HTTP server, optionally simulates the railskit shell
// wrapper, then runs an arbitrary command inside the skeleton and returns
// the command's exit code.
package main

import (
	"context"
	"fmt"
	"os"
)

func main() {
	tool, err := newToolFromExecutable()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	os.Exit(tool.runCLI(context.Background(), os.Args[1:]))
}
