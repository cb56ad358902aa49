// Argument parsing for the `railscmdtest` harness.
//
// Supported flags:
//   - `--skip-skeleton` (run in an empty workspace, for `railskit new` tests)
//   - `--app NAME` (skeleton directory name, default "blog")
//   - `--activate-wrapper` (set `RAILSKIT_WRAPPER_ACTIVE=1` + `RAILSKIT_INSTRUCTION_FILE=...`)
//   - `--dir <dir>` (cd under the workspace before running)
//   - `--keep` (preserve the workspace for debugging)
//   - `-h/--help`
package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"path/filepath"
	"strings"
)

type options struct {
	skipSkeleton    bool
	appName         string
	activateWrapper bool
	dir             string
	keep            bool
	help            bool
}

func parseArgs(args []string) (options, []string, error) {
	var opts options

	fs := flag.NewFlagSet("railscmdtest", flag.ContinueOnError)
	fs.SetOutput(io.Discard)

	fs.BoolVar(&opts.skipSkeleton, "skip-skeleton", false, "")
	fs.StringVar(&opts.appName, "app", "blog", "")
	fs.BoolVar(&opts.activateWrapper, "activate-wrapper", false, "")
	fs.StringVar(&opts.dir, "dir", "", "")
	fs.BoolVar(&opts.keep, "keep", false, "")

	fs.BoolVar(&opts.help, "help", false, "")
	fs.BoolVar(&opts.help, "h", false, "")

	if err := fs.Parse(args); err != nil {
		return options{}, nil, err
	}
	if opts.help {
		return opts, nil, nil
	}

	for _, rel := range []string{opts.dir, opts.appName} {
		if rel == "" {
			continue
		}
		if filepath.IsAbs(rel) {
			return options{}, nil, fmt.Errorf("%q must be a relative path", rel)
		}
		clean := filepath.Clean(rel)
		if clean == ".." || strings.HasPrefix(clean, ".."+string(filepath.Separator)) {
			return options{}, nil, fmt.Errorf("%q must not escape the workspace", rel)
		}
	}
	if opts.appName == "" {
		return options{}, nil, errors.New("app name must not be empty")
	}

	cmd := fs.Args()
	if len(cmd) == 0 {
		return options{}, nil, errors.New("missing command")
	}

	return opts, cmd, nil
}
