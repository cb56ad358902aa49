// railsstub is a hermetic stand-in for the Ruby toolchain used by transcript
// tests. One binary is installed under several names and dispatches on the
// name it was invoked as:
//   - `rails new NAME` writes a minimal application skeleton
//   - `rails generate GENERATOR` runs one of the generators the recipe uses
//   - `bundle install` and `bundle exec ...`
//   - `rake time:zones:local` and `rake db:migrate`
//
// Every invocation is appended to `RAILSKIT_STUB_LOG` when set.
// `RAILSKIT_STUB_FAIL` names an invocation (for example "bundle install")
// that should exit non-zero instead.
package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

func main() {
	name := filepath.Base(os.Args[0])
	os.Exit(dispatch(name, os.Args[1:]))
}

func dispatch(name string, args []string) int {
	invocation := strings.TrimSpace(name + " " + strings.Join(args, " "))
	if log := os.Getenv("RAILSKIT_STUB_LOG"); log != "" {
		appendLine(log, invocation)
	}
	if fail := strings.TrimSpace(os.Getenv("RAILSKIT_STUB_FAIL")); fail != "" && fail == invocation {
		fmt.Fprintf(os.Stderr, "%s: simulated failure\n", name)
		return 1
	}

	switch name {
	case "rails":
		return handleRails(args)
	case "bundle":
		return handleBundle(args)
	case "rake":
		return handleRake(args)
	}
	fmt.Fprintf(os.Stderr, "railsstub: unknown tool %q\n", name)
	return 1
}

func handleBundle(args []string) int {
	if len(args) == 0 {
		args = []string{"install"}
	}
	switch args[0] {
	case "install":
		return bundleInstall()
	case "exec":
		if len(args) < 2 {
			fmt.Fprintln(os.Stderr, "bundler: exec needs a command to run")
			return 1
		}
		return dispatch(filepath.Base(args[1]), args[2:])
	}
	fmt.Fprintf(os.Stderr, "Could not find command %q.\n", args[0])
	return 1
}

func bundleInstall() int {
	lines, err := readLines("Gemfile")
	if err != nil {
		fmt.Fprintln(os.Stderr, "Could not locate Gemfile")
		return 10
	}
	gems := 0
	for _, line := range lines {
		if strings.HasPrefix(strings.TrimSpace(line), "gem ") {
			gems++
		}
	}
	fmt.Printf("Bundle complete! %d Gemfile dependencies.\n", gems)
	return 0
}

func handleRake(args []string) int {
	if len(args) == 0 {
		fmt.Fprintln(os.Stderr, "rake aborted! Don't know how to build task 'default'")
		return 1
	}
	switch args[0] {
	case "time:zones:local":
		fmt.Print(zonesLocal)
		return 0
	case "db:migrate":
		return 0
	}
	fmt.Fprintf(os.Stderr, "rake aborted! Don't know how to build task '%s'\n", args[0])
	return 1
}

const zonesLocal = `
* UTC +00:00 *
Casablanca
Dublin
Edinburgh
Lisbon
London
Monrovia
UTC
`
