// Package command runs external processes for the recipe. The Runner
// interface is the seam tests replace with a fake.
package command

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"strings"

	"mvdan.cc/sh/v3/shell"
)

// Runner executes argv inside dir.
type Runner interface {
	// Run streams the child's stdout/stderr and fails on a non-zero exit.
	Run(ctx context.Context, dir string, argv []string) error
	// Output captures stdout and fails on a non-zero exit.
	Output(ctx context.Context, dir string, argv []string) (string, error)
}

// ExitError reports a process that ran but exited non-zero.
type ExitError struct {
	Argv   []string
	Code   int
	Stderr string
}

func (e *ExitError) Error() string {
	msg := fmt.Sprintf("%s: exit status %d", strings.Join(e.Argv, " "), e.Code)
	if e.Stderr != "" {
		msg += "\n" + e.Stderr
	}
	return msg
}

// Exec is the os/exec backed Runner.
type Exec struct {
	Stdout io.Writer
	Stderr io.Writer
	Stdin  io.Reader
}

// NewExec returns an Exec wired to the given output streams.
func NewExec(stdout, stderr io.Writer) *Exec {
	return &Exec{Stdout: stdout, Stderr: stderr, Stdin: os.Stdin}
}

func (e *Exec) Run(ctx context.Context, dir string, argv []string) error {
	if len(argv) == 0 {
		return errors.New("empty command")
	}
	cmd := exec.CommandContext(ctx, argv[0], argv[1:]...)
	cmd.Dir = dir
	cmd.Stdout = e.Stdout
	cmd.Stderr = e.Stderr
	cmd.Stdin = e.Stdin
	return wrapExit(argv, cmd.Run(), "")
}

func (e *Exec) Output(ctx context.Context, dir string, argv []string) (string, error) {
	if len(argv) == 0 {
		return "", errors.New("empty command")
	}
	cmd := exec.CommandContext(ctx, argv[0], argv[1:]...)
	cmd.Dir = dir
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr
	if err := cmd.Run(); err != nil {
		return "", wrapExit(argv, err, strings.TrimSpace(stderr.String()))
	}
	return stdout.String(), nil
}

func wrapExit(argv []string, err error, stderr string) error {
	if err == nil {
		return nil
	}
	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		return &ExitError{Argv: argv, Code: exitErr.ExitCode(), Stderr: stderr}
	}
	return fmt.Errorf("%s: %w", strings.Join(argv, " "), err)
}

// Split parses a command prefix such as "bundle exec rake" into words using
// POSIX shell quoting rules. Variable references are not expanded.
func Split(s string) ([]string, error) {
	words, err := shell.Fields(s, func(string) string { return "" })
	if err != nil {
		return nil, fmt.Errorf("parse command %q: %w", s, err)
	}
	if len(words) == 0 {
		return nil, fmt.Errorf("parse command %q: empty", s)
	}
	return words, nil
}

// Join appends args to a prefix without aliasing the prefix's backing array.
func Join(prefix []string, args ...string) []string {
	out := make([]string, 0, len(prefix)+len(args))
	out = append(out, prefix...)
	return append(out, args...)
}
