package command

import (
	"context"
	"strings"
)

// Fake records every invocation and answers from a table keyed by the
// space-joined argv. Handlers may touch the filesystem to simulate
// generators.
type Fake struct {
	Calls    [][]string
	Handlers map[string]func(dir string) (string, error)
}

// NewFake returns a Fake that succeeds with empty output for unknown commands.
func NewFake() *Fake {
	return &Fake{Handlers: map[string]func(string) (string, error){}}
}

// On registers a handler for argv.
func (f *Fake) On(argv string, fn func(dir string) (string, error)) {
	f.Handlers[argv] = fn
}

func (f *Fake) Run(ctx context.Context, dir string, argv []string) error {
	_, err := f.Output(ctx, dir, argv)
	return err
}

func (f *Fake) Output(ctx context.Context, dir string, argv []string) (string, error) {
	f.Calls = append(f.Calls, append([]string(nil), argv...))
	if fn, ok := f.Handlers[strings.Join(argv, " ")]; ok {
		return fn(dir)
	}
	return "", nil
}

// Ran reports whether argv was invoked.
func (f *Fake) Ran(argv string) bool {
	for _, call := range f.Calls {
		if strings.Join(call, " ") == argv {
			return true
		}
	}
	return false
}
