package gitutil

import (
	"context"
	"errors"
	"os"
	"path/filepath"

	"github.com/brandonbloom/railskit/internal/command"
)

// Repo wraps the git CLI for a single working tree.
type Repo struct {
	Dir    string
	Runner command.Runner
}

// New returns a Repo rooted at dir that shells out through r.
func New(dir string, r command.Runner) *Repo {
	return &Repo{Dir: dir, Runner: r}
}

// Init runs `git init`.
func (r *Repo) Init(ctx context.Context) error {
	return r.run(ctx, "init")
}

// StageAll runs `git add .`.
func (r *Repo) StageAll(ctx context.Context) error {
	return r.run(ctx, "add", ".")
}

// Commit records the index with message.
func (r *Repo) Commit(ctx context.Context, message string) error {
	if message == "" {
		return errors.New("commit message must not be empty")
	}
	return r.run(ctx, "commit", "-m", message)
}

// Head reports the abbreviated commit id at HEAD.
func (r *Repo) Head(ctx context.Context) (string, error) {
	out, err := r.Runner.Output(ctx, r.Dir, Args(r.Dir, "rev-parse", "--short", "HEAD"))
	if err != nil {
		return "", err
	}
	return trimLine(out), nil
}

func (r *Repo) run(ctx context.Context, args ...string) error {
	return r.Runner.Run(ctx, r.Dir, Args(r.Dir, args...))
}

// Args builds a git argv that pins the working directory with -C.
func Args(dir string, args ...string) []string {
	return append([]string{"git", "-C", dir}, args...)
}

// IsRepo reports whether dir already carries git metadata.
func IsRepo(dir string) bool {
	_, err := os.Stat(filepath.Join(dir, ".git"))
	return err == nil
}

func trimLine(s string) string {
	for len(s) > 0 && (s[len(s)-1] == '\n' || s[len(s)-1] == '\r') {
		s = s[:len(s)-1]
	}
	return s
}
