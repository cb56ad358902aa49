// Package directive defines the steps a recipe is made of. Each directive
// is one atomic mutation of the target tree or one external call, and
// carries everything it needs except the shared Env.
package directive

import (
	"context"
	"errors"
	"log/slog"

	"github.com/brandonbloom/railskit/internal/command"
	"github.com/brandonbloom/railskit/internal/fetch"
	"github.com/brandonbloom/railskit/internal/logging"
	"github.com/brandonbloom/railskit/internal/textedit"
	"github.com/brandonbloom/railskit/internal/workspace"
)

// Kind names a directive variant.
type Kind string

const (
	KindSay        Kind = "say"
	KindDelete     Kind = "delete"
	KindCopy       Kind = "copy"
	KindMkdir      Kind = "mkdir"
	KindTouch      Kind = "touch"
	KindOverwrite  Kind = "overwrite"
	KindAppend     Kind = "append"
	KindPrepend    Kind = "prepend"
	KindInject     Kind = "inject"
	KindSubstitute Kind = "substitute"
	KindRun        Kind = "run"
	KindCapture    Kind = "capture"
	KindFetch      Kind = "fetch"
	KindGit        Kind = "git"
)

// Directive is one step of a recipe.
type Directive interface {
	Kind() Kind
	Describe() string
	Apply(ctx context.Context, env *Env) (Result, error)
}

// Status is how a step left the target.
type Status string

const (
	StatusOK        Status = "ok"
	StatusUnchanged Status = "unchanged"
	StatusSkipped   Status = "skipped"
	StatusFailed    Status = "failed"
)

// Result reports what Apply did. Note is a short human explanation for
// anything other than a plain success.
type Result struct {
	Status Status
	Note   string
}

var (
	ok = Result{Status: StatusOK}

	// ErrAnchorNotFound is returned for a missing anchor under strict anchors.
	ErrAnchorNotFound = errors.New("anchor not found")
)

// Env is the shared state directives run against.
type Env struct {
	Root      string
	Workspace workspace.Workspace
	Commands  command.Runner
	Fetcher   fetch.Fetcher
	Vars      map[string]string
	Logger    *slog.Logger

	// StrictAnchors turns a missing anchor into an error.
	StrictAnchors bool
	// DryRun skips external calls; the Workspace is expected to be an overlay.
	DryRun bool
}

// Expand substitutes ${NAME} variables in s.
func (e *Env) Expand(s string) (string, error) {
	return textedit.Expand(s, e.Vars)
}

func (e *Env) logger() *slog.Logger {
	if e.Logger == nil {
		return logging.Discard()
	}
	return e.Logger
}

func skipped(note string) Result {
	return Result{Status: StatusSkipped, Note: note}
}

func unchanged(note string) Result {
	return Result{Status: StatusUnchanged, Note: note}
}
