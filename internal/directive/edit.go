package directive

import (
	"context"
	"fmt"

	"github.com/brandonbloom/railskit/internal/textedit"
)

// Inject splices Content next to Anchor. Only the first match is used
// unless All is set.
type Inject struct {
	Path     string
	Anchor   textedit.Anchor
	Content  string
	Position textedit.Position
	All      bool
}

// InjectAfter builds an Inject after the first match of anchor.
func InjectAfter(path string, anchor textedit.Anchor, content string) Inject {
	return Inject{Path: path, Anchor: anchor, Content: content, Position: textedit.After}
}

// InjectBefore builds an Inject before the first match of anchor.
func InjectBefore(path string, anchor textedit.Anchor, content string) Inject {
	return Inject{Path: path, Anchor: anchor, Content: content, Position: textedit.Before}
}

func (Inject) Kind() Kind { return KindInject }

func (i Inject) Describe() string {
	return fmt.Sprintf("inject into %s %s %s", i.Path, i.Position, i.Anchor)
}

func (i Inject) Apply(ctx context.Context, env *Env) (Result, error) {
	return editFile(env, i.Path, func(content string) (string, Result, error) {
		insert, err := env.Expand(i.Content)
		if err != nil {
			return "", Result{}, err
		}
		out, found := textedit.Inject(content, i.Anchor, insert, i.Position, i.All)
		if !found {
			res, err := missingAnchor(env, i.Path, i.Anchor)
			return content, res, err
		}
		return out, ok, nil
	})
}

// Substitute replaces Pattern with Replacement, every match unless First.
// The replacement is literal apart from ${NAME} variables.
type Substitute struct {
	Path        string
	Pattern     textedit.Anchor
	Replacement string
	First       bool
}

func (Substitute) Kind() Kind { return KindSubstitute }

func (s Substitute) Describe() string {
	return fmt.Sprintf("substitute %s in %s", s.Pattern, s.Path)
}

func (s Substitute) Apply(ctx context.Context, env *Env) (Result, error) {
	return editFile(env, s.Path, func(content string) (string, Result, error) {
		replacement, err := env.Expand(s.Replacement)
		if err != nil {
			return "", Result{}, err
		}
		out, n := textedit.Substitute(content, s.Pattern, replacement, s.First)
		if n == 0 {
			res, err := missingAnchor(env, s.Path, s.Pattern)
			return content, res, err
		}
		env.logger().Debug("substituted", "path", s.Path, "pattern", s.Pattern.String(), "count", n)
		return out, ok, nil
	})
}

// missingAnchor applies the single missing-anchor policy: leave the file
// alone and warn, or fail under strict anchors.
func missingAnchor(env *Env, path string, anchor textedit.Anchor) (Result, error) {
	if env.StrictAnchors {
		return Result{}, fmt.Errorf("%w: %s", ErrAnchorNotFound, anchor)
	}
	env.logger().Warn("anchor not found; file left unchanged", "path", path, "anchor", anchor.String())
	return unchanged("anchor not found"), nil
}
