package directive

import (
	"context"
	"fmt"

	"github.com/brandonbloom/railskit/internal/workspace"
)

// Delete removes a file, or a directory tree when Recursive is set. An
// absent path is an error, as with rm.
type Delete struct {
	Path      string
	Recursive bool
}

func (Delete) Kind() Kind { return KindDelete }

func (d Delete) Describe() string {
	if d.Recursive {
		return "remove " + d.Path + " (recursive)"
	}
	return "remove " + d.Path
}

func (d Delete) Apply(ctx context.Context, env *Env) (Result, error) {
	info, err := env.Workspace.Lstat(d.Path)
	if err != nil {
		return Result{}, fmt.Errorf("rm %s: %w", d.Path, err)
	}
	if info.IsDir() {
		if !d.Recursive {
			return Result{}, fmt.Errorf("rm %s: is a directory", d.Path)
		}
		return ok, env.Workspace.RemoveAll(d.Path)
	}
	return ok, env.Workspace.Remove(d.Path)
}

// Copy duplicates a file.
type Copy struct {
	From string
	To   string
}

func (Copy) Kind() Kind { return KindCopy }

func (c Copy) Describe() string { return "copy " + c.From + " to " + c.To }

func (c Copy) Apply(ctx context.Context, env *Env) (Result, error) {
	data, err := env.Workspace.ReadFile(c.From)
	if err != nil {
		if env.DryRun && workspace.IsNotExist(err) {
			return skipped("source not present"), nil
		}
		return Result{}, fmt.Errorf("cp %s: %w", c.From, err)
	}
	if err := workspace.EnsureParent(env.Workspace, c.To); err != nil {
		return Result{}, err
	}
	return ok, env.Workspace.WriteFile(c.To, data)
}

// Mkdir creates a directory and any missing parents.
type Mkdir struct {
	Path string
}

func (Mkdir) Kind() Kind { return KindMkdir }

func (m Mkdir) Describe() string { return "mkdir " + m.Path }

func (m Mkdir) Apply(ctx context.Context, env *Env) (Result, error) {
	if info, err := env.Workspace.Lstat(m.Path); err == nil {
		if !info.IsDir() {
			return Result{}, fmt.Errorf("mkdir %s: file exists", m.Path)
		}
		return unchanged("already exists"), nil
	}
	return ok, env.Workspace.MkdirAll(m.Path)
}

// Touch creates an empty file unless one already exists.
type Touch struct {
	Path string
}

func (Touch) Kind() Kind { return KindTouch }

func (t Touch) Describe() string { return "touch " + t.Path }

func (t Touch) Apply(ctx context.Context, env *Env) (Result, error) {
	if _, err := env.Workspace.Lstat(t.Path); err == nil {
		return unchanged("already exists"), nil
	} else if !workspace.IsNotExist(err) {
		return Result{}, err
	}
	if err := workspace.EnsureParent(env.Workspace, t.Path); err != nil {
		return Result{}, err
	}
	return ok, env.Workspace.WriteFile(t.Path, nil)
}

// Overwrite creates or truncates a file with Content. Parent directories
// are created.
type Overwrite struct {
	Path    string
	Content string
}

func (Overwrite) Kind() Kind { return KindOverwrite }

func (o Overwrite) Describe() string { return "write " + o.Path }

func (o Overwrite) Apply(ctx context.Context, env *Env) (Result, error) {
	content, err := env.Expand(o.Content)
	if err != nil {
		return Result{}, fmt.Errorf("%s: %w", o.Path, err)
	}
	if err := workspace.EnsureParent(env.Workspace, o.Path); err != nil {
		return Result{}, err
	}
	return ok, env.Workspace.WriteFile(o.Path, []byte(content))
}

// Append adds Content at the end of an existing file.
type Append struct {
	Path    string
	Content string
}

func (Append) Kind() Kind { return KindAppend }

func (a Append) Describe() string { return "append to " + a.Path }

func (a Append) Apply(ctx context.Context, env *Env) (Result, error) {
	return editFile(env, a.Path, func(content string) (string, Result, error) {
		insert, err := env.Expand(a.Content)
		if err != nil {
			return "", Result{}, err
		}
		return content + insert, ok, nil
	})
}

// Prepend adds Content at the start of an existing file.
type Prepend struct {
	Path    string
	Content string
}

func (Prepend) Kind() Kind { return KindPrepend }

func (p Prepend) Describe() string { return "prepend to " + p.Path }

func (p Prepend) Apply(ctx context.Context, env *Env) (Result, error) {
	return editFile(env, p.Path, func(content string) (string, Result, error) {
		insert, err := env.Expand(p.Content)
		if err != nil {
			return "", Result{}, err
		}
		return insert + content, ok, nil
	})
}

// editFile reads path, applies fn and writes the result back when it
// differs. A missing file is an error, except in a dry run where it was
// probably going to be produced by a skipped command.
func editFile(env *Env, path string, fn func(string) (string, Result, error)) (Result, error) {
	data, err := env.Workspace.ReadFile(path)
	if err != nil {
		if env.DryRun && workspace.IsNotExist(err) {
			return skipped("file not present"), nil
		}
		return Result{}, fmt.Errorf("%s: %w", path, err)
	}
	before := string(data)
	after, res, err := fn(before)
	if err != nil {
		return Result{}, fmt.Errorf("%s: %w", path, err)
	}
	if after == before {
		return res, nil
	}
	if err := env.Workspace.WriteFile(path, []byte(after)); err != nil {
		return Result{}, err
	}
	return res, nil
}
