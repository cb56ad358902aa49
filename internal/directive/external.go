package directive

import (
	"context"
	"fmt"
	"strings"

	"github.com/brandonbloom/railskit/internal/gitutil"
	"github.com/brandonbloom/railskit/internal/workspace"
)

// RunCommand runs Argv in the target root. A non-zero exit fails the run.
type RunCommand struct {
	Argv []string
}

func (RunCommand) Kind() Kind { return KindRun }

func (r RunCommand) Describe() string { return "run " + strings.Join(r.Argv, " ") }

func (r RunCommand) Apply(ctx context.Context, env *Env) (Result, error) {
	if env.DryRun {
		return skipped("would run"), nil
	}
	if err := env.Commands.Run(ctx, env.Root, r.Argv); err != nil {
		return Result{}, err
	}
	return ok, nil
}

// Capture runs Argv and stores Pick(stdout) in Var. It is skipped when
// Var already has a value, so configuration can pin the result.
type Capture struct {
	Var  string
	Argv []string
	Pick func(stdout string) (string, error)
}

func (Capture) Kind() Kind { return KindCapture }

func (c Capture) Describe() string {
	return fmt.Sprintf("capture %s from %s", c.Var, strings.Join(c.Argv, " "))
}

func (c Capture) Apply(ctx context.Context, env *Env) (Result, error) {
	if env.Vars == nil {
		env.Vars = map[string]string{}
	}
	if env.Vars[c.Var] != "" {
		return skipped(c.Var + " already set"), nil
	}
	if env.DryRun {
		env.Vars[c.Var] = "<" + strings.Join(c.Argv, " ") + ">"
		return skipped("would run"), nil
	}
	out, err := env.Commands.Output(ctx, env.Root, c.Argv)
	if err != nil {
		return Result{}, err
	}
	value := strings.TrimSpace(out)
	if c.Pick != nil {
		value, err = c.Pick(out)
		if err != nil {
			return Result{}, fmt.Errorf("%s: %w", c.Var, err)
		}
	}
	env.Vars[c.Var] = value
	env.logger().Debug("captured variable", "name", c.Var, "value", value)
	return ok, nil
}

// FetchRemote downloads URL into Dest verbatim.
type FetchRemote struct {
	URL  string
	Dest string
}

func (FetchRemote) Kind() Kind { return KindFetch }

func (f FetchRemote) Describe() string { return "get " + f.URL + " -> " + f.Dest }

func (f FetchRemote) Apply(ctx context.Context, env *Env) (Result, error) {
	if env.DryRun {
		return skipped("would download"), nil
	}
	body, err := env.Fetcher.Fetch(ctx, f.URL)
	if err != nil {
		return Result{}, err
	}
	if err := workspace.EnsureParent(env.Workspace, f.Dest); err != nil {
		return Result{}, err
	}
	if err := env.Workspace.WriteFile(f.Dest, body); err != nil {
		return Result{}, err
	}
	env.logger().Debug("downloaded", "url", f.URL, "dest", f.Dest, "bytes", len(body))
	return ok, nil
}

// GitOp selects a repository step.
type GitOp string

const (
	GitInit     GitOp = "init"
	GitStageAll GitOp = "add"
	GitCommit   GitOp = "commit"
)

// Git runs one repository step in the target root. Message is used by
// commits and may reference variables.
type Git struct {
	Op      GitOp
	Message string
}

func (Git) Kind() Kind { return KindGit }

func (g Git) Describe() string {
	switch g.Op {
	case GitStageAll:
		return "git add ."
	case GitCommit:
		return fmt.Sprintf("git commit -m %q", g.Message)
	default:
		return "git " + string(g.Op)
	}
}

func (g Git) Apply(ctx context.Context, env *Env) (Result, error) {
	if env.DryRun {
		return skipped("would run"), nil
	}
	repo := gitutil.New(env.Root, env.Commands)
	switch g.Op {
	case GitInit:
		return ok, repo.Init(ctx)
	case GitStageAll:
		return ok, repo.StageAll(ctx)
	case GitCommit:
		msg, err := env.Expand(g.Message)
		if err != nil {
			return Result{}, err
		}
		return ok, repo.Commit(ctx, msg)
	default:
		return Result{}, fmt.Errorf("unknown git operation %q", g.Op)
	}
}
