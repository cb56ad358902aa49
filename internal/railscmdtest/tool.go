// Implementation of the `railscmdtest` harness.
//
// Key behaviors:
//   - Creates `/tmp/railskit-transcripts/app-<id>` and symlinks `/tmp/railskit-transcripts/bin -> <repo>/bin`.
//   - Installs the stub toolchain by copying `bin/railsstub` into the workspace as `bin/rails`, `bin/bundle` and `bin/rake`.
//   - Generates a skeleton with the stub's `rails new` unless `--skip-skeleton` is given.
//   - Writes `railskit.toml` pointing at a local asset server and exports it as `RAILSKIT_CONFIG`.
//   - Seeds deterministic git identities, timestamps and `RAILSKIT_NOW` for stable transcripts.
//   - Honors `RAILSKIT_CMDTEST_TIMEOUT` (default 10s) to cap setup + command runtime.
//   - Honors `RAILSKIT_CMDTEST_ID` to isolate workspaces for parallel tests.
package main

import (
	"bytes"
	"context"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"time"
)

type tool struct {
	repoRoot        string
	transcriptsRoot string
	stubBinary      string

	stdin  io.Reader
	stdout io.Writer
	stderr io.Writer
}

const defaultTimeout = 10 * time.Second

var stubNames = []string{"rails", "bundle", "rake"}

func newToolFromExecutable() (*tool, error) {
	if root := os.Getenv("RAILSKIT_REPO_ROOT"); root != "" {
		return newTool(root), nil
	}

	exe, err := os.Executable()
	if err != nil {
		return nil, err
	}
	exe, err = filepath.EvalSymlinks(exe)
	if err != nil {
		return nil, err
	}
	repoRoot := filepath.Clean(filepath.Join(filepath.Dir(exe), ".."))
	return newTool(repoRoot), nil
}

func newTool(repoRoot string) *tool {
	repoRoot = filepath.Clean(repoRoot)
	return &tool{
		repoRoot:        repoRoot,
		transcriptsRoot: "/tmp/railskit-transcripts",
		stubBinary:      filepath.Join(repoRoot, "bin", "railsstub"),
		stdin:           os.Stdin,
		stdout:          os.Stdout,
		stderr:          os.Stderr,
	}
}

func (t *tool) runCLI(ctx context.Context, args []string) int {
	ctx, cancel, timeout := withTimeoutFromEnv(ctx, "RAILSKIT_CMDTEST_TIMEOUT", defaultTimeout)
	if cancel != nil {
		defer cancel()
	}

	opts, cmdArgs, err := parseArgs(args)
	if err != nil {
		fmt.Fprintln(t.stderr, err)
		t.printUsage()
		return 2
	}
	if opts.help {
		t.printUsage()
		return 0
	}

	exitCode, err := t.run(ctx, opts, cmdArgs, timeout)
	if err != nil {
		fmt.Fprintln(t.stderr, err)
		return 1
	}
	return exitCode
}

func (t *tool) printUsage() {
	fmt.Fprint(t.stderr, `Usage: railscmdtest [options] -- <command> [args...]

Sets up a disposable Rails skeleton backed by stub tooling, runs the given
command inside it, and cleans up afterward. Intended for transcript
integration tests.

Options:
  --skip-skeleton      Run in an empty workspace (for railskit new tests).
  --app NAME           Name of the generated skeleton (default blog).
  --activate-wrapper   Simulate the railskit shell wrapper being active.
  --dir DIR            cd into DIR (relative to the workspace) before running.
  --keep               Preserve the workspace for debugging (prints its path).
`)
}

func (t *tool) run(ctx context.Context, opts options, cmdArgs []string, timeout time.Duration) (int, error) {
	if t.repoRoot == "" {
		return 1, errors.New("repo root is required")
	}
	if _, err := os.Stat(filepath.Join(t.repoRoot, "go.mod")); err != nil {
		return 1, fmt.Errorf("unable to locate railskit repo root: %w", err)
	}

	if err := os.MkdirAll(t.transcriptsRoot, 0o755); err != nil {
		return 1, err
	}

	unlock, err := acquireLockFile(ctx, filepath.Join(t.transcriptsRoot, ".lock"), timeout)
	if err != nil {
		return 1, err
	}
	err = t.ensureBinSymlink()
	unlock()
	if err != nil {
		return 1, err
	}

	workspace := filepath.Join(t.transcriptsRoot, workspaceDirName())
	if err := removeAllUnder(t.transcriptsRoot, workspace); err != nil {
		return 1, err
	}
	if err := os.MkdirAll(workspace, 0o755); err != nil {
		return 1, err
	}

	if err := t.installStubs(workspace); err != nil {
		return 1, err
	}

	assets, err := startAssetServer()
	if err != nil {
		return 1, err
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), time.Second)
		defer cancel()
		_ = assets.Close(shutdownCtx)
	}()
	configPath := filepath.Join(workspace, "railskit.toml")
	if err := os.WriteFile(configPath, []byte(assets.configTOML()), 0o644); err != nil {
		return 1, err
	}

	childEnv := deterministicEnv(os.Environ())
	childEnv["PATH"] = filepath.Join(workspace, "bin") + string(os.PathListSeparator) + childEnv["PATH"]
	childEnv["RAILSKIT_CONFIG"] = configPath
	childEnv["RAILSKIT_STUB_LOG"] = filepath.Join(workspace, ".stub-log")

	workdir := workspace
	if !opts.skipSkeleton {
		if err := t.runQuiet(ctx, workspace, childEnv, filepath.Join(workspace, "bin", "rails"), "new", opts.appName, "--skip-bundle"); err != nil {
			return 1, err
		}
		// The skeleton's own creation is not part of what transcripts assert.
		if err := os.Remove(filepath.Join(workspace, ".stub-log")); err != nil && !errors.Is(err, os.ErrNotExist) {
			return 1, err
		}
		workdir = filepath.Join(workspace, opts.appName)
	}

	if opts.activateWrapper {
		childEnv["RAILSKIT_WRAPPER_ACTIVE"] = "1"
		childEnv["RAILSKIT_INSTRUCTION_FILE"] = filepath.Join(workspace, ".railskit-instruction")
	}

	if opts.dir != "" {
		workdir = filepath.Join(workspace, opts.dir)
	}

	cmd := exec.CommandContext(ctx, cmdArgs[0], cmdArgs[1:]...)
	cmd.Dir = workdir
	cmd.Env = childEnv.with("PWD", workdir)
	cmd.Stdin = t.stdin
	cmd.Stdout = t.stdout
	cmd.Stderr = t.stderr

	runErr := cmd.Run()
	if runErr != nil && errors.Is(ctx.Err(), context.DeadlineExceeded) {
		return 124, fmt.Errorf("railscmdtest: timed out after %s", timeout)
	}
	exitCode := exitStatus(runErr)

	if opts.keep {
		fmt.Fprintf(t.stderr, "workspace kept at %s\n", workspace)
	} else if cleanupErr := removeAllUnder(t.transcriptsRoot, workspace); cleanupErr != nil {
		return 1, cleanupErr
	}

	return exitCode, nil
}

func (t *tool) ensureBinSymlink() error {
	dst := filepath.Join(t.transcriptsRoot, "bin")
	src := filepath.Join(t.repoRoot, "bin")

	pointsAtSrc := func() bool {
		target, err := os.Readlink(dst)
		if err != nil {
			return false
		}
		if !filepath.IsAbs(target) {
			target = filepath.Join(filepath.Dir(dst), target)
		}
		return filepath.Clean(target) == src
	}

	info, err := os.Lstat(dst)
	switch {
	case err == nil && info.Mode()&os.ModeSymlink == 0:
		return fmt.Errorf("refusing to overwrite non-symlink: %s", dst)
	case err == nil && pointsAtSrc():
		return nil
	case err == nil:
		// A checkout elsewhere claimed the link last; the lock makes the swap safe.
		if err := os.Remove(dst); err != nil {
			return err
		}
	case !errors.Is(err, os.ErrNotExist):
		return err
	}
	return os.Symlink(src, dst)
}

func (t *tool) installStubs(workspace string) error {
	stub, err := os.ReadFile(t.stubBinary)
	if err != nil {
		return fmt.Errorf("read stub (build it into bin/railsstub first): %w", err)
	}

	binDir := filepath.Join(workspace, "bin")
	if err := os.MkdirAll(binDir, 0o755); err != nil {
		return err
	}
	for _, name := range stubNames {
		if err := os.WriteFile(filepath.Join(binDir, name), stub, 0o755); err != nil {
			return err
		}
	}
	return nil
}

func (t *tool) runQuiet(ctx context.Context, dir string, env environ, name string, args ...string) error {
	cmd := exec.CommandContext(ctx, name, args...)
	cmd.Dir = dir
	cmd.Env = env.with("PWD", dir)

	cmd.Stdout = io.Discard
	var stderr bytes.Buffer
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		msg := strings.TrimSpace(stderr.String())
		if msg != "" {
			msg = ": " + msg
		}
		return fmt.Errorf("%s %s failed%s: %w", filepath.Base(name), strings.Join(args, " "), msg, err)
	}
	return nil
}

func deterministicEnv(base []string) environ {
	env := newEnviron(base)
	for key, value := range map[string]string{
		"GIT_AUTHOR_NAME":     "railskit-test",
		"GIT_AUTHOR_EMAIL":    "railskit@example.com",
		"GIT_COMMITTER_NAME":  "railskit-test",
		"GIT_COMMITTER_EMAIL": "railskit@example.com",
		"GIT_AUTHOR_DATE":     "2000-01-01T00:00:00Z",
		"GIT_COMMITTER_DATE":  "2000-01-01T00:00:00Z",
		"GIT_CONFIG_GLOBAL":   "/dev/null",
		"GIT_CONFIG_NOSYSTEM": "1",
		"RAILSKIT_NOW":        "2000-01-01T00:00:00Z",
		"NO_COLOR":            "1",
		"CLICOLOR":            "0",
		"CLICOLOR_FORCE":      "0",
	} {
		env[key] = value
	}
	delete(env, "RAILSKIT_WRAPPER_ACTIVE")
	delete(env, "RAILSKIT_INSTRUCTION_FILE")
	delete(env, "RAILSKIT_STUB_FAIL")
	return env
}

// removeAllUnder deletes target only when it sits strictly inside root.
func removeAllUnder(root, target string) error {
	rel, err := filepath.Rel(root, target)
	switch {
	case err != nil:
		return err
	case rel == ".":
		return fmt.Errorf("refusing to remove root: %s", root)
	case rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)):
		return fmt.Errorf("refusing to remove outside root: %s", target)
	}
	return os.RemoveAll(target)
}

func exitStatus(err error) int {
	var ee *exec.ExitError
	switch {
	case err == nil:
		return 0
	case errors.As(err, &ee):
		return ee.ExitCode()
	default:
		return 127
	}
}

// withTimeoutFromEnv caps ctx by the duration in key. "0" disables the cap
// and unparsable values fall back to def.
func withTimeoutFromEnv(ctx context.Context, key string, def time.Duration) (context.Context, context.CancelFunc, time.Duration) {
	d := def
	switch raw := strings.TrimSpace(os.Getenv(key)); raw {
	case "":
	case "0", "0s":
		return ctx, nil, 0
	default:
		if parsed, err := time.ParseDuration(raw); err == nil && parsed > 0 {
			d = parsed
		}
	}
	next, cancel := context.WithTimeout(ctx, d)
	return next, cancel, d
}

func workspaceDirName() string {
	raw := strings.TrimSpace(os.Getenv("RAILSKIT_CMDTEST_ID"))
	if raw != "" {
		id := strings.Trim(strings.Map(func(r rune) rune {
			switch {
			case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '-', r == '_', r == '.':
				return r
			}
			return '_'
		}, raw), "._-")
		if id != "" {
			return "app-" + id
		}
	}

	var b [8]byte
	if _, err := rand.Read(b[:]); err != nil {
		return fmt.Sprintf("app-%d", os.Getpid())
	}
	return "app-" + hex.EncodeToString(b[:])
}

// environ is a process environment keyed by variable name.
type environ map[string]string

func newEnviron(entries []string) environ {
	env := make(environ, len(entries))
	for _, entry := range entries {
		if key, value, ok := strings.Cut(entry, "="); ok {
			env[key] = value
		}
	}
	return env
}

// with returns the environment as KEY=value entries plus one override.
func (e environ) with(key, value string) []string {
	out := make([]string, 0, len(e)+1)
	for k, v := range e {
		if k != key {
			out = append(out, k+"="+v)
		}
	}
	return append(out, key+"="+value)
}
