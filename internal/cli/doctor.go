package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os/exec"

	"github.com/spf13/cobra"

	"github.com/brandonbloom/railskit/internal/command"
	"github.com/brandonbloom/railskit/internal/config"
	"github.com/brandonbloom/railskit/internal/fetch"
	"github.com/brandonbloom/railskit/internal/shellbridge"
)

func newDoctorCommand(g *globalOptions) *cobra.Command {
	var verbose bool
	cmd := &cobra.Command{
		Use:   "doctor",
		Short: "Check the tools and network access the recipe depends on",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := planConfig(g)
			if err != nil {
				return err
			}
			d := &doctorContext{
				Config:   cfg,
				LookPath: exec.LookPath,
				Probe:    fetch.NewHTTP(cfg.Assets.FetchTimeout(), "").Probe,
			}
			return runDoctor(cmd.Context(), cmd.OutOrStdout(), cmd.ErrOrStderr(), d, verbose || g.verbose)
		},
	}
	cmd.Flags().BoolVar(&verbose, "all", false, "show passing checks too")
	return cmd
}

type doctorContext struct {
	Config   config.Config
	LookPath func(string) (string, error)
	Probe    func(ctx context.Context, url string) error
}

type doctorCheck struct {
	Name string
	Fn   func(context.Context, *doctorContext) error
}

func doctorChecks(cfg config.Config) []doctorCheck {
	return []doctorCheck{
		{Name: "git installed", Fn: requireOnPath("git")},
		{Name: "ruby installed", Fn: requireOnPath("ruby")},
		{Name: "bundle command available", Fn: requireCommand(cfg.Commands.Bundle)},
		{Name: "rails command available", Fn: requireCommand(cfg.Commands.Rails)},
		{Name: "rake command available", Fn: requireCommand(cfg.Commands.Rake)},
		{Name: "H5BP assets reachable", Fn: func(ctx context.Context, d *doctorContext) error {
			return d.Probe(ctx, d.Config.Assets.H5BPBaseURL+"/index.html")
		}},
		{Name: "shell wrapper active", Fn: func(context.Context, *doctorContext) error {
			return shellbridge.FromEnv().Require("changing into the new app")
		}},
	}
}

func runDoctor(ctx context.Context, out, errOut io.Writer, d *doctorContext, verbose bool) error {
	var failures []string
	for _, check := range doctorChecks(d.Config) {
		err := check.Fn(ctx, d)
		if err != nil {
			failures = append(failures, fmt.Sprintf("✗ %s: %v", check.Name, err))
			continue
		}
		if verbose {
			fmt.Fprintf(out, "✓ %s\n", check.Name)
		}
	}

	if len(failures) > 0 {
		for _, failure := range failures {
			fmt.Fprintln(errOut, failure)
		}
		return fmt.Errorf("%d doctor checks failed", len(failures))
	}

	fmt.Fprintln(out, "healthy!")
	return nil
}

func requireOnPath(binary string) func(context.Context, *doctorContext) error {
	return func(_ context.Context, d *doctorContext) error {
		if _, err := d.LookPath(binary); err != nil {
			return fmt.Errorf("%s not found on PATH", binary)
		}
		return nil
	}
}

// requireCommand checks the first word of a configured command prefix.
func requireCommand(prefix string) func(context.Context, *doctorContext) error {
	return func(ctx context.Context, d *doctorContext) error {
		argv, err := command.Split(prefix)
		if err != nil {
			return err
		}
		if len(argv) == 0 {
			return errors.New("empty command")
		}
		return requireOnPath(argv[0])(ctx, d)
	}
}
