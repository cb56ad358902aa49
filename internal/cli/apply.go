package cli

import (
	"fmt"
	"io"

	"github.com/akedrou/textdiff"
	"github.com/spf13/cobra"

	"github.com/brandonbloom/railskit/internal/command"
	"github.com/brandonbloom/railskit/internal/directive"
	"github.com/brandonbloom/railskit/internal/fetch"
	"github.com/brandonbloom/railskit/internal/project"
	"github.com/brandonbloom/railskit/internal/recipe"
	"github.com/brandonbloom/railskit/internal/runner"
	"github.com/brandonbloom/railskit/internal/version"
	"github.com/brandonbloom/railskit/internal/workspace"
)

type applyOptions struct {
	dryRun        bool
	strictAnchors bool
	force         bool
}

func newApplyCommand(g *globalOptions) *cobra.Command {
	opts := &applyOptions{}
	cmd := &cobra.Command{
		Use:   "apply [<dir>]",
		Short: "Apply the starter recipe to an existing Rails skeleton",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			dir := ""
			if len(args) == 1 {
				dir = args[0]
			}
			proj, err := loadProject(g, dir)
			if err != nil {
				return err
			}
			return applyRecipe(cmd, g, opts, proj)
		},
	}
	addApplyFlags(cmd, opts)
	cmd.Flags().BoolVar(&opts.dryRun, "dry-run", false, "show the resulting diff without touching the app or running commands")
	cmd.Flags().BoolVar(&opts.force, "force", false, "apply even though the app already has a .git directory")
	return cmd
}

func addApplyFlags(cmd *cobra.Command, opts *applyOptions) {
	cmd.Flags().BoolVar(&opts.strictAnchors, "strict-anchors", false, "fail when an edit cannot find its anchor")
}

func applyRecipe(cmd *cobra.Command, g *globalOptions, opts *applyOptions, proj *project.Project) error {
	if proj.HasGit() && !opts.force && !opts.dryRun {
		return project.ErrAlreadyApplied
	}

	cfg := proj.Config
	if opts.strictAnchors {
		cfg.StrictAnchors = true
	}
	logger, err := newLogger(cmd, g, cfg)
	if err != nil {
		return err
	}
	steps, err := recipe.Rails(cfg)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	var ws workspace.Workspace = workspace.NewDisk(proj.Root)
	var overlay *workspace.Overlay
	if opts.dryRun {
		overlay = workspace.NewOverlay(ws)
		ws = overlay
	}

	userAgent := cfg.Assets.UserAgent
	if userAgent == "" {
		userAgent = "railskit/" + version.String()
	}
	env := &directive.Env{
		Root:          proj.Root,
		Workspace:     ws,
		Commands:      command.NewExec(out, cmd.ErrOrStderr()),
		Fetcher:       fetch.NewHTTP(cfg.Assets.FetchTimeout(), userAgent),
		Vars:          recipe.Vars(cfg, proj.Name),
		Logger:        logger,
		StrictAnchors: cfg.StrictAnchors,
		DryRun:        opts.dryRun,
	}
	logger.Debug("applying recipe", "root", proj.Root, "app", proj.Name, "config", proj.ConfigPath, "dry_run", opts.dryRun)

	_, err = runner.Run(cmd.Context(), steps, env, runner.Options{
		Out:   out,
		Color: useColor(out),
		Now:   clock(),
	})
	if overlay != nil {
		printChanges(out, overlay.Changes())
	}
	return err
}

// printChanges renders a dry run's overlay as unified diffs.
func printChanges(w io.Writer, changes []workspace.Change) {
	if len(changes) == 0 {
		fmt.Fprintln(w, "No files would change.")
		return
	}
	fmt.Fprintf(w, "\n%d files would change:\n", len(changes))
	for _, c := range changes {
		oldLabel, newLabel := "a/"+c.Path, "b/"+c.Path
		switch {
		case c.Created:
			oldLabel = "/dev/null"
		case c.Removed:
			newLabel = "/dev/null"
		}
		diff := textdiff.Unified(oldLabel, newLabel, string(c.Before), string(c.After))
		if diff == "" {
			// Removing an empty file has no hunks.
			fmt.Fprintf(w, "--- %s\n+++ %s\n", oldLabel, newLabel)
			continue
		}
		fmt.Fprint(w, diff)
	}
}
