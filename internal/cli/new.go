package cli

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"regexp"

	"github.com/spf13/cobra"

	"github.com/brandonbloom/railskit/internal/command"
	"github.com/brandonbloom/railskit/internal/naming"
	"github.com/brandonbloom/railskit/internal/project"
	"github.com/brandonbloom/railskit/internal/shellbridge"
)

var namePattern = regexp.MustCompile(`^[A-Za-z][A-Za-z0-9_-]{0,63}$`)

func newNewCommand(g *globalOptions) *cobra.Command {
	opts := &applyOptions{}
	cmd := &cobra.Command{
		Use:   "new [<name>]",
		Short: "Generate a Rails app with `rails new` and apply the recipe to it",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var name string
			if len(args) > 0 {
				name = args[0]
			} else {
				generated, err := naming.Generate()
				if err != nil {
					return err
				}
				name = generated
				fmt.Fprintf(cmd.OutOrStdout(), "Selected app name %s\n", name)
			}
			return runNew(cmd, g, opts, name)
		},
	}
	addApplyFlags(cmd, opts)
	return cmd
}

func runNew(cmd *cobra.Command, g *globalOptions, opts *applyOptions, name string) error {
	if err := validateAppName(name); err != nil {
		return err
	}

	wd, err := os.Getwd()
	if err != nil {
		return err
	}
	targetPath := filepath.Join(wd, name)
	if _, err := os.Stat(targetPath); err == nil {
		return fmt.Errorf("%s already exists", targetPath)
	} else if !errors.Is(err, os.ErrNotExist) {
		return err
	}

	cfg, err := loadConfig(g)
	if err != nil {
		return err
	}
	railsCmd, err := command.Split(cfg.Commands.Rails)
	if err != nil {
		return err
	}
	cmds := command.NewExec(cmd.OutOrStdout(), cmd.ErrOrStderr())
	if err := cmds.Run(cmd.Context(), wd, command.Join(railsCmd, "new", name, "--skip-bundle")); err != nil {
		return fmt.Errorf("rails new failed: %w", err)
	}

	proj, err := project.Load(targetPath, g.configPath)
	if err != nil {
		return err
	}
	if err := applyRecipe(cmd, g, opts, proj); err != nil {
		return err
	}

	if err := shellbridge.ChangeDirectory(targetPath); err != nil {
		fmt.Fprintf(cmd.OutOrStdout(), "Created %s at %s (run `cd %s`)\n", name, targetPath, targetPath)
	} else {
		fmt.Fprintf(cmd.OutOrStdout(), "Created %s at %s\n", name, targetPath)
	}
	return nil
}

func validateAppName(name string) error {
	if !namePattern.MatchString(name) {
		return fmt.Errorf("invalid application name %q (start with a letter; use letters, digits, underscores, and hyphens)", name)
	}
	switch name {
	case "rails", "test", "application":
		return fmt.Errorf("%q is reserved by Rails", name)
	}
	return nil
}
