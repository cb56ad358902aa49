package cli

import (
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/brandonbloom/railskit/internal/config"
	"github.com/brandonbloom/railskit/internal/logging"
	"github.com/brandonbloom/railskit/internal/project"
)

// loadProject discovers the Rails root from dir, or the working directory
// when dir is empty.
func loadProject(g *globalOptions, dir string) (*project.Project, error) {
	if dir == "" {
		wd, err := os.Getwd()
		if err != nil {
			return nil, err
		}
		dir = wd
	}
	return project.Discover(dir, g.configPath)
}

// loadConfig reads the --config file, or returns defaults when none was
// given. Used where there is no Rails app to discover yet.
func loadConfig(g *globalOptions) (config.Config, error) {
	if g.configPath == "" {
		return config.Default(), nil
	}
	return config.Load(g.configPath)
}

// newLogger builds the diagnostic logger. Flags override the config file.
func newLogger(cmd *cobra.Command, g *globalOptions, cfg config.Config) (*slog.Logger, error) {
	opts := logging.Options{Level: cfg.Log.Level, Format: cfg.Log.Format}
	if g.verbose {
		opts.Level = "debug"
	}
	if g.logFormat != "" {
		block := config.LogBlock{Level: opts.Level, Format: g.logFormat}
		if err := block.Validate(); err != nil {
			return nil, err
		}
		opts.Format = g.logFormat
	}
	return logging.New(cmd.ErrOrStderr(), opts), nil
}
