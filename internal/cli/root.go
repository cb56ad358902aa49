package cli

import (
	"context"
	"os"
	"os/signal"

	"github.com/spf13/cobra"

	"github.com/brandonbloom/railskit/internal/version"
)

func Execute() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	return newRootCommand().ExecuteContext(ctx)
}

// globalOptions are the persistent flags shared by every subcommand.
type globalOptions struct {
	configPath string
	verbose    bool
	logFormat  string
}

func newRootCommand() *cobra.Command {
	g := &globalOptions{}
	cmd := &cobra.Command{
		Use:           "railskit",
		Short:         "Turn a fresh `rails new` skeleton into a configured starter app",
		Version:       version.String(),
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	flags := cmd.PersistentFlags()
	flags.StringVar(&g.configPath, "config", os.Getenv("RAILSKIT_CONFIG"), "path to railskit.toml (default: $RAILSKIT_CONFIG or <app>/railskit.toml)")
	flags.BoolVarP(&g.verbose, "verbose", "v", false, "log every step at debug level")
	flags.StringVar(&g.logFormat, "log-format", "", "diagnostic log format: text or json (default from config)")

	cmd.AddCommand(
		newApplyCommand(g),
		newNewCommand(g),
		newPlanCommand(g),
		newDoctorCommand(g),
		newActivateCommand(),
		newVersionCommand(),
	)

	return cmd
}
