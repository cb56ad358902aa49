package cli

import (
	"errors"
	"fmt"
	"io"
	"strconv"

	"github.com/mattn/go-runewidth"
	"github.com/spf13/cobra"

	"github.com/brandonbloom/railskit/internal/config"
	"github.com/brandonbloom/railskit/internal/directive"
	"github.com/brandonbloom/railskit/internal/project"
	"github.com/brandonbloom/railskit/internal/recipe"
)

func newPlanCommand(g *globalOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "plan",
		Short: "List every step the recipe would apply",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := planConfig(g)
			if err != nil {
				return err
			}
			steps, err := recipe.Rails(cfg)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			writePlan(out, steps, terminalWidth(out))
			return nil
		},
	}
}

// planConfig prefers the current app's config but works outside an app.
func planConfig(g *globalOptions) (config.Config, error) {
	proj, err := loadProject(g, "")
	switch {
	case err == nil:
		return proj.Config, nil
	case errors.Is(err, project.ErrNotFound):
		return loadConfig(g)
	default:
		return config.Config{}, err
	}
}

// writePlan prints one numbered line per step with the kind column
// aligned. Lines are truncated to width when width is positive.
func writePlan(w io.Writer, steps []directive.Directive, width int) {
	total, kindWidth := 0, 0
	for _, step := range steps {
		if step.Kind() == directive.KindSay {
			continue
		}
		total++
		kindWidth = max(kindWidth, runewidth.StringWidth(string(step.Kind())))
	}
	numWidth := len(strconv.Itoa(total))

	index := 0
	for _, step := range steps {
		var line string
		if step.Kind() == directive.KindSay {
			line = "# " + step.Describe()
		} else {
			index++
			line = fmt.Sprintf("%*d  %s  %s", numWidth, index, runewidth.FillRight(string(step.Kind()), kindWidth), step.Describe())
		}
		if width > 0 {
			line = runewidth.Truncate(line, width, "…")
		}
		fmt.Fprintln(w, line)
	}
}
