// Package runner applies a recipe: every directive in order, one at a
// time, stopping at the first failure.
package runner

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/fatih/color"

	"github.com/brandonbloom/railskit/internal/directive"
	"github.com/brandonbloom/railskit/internal/logging"
	"github.com/brandonbloom/railskit/internal/timefmt"
)

// Options controls progress output.
type Options struct {
	Out   io.Writer
	Color bool
	// Now is a clock override for tests.
	Now func() time.Time
}

// StepResult is the outcome of one directive.
type StepResult struct {
	Index       int
	Kind        directive.Kind
	Description string
	Status      directive.Status
	Note        string
	Duration    time.Duration
}

// Report summarizes a run. On failure it ends with the failed step.
type Report struct {
	Steps   []StepResult
	Elapsed time.Duration
}

// Count returns how many steps finished with status.
func (r Report) Count(status directive.Status) int {
	n := 0
	for _, s := range r.Steps {
		if s.Status == status {
			n++
		}
	}
	return n
}

// StepError identifies the directive that halted a run.
type StepError struct {
	Index       int
	Total       int
	Description string
	Err         error
}

func (e *StepError) Error() string {
	return fmt.Sprintf("step %d/%d (%s): %v", e.Index, e.Total, e.Description, e.Err)
}

func (e *StepError) Unwrap() error { return e.Err }

type palette struct {
	section func(a ...any) string
	index   func(a ...any) string
	note    func(a ...any) string
	failed  func(a ...any) string
	done    func(a ...any) string
}

func newPalette(enabled bool) palette {
	mk := func(attrs ...color.Attribute) func(a ...any) string {
		c := color.New(attrs...)
		if enabled {
			c.EnableColor()
		} else {
			c.DisableColor()
		}
		return c.SprintFunc()
	}
	return palette{
		section: mk(color.FgCyan, color.Bold),
		index:   mk(color.FgHiBlack),
		note:    mk(color.FgYellow),
		failed:  mk(color.FgHiRed, color.Bold),
		done:    mk(color.FgGreen, color.Bold),
	}
}

// Run applies steps against env in order. Say directives print a section
// header and are not numbered. Each step's progress line is written before
// it runs so subprocess output lands beneath it; a status other than ok
// follows on an indented line. The first error stops the run; no later
// directive is applied.
func Run(ctx context.Context, steps []directive.Directive, env *directive.Env, opts Options) (Report, error) {
	out := opts.Out
	if out == nil {
		out = io.Discard
	}
	now := opts.Now
	if now == nil {
		now = time.Now
	}
	if env.Vars == nil {
		env.Vars = map[string]string{}
	}
	if env.Logger == nil {
		env.Logger = logging.Discard()
	}
	colors := newPalette(opts.Color)

	total := 0
	for _, step := range steps {
		if step.Kind() != directive.KindSay {
			total++
		}
	}

	var report Report
	start := now()
	err := withTraceTask(ctx, "railskit.apply", func(ctx context.Context) error {
		index := 0
		for _, step := range steps {
			if err := ctx.Err(); err != nil {
				return err
			}
			if step.Kind() == directive.KindSay {
				fmt.Fprintln(out, colors.section("==> "+step.Describe()))
				continue
			}
			index++
			desc := step.Describe()
			fmt.Fprintf(out, "%s %s\n", colors.index(fmt.Sprintf("[%d/%d]", index, total)), desc)

			stepStart := now()
			res, err := withTraceRegion(ctx, string(step.Kind()), func() (directive.Result, error) {
				return step.Apply(ctx, env)
			})
			result := StepResult{
				Index:       index,
				Kind:        step.Kind(),
				Description: desc,
				Status:      res.Status,
				Note:        res.Note,
				Duration:    now().Sub(stepStart),
			}
			if err != nil {
				result.Status = directive.StatusFailed
				result.Note = err.Error()
				report.Steps = append(report.Steps, result)
				fmt.Fprintf(out, "    %s\n", colors.failed("failed"))
				return &StepError{Index: index, Total: total, Description: desc, Err: err}
			}
			if result.Status == "" {
				result.Status = directive.StatusOK
			}
			report.Steps = append(report.Steps, result)
			if result.Status != directive.StatusOK {
				fmt.Fprintf(out, "    %s\n", colors.note(fmt.Sprintf("%s (%s)", result.Status, result.Note)))
			}
			env.Logger.Debug("step finished", "index", index, "kind", string(result.Kind), "status", string(result.Status), "duration", result.Duration)
		}
		return nil
	})
	report.Elapsed = now().Sub(start)
	if err != nil {
		return report, err
	}

	fmt.Fprintf(out, "%s %d steps in %s", colors.done("Done:"), len(report.Steps), timefmt.Duration(report.Elapsed))
	if n, m := report.Count(directive.StatusUnchanged), report.Count(directive.StatusSkipped); n+m > 0 {
		fmt.Fprintf(out, " (%d unchanged, %d skipped)", n, m)
	}
	fmt.Fprintln(out)
	return report, nil
}
