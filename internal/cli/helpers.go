package cli

import (
	"io"
	"os"
	"time"

	"golang.org/x/term"
)

// clock returns the time source for progress output. RAILSKIT_NOW pins it
// so transcripts print stable durations.
func clock() func() time.Time {
	if override := os.Getenv("RAILSKIT_NOW"); override != "" {
		if t, err := time.Parse(time.RFC3339, override); err == nil {
			return func() time.Time { return t }
		}
	}
	return time.Now
}

func writerIsTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return term.IsTerminal(int(f.Fd()))
}

// useColor honors NO_COLOR and only colors terminals.
func useColor(w io.Writer) bool {
	if _, ok := os.LookupEnv("NO_COLOR"); ok {
		return false
	}
	return writerIsTerminal(w)
}

// terminalWidth reports the column count of w, or 0 when w is not a terminal.
func terminalWidth(w io.Writer) int {
	f, ok := w.(*os.File)
	if !ok || !term.IsTerminal(int(f.Fd())) {
		return 0
	}
	width, _, err := term.GetSize(int(f.Fd()))
	if err != nil {
		return 0
	}
	return width
}
