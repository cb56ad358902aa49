package timefmt

import (
	"fmt"
	"time"
)

// Duration renders d compactly for progress output: "850ms", "4.2s",
// "2m05s", "1h03m". Negative durations render as "0s".
func Duration(d time.Duration) string {
	if d <= 0 {
		return "0s"
	}
	if d < time.Millisecond {
		return "<1ms"
	}
	if d < time.Second {
		return fmt.Sprintf("%dms", d.Milliseconds())
	}
	if d < 10*time.Second {
		return fmt.Sprintf("%.1fs", d.Seconds())
	}
	if d < time.Minute {
		return fmt.Sprintf("%ds", int(d.Seconds()))
	}
	if d < time.Hour {
		minutes := int(d.Minutes())
		seconds := int(d.Seconds()) - minutes*60
		return fmt.Sprintf("%dm%02ds", minutes, seconds)
	}
	hours := int(d.Hours())
	minutes := int(d.Minutes()) - hours*60
	return fmt.Sprintf("%dh%02dm", hours, minutes)
}

// Since is Duration(now.Sub(start)); a zero now means time.Now().
func Since(start, now time.Time) string {
	if now.IsZero() {
		now = time.Now()
	}
	return Duration(now.Sub(start))
}
