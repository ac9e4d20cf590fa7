package domain

import (
	"fmt"
	"time"
)

// FormatDuration renders a remaining duration as days+hours, hours+minutes,
// or bare minutes. Anything negative reads "now": the window has already
// reset.
func FormatDuration(d time.Duration) string {
	total := int64(d.Seconds())
	if total < 0 {
		return "now"
	}

	days := total / 86400
	hours := (total % 86400) / 3600
	minutes := (total % 3600) / 60

	switch {
	case days > 0:
		return fmt.Sprintf("%dd %dh", days, hours)
	case hours > 0:
		return fmt.Sprintf("%dh %dm", hours, minutes)
	default:
		return fmt.Sprintf("%dm", minutes)
	}
}
