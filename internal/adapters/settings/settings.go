// Package settings persists monitor configuration as a TOML file and
// validates it on both load and save.
package settings

import (
	"errors"
	"fmt"
	"strings"
)

// RefreshIntervals are the accepted polling intervals, in minutes.
var RefreshIntervals = []int{5, 15, 30, 60}

// Settings is the validated monitor configuration.
type Settings struct {
	RefreshIntervalMinutes int
	ThresholdUnderBudget   float64
	ThresholdOnTrack       float64
	NotificationsEnabled   bool
	NotifyApproachingPct   float64
	NotifyOverBudgetPct    float64
	ClaudePath             string
	CodexPath              string
}

func Default() Settings {
	return Settings{
		RefreshIntervalMinutes: 15,
		ThresholdUnderBudget:   85,
		ThresholdOnTrack:       115,
		NotificationsEnabled:   true,
		NotifyApproachingPct:   100,
		NotifyOverBudgetPct:    115,
	}
}

// Validate checks every field and reports all violations at once, joined
// into a single error.
func (s Settings) Validate() error {
	var problems []string

	if !validInterval(s.RefreshIntervalMinutes) {
		problems = append(problems, fmt.Sprintf("refresh interval must be one of %v minutes", RefreshIntervals))
	}
	if s.ThresholdUnderBudget < 1 || s.ThresholdUnderBudget > 99 {
		problems = append(problems, "under budget threshold must be between 1 and 99")
	}
	if s.ThresholdOnTrack < 2 || s.ThresholdOnTrack > 200 {
		problems = append(problems, "on track threshold must be between 2 and 200")
	}
	if s.ThresholdUnderBudget >= s.ThresholdOnTrack {
		problems = append(problems, "under budget threshold must be less than on track threshold")
	}
	if s.NotifyApproachingPct < 1 || s.NotifyApproachingPct > 200 {
		problems = append(problems, "approaching notification must be between 1 and 200")
	}
	if s.NotifyOverBudgetPct < 1 || s.NotifyOverBudgetPct > 200 {
		problems = append(problems, "over budget notification must be between 1 and 200")
	}
	if s.NotifyOverBudgetPct < s.NotifyApproachingPct {
		problems = append(problems, "over budget notification must be >= approaching notification")
	}

	if len(problems) == 0 {
		return nil
	}
	return errors.New(strings.Join(problems, ", "))
}

func validInterval(minutes int) bool {
	for _, v := range RefreshIntervals {
		if v == minutes {
			return true
		}
	}
	return false
}
