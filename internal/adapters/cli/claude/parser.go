// Package claude fetches and parses quota usage from the Claude Code CLI by
// driving its interactive /usage screen.
package claude

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/bnema/quota-sentinel/internal/domain"
)

var (
	percentRe = regexp.MustCompile(`(\d+)%\s+used`)
	resetRe   = regexp.MustCompile(`Resets\s+([^\n]+)`)
)

// Parse extracts quota samples from the stripped text of the /usage screen.
// The screen is scanned line by line: section headers switch the target
// quota, and percentage or reset lines attach to whatever section is active.
// Repeated sections overwrite earlier ones, so a redrawn screen yields the
// final values. Zero matches is a valid result, not an error.
func Parse(text string) domain.Reading {
	reading := domain.NewReading(domain.ToolClaude)

	var section domain.QuotaKind
	inSection := false

	for _, line := range strings.Split(text, "\n") {
		lower := strings.ToLower(line)

		switch {
		case strings.Contains(lower, "current session"):
			section, inSection = domain.QuotaSession, true
		case strings.Contains(lower, "current week") && strings.Contains(lower, "all models"):
			section, inSection = domain.QuotaWeekAll, true
		case strings.Contains(lower, "current week") && strings.Contains(lower, "sonnet"):
			section, inSection = domain.QuotaWeekSonnet, true
		case strings.Contains(lower, "extra usage"):
			inSection = false
			if strings.Contains(lower, "not enabled") {
				reading.ExtraUsageEnabled = false
			} else if strings.Contains(lower, "enabled") {
				reading.ExtraUsageEnabled = true
			}
		}

		if !inSection {
			continue
		}

		if m := percentRe.FindStringSubmatch(line); m != nil {
			if pct, err := strconv.ParseFloat(m[1], 64); err == nil {
				reading.SetPercent(section, pct)
			}
		}
		if m := resetRe.FindStringSubmatch(line); m != nil {
			reading.SetResetText(section, strings.TrimSpace(m[1]))
		}
	}

	return reading
}
