// Package codex fetches and parses quota usage from the Codex CLI by driving
// its interactive /status screen.
package codex

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/bnema/quota-sentinel/internal/domain"
)

// statusLineRe matches lines like:
//
//	5h limit:     [████████████████████] 99% left (resets 13:35)
//	Weekly limit: [████████████████░░░░] 80% left (resets 13:17)
var statusLineRe = regexp.MustCompile(`(?i)(5h limit|weekly limit):.*?(\d+)%\s+left\s*\(resets\s+([^)]+)\)`)

// Parse extracts quota samples from the stripped text of the /status screen.
// Codex reports percent left; it is converted to percent consumed here so
// downstream code only sees one sign convention. Zero matches is a valid
// result, not an error.
func Parse(text string) domain.Reading {
	reading := domain.NewReading(domain.ToolCodex)

	for _, m := range statusLineRe.FindAllStringSubmatch(text, -1) {
		var kind domain.QuotaKind
		switch strings.ToLower(m[1]) {
		case "5h limit":
			kind = domain.QuotaFiveHour
		case "weekly limit":
			kind = domain.QuotaWeekly
		default:
			continue
		}

		left, err := strconv.ParseFloat(m[2], 64)
		if err != nil {
			continue
		}
		reading.SetPercent(kind, 100-left)
		reading.SetResetText(kind, strings.TrimSpace(m[3]))
	}

	return reading
}
