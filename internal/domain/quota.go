package domain

import "time"

// Tool identifies a monitored CLI.
type Tool string

const (
	ToolClaude Tool = "claude"
	ToolCodex  Tool = "codex"
)

func (t Tool) DisplayName() string {
	switch t {
	case ToolClaude:
		return "Claude"
	case ToolCodex:
		return "Codex"
	default:
		return string(t)
	}
}

// QuotaKind names a single tracked quota window. The two tools expose
// different quota sets.
type QuotaKind string

const (
	QuotaSession    QuotaKind = "session"
	QuotaWeekAll    QuotaKind = "week_all"
	QuotaWeekSonnet QuotaKind = "week_sonnet"
	QuotaFiveHour   QuotaKind = "five_hour"
	QuotaWeekly     QuotaKind = "weekly"
)

func (k QuotaKind) DisplayName() string {
	switch k {
	case QuotaSession:
		return "Session"
	case QuotaWeekAll:
		return "Week (all models)"
	case QuotaWeekSonnet:
		return "Week (Sonnet)"
	case QuotaFiveHour:
		return "5h limit"
	case QuotaWeekly:
		return "Weekly limit"
	default:
		return string(k)
	}
}

// Period returns the fixed window length for this quota kind. The length is
// domain knowledge about each quota type, never derived from a reset time.
func (k QuotaKind) Period() time.Duration {
	switch k {
	case QuotaSession, QuotaFiveHour:
		return 5 * time.Hour
	default:
		return 7 * 24 * time.Hour
	}
}

// Quotas lists the kinds a tool reports, in display order.
func (t Tool) Quotas() []QuotaKind {
	switch t {
	case ToolClaude:
		return []QuotaKind{QuotaSession, QuotaWeekAll, QuotaWeekSonnet}
	case ToolCodex:
		return []QuotaKind{QuotaFiveHour, QuotaWeekly}
	default:
		return nil
	}
}
