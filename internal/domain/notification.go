package domain

import (
	"fmt"
	"time"
)

// Severity ranks a notification. A projection that qualifies for both levels
// only triggers OverBudget, never both.
type Severity string

const (
	SeverityApproaching Severity = "approaching"
	SeverityOverBudget  Severity = "over_budget"
)

// NotificationEvent is produced once per qualifying projection and consumed
// once by the delivery collaborator.
type NotificationEvent struct {
	Tool             Tool
	Kind             QuotaKind
	Severity         Severity
	ProjectedPercent float64
	ResetAt          time.Time
}

func (e NotificationEvent) Title() string {
	switch e.Severity {
	case SeverityOverBudget:
		return fmt.Sprintf("%s Over Budget", e.Kind.DisplayName())
	default:
		return fmt.Sprintf("%s Approaching Budget", e.Kind.DisplayName())
	}
}

func (e NotificationEvent) Body() string {
	return fmt.Sprintf("Projected %d%% usage at end of period", int(e.ProjectedPercent))
}
