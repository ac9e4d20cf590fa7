package application

import (
	"time"

	"github.com/bnema/quota-sentinel/internal/domain"
)

// ToolReport is the per-tool outcome of one poll cycle. Err set means the
// fetch produced no reading this cycle; callers retain prior displayed state.
type ToolReport struct {
	Tool        domain.Tool
	Reading     *domain.Reading
	Projections []domain.ProjectedUsage
	Pending     []domain.NotificationEvent
	Err         error
}

// WorstStatus aggregates this tool's projections; no projections means
// Unknown.
func (r ToolReport) WorstStatus() domain.BudgetStatus {
	return domain.WorstStatus(r.Projections)
}

// Report is one full poll cycle across all tools.
type Report struct {
	Tools       []ToolReport
	GeneratedAt time.Time
}

// WorstStatus is the single combined signal across both tools.
func (r Report) WorstStatus() domain.BudgetStatus {
	worst := domain.StatusUnknown
	for _, tool := range r.Tools {
		worst = worst.Worse(tool.WorstStatus())
	}
	return worst
}

// PendingNotifications flattens the per-tool events in tool order.
func (r Report) PendingNotifications() []domain.NotificationEvent {
	var events []domain.NotificationEvent
	for _, tool := range r.Tools {
		events = append(events, tool.Pending...)
	}
	return events
}
