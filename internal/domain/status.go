package domain

// BudgetStatus classifies projected usage relative to configured thresholds.
type BudgetStatus string

const (
	StatusUnknown     BudgetStatus = "unknown"
	StatusUnderBudget BudgetStatus = "under_budget"
	StatusOnTrack     BudgetStatus = "on_track"
	StatusOverBudget  BudgetStatus = "over_budget"
)

// rank orders statuses for worst-status aggregation:
// OverBudget > OnTrack > UnderBudget > Unknown.
func (s BudgetStatus) rank() int {
	switch s {
	case StatusOverBudget:
		return 3
	case StatusOnTrack:
		return 2
	case StatusUnderBudget:
		return 1
	default:
		return 0
	}
}

// Indicator returns the single-character marker used by status displays.
func (s BudgetStatus) Indicator() string {
	switch s {
	case StatusUnderBudget:
		return "●"
	case StatusOnTrack:
		return "◐"
	case StatusOverBudget:
		return "◆"
	default:
		return "○"
	}
}

// Worse returns the higher-ranked of the two statuses.
func (s BudgetStatus) Worse(other BudgetStatus) BudgetStatus {
	if other.rank() > s.rank() {
		return other
	}
	return s
}

// WorstStatus aggregates projections to a single status. An empty set
// collapses to Unknown.
func WorstStatus(projections []ProjectedUsage) BudgetStatus {
	worst := StatusUnknown
	for _, p := range projections {
		worst = worst.Worse(p.Status)
	}
	return worst
}
