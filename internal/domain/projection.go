package domain

import "time"

// nearResetGuard is the remaining-time band inside which extrapolation is
// numerically unstable and the window is treated as effectively closed.
const nearResetGuard = 5 * time.Minute

// earlyWindowFraction is how much of a period must have elapsed before a
// flat 0% reading is trusted as a real UnderBudget signal.
const earlyWindowFraction = 0.1

// BudgetPolicy partitions the projected-percent axis into the three
// determinate statuses. Both values are operator-tunable thresholds.
type BudgetPolicy struct {
	UnderBudgetMax float64
	OnTrackMax     float64
}

// ProjectedUsage is the per-quota result of one projection pass. It is
// recomputed from a fresh reading every cycle and never mutated.
type ProjectedUsage struct {
	Kind             QuotaKind
	CurrentPercent   float64
	ProjectedPercent float64
	Status           BudgetStatus
	Remaining        time.Duration
}

// FormatRemaining renders the time until reset, clamping expired windows to
// "now" at presentation time.
func (p ProjectedUsage) FormatRemaining() string {
	return FormatDuration(p.Remaining)
}

// Project extrapolates a usage sample to the end of its quota period under a
// constant-rate assumption. The linear model is deliberately simple and is a
// poor fit for bursty usage; that inaccuracy is accepted.
//
// Priority order: near-reset guard, zero-usage rules, non-positive elapsed
// guard, then linear extrapolation classified against the policy.
func Project(kind QuotaKind, currentPercent float64, resetAt time.Time, now time.Time, policy BudgetPolicy) ProjectedUsage {
	period := kind.Period()
	periodStart := resetAt.Add(-period)
	elapsed := now.Sub(periodStart)
	remaining := resetAt.Sub(now)

	// The window is effectively closed: no more room for the rate to change,
	// so classify by a direct split at the 100% line instead of the policy.
	if remaining < nearResetGuard {
		status := StatusUnderBudget
		if currentPercent > 100 {
			status = StatusOverBudget
		}
		if remaining < 0 {
			remaining = 0
		}
		return ProjectedUsage{
			Kind:             kind,
			CurrentPercent:   currentPercent,
			ProjectedPercent: currentPercent,
			Status:           status,
			Remaining:        remaining,
		}
	}

	if currentPercent == 0 {
		status := StatusUnderBudget
		if elapsed.Seconds() < earlyWindowFraction*period.Seconds() {
			// Too little of the window has passed to trust a flat projection.
			status = StatusUnknown
		}
		return ProjectedUsage{
			Kind:           kind,
			CurrentPercent: 0,
			Status:         status,
			Remaining:      remaining,
		}
	}

	if elapsed <= 0 {
		// Clock skew or a reset time resolving to a future period start.
		return ProjectedUsage{
			Kind:             kind,
			CurrentPercent:   currentPercent,
			ProjectedPercent: currentPercent,
			Status:           StatusUnknown,
			Remaining:        remaining,
		}
	}

	projected := currentPercent * period.Seconds() / elapsed.Seconds()

	status := StatusOverBudget
	switch {
	case projected < policy.UnderBudgetMax:
		status = StatusUnderBudget
	case projected <= policy.OnTrackMax:
		status = StatusOnTrack
	}

	return ProjectedUsage{
		Kind:             kind,
		CurrentPercent:   currentPercent,
		ProjectedPercent: projected,
		Status:           status,
		Remaining:        remaining,
	}
}

// ProjectReading runs the projection for every observed sample whose reset
// text resolves. A sample with a percentage but no resolvable reset time is
// skipped: insufficient data for projection, not a failure.
func ProjectReading(reading Reading, now time.Time, policy BudgetPolicy) []ProjectedUsage {
	projections := make([]ProjectedUsage, 0, len(reading.Samples))
	for _, kind := range reading.Tool.Quotas() {
		sample, ok := reading.Sample(kind)
		if !ok {
			continue
		}
		resetAt, ok := ResolveResetText(sample.ResetText, now)
		if !ok {
			continue
		}
		projections = append(projections, Project(kind, sample.UsedPercent, resetAt, now, policy))
	}
	return projections
}
