package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testPolicy = BudgetPolicy{UnderBudgetMax: 85, OnTrackMax: 115}

func TestProjectLinearExtrapolation(t *testing.T) {
	now := time.Date(2026, 2, 14, 12, 0, 0, 0, time.UTC)
	// 3h elapsed of a 5h session window, 2h remaining.
	resetAt := now.Add(2 * time.Hour)

	proj := Project(QuotaSession, 20, resetAt, now, testPolicy)

	assert.InDelta(t, 20*5.0/3.0, proj.ProjectedPercent, 0.001)
	assert.Equal(t, StatusUnderBudget, proj.Status)
	assert.Equal(t, 2*time.Hour, proj.Remaining)
}

func TestProjectMonotonicity(t *testing.T) {
	now := time.Date(2026, 2, 14, 12, 0, 0, 0, time.UTC)
	resetAt := now.Add(2 * time.Hour)

	lower := Project(QuotaSession, 20, resetAt, now, testPolicy)
	higher := Project(QuotaSession, 40, resetAt, now, testPolicy)
	assert.Greater(t, higher.ProjectedPercent, lower.ProjectedPercent)

	// Same percent, longer period (weekly vs session) projects higher for the
	// same elapsed time.
	weeklyReset := now.Add(7*24*time.Hour - 3*time.Hour)
	weekly := Project(QuotaWeekAll, 20, weeklyReset, now, testPolicy)
	assert.Greater(t, weekly.ProjectedPercent, lower.ProjectedPercent)

	// More elapsed time projects lower.
	laterReset := now.Add(time.Hour) // 4h elapsed of 5h
	later := Project(QuotaSession, 20, laterReset, now, testPolicy)
	assert.Less(t, later.ProjectedPercent, lower.ProjectedPercent)
}

func TestProjectStatusThresholds(t *testing.T) {
	now := time.Date(2026, 2, 14, 12, 0, 0, 0, time.UTC)
	// Half the session window elapsed: projected = current * 2.
	resetAt := now.Add(150 * time.Minute)

	tests := []struct {
		name    string
		percent float64
		want    BudgetStatus
	}{
		{name: "well under", percent: 30, want: StatusUnderBudget},
		{name: "on track", percent: 50, want: StatusOnTrack},
		{name: "over", percent: 70, want: StatusOverBudget},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			proj := Project(QuotaSession, tt.percent, resetAt, now, testPolicy)
			assert.Equal(t, tt.want, proj.Status)
		})
	}
}

func TestProjectNearResetIgnoresPolicy(t *testing.T) {
	now := time.Date(2026, 2, 14, 12, 0, 0, 0, time.UTC)
	resetAt := now.Add(2 * time.Minute)

	// 99% would be OnTrack by policy if extrapolated; near reset it splits at
	// the 100% line only.
	under := Project(QuotaSession, 99, resetAt, now, testPolicy)
	assert.Equal(t, StatusUnderBudget, under.Status)
	assert.Equal(t, 99.0, under.ProjectedPercent)

	over := Project(QuotaSession, 101, resetAt, now, testPolicy)
	assert.Equal(t, StatusOverBudget, over.Status)
}

func TestProjectNearResetClampsRemaining(t *testing.T) {
	now := time.Date(2026, 2, 14, 12, 0, 0, 0, time.UTC)
	resetAt := now.Add(-10 * time.Minute)

	proj := Project(QuotaSession, 40, resetAt, now, testPolicy)
	assert.Equal(t, time.Duration(0), proj.Remaining)
	assert.Equal(t, StatusUnderBudget, proj.Status)
}

func TestProjectZeroUsageEarlyWindowIsUnknown(t *testing.T) {
	now := time.Date(2026, 2, 14, 12, 0, 0, 0, time.UTC)
	// 10 minutes elapsed of a 5h window: under the 10% signal cutoff.
	resetAt := now.Add(5*time.Hour - 10*time.Minute)

	proj := Project(QuotaSession, 0, resetAt, now, testPolicy)
	assert.Equal(t, StatusUnknown, proj.Status)
	assert.Equal(t, 0.0, proj.ProjectedPercent)
}

func TestProjectZeroUsageSustainedIsUnderBudget(t *testing.T) {
	now := time.Date(2026, 2, 14, 12, 0, 0, 0, time.UTC)
	// 2h elapsed of 5h: zero usage past the early window is a confident signal.
	resetAt := now.Add(3 * time.Hour)

	proj := Project(QuotaSession, 0, resetAt, now, testPolicy)
	assert.Equal(t, StatusUnderBudget, proj.Status)
	assert.Equal(t, 0.0, proj.ProjectedPercent)
}

func TestProjectNonPositiveElapsedIsUnknown(t *testing.T) {
	now := time.Date(2026, 2, 14, 12, 0, 0, 0, time.UTC)
	// Reset so far out the period has not started yet.
	resetAt := now.Add(5*time.Hour + 30*time.Minute)

	proj := Project(QuotaSession, 42, resetAt, now, testPolicy)
	assert.Equal(t, StatusUnknown, proj.Status)
	assert.Equal(t, 42.0, proj.ProjectedPercent)
}

func TestProjectReadingSkipsUnresolvableResets(t *testing.T) {
	now := time.Date(2026, 2, 14, 12, 0, 0, 0, time.UTC)

	reading := NewReading(ToolCodex)
	reading.SetPercent(QuotaFiveHour, 10)
	reading.SetResetText(QuotaFiveHour, "13:35") // unqualified, unresolvable
	reading.SetPercent(QuotaWeekly, 20)
	reading.SetResetText(QuotaWeekly, "6:59pm (America/Sao_Paulo)")

	projections := ProjectReading(reading, now, testPolicy)
	require.Len(t, projections, 1)
	assert.Equal(t, QuotaWeekly, projections[0].Kind)
}

func TestProjectReadingIgnoresResetOnlySamples(t *testing.T) {
	now := time.Date(2026, 2, 14, 12, 0, 0, 0, time.UTC)

	reading := NewReading(ToolClaude)
	reading.SetResetText(QuotaSession, "6:59pm (America/Sao_Paulo)")

	assert.Empty(t, ProjectReading(reading, now, testPolicy))
	assert.True(t, reading.Empty())
}
