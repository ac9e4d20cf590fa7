package application

import (
	"testing"
	"time"

	"github.com/bnema/quota-sentinel/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testThresholds = NotifyThresholds{Approaching: 100, OverBudget: 115}

func TestNotificationLogDedupAcrossCycles(t *testing.T) {
	log := NewNotificationLog()
	resetAt := time.Date(2026, 2, 14, 18, 0, 0, 0, time.UTC)

	assert.True(t, log.ShouldNotify(domain.ToolClaude, domain.QuotaSession, domain.SeverityApproaching, resetAt))

	log.Record(domain.NotificationEvent{
		Tool:     domain.ToolClaude,
		Kind:     domain.QuotaSession,
		Severity: domain.SeverityApproaching,
		ResetAt:  resetAt,
	})

	assert.False(t, log.ShouldNotify(domain.ToolClaude, domain.QuotaSession, domain.SeverityApproaching, resetAt))

	// A changed reset instant signals a new period and re-arms the alert.
	newReset := resetAt.Add(5 * time.Hour)
	assert.True(t, log.ShouldNotify(domain.ToolClaude, domain.QuotaSession, domain.SeverityApproaching, newReset))
}

func TestNotificationLogKeysAreIndependent(t *testing.T) {
	log := NewNotificationLog()
	resetAt := time.Date(2026, 2, 14, 18, 0, 0, 0, time.UTC)

	log.Record(domain.NotificationEvent{
		Tool:     domain.ToolClaude,
		Kind:     domain.QuotaSession,
		Severity: domain.SeverityApproaching,
		ResetAt:  resetAt,
	})

	assert.True(t, log.ShouldNotify(domain.ToolClaude, domain.QuotaSession, domain.SeverityOverBudget, resetAt))
	assert.True(t, log.ShouldNotify(domain.ToolCodex, domain.QuotaSession, domain.SeverityApproaching, resetAt))
	assert.True(t, log.ShouldNotify(domain.ToolClaude, domain.QuotaWeekAll, domain.SeverityApproaching, resetAt))
}

func TestPendingEventsOverBudgetWinsOverApproaching(t *testing.T) {
	log := NewNotificationLog()
	now := time.Date(2026, 2, 14, 12, 0, 0, 0, time.UTC)

	projections := []domain.ProjectedUsage{
		{
			Kind:             domain.QuotaSession,
			ProjectedPercent: 130, // qualifies for both levels
			Status:           domain.StatusOverBudget,
			Remaining:        2 * time.Hour,
		},
	}

	events := log.pendingEvents(domain.ToolClaude, projections, testThresholds, now)
	require.Len(t, events, 1)
	assert.Equal(t, domain.SeverityOverBudget, events[0].Severity)
	assert.Equal(t, now.Add(2*time.Hour), events[0].ResetAt)
}

func TestPendingEventsBelowThresholdsAreSilent(t *testing.T) {
	log := NewNotificationLog()
	now := time.Date(2026, 2, 14, 12, 0, 0, 0, time.UTC)

	projections := []domain.ProjectedUsage{
		{Kind: domain.QuotaSession, ProjectedPercent: 80, Remaining: time.Hour},
	}

	assert.Empty(t, log.pendingEvents(domain.ToolClaude, projections, testThresholds, now))
}

func TestPendingEventsRespectRecordedDelivery(t *testing.T) {
	log := NewNotificationLog()
	now := time.Date(2026, 2, 14, 12, 0, 0, 0, time.UTC)

	projections := []domain.ProjectedUsage{
		{Kind: domain.QuotaWeekAll, ProjectedPercent: 104, Remaining: 36 * time.Hour},
	}

	events := log.pendingEvents(domain.ToolClaude, projections, testThresholds, now)
	require.Len(t, events, 1)
	assert.Equal(t, domain.SeverityApproaching, events[0].Severity)

	log.Record(events[0])

	// Same cycle timing: silent now.
	assert.Empty(t, log.pendingEvents(domain.ToolClaude, projections, testThresholds, now))
}
