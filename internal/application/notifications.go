package application

import (
	"sync"
	"time"

	"github.com/bnema/quota-sentinel/internal/domain"
)

// NotifyThresholds are the projected-percent levels at which notifications
// fire. OverBudget is always evaluated first so a projection qualifying for
// both levels only triggers the higher-priority alert.
type NotifyThresholds struct {
	Approaching float64
	OverBudget  float64
}

func (t NotifyThresholds) severityFor(projectedPercent float64) (domain.Severity, bool) {
	if projectedPercent >= t.OverBudget {
		return domain.SeverityOverBudget, true
	}
	if projectedPercent >= t.Approaching {
		return domain.SeverityApproaching, true
	}
	return "", false
}

type notificationKey struct {
	tool     domain.Tool
	kind     domain.QuotaKind
	severity domain.Severity
}

// NotificationLog tracks, per (tool, quota, severity), the reset instant for
// which a notification was last sent, so repeated polling cycles within the
// same period stay silent. It lives for the whole process and is never
// persisted. ShouldNotify and Record are separate critical sections; a race
// between concurrent cycles for the same key at worst duplicates one
// notification.
type NotificationLog struct {
	mu   sync.Mutex
	sent map[notificationKey]time.Time
}

func NewNotificationLog() *NotificationLog {
	return &NotificationLog{sent: make(map[notificationKey]time.Time)}
}

// ShouldNotify is true when the key has never fired, or when the candidate
// reset instant differs from the recorded one: a changed reset instant means
// a new period has begun and re-arms the alert.
func (l *NotificationLog) ShouldNotify(tool domain.Tool, kind domain.QuotaKind, severity domain.Severity, resetAt time.Time) bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	last, ok := l.sent[notificationKey{tool: tool, kind: kind, severity: severity}]
	if !ok {
		return true
	}
	return !last.Equal(resetAt)
}

// Record is called only after successful delivery.
func (l *NotificationLog) Record(event domain.NotificationEvent) {
	l.mu.Lock()
	defer l.mu.Unlock()

	key := notificationKey{tool: event.Tool, kind: event.Kind, severity: event.Severity}
	l.sent[key] = event.ResetAt
}

// pendingEvents evaluates one tool's projections against the thresholds and
// the log. The dedup key instant is derived from now + remaining rather than
// the originally resolved reset instant; across polling cycles the two can
// drift by the poll interval, which is an inherited approximation kept as-is.
func (l *NotificationLog) pendingEvents(tool domain.Tool, projections []domain.ProjectedUsage, thresholds NotifyThresholds, now time.Time) []domain.NotificationEvent {
	var events []domain.NotificationEvent
	for _, proj := range projections {
		severity, ok := thresholds.severityFor(proj.ProjectedPercent)
		if !ok {
			continue
		}

		resetAt := now.Add(proj.Remaining)
		if !l.ShouldNotify(tool, proj.Kind, severity, resetAt) {
			continue
		}

		events = append(events, domain.NotificationEvent{
			Tool:             tool,
			Kind:             proj.Kind,
			Severity:         severity,
			ProjectedPercent: proj.ProjectedPercent,
			ResetAt:          resetAt,
		})
	}
	return events
}
