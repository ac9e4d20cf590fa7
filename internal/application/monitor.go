package application

import (
	"context"
	"sync"

	"github.com/bnema/quota-sentinel/internal/domain"
	"github.com/bnema/quota-sentinel/internal/ports"
)

// Monitor runs one poll cycle across all registered usage sources and turns
// readings into projections and pending notification events. Sources are
// fully independent: an error on one never hides results from the others.
type Monitor struct {
	sources    []ports.UsageSource
	log        *NotificationLog
	clock      ports.Clock
	policy     domain.BudgetPolicy
	thresholds NotifyThresholds
}

func NewMonitor(sources []ports.UsageSource, log *NotificationLog, clock ports.Clock, policy domain.BudgetPolicy, thresholds NotifyThresholds) *Monitor {
	if clock == nil {
		clock = ports.SystemClock{}
	}
	if log == nil {
		log = NewNotificationLog()
	}

	return &Monitor{
		sources:    sources,
		log:        log,
		clock:      clock,
		policy:     policy,
		thresholds: thresholds,
	}
}

// Refresh fetches every source concurrently and assembles a Report. The only
// error surfaced at the top level is per-tool, inside the report; the cycle
// itself always yields whatever succeeded.
func (m *Monitor) Refresh(ctx context.Context) Report {
	reports := make([]ToolReport, len(m.sources))

	var wg sync.WaitGroup
	for i, source := range m.sources {
		wg.Add(1)
		go func(i int, source ports.UsageSource) {
			defer wg.Done()
			reports[i] = m.refreshTool(ctx, source)
		}(i, source)
	}
	wg.Wait()

	return Report{Tools: reports, GeneratedAt: m.clock.Now()}
}

func (m *Monitor) refreshTool(ctx context.Context, source ports.UsageSource) ToolReport {
	report := ToolReport{Tool: source.Tool()}

	reading, err := source.Fetch(ctx)
	if err != nil {
		report.Err = err
		return report
	}

	now := m.clock.Now()
	reading.CapturedAt = now
	report.Reading = &reading
	report.Projections = domain.ProjectReading(reading, now, m.policy)
	report.Pending = m.log.pendingEvents(source.Tool(), report.Projections, m.thresholds, now)

	return report
}

// MarkNotified records a delivered event so later cycles in the same reset
// period stay silent.
func (m *Monitor) MarkNotified(event domain.NotificationEvent) {
	m.log.Record(event)
}
