package status

import (
	"fmt"
	"math"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/bnema/quota-sentinel/internal/application"
	"github.com/bnema/quota-sentinel/internal/domain"
)

const barWidth = 20

func renderView(report application.Report, s styles) string {
	worst := report.WorstStatus()
	lines := []string{
		s.title.Render("Quota Sentinel"),
		s.header.Render(fmt.Sprintf("overall: %s %s", worst.Indicator(), statusLabel(worst))),
	}

	if len(report.Tools) == 0 {
		lines = append(lines, s.empty.Render("No tools configured."))
		return lipgloss.JoinVertical(lipgloss.Left, lines...)
	}

	for _, tool := range report.Tools {
		lines = append(lines, s.section.Render(renderTool(tool, s)))
	}

	return lipgloss.JoinVertical(lipgloss.Left, lines...)
}

func renderTool(tool application.ToolReport, s styles) string {
	parts := []string{
		s.tool.Render(fmt.Sprintf("%s %s", tool.WorstStatus().Indicator(), tool.Tool.DisplayName())),
	}

	if tool.Err != nil {
		parts = append(parts, s.warning.Render("fetch failed: "+tool.Err.Error()))
		return lipgloss.JoinVertical(lipgloss.Left, parts...)
	}

	projections := make(map[domain.QuotaKind]domain.ProjectedUsage, len(tool.Projections))
	for _, p := range tool.Projections {
		projections[p.Kind] = p
	}

	observed := false
	for _, kind := range tool.Tool.Quotas() {
		sample, ok := tool.Reading.Sample(kind)
		if !ok {
			continue
		}
		observed = true

		if p, ok := projections[kind]; ok {
			parts = append(parts, quotaLine(p, s))
			continue
		}
		parts = append(parts, unprojectedLine(kind, sample, s))
	}

	if !observed {
		parts = append(parts, s.detail.Render("no usage data this cycle"))
	}

	if tool.Tool == domain.ToolClaude && tool.Reading.ExtraUsageEnabled {
		parts = append(parts, s.detail.Render("extra usage: enabled"))
	}

	return lipgloss.JoinVertical(lipgloss.Left, parts...)
}

func quotaLine(p domain.ProjectedUsage, s styles) string {
	statusStyle := s.forStatus(p.Status)

	label := s.quotaKey.Render(fmt.Sprintf("%-18s", p.Kind.DisplayName()+":"))
	bar := renderProgressBar(p.CurrentPercent, barWidth, s)
	meta := statusStyle.Render(fmt.Sprintf("%3.0f%% used, projected %3.0f%% %s",
		p.CurrentPercent, p.ProjectedPercent, p.Status.Indicator()))
	reset := s.reset.Render(fmt.Sprintf("(resets in %s)", p.FormatRemaining()))

	return lipgloss.JoinHorizontal(lipgloss.Top, label, " ", bar, " ", meta, " ", reset)
}

// unprojectedLine covers samples whose reset text never resolved: the
// current percentage is still worth showing even without a projection.
func unprojectedLine(kind domain.QuotaKind, sample domain.Sample, s styles) string {
	label := s.quotaKey.Render(fmt.Sprintf("%-18s", kind.DisplayName()+":"))
	bar := renderProgressBar(sample.UsedPercent, barWidth, s)
	meta := s.unknown.Render(fmt.Sprintf("%3.0f%% used %s", sample.UsedPercent, domain.StatusUnknown.Indicator()))

	line := lipgloss.JoinHorizontal(lipgloss.Top, label, " ", bar, " ", meta)
	if sample.ResetText != "" {
		line = lipgloss.JoinHorizontal(lipgloss.Top, line, " ", s.reset.Render(fmt.Sprintf("(resets %s)", sample.ResetText)))
	}
	return line
}

func renderProgressBar(usedPercent float64, width int, s styles) string {
	if width <= 0 {
		return ""
	}

	used := clampPercent(usedPercent)
	filled := int(math.Round(float64(width) * used / 100.0))
	if filled < 0 {
		filled = 0
	}
	if filled > width {
		filled = width
	}

	fillSegment := s.barFill.Render(strings.Repeat("=", filled))
	emptySegment := s.barEmpty.Render(strings.Repeat("-", width-filled))

	return lipgloss.JoinHorizontal(
		lipgloss.Top,
		s.barBracket.Render("["),
		fillSegment,
		emptySegment,
		s.barBracket.Render("]"),
	)
}

func clampPercent(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 100 {
		return 100
	}
	return v
}

func statusLabel(status domain.BudgetStatus) string {
	switch status {
	case domain.StatusUnderBudget:
		return "under budget"
	case domain.StatusOnTrack:
		return "on track"
	case domain.StatusOverBudget:
		return "over budget"
	default:
		return "unknown"
	}
}
