package status

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/bnema/quota-sentinel/internal/domain"
)

type styles struct {
	title      lipgloss.Style
	header     lipgloss.Style
	tool       lipgloss.Style
	detail     lipgloss.Style
	warning    lipgloss.Style
	section    lipgloss.Style
	empty      lipgloss.Style
	quotaKey   lipgloss.Style
	reset      lipgloss.Style
	barBracket lipgloss.Style
	barFill    lipgloss.Style
	barEmpty   lipgloss.Style

	underBudget lipgloss.Style
	onTrack     lipgloss.Style
	overBudget  lipgloss.Style
	unknown     lipgloss.Style
}

func newStyles() styles {
	return styles{
		title:      lipgloss.NewStyle().Bold(true),
		header:     lipgloss.NewStyle().Foreground(lipgloss.Color("241")),
		tool:       lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("39")),
		detail:     lipgloss.NewStyle().Foreground(lipgloss.Color("252")),
		warning:    lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("203")),
		section:    lipgloss.NewStyle().MarginTop(1),
		empty:      lipgloss.NewStyle().Faint(true),
		quotaKey:   lipgloss.NewStyle().Foreground(lipgloss.Color("250")),
		reset:      lipgloss.NewStyle().Foreground(lipgloss.Color("245")),
		barBracket: lipgloss.NewStyle().Foreground(lipgloss.Color("244")),
		barFill:    lipgloss.NewStyle().Foreground(lipgloss.Color("159")),
		barEmpty:   lipgloss.NewStyle().Foreground(lipgloss.Color("238")),

		underBudget: lipgloss.NewStyle().Foreground(lipgloss.Color("78")),
		onTrack:     lipgloss.NewStyle().Foreground(lipgloss.Color("214")),
		overBudget:  lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("203")),
		unknown:     lipgloss.NewStyle().Foreground(lipgloss.Color("245")),
	}
}

func (s styles) forStatus(status domain.BudgetStatus) lipgloss.Style {
	switch status {
	case domain.StatusUnderBudget:
		return s.underBudget
	case domain.StatusOnTrack:
		return s.onTrack
	case domain.StatusOverBudget:
		return s.overBudget
	default:
		return s.unknown
	}
}
