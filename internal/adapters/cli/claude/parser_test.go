package claude

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bnema/quota-sentinel/internal/domain"
)

const usageScreen = `
 Usage

 Current session
 ███░░░░░░░░░░░░░░░░░ 12% used
 Resets 6:59pm (America/Sao_Paulo)

 Current week (all models)
 █░░░░░░░░░░░░░░░░░░░ 3% used
 Resets Dec 8 at 4pm (America/Sao_Paulo)

 Current week (Sonnet)
 ░░░░░░░░░░░░░░░░░░░░ 0% used
 Resets Dec 8 at 4pm (America/Sao_Paulo)

 Extra usage: not enabled
`

func TestParseUsageScreen(t *testing.T) {
	reading := Parse(usageScreen)

	require.Equal(t, domain.ToolClaude, reading.Tool)

	session, ok := reading.Sample(domain.QuotaSession)
	require.True(t, ok)
	assert.Equal(t, 12.0, session.UsedPercent)
	assert.Equal(t, "6:59pm (America/Sao_Paulo)", session.ResetText)

	weekAll, ok := reading.Sample(domain.QuotaWeekAll)
	require.True(t, ok)
	assert.Equal(t, 3.0, weekAll.UsedPercent)
	assert.Equal(t, "Dec 8 at 4pm (America/Sao_Paulo)", weekAll.ResetText)

	weekSonnet, ok := reading.Sample(domain.QuotaWeekSonnet)
	require.True(t, ok)
	assert.Equal(t, 0.0, weekSonnet.UsedPercent)

	assert.False(t, reading.ExtraUsageEnabled)
}

func TestParseExtraUsageEnabled(t *testing.T) {
	reading := Parse("Current session\n5% used\nExtra usage: enabled\n")
	assert.True(t, reading.ExtraUsageEnabled)
}

func TestParseRedrawnScreenKeepsLastValues(t *testing.T) {
	text := `
Current session
10% used
Current session
37% used
Resets 7pm (UTC)
`
	reading := Parse(text)
	session, ok := reading.Sample(domain.QuotaSession)
	require.True(t, ok)
	assert.Equal(t, 37.0, session.UsedPercent)
	assert.Equal(t, "7pm (UTC)", session.ResetText)
}

func TestParseIgnoresPercentagesOutsideSections(t *testing.T) {
	reading := Parse("battery at 88% used\nnothing else here\n")
	assert.True(t, reading.Empty())
}

func TestParseEmptyOutput(t *testing.T) {
	reading := Parse("")
	assert.True(t, reading.Empty())
	assert.False(t, reading.ExtraUsageEnabled)
}

func TestParseResetTextAloneIsNotObserved(t *testing.T) {
	reading := Parse("Current session\nResets 7pm (UTC)\n")
	_, ok := reading.Sample(domain.QuotaSession)
	assert.False(t, ok)
	assert.True(t, reading.Empty())
}
