package notify

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNotifyCommandPerPlatform(t *testing.T) {
	name, args := notifyCommand("linux", "Session Over Budget", "Projected 130% usage at end of period")
	assert.Equal(t, "notify-send", name)
	require.Len(t, args, 4)
	assert.Equal(t, "Session Over Budget", args[2])

	name, args = notifyCommand("darwin", "Session Over Budget", "body")
	assert.Equal(t, "osascript", name)
	require.Len(t, args, 2)
	assert.Contains(t, args[1], `"Session Over Budget"`)

	name, _ = notifyCommand("windows", "t", "b")
	assert.Empty(t, name)
}
