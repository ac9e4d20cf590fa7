package term

import (
	"regexp"
	"strings"
)

// ansiRe matches CSI/OSC/simple escape sequences so marker detection can run
// on plain displayable text.
var ansiRe = regexp.MustCompile(`\x1b(?:[@-Z\\-_]|\[[0-?]*[ -/]*[@-~]|\][^\x07\x1b]*(?:\x07|\x1b\\)?)`)

// StripANSI removes terminal control sequences from s.
func StripANSI(s string) string {
	return ansiRe.ReplaceAllString(s, "")
}

const clearScreenSeq = "\x1b[2J"

// screenBuffer tracks two views of the child's output: the raw accumulator,
// which is never reset, and the current-screen view, which restarts at every
// clear-screen sequence so stale pre-clear content cannot pollute marker
// detection.
type screenBuffer struct {
	raw     strings.Builder
	current string
}

func (b *screenBuffer) Append(chunk string) {
	b.raw.WriteString(chunk)
	if strings.Contains(chunk, clearScreenSeq) {
		b.current = chunk
		return
	}
	b.current += chunk
}

// Current returns the ANSI-stripped current-screen view.
func (b *screenBuffer) Current() string {
	return StripANSI(b.current)
}

// Raw returns the ANSI-stripped full accumulator.
func (b *screenBuffer) Raw() string {
	return StripANSI(b.raw.String())
}

func containsAny(text string, markers []string) bool {
	for _, marker := range markers {
		if strings.Contains(text, marker) {
			return true
		}
	}
	return false
}
