package claude

import (
	"context"
	"errors"
	"os"
	"strings"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/bnema/quota-sentinel/internal/adapters/term"
	"github.com/bnema/quota-sentinel/internal/domain"
)

const (
	defaultBinary = "claude"
	binaryEnv     = "CLAUDE_PATH"

	ptyRows      = 24
	ptyCols      = 80
	fetchTimeout = 30 * time.Second
)

// Source drives the Claude Code CLI's /usage screen through a pty.
type Source struct {
	driver *term.Driver
	binary string
	log    *logrus.Logger
}

// NewSource builds a Claude usage source. The binary path resolves in order:
// CLAUDE_PATH env var, the configured path, then "claude" from PATH.
func NewSource(driver *term.Driver, binary string, log *logrus.Logger) *Source {
	if env := os.Getenv(binaryEnv); env != "" {
		binary = env
	}
	if binary == "" {
		binary = defaultBinary
	}
	if log == nil {
		log = logrus.StandardLogger()
	}
	return &Source{driver: driver, binary: binary, log: log}
}

func (s *Source) Tool() domain.Tool { return domain.ToolClaude }

// Fetch runs `claude /usage` and parses the resulting screen. A timeout with
// usable partial output is downgraded to a successful reading.
func (s *Source) Fetch(ctx context.Context) (domain.Reading, error) {
	text, err := s.driver.Fetch(ctx, s.profile())
	if err != nil && !errors.Is(err, term.ErrTimeout) {
		return domain.Reading{}, err
	}

	reading := Parse(text)
	if err != nil {
		if reading.Empty() {
			return domain.Reading{}, err
		}
		s.log.WithError(err).Warn("claude: using partial output captured before timeout")
	}
	if reading.Empty() {
		s.log.Warn("claude: no usage percentages found in /usage output")
	}
	return reading, nil
}

// profile returns a fresh drive profile. The completion check is stateful
// within one fetch: the final screen only counts once the loading indicator
// has been seen and has disappeared again.
func (s *Source) profile() term.Profile {
	sawLoading := false
	return term.Profile{
		Tool:    string(domain.ToolClaude),
		Binary:  s.binary,
		Args:    []string{"/usage"},
		Rows:    ptyRows,
		Cols:    ptyCols,
		Timeout: fetchTimeout,
		Complete: func(screen string) bool {
			if strings.Contains(screen, "Loading usage data") {
				sawLoading = true
				return false
			}
			return sawLoading &&
				strings.Contains(screen, "% used") &&
				strings.Contains(screen, "Current session") &&
				strings.Contains(screen, "Extra usage")
		},
	}
}
