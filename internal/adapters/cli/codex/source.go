package codex

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/bnema/quota-sentinel/internal/adapters/term"
	"github.com/bnema/quota-sentinel/internal/domain"
)

const (
	defaultBinary = "codex"
	binaryEnv     = "CODEX_PATH"

	ptyRows      = 40
	ptyCols      = 120
	fetchTimeout = 45 * time.Second
	resendGrace  = 10 * time.Second

	// cursorFailure is the CLI's own message when it cannot operate in the
	// emulated terminal; matched case-insensitively.
	cursorFailure = "cursor position could not be read"
)

// readyMarkers are substrings that appear once the Codex prompt accepts
// input, so /status can be typed.
var readyMarkers = []string{
	"context left",
	"Tip: Start a fresh idea",
	"Tip: You can run any shell commands",
	"Tip: Paste an image",
	"Tip: Type / to open the command popup",
}

// Source drives the Codex CLI's /status screen through a pty.
type Source struct {
	driver *term.Driver
	binary string
	log    *logrus.Logger
}

// NewSource builds a Codex usage source. The binary path resolves in order:
// CODEX_PATH env var, the configured path, then "codex" from PATH.
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

func (s *Source) Tool() domain.Tool { return domain.ToolCodex }

// Fetch runs codex, types /status once the prompt is ready, and parses the
// resulting screen. A timeout with usable partial output is downgraded to a
// successful reading.
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
		s.log.WithError(err).Warn("codex: using partial output captured before timeout")
	}
	if reading.Empty() {
		s.log.Warn("codex: no usage percentages found in /status output")
	}
	return reading, nil
}

func (s *Source) profile() term.Profile {
	return term.Profile{
		Tool:   string(domain.ToolCodex),
		Binary: s.binary,
		// --yolo skips the Codex approval prompt, which otherwise blocks
		// the status fetch.
		Args:            []string{"--yolo"},
		Rows:            ptyRows,
		Cols:            ptyCols,
		Timeout:         fetchTimeout,
		Command:         "/status",
		ResendGrace:     resendGrace,
		ReadyMarkers:    readyMarkers,
		ContinueMarkers: []string{"press enter to continue"},
		Complete: func(screen string) bool {
			return strings.Contains(screen, "5h limit") &&
				strings.Contains(screen, "Weekly limit") &&
				strings.Contains(screen, "% left")
		},
		Failure: func(screen string) error {
			if strings.Contains(strings.ToLower(screen), cursorFailure) {
				return fmt.Errorf("%w: codex could not read cursor position", term.ErrTerminalIncompatible)
			}
			return nil
		},
	}
}
