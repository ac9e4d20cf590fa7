package term

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/exec"
	"strings"
	"time"

	"github.com/creack/pty"
	"github.com/sirupsen/logrus"
)

const (
	pollInterval = 100 * time.Millisecond
	drainQuiet   = 500 * time.Millisecond

	cursorPositionQuery = "\x1b[6n"
	cursorPositionReply = "\x1b[1;1R"
	deviceAttrsQuery    = "\x1b[c"
	deviceAttrsReply    = "\x1b[?1;0c"
)

type chunk struct {
	data string
	err  error
}

// Driver runs interactive CLIs inside a pseudo-terminal and extracts their
// text output.
type Driver struct {
	log *logrus.Logger
}

func NewDriver(log *logrus.Logger) *Driver {
	if log == nil {
		log = logrus.StandardLogger()
	}
	return &Driver{log: log}
}

// Fetch launches the CLI described by profile, answers its terminal queries,
// and returns the stripped text of its final screen. On timeout the partial
// text captured so far is returned together with ErrTimeout.
func (d *Driver) Fetch(ctx context.Context, profile Profile) (string, error) {
	cmd := exec.Command(profile.Binary, profile.Args...)
	cmd.Env = append(os.Environ(), "TERM=xterm-256color")
	cmd.Env = append(cmd.Env, profile.Env...)

	ptmx, err := pty.StartWithSize(cmd, &pty.Winsize{Rows: profile.Rows, Cols: profile.Cols})
	if err != nil {
		return "", fmt.Errorf("%w: %s: %v", ErrSpawnFailed, profile.Binary, err)
	}

	chunks := make(chan chunk, 64)
	go readLoop(ptmx, chunks)

	exited := make(chan struct{})
	go func() {
		_ = cmd.Wait()
		close(exited)
	}()

	text, err := d.drive(ctx, profile, ptmx, chunks, exited)

	// The child is killed unconditionally so a wedged CLI never outlives
	// the fetch.
	_ = cmd.Process.Kill()
	_ = ptmx.Close()
	go func() {
		for range chunks {
		}
	}()

	return text, err
}

func (d *Driver) drive(ctx context.Context, profile Profile, ptmx io.Writer, chunks <-chan chunk, exited <-chan struct{}) (string, error) {
	log := d.log.WithField("tool", profile.Tool)
	var screen screenBuffer
	deadline := time.Now().Add(profile.Timeout)

	commandSent := profile.Command == ""
	var commandSentAt time.Time
	resent := false
	continueDismissed := false

	for {
		if time.Now().After(deadline) {
			log.WithField("timeout", profile.Timeout).Warn("fetch deadline elapsed")
			return screen.Raw(), fmt.Errorf("%w after %s", ErrTimeout, profile.Timeout)
		}

		select {
		case <-ctx.Done():
			return screen.Raw(), ctx.Err()

		case <-exited:
			return d.drainAfterExit(profile, &screen, chunks)

		case c := <-chunks:
			if c.err != nil {
				if isBenignReadError(c.err) {
					return screen.Raw(), nil
				}
				return screen.Raw(), fmt.Errorf("%w: %v", ErrReadFailed, c.err)
			}

			if strings.Contains(c.data, cursorPositionQuery) {
				_, _ = ptmx.Write([]byte(cursorPositionReply))
				log.Debug("answered cursor position query")
			}
			if strings.Contains(c.data, deviceAttrsQuery) {
				_, _ = ptmx.Write([]byte(deviceAttrsReply))
				log.Debug("answered device attributes query")
			}

			if strings.Contains(c.data, clearScreenSeq) {
				continueDismissed = false
			}
			screen.Append(c.data)
			stripped := screen.Current()

			if profile.Failure != nil {
				if ferr := profile.Failure(stripped); ferr != nil {
					return screen.Raw(), ferr
				}
			}

			if !commandSent && containsAny(stripped, profile.ReadyMarkers) {
				d.send(ptmx, profile.Command)
				log.WithField("command", profile.Command).Debug("CLI ready, command sent")
				commandSent = true
				commandSentAt = time.Now()
			}

			if !continueDismissed && containsAny(strings.ToLower(stripped), profile.ContinueMarkers) {
				_, _ = ptmx.Write([]byte("\n"))
				continueDismissed = true
				log.Debug("dismissed continue prompt")
			}

			if profile.Complete != nil && profile.Complete(stripped) {
				return stripped, nil
			}

		case <-time.After(pollInterval):
		}

		if commandSent && !resent && profile.Command != "" && profile.ResendGrace > 0 &&
			time.Since(commandSentAt) > profile.ResendGrace {
			d.send(ptmx, profile.Command)
			resent = true
			log.Debug("no response yet, command resent")
		}
	}
}

// drainAfterExit collects whatever output is still buffered after the child
// terminated on its own, stopping at the first quiet interval.
func (d *Driver) drainAfterExit(profile Profile, screen *screenBuffer, chunks <-chan chunk) (string, error) {
	for {
		select {
		case c := <-chunks:
			if c.err != nil {
				if isBenignReadError(c.err) {
					return screen.Raw(), nil
				}
				return screen.Raw(), fmt.Errorf("%w: %v", ErrReadFailed, c.err)
			}
			screen.Append(c.data)
			if profile.Complete != nil && profile.Complete(screen.Current()) {
				return screen.Current(), nil
			}
		case <-time.After(drainQuiet):
			return screen.Raw(), nil
		}
	}
}

func (d *Driver) send(w io.Writer, command string) {
	_, _ = w.Write([]byte("\r" + command + "\r"))
}

// readLoop pumps pty output into the channel until the master side errors,
// which on Linux is how a closed slave manifests (EIO rather than EOF).
func readLoop(r io.Reader, out chan<- chunk) {
	defer close(out)
	buf := make([]byte, 4096)
	for {
		n, err := r.Read(buf)
		if n > 0 {
			out <- chunk{data: string(buf[:n])}
		}
		if err != nil {
			out <- chunk{err: err}
			return
		}
	}
}

func isBenignReadError(err error) bool {
	if err == io.EOF {
		return true
	}
	// EIO from the pty master after the child exits.
	return strings.Contains(err.Error(), "input/output error") ||
		strings.Contains(err.Error(), "file already closed")
}
