// Package notify delivers notification events to the desktop through the
// platform's notification command.
package notify

import (
	"bytes"
	"context"
	"fmt"
	"os/exec"
	"runtime"

	"github.com/sirupsen/logrus"

	"github.com/bnema/quota-sentinel/internal/domain"
	"github.com/bnema/quota-sentinel/internal/ports"
)

const appName = "quota-sentinel"

// Desktop sends events via notify-send (Linux) or osascript (macOS).
type Desktop struct {
	log *logrus.Logger
}

var _ ports.Notifier = (*Desktop)(nil)

func NewDesktop(log *logrus.Logger) *Desktop {
	if log == nil {
		log = logrus.StandardLogger()
	}
	return &Desktop{log: log}
}

func (d *Desktop) Send(ctx context.Context, event domain.NotificationEvent) error {
	name, args := notifyCommand(runtime.GOOS, event.Title(), event.Body())
	if name == "" {
		return fmt.Errorf("no desktop notifier available on %s", runtime.GOOS)
	}

	cmd := exec.CommandContext(ctx, name, args...)
	out, err := cmd.CombinedOutput()
	if err != nil {
		return fmt.Errorf("send notification via %s: %w: %s", name, err, bytes.TrimSpace(out))
	}

	d.log.WithFields(logrus.Fields{
		"tool":     event.Tool,
		"quota":    event.Kind,
		"severity": event.Severity,
	}).Info("notification delivered")
	return nil
}

func notifyCommand(goos, title, body string) (string, []string) {
	switch goos {
	case "darwin":
		script := fmt.Sprintf("display notification %q with title %q", body, title)
		return "osascript", []string{"-e", script}
	case "linux":
		return "notify-send", []string{"--app-name", appName, title, body}
	default:
		return "", nil
	}
}
