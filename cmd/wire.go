package cmd

import (
	"fmt"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/spf13/viper"

	"github.com/bnema/quota-sentinel/internal/adapters/cli/claude"
	"github.com/bnema/quota-sentinel/internal/adapters/cli/codex"
	"github.com/bnema/quota-sentinel/internal/adapters/notify"
	statusadapter "github.com/bnema/quota-sentinel/internal/adapters/render/status"
	"github.com/bnema/quota-sentinel/internal/adapters/settings"
	"github.com/bnema/quota-sentinel/internal/adapters/term"
	"github.com/bnema/quota-sentinel/internal/application"
	"github.com/bnema/quota-sentinel/internal/domain"
	"github.com/bnema/quota-sentinel/internal/ports"
)

type app struct {
	store          *settings.Store
	notifier       ports.Notifier
	statusRenderer func(application.Report) (string, error)
	notifications  *application.NotificationLog
	log            *logrus.Logger
	now            func() time.Time
}

func wireApp() (*app, error) {
	log := logrus.New()
	log.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})

	store, err := settings.NewStore(viper.New(), log)
	if err != nil {
		return nil, fmt.Errorf("wire settings store: %w", err)
	}

	return &app{
		store:          store,
		notifier:       notify.NewDesktop(log),
		statusRenderer: statusadapter.Render,
		notifications:  application.NewNotificationLog(),
		log:            log,
		now:            time.Now,
	}, nil
}

// monitor assembles a Monitor for the given settings. The notification log
// outlives individual monitors so dedup state survives settings reloads.
func (a *app) monitor(cfg settings.Settings, toolFilter string) (*application.Monitor, error) {
	sources, err := a.sources(cfg, toolFilter)
	if err != nil {
		return nil, err
	}

	policy := domain.BudgetPolicy{
		UnderBudgetMax: cfg.ThresholdUnderBudget,
		OnTrackMax:     cfg.ThresholdOnTrack,
	}
	thresholds := application.NotifyThresholds{
		Approaching: cfg.NotifyApproachingPct,
		OverBudget:  cfg.NotifyOverBudgetPct,
	}

	return application.NewMonitor(sources, a.notifications, ports.SystemClock{}, policy, thresholds), nil
}

func (a *app) sources(cfg settings.Settings, toolFilter string) ([]ports.UsageSource, error) {
	driver := term.NewDriver(a.log)

	all := []ports.UsageSource{
		claude.NewSource(driver, cfg.ClaudePath, a.log),
		codex.NewSource(driver, cfg.CodexPath, a.log),
	}

	if toolFilter == "" {
		return all, nil
	}

	for _, source := range all {
		if string(source.Tool()) == toolFilter {
			return []ports.UsageSource{source}, nil
		}
	}
	return nil, fmt.Errorf("%w: %q", domain.ErrUnknownTool, toolFilter)
}
