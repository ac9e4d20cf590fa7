package cmd

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/bnema/quota-sentinel/internal/adapters/settings"
)

func newConfigCmd(app *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Show or change monitor settings",
	}

	cmd.AddCommand(newConfigShowCmd(app), newConfigSetCmd(app))

	return cmd
}

func newConfigShowCmd(app *app) *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Print the current settings",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := app.store.Load()
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "settings file: %s\n\n", app.store.Path())
			fmt.Fprintf(out, "refresh-interval:   %d minutes\n", cfg.RefreshIntervalMinutes)
			fmt.Fprintf(out, "under-budget:       %.0f%%\n", cfg.ThresholdUnderBudget)
			fmt.Fprintf(out, "on-track:           %.0f%%\n", cfg.ThresholdOnTrack)
			fmt.Fprintf(out, "notifications:      %t\n", cfg.NotificationsEnabled)
			fmt.Fprintf(out, "notify-approaching: %.0f%%\n", cfg.NotifyApproachingPct)
			fmt.Fprintf(out, "notify-over-budget: %.0f%%\n", cfg.NotifyOverBudgetPct)
			fmt.Fprintf(out, "claude-path:        %s\n", orDefault(cfg.ClaudePath, "(claude from PATH)"))
			fmt.Fprintf(out, "codex-path:         %s\n", orDefault(cfg.CodexPath, "(codex from PATH)"))
			return nil
		},
	}
}

func newConfigSetCmd(app *app) *cobra.Command {
	return &cobra.Command{
		Use:   "set <key> <value>",
		Short: "Change one setting and save the settings file",
		Long: "Keys: refresh-interval, under-budget, on-track, notifications, " +
			"notify-approaching, notify-over-budget, claude-path, codex-path.",
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := app.store.Load()
			if err != nil {
				return err
			}

			if err := applySetting(&cfg, args[0], args[1]); err != nil {
				return err
			}

			if err := app.store.Save(cfg); err != nil {
				return err
			}

			_, err = fmt.Fprintf(cmd.OutOrStdout(), "%s set to %s\n", args[0], args[1])
			return err
		},
	}
}

func applySetting(cfg *settings.Settings, key, value string) error {
	switch key {
	case "refresh-interval":
		minutes, err := strconv.Atoi(value)
		if err != nil {
			return fmt.Errorf("parse %s: %w", key, err)
		}
		cfg.RefreshIntervalMinutes = minutes
	case "under-budget":
		return setFloat(&cfg.ThresholdUnderBudget, key, value)
	case "on-track":
		return setFloat(&cfg.ThresholdOnTrack, key, value)
	case "notifications":
		enabled, err := strconv.ParseBool(value)
		if err != nil {
			return fmt.Errorf("parse %s: %w", key, err)
		}
		cfg.NotificationsEnabled = enabled
	case "notify-approaching":
		return setFloat(&cfg.NotifyApproachingPct, key, value)
	case "notify-over-budget":
		return setFloat(&cfg.NotifyOverBudgetPct, key, value)
	case "claude-path":
		cfg.ClaudePath = value
	case "codex-path":
		cfg.CodexPath = value
	default:
		return fmt.Errorf("unknown setting %q", key)
	}
	return nil
}

func setFloat(target *float64, key, value string) error {
	parsed, err := strconv.ParseFloat(value, 64)
	if err != nil {
		return fmt.Errorf("parse %s: %w", key, err)
	}
	*target = parsed
	return nil
}

func orDefault(value, fallback string) string {
	if value == "" {
		return fallback
	}
	return value
}
