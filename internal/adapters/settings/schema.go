package settings

// fileSchema mirrors the on-disk TOML layout. Optional fields are pointers
// so an absent key falls back to its default instead of a zero value.
type fileSchema struct {
	RefreshIntervalMinutes *int     `toml:"refresh_interval_minutes,omitempty"`
	ThresholdUnderBudget   *float64 `toml:"threshold_under_budget,omitempty"`
	ThresholdOnTrack       *float64 `toml:"threshold_on_track,omitempty"`
	NotificationsEnabled   *bool    `toml:"notifications_enabled,omitempty"`
	NotifyApproachingPct   *float64 `toml:"notify_approaching_percent,omitempty"`
	NotifyOverBudgetPct    *float64 `toml:"notify_over_budget_percent,omitempty"`
	ClaudePath             string   `toml:"claude_path,omitempty"`
	CodexPath              string   `toml:"codex_path,omitempty"`
}

func toSchema(s Settings) fileSchema {
	return fileSchema{
		RefreshIntervalMinutes: &s.RefreshIntervalMinutes,
		ThresholdUnderBudget:   &s.ThresholdUnderBudget,
		ThresholdOnTrack:       &s.ThresholdOnTrack,
		NotificationsEnabled:   &s.NotificationsEnabled,
		NotifyApproachingPct:   &s.NotifyApproachingPct,
		NotifyOverBudgetPct:    &s.NotifyOverBudgetPct,
		ClaudePath:             s.ClaudePath,
		CodexPath:              s.CodexPath,
	}
}

func fromSchema(file fileSchema) Settings {
	s := Default()
	if file.RefreshIntervalMinutes != nil {
		s.RefreshIntervalMinutes = *file.RefreshIntervalMinutes
	}
	if file.ThresholdUnderBudget != nil {
		s.ThresholdUnderBudget = *file.ThresholdUnderBudget
	}
	if file.ThresholdOnTrack != nil {
		s.ThresholdOnTrack = *file.ThresholdOnTrack
	}
	if file.NotificationsEnabled != nil {
		s.NotificationsEnabled = *file.NotificationsEnabled
	}
	if file.NotifyApproachingPct != nil {
		s.NotifyApproachingPct = *file.NotifyApproachingPct
	}
	if file.NotifyOverBudgetPct != nil {
		s.NotifyOverBudgetPct = *file.NotifyOverBudgetPct
	}
	s.ClaudePath = file.ClaudePath
	s.CodexPath = file.CodexPath
	return s
}
