package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"time"

	"github.com/spf13/cobra"

	"github.com/bnema/quota-sentinel/internal/application"
	"github.com/bnema/quota-sentinel/internal/domain"
)

func newFetchCmd(app *app) *cobra.Command {
	var asJSON bool
	var toolName string

	cmd := &cobra.Command{
		Use:     "fetch",
		Aliases: []string{"status"},
		Short:   "Fetch quota usage from the AI CLIs and display projections",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runFetch(cmd, app, toolName, asJSON)
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "Render JSON output")
	cmd.Flags().StringVar(&toolName, "tool", "", "Fetch a single tool (claude or codex)")

	return cmd
}

func runFetch(cmd *cobra.Command, app *app, toolName string, asJSON bool) error {
	cfg, err := app.store.Load()
	if err != nil {
		return err
	}

	monitor, err := app.monitor(cfg, toolName)
	if err != nil {
		return err
	}

	if asJSON {
		report := monitor.Refresh(cmd.Context())
		return writeReportJSON(cmd.OutOrStdout(), report)
	}

	var report application.Report
	if err := runFetchSpinner(cmd.Context(), cmd.ErrOrStderr(), func(ctx context.Context) error {
		report = monitor.Refresh(ctx)
		return nil
	}); err != nil {
		return err
	}

	rendered, err := app.statusRenderer(report)
	if err != nil {
		return err
	}

	_, err = fmt.Fprintln(cmd.OutOrStdout(), rendered)
	return err
}

type quotaJSON struct {
	Kind             string   `json:"kind"`
	UsedPercent      float64  `json:"used_percent"`
	ProjectedPercent *float64 `json:"projected_percent,omitempty"`
	Status           string   `json:"status"`
	ResetText        string   `json:"reset_text,omitempty"`
	ResetsIn         string   `json:"resets_in,omitempty"`
}

type toolReportJSON struct {
	Tool              string      `json:"tool"`
	Error             string      `json:"error,omitempty"`
	ExtraUsageEnabled bool        `json:"extra_usage_enabled,omitempty"`
	Quotas            []quotaJSON `json:"quotas,omitempty"`
}

type reportJSON struct {
	GeneratedAt time.Time        `json:"generated_at"`
	Overall     string           `json:"overall_status"`
	Tools       []toolReportJSON `json:"tools"`
}

func writeReportJSON(w io.Writer, report application.Report) error {
	out := reportJSON{
		GeneratedAt: report.GeneratedAt,
		Overall:     string(report.WorstStatus()),
	}

	for _, tool := range report.Tools {
		entry := toolReportJSON{Tool: string(tool.Tool)}
		if tool.Err != nil {
			entry.Error = tool.Err.Error()
			out.Tools = append(out.Tools, entry)
			continue
		}

		entry.ExtraUsageEnabled = tool.Reading.ExtraUsageEnabled

		projections := make(map[domain.QuotaKind]domain.ProjectedUsage, len(tool.Projections))
		for _, p := range tool.Projections {
			projections[p.Kind] = p
		}

		for _, kind := range tool.Tool.Quotas() {
			sample, ok := tool.Reading.Sample(kind)
			if !ok {
				continue
			}

			quota := quotaJSON{
				Kind:        string(kind),
				UsedPercent: sample.UsedPercent,
				Status:      string(domain.StatusUnknown),
				ResetText:   sample.ResetText,
			}
			if p, ok := projections[kind]; ok {
				projected := p.ProjectedPercent
				quota.ProjectedPercent = &projected
				quota.Status = string(p.Status)
				quota.ResetsIn = p.FormatRemaining()
			}
			entry.Quotas = append(entry.Quotas, quota)
		}

		out.Tools = append(out.Tools, entry)
	}

	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(out)
}
