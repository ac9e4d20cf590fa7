package cmd

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/bnema/quota-sentinel/internal/adapters/cli/claude"
	"github.com/bnema/quota-sentinel/internal/adapters/cli/codex"
	"github.com/bnema/quota-sentinel/internal/adapters/term"
	"github.com/bnema/quota-sentinel/internal/application"
	"github.com/bnema/quota-sentinel/internal/domain"
)

func newParseCmd(app *app) *cobra.Command {
	var toolName string
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "parse [file]",
		Short: "Parse a saved CLI output snapshot instead of driving the CLI",
		Long:  "Reads raw terminal output from a file (or stdin with \"-\"), strips control sequences, parses it with the named tool's parser, and shows the resulting projections. Useful for debugging parser behavior against captured output.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runParse(cmd, app, toolName, args[0], asJSON)
		},
	}

	cmd.Flags().StringVar(&toolName, "tool", "", "Tool whose parser to use (claude or codex)")
	cmd.Flags().BoolVar(&asJSON, "json", false, "Render JSON output")
	_ = cmd.MarkFlagRequired("tool")

	return cmd
}

func runParse(cmd *cobra.Command, app *app, toolName, path string, asJSON bool) error {
	raw, err := readSnapshot(cmd.InOrStdin(), path)
	if err != nil {
		return err
	}
	text := term.StripANSI(string(raw))

	var reading domain.Reading
	switch domain.Tool(toolName) {
	case domain.ToolClaude:
		reading = claude.Parse(text)
	case domain.ToolCodex:
		reading = codex.Parse(text)
	default:
		return fmt.Errorf("%w: %q", domain.ErrUnknownTool, toolName)
	}

	cfg, err := app.store.Load()
	if err != nil {
		return err
	}

	now := app.now()
	reading.CapturedAt = now
	policy := domain.BudgetPolicy{
		UnderBudgetMax: cfg.ThresholdUnderBudget,
		OnTrackMax:     cfg.ThresholdOnTrack,
	}

	report := application.Report{
		Tools: []application.ToolReport{
			{
				Tool:        reading.Tool,
				Reading:     &reading,
				Projections: domain.ProjectReading(reading, now, policy),
			},
		},
		GeneratedAt: now,
	}

	if asJSON {
		return writeReportJSON(cmd.OutOrStdout(), report)
	}

	rendered, err := app.statusRenderer(report)
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(cmd.OutOrStdout(), rendered)
	return err
}

func readSnapshot(stdin io.Reader, path string) ([]byte, error) {
	if path == "-" {
		return io.ReadAll(stdin)
	}
	return os.ReadFile(path)
}
