package commands

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/de-tools/fabric-atlas/pkg/models/domain"
	"github.com/de-tools/fabric-atlas/pkg/runtime/terminal/export"
	"github.com/spf13/cobra"
)

type AnalyzeCmd struct {
	source  string
	date    string
	format  string
	output  string
	timeout time.Duration
	app     AppProvider
}

func NewAnalyzeCmd(app AppProvider) *cobra.Command {
	ac := &AnalyzeCmd{app: app}
	cmd := &cobra.Command{
		Use:   "analyze",
		Short: "Aggregate the orders of a source into dashboard analytics",
		RunE:  ac.run,
	}

	cmd.Flags().StringVar(&ac.source, "source", domain.StoreSourceName, "Source profile to analyze")
	cmd.Flags().StringVar(&ac.date, "date", "", "Last day of the daily series, YYYY-MM-DD (default today)")
	cmd.Flags().StringVar(&ac.format, "format", string(export.FormatText), "Report format: text, json or xlsx")
	cmd.Flags().StringVarP(&ac.output, "output", "o", "", "Write the report to this file instead of stdout")
	cmd.Flags().DurationVar(&ac.timeout, "timeout", 60*time.Second, "Time limit for fetching orders")

	return cmd
}

func (ac *AnalyzeCmd) run(cmd *cobra.Command, _ []string) error {
	now := time.Now()
	if ac.date != "" {
		day, err := time.ParseInLocation("2006-01-02", ac.date, now.Location())
		if err != nil {
			return fmt.Errorf("invalid date %q, expected YYYY-MM-DD", ac.date)
		}
		now = day
	}

	format := export.Format(ac.format)
	if format == export.FormatXLSX && ac.output == "" {
		return fmt.Errorf("xlsx reports need --output")
	}

	var out io.Writer = cmd.OutOrStdout()
	if ac.output != "" {
		f, err := os.Create(ac.output)
		if err != nil {
			return fmt.Errorf("failed to create report file: %w", err)
		}
		defer f.Close()
		out = f
	}

	reporter, err := export.NewReporter(format, out)
	if err != nil {
		return err
	}

	a, err := ac.app(cmd.Context())
	if err != nil {
		return err
	}

	ctx, cancel := contextWithTimeout(cmd, ac.timeout)
	defer cancel()

	report, err := a.Analytics.GetReport(ctx, ac.source, now)
	if err != nil {
		return fmt.Errorf("failed to analyze %s: %w", ac.source, err)
	}

	return reporter.Handle(report)
}
