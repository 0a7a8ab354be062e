package cli

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/clearpond/kassa/internal/config"
	"github.com/clearpond/kassa/internal/receipt"
)

// ReportOptions holds flags for the report command.
type ReportOptions struct {
	*RootOptions
	From string
	To   string
}

// NewReportCommand creates the report command.
func NewReportCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &ReportOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "report",
		Short: "Print a revenue report for a period",
		Long: `Aggregate the local order history into a period revenue report.

Dates are inclusive calendar days in the device's local time zone.

Example:
  kassa report --from 2025-06-01 --to 2025-06-30
  kassa report --from 2025-06-01 --to 2025-06-30 --format json`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runReport(opts, cmd)
		},
	}

	cmd.Flags().StringVar(&opts.From, "from", "", "period start, YYYY-MM-DD (required)")
	cmd.Flags().StringVar(&opts.To, "to", "", "period end, YYYY-MM-DD (required)")
	_ = cmd.MarkFlagRequired("from")
	_ = cmd.MarkFlagRequired("to")

	return cmd
}

func runReport(opts *ReportOptions, cmd *cobra.Command) error {
	from, err := time.ParseInLocation("2006-01-02", opts.From, time.Local)
	if err != nil {
		return WrapExitError(ExitCommandError, fmt.Sprintf("invalid --from date %q", opts.From), err)
	}
	to, err := time.ParseInLocation("2006-01-02", opts.To, time.Local)
	if err != nil {
		return WrapExitError(ExitCommandError, fmt.Sprintf("invalid --to date %q", opts.To), err)
	}
	if to.Before(from) {
		return NewExitError(ExitCommandError, "--to must not be before --from")
	}

	cfg, err := config.Load(opts.Config)
	if err != nil {
		return WrapExitError(ExitCommandError, "failed to load config", err)
	}

	store, backend, err := openStore(cfg)
	if err != nil {
		return WrapExitError(ExitCommandError, "failed to open store", err)
	}
	defer backend.Close()

	// The --to day is included in full.
	toEnd := to.AddDate(0, 0, 1).Add(-time.Millisecond)
	stats := store.StatsByPeriod(from.UnixMilli(), toEnd.UnixMilli())

	formatter := &OutputFormatter{Format: opts.Format, Writer: cmd.OutOrStdout()}
	if opts.Format == "json" {
		return formatter.Success(stats)
	}

	org := receipt.Org{Name: cfg.Org.Name, Subtitle: cfg.Org.Subtitle, Footer: cfg.Org.Footer}
	fmt.Fprint(cmd.OutOrStdout(), receipt.RenderReport(org, from, to, stats))
	return nil
}
