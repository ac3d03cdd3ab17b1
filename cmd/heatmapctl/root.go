package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/couchcryptid/temperature-heatmap/internal/domain"
	"github.com/couchcryptid/temperature-heatmap/internal/layout"
	"github.com/couchcryptid/temperature-heatmap/internal/loader"
	"github.com/couchcryptid/temperature-heatmap/internal/observability"
	"github.com/couchcryptid/temperature-heatmap/internal/pipeline"
	"github.com/couchcryptid/temperature-heatmap/internal/render"
)

// options are the flags shared by every subcommand.
type options struct {
	source   string
	minYear  int
	mode     string
	style    string
	out      string
	city     string
	timeout  time.Duration
	logLevel string
	columns  loader.Columns
}

func newRootCmd() *cobra.Command {
	opts := &options{}

	root := &cobra.Command{
		Use:   "heatmapctl",
		Short: "Render the monthly temperature heatmap from a daily CSV",
		Long: `Render the monthly temperature heatmap from a daily CSV.

The source is a local path or an http(s) URL with date, max_temperature and
min_temperature columns. Days before --min-year are dropped and the rest are
grouped into one cell per (year, month).

Outputs:
  svg        standalone SVG document
  html       page with the SVG, a min/max toggle and hover tooltips
  grid       colored year by month table for the terminal
  buckets    month buckets as JSON
  sparkline  PNG chart of one month's daily values`,
		SilenceUsage: true,
	}

	flags := root.PersistentFlags()
	flags.StringVar(&opts.source, "source", "temperature_daily.csv", "CSV path or http(s) URL")
	flags.IntVar(&opts.minYear, "min-year", domain.DefaultMinYear, "drop days before this year")
	flags.StringVar(&opts.mode, "mode", "max", "color cells by monthly max or min")
	flags.StringVar(&opts.style, "style", "", "YAML style overrides")
	flags.StringVarP(&opts.out, "out", "o", "", "output file path (default: stdout)")
	flags.StringVar(&opts.city, "city", "HKG", "city name used in the title")
	flags.DurationVar(&opts.timeout, "timeout", 30*time.Second, "load timeout")
	flags.StringVar(&opts.logLevel, "log-level", "warn", "log level for load diagnostics")
	flags.StringVar(&opts.columns.Date, "date-column", loader.DefaultColumns.Date, "CSV header of the date column")
	flags.StringVar(&opts.columns.Max, "max-column", loader.DefaultColumns.Max, "CSV header of the daily maximum column")
	flags.StringVar(&opts.columns.Min, "min-column", loader.DefaultColumns.Min, "CSV header of the daily minimum column")

	root.AddCommand(
		newSVGCmd(opts),
		newHTMLCmd(opts),
		newGridCmd(opts),
		newBucketsCmd(opts),
		newSparklineCmd(opts),
	)
	return root
}

// build runs the service pipeline once against --source and returns the
// heatmap laid out with the configured style.
func (o *options) build(ctx context.Context, cmd *cobra.Command) (*layout.Heatmap, render.Style, error) {
	style, err := render.LoadStyle(o.style)
	if err != nil {
		return nil, style, err
	}

	logger := observability.NewTextLogger(cmd.ErrOrStderr(), o.logLevel)
	p := pipeline.New(loader.NewSource(o.source, o.timeout), pipeline.Options{
		Loader:      loader.Options{Columns: o.columns, MinYear: o.minYear},
		LoadTimeout: o.timeout,
		Dimensions:  style.Dimensions,
		City:        o.city,
	}, logger, observability.NewUnregisteredMetrics())

	if err := p.Run(ctx); err != nil {
		return nil, style, err
	}
	hm, err := p.Heatmap()
	if err != nil {
		return nil, style, err
	}
	return hm, style, nil
}

func (o *options) parseMode() (layout.Mode, error) {
	return layout.ParseMode(o.mode)
}

// output runs write against --out, or the command's stdout when unset.
func (o *options) output(cmd *cobra.Command, write func(io.Writer) error) error {
	if o.out == "" {
		return write(cmd.OutOrStdout())
	}
	f, err := os.Create(o.out)
	if err != nil {
		return fmt.Errorf("create output file: %w", err)
	}
	if err := write(f); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
