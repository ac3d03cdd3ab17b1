package main

import (
	"encoding/json"
	"fmt"
	"io"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/couchcryptid/temperature-heatmap/internal/domain"
	"github.com/couchcryptid/temperature-heatmap/internal/render"
)

func newSVGCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "svg",
		Short: "Write the heatmap as an SVG document",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			mode, err := opts.parseMode()
			if err != nil {
				return err
			}
			hm, style, err := opts.build(cmd.Context(), cmd)
			if err != nil {
				return err
			}
			return opts.output(cmd, func(w io.Writer) error {
				return render.SVG(w, hm, mode, style)
			})
		},
	}
}

func newHTMLCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "html",
		Short: "Write an HTML page with the heatmap, a min/max toggle and tooltips",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			hm, style, err := opts.build(cmd.Context(), cmd)
			if err != nil {
				return err
			}
			return opts.output(cmd, func(w io.Writer) error {
				return render.Page(w, hm, style)
			})
		},
	}
}

func newGridCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "grid",
		Short: "Print a colored year by month table",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			mode, err := opts.parseMode()
			if err != nil {
				return err
			}
			hm, _, err := opts.build(cmd.Context(), cmd)
			if err != nil {
				return err
			}
			return opts.output(cmd, func(w io.Writer) error {
				return render.Grid(w, hm, mode)
			})
		},
	}
}

// bucketOutput is one line of the buckets listing.
type bucketOutput struct {
	Key    string             `json:"key"`
	Color  string             `json:"color"`
	Bucket domain.MonthBucket `json:"bucket"`
}

func newBucketsCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "buckets",
		Short: "Print the month buckets as JSON",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			mode, err := opts.parseMode()
			if err != nil {
				return err
			}
			hm, _, err := opts.build(cmd.Context(), cmd)
			if err != nil {
				return err
			}
			colors := hm.Layout.Colors(hm.Buckets, mode)
			out := make([]bucketOutput, len(hm.Buckets))
			for i, b := range hm.Buckets {
				out[i] = bucketOutput{Key: b.Key(), Color: colors[i], Bucket: b}
			}
			return opts.output(cmd, func(w io.Writer) error {
				enc := json.NewEncoder(w)
				enc.SetIndent("", "  ")
				if err := enc.Encode(out); err != nil {
					return fmt.Errorf("encode buckets: %w", err)
				}
				return nil
			})
		},
	}
}

func newSparklineCmd(opts *options) *cobra.Command {
	sparkOpts := render.DefaultSparklineOptions()

	cmd := &cobra.Command{
		Use:   "sparkline YEAR MONTH",
		Short: "Write a PNG chart of one month's daily max and min",
		Example: `  heatmapctl sparkline 2008 1 --out 2008-01.png
  heatmapctl sparkline 2012 7 --width 800 --height 300 > july.png`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			year, err := strconv.Atoi(args[0])
			if err != nil {
				return fmt.Errorf("invalid year %q", args[0])
			}
			month, err := strconv.Atoi(args[1])
			if err != nil || month < 1 || month > 12 {
				return fmt.Errorf("invalid month %q: want 1-12", args[1])
			}

			hm, _, err := opts.build(cmd.Context(), cmd)
			if err != nil {
				return err
			}
			b, ok := hm.Bucket(year, month-1)
			if !ok {
				return fmt.Errorf("no data for %04d-%02d", year, month)
			}
			return opts.output(cmd, func(w io.Writer) error {
				return render.Sparkline(w, b, sparkOpts)
			})
		},
	}
	cmd.Flags().IntVar(&sparkOpts.Width, "width", sparkOpts.Width, "image width in pixels")
	cmd.Flags().IntVar(&sparkOpts.Height, "height", sparkOpts.Height, "image height in pixels")
	return cmd
}
