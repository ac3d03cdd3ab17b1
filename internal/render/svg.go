package render

import (
	"bufio"
	"fmt"
	"html"
	"io"

	"github.com/couchcryptid/temperature-heatmap/internal/layout"
)

const (
	tickSize    = 6
	tickPadding = 3
	// legendTop is the legend's offset below the plot origin.
	legendTop = 30
	// legendLabelX is the legend label offset right of the swatches.
	legendLabelX = 25
	titleOffset  = -50
)

// SVG writes hm as a standalone SVG document, coloring cells by mode. Every
// cell also carries both fills as data attributes so a page script can
// switch modes without re-rendering.
func SVG(w io.Writer, hm *layout.Heatmap, mode layout.Mode, style Style) error {
	bw := bufio.NewWriter(w)
	s := svgWriter{w: bw, hm: hm, l: hm.Layout, style: style}
	s.document(mode)
	if s.err != nil {
		return fmt.Errorf("write svg: %w", s.err)
	}
	if err := bw.Flush(); err != nil {
		return fmt.Errorf("write svg: %w", err)
	}
	return nil
}

type svgWriter struct {
	w     io.Writer
	hm    *layout.Heatmap
	l     *layout.Layout
	style Style
	err   error
}

func (s *svgWriter) printf(format string, args ...any) {
	if s.err != nil {
		return
	}
	_, s.err = fmt.Fprintf(s.w, format, args...)
}

func (s *svgWriter) document(mode layout.Mode) {
	d := s.l.Dimensions
	s.printf(`<svg xmlns="http://www.w3.org/2000/svg" width="%s" height="%s" viewBox="0 0 %s %s" font-family="%s">`+"\n",
		num(d.Width), num(d.Height), num(d.Width), num(d.Height), attr(s.style.FontFamily))
	s.printf("<!-- generated %s -->\n", s.hm.GeneratedAt.UTC().Format("2006-01-02T15:04:05Z07:00"))
	s.printf(`<style>.cell-line{fill:none;stroke:%s;stroke-width:%s}.cell-line-min{fill:none;stroke:%s;stroke-width:%s}.domain,.tick line{stroke:%s}</style>`+"\n",
		attr(s.style.MaxLineColor), num(s.style.LineWidth), attr(s.style.MinLineColor), num(s.style.LineWidth), attr(s.style.AxisColor))
	if s.style.Background != "" {
		s.printf(`<rect class="background" width="100%%" height="100%%" fill="%s"/>`+"\n", attr(s.style.Background))
	}
	s.printf(`<g transform="translate(%s,%s)">`+"\n", num(d.MarginLeft), num(d.MarginTop))
	s.title()
	s.xAxis()
	s.yAxis()
	s.cells(mode)
	s.legend()
	s.printf("</g>\n</svg>\n")
}

func (s *svgWriter) title() {
	title := s.style.Title
	if title == "" {
		title = s.hm.Title
	}
	s.printf(`<text class="title" x="0" y="%d" font-size="%dpx">%s</text>`+"\n",
		titleOffset, s.style.TitleFontSize, text(title))
}

// xAxis draws year ticks along the top edge.
func (s *svgWriter) xAxis() {
	width := s.l.Dimensions.PlotWidth()
	s.printf(`<g class="x-axis" font-size="%d" text-anchor="middle">`+"\n", s.style.LabelFontSize)
	s.printf(`<path class="domain" fill="none" d="M0,-%dV0H%sV-%d"/>`+"\n", tickSize, num(width), tickSize)
	for _, year := range s.l.X.Domain() {
		cx, _ := s.l.X.Center(year)
		s.printf(`<g class="tick" transform="translate(%s,0)"><line y2="-%d"/><text y="-%d">%d</text></g>`+"\n",
			num(cx), tickSize, tickSize+tickPadding, year)
	}
	s.printf("</g>\n")
}

// yAxis draws month ticks along the left edge.
func (s *svgWriter) yAxis() {
	height := s.l.Dimensions.PlotHeight()
	s.printf(`<g class="y-axis" font-size="%d" text-anchor="end">`+"\n", s.style.LabelFontSize)
	s.printf(`<path class="domain" fill="none" d="M-%d,0H0V%sH-%d"/>`+"\n", tickSize, num(height), tickSize)
	for _, month := range s.l.Y.Domain() {
		cy, _ := s.l.Y.Center(month)
		s.printf(`<g class="tick" transform="translate(0,%s)"><line x2="-%d"/><text x="-%d" dy="0.32em">%s</text></g>`+"\n",
			num(cy), tickSize, tickSize+tickPadding, text(month))
	}
	s.printf("</g>\n")
}

func (s *svgWriter) cells(mode layout.Mode) {
	s.printf("<g class=\"cells\">\n")
	for _, b := range s.hm.Buckets {
		cell, ok := s.l.Cell(b)
		if !ok {
			continue
		}
		tip := b.Tooltip()
		maxFill := s.l.CellColor(b, layout.ShowMax)
		minFill := s.l.CellColor(b, layout.ShowMin)
		fill := maxFill
		if mode == layout.ShowMin {
			fill = minFill
		}

		s.printf(`<g class="cell" data-key="%s" transform="translate(%s,%s)">`+"\n",
			b.Key(), num(cell.X), num(cell.Y))
		s.printf(`<rect width="%s" height="%s" fill="%s" opacity="%s" data-fill-max="%s" data-fill-min="%s" data-tooltip="%s"><title>%s</title></rect>`+"\n",
			num(cell.Width), num(cell.Height), fill, num(s.style.CellOpacity), maxFill, minFill, attr(tip), text(tip))
		if d := s.l.SparklinePath(b.DailyValues, layout.MaxField); d != "" {
			s.printf(`<path class="cell-line" d="%s"/>`+"\n", d)
		}
		if d := s.l.SparklinePath(b.DailyValues, layout.MinField); d != "" {
			s.printf(`<path class="cell-line-min" d="%s"/>`+"\n", d)
		}
		s.printf("</g>\n")
	}
	s.printf("</g>\n")
}

// legend stacks one swatch per color bin, coldest on top, to the right of
// the plot.
func (s *svgWriter) legend() {
	colors := s.l.Color.Colors()
	w, h := s.style.LegendItemWidth, s.style.LegendItemHeight
	s.printf(`<g class="legend" transform="translate(%s,%d)" font-size="%d">`+"\n",
		num(s.l.Dimensions.PlotWidth()), legendTop, s.style.LabelFontSize)
	for i, c := range colors {
		s.printf(`<rect x="0" y="%s" width="%s" height="%s" fill="%s"/>`+"\n",
			num(float64(i)*h), num(w), num(h), c)
	}
	s.printf(`<text x="%d" y="%s">%s</text>`+"\n", legendLabelX, num(h*0.75), text(layout.ColdestLabel))
	s.printf(`<text x="%d" y="%s">%s</text>`+"\n", legendLabelX, num(float64(len(colors))*h), text(layout.WarmestLabel))
	s.printf("</g>\n")
}

func num(v float64) string { return layout.FormatCoord(v) }

func text(s string) string { return html.EscapeString(s) }

// attr escapes quotes as well as markup.
func attr(s string) string { return html.EscapeString(s) }
