package render

import (
	"fmt"
	"io"
	"math"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/couchcryptid/temperature-heatmap/internal/layout"
)

const (
	gridCellWidth  = 7
	gridLabelWidth = 5
)

var (
	gridHeaderStyle = lipgloss.NewStyle().Bold(true).Width(gridCellWidth).Align(lipgloss.Right)
	gridLabelStyle  = lipgloss.NewStyle().Bold(true).Width(gridLabelWidth)
	gridTitleStyle  = lipgloss.NewStyle().Bold(true).MarginBottom(1)
	gridTextColor   = lipgloss.Color("#000000")
)

// Grid writes a year-by-month table of monthly values colored with the
// heatmap palette, for terminals. Months without data are left blank.
func Grid(w io.Writer, hm *layout.Heatmap, mode layout.Mode) error {
	l := hm.Layout
	var sb strings.Builder

	sb.WriteString(gridTitleStyle.Render(fmt.Sprintf("%s [%s]", hm.Title, mode)))
	sb.WriteByte('\n')

	sb.WriteString(gridLabelStyle.Render(""))
	for _, year := range l.Axis.Years {
		sb.WriteString(gridHeaderStyle.Render(fmt.Sprint(year)))
	}
	sb.WriteByte('\n')

	for month, name := range l.Axis.Months {
		sb.WriteString(gridLabelStyle.Render(name[:3]))
		for _, year := range l.Axis.Years {
			sb.WriteString(gridCell(hm, year, month, mode))
		}
		sb.WriteByte('\n')
	}

	sb.WriteByte('\n')
	sb.WriteString(gridLegend(l.Color))
	sb.WriteByte('\n')

	if _, err := io.WriteString(w, sb.String()); err != nil {
		return fmt.Errorf("write grid: %w", err)
	}
	return nil
}

func gridCell(hm *layout.Heatmap, year, month int, mode layout.Mode) string {
	style := lipgloss.NewStyle().Width(gridCellWidth).Align(lipgloss.Right)
	b, ok := hm.Bucket(year, month)
	if !ok {
		return style.Render("")
	}
	v := mode.Value(b)
	if math.IsNaN(v) {
		return style.Background(lipgloss.Color(layout.NoDataColor)).Foreground(gridTextColor).Render("n/a ")
	}
	return style.
		Background(lipgloss.Color(hm.Layout.CellColor(b, mode))).
		Foreground(gridTextColor).
		Render(fmt.Sprintf("%.1f ", v))
}

func gridLegend(scale layout.ColorScale) string {
	var sb strings.Builder
	sb.WriteString(layout.ColdestLabel + " ")
	for _, c := range scale.Colors() {
		sb.WriteString(lipgloss.NewStyle().Foreground(lipgloss.Color(c)).Render("██"))
	}
	sb.WriteString(" " + layout.WarmestLabel)
	return sb.String()
}
