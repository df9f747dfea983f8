// Package gantt renders timeline layouts as terminal text and SVG.
//
// The timeline package supplies the geometry (normalized bar positions
// and header buckets); this package is the rendering collaborator that
// turns a Layout into characters. Nothing here recomputes dates.
package gantt

import (
	"fmt"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/reflow/truncate"

	"github.com/lintelhq/lintel/timeline"
)

const (
	defaultRenderWidth = 80
	labelColumnWidth   = 22
	minBarColumns      = 10
	milestoneMarker    = "◆"
	barRune            = "█"
)

var categoryStyles = map[timeline.Category]lipgloss.Style{
	timeline.CategoryDone:       lipgloss.NewStyle().Foreground(lipgloss.Color("2")),
	timeline.CategoryBlocked:    lipgloss.NewStyle().Foreground(lipgloss.Color("1")),
	timeline.CategoryActiveHigh: lipgloss.NewStyle().Foreground(lipgloss.Color("33")),
	timeline.CategoryActiveLow:  lipgloss.NewStyle().Foreground(lipgloss.Color("244")),
}

var headerStyle = lipgloss.NewStyle().Bold(true)

// RenderOptions configures terminal rendering.
type RenderOptions struct {
	// Width is the total output width in columns. Defaults to 80.
	Width int

	// NoColor disables styling. NO_COLOR in the environment has the
	// same effect.
	NoColor bool
}

// RenderText renders the layout as a terminal Gantt chart: a bucket
// header followed by one bar row per visible item.
func RenderText(layout timeline.Layout, opts RenderOptions) string {
	width := opts.Width
	if width < 1 {
		width = defaultRenderWidth
	}
	barWidth := width - labelColumnWidth - 1
	if barWidth < minBarColumns {
		barWidth = minBarColumns
	}
	colorize := !opts.NoColor && os.Getenv("NO_COLOR") == ""

	var b strings.Builder
	writeHeaderRow(&b, layout.Config.Buckets, barWidth, colorize, func(bucket timeline.Bucket) string { return bucket.Label })
	writeHeaderRow(&b, layout.Config.Buckets, barWidth, false, func(bucket timeline.Bucket) string { return bucket.Sublabel })

	for _, item := range layout.Items {
		if !item.Visible {
			continue
		}
		b.WriteString(itemLabel(item))
		b.WriteByte(' ')
		b.WriteString(renderBar(item, barWidth, colorize))
		b.WriteByte('\n')
	}
	return b.String()
}

func writeHeaderRow(b *strings.Builder, buckets []timeline.Bucket, barWidth int, colorize bool, text func(timeline.Bucket) string) {
	if len(buckets) == 0 {
		return
	}
	b.WriteString(strings.Repeat(" ", labelColumnWidth+1))
	cell := barWidth / len(buckets)
	if cell < 1 {
		cell = 1
	}
	for i, bucket := range buckets {
		label := truncate.String(text(bucket), uint(cell))
		if colorize {
			label = headerStyle.Render(label)
		}
		b.WriteString(label)
		pad := cell - lipgloss.Width(label)
		if i == len(buckets)-1 {
			pad = 0
		}
		if pad > 0 {
			b.WriteString(strings.Repeat(" ", pad))
		}
	}
	b.WriteByte('\n')
}

func itemLabel(item timeline.PositionedItem) string {
	label := item.Title
	if label == "" {
		label = item.ID
	}
	label = truncate.StringWithTail(label, labelColumnWidth, "…")
	return fmt.Sprintf("%-*s", labelColumnWidth, label)
}

func renderBar(item timeline.PositionedItem, barWidth int, colorize bool) string {
	start := int(item.Left*float64(barWidth) + 0.5)
	span := int(item.Width*float64(barWidth) + 0.5)
	if span < 1 {
		span = 1
	}
	if start+span > barWidth {
		start = barWidth - span
	}
	if start < 0 {
		start = 0
	}

	bar := strings.Repeat(barRune, span)
	if item.IsMilestone() {
		bar = milestoneMarker
	}
	if colorize {
		if style, ok := categoryStyles[item.Category]; ok {
			bar = style.Render(bar)
		}
	}
	return strings.Repeat(" ", start) + bar
}
