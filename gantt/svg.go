package gantt

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/lintelhq/lintel/timeline"
)

// SVGOptions configures SVG output.
type SVGOptions struct {
	// Title is drawn above the chart. Defaults to "Gantt Timeline".
	Title string

	// Width is the document width in pixels. Defaults to 960.
	Width int

	// RowHeight is the height of each item row in pixels. Defaults to 28.
	RowHeight int

	// GeneratedAt is stamped under the title when non-zero.
	GeneratedAt time.Time
}

const (
	svgDefaultWidth     = 960
	svgDefaultRowHeight = 28
	svgHeaderHeight     = 56
	svgMargin           = 16
	svgBarInset         = 5
	svgFontFamily       = "Helvetica, Arial, sans-serif"
)

var categoryFills = map[timeline.Category]string{
	timeline.CategoryDone:       "#2e7d32",
	timeline.CategoryBlocked:    "#c62828",
	timeline.CategoryActiveHigh: "#1565c0",
	timeline.CategoryActiveLow:  "#90a4ae",
}

var svgEscaper = strings.NewReplacer("&", "&amp;", "<", "&lt;", ">", "&gt;", `"`, "&quot;")

// WriteSVG writes the layout as a standalone SVG document: a header
// band with bucket labels and grid lines, then one bar per visible
// item. Zero-duration items render as diamonds.
func WriteSVG(w io.Writer, layout timeline.Layout, opts SVGOptions) error {
	width := opts.Width
	if width < 1 {
		width = svgDefaultWidth
	}
	rowHeight := opts.RowHeight
	if rowHeight < 1 {
		rowHeight = svgDefaultRowHeight
	}
	title := opts.Title
	if title == "" {
		title = "Gantt Timeline"
	}

	visible := make([]timeline.PositionedItem, 0, len(layout.Items))
	for _, item := range layout.Items {
		if item.Visible {
			visible = append(visible, item)
		}
	}

	chartLeft := svgMargin
	chartWidth := width - 2*svgMargin
	chartTop := svgMargin + svgHeaderHeight
	height := chartTop + len(visible)*rowHeight + svgMargin

	var b strings.Builder
	fmt.Fprintf(&b, `<svg xmlns="http://www.w3.org/2000/svg" width="%d" height="%d" viewBox="0 0 %d %d" font-family="%s">`+"\n",
		width, height, width, height, svgFontFamily)
	fmt.Fprintf(&b, `<rect width="%d" height="%d" fill="#ffffff"/>`+"\n", width, height)

	fmt.Fprintf(&b, `<text x="%d" y="%d" font-size="16" font-weight="bold" fill="#263238">%s</text>`+"\n",
		chartLeft, svgMargin+8, svgEscaper.Replace(title))
	if !opts.GeneratedAt.IsZero() {
		fmt.Fprintf(&b, `<text x="%d" y="%d" font-size="10" fill="#78909c">generated %s</text>`+"\n",
			width-svgMargin-130, svgMargin+8, opts.GeneratedAt.Format("2006-01-02 15:04"))
	}

	writeSVGHeader(&b, layout.Config, chartLeft, chartWidth, chartTop, height-svgMargin)
	writeSVGBars(&b, visible, chartLeft, chartWidth, chartTop, rowHeight)

	b.WriteString("</svg>\n")
	_, err := io.WriteString(w, b.String())
	return err
}

func writeSVGHeader(b *strings.Builder, cfg timeline.Config, left, width, top, bottom int) {
	totalDays := cfg.TotalDays()
	for i, bucket := range cfg.Buckets {
		offsetDays := int(bucket.Start.Sub(cfg.Start).Hours() / 24)
		x := left + offsetDays*width/totalDays
		bucketWidth := bucket.Days() * width / totalDays

		if i > 0 {
			fmt.Fprintf(b, `<line x1="%d" y1="%d" x2="%d" y2="%d" stroke="#cfd8dc" stroke-width="1"/>`+"\n",
				x, top-20, x, bottom)
		}
		fmt.Fprintf(b, `<text x="%d" y="%d" font-size="11" fill="#37474f" text-anchor="middle">%s</text>`+"\n",
			x+bucketWidth/2, top-22, svgEscaper.Replace(bucket.Label))
		fmt.Fprintf(b, `<text x="%d" y="%d" font-size="9" fill="#78909c" text-anchor="middle">%s</text>`+"\n",
			x+bucketWidth/2, top-10, svgEscaper.Replace(bucket.Sublabel))
	}
	fmt.Fprintf(b, `<line x1="%d" y1="%d" x2="%d" y2="%d" stroke="#90a4ae" stroke-width="1"/>`+"\n",
		left, top-4, left+width, top-4)
}

func writeSVGBars(b *strings.Builder, items []timeline.PositionedItem, left, width, top, rowHeight int) {
	barHeight := rowHeight - 2*svgBarInset
	for row, item := range items {
		y := top + row*rowHeight
		x := left + int(item.Left*float64(width))
		barWidth := int(item.Width * float64(width))
		if barWidth < 1 {
			barWidth = 1
		}
		fill, ok := categoryFills[item.Category]
		if !ok {
			fill = categoryFills[timeline.CategoryActiveLow]
		}

		if item.IsMilestone() {
			cx := x
			cy := y + rowHeight/2
			half := barHeight / 2
			fmt.Fprintf(b, `<polygon points="%d,%d %d,%d %d,%d %d,%d" fill="%s"><title>%s</title></polygon>`+"\n",
				cx, cy-half, cx+half, cy, cx, cy+half, cx-half, cy, fill, svgTitle(item))
		} else {
			fmt.Fprintf(b, `<rect x="%d" y="%d" width="%d" height="%d" rx="3" fill="%s"><title>%s</title></rect>`+"\n",
				x, y+svgBarInset, barWidth, barHeight, fill, svgTitle(item))
		}
		fmt.Fprintf(b, `<text x="%d" y="%d" font-size="10" fill="#37474f">%s</text>`+"\n",
			left, y+rowHeight/2+3, svgEscaper.Replace(itemName(item)))
	}
}

func itemName(item timeline.PositionedItem) string {
	if item.Title != "" {
		return item.Title
	}
	return item.ID
}

func svgTitle(item timeline.PositionedItem) string {
	return svgEscaper.Replace(fmt.Sprintf("%s (%s, %d%%)", itemName(item), item.Status, item.Progress))
}
