package gantt

import (
	"strings"
	"testing"
	"time"

	"github.com/lintelhq/lintel/timeline"
)

func TestWriteSVG(t *testing.T) {
	layout := monthLayout(t, []timeline.Item{
		{ID: "a1", Title: "Foundation pour", Start: date(2025, time.March, 1), End: date(2025, time.March, 20), Progress: 100, Status: "Completed"},
		{ID: "b2", Title: "Topping out", Start: date(2025, time.September, 5), End: date(2025, time.September, 5), Status: "Not Started"},
		{ID: "c3", Title: "Out of window", Start: date(2024, time.March, 1), End: date(2024, time.April, 1), Status: "Completed"},
	})

	var b strings.Builder
	if err := WriteSVG(&b, layout, SVGOptions{Title: "Riverside", GeneratedAt: date(2025, time.June, 11)}); err != nil {
		t.Fatalf("WriteSVG failed: %v", err)
	}
	out := b.String()

	if !strings.HasPrefix(out, `<svg xmlns="http://www.w3.org/2000/svg"`) {
		t.Error("output should start with an svg element")
	}
	if !strings.HasSuffix(strings.TrimSpace(out), "</svg>") {
		t.Error("output should end with the closing svg tag")
	}
	if !strings.Contains(out, ">Riverside</text>") {
		t.Error("output missing the title")
	}
	if !strings.Contains(out, ">Jan</text>") || !strings.Contains(out, ">Dec</text>") {
		t.Error("output missing bucket header labels")
	}
	if !strings.Contains(out, `<rect x=`) || !strings.Contains(out, categoryFills[timeline.CategoryDone]) {
		t.Error("output missing the completed task bar")
	}
	if !strings.Contains(out, "<polygon points=") {
		t.Error("milestones should render as diamonds")
	}
	if strings.Contains(out, "Out of window") {
		t.Error("invisible items should be elided")
	}
	if !strings.Contains(out, "generated 2025-06-11") {
		t.Error("output missing the date stamp")
	}
}

func TestWriteSVG_EscapesText(t *testing.T) {
	layout := monthLayout(t, []timeline.Item{
		{ID: "a1", Title: `Demo <&> "phase"`, Start: date(2025, time.March, 1), End: date(2025, time.March, 20), Status: "In Progress"},
	})

	var b strings.Builder
	if err := WriteSVG(&b, layout, SVGOptions{}); err != nil {
		t.Fatalf("WriteSVG failed: %v", err)
	}
	out := b.String()
	if strings.Contains(out, "<&>") {
		t.Error("item titles must be XML-escaped")
	}
	if !strings.Contains(out, "Demo &lt;&amp;&gt; &quot;phase&quot;") {
		t.Errorf("escaped title missing from output")
	}
}

func TestWriteSVG_Defaults(t *testing.T) {
	layout := monthLayout(t, nil)

	var b strings.Builder
	if err := WriteSVG(&b, layout, SVGOptions{}); err != nil {
		t.Fatalf("WriteSVG failed: %v", err)
	}
	out := b.String()
	if !strings.Contains(out, `width="960"`) {
		t.Error("default width should be 960")
	}
	if !strings.Contains(out, ">Gantt Timeline</text>") {
		t.Error("default title missing")
	}
}
