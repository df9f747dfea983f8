package main

import (
	"fmt"
	"os"
	"time"

	"github.com/lintelhq/lintel/gantt"
	"github.com/lintelhq/lintel/project"
	"github.com/lintelhq/lintel/timeline"
	"github.com/spf13/cobra"
	"golang.org/x/term"
)

var ganttCmd = &cobra.Command{
	Use:   "gantt",
	Short: "Render the plan as a Gantt chart",
	Long: `Render the plan as a Gantt chart.

By default the chart is drawn in the terminal. With --svg the chart is
written to a standalone SVG file instead. Zoom and year default to the
configured values, then to a month view of the current year.`,
	Args: cobra.NoArgs,
	RunE: runGantt,
}

var (
	ganttZoom    string
	ganttYear    int
	ganttRef     string
	ganttProject string
	ganttSVGPath string
)

func init() {
	rootCmd.AddCommand(ganttCmd)
	ganttCmd.Flags().StringVar(&ganttZoom, "zoom", "", "Zoom level (week, month, quarter)")
	ganttCmd.Flags().IntVar(&ganttYear, "year", 0, "Calendar year for month and quarter zoom")
	ganttCmd.Flags().StringVar(&ganttRef, "ref", "", "Reference date for week zoom (YYYY-MM-DD, defaults to today)")
	ganttCmd.Flags().StringVarP(&ganttProject, "project", "p", "", "Limit the chart to one project")
	ganttCmd.Flags().StringVar(&ganttSVGPath, "svg", "", "Write an SVG file instead of rendering to the terminal")
}

func runGantt(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	zoomValue := ganttZoom
	if zoomValue == "" {
		zoomValue = cfg.Zoom
	}
	if zoomValue == "" {
		zoomValue = string(timeline.ZoomMonth)
	}
	zoom, err := timeline.ParseZoom(zoomValue)
	if err != nil {
		return err
	}

	reference := time.Now()
	if ganttRef != "" {
		reference, err = parseDateFlag("ref", ganttRef)
		if err != nil {
			return err
		}
	}

	year := ganttYear
	if year == 0 {
		year = cfg.Year
	}
	if year == 0 {
		year = reference.Year()
	}

	store, _, err := openPlanStore()
	if err != nil {
		return err
	}
	items, err := store.GanttItems(ganttProject)
	if err != nil {
		return err
	}
	layout, err := timeline.ComputeLayout(zoom, reference, year, items)
	if err != nil {
		return err
	}

	if ganttSVGPath != "" {
		return writeGanttSVGFile(store, layout, ganttSVGPath)
	}

	fmt.Print(gantt.RenderText(layout, gantt.RenderOptions{Width: terminalWidth()}))
	return nil
}

func writeGanttSVGFile(store *project.Store, layout timeline.Layout, path string) error {
	title := "Gantt Timeline"
	if ganttProject != "" {
		if proj, err := store.GetProject(ganttProject); err == nil {
			title = proj.Name
		}
	}

	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create svg file: %w", err)
	}
	defer file.Close()

	if err := gantt.WriteSVG(file, layout, gantt.SVGOptions{Title: title, GeneratedAt: time.Now()}); err != nil {
		return err
	}
	if err := file.Close(); err != nil {
		return fmt.Errorf("close svg file: %w", err)
	}

	fmt.Printf("Wrote %s\n", path)
	return nil
}

func terminalWidth() int {
	fd := int(os.Stdout.Fd())
	if !term.IsTerminal(fd) {
		return 0
	}
	width, _, err := term.GetSize(fd)
	if err != nil || width < 1 {
		return 0
	}
	return width
}
