package main

import (
	"github.com/lintelhq/lintel/dash"
	"github.com/lintelhq/lintel/internal/dashtui"
	"github.com/spf13/cobra"
)

var tuiCmd = &cobra.Command{
	Use:   "tui",
	Short: "Open the interactive terminal dashboard",
	Long: `Open the interactive terminal dashboard.

The TUI talks to a running API server (lintel serve): projects and
tasks in list panes, a detail pane with a live site log, and inline
task editing.`,
	Args: cobra.NoArgs,
	RunE: runTUI,
}

var tuiAPI string

func init() {
	rootCmd.AddCommand(tuiCmd)
	tuiCmd.Flags().StringVar(&tuiAPI, "api", "", "Address of the dashboard API server")
}

func runTUI(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	addr, err := dash.ResolveAddr(tuiAPI, cfg.APIAddr)
	if err != nil {
		return err
	}

	return dashtui.Run(cmd.Context(), dash.NewClient(addr))
}
