package main

import (
	"fmt"
	"log"
	"os"

	"github.com/lintelhq/lintel/dash"
	"github.com/lintelhq/lintel/web"
	"github.com/spf13/cobra"
)

// defaultWebPort is one above the API default so both servers run side
// by side out of the box.
const defaultWebPort = dash.DefaultPort + 1

var webCmd = &cobra.Command{
	Use:   "web",
	Short: "Run the dashboard UI server",
	Long: `Run the dashboard UI server.

The UI talks to a running API server (lintel serve) over HTTP, so the
two can live on different hosts.`,
	Args: cobra.NoArgs,
	RunE: runWeb,
}

var (
	webAddr string
	webAPI  string
)

func init() {
	rootCmd.AddCommand(webCmd)
	webCmd.Flags().StringVar(&webAddr, "addr", "", "Listen address for the UI")
	webCmd.Flags().StringVar(&webAPI, "api", "", "Address of the dashboard API server")
}

func runWeb(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	apiAddr, err := dash.ResolveAddr(webAPI, cfg.APIAddr)
	if err != nil {
		return err
	}

	listenAddr := webAddr
	if listenAddr == "" {
		listenAddr = cfg.WebAddr
	}
	if listenAddr == "" {
		listenAddr = fmt.Sprintf("127.0.0.1:%d", defaultWebPort)
	}

	logger := log.New(os.Stderr, "[web] ", log.LstdFlags)
	handler := web.NewHandler(web.Options{APIAddr: apiAddr, Logger: logger})

	logger.Printf("listening on %s (api %s)", listenAddr, apiAddr)
	return handler.Serve(listenAddr)
}
