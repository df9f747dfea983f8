package main

import (
	"errors"
	"log"
	"os"
	"time"

	"github.com/lintelhq/lintel/assistant"
	"github.com/lintelhq/lintel/dash"
	"github.com/lintelhq/lintel/project"
	"github.com/spf13/cobra"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the dashboard API server",
	Long: `Run the dashboard API server.

The server seeds its in-memory store from the plan file when one
exists, and from demo data otherwise. It never writes the plan back;
state changes live only as long as the process.`,
	Args: cobra.NoArgs,
	RunE: runServe,
}

var serveAddr string

func init() {
	rootCmd.AddCommand(serveCmd)
	serveCmd.Flags().StringVar(&serveAddr, "addr", "", "Listen address (host:port, :port, or a bare port)")
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	addr, err := dash.ResolveAddr(serveAddr, cfg.APIAddr)
	if err != nil {
		return err
	}

	logger := log.New(os.Stderr, "[dash] ", log.LstdFlags)

	path, err := resolvePlanPath()
	if err != nil {
		return err
	}
	store, err := project.LoadPlan(path)
	if errors.Is(err, project.ErrNoPlan) {
		logger.Printf("no plan at %s, seeding demo data", path)
		store = project.SeedDemo(time.Now())
	} else if err != nil {
		return err
	} else {
		logger.Printf("seeded store from %s", path)
	}

	var chat *assistant.Client
	if key := cfg.Assistant.APIKey(); key != "" {
		chat = assistant.New(assistant.Options{
			Endpoint: cfg.Assistant.Endpoint,
			Model:    cfg.Assistant.Model,
			Key:      key,
		})
	} else {
		logger.Printf("assistant key not set, chat endpoint disabled")
	}

	server, err := dash.NewServer(dash.ServerOptions{
		Store:     store,
		Assistant: chat,
		Logger:    logger,
	})
	if err != nil {
		return err
	}

	logger.Printf("listening on %s", addr)
	return server.Serve(cmd.Context(), addr)
}
