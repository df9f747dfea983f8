// Package main implements the lintel CLI tool.
package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/lintelhq/lintel/internal/config"
	"github.com/lintelhq/lintel/project"
	"github.com/spf13/cobra"
)

// defaultPlanFile is used when neither the --plan flag nor config
// names a plan file.
const defaultPlanFile = "lintel.yaml"

func main() {
	if err := rootCmd.Execute(); err != nil {
		var exitErr interface{ ExitCode() int }
		if errors.As(err, &exitErr) {
			os.Exit(exitErr.ExitCode())
		}
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "lintel",
	Short: "Lintel - construction project dashboard",
}

var planFlag string

func init() {
	rootCmd.PersistentFlags().StringVar(&planFlag, "plan", "", "Plan file path (default from config, then lintel.yaml)")
	rootCmd.SilenceUsage = true
}

// loadConfig loads the merged global and project configuration for the
// current directory.
func loadConfig() (*config.Config, error) {
	cwd, err := os.Getwd()
	if err != nil {
		return nil, fmt.Errorf("get working directory: %w", err)
	}
	return config.Load(cwd)
}

// resolvePlanPath picks the plan file: the --plan flag wins, then the
// configured path, then lintel.yaml in the current directory.
func resolvePlanPath() (string, error) {
	if planFlag != "" {
		return planFlag, nil
	}
	cfg, err := loadConfig()
	if err != nil {
		return "", err
	}
	if cfg.Plan != "" {
		return cfg.Plan, nil
	}
	return defaultPlanFile, nil
}

// openPlanStore loads the resolved plan file into a store. Returns the
// plan path so mutating commands can write it back.
func openPlanStore() (*project.Store, string, error) {
	path, err := resolvePlanPath()
	if err != nil {
		return nil, "", err
	}
	store, err := project.LoadPlan(path)
	if err != nil {
		if errors.Is(err, project.ErrNoPlan) {
			return nil, "", fmt.Errorf("%w (run 'lintel init' to create one)", err)
		}
		return nil, "", err
	}
	return store, path, nil
}
