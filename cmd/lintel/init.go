package main

import (
	"fmt"
	"os"
	"time"

	"github.com/lintelhq/lintel/project"
	"github.com/spf13/cobra"
)

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Create a new plan file",
	Long: `Create a new plan file.

The plan path comes from --plan, then config, then lintel.yaml in the
current directory. With --demo the plan is seeded with a small
construction program so the dashboard has something to show.`,
	Args: cobra.NoArgs,
	RunE: runInit,
}

var initDemo bool

func init() {
	rootCmd.AddCommand(initCmd)
	initCmd.Flags().BoolVar(&initDemo, "demo", false, "Seed the plan with demo data")
}

func runInit(cmd *cobra.Command, args []string) error {
	path, err := resolvePlanPath()
	if err != nil {
		return err
	}
	if _, err := os.Stat(path); err == nil {
		return fmt.Errorf("plan file already exists: %s", path)
	}

	store := project.NewStore()
	if initDemo {
		store = project.SeedDemo(time.Now())
	}
	if err := project.WritePlan(path, store); err != nil {
		return err
	}

	fmt.Printf("Initialized plan %s\n", path)
	return nil
}
