package main

import (
	"fmt"
	"os"

	"github.com/lintelhq/lintel/playbook"
	"github.com/spf13/cobra"
)

var playbookCmd = &cobra.Command{
	Use:   "playbook",
	Short: "Manage assistant playbooks",
}

// playbook new
var playbookNewCmd = &cobra.Command{
	Use:   "new <name>",
	Short: "Create a new playbook from the template",
	Args:  cobra.ExactArgs(1),
	RunE:  runPlaybookNew,
}

// playbook list
var playbookListCmd = &cobra.Command{
	Use:   "list",
	Short: "List playbooks",
	Args:  cobra.NoArgs,
	RunE:  runPlaybookList,
}

func init() {
	rootCmd.AddCommand(playbookCmd)
	playbookCmd.AddCommand(playbookNewCmd, playbookListCmd)
}

func runPlaybookNew(cmd *cobra.Command, args []string) error {
	cwd, err := os.Getwd()
	if err != nil {
		return fmt.Errorf("get working directory: %w", err)
	}
	path, err := playbook.Create(cwd, args[0])
	if err != nil {
		return err
	}
	fmt.Printf("Created playbook %s\n", path)
	return nil
}

func runPlaybookList(cmd *cobra.Command, args []string) error {
	cwd, err := os.Getwd()
	if err != nil {
		return fmt.Errorf("get working directory: %w", err)
	}
	names, err := playbook.List(cwd)
	if err != nil {
		return err
	}
	if len(names) == 0 {
		fmt.Println("No playbooks found.")
		return nil
	}
	for _, name := range names {
		fmt.Println(name)
	}
	return nil
}
