package main

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/lintelhq/lintel/assistant"
	"github.com/lintelhq/lintel/playbook"
	"github.com/spf13/cobra"
)

var chatCmd = &cobra.Command{
	Use:   "chat <question>...",
	Short: "Ask the assistant about the current plan",
	Long: `Ask the assistant about the current plan.

The question is sent to the configured assistant endpoint together with
a snapshot of the plan. Playbooks named with --playbook extend the
prompt with site-specific guidance; a playbook that names a model in
its frontmatter overrides the configured model for this question.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runChat,
}

var chatPlaybooks []string

func init() {
	rootCmd.AddCommand(chatCmd)
	chatCmd.Flags().StringArrayVar(&chatPlaybooks, "playbook", nil, "Playbook name to include (repeatable)")
}

func runChat(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	client := assistant.New(assistant.Options{
		Endpoint: cfg.Assistant.Endpoint,
		Model:    cfg.Assistant.Model,
		Key:      cfg.Assistant.APIKey(),
	})

	store, _, err := openPlanStore()
	if err != nil {
		return err
	}

	cwd, err := os.Getwd()
	if err != nil {
		return fmt.Errorf("get working directory: %w", err)
	}
	playbooks := make([]playbook.Playbook, 0, len(chatPlaybooks))
	for _, name := range chatPlaybooks {
		loaded, err := playbook.Load(cwd, name)
		if err != nil {
			return err
		}
		playbooks = append(playbooks, *loaded)
	}

	question := strings.Join(args, " ")
	answer, err := client.Ask(cmd.Context(), question, store.Snapshot(time.Now()), playbooks)
	if err != nil {
		return err
	}

	width := terminalWidth()
	if width < 1 {
		width = 80
	}
	fmt.Print(assistant.RenderAnswer(answer, width))
	return nil
}
