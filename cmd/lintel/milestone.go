package main

import (
	"fmt"

	"github.com/lintelhq/lintel/internal/listflags"
	"github.com/lintelhq/lintel/internal/ui"
	"github.com/lintelhq/lintel/project"
	"github.com/spf13/cobra"
)

var milestoneCmd = &cobra.Command{
	Use:   "milestone",
	Short: "Track dated project milestones",
}

// milestone add
var milestoneAddCmd = &cobra.Command{
	Use:   "add <title>",
	Short: "Add a new milestone",
	Args:  cobra.ExactArgs(1),
	RunE:  runMilestoneAdd,
}

var (
	milestoneAddProject string
	milestoneAddTarget  string
)

// milestone list
var milestoneListCmd = &cobra.Command{
	Use:   "list",
	Short: "List milestones",
	Args:  cobra.NoArgs,
	RunE:  runMilestoneList,
}

var (
	milestoneListProject string
	milestoneListJSON    bool
	milestoneListAll     bool
)

// milestone complete
var milestoneCompleteCmd = &cobra.Command{
	Use:   "complete <id>...",
	Short: "Mark one or more milestones as reached",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runMilestoneComplete,
}

func init() {
	rootCmd.AddCommand(milestoneCmd)
	milestoneCmd.AddCommand(milestoneAddCmd, milestoneListCmd, milestoneCompleteCmd)

	// milestone add flags
	milestoneAddCmd.Flags().StringVarP(&milestoneAddProject, "project", "p", "", "Owning project ID")
	milestoneAddCmd.Flags().StringVar(&milestoneAddTarget, "target", "", "Target date (YYYY-MM-DD)")

	// milestone list flags
	milestoneListCmd.Flags().StringVarP(&milestoneListProject, "project", "p", "", "Filter by project ID")
	milestoneListCmd.Flags().BoolVar(&milestoneListJSON, "json", false, "Output as JSON")
	listflags.AddAllFlag(milestoneListCmd, &milestoneListAll)

	addProjectFlagAliases(milestoneAddCmd, milestoneListCmd)
}

func runMilestoneAdd(cmd *cobra.Command, args []string) error {
	if milestoneAddTarget == "" {
		return fmt.Errorf("--target is required")
	}
	target, err := parseDateFlag("target", milestoneAddTarget)
	if err != nil {
		return err
	}

	store, path, err := openPlanStore()
	if err != nil {
		return err
	}
	created, err := store.CreateMilestone(args[0], project.CreateMilestoneOptions{
		ProjectID: milestoneAddProject,
		Target:    target,
	})
	if err != nil {
		return err
	}
	if err := project.WritePlan(path, store); err != nil {
		return err
	}

	highlight := highlighterFor(milestoneIDs(store))
	fmt.Printf("Added milestone %s: %s (due %s)\n", highlight(created.ID), created.Title, formatDateValue(created.Target))
	return nil
}

func runMilestoneList(cmd *cobra.Command, args []string) error {
	store, _, err := openPlanStore()
	if err != nil {
		return err
	}

	milestones, err := store.ListMilestones(project.MilestoneFilter{
		ProjectID:   milestoneListProject,
		PendingOnly: !milestoneListAll,
	})
	if err != nil {
		return err
	}

	if milestoneListJSON {
		return encodeJSONToStdout(milestones)
	}
	if len(milestones) == 0 {
		fmt.Println("No milestones found.")
		return nil
	}

	printMilestoneTable(milestones)
	return nil
}

func runMilestoneComplete(cmd *cobra.Command, args []string) error {
	store, path, err := openPlanStore()
	if err != nil {
		return err
	}

	completed := make([]project.Milestone, 0, len(args))
	for _, id := range args {
		item, err := store.CompleteMilestone(id)
		if err != nil {
			return err
		}
		completed = append(completed, *item)
	}
	if err := project.WritePlan(path, store); err != nil {
		return err
	}

	highlight := highlighterFor(milestoneIDs(store))
	for _, item := range completed {
		fmt.Printf("Completed milestone %s: %s\n", highlight(item.ID), item.Title)
	}
	return nil
}

func milestoneIDs(store *project.Store) []string {
	milestones, err := store.ListMilestones(project.MilestoneFilter{})
	if err != nil {
		return nil
	}
	ids := make([]string, 0, len(milestones))
	for _, item := range milestones {
		ids = append(ids, item.ID)
	}
	return ids
}

func printMilestoneTable(milestones []project.Milestone) {
	ids := make([]string, 0, len(milestones))
	for _, item := range milestones {
		ids = append(ids, item.ID)
	}
	highlight := logHighlighter(ui.UniqueIDPrefixLengths(ids), ui.HighlightID)

	builder := ui.NewTableBuilder([]string{"ID", "TITLE", "PROJECT", "TARGET", "COMPLETED"}, len(milestones))
	for _, item := range milestones {
		completed := "no"
		if item.Completed {
			completed = "yes"
		}
		builder.AddRow([]string{
			highlight(item.ID),
			ui.TruncateTableCell(item.Title),
			item.ProjectID,
			formatDateValue(item.Target),
			completed,
		})
	}
	fmt.Print(builder.String())
}
