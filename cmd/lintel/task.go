package main

import (
	"fmt"
	"time"

	"github.com/lintelhq/lintel/internal/editor"
	"github.com/lintelhq/lintel/internal/listflags"
	"github.com/lintelhq/lintel/internal/ui"
	"github.com/lintelhq/lintel/project"
	"github.com/spf13/cobra"
)

var taskCmd = &cobra.Command{
	Use:   "task",
	Short: "Manage tasks in the plan",
}

// task add
var taskAddCmd = &cobra.Command{
	Use:   "add [title]",
	Short: "Add a new task",
	Long: `Add a new task.

By default, opens $EDITOR to edit a TOML representation of the task
when running interactively and no create flags are provided. Use
--no-edit to skip the editor, or --edit to force opening the editor
even when not interactive.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runTaskAdd,
}

var (
	taskAddProject  string
	taskAddTrade    string
	taskAddAssignee string
	taskAddStart    string
	taskAddEnd      string
	taskAddProgress int
	taskAddStatus   string
	taskAddEdit     bool
	taskAddNoEdit   bool
)

// task list
var taskListCmd = &cobra.Command{
	Use:   "list",
	Short: "List tasks",
	Args:  cobra.NoArgs,
	RunE:  runTaskList,
}

var (
	taskListProject  string
	taskListStatus   string
	taskListAssignee string
	taskListJSON     bool
	taskListAll      bool
)

// task update
var taskUpdateCmd = &cobra.Command{
	Use:   "update <id>...",
	Short: "Update one or more tasks",
	Long: `Update one or more tasks.

By default, opens $EDITOR to edit a TOML representation of the task
when running interactively and no update flags are provided (one editor
session per ID). Use --no-edit to skip the editor, or --edit to force
opening the editor even when not interactive.`,
	Aliases: []string{
		"edit",
	},
	Args: cobra.MinimumNArgs(1),
	RunE: runTaskUpdate,
}

var (
	taskUpdateTitle    string
	taskUpdateTrade    string
	taskUpdateAssignee string
	taskUpdateStart    string
	taskUpdateEnd      string
	taskUpdateProgress int
	taskUpdateStatus   string
	taskUpdateEdit     bool
	taskUpdateNoEdit   bool
)

// task done
var taskDoneCmd = &cobra.Command{
	Use:   "done <id>...",
	Short: "Mark one or more tasks as completed",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runTaskDone,
}

// task block
var taskBlockCmd = &cobra.Command{
	Use:   "block <id>...",
	Short: "Mark one or more tasks as blocked",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runTaskBlock,
}

// task delete
var taskDeleteCmd = &cobra.Command{
	Use:   "delete <id>...",
	Short: "Delete one or more tasks",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runTaskDelete,
}

func init() {
	rootCmd.AddCommand(taskCmd)
	taskCmd.AddCommand(taskAddCmd, taskListCmd, taskUpdateCmd, taskDoneCmd, taskBlockCmd, taskDeleteCmd)

	// task add flags
	taskAddCmd.Flags().StringVarP(&taskAddProject, "project", "p", "", "Owning project ID")
	taskAddCmd.Flags().StringVar(&taskAddTrade, "trade", "", "Trade performing the work")
	taskAddCmd.Flags().StringVar(&taskAddAssignee, "assignee", "", "Crew or person responsible")
	taskAddCmd.Flags().StringVar(&taskAddStart, "start", "", "Planned start date (YYYY-MM-DD)")
	taskAddCmd.Flags().StringVar(&taskAddEnd, "end", "", "Due date (YYYY-MM-DD)")
	taskAddCmd.Flags().IntVar(&taskAddProgress, "progress", 0, "Completion percent (0-100)")
	taskAddCmd.Flags().StringVar(&taskAddStatus, "status", "", "Initial status")
	taskAddCmd.Flags().BoolVarP(&taskAddEdit, "edit", "e", false, "Open $EDITOR (default if interactive and no create flags)")
	taskAddCmd.Flags().BoolVar(&taskAddNoEdit, "no-edit", false, "Do not open $EDITOR")

	// task list flags
	taskListCmd.Flags().StringVarP(&taskListProject, "project", "p", "", "Filter by project ID")
	taskListCmd.Flags().StringVar(&taskListStatus, "status", "", "Filter by status")
	taskListCmd.Flags().StringVar(&taskListAssignee, "assignee", "", "Filter by assignee")
	taskListCmd.Flags().BoolVar(&taskListJSON, "json", false, "Output as JSON")
	listflags.AddAllFlag(taskListCmd, &taskListAll)

	// task update flags
	taskUpdateCmd.Flags().StringVar(&taskUpdateTitle, "title", "", "New title")
	taskUpdateCmd.Flags().StringVar(&taskUpdateTrade, "trade", "", "New trade")
	taskUpdateCmd.Flags().StringVar(&taskUpdateAssignee, "assignee", "", "New assignee")
	taskUpdateCmd.Flags().StringVar(&taskUpdateStart, "start", "", "New start date (YYYY-MM-DD)")
	taskUpdateCmd.Flags().StringVar(&taskUpdateEnd, "end", "", "New due date (YYYY-MM-DD)")
	taskUpdateCmd.Flags().IntVar(&taskUpdateProgress, "progress", 0, "New completion percent (0-100)")
	taskUpdateCmd.Flags().StringVar(&taskUpdateStatus, "status", "", "New status")
	taskUpdateCmd.Flags().BoolVarP(&taskUpdateEdit, "edit", "e", false, "Open $EDITOR (default if interactive)")
	taskUpdateCmd.Flags().BoolVar(&taskUpdateNoEdit, "no-edit", false, "Do not open $EDITOR")

	addProjectFlagAliases(taskAddCmd, taskListCmd)
}

func runTaskAdd(cmd *cobra.Command, args []string) error {
	hasCreateFlags := len(args) > 0 || hasChangedFlags(cmd, "project", "trade", "assignee", "start", "end", "progress", "status")
	useEditor := shouldUseEditor(hasCreateFlags, taskAddEdit, taskAddNoEdit, editor.IsInteractive())

	store, path, err := openPlanStore()
	if err != nil {
		return err
	}

	var created *project.Task
	if useEditor {
		data := editor.DefaultCreateData()
		if len(args) > 0 {
			data.Title = args[0]
		}
		data.Project = taskAddProject
		data.Trade = taskAddTrade
		data.Assignee = taskAddAssignee
		data.Start = taskAddStart
		data.End = taskAddEnd
		if cmd.Flags().Changed("progress") {
			data.Progress = taskAddProgress
		}
		if cmd.Flags().Changed("status") {
			status, err := project.ParseStatus(taskAddStatus)
			if err != nil {
				return err
			}
			data.Status = string(status)
		}

		parsed, err := editor.EditTaskWithData(data)
		if err != nil {
			return err
		}
		created, err = store.CreateTask(parsed.Title, parsed.ToCreateOptions())
		if err != nil {
			return err
		}
	} else {
		if len(args) == 0 {
			return fmt.Errorf("title is required (use --edit to open editor)")
		}
		if taskAddEnd == "" {
			return fmt.Errorf("--end is required (use --edit to open editor)")
		}
		end, err := parseDateFlag("end", taskAddEnd)
		if err != nil {
			return err
		}
		opts := project.CreateTaskOptions{
			ProjectID: taskAddProject,
			Trade:     taskAddTrade,
			Assignee:  taskAddAssignee,
			End:       end,
			Progress:  taskAddProgress,
		}
		if taskAddStart != "" {
			start, err := parseDateFlag("start", taskAddStart)
			if err != nil {
				return err
			}
			opts.Start = &start
		}
		if taskAddStatus != "" {
			status, err := project.ParseStatus(taskAddStatus)
			if err != nil {
				return err
			}
			opts.Status = status
		}
		created, err = store.CreateTask(args[0], opts)
		if err != nil {
			return err
		}
	}

	if err := project.WritePlan(path, store); err != nil {
		return err
	}

	highlight := highlighterFor(taskIDs(store))
	fmt.Printf("Added task %s: %s\n", highlight(created.ID), created.Title)
	return nil
}

func runTaskList(cmd *cobra.Command, args []string) error {
	store, _, err := openPlanStore()
	if err != nil {
		return err
	}

	filter := project.TaskFilter{
		ProjectID: taskListProject,
		Assignee:  taskListAssignee,
	}
	if taskListStatus != "" {
		status, err := project.ParseStatus(taskListStatus)
		if err != nil {
			return err
		}
		filter.Status = status
	}

	tasks, err := store.ListTasks(filter)
	if err != nil {
		return err
	}

	if taskListStatus == "" && !taskListAll {
		filtered := tasks[:0]
		for _, item := range tasks {
			if item.Status != project.StatusCompleted {
				filtered = append(filtered, item)
			}
		}
		tasks = filtered
	}

	if taskListJSON {
		return encodeJSONToStdout(tasks)
	}
	if len(tasks) == 0 {
		fmt.Println("No tasks found.")
		return nil
	}

	printTaskTable(tasks, time.Now())
	return nil
}

func runTaskUpdate(cmd *cobra.Command, args []string) error {
	store, path, err := openPlanStore()
	if err != nil {
		return err
	}

	hasFlags := hasChangedFlags(cmd, "title", "trade", "assignee", "start", "end", "progress", "status")
	useEditor := shouldUseEditor(hasFlags, taskUpdateEdit, taskUpdateNoEdit, editor.IsInteractive())

	updated := make([]project.Task, 0, len(args))
	if useEditor {
		for _, id := range args {
			existing, err := store.GetTask(id)
			if err != nil {
				return err
			}

			data := editor.DataFromTask(existing)
			if cmd.Flags().Changed("title") {
				data.Title = taskUpdateTitle
			}
			if cmd.Flags().Changed("trade") {
				data.Trade = taskUpdateTrade
			}
			if cmd.Flags().Changed("assignee") {
				data.Assignee = taskUpdateAssignee
			}
			if cmd.Flags().Changed("start") {
				data.Start = taskUpdateStart
			}
			if cmd.Flags().Changed("end") {
				data.End = taskUpdateEnd
			}
			if cmd.Flags().Changed("progress") {
				data.Progress = taskUpdateProgress
			}
			if cmd.Flags().Changed("status") {
				data.Status = taskUpdateStatus
			}

			parsed, err := editor.EditTaskWithData(data)
			if err != nil {
				return err
			}
			item, err := store.UpdateTask(id, parsed.ToUpdateOptions())
			if err != nil {
				return err
			}
			updated = append(updated, *item)
		}
	} else {
		if !hasFlags {
			return fmt.Errorf("at least one update flag is required (use --edit to open editor)")
		}

		opts := project.UpdateTaskOptions{}
		if cmd.Flags().Changed("title") {
			opts.Title = &taskUpdateTitle
		}
		if cmd.Flags().Changed("trade") {
			opts.Trade = &taskUpdateTrade
		}
		if cmd.Flags().Changed("assignee") {
			opts.Assignee = &taskUpdateAssignee
		}
		if cmd.Flags().Changed("start") {
			start, err := parseDateFlag("start", taskUpdateStart)
			if err != nil {
				return err
			}
			opts.Start = &start
		}
		if cmd.Flags().Changed("end") {
			end, err := parseDateFlag("end", taskUpdateEnd)
			if err != nil {
				return err
			}
			opts.End = &end
		}
		if cmd.Flags().Changed("progress") {
			opts.Progress = &taskUpdateProgress
		}
		if cmd.Flags().Changed("status") {
			status, err := project.ParseStatus(taskUpdateStatus)
			if err != nil {
				return err
			}
			opts.Status = &status
		}

		for _, id := range args {
			item, err := store.UpdateTask(id, opts)
			if err != nil {
				return err
			}
			updated = append(updated, *item)
		}
	}

	if err := project.WritePlan(path, store); err != nil {
		return err
	}

	printTaskActionResults(store, "Updated", updated)
	return nil
}

func runTaskDone(cmd *cobra.Command, args []string) error {
	return runTaskStatusChange(args, "Completed", project.StatusCompleted)
}

func runTaskBlock(cmd *cobra.Command, args []string) error {
	return runTaskStatusChange(args, "Blocked", project.StatusBlocked)
}

// runTaskStatusChange moves tasks into the given status, stamping
// CompletedAt/BlockedAt through the store's transition rules.
func runTaskStatusChange(args []string, verb string, status project.Status) error {
	store, path, err := openPlanStore()
	if err != nil {
		return err
	}

	updated := make([]project.Task, 0, len(args))
	for _, id := range args {
		item, err := store.UpdateTask(id, project.UpdateTaskOptions{Status: &status})
		if err != nil {
			return err
		}
		updated = append(updated, *item)
	}

	if err := project.WritePlan(path, store); err != nil {
		return err
	}

	printTaskActionResults(store, verb, updated)
	return nil
}

func runTaskDelete(cmd *cobra.Command, args []string) error {
	store, path, err := openPlanStore()
	if err != nil {
		return err
	}
	for _, id := range args {
		if err := store.DeleteTask(id); err != nil {
			return err
		}
	}
	if err := project.WritePlan(path, store); err != nil {
		return err
	}

	for _, id := range args {
		fmt.Printf("Deleted task %s\n", id)
	}
	return nil
}

func taskIDs(store *project.Store) []string {
	tasks, err := store.ListTasks(project.TaskFilter{})
	if err != nil {
		return nil
	}
	ids := make([]string, 0, len(tasks))
	for _, item := range tasks {
		ids = append(ids, item.ID)
	}
	return ids
}

func printTaskActionResults(store *project.Store, verb string, items []project.Task) {
	highlight := highlighterFor(taskIDs(store))
	for _, item := range items {
		fmt.Printf("%s task %s: %s\n", verb, highlight(item.ID), item.Title)
	}
}

func printTaskTable(tasks []project.Task, now time.Time) {
	ids := make([]string, 0, len(tasks))
	for _, item := range tasks {
		ids = append(ids, item.ID)
	}
	highlight := logHighlighter(ui.UniqueIDPrefixLengths(ids), ui.HighlightID)

	builder := ui.NewTableBuilder([]string{"ID", "TITLE", "PROJECT", "TRADE", "ASSIGNEE", "DUE", "PROG", "STATUS"}, len(tasks))
	for _, item := range tasks {
		due := formatDateValue(item.End)
		if item.Overdue(now) {
			due += " !"
		}
		builder.AddRow([]string{
			highlight(item.ID),
			ui.TruncateTableCell(item.Title),
			item.ProjectID,
			item.Trade,
			ui.TruncateTableCell(item.Assignee),
			due,
			fmt.Sprintf("%d%%", item.Progress),
			string(item.Status),
		})
	}
	fmt.Print(builder.String())
}
