package main

import (
	"fmt"

	"github.com/lintelhq/lintel/internal/ui"
	"github.com/lintelhq/lintel/project"
	"github.com/spf13/cobra"
)

var projectCmd = &cobra.Command{
	Use:   "project",
	Short: "Manage projects in the plan",
}

// project add
var projectAddCmd = &cobra.Command{
	Use:   "add <name>",
	Short: "Add a new project",
	Args:  cobra.ExactArgs(1),
	RunE:  runProjectAdd,
}

var (
	projectAddClient      string
	projectAddLocation    string
	projectAddStatus      string
	projectAddBudget      string
	projectAddStart       string
	projectAddEnd         string
	projectAddDescription string
)

// project list
var projectListCmd = &cobra.Command{
	Use:   "list",
	Short: "List projects",
	Args:  cobra.NoArgs,
	RunE:  runProjectList,
}

var (
	projectListStatus string
	projectListJSON   bool
)

// project show
var projectShowCmd = &cobra.Command{
	Use:   "show <id>...",
	Short: "Show detailed information about projects",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runProjectShow,
}

var projectShowJSON bool

// project update
var projectUpdateCmd = &cobra.Command{
	Use:   "update <id>",
	Short: "Update a project",
	Args:  cobra.ExactArgs(1),
	RunE:  runProjectUpdate,
}

var (
	projectUpdateName        string
	projectUpdateClient      string
	projectUpdateLocation    string
	projectUpdateStatus      string
	projectUpdateBudget      string
	projectUpdateStart       string
	projectUpdateEnd         string
	projectUpdateDescription string
)

// project delete
var projectDeleteCmd = &cobra.Command{
	Use:   "delete <id>...",
	Short: "Delete one or more projects and everything referencing them",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runProjectDelete,
}

func init() {
	rootCmd.AddCommand(projectCmd)
	projectCmd.AddCommand(projectAddCmd, projectListCmd, projectShowCmd, projectUpdateCmd, projectDeleteCmd)

	// project add flags
	projectAddCmd.Flags().StringVar(&projectAddClient, "client", "", "Commissioning party")
	projectAddCmd.Flags().StringVar(&projectAddLocation, "location", "", "Site address or area")
	projectAddCmd.Flags().StringVar(&projectAddStatus, "status", "", "Initial status (not-started, in-progress, completed, blocked, on-hold)")
	projectAddCmd.Flags().StringVar(&projectAddBudget, "budget", "", "Approved budget in dollars (e.g. 125000.00)")
	projectAddCmd.Flags().StringVar(&projectAddStart, "start", "", "Planned start date (YYYY-MM-DD)")
	projectAddCmd.Flags().StringVar(&projectAddEnd, "end", "", "Planned completion date (YYYY-MM-DD)")
	projectAddCmd.Flags().StringVarP(&projectAddDescription, "description", "d", "", "Project description")

	// project list flags
	projectListCmd.Flags().StringVar(&projectListStatus, "status", "", "Filter by status")
	projectListCmd.Flags().BoolVar(&projectListJSON, "json", false, "Output as JSON")

	// project show flags
	projectShowCmd.Flags().BoolVar(&projectShowJSON, "json", false, "Output as JSON")

	// project update flags
	projectUpdateCmd.Flags().StringVar(&projectUpdateName, "name", "", "New name")
	projectUpdateCmd.Flags().StringVar(&projectUpdateClient, "client", "", "New client")
	projectUpdateCmd.Flags().StringVar(&projectUpdateLocation, "location", "", "New location")
	projectUpdateCmd.Flags().StringVar(&projectUpdateStatus, "status", "", "New status")
	projectUpdateCmd.Flags().StringVar(&projectUpdateBudget, "budget", "", "New budget in dollars")
	projectUpdateCmd.Flags().StringVar(&projectUpdateStart, "start", "", "New start date (YYYY-MM-DD)")
	projectUpdateCmd.Flags().StringVar(&projectUpdateEnd, "end", "", "New end date (YYYY-MM-DD)")
	projectUpdateCmd.Flags().StringVarP(&projectUpdateDescription, "description", "d", "", "New description")

	addDescriptionFlagAliases(projectAddCmd, projectUpdateCmd)
}

func runProjectAdd(cmd *cobra.Command, args []string) error {
	opts := project.CreateProjectOptions{
		Client:      projectAddClient,
		Location:    projectAddLocation,
		Description: projectAddDescription,
	}
	if projectAddStatus != "" {
		status, err := project.ParseStatus(projectAddStatus)
		if err != nil {
			return err
		}
		opts.Status = status
	}
	if projectAddBudget != "" {
		cents, err := parseMoneyFlag("budget", projectAddBudget)
		if err != nil {
			return err
		}
		opts.BudgetCents = cents
	}
	if projectAddStart != "" {
		start, err := parseDateFlag("start", projectAddStart)
		if err != nil {
			return err
		}
		opts.Start = start
	}
	if projectAddEnd != "" {
		end, err := parseDateFlag("end", projectAddEnd)
		if err != nil {
			return err
		}
		opts.End = end
	}

	store, path, err := openPlanStore()
	if err != nil {
		return err
	}
	created, err := store.CreateProject(args[0], opts)
	if err != nil {
		return err
	}
	if err := project.WritePlan(path, store); err != nil {
		return err
	}

	highlight := highlighterFor(projectIDs(store))
	fmt.Printf("Added project %s: %s\n", highlight(created.ID), created.Name)
	return nil
}

func runProjectList(cmd *cobra.Command, args []string) error {
	store, _, err := openPlanStore()
	if err != nil {
		return err
	}

	filter := project.ProjectFilter{}
	if projectListStatus != "" {
		status, err := project.ParseStatus(projectListStatus)
		if err != nil {
			return err
		}
		filter.Status = status
	}

	projects, err := store.ListProjects(filter)
	if err != nil {
		return err
	}

	if projectListJSON {
		return encodeJSONToStdout(projects)
	}
	if len(projects) == 0 {
		fmt.Println("No projects found.")
		return nil
	}

	printProjectTable(projects)
	return nil
}

func runProjectShow(cmd *cobra.Command, args []string) error {
	store, _, err := openPlanStore()
	if err != nil {
		return err
	}

	projects := make([]project.Project, 0, len(args))
	for _, id := range args {
		found, err := store.GetProject(id)
		if err != nil {
			return err
		}
		projects = append(projects, *found)
	}

	if projectShowJSON {
		return encodeJSONToStdout(projects)
	}

	highlight := highlighterFor(projectIDs(store))
	for i, item := range projects {
		if i > 0 {
			fmt.Println("---")
		}
		printProjectDetail(item, highlight)
	}
	return nil
}

func runProjectUpdate(cmd *cobra.Command, args []string) error {
	if !hasChangedFlags(cmd, "name", "client", "location", "status", "budget", "start", "end", "description") {
		return fmt.Errorf("at least one update flag is required")
	}

	opts := project.UpdateProjectOptions{}
	if cmd.Flags().Changed("name") {
		opts.Name = &projectUpdateName
	}
	if cmd.Flags().Changed("client") {
		opts.Client = &projectUpdateClient
	}
	if cmd.Flags().Changed("location") {
		opts.Location = &projectUpdateLocation
	}
	if cmd.Flags().Changed("status") {
		status, err := project.ParseStatus(projectUpdateStatus)
		if err != nil {
			return err
		}
		opts.Status = &status
	}
	if cmd.Flags().Changed("budget") {
		cents, err := parseMoneyFlag("budget", projectUpdateBudget)
		if err != nil {
			return err
		}
		opts.BudgetCents = &cents
	}
	if cmd.Flags().Changed("start") {
		start, err := parseDateFlag("start", projectUpdateStart)
		if err != nil {
			return err
		}
		opts.Start = &start
	}
	if cmd.Flags().Changed("end") {
		end, err := parseDateFlag("end", projectUpdateEnd)
		if err != nil {
			return err
		}
		opts.End = &end
	}
	if cmd.Flags().Changed("description") {
		opts.Description = &projectUpdateDescription
	}

	store, path, err := openPlanStore()
	if err != nil {
		return err
	}
	updated, err := store.UpdateProject(args[0], opts)
	if err != nil {
		return err
	}
	if err := project.WritePlan(path, store); err != nil {
		return err
	}

	highlight := highlighterFor(projectIDs(store))
	fmt.Printf("Updated project %s: %s\n", highlight(updated.ID), updated.Name)
	return nil
}

func runProjectDelete(cmd *cobra.Command, args []string) error {
	store, path, err := openPlanStore()
	if err != nil {
		return err
	}
	for _, id := range args {
		if err := store.DeleteProject(id); err != nil {
			return err
		}
	}
	if err := project.WritePlan(path, store); err != nil {
		return err
	}

	for _, id := range args {
		fmt.Printf("Deleted project %s\n", id)
	}
	return nil
}

func projectIDs(store *project.Store) []string {
	projects, err := store.ListProjects(project.ProjectFilter{})
	if err != nil {
		return nil
	}
	ids := make([]string, 0, len(projects))
	for _, item := range projects {
		ids = append(ids, item.ID)
	}
	return ids
}

func printProjectTable(projects []project.Project) {
	highlight := logHighlighter(projectPrefixLengths(projects), ui.HighlightID)
	builder := ui.NewTableBuilder([]string{"ID", "NAME", "CLIENT", "STATUS", "BUDGET", "START", "END"}, len(projects))
	for _, item := range projects {
		builder.AddRow([]string{
			highlight(item.ID),
			ui.TruncateTableCell(item.Name),
			ui.TruncateTableCell(item.Client),
			string(item.Status),
			formatMoney(item.BudgetCents),
			formatDateValue(item.Start),
			formatDateValue(item.End),
		})
	}
	fmt.Print(builder.String())
}

func projectPrefixLengths(projects []project.Project) map[string]int {
	ids := make([]string, 0, len(projects))
	for _, item := range projects {
		ids = append(ids, item.ID)
	}
	return ui.UniqueIDPrefixLengths(ids)
}

func printProjectDetail(item project.Project, highlight func(string) string) {
	fmt.Printf("ID:          %s\n", highlight(item.ID))
	fmt.Printf("Name:        %s\n", item.Name)
	fmt.Printf("Client:      %s\n", item.Client)
	fmt.Printf("Location:    %s\n", item.Location)
	fmt.Printf("Status:      %s\n", item.Status)
	fmt.Printf("Budget:      %s\n", formatMoney(item.BudgetCents))
	fmt.Printf("Start:       %s\n", formatDateValue(item.Start))
	fmt.Printf("End:         %s\n", formatDateValue(item.End))
	if item.Description != "" {
		fmt.Printf("Description: %s\n", item.Description)
	}
}
