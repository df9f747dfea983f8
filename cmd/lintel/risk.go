package main

import (
	"fmt"

	"github.com/lintelhq/lintel/internal/listflags"
	"github.com/lintelhq/lintel/internal/ui"
	"github.com/lintelhq/lintel/project"
	"github.com/spf13/cobra"
)

var riskCmd = &cobra.Command{
	Use:   "risk",
	Short: "Track project risks",
}

// risk add
var riskAddCmd = &cobra.Command{
	Use:   "add <title>",
	Short: "Record a new open risk",
	Args:  cobra.ExactArgs(1),
	RunE:  runRiskAdd,
}

var (
	riskAddProject    string
	riskAddSeverity   string
	riskAddLikelihood string
	riskAddMitigation string
)

// risk list
var riskListCmd = &cobra.Command{
	Use:   "list",
	Short: "List risks, open ones first by severity",
	Args:  cobra.NoArgs,
	RunE:  runRiskList,
}

var (
	riskListProject string
	riskListJSON    bool
	riskListAll     bool
)

// risk close
var riskCloseCmd = &cobra.Command{
	Use:   "close <id>...",
	Short: "Stop tracking one or more risks",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runRiskClose,
}

func init() {
	rootCmd.AddCommand(riskCmd)
	riskCmd.AddCommand(riskAddCmd, riskListCmd, riskCloseCmd)

	// risk add flags
	riskAddCmd.Flags().StringVarP(&riskAddProject, "project", "p", "", "Owning project ID")
	riskAddCmd.Flags().StringVar(&riskAddSeverity, "severity", "", "Impact grade (low, medium, high)")
	riskAddCmd.Flags().StringVar(&riskAddLikelihood, "likelihood", "", "Probability grade (low, medium, high)")
	riskAddCmd.Flags().StringVar(&riskAddMitigation, "mitigation", "", "Planned response")

	// risk list flags
	riskListCmd.Flags().StringVarP(&riskListProject, "project", "p", "", "Filter by project ID")
	riskListCmd.Flags().BoolVar(&riskListJSON, "json", false, "Output as JSON")
	listflags.AddAllFlag(riskListCmd, &riskListAll)

	addProjectFlagAliases(riskAddCmd, riskListCmd)
}

func runRiskAdd(cmd *cobra.Command, args []string) error {
	opts := project.CreateRiskOptions{
		ProjectID:  riskAddProject,
		Mitigation: riskAddMitigation,
	}
	if riskAddSeverity != "" {
		severity, err := project.ParseSeverity(riskAddSeverity)
		if err != nil {
			return err
		}
		opts.Severity = severity
	}
	if riskAddLikelihood != "" {
		likelihood, err := project.ParseSeverity(riskAddLikelihood)
		if err != nil {
			return err
		}
		opts.Likelihood = likelihood
	}

	store, path, err := openPlanStore()
	if err != nil {
		return err
	}
	created, err := store.CreateRisk(args[0], opts)
	if err != nil {
		return err
	}
	if err := project.WritePlan(path, store); err != nil {
		return err
	}

	highlight := highlighterFor(riskIDs(store))
	fmt.Printf("Added risk %s: %s\n", highlight(created.ID), created.Title)
	return nil
}

func runRiskList(cmd *cobra.Command, args []string) error {
	store, _, err := openPlanStore()
	if err != nil {
		return err
	}

	risks, err := store.ListRisks(project.RiskFilter{
		ProjectID: riskListProject,
		OpenOnly:  !riskListAll,
	})
	if err != nil {
		return err
	}

	if riskListJSON {
		return encodeJSONToStdout(risks)
	}
	if len(risks) == 0 {
		fmt.Println("No risks found.")
		return nil
	}

	printRiskTable(risks)
	return nil
}

func runRiskClose(cmd *cobra.Command, args []string) error {
	store, path, err := openPlanStore()
	if err != nil {
		return err
	}

	closed := make([]project.Risk, 0, len(args))
	for _, id := range args {
		item, err := store.CloseRisk(id)
		if err != nil {
			return err
		}
		closed = append(closed, *item)
	}
	if err := project.WritePlan(path, store); err != nil {
		return err
	}

	highlight := highlighterFor(riskIDs(store))
	for _, item := range closed {
		fmt.Printf("Closed risk %s: %s\n", highlight(item.ID), item.Title)
	}
	return nil
}

func riskIDs(store *project.Store) []string {
	risks, err := store.ListRisks(project.RiskFilter{})
	if err != nil {
		return nil
	}
	ids := make([]string, 0, len(risks))
	for _, item := range risks {
		ids = append(ids, item.ID)
	}
	return ids
}

func printRiskTable(risks []project.Risk) {
	ids := make([]string, 0, len(risks))
	for _, item := range risks {
		ids = append(ids, item.ID)
	}
	highlight := logHighlighter(ui.UniqueIDPrefixLengths(ids), ui.HighlightID)

	builder := ui.NewTableBuilder([]string{"ID", "TITLE", "PROJECT", "SEVERITY", "LIKELIHOOD", "OPEN", "MITIGATION"}, len(risks))
	for _, item := range risks {
		open := "yes"
		if !item.Open {
			open = "no"
		}
		builder.AddRow([]string{
			highlight(item.ID),
			ui.TruncateTableCell(item.Title),
			item.ProjectID,
			string(item.Severity),
			string(item.Likelihood),
			open,
			ui.TruncateTableCell(item.Mitigation),
		})
	}
	fmt.Print(builder.String())
}
