package main

import (
	"fmt"

	"github.com/lintelhq/lintel/internal/ui"
	"github.com/lintelhq/lintel/project"
	"github.com/spf13/cobra"
)

var expenseCmd = &cobra.Command{
	Use:   "expense",
	Short: "Book costs against projects",
}

// expense add
var expenseAddCmd = &cobra.Command{
	Use:   "add <description>",
	Short: "Book a new unapproved expense",
	Args:  cobra.ExactArgs(1),
	RunE:  runExpenseAdd,
}

var (
	expenseAddProject  string
	expenseAddCategory string
	expenseAddAmount   string
	expenseAddDate     string
)

// expense list
var expenseListCmd = &cobra.Command{
	Use:   "list",
	Short: "List expenses",
	Args:  cobra.NoArgs,
	RunE:  runExpenseList,
}

var (
	expenseListProject  string
	expenseListCategory string
	expenseListApproved bool
	expenseListJSON     bool
)

// expense approve
var expenseApproveCmd = &cobra.Command{
	Use:   "approve <id>...",
	Short: "Sign off one or more expenses",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runExpenseApprove,
}

func init() {
	rootCmd.AddCommand(expenseCmd)
	expenseCmd.AddCommand(expenseAddCmd, expenseListCmd, expenseApproveCmd)

	// expense add flags
	expenseAddCmd.Flags().StringVarP(&expenseAddProject, "project", "p", "", "Owning project ID")
	expenseAddCmd.Flags().StringVar(&expenseAddCategory, "category", "", "Category (materials, labor, equipment, permits, ...)")
	expenseAddCmd.Flags().StringVar(&expenseAddAmount, "amount", "", "Amount in dollars (e.g. 1250.00)")
	expenseAddCmd.Flags().StringVar(&expenseAddDate, "date", "", "Date incurred (YYYY-MM-DD, defaults to today)")

	// expense list flags
	expenseListCmd.Flags().StringVarP(&expenseListProject, "project", "p", "", "Filter by project ID")
	expenseListCmd.Flags().StringVar(&expenseListCategory, "category", "", "Filter by category")
	expenseListCmd.Flags().BoolVar(&expenseListApproved, "approved", false, "Only signed-off expenses")
	expenseListCmd.Flags().BoolVar(&expenseListJSON, "json", false, "Output as JSON")

	addProjectFlagAliases(expenseAddCmd, expenseListCmd)
}

func runExpenseAdd(cmd *cobra.Command, args []string) error {
	if expenseAddAmount == "" {
		return fmt.Errorf("--amount is required")
	}
	cents, err := parseMoneyFlag("amount", expenseAddAmount)
	if err != nil {
		return err
	}

	opts := project.CreateExpenseOptions{
		ProjectID:   expenseAddProject,
		Category:    expenseAddCategory,
		AmountCents: cents,
	}
	if expenseAddDate != "" {
		incurred, err := parseDateFlag("date", expenseAddDate)
		if err != nil {
			return err
		}
		opts.IncurredOn = incurred
	}

	store, path, err := openPlanStore()
	if err != nil {
		return err
	}
	created, err := store.CreateExpense(args[0], opts)
	if err != nil {
		return err
	}
	if err := project.WritePlan(path, store); err != nil {
		return err
	}

	highlight := highlighterFor(expenseIDs(store))
	fmt.Printf("Booked expense %s: %s (%s)\n", highlight(created.ID), created.Description, formatMoney(created.AmountCents))
	return nil
}

func runExpenseList(cmd *cobra.Command, args []string) error {
	store, _, err := openPlanStore()
	if err != nil {
		return err
	}

	expenses, err := store.ListExpenses(project.ExpenseFilter{
		ProjectID:    expenseListProject,
		ApprovedOnly: expenseListApproved,
		Category:     expenseListCategory,
	})
	if err != nil {
		return err
	}

	if expenseListJSON {
		return encodeJSONToStdout(expenses)
	}
	if len(expenses) == 0 {
		fmt.Println("No expenses found.")
		return nil
	}

	printExpenseTable(expenses)
	return nil
}

func runExpenseApprove(cmd *cobra.Command, args []string) error {
	store, path, err := openPlanStore()
	if err != nil {
		return err
	}

	approved := make([]project.Expense, 0, len(args))
	for _, id := range args {
		item, err := store.ApproveExpense(id)
		if err != nil {
			return err
		}
		approved = append(approved, *item)
	}
	if err := project.WritePlan(path, store); err != nil {
		return err
	}

	highlight := highlighterFor(expenseIDs(store))
	for _, item := range approved {
		fmt.Printf("Approved expense %s: %s (%s)\n", highlight(item.ID), item.Description, formatMoney(item.AmountCents))
	}
	return nil
}

func expenseIDs(store *project.Store) []string {
	expenses, err := store.ListExpenses(project.ExpenseFilter{})
	if err != nil {
		return nil
	}
	ids := make([]string, 0, len(expenses))
	for _, item := range expenses {
		ids = append(ids, item.ID)
	}
	return ids
}

func printExpenseTable(expenses []project.Expense) {
	ids := make([]string, 0, len(expenses))
	for _, item := range expenses {
		ids = append(ids, item.ID)
	}
	highlight := logHighlighter(ui.UniqueIDPrefixLengths(ids), ui.HighlightID)

	builder := ui.NewTableBuilder([]string{"ID", "DESCRIPTION", "PROJECT", "CATEGORY", "AMOUNT", "DATE", "APPROVED"}, len(expenses))
	for _, item := range expenses {
		approved := "no"
		if item.Approved {
			approved = "yes"
		}
		builder.AddRow([]string{
			highlight(item.ID),
			ui.TruncateTableCell(item.Description),
			item.ProjectID,
			item.Category,
			formatMoney(item.AmountCents),
			formatDateValue(item.IncurredOn),
			approved,
		})
	}
	fmt.Print(builder.String())
}
