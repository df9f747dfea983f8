package project

import "time"

// SeedDemo returns a store preloaded with a small construction program.
// Dates are anchored to the reference so the Gantt view has bars in the
// current window regardless of when the demo is generated.
func SeedDemo(reference time.Time) *Store {
	store := NewStore()
	day := func(offset int) time.Time {
		return reference.AddDate(0, 0, offset)
	}

	riverside, _ := store.CreateProject("Riverside Apartments", CreateProjectOptions{
		Client:      "Harbor Development Group",
		Location:    "420 Riverside Dr",
		Status:      StatusInProgress,
		BudgetCents: 4_250_000_00,
		Start:       day(-90),
		End:         day(180),
		Description: "Six-story residential block with ground-floor retail.",
	})
	depot, _ := store.CreateProject("Transit Depot Retrofit", CreateProjectOptions{
		Client:      "Metro Authority",
		Location:    "Bay 3, Central Yard",
		Status:      StatusNotStarted,
		BudgetCents: 1_800_000_00,
		Start:       day(30),
		End:         day(240),
		Description: "Seismic retrofit and roof replacement for the maintenance depot.",
	})

	start := day(-60)
	store.CreateTask("Excavation and shoring", CreateTaskOptions{
		ProjectID: riverside.ID,
		Trade:     "Excavation",
		Assignee:  "Ortiz crew",
		Start:     &start,
		End:       day(-30),
		Status:    StatusCompleted,
	})
	foundationStart := day(-28)
	store.CreateTask("Foundation pour", CreateTaskOptions{
		ProjectID: riverside.ID,
		Trade:     "Concrete",
		Assignee:  "Ortiz crew",
		Start:     &foundationStart,
		End:       day(-7),
		Status:    StatusCompleted,
	})
	framingStart := day(-5)
	store.CreateTask("Structural framing, floors 1-3", CreateTaskOptions{
		ProjectID: riverside.ID,
		Trade:     "Framing",
		Assignee:  "Keller crew",
		Start:     &framingStart,
		End:       day(25),
		Progress:  60,
		Status:    StatusInProgress,
	})
	electricalStart := day(10)
	store.CreateTask("Electrical rough-in", CreateTaskOptions{
		ProjectID: riverside.ID,
		Trade:     "Electrical",
		Assignee:  "Nguyen crew",
		Start:     &electricalStart,
		End:       day(45),
		Progress:  10,
		Status:    StatusInProgress,
	})
	store.CreateTask("Elevator shaft inspection", CreateTaskOptions{
		ProjectID: riverside.ID,
		Trade:     "Inspection",
		End:       day(18),
		Status:    StatusBlocked,
	})
	surveyStart := day(35)
	store.CreateTask("Structural survey", CreateTaskOptions{
		ProjectID: depot.ID,
		Trade:     "Engineering",
		Assignee:  "Patel & Sons",
		Start:     &surveyStart,
		End:       day(60),
		Status:    StatusNotStarted,
	})

	store.CreateRisk("Steel delivery slipping past framing window", CreateRiskOptions{
		ProjectID:  riverside.ID,
		Severity:   SeverityHigh,
		Likelihood: SeverityMedium,
		Mitigation: "Second supplier quoted; decision due this week.",
	})
	store.CreateRisk("Groundwater ingress in the east pit", CreateRiskOptions{
		ProjectID:  riverside.ID,
		Severity:   SeverityMedium,
		Likelihood: SeverityLow,
		Mitigation: "Pumps on standby, drainage review scheduled.",
	})

	store.CreateExpense("Rebar and mesh, foundation", CreateExpenseOptions{
		ProjectID:   riverside.ID,
		Category:    "materials",
		AmountCents: 86_400_00,
		IncurredOn:  day(-25),
	})
	store.CreateExpense("Crane rental, March", CreateExpenseOptions{
		ProjectID:   riverside.ID,
		Category:    "equipment",
		AmountCents: 42_000_00,
		IncurredOn:  day(-10),
	})
	if expenses, err := store.ListExpenses(ExpenseFilter{}); err == nil && len(expenses) > 0 {
		store.ApproveExpense(expenses[0].ID)
	}

	store.CreateMilestone("Foundation complete", CreateMilestoneOptions{
		ProjectID: riverside.ID,
		Target:    day(-7),
	})
	if milestones, err := store.ListMilestones(MilestoneFilter{}); err == nil && len(milestones) > 0 {
		store.CompleteMilestone(milestones[0].ID)
	}
	store.CreateMilestone("Topping out", CreateMilestoneOptions{
		ProjectID: riverside.ID,
		Target:    day(55),
	})
	store.CreateMilestone("Permit package submitted", CreateMilestoneOptions{
		ProjectID: depot.ID,
		Target:    day(40),
	})

	store.PostMessage("Framing inspection passed for floor 1. Floor 2 decking starts tomorrow.", PostMessageOptions{
		ProjectID: riverside.ID,
		Author:    "J. Keller",
	})
	store.PostMessage("Elevator inspector rescheduled to next Tuesday, shaft work stays on hold.", PostMessageOptions{
		ProjectID: riverside.ID,
		Author:    "M. Alvarez",
	})

	return store
}
