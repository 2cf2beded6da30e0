package appraisal

import (
	"testing"

	"appraisal/internal/tabular"
)

func TestReconcileSkipsRowsWithoutEmployeeName(t *testing.T) {
	rows := []tabular.Row{
		{EmployeeName: "", Goal: "Ghost goal", Year: 2024},
		{EmployeeName: "Sara", Position: "Analyst", Goal: "Q1 Targets", Year: 2024},
	}
	employees := Reconcile(rows, 2024)
	if len(employees) != 1 || employees[0].Name != "Sara" {
		t.Fatalf("expected only Sara, got %+v", employees)
	}
}

func TestReconcileDefaultsPositionAndYear(t *testing.T) {
	rows := []tabular.Row{
		{EmployeeName: "Omar", Goal: "Modernize tooling"},
	}
	employees := Reconcile(rows, 2025)
	if employees[0].Position != tabular.DefaultPosition {
		t.Fatalf("expected default position, got %q", employees[0].Position)
	}
	if employees[0].Goals[0].Year != 2025 {
		t.Fatalf("expected fallback year 2025, got %d", employees[0].Goals[0].Year)
	}
}

func TestReconcileFirstRowWinsEmployeeAndGoalFields(t *testing.T) {
	rows := []tabular.Row{
		{EmployeeName: "Sara", Position: "Analyst", Goal: "Q1 Targets", Year: 2024, Rating: intPtr(70), Status: tabular.StatusApproved},
		{EmployeeName: "Sara", Position: "Director", Goal: "Q1 Targets", Year: 2024, Rating: intPtr(10), Status: "whatever"},
	}
	employees := Reconcile(rows, 2024)
	if len(employees) != 1 {
		t.Fatalf("expected one employee, got %d", len(employees))
	}
	if employees[0].Position != "Analyst" {
		t.Fatalf("later rows must not update position, got %q", employees[0].Position)
	}
	goals := employees[0].Goals
	if len(goals) != 1 {
		t.Fatalf("expected one goal for matching (title, year), got %d", len(goals))
	}
	if *goals[0].FinalRating != 70 || !goals[0].IsApproved {
		t.Fatalf("goal creation fields overwritten by later row: %+v", goals[0])
	}
}

func TestReconcileGoalMatchesOnTitleAndYear(t *testing.T) {
	rows := []tabular.Row{
		{EmployeeName: "Sara", Goal: "Targets", Year: 2023},
		{EmployeeName: "Sara", Goal: "Targets", Year: 2024},
	}
	employees := Reconcile(rows, 2024)
	if len(employees[0].Goals) != 2 {
		t.Fatalf("same title in different years must create two goals, got %d", len(employees[0].Goals))
	}
}

func TestReconcilePlaceholderCells(t *testing.T) {
	rows := []tabular.Row{
		{EmployeeName: "Sara", Goal: tabular.PlaceholderCell, Task: "orphan task", Year: 2024},
		{EmployeeName: "Sara", Goal: "Targets", Task: tabular.PlaceholderCell, Year: 2024},
	}
	employees := Reconcile(rows, 2024)
	if len(employees[0].Goals) != 1 {
		t.Fatalf("placeholder goal cell must not create a goal, got %+v", employees[0].Goals)
	}
	if len(employees[0].Goals[0].Tasks) != 0 {
		t.Fatalf("placeholder task cell must not create a task, got %+v", employees[0].Goals[0].Tasks)
	}
}

func TestReconcileAppendsTasksWithoutDeduplication(t *testing.T) {
	row := tabular.Row{
		EmployeeName: "Sara", Goal: "Targets", Year: 2024,
		Task: "Write report", Rating: intPtr(80), Status: tabular.StatusApproved,
	}
	employees := Reconcile([]tabular.Row{row, row}, 2024)

	tasks := employees[0].Goals[0].Tasks
	if len(tasks) != 2 {
		t.Fatalf("tasks append unconditionally, expected 2 got %d", len(tasks))
	}
	for _, task := range tasks {
		if task.Name != "Write report" || *task.FinalRating != 80 || !task.IsApproved {
			t.Fatalf("task fields not carried over: %+v", task)
		}
		if task.EstimatedDays != 0 || task.ExpectedMonth != PlaceholderMonth {
			t.Fatalf("scheduling fields are not part of the import contract: %+v", task)
		}
	}
}

func TestReconcileResolutionIsStableAcrossRuns(t *testing.T) {
	rows := []tabular.Row{
		{EmployeeName: "Sara", Position: "Analyst", Goal: "Targets", Year: 2024, Task: "t1"},
		{EmployeeName: "Omar", Goal: "Tooling", Year: 2024},
	}
	first := Reconcile(rows, 2024)
	second := Reconcile(rows, 2024)

	if len(first) != len(second) {
		t.Fatalf("employee sets differ: %d vs %d", len(first), len(second))
	}
	for i := range first {
		if first[i].Name != second[i].Name || first[i].Position != second[i].Position {
			t.Fatalf("employee resolution unstable at %d", i)
		}
		if len(first[i].Goals) != len(second[i].Goals) {
			t.Fatalf("goal resolution unstable for %s", first[i].Name)
		}
		for j := range first[i].Goals {
			if first[i].Goals[j].Title != second[i].Goals[j].Title || first[i].Goals[j].Year != second[i].Goals[j].Year {
				t.Fatalf("goal identity unstable for %s", first[i].Name)
			}
		}
	}
}

func TestReconcileRatingCellsAreIndependent(t *testing.T) {
	rows := []tabular.Row{
		{EmployeeName: "Sara", Goal: "Targets", Year: 2024, Task: "t1", Rating: intPtr(50)},
	}
	employees := Reconcile(rows, 2024)
	goal := employees[0].Goals[0]
	*goal.Tasks[0].FinalRating = 99
	if *goal.FinalRating != 50 {
		t.Fatal("goal and task ratings must not share storage")
	}
}
