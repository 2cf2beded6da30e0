package appraisal

import "appraisal/internal/tabular"

// Reconcile merges tabular rows into a fresh set of employee records.
// The result fully replaces the stored set: employees absent from the
// input do not survive an import.
//
// Rows are processed in file order. Employee identity is resolved by
// exact name against employees synthesized in this run only; the first
// occurrence of a name creates the employee with the row's position
// (or the default label when blank). Rows without an employee name are
// skipped. Goals match on (title, year), with the year cell falling
// back to defaultYear; the rating and status cells are carried over at
// goal creation only. Tasks are appended unconditionally, so repeated
// imports duplicate task entries even though employee and goal
// resolution is stable.
func Reconcile(rows []tabular.Row, defaultYear int) []Employee {
	employees := make([]Employee, 0)
	byName := make(map[string]int)

	for _, row := range rows {
		if row.EmployeeName == "" {
			continue
		}

		idx, ok := byName[row.EmployeeName]
		if !ok {
			position := row.Position
			if position == "" {
				position = tabular.DefaultPosition
			}
			employees = append(employees, Employee{
				ID:       NewEmployeeID(),
				Name:     row.EmployeeName,
				Position: position,
				Goals:    []Goal{},
			})
			idx = len(employees) - 1
			byName[row.EmployeeName] = idx
		}

		if row.Goal == "" || row.Goal == tabular.PlaceholderCell {
			continue
		}
		year := row.Year
		if year == 0 {
			year = defaultYear
		}

		goalIdx := -1
		for i, goal := range employees[idx].Goals {
			if goal.Title == row.Goal && goal.Year == year {
				goalIdx = i
				break
			}
		}
		if goalIdx == -1 {
			employees[idx].Goals = append(employees[idx].Goals, Goal{
				ID:          NewGoalID(),
				Title:       row.Goal,
				Year:        year,
				Tasks:       []Task{},
				FinalRating: copyRating(row.Rating),
				IsApproved:  row.Approved(),
			})
			goalIdx = len(employees[idx].Goals) - 1
		}

		if row.Task == "" || row.Task == tabular.PlaceholderCell {
			continue
		}
		goal := &employees[idx].Goals[goalIdx]
		goal.Tasks = append(goal.Tasks, Task{
			ID:            NewTaskID(),
			Name:          row.Task,
			EstimatedDays: 0,
			ExpectedMonth: PlaceholderMonth,
			FinalRating:   copyRating(row.Rating),
			IsApproved:    row.Approved(),
		})
	}

	return employees
}

func copyRating(rating *int) *int {
	if rating == nil {
		return nil
	}
	value := *rating
	return &value
}
