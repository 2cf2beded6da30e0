package appraisal

import "appraisal/internal/tabular"

// Project flattens the record set into tabular rows: one row per task,
// or a single placeholder row for a goal without tasks. Rows follow
// stored iteration order (employee, then goal, then task). Ratings
// default to 0 when undefined; the approval flag becomes the status
// label the import side recognizes.
func Project(employees []Employee) []tabular.Row {
	var rows []tabular.Row
	for _, emp := range employees {
		for _, goal := range emp.Goals {
			if len(goal.Tasks) == 0 {
				rating := EffectiveGoalRating(goal)
				rows = append(rows, tabular.Row{
					EmployeeName: emp.Name,
					Position:     emp.Position,
					Goal:         goal.Title,
					Year:         goal.Year,
					Task:         tabular.PlaceholderCell,
					Rating:       &rating,
					Status:       tabular.StatusLabel(goal.IsApproved),
				})
				continue
			}
			for _, task := range goal.Tasks {
				rating := EffectiveTaskRating(task)
				rows = append(rows, tabular.Row{
					EmployeeName: emp.Name,
					Position:     emp.Position,
					Goal:         goal.Title,
					Year:         goal.Year,
					Task:         task.Name,
					Rating:       &rating,
					Status:       tabular.StatusLabel(task.IsApproved),
				})
			}
		}
	}
	return rows
}
