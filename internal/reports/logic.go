package reports

import (
	"strconv"

	"appraisal/internal/domain/appraisal"
)

// Summary aggregates the record set for the admin dashboard.
type Summary struct {
	Employees          int            `json:"employees"`
	FinalApproved      int            `json:"finalApproved"`
	Goals              int            `json:"goals"`
	Tasks              int            `json:"tasks"`
	ApprovedGoals      int            `json:"approvedGoals"`
	ApprovedTasks      int            `json:"approvedTasks"`
	RatingDistribution map[string]int `json:"ratingDistribution"`
}

// BuildSummary walks the record set once and counts entities, approval
// progress and how goal ratings spread across 10-point buckets.
func BuildSummary(employees []appraisal.Employee) Summary {
	summary := Summary{RatingDistribution: map[string]int{}}
	summary.Employees = len(employees)
	for _, emp := range employees {
		if emp.IsFinalApproved {
			summary.FinalApproved++
		}
		for _, goal := range emp.Goals {
			summary.Goals++
			if goal.IsApproved {
				summary.ApprovedGoals++
			}
			if goal.FinalRating != nil {
				bucket := (*goal.FinalRating / 10) * 10
				summary.RatingDistribution[strconv.Itoa(bucket)]++
			}
			for _, task := range goal.Tasks {
				summary.Tasks++
				if task.IsApproved {
					summary.ApprovedTasks++
				}
			}
		}
	}
	return summary
}
