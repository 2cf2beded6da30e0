package reports

import (
	"testing"

	"appraisal/internal/domain/appraisal"
)

func intPtr(v int) *int { return &v }

func TestBuildSummaryCountsHierarchy(t *testing.T) {
	employees := []appraisal.Employee{
		{
			ID: "e1", Name: "Sara", IsFinalApproved: true,
			Goals: []appraisal.Goal{
				{ID: "g1", Title: "Targets", Year: 2024, FinalRating: intPtr(81), IsApproved: true,
					Tasks: []appraisal.Task{
						{ID: "t1", Name: "a", IsApproved: true},
						{ID: "t2", Name: "b"},
					}},
			},
		},
		{
			ID: "e2", Name: "Omar",
			Goals: []appraisal.Goal{{ID: "g2", Title: "Tooling", Year: 2024, FinalRating: intPtr(85)}},
		},
	}

	summary := BuildSummary(employees)
	if summary.Employees != 2 || summary.FinalApproved != 1 {
		t.Fatalf("unexpected employee counts: %+v", summary)
	}
	if summary.Goals != 2 || summary.ApprovedGoals != 1 {
		t.Fatalf("unexpected goal counts: %+v", summary)
	}
	if summary.Tasks != 2 || summary.ApprovedTasks != 1 {
		t.Fatalf("unexpected task counts: %+v", summary)
	}
	if summary.RatingDistribution["80"] != 2 {
		t.Fatalf("expected both ratings in the 80 bucket, got %+v", summary.RatingDistribution)
	}
}

func TestBuildSummaryEmptySet(t *testing.T) {
	summary := BuildSummary(nil)
	if summary.Employees != 0 || summary.Goals != 0 || summary.Tasks != 0 {
		t.Fatalf("expected zero counts, got %+v", summary)
	}
	if len(summary.RatingDistribution) != 0 {
		t.Fatalf("expected empty distribution, got %+v", summary.RatingDistribution)
	}
}
