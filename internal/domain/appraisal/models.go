package appraisal

// Employee owns its goals exclusively; goals own their tasks. The
// containment is a strict tree, so snapshot operations rebuild the
// path from employee down to the mutated node and never share mutable
// sub-slices between snapshots.
type Employee struct {
	ID              string `json:"id"`
	Name            string `json:"name"`
	Position        string `json:"position"`
	Goals           []Goal `json:"goals"`
	IsFinalApproved bool   `json:"isFinalApproved,omitempty"`
}

type Goal struct {
	ID            string `json:"id"`
	Title         string `json:"title"`
	Year          int    `json:"year"`
	Tasks         []Task `json:"tasks"`
	FinalRating   *int   `json:"finalRating,omitempty"`
	ActualOutcome string `json:"actualOutcome,omitempty"`
	IsApproved    bool   `json:"isApproved,omitempty"`
}

type Task struct {
	ID            string `json:"id"`
	Name          string `json:"name"`
	EstimatedDays int    `json:"estimatedDays"`
	ExpectedMonth string `json:"expectedMonth"`
	FinalRating   *int   `json:"finalRating,omitempty"`
	ActualOutcome string `json:"actualOutcome,omitempty"`
	IsApproved    bool   `json:"isApproved,omitempty"`
}

const (
	PhasePlanned      = "planned"
	PhaseInExecution  = "in_execution"
	PhaseRatedPending = "rated_pending"
	PhaseApproved     = "approved"
	PhaseFinalLocked  = "final_locked"
)

// Months holds the twelve calendar-month labels tasks are scheduled
// against, January first.
var Months = []string{
	"يناير", "فبراير", "مارس", "أبريل", "مايو", "يونيو",
	"يوليو", "أغسطس", "سبتمبر", "أكتوبر", "نوفمبر", "ديسمبر",
}

// PlaceholderMonth is assigned to tasks synthesized during import,
// whose scheduling fields the tabular contract does not carry.
const PlaceholderMonth = "-"

// Phase derives the lifecycle phase from which optional fields are
// set. An approved record without a rating stays representable (the
// import contract produces them) and classifies as approved.
func (t Task) Phase() string {
	return derivePhase(t.IsApproved, t.FinalRating, t.ActualOutcome)
}

func (g Goal) Phase() string {
	return derivePhase(g.IsApproved, g.FinalRating, g.ActualOutcome)
}

func derivePhase(approved bool, rating *int, outcome string) string {
	switch {
	case approved:
		return PhaseApproved
	case rating != nil:
		return PhaseRatedPending
	case outcome != "":
		return PhaseInExecution
	default:
		return PhasePlanned
	}
}

// FindByName resolves an employee by exact display-name match, the
// identity rule the login surface uses.
func FindByName(employees []Employee, name string) (Employee, bool) {
	for _, emp := range employees {
		if emp.Name == name {
			return emp, true
		}
	}
	return Employee{}, false
}

func FindByID(employees []Employee, id string) (Employee, bool) {
	for _, emp := range employees {
		if emp.ID == id {
			return emp, true
		}
	}
	return Employee{}, false
}
