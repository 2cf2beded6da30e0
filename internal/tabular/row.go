// Package tabular defines the flat row contract used to exchange the
// appraisal record set with external spreadsheets, plus a CSV codec
// for it. The core only ever sees []Row; how rows reach or leave the
// process is the caller's concern.
package tabular

// Fixed column labels of the exchange format.
const (
	ColEmployeeName = "Employee Name"
	ColPosition     = "Position"
	ColGoal         = "Goal"
	ColYear         = "Year"
	ColTask         = "Task"
	ColRating       = "Rating"
	ColStatus       = "Status"
)

const (
	// PlaceholderCell marks an absent goal or task in a row.
	PlaceholderCell = "-"
	// StatusApproved is the only status literal that maps to an
	// approved record on import.
	StatusApproved = "Approved"
	// StatusPending labels everything not approved on export.
	StatusPending = "Pending Review"
	// DefaultPosition is assigned when the position cell is blank.
	DefaultPosition = "Employee"
)

// Row is one line of the tabular exchange format. Year 0 means the
// cell was blank or malformed; the reconciler substitutes its default
// year. Rating nil means the cell was blank or non-numeric.
type Row struct {
	EmployeeName string `json:"Employee Name"`
	Position     string `json:"Position,omitempty"`
	Goal         string `json:"Goal"`
	Year         int    `json:"Year"`
	Task         string `json:"Task"`
	Rating       *int   `json:"Rating,omitempty"`
	Status       string `json:"Status"`
}

// Approved maps the status cell to an approval flag.
func (r Row) Approved() bool { return r.Status == StatusApproved }

// StatusLabel renders an approval flag back into the status literal.
func StatusLabel(approved bool) string {
	if approved {
		return StatusApproved
	}
	return StatusPending
}
