package appraisal

import "errors"

var (
	ErrPermissionDenied = errors.New("operation requires administrator role")
	ErrFinalLocked      = errors.New("employee record is finally approved and locked")
	ErrEmployeeNotFound = errors.New("employee not found")
	ErrGoalNotFound     = errors.New("goal not found")
	ErrTaskNotFound     = errors.New("task not found")
	ErrValidation       = errors.New("required field missing")
	ErrNotConfirmed     = errors.New("operation requires explicit confirmation")
)
