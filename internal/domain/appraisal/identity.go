package appraisal

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

// newID combines a timestamp with a random fragment so that entities
// created in rapid succession never collide.
func newID(prefix string) string {
	return fmt.Sprintf("%s_%d_%s", prefix, time.Now().UnixNano(), uuid.NewString()[:8])
}

func NewEmployeeID() string { return newID("emp") }
func NewGoalID() string     { return newID("goal") }
func NewTaskID() string     { return newID("task") }
