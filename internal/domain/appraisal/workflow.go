package appraisal

import "strings"

const (
	RoleAdmin    = "admin"
	RoleEmployee = "employee"
)

// Session carries the acting identity and the selection state every
// workflow operation runs under. EmployeeID is the record being acted
// on; ActorID is the caller's own employee id (empty for the
// administrator). Year scopes goal creation and import defaults.
type Session struct {
	Role       string
	ActorID    string
	EmployeeID string
	Year       int
}

func (s Session) isAdmin() bool { return s.Role == RoleAdmin }

// actsOnSelf reports whether an employee caller targets their own
// record, the only non-administrator access the model allows.
func (s Session) actsOnSelf() bool {
	return s.Role == RoleEmployee && s.ActorID != "" && s.ActorID == s.EmployeeID
}

// EvaluateInput is the payload of an Evaluate operation. TaskID empty
// means goal granularity. Rating and Approve are administrator-only
// and ignored for employee callers.
type EvaluateInput struct {
	GoalID  string
	TaskID  string
	Outcome string
	Rating  *int
	Approve bool
}

// TaskInput carries the scheduling fields of an add or edit. Editing
// never touches rating, approval or outcome.
type TaskInput struct {
	Name          string
	EstimatedDays int
	ExpectedMonth string
}

// AddEmployee appends a new employee with no goals.
func AddEmployee(employees []Employee, session Session, name, position string) ([]Employee, error) {
	if !session.isAdmin() {
		return nil, ErrPermissionDenied
	}
	if strings.TrimSpace(name) == "" || strings.TrimSpace(position) == "" {
		return nil, ErrValidation
	}
	next := make([]Employee, 0, len(employees)+1)
	next = append(next, employees...)
	next = append(next, Employee{
		ID:       NewEmployeeID(),
		Name:     name,
		Position: position,
		Goals:    []Goal{},
	})
	return next, nil
}

// AddGoal appends an empty goal for the session year to the selected
// employee.
func AddGoal(employees []Employee, session Session, title string) ([]Employee, error) {
	if !session.isAdmin() {
		return nil, ErrPermissionDenied
	}
	if strings.TrimSpace(title) == "" {
		return nil, ErrValidation
	}
	return updateEmployee(employees, session.EmployeeID, func(emp Employee) (Employee, error) {
		if emp.IsFinalApproved {
			return emp, ErrFinalLocked
		}
		goals := append(append([]Goal{}, emp.Goals...), Goal{
			ID:    NewGoalID(),
			Title: title,
			Year:  session.Year,
			Tasks: []Task{},
		})
		emp.Goals = goals
		return emp, nil
	})
}

// UpsertTask creates a task under the goal when taskID is empty, and
// otherwise rewrites the scheduling fields of the identified task.
func UpsertTask(employees []Employee, session Session, goalID, taskID string, input TaskInput) ([]Employee, error) {
	if !session.isAdmin() {
		return nil, ErrPermissionDenied
	}
	if strings.TrimSpace(input.Name) == "" || input.EstimatedDays < 0 {
		return nil, ErrValidation
	}
	return updateGoal(employees, session.EmployeeID, goalID, func(goal Goal) (Goal, error) {
		if taskID == "" {
			goal.Tasks = append(append([]Task{}, goal.Tasks...), Task{
				ID:            NewTaskID(),
				Name:          input.Name,
				EstimatedDays: input.EstimatedDays,
				ExpectedMonth: input.ExpectedMonth,
			})
			return goal, nil
		}
		return updateTask(goal, taskID, func(task Task) Task {
			task.Name = input.Name
			task.EstimatedDays = input.EstimatedDays
			task.ExpectedMonth = input.ExpectedMonth
			return task
		})
	})
}

// Evaluate records an execution outcome. At task granularity an
// administrator additionally sets the task rating and approval, then
// the goal rating is recomputed from all its tasks, overwriting any
// value the goal held. At goal granularity the goal's own fields are
// written and tasks stay untouched. Employee callers may only write
// outcome text, and only on their own record.
func Evaluate(employees []Employee, session Session, input EvaluateInput) ([]Employee, error) {
	if !session.isAdmin() && !session.actsOnSelf() {
		return nil, ErrPermissionDenied
	}
	if strings.TrimSpace(input.Outcome) == "" {
		return nil, ErrValidation
	}
	return updateGoal(employees, session.EmployeeID, input.GoalID, func(goal Goal) (Goal, error) {
		if input.TaskID != "" {
			updated, err := updateTask(goal, input.TaskID, func(task Task) Task {
				task.ActualOutcome = input.Outcome
				if session.isAdmin() {
					if input.Rating != nil {
						rating := *input.Rating
						task.FinalRating = &rating
					}
					task.IsApproved = input.Approve
				}
				return task
			})
			if err != nil {
				return goal, err
			}
			goal = updated
			if session.isAdmin() {
				rating := AggregateGoalRating(goal.Tasks)
				goal.FinalRating = &rating
			}
			return goal, nil
		}

		goal.ActualOutcome = input.Outcome
		if session.isAdmin() {
			if input.Rating != nil {
				rating := *input.Rating
				goal.FinalRating = &rating
			}
			goal.IsApproved = input.Approve
		}
		return goal, nil
	})
}

// ApproveAll sets the employee-wide final lock and marks every goal
// and task approved. Ratings and outcomes are left as they are. There
// is no unset operation.
func ApproveAll(employees []Employee, session Session, confirmed bool) ([]Employee, error) {
	if !session.isAdmin() {
		return nil, ErrPermissionDenied
	}
	if !confirmed {
		return nil, ErrNotConfirmed
	}
	return updateEmployee(employees, session.EmployeeID, func(emp Employee) (Employee, error) {
		if emp.IsFinalApproved {
			return emp, ErrFinalLocked
		}
		goals := make([]Goal, len(emp.Goals))
		for i, goal := range emp.Goals {
			tasks := make([]Task, len(goal.Tasks))
			for j, task := range goal.Tasks {
				task.IsApproved = true
				tasks[j] = task
			}
			goal.Tasks = tasks
			goal.IsApproved = true
			goals[i] = goal
		}
		emp.Goals = goals
		emp.IsFinalApproved = true
		return emp, nil
	})
}

// DeleteGoal removes the goal and, with it, all its tasks.
func DeleteGoal(employees []Employee, session Session, goalID string, confirmed bool) ([]Employee, error) {
	if !session.isAdmin() {
		return nil, ErrPermissionDenied
	}
	if !confirmed {
		return nil, ErrNotConfirmed
	}
	return updateEmployee(employees, session.EmployeeID, func(emp Employee) (Employee, error) {
		if emp.IsFinalApproved {
			return emp, ErrFinalLocked
		}
		goals := make([]Goal, 0, len(emp.Goals))
		found := false
		for _, goal := range emp.Goals {
			if goal.ID == goalID {
				found = true
				continue
			}
			goals = append(goals, goal)
		}
		if !found {
			return emp, ErrGoalNotFound
		}
		emp.Goals = goals
		return emp, nil
	})
}

// updateEmployee rebuilds the employee slice with fn applied to the
// identified employee, leaving the input snapshot untouched.
func updateEmployee(employees []Employee, employeeID string, fn func(Employee) (Employee, error)) ([]Employee, error) {
	next := make([]Employee, len(employees))
	found := false
	for i, emp := range employees {
		if emp.ID == employeeID {
			updated, err := fn(emp)
			if err != nil {
				return nil, err
			}
			next[i] = updated
			found = true
			continue
		}
		next[i] = emp
	}
	if !found {
		return nil, ErrEmployeeNotFound
	}
	return next, nil
}

func updateGoal(employees []Employee, employeeID, goalID string, fn func(Goal) (Goal, error)) ([]Employee, error) {
	return updateEmployee(employees, employeeID, func(emp Employee) (Employee, error) {
		if emp.IsFinalApproved {
			return emp, ErrFinalLocked
		}
		goals := make([]Goal, len(emp.Goals))
		found := false
		for i, goal := range emp.Goals {
			if goal.ID == goalID {
				updated, err := fn(goal)
				if err != nil {
					return emp, err
				}
				goals[i] = updated
				found = true
				continue
			}
			goals[i] = goal
		}
		if !found {
			return emp, ErrGoalNotFound
		}
		emp.Goals = goals
		return emp, nil
	})
}

func updateTask(goal Goal, taskID string, fn func(Task) Task) (Goal, error) {
	tasks := make([]Task, len(goal.Tasks))
	found := false
	for i, task := range goal.Tasks {
		if task.ID == taskID {
			tasks[i] = fn(task)
			found = true
			continue
		}
		tasks[i] = task
	}
	if !found {
		return goal, ErrTaskNotFound
	}
	goal.Tasks = tasks
	return goal, nil
}
