package appraisal

import (
	"context"
	"sync"

	"appraisal/internal/tabular"
)

// Service applies workflow operations against the record store. Every
// mutation loads the current snapshot, transforms it functionally and
// replaces the slot as its last step, so readers always see a
// consistent record set. The mutex enforces the single-writer model:
// exactly one mutating operation runs at a time.
type Service struct {
	Store RecordStore

	mu sync.Mutex
}

func NewService(store RecordStore) *Service {
	return &Service{Store: store}
}

// Snapshot returns the full current record set.
func (s *Service) Snapshot(ctx context.Context) ([]Employee, error) {
	return s.Store.Load(ctx)
}

func (s *Service) AddEmployee(ctx context.Context, session Session, name, position string) error {
	return s.apply(ctx, func(employees []Employee) ([]Employee, error) {
		return AddEmployee(employees, session, name, position)
	})
}

func (s *Service) AddGoal(ctx context.Context, session Session, title string) error {
	return s.apply(ctx, func(employees []Employee) ([]Employee, error) {
		return AddGoal(employees, session, title)
	})
}

func (s *Service) UpsertTask(ctx context.Context, session Session, goalID, taskID string, input TaskInput) error {
	return s.apply(ctx, func(employees []Employee) ([]Employee, error) {
		return UpsertTask(employees, session, goalID, taskID, input)
	})
}

func (s *Service) Evaluate(ctx context.Context, session Session, input EvaluateInput) error {
	return s.apply(ctx, func(employees []Employee) ([]Employee, error) {
		return Evaluate(employees, session, input)
	})
}

func (s *Service) ApproveAll(ctx context.Context, session Session, confirmed bool) error {
	return s.apply(ctx, func(employees []Employee) ([]Employee, error) {
		return ApproveAll(employees, session, confirmed)
	})
}

func (s *Service) DeleteGoal(ctx context.Context, session Session, goalID string, confirmed bool) error {
	return s.apply(ctx, func(employees []Employee) ([]Employee, error) {
		return DeleteGoal(employees, session, goalID, confirmed)
	})
}

// ImportReplace reconciles the rows and replaces the whole record set
// with the result. Employees absent from the rows are gone afterwards;
// this is deliberate replace-not-merge semantics.
func (s *Service) ImportReplace(ctx context.Context, session Session, rows []tabular.Row) error {
	if session.Role != RoleAdmin {
		return ErrPermissionDenied
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.Store.Replace(ctx, Reconcile(rows, session.Year))
}

// ExportRows projects the current record set into tabular rows.
func (s *Service) ExportRows(ctx context.Context) ([]tabular.Row, error) {
	employees, err := s.Store.Load(ctx)
	if err != nil {
		return nil, err
	}
	return Project(employees), nil
}

func (s *Service) apply(ctx context.Context, op func([]Employee) ([]Employee, error)) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	employees, err := s.Store.Load(ctx)
	if err != nil {
		return err
	}
	next, err := op(employees)
	if err != nil {
		return err
	}
	return s.Store.Replace(ctx, next)
}
