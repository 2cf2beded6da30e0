package appraisal

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// recordSetKey is the fixed slot the serialized record set lives
// under. Changing it orphans existing data.
const recordSetKey = "hr_performance_system_v3"

// Store persists the record set as one JSONB value in the record_sets
// table.
type Store struct {
	DB *pgxpool.Pool
}

func NewStore(db *pgxpool.Pool) *Store {
	return &Store{DB: db}
}

func (s *Store) Load(ctx context.Context) ([]Employee, error) {
	var raw []byte
	err := s.DB.QueryRow(ctx, "SELECT value FROM record_sets WHERE key = $1", recordSetKey).Scan(&raw)
	if errors.Is(err, pgx.ErrNoRows) {
		return []Employee{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("load record set: %w", err)
	}

	var employees []Employee
	if err := json.Unmarshal(raw, &employees); err != nil {
		return nil, fmt.Errorf("decode record set: %w", err)
	}
	if employees == nil {
		employees = []Employee{}
	}
	return employees, nil
}

func (s *Store) Replace(ctx context.Context, employees []Employee) error {
	if employees == nil {
		employees = []Employee{}
	}
	raw, err := json.Marshal(employees)
	if err != nil {
		return fmt.Errorf("encode record set: %w", err)
	}
	_, err = s.DB.Exec(ctx, `
    INSERT INTO record_sets (key, value, updated_at)
    VALUES ($1, $2, now())
    ON CONFLICT (key) DO UPDATE SET value = EXCLUDED.value, updated_at = now()
  `, recordSetKey, raw)
	if err != nil {
		return fmt.Errorf("replace record set: %w", err)
	}
	return nil
}
