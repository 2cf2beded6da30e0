package db

import (
	"context"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"appraisal/internal/config"
	"appraisal/internal/domain/appraisal"
	"appraisal/internal/tabular"
)

type seedFile struct {
	Employees []struct {
		Name     string `yaml:"name"`
		Position string `yaml:"position"`
	} `yaml:"employees"`
}

// Seed populates the record slot from an optional YAML file. It only
// runs when the slot is still empty, so it never clobbers live data.
func Seed(ctx context.Context, store appraisal.RecordStore, cfg config.Config) error {
	if cfg.SeedFile == "" {
		return nil
	}

	existing, err := store.Load(ctx)
	if err != nil {
		return err
	}
	if len(existing) > 0 {
		return nil
	}

	raw, err := os.ReadFile(cfg.SeedFile)
	if err != nil {
		return fmt.Errorf("read seed file: %w", err)
	}
	var seed seedFile
	if err := yaml.Unmarshal(raw, &seed); err != nil {
		return fmt.Errorf("decode seed file: %w", err)
	}

	employees := make([]appraisal.Employee, 0, len(seed.Employees))
	for _, entry := range seed.Employees {
		if entry.Name == "" {
			continue
		}
		position := entry.Position
		if position == "" {
			position = tabular.DefaultPosition
		}
		employees = append(employees, appraisal.Employee{
			ID:       appraisal.NewEmployeeID(),
			Name:     entry.Name,
			Position: position,
			Goals:    []appraisal.Goal{},
		})
	}
	if len(employees) == 0 {
		return nil
	}
	return store.Replace(ctx, employees)
}
