// Package migrations owns the relational schema. Steps are versioned, applied in
// order inside their own transaction, and recorded in schema_migrations so that
// re-running is a no-op.
package migrations

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"time"

	"gorm.io/gorm"

	"github.com/Apurer/go-gin-adoption-api/internal/platform/database"
)

// errAlreadyRecorded marks a step another runner recorded between our read and our insert.
var errAlreadyRecorded = errors.New("migration already recorded")

// Migration is a single forward-only schema step.
type Migration struct {
	Version int
	Name    string
	Up      func(tx *gorm.DB) error
}

// Status describes whether a known migration has been applied.
type Status struct {
	Version   int
	Name      string
	AppliedAt *time.Time
}

type schemaMigration struct {
	Version   int       `gorm:"primaryKey;autoIncrement:false;column:version"`
	Name      string    `gorm:"column:name;not null"`
	AppliedAt time.Time `gorm:"column:applied_at;not null"`
}

func (schemaMigration) TableName() string { return "schema_migrations" }

// All returns the registered migrations ordered by version.
func All() []Migration {
	list := []Migration{
		{Version: 1, Name: "create_pets", Up: createPets},
		{Version: 2, Name: "create_adoptions", Up: createAdoptions},
		{Version: 3, Name: "widen_pets_image_url", Up: widenPetsImageURL},
	}
	sort.Slice(list, func(i, j int) bool { return list[i].Version < list[j].Version })
	return list
}

// Up applies every pending migration and returns the ones it applied.
func Up(ctx context.Context, db *gorm.DB) ([]Migration, error) {
	return apply(ctx, db, All())
}

func apply(ctx context.Context, db *gorm.DB, steps []Migration) ([]Migration, error) {
	if db == nil {
		return nil, fmt.Errorf("migrations: database not configured")
	}
	var applied []Migration
	err := NewLocker(db).WithLock(ctx, func() error {
		if err := db.WithContext(ctx).AutoMigrate(&schemaMigration{}); err != nil {
			return fmt.Errorf("create schema_migrations: %w", err)
		}
		done, err := appliedVersions(ctx, db)
		if err != nil {
			return err
		}
		for _, step := range steps {
			if _, ok := done[step.Version]; ok {
				continue
			}
			err := db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
				if err := step.Up(tx); err != nil {
					return err
				}
				err := tx.Create(&schemaMigration{
					Version:   step.Version,
					Name:      step.Name,
					AppliedAt: time.Now().UTC(),
				}).Error
				if database.IsUniqueViolation(err) {
					return errAlreadyRecorded
				}
				return err
			})
			if errors.Is(err, errAlreadyRecorded) {
				continue
			}
			if err != nil {
				return fmt.Errorf("migration %d_%s: %w", step.Version, step.Name, err)
			}
			applied = append(applied, step)
		}
		return nil
	})
	return applied, err
}

// Statuses lists every known migration together with its applied time, if any.
func Statuses(ctx context.Context, db *gorm.DB) ([]Status, error) {
	if db == nil {
		return nil, fmt.Errorf("migrations: database not configured")
	}
	if err := db.WithContext(ctx).AutoMigrate(&schemaMigration{}); err != nil {
		return nil, fmt.Errorf("create schema_migrations: %w", err)
	}
	done, err := appliedVersions(ctx, db)
	if err != nil {
		return nil, err
	}
	steps := All()
	result := make([]Status, 0, len(steps))
	for _, step := range steps {
		status := Status{Version: step.Version, Name: step.Name}
		if rec, ok := done[step.Version]; ok {
			appliedAt := rec.AppliedAt
			status.AppliedAt = &appliedAt
		}
		result = append(result, status)
	}
	return result, nil
}

func appliedVersions(ctx context.Context, db *gorm.DB) (map[int]schemaMigration, error) {
	var records []schemaMigration
	if err := db.WithContext(ctx).Order("version").Find(&records).Error; err != nil {
		return nil, fmt.Errorf("load schema_migrations: %w", err)
	}
	done := make(map[int]schemaMigration, len(records))
	for _, rec := range records {
		done[rec.Version] = rec
	}
	return done, nil
}
