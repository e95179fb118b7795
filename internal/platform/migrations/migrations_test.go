package migrations

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/Apurer/go-gin-adoption-api/internal/platform/database"
)

func openTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := database.OpenSQLite(context.Background(), database.MemoryPath, database.Options{})
	require.NoError(t, err)
	t.Cleanup(func() {
		sqlDB, _ := db.DB()
		if sqlDB != nil {
			_ = sqlDB.Close()
		}
	})
	return db
}

func TestUp_AppliesAllThenNothing(t *testing.T) {
	db := openTestDB(t)
	ctx := context.Background()

	applied, err := Up(ctx, db)
	require.NoError(t, err)
	require.Len(t, applied, len(All()))

	again, err := Up(ctx, db)
	require.NoError(t, err)
	assert.Empty(t, again)

	assert.True(t, db.Migrator().HasTable("pets"))
	assert.True(t, db.Migrator().HasTable("adoptions"))
	assert.True(t, db.Migrator().HasColumn(&petRecord{}, "image_url"))
}

func TestStatuses_ReportsPendingAndApplied(t *testing.T) {
	db := openTestDB(t)
	ctx := context.Background()

	before, err := Statuses(ctx, db)
	require.NoError(t, err)
	require.Len(t, before, len(All()))
	for _, st := range before {
		assert.Nil(t, st.AppliedAt, "migration %d should be pending", st.Version)
	}

	_, err = apply(ctx, db, All()[:1])
	require.NoError(t, err)

	after, err := Statuses(ctx, db)
	require.NoError(t, err)
	require.NotNil(t, after[0].AppliedAt)
	assert.Nil(t, after[1].AppliedAt)

	applied, err := Up(ctx, db)
	require.NoError(t, err)
	require.Len(t, applied, len(All())-1)
	assert.Equal(t, 2, applied[0].Version)
}

func TestSchema_AdoptionsReferencePets(t *testing.T) {
	db := openTestDB(t)
	_, err := Up(context.Background(), db)
	require.NoError(t, err)

	orphan := adoptionRecord{
		PetID:        42,
		AdopterName:  "Jane Doe",
		Email:        "jane@example.com",
		Phone:        "555-1234",
		Address:      "1 Main St",
		AdoptionDate: time.Now().UTC(),
	}
	require.Error(t, db.Create(&orphan).Error)

	pet := petRecord{Name: "Max", Breed: "Golden Retriever", Age: 3, Status: "available", CreatedAt: time.Now().UTC()}
	require.NoError(t, db.Create(&pet).Error)
	orphan.PetID = pet.ID
	require.NoError(t, db.Create(&orphan).Error)

	require.NoError(t, db.Delete(&petRecord{}, pet.ID).Error)
	var remaining int64
	require.NoError(t, db.Model(&adoptionRecord{}).Count(&remaining).Error)
	assert.Zero(t, remaining, "adoptions must cascade with their pet")
}

func TestUp_FailedStepIsNotRecorded(t *testing.T) {
	db := openTestDB(t)
	ctx := context.Background()
	broken := []Migration{{Version: 99, Name: "broken", Up: func(tx *gorm.DB) error {
		return tx.Exec("CREATE TABLE").Error
	}}}

	_, err := apply(ctx, db, broken)
	require.Error(t, err)

	var count int64
	require.NoError(t, db.Model(&schemaMigration{}).Where("version = ?", 99).Count(&count).Error)
	assert.Zero(t, count)
}

func TestUp_VersionRecordedByAnotherRunnerIsSkipped(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "adoption.db")
	open := func() *gorm.DB {
		db, err := database.OpenSQLite(ctx, path, database.Options{})
		require.NoError(t, err)
		t.Cleanup(func() {
			if sqlDB, err := db.DB(); err == nil {
				_ = sqlDB.Close()
			}
		})
		return db
	}
	db, other := open(), open()
	require.NoError(t, db.AutoMigrate(&schemaMigration{}))

	racing := []Migration{{Version: 98, Name: "raced", Up: func(*gorm.DB) error {
		return other.Create(&schemaMigration{Version: 98, Name: "raced", AppliedAt: time.Now().UTC()}).Error
	}}}

	applied, err := apply(ctx, db, racing)
	require.NoError(t, err)
	assert.Empty(t, applied)

	var count int64
	require.NoError(t, db.Model(&schemaMigration{}).Where("version = ?", 98).Count(&count).Error)
	assert.Equal(t, int64(1), count)
}
