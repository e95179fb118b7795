//go:build integration
// +build integration

// To enable gopls support for this file, add the following to your VSCode settings.json:
// "gopls": {
//   "buildFlags": ["-tags=integration"]
// }

package gormstore_test

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	tcpostgres "github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	"gorm.io/gorm"

	"github.com/Apurer/go-gin-adoption-api/internal/domains/adoptions/adapters/persistence/gormstore"
	"github.com/Apurer/go-gin-adoption-api/internal/domains/adoptions/application"
	petstore "github.com/Apurer/go-gin-adoption-api/internal/domains/pets/adapters/persistence/gormstore"
	petdomain "github.com/Apurer/go-gin-adoption-api/internal/domains/pets/domain"
	petports "github.com/Apurer/go-gin-adoption-api/internal/domains/pets/ports"
	"github.com/Apurer/go-gin-adoption-api/internal/platform/database"
	"github.com/Apurer/go-gin-adoption-api/internal/platform/migrations"
)

func setupPostgresContainer(t *testing.T) *gorm.DB {
	t.Helper()
	ctx := context.Background()

	pgContainer, err := tcpostgres.Run(ctx, "postgres:15-alpine",
		tcpostgres.WithDatabase("adoption_test"),
		tcpostgres.WithUsername("test"),
		tcpostgres.WithPassword("test"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(30*time.Second),
		),
	)
	require.NoError(t, err)
	t.Cleanup(func() {
		_ = pgContainer.Terminate(context.Background())
	})

	dsn, err := pgContainer.ConnectionString(ctx, "sslmode=disable")
	require.NoError(t, err)

	db, err := database.OpenPostgres(ctx, dsn, database.Options{})
	require.NoError(t, err)
	t.Cleanup(func() {
		sqlDB, _ := db.DB()
		if sqlDB != nil {
			_ = sqlDB.Close()
		}
	})

	_, err = migrations.Up(ctx, db)
	require.NoError(t, err)
	return db
}

func TestPostgres_MigrationsAreIdempotent(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}
	db := setupPostgresContainer(t)
	ctx := context.Background()

	var wg sync.WaitGroup
	errs := make([]error, 3)
	for i := range errs {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, errs[i] = migrations.Up(ctx, db)
		}(i)
	}
	wg.Wait()
	for _, err := range errs {
		require.NoError(t, err)
	}

	statuses, err := migrations.Statuses(ctx, db)
	require.NoError(t, err)
	require.Len(t, statuses, len(migrations.All()))
	for _, s := range statuses {
		assert.NotNil(t, s.AppliedAt, "migration %d should be applied", s.Version)
	}
}

func TestPostgres_AdoptCommitsAndLists(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}
	db := setupPostgresContainer(t)
	pets := petstore.NewRepository(db)
	svc := application.NewService(gormstore.NewStore(db), pets)
	ctx := context.Background()

	first := seedPet(t, pets, "Rex")
	second := seedPet(t, pets, "Milo")

	_, err := svc.Adopt(ctx, adoptInput(first))
	require.NoError(t, err)
	time.Sleep(5 * time.Millisecond)
	receipt, err := svc.Adopt(ctx, adoptInput(second))
	require.NoError(t, err)

	rows, err := svc.ListAdopted(ctx)
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, receipt.AdoptionID, rows[0].AdoptionID)
	assert.Equal(t, "Milo", rows[0].PetName)
	assert.Equal(t, "Jane Doe", rows[0].Contact.AdopterName)

	pet, err := pets.GetByID(ctx, first)
	require.NoError(t, err)
	assert.Equal(t, petdomain.StatusAdopted, pet.Status)

	available, err := pets.ListAvailable(ctx)
	require.NoError(t, err)
	assert.Empty(t, available)
}

func TestPostgres_AdoptUnknownPetRollsBack(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}
	db := setupPostgresContainer(t)
	svc := application.NewService(gormstore.NewStore(db), petstore.NewRepository(db))

	_, err := svc.Adopt(context.Background(), adoptInput(9999))
	require.ErrorIs(t, err, application.ErrTransactionFailed)
	require.ErrorIs(t, err, petports.ErrNotFound)
	assert.Zero(t, countAdoptions(t, db))
}

func TestPostgres_RejectPolicySerializesConcurrentAdoptions(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}
	db := setupPostgresContainer(t)
	pets := petstore.NewRepository(db)
	svc := application.NewService(gormstore.NewStore(db), pets, application.WithPolicy(application.RejectAdopted))
	petID := seedPet(t, pets, "Rex")

	const attempts = 6
	var (
		wg        sync.WaitGroup
		mu        sync.Mutex
		succeeded int
		rejected  int
	)
	for i := 0; i < attempts; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := svc.Adopt(context.Background(), adoptInput(petID))
			mu.Lock()
			defer mu.Unlock()
			switch {
			case err == nil:
				succeeded++
			case errors.Is(err, application.ErrPetAlreadyAdopted):
				rejected++
			default:
				t.Errorf("unexpected adopt error: %v", err)
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, 1, succeeded)
	assert.Equal(t, attempts-1, rejected)
	assert.Equal(t, int64(1), countAdoptions(t, db))
}

func TestPostgres_DeletePetCascadesAdoptions(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}
	db := setupPostgresContainer(t)
	pets := petstore.NewRepository(db)
	svc := application.NewService(gormstore.NewStore(db), pets)
	ctx := context.Background()

	petID := seedPet(t, pets, "Rex")
	_, err := svc.Adopt(ctx, adoptInput(petID))
	require.NoError(t, err)

	require.NoError(t, pets.Delete(ctx, petID))
	assert.Zero(t, countAdoptions(t, db))
	assert.ErrorIs(t, pets.Delete(ctx, petID), petports.ErrNotFound)
}
