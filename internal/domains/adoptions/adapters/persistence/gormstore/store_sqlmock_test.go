package gormstore_test

import (
	"context"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/Apurer/go-gin-adoption-api/internal/domains/adoptions/adapters/persistence/gormstore"
	"github.com/Apurer/go-gin-adoption-api/internal/domains/adoptions/application"
	adopttypes "github.com/Apurer/go-gin-adoption-api/internal/domains/adoptions/application/types"
	petstore "github.com/Apurer/go-gin-adoption-api/internal/domains/pets/adapters/persistence/gormstore"
	petports "github.com/Apurer/go-gin-adoption-api/internal/domains/pets/ports"
)

func newMockDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock) {
	t.Helper()
	sqlDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = sqlDB.Close() })

	db, err := gorm.Open(postgres.New(postgres.Config{Conn: sqlDB}), &gorm.Config{
		Logger:                 gormlogger.Default.LogMode(gormlogger.Silent),
		SkipDefaultTransaction: true,
	})
	require.NoError(t, err)
	return db, mock
}

func TestAdopt_StatusUpdateMissIssuesRollback(t *testing.T) {
	db, mock := newMockDB(t)
	svc := application.NewService(gormstore.NewStore(db), petstore.NewRepository(db),
		application.WithClock(func() time.Time { return time.Date(2024, 2, 2, 0, 0, 0, 0, time.UTC) }))

	mock.ExpectBegin()
	mock.ExpectQuery(regexp.QuoteMeta(`INSERT INTO "adoptions"`)).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(41))
	mock.ExpectExec(regexp.QuoteMeta(`UPDATE "pets" SET "status"=$1 WHERE id = $2`)).
		WithArgs("adopted", int64(7)).
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectRollback()

	_, err := svc.Adopt(context.Background(), adopttypes.AdoptInput{
		PetID:       7,
		AdopterName: "Jane Doe",
		Email:       "jane@example.com",
		Phone:       "555-0100",
		Address:     "1 Main St",
	})
	require.ErrorIs(t, err, application.ErrTransactionFailed)
	require.ErrorIs(t, err, petports.ErrNotFound)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestAdopt_SuccessIssuesCommit(t *testing.T) {
	db, mock := newMockDB(t)
	svc := application.NewService(gormstore.NewStore(db), petstore.NewRepository(db))

	mock.ExpectBegin()
	mock.ExpectQuery(regexp.QuoteMeta(`INSERT INTO "adoptions"`)).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(42))
	mock.ExpectExec(regexp.QuoteMeta(`UPDATE "pets" SET "status"=$1 WHERE id = $2`)).
		WithArgs("adopted", int64(7)).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	receipt, err := svc.Adopt(context.Background(), adopttypes.AdoptInput{
		PetID:       7,
		AdopterName: "Jane Doe",
		Email:       "jane@example.com",
		Phone:       "555-0100",
		Address:     "1 Main St",
	})
	require.NoError(t, err)
	require.Equal(t, int64(42), receipt.AdoptionID)
	require.NoError(t, mock.ExpectationsWereMet())
}
