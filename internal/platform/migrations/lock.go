package migrations

import (
	"context"
	"fmt"
	"hash/crc32"

	"gorm.io/gorm"
)

// Locker serialises migration runs across replicas.
type Locker interface {
	WithLock(ctx context.Context, fn func() error) error
}

// NewLocker returns a PostgreSQL advisory lock, or a no-op lock for dialects
// that only ever have one writer process (SQLite).
func NewLocker(db *gorm.DB) Locker {
	if db == nil || db.Dialector.Name() != "postgres" {
		return noopLock{}
	}
	return &advisoryLock{
		db:     db,
		lockID: int64(crc32.ChecksumIEEE([]byte("pet-adoption-migrations"))),
	}
}

type noopLock struct{}

func (noopLock) WithLock(_ context.Context, fn func() error) error { return fn() }

type advisoryLock struct {
	db     *gorm.DB
	lockID int64
}

func (l *advisoryLock) WithLock(ctx context.Context, fn func() error) error {
	// Session-level advisory locks belong to a connection, so pin one for the whole run.
	conn, err := l.db.DB()
	if err != nil {
		return err
	}
	sqlConn, err := conn.Conn(ctx)
	if err != nil {
		return fmt.Errorf("acquire migration connection: %w", err)
	}
	defer sqlConn.Close()

	if _, err := sqlConn.ExecContext(ctx, "SELECT pg_advisory_lock($1)", l.lockID); err != nil {
		return fmt.Errorf("acquire migration advisory lock: %w", err)
	}
	defer func() {
		_, _ = sqlConn.ExecContext(context.Background(), "SELECT pg_advisory_unlock($1)", l.lockID)
	}()
	return fn()
}
