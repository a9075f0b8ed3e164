package postgres

import (
	"embed"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/bibbank/conveyor/internal/domain/port"
)

// Migrations holds the schema, applied at startup with pkg/postgres.RunMigrationsFS.
//
//go:embed migrations/*.sql
var Migrations embed.FS

// MigrationsDir is the directory inside Migrations holding the files.
const MigrationsDir = "migrations"

// ErrOptimisticLock is returned when a row changed since it was loaded.
var ErrOptimisticLock = errors.New("optimistic locking conflict")

// scannable is satisfied by pgx.Row and pgx.Rows.
type scannable interface {
	Scan(dest ...any) error
}

// notFound maps pgx.ErrNoRows to port.ErrNotFound.
func notFound(err error, what string) error {
	if errors.Is(err, pgx.ErrNoRows) {
		return fmt.Errorf("%s: %w", what, port.ErrNotFound)
	}
	return fmt.Errorf("scan %s: %w", what, err)
}
