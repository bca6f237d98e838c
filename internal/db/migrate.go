package db

import (
	"errors"
	"fmt"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
)

// Direction selects which way Migrate moves the schema.
type Direction string

const (
	Up   Direction = "up"
	Down Direction = "down"
)

// MigrationStatus reports the schema version after a run.
type MigrationStatus struct {
	Version uint
	Dirty   bool
	// Pristine is true when no migration has ever been applied.
	Pristine bool
}

// Migrate applies the SQL migrations found in migrationsPath to databaseURL.
// steps limits how many migrations run; 0 means all of them.
// Running with nothing to do is not an error.
func Migrate(databaseURL, migrationsPath string, dir Direction, steps int) (*MigrationStatus, error) {
	m, err := migrate.New(fmt.Sprintf("file://%s", migrationsPath), databaseURL)
	if err != nil {
		return nil, fmt.Errorf("create migrate instance: %w", err)
	}
	defer m.Close()

	switch dir {
	case Up:
		if steps > 0 {
			err = m.Steps(steps)
		} else {
			err = m.Up()
		}
	case Down:
		if steps > 0 {
			err = m.Steps(-steps)
		} else {
			err = m.Down()
		}
	default:
		return nil, fmt.Errorf("invalid direction %q (must be %q or %q)", dir, Up, Down)
	}

	if err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return nil, fmt.Errorf("migrate %s: %w", dir, err)
	}

	version, dirty, err := m.Version()
	if errors.Is(err, migrate.ErrNilVersion) {
		return &MigrationStatus{Pristine: true}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read migration version: %w", err)
	}

	return &MigrationStatus{Version: version, Dirty: dirty}, nil
}
