package migration

import (
	"errors"
	"fmt"

	"github.com/golang-migrate/migrate/v4"
	// Blank imports register the postgres driver and file source for migrations.
	_ "github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
)

// Migrator is the part of migrate.Migrate the runner needs.
type Migrator interface {
	Up() error
	Close() (error, error)
}

// Engine builds a Migrator; injectable so tests stay off the filesystem
// and the database.
type Engine func(sourceURL, databaseURL string) (Migrator, error)

type Migration struct {
	migrationsPath string
	databaseURI    string
	engine         Engine
}

func New(migrationsPath, databaseURI string, engine Engine) *Migration {
	return &Migration{
		migrationsPath: migrationsPath,
		databaseURI:    databaseURI,
		engine:         engine,
	}
}

// DefaultEngine is the real implementation backed by golang-migrate.
func DefaultEngine(sourceURL, databaseURL string) (Migrator, error) {
	return migrate.New(sourceURL, databaseURL)
}

func (mg *Migration) Up() error {
	m, err := mg.engine("file://"+mg.migrationsPath, mg.databaseURI)
	if err != nil {
		return err
	}
	defer func() {
		serr, dberr := m.Close()
		if serr != nil {
			if err != nil {
				err = fmt.Errorf("%w; migration source error: %v", err, serr)
			} else {
				err = serr
			}
		}
		if dberr != nil {
			if err != nil {
				err = fmt.Errorf("%w; migration database error: %v", err, dberr)
			} else {
				err = dberr
			}
		}
	}()
	if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("%w; migration up error", err)
	}
	return nil
}
