package migration

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	"go.uber.org/zap"
)

// Runner applies the SQL files under migrations/ against the tenant
// database. It wraps golang-migrate with the application logger so
// schema changes land in the same log stream as the server.
type Runner struct {
	m   *migrate.Migrate
	log *zap.Logger
}

// NewRunner builds a Runner on top of an open postgres connection.
func NewRunner(db *sql.DB, dir string, log *zap.Logger) (*Runner, error) {
	driver, err := postgres.WithInstance(db, &postgres.Config{})
	if err != nil {
		return nil, fmt.Errorf("postgres migration driver: %w", err)
	}

	m, err := migrate.NewWithDatabaseInstance("file://"+dir, "postgres", driver)
	if err != nil {
		return nil, fmt.Errorf("open migration source %s: %w", dir, err)
	}

	return &Runner{m: m, log: log.Named("migrate")}, nil
}

// Up applies every pending migration.
func (r *Runner) Up() error {
	r.log.Info("applying pending migrations")
	return r.report("up", r.m.Up())
}

// Down rolls every migration back.
func (r *Runner) Down() error {
	r.log.Info("rolling back all migrations")
	return r.report("down", r.m.Down())
}

// Steps applies n migrations. Negative n rolls back.
func (r *Runner) Steps(n int) error {
	r.log.Info("stepping migrations", zap.Int("steps", n))
	return r.report("steps", r.m.Steps(n))
}

// GoTo migrates up or down until the schema sits at version.
func (r *Runner) GoTo(version uint) error {
	r.log.Info("migrating to version", zap.Uint("target", version))
	return r.report("goto", r.m.Migrate(version))
}

// Version reports the applied schema version. A database with no
// applied migrations reports version 0.
func (r *Runner) Version() (uint, bool, error) {
	version, dirty, err := r.m.Version()
	if errors.Is(err, migrate.ErrNilVersion) {
		return 0, false, nil
	}
	if err != nil {
		return 0, false, fmt.Errorf("read schema version: %w", err)
	}
	return version, dirty, nil
}

// Force overwrites the recorded schema version without running any SQL.
// Only useful for clearing a dirty flag after a failed migration was
// repaired by hand.
func (r *Runner) Force(version int) error {
	r.log.Warn("forcing schema version", zap.Int("version", version))
	if err := r.m.Force(version); err != nil {
		return fmt.Errorf("force version %d: %w", version, err)
	}
	return nil
}

// Drop destroys every object in the database, data included.
func (r *Runner) Drop() error {
	r.log.Warn("dropping all database objects")
	if err := r.m.Drop(); err != nil {
		return fmt.Errorf("drop database: %w", err)
	}
	return nil
}

// Close releases the source and database handles.
func (r *Runner) Close() error {
	srcErr, dbErr := r.m.Close()
	if srcErr != nil {
		return fmt.Errorf("close migration source: %w", srcErr)
	}
	if dbErr != nil {
		return fmt.Errorf("close migration database: %w", dbErr)
	}
	return nil
}

// report turns ErrNoChange into a log line instead of an error and
// logs the resulting schema version after a successful run.
func (r *Runner) report(action string, err error) error {
	if errors.Is(err, migrate.ErrNoChange) {
		r.log.Info("schema already up to date")
		return nil
	}
	if err != nil {
		return fmt.Errorf("migration %s: %w", action, err)
	}

	version, dirty, verr := r.Version()
	if verr != nil {
		return verr
	}
	r.log.Info("migrations applied",
		zap.Uint("version", version),
		zap.Bool("dirty", dirty),
	)
	return nil
}
