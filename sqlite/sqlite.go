package sqlite

import (
	"context"
	"database/sql"
	"embed"
	"errors"
	"fmt"
	"io/fs"
	"sort"

	"github.com/mattn/go-sqlite3"
	pkgerrors "github.com/pkg/errors"
	"github.com/rs/zerolog"

	"github.com/rideaware/landing"
)

//go:embed migration/*.sql
var migrationFS embed.FS

// DB represents the database connection.
type DB struct {
	sqlDB  *sql.DB
	ctx    context.Context
	cancel func()

	path   string
	logger zerolog.Logger
}

// NewDB returns new database
func NewDB(path string, logger zerolog.Logger) *DB {
	db := &DB{
		path:   path,
		logger: logger.With().Str("db", "sqlite").Logger(),
	}

	db.ctx, db.cancel = context.WithCancel(context.Background())

	return db
}

// Open connects to the database file and applies pending migrations.
func (db *DB) Open() (err error) {
	if db.path == "" {
		return errors.New("path required")
	}

	if db.sqlDB != nil {
		return nil
	}

	// Concurrent writers wait on the lock for up to 5s.
	dsn := fmt.Sprintf("file:%s?_foreign_keys=on&_busy_timeout=5000", db.path)
	if db.sqlDB, err = sql.Open("sqlite3", dsn); err != nil {
		return pkgerrors.Wrapf(err, "failed to open %s", db.path)
	}

	if err := db.sqlDB.PingContext(db.ctx); err != nil {
		return classify("sqlite.Open", err)
	}

	applied, err := db.migrate()
	if err != nil {
		return pkgerrors.Wrap(err, "migrate")
	}
	db.logger.Info().Str("path", db.path).Int("applied", applied).Msg("Database schema is up to date")

	return nil
}

// migrate runs every embedded migration not yet recorded, in file name order,
// and returns how many it ran.
func (db *DB) migrate() (int, error) {
	if _, err := db.sqlDB.ExecContext(db.ctx, `CREATE TABLE IF NOT EXISTS migrations (name TEXT PRIMARY KEY)`); err != nil {
		return 0, pkgerrors.Wrap(err, "cannot create migrations table")
	}

	names, err := fs.Glob(migrationFS, "migration/*.sql")
	if err != nil {
		return 0, err
	}
	sort.Strings(names)

	applied := 0
	for _, name := range names {
		ok, err := db.applyMigration(name)
		if err != nil {
			return applied, pkgerrors.Wrapf(err, "migration %s", name)
		}
		if ok {
			db.logger.Debug().Str("migration", name).Msg("Applied migration")
			applied++
		}
	}

	return applied, nil
}

// applyMigration runs name and records it in one transaction. It reports
// false when name was already recorded.
func (db *DB) applyMigration(name string) (bool, error) {
	tx, err := db.sqlDB.BeginTx(db.ctx, nil)
	if err != nil {
		return false, err
	}
	defer func() {
		_ = tx.Rollback()
	}()

	var done bool
	if err := tx.QueryRowContext(db.ctx, `SELECT EXISTS (SELECT 1 FROM migrations WHERE name = ?)`, name).Scan(&done); err != nil {
		return false, err
	}
	if done {
		return false, nil
	}

	stmts, err := fs.ReadFile(migrationFS, name)
	if err != nil {
		return false, err
	}
	if _, err := tx.ExecContext(db.ctx, string(stmts)); err != nil {
		return false, err
	}
	if _, err := tx.ExecContext(db.ctx, `INSERT INTO migrations (name) VALUES (?)`, name); err != nil {
		return false, err
	}

	return true, tx.Commit()
}

// Close closes database connection
func (db *DB) Close() error {
	if db.sqlDB == nil {
		return nil
	}

	db.cancel()

	if err := db.sqlDB.Close(); err != nil {
		db.logger.Error().Err(err).Msg("Error closing database")
	}

	return nil
}

// classify turns a driver error into an application error.
func classify(op string, err error) error {
	var sqliteErr sqlite3.Error
	if errors.As(err, &sqliteErr) {
		switch {
		case sqliteErr.ExtendedCode == sqlite3.ErrConstraintUnique:
			return &landing.Error{Code: landing.ErrConflict, Op: op, Err: err}
		case sqliteErr.Code == sqlite3.ErrBusy, sqliteErr.Code == sqlite3.ErrLocked:
			return &landing.Error{Code: landing.ErrUnavailable, Op: op, Err: err}
		}
	}
	if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, sql.ErrConnDone) {
		return &landing.Error{Code: landing.ErrUnavailable, Op: op, Err: err}
	}

	return fmt.Errorf("%s: %w", op, err)
}
