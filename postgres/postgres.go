package postgres

import (
	"context"
	"errors"
	"fmt"
	"net"
	"time"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	pkgerrors "github.com/pkg/errors"

	"github.com/rideaware/landing"
)

const (
	defaultTimeout = 10 * time.Second

	uniqueViolation = "23505"
)

var schema = []string{
	`CREATE TABLE IF NOT EXISTS subscribers (
		id SERIAL PRIMARY KEY,
		email TEXT UNIQUE NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS newsletters (
		id SERIAL PRIMARY KEY,
		subject TEXT NOT NULL,
		body TEXT NOT NULL,
		sent_at TIMESTAMPTZ NOT NULL DEFAULT CURRENT_TIMESTAMP
	)`,
	`CREATE INDEX IF NOT EXISTS newsletters_sent_at_idx ON newsletters (sent_at DESC)`,
	`CREATE TABLE IF NOT EXISTS contact_messages (
		id SERIAL PRIMARY KEY,
		name TEXT NOT NULL,
		email TEXT NOT NULL,
		subject TEXT NOT NULL,
		message TEXT NOT NULL,
		created_at TIMESTAMPTZ NOT NULL DEFAULT CURRENT_TIMESTAMP
	)`,
}

// Options are the connection parameters of the database.
type Options struct {
	Host     string
	Port     int
	Name     string
	User     string
	Password string
	Timeout  time.Duration
}

// DB represents a pool of connections to PostgreSQL.
type DB struct {
	pool   *pgxpool.Pool
	ctx    context.Context
	cancel func()

	opts Options
}

// NewDB returns new database
func NewDB(opts Options) *DB {
	if opts.Timeout == 0 {
		opts.Timeout = defaultTimeout
	}

	db := &DB{
		opts: opts,
	}

	db.ctx, db.cancel = context.WithCancel(context.Background())

	return db
}

// Open connects to the server and creates missing tables.
func (db *DB) Open() error {
	if db.pool != nil {
		return nil
	}

	config, err := pgxpool.ParseConfig("")
	if err != nil {
		return pkgerrors.Wrap(err, "failed to parse config")
	}
	config.ConnConfig.Host = db.opts.Host
	if db.opts.Port != 0 {
		config.ConnConfig.Port = uint16(db.opts.Port)
	}
	config.ConnConfig.Database = db.opts.Name
	config.ConnConfig.User = db.opts.User
	config.ConnConfig.Password = db.opts.Password
	config.ConnConfig.ConnectTimeout = db.opts.Timeout

	ctx, cancel := context.WithTimeout(db.ctx, db.opts.Timeout)
	defer cancel()

	pool, err := pgxpool.NewWithConfig(ctx, config)
	if err != nil {
		return pkgerrors.Wrap(err, "failed to create pool")
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return pkgerrors.Wrap(err, "failed to ping database")
	}
	db.pool = pool

	return db.migrate(ctx)
}

func (db *DB) migrate(ctx context.Context) error {
	tx, err := db.pool.Begin(ctx)
	if err != nil {
		return pkgerrors.Wrap(err, "failed to begin migration")
	}
	defer func() {
		_ = tx.Rollback(ctx)
	}()

	for _, query := range schema {
		if _, err := tx.Exec(ctx, query); err != nil {
			return fmt.Errorf("failed to execute %q: %w", query, err)
		}
	}

	return tx.Commit(ctx)
}

// Close closes every connection of the pool
func (db *DB) Close() error {
	db.cancel()

	if db.pool != nil {
		db.pool.Close()
	}

	return nil
}

// classify turns a driver error into an application error.
func classify(op string, err error) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
		return &landing.Error{Code: landing.ErrConflict, Op: op, Err: err}
	}

	var netErr net.Error
	if pgconn.Timeout(err) || errors.As(err, &netErr) || errors.Is(err, context.DeadlineExceeded) {
		return &landing.Error{Code: landing.ErrUnavailable, Op: op, Err: err}
	}

	var connectErr *pgconn.ConnectError
	if errors.As(err, &connectErr) {
		return &landing.Error{Code: landing.ErrUnavailable, Op: op, Err: err}
	}

	return pkgerrors.Wrap(err, op)
}

type store struct {
	*DB
	*subscriberService
	*newsletterService
	*contactService
}

// NewStore returns a landing.Store backed by the given database.
func NewStore(db *DB) landing.Store {
	return &store{
		DB:                db,
		subscriberService: &subscriberService{db: db},
		newsletterService: &newsletterService{db: db},
		contactService:    &contactService{db: db},
	}
}
