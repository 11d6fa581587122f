package db

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/alexanderramin/preplock/internal/domain"
)

// UnitOfWork runs a callback inside one transaction. The callback builds
// tx-scoped repositories from the DBTX it receives; returning an error (or
// panicking) rolls back every write made through it.
type UnitOfWork interface {
	WithinTx(ctx context.Context, fn func(ctx context.Context, tx DBTX) error) error
}

type SQLiteUnitOfWork struct {
	db *sql.DB
}

func NewSQLiteUnitOfWork(db *sql.DB) *SQLiteUnitOfWork {
	return &SQLiteUnitOfWork{db: db}
}

// WithinTx commits when fn returns nil. A write lock that stays busy past
// the busy timeout is reported as domain.ErrConcurrentUpdate so callers
// retry it like a lost version check.
func (u *SQLiteUnitOfWork) WithinTx(ctx context.Context, fn func(ctx context.Context, tx DBTX) error) error {
	tx, err := u.db.BeginTx(ctx, nil)
	if err != nil {
		return classifyTxErr("beginning transaction", err)
	}

	defer func() {
		if p := recover(); p != nil {
			_ = tx.Rollback()
			panic(p)
		}
	}()

	if err := fn(ctx, tx); err != nil {
		if rbErr := tx.Rollback(); rbErr != nil {
			return fmt.Errorf("rollback failed: %v (original error: %w)", rbErr, err)
		}
		return err
	}

	if err := tx.Commit(); err != nil {
		return classifyTxErr("committing transaction", err)
	}
	return nil
}

func classifyTxErr(op string, err error) error {
	if IsBusy(err) {
		return fmt.Errorf("%s: %w: %v", op, domain.ErrConcurrentUpdate, err)
	}
	return fmt.Errorf("%s: %w", op, err)
}

// IsBusy reports whether err is SQLite refusing a lock held by another
// connection.
func IsBusy(err error) bool {
	if err == nil {
		return false
	}
	msg := err.Error()
	return strings.Contains(msg, "SQLITE_BUSY") || strings.Contains(msg, "database is locked")
}
