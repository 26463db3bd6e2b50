// package store provides the persistence layer for the platform tables.
//
// All reads and writes of a run go through a single Tx so the whole
// anonymization is atomic. The Tx carries the SQL dialect of the target
// database and owns the differences between them: placeholder style and
// row-locking clauses.
package store

import (
	"context"
	"database/sql"
	"fmt"
	"strconv"
	"strings"
)

// Dialect identifies the SQL flavor of the target database.
type Dialect string

const (
	SQLite   Dialect = "sqlite3"
	Postgres Dialect = "postgres"
)

// Rebind rewrites "?" placeholders into the dialect's native style.
func (d Dialect) Rebind(query string) string {
	if d != Postgres {
		return query
	}
	var b strings.Builder
	n := 0
	for _, r := range query {
		if r == '?' {
			n++
			b.WriteString("$")
			b.WriteString(strconv.Itoa(n))
		} else {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// ForUpdate returns the row-locking clause for selects that precede writes.
// SQLite serializes the whole database per write transaction, so the clause
// is empty there.
func (d Dialect) ForUpdate() string {
	if d == Postgres {
		return " FOR UPDATE"
	}
	return ""
}

// Tx wraps the run's single database transaction.
type Tx struct {
	tx      *sql.Tx
	dialect Dialect
}

// Begin opens the run's transaction on the given database.
func Begin(ctx context.Context, db *sql.DB, dialect Dialect) (*Tx, error) {
	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	return &Tx{tx: tx, dialect: dialect}, nil
}

// Dialect returns the SQL dialect of the target database.
func (t *Tx) Dialect() Dialect {
	return t.dialect
}

// Commit commits the transaction.
func (t *Tx) Commit() error {
	if err := t.tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}

// Rollback rolls the transaction back. Safe to call after Commit.
func (t *Tx) Rollback() error {
	return t.tx.Rollback()
}

// Exec runs a statement after rebinding its placeholders.
func (t *Tx) Exec(ctx context.Context, query string, args ...any) (sql.Result, error) {
	return t.tx.ExecContext(ctx, t.dialect.Rebind(query), args...)
}

// Query runs a query after rebinding its placeholders.
func (t *Tx) Query(ctx context.Context, query string, args ...any) (*sql.Rows, error) {
	return t.tx.QueryContext(ctx, t.dialect.Rebind(query), args...)
}

// QueryRow runs a single-row query after rebinding its placeholders.
func (t *Tx) QueryRow(ctx context.Context, query string, args ...any) *sql.Row {
	return t.tx.QueryRowContext(ctx, t.dialect.Rebind(query), args...)
}
