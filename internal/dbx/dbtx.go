// Package dbx holds the database/sql plumbing shared by the SQLite and
// PostgreSQL key/value stores.
package dbx

import (
	"context"
	"database/sql"
	"slices"
)

// DBTX is implemented by both *sql.DB and *sql.Tx, so single-key helpers
// work inside and outside a transaction.
type DBTX interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

// SetFunc writes one key through db.
type SetFunc func(ctx context.Context, db DBTX, key, value string) error

// WithTx runs fn in a transaction. It commits when fn returns nil and rolls
// back on an error or panic; a panic is re-raised after the rollback.
func WithTx(ctx context.Context, db *sql.DB, opts *sql.TxOptions, fn func(ctx context.Context, tx DBTX) error) (err error) {
	tx, err := db.BeginTx(ctx, opts)
	if err != nil {
		return err
	}

	defer func() {
		if p := recover(); p != nil {
			_ = tx.Rollback()
			panic(p)
		}
		if err != nil {
			_ = tx.Rollback()
			return
		}
		err = tx.Commit()
	}()

	return fn(ctx, tx)
}

// SetAll writes every entry of values with set in one transaction, in key
// order. Either all entries land or none do.
//
//	err := dbx.SetAll(ctx, db, snapshot, upsert)
func SetAll(ctx context.Context, db *sql.DB, values map[string]string, set SetFunc) error {
	keys := make([]string, 0, len(values))
	for k := range values {
		keys = append(keys, k)
	}
	slices.Sort(keys)

	return WithTx(ctx, db, nil, func(ctx context.Context, tx DBTX) error {
		for _, k := range keys {
			if err := set(ctx, tx, k, values[k]); err != nil {
				return err
			}
		}
		return nil
	})
}
