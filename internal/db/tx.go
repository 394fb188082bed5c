// Package db holds small database/sql helpers shared by the SQLite stores.
package db

import (
	"database/sql"
	"fmt"
)

// WithTx executes fn within a transaction.
// It rolls back when fn fails and commits otherwise.
func WithTx(db *sql.DB, fn func(tx *sql.Tx) error) error {
	tx, err := db.Begin()
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck // no-op after a successful commit

	if err := fn(tx); err != nil {
		return err
	}
	return tx.Commit()
}

// NullStringValue returns the string value or empty string if not valid.
func NullStringValue(n sql.NullString) string {
	if !n.Valid {
		return ""
	}
	return n.String
}

// StringToNull stores empty strings as NULL.
func StringToNull(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}
