package kv

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
)

// inTx applies a batch of kv writes atomically. A failing batch is rolled
// back and its error returned unwrapped so callers can match ErrQuotaExceeded.
func inTx(ctx context.Context, db *sql.DB, batch func(tx *sql.Tx) error) error {
	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("kv batch begin: %w", err)
	}
	if err := batch(tx); err != nil {
		if rbErr := tx.Rollback(); rbErr != nil && !errors.Is(rbErr, sql.ErrTxDone) {
			return errors.Join(err, fmt.Errorf("kv batch rollback: %w", rbErr))
		}
		return err
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("kv batch commit: %w", err)
	}
	return nil
}
