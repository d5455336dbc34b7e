package repository

import (
	"context"
	"fmt"

	"fairshare-booking/pkg/database"

	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"
)

// TxRunner runs a function against a transaction-scoped Repository. Every
// booking mutation (conflict check, validation reads, ledger debit, booking
// insert, history append) goes through one InTx call so concurrent requests
// cannot double-debit a ledger row or double-book a date range.
type TxRunner interface {
	InTx(ctx context.Context, fn func(r *Repository) error) error
}

type pgxTxRunner struct {
	db  database.PgxIface
	log *zap.Logger
}

func NewTxRunner(db database.PgxIface, log *zap.Logger) TxRunner {
	return &pgxTxRunner{
		db:  db,
		log: log.With(zap.String("component", "tx")),
	}
}

func (t *pgxTxRunner) InTx(ctx context.Context, fn func(r *Repository) error) error {
	tx, err := t.db.BeginTx(ctx, pgx.TxOptions{IsoLevel: pgx.RepeatableRead})
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}

	repos := NewRepository(tx, t.log)

	if err := fn(repos); err != nil {
		if rbErr := tx.Rollback(ctx); rbErr != nil && rbErr != pgx.ErrTxClosed {
			t.log.Error("Transaction rollback failed", zap.Error(rbErr))
		}
		return err
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}

	return nil
}
