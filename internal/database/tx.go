package database

import (
	"context"

	"github.com/jmoiron/sqlx"
)

// Tx is the explicit transaction context passed to every mutating ledger
// operation. The commit/abort decision belongs to whoever began it.
type Tx struct {
	tx *sqlx.Tx
}

// Ext exposes the underlying executor for repositories bound via WithTx.
func (t *Tx) Ext() sqlx.ExtContext {
	if t == nil {
		return nil
	}
	return t.tx
}

func (t *Tx) Commit() error   { return t.tx.Commit() }
func (t *Tx) Rollback() error { return t.tx.Rollback() }

// Runner abstracts transaction execution so use cases can be tested
// without a live database.
type Runner interface {
	RunInTx(ctx context.Context, fn func(tx *Tx) error) error
}

type TxManager struct {
	db *sqlx.DB
}

func NewTxManager(db *sqlx.DB) *TxManager {
	return &TxManager{db: db}
}

func (m *TxManager) Begin(ctx context.Context) (*Tx, error) {
	tx, err := m.db.BeginTxx(ctx, nil)
	if err != nil {
		return nil, err
	}
	return &Tx{tx: tx}, nil
}

// RunInTx executes fn inside a single transaction. Any error from fn rolls
// the whole transaction back; otherwise it commits.
func (m *TxManager) RunInTx(ctx context.Context, fn func(tx *Tx) error) error {
	tx, err := m.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.tx.Rollback()

	if err := fn(tx); err != nil {
		return err
	}
	return tx.Commit()
}
