package database

import (
	"context"

	"github.com/fxckultimv/foodgram-project-react/domain"
	"gorm.io/gorm"
)

// TxRunner is the single transaction boundary used by every write in the
// catalog core.
type TxRunner interface {
	InTx(ctx context.Context, op string, fn func(tx *gorm.DB) error) error
}

type gormTxRunner struct {
	db *gorm.DB
}

func NewTxRunner(db *gorm.DB) TxRunner {
	return &gormTxRunner{db: db}
}

// InTx runs fn inside a transaction bound to ctx. Any error returned by fn
// rolls the transaction back and is passed through MapError.
func (r *gormTxRunner) InTx(ctx context.Context, op string, fn func(tx *gorm.DB) error) error {
	if r == nil || r.db == nil {
		return domain.NewError(domain.KindInfrastructure, op, "transaction runner has nil db")
	}
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(tx)
	})
	return MapError(op, err)
}
