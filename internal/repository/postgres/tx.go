package postgres

import (
	"context"
	"database/sql"

	"github.com/dtroode/pawconnect-server/internal/model"
)

var _ model.TxManager = (*TxManager)(nil)

// TxManager binds a fresh set of repositories to each transaction.
type TxManager struct {
	db *sql.DB
}

func NewTxManager(db *sql.DB) *TxManager {
	return &TxManager{db: db}
}

func (m *TxManager) WithinTx(ctx context.Context, fn func(ctx context.Context, stores model.Stores) error) error {
	return WithTx(ctx, m.db, nil, func(ctx context.Context, tx DBTX) error {
		return fn(ctx, NewStores(tx))
	})
}

// NewStores builds all repositories over db.
func NewStores(db DBTX) model.Stores {
	return model.Stores{
		Users:    NewUserRepository(db),
		Roles:    NewRoleRepository(db),
		Tokens:   NewTokenRepository(db),
		Listings: NewListingRepository(db),
	}
}
