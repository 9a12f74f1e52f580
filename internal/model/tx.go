package model

import "context"

// Stores groups the stores bound to one unit of work.
type Stores struct {
	Users    UserStore
	Roles    RoleStore
	Tokens   TokenStore
	Listings ListingStore
}

// TxManager runs a function inside a single all-or-nothing unit of work.
// If fn returns an error nothing it wrote remains visible.
type TxManager interface {
	WithinTx(ctx context.Context, fn func(ctx context.Context, stores Stores) error) error
}
