package dbctx

import (
	"context"

	"gorm.io/gorm"
)

// Context bundles a request context with an optional GORM transaction.
type Context struct {
	Ctx context.Context
	Tx  *gorm.DB
}

// Conn returns the transaction when one is open, otherwise root.
func (c Context) Conn(root *gorm.DB) *gorm.DB {
	if c.Tx != nil {
		return c.Tx.WithContext(c.context())
	}
	return root.WithContext(c.context())
}

func (c Context) context() context.Context {
	if c.Ctx == nil {
		return context.Background()
	}
	return c.Ctx
}
