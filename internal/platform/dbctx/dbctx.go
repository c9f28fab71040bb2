package dbctx

import (
	"context"

	"gorm.io/gorm"
)

// Context is one unit of work: a request context plus an optional GORM
// transaction. Repos run on Tx when it is set and fall back to their own
// handle otherwise.
type Context struct {
	Ctx context.Context
	Tx  *gorm.DB
}

// Background returns a Context with context.Background() and no transaction.
func Background() Context {
	return Context{Ctx: context.Background()}
}

// Conn returns the handle a repo should query on.
func (c Context) Conn(fallback *gorm.DB) *gorm.DB {
	t := c.Tx
	if t == nil {
		t = fallback
	}
	ctx := c.Ctx
	if ctx == nil {
		ctx = context.Background()
	}
	return t.WithContext(ctx)
}

// WithTx returns a copy bound to tx.
func (c Context) WithTx(tx *gorm.DB) Context {
	return Context{Ctx: c.Ctx, Tx: tx}
}

// Context returns Ctx, or context.Background() when it is unset.
func (c Context) Context() context.Context {
	if c.Ctx == nil {
		return context.Background()
	}
	return c.Ctx
}
