package services

import (
	"gorm.io/gorm"

	"github.com/yungbote/lsbmorph-backend/internal/platform/dbctx"
)

// WithTx runs fn inside one transaction. When dbc already carries a Tx, fn
// joins it and the caller keeps ownership; otherwise a new transaction is
// committed when fn returns nil and rolled back on error or panic.
func WithTx(dbc dbctx.Context, db *gorm.DB, fn func(dbc dbctx.Context) error) error {
	if dbc.Tx != nil {
		return fn(dbc)
	}
	return dbc.Conn(db).Transaction(func(tx *gorm.DB) error {
		return fn(dbc.WithTx(tx))
	})
}
