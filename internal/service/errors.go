package service

import (
	"context"
	"errors"

	"gorm.io/gorm"
)

// The four error kinds the core surfaces. Services wrap them with %w and
// detail; handlers map them to HTTP statuses with errors.Is.
var (
	ErrInvalidInput        = errors.New("invalid input")
	ErrInsufficientStock   = errors.New("insufficient stock")
	ErrNotFound            = errors.New("not found")
	ErrTransactionConflict = errors.New("transaction conflict")
)

// runTx executes fn inside a GORM transaction when db is available,
// or calls fn(nil) directly when db is nil (unit test mode).
func runTx(ctx context.Context, db *gorm.DB, fn func(tx *gorm.DB) error) error {
	if db == nil {
		return fn(nil)
	}
	return db.WithContext(ctx).Transaction(fn)
}
