package domain

import "errors"

var (
	// Lookup errors
	ErrEntityNotFound        = errors.New("entity not found")
	ErrMemberNotFound        = errors.New("member not found")
	ErrSecurityClassNotFound = errors.New("security class not found")
	ErrTransactionNotFound   = errors.New("transaction not found")

	// Transaction errors
	ErrInvalidQuantity        = errors.New("quantity must be positive")
	ErrInvalidTransactionType = errors.New("unknown transaction type")
	ErrMissingParty           = errors.New("transaction needs a sender or a receiver")
	ErrSameMember             = errors.New("cannot transfer to same member")
	ErrSecurityClassRequired  = errors.New("security class is required")
	ErrNegativeAmount         = errors.New("amounts cannot be negative")
	ErrEntityMismatch         = errors.New("member or security class belongs to another entity")
	ErrInsufficientHolding    = errors.New("member does not hold enough securities")
)
