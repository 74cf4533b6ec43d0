package domain

import "errors"

// ─── Sentinel Errors ────────────────────────────────────────────────────────
// Domain errors are pure — no infrastructure dependency.

var (
	// Engagement errors
	ErrUnknownAction = errors.New("unrecognized action type")

	// Transaction errors
	ErrAmountNotPositive  = errors.New("amount must be greater than zero")
	ErrInvalidTxType      = errors.New("transaction type must be expense or income")
	ErrInvalidEmotion     = errors.New("unrecognized transaction emotion")
	ErrEmptyCategory      = errors.New("category must not be empty")
	ErrTransactionMissing = errors.New("transaction not found")
)
