package domain

import "errors"

var (
	// ErrAlreadyRegistered is returned when a live token mapping already exists for a name
	ErrAlreadyRegistered = errors.New("name already registered")

	// ErrInsufficientPayment is returned when the payment does not cover the price
	ErrInsufficientPayment = errors.New("insufficient payment")

	// ErrInvalidLength is returned when no price tier is configured for a name's length
	ErrInvalidLength = errors.New("no price configured for name length")

	// ErrNotOwner is returned when the caller does not hold the name's ownership token
	ErrNotOwner = errors.New("caller is not the owner")

	// ErrNotFound is returned for names that were never registered and for
	// out-of-bounds ledger lookups
	ErrNotFound = errors.New("not found")

	// ErrTransferFailed is returned when the fee forward or the refund fails
	ErrTransferFailed = errors.New("value transfer failed")

	// ErrReentrancyBlocked is returned when a mutating operation is invoked
	// while another one is still in flight on the same registry
	ErrReentrancyBlocked = errors.New("reentrant call blocked")

	// ErrUnauthorized is returned for administrative calls from a non-admin
	ErrUnauthorized = errors.New("unauthorized")

	// ErrLabelTaken is returned when a registry already exists for a namespace label
	ErrLabelTaken = errors.New("namespace label already taken")

	// ErrWrongFee is returned when the deployment payment is not exactly the configured fee
	ErrWrongFee = errors.New("payment does not match deployment fee")
)
