package services

import "errors"

var (
	// ErrNotFound marks a referenced store, product, cart, item or order that
	// does not exist.
	ErrNotFound = errors.New("not found")
	// ErrInvalidReference marks a variant id that is unknown or does not belong
	// to the stated product. Batch operations carrying one fail as a whole.
	ErrInvalidReference = errors.New("invalid reference")
	// ErrInvalidTransition marks an order status change not allowed from the
	// current status.
	ErrInvalidTransition = errors.New("invalid status transition")
	// ErrInvariant marks a computed quantity or monetary amount that went
	// negative. Never clamped; the whole mutation rolls back.
	ErrInvariant = errors.New("invariant violation")
	// ErrInvalidInput marks malformed request data caught before any write.
	ErrInvalidInput = errors.New("invalid input")
)
