package service

import "errors"

var (
	// ErrValidation marks a missing or malformed input field, detected
	// before any store call.
	ErrValidation = errors.New("validation failed")

	// ErrEmptyCart is returned when a checkout is attempted with no
	// cart lines.
	ErrEmptyCart = errors.New("cart is empty")

	// ErrUnknownStatus is returned for a status outside the four order
	// statuses.
	ErrUnknownStatus = errors.New("unknown order status")

	// ErrIllegalTransition is returned when an order status update is
	// not allowed from the order's current status.
	ErrIllegalTransition = errors.New("illegal status transition")
)
