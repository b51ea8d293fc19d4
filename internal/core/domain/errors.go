package domain

import (
	"errors"
	"fmt"
)

var (
	ErrNotFound           = errors.New("not found")
	ErrValidation         = errors.New("validation failed")
	ErrSignature          = errors.New("payment signature mismatch")
	ErrUnauthenticated    = errors.New("unauthenticated")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrInvalidTransition  = errors.New("invalid status transition")

	// ErrPermission wraps ErrNotFound: a resource owned by someone else looks absent.
	ErrPermission = fmt.Errorf("permission denied: %w", ErrNotFound)

	ErrEmptyCart          = errors.New("cart is empty")
	ErrMissingPhone       = fmt.Errorf("%w: phone number required for delivery", ErrValidation)
	ErrRestaurantClosed   = errors.New("restaurant is closed")
	ErrCheckoutInProgress = errors.New("checkout already in progress")
)
