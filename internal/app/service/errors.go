package service

import "errors"

// Sentinel errors surfaced by the cart, quote, and checkout services.
// The HTTP layer maps these to response codes in internal/errors.
var (
	ErrCartEmpty = errors.New("cart is empty")

	ErrZoneRequired    = errors.New("shipping zone is required")
	ErrQuoteSuperseded = errors.New("cart changed while quoting")
	ErrQuoteNotReady   = errors.New("shipping quote is not ready")

	ErrGuestInfoRequired            = errors.New("guest name and phone are required")
	ErrAddressRequired              = errors.New("shipping address is required")
	ErrPaymentMethodRequired        = errors.New("payment method is required")
	ErrSubmissionInFlight           = errors.New("order submission already in progress")
	ErrSizeCategoryUnresolved       = errors.New("no size category could be resolved")
	ErrFishOnlinePaymentUnsupported = errors.New("online payment is not available for fish orders")
)
