package commerce

import "errors"

var (
	// ErrInvalidRequest is returned when the request parameters are invalid
	ErrInvalidRequest = errors.New("invalid request parameters")

	// ErrNetworkError is returned when there's a network communication error
	ErrNetworkError = errors.New("network error")

	// ErrUnauthorized is returned when the API key or token is rejected
	ErrUnauthorized = errors.New("unauthorized: invalid API credentials")

	// ErrNotFound is returned when the requested resource does not exist upstream
	ErrNotFound = errors.New("resource not found")

	// ErrUpstreamFailed is returned for any other upstream API failure
	ErrUpstreamFailed = errors.New("upstream commerce API error")

	// ErrMissingOrderID is returned when an order-creation response carries
	// no recognizable order identifier in any of its known shapes
	ErrMissingOrderID = errors.New("order created but response carried no order id")
)
