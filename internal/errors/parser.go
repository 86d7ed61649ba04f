package errors

import (
	"errors"
	"net/http"

	"gorm.io/gorm"

	"github.com/asif-dev/machbazar-storefront/internal/app/service"
	"github.com/asif-dev/machbazar-storefront/pkg/commerce"
)

// ParseError maps a service-layer error to an HTTP status and a standard
// error envelope. Unrecognized errors collapse to a 500 without leaking
// internals to the client.
func ParseError(err error) (int, ErrorResponse) {
	switch {
	// Cart
	case errors.Is(err, service.ErrCartEmpty):
		return http.StatusBadRequest, NewErrorResponse(CartEmpty, "Cart is empty")

	// Quote
	case errors.Is(err, service.ErrZoneRequired):
		return http.StatusBadRequest, NewErrorResponse(QuoteZoneRequired, "Shipping zone is required")
	case errors.Is(err, service.ErrQuoteSuperseded):
		return http.StatusConflict, NewErrorResponse(QuoteSuperseded, "Cart changed while quoting, request a new quote")
	case errors.Is(err, service.ErrQuoteNotReady):
		return http.StatusConflict, NewErrorResponse(QuoteNotReady, "Shipping quote is not ready")

	// Checkout preconditions
	case errors.Is(err, service.ErrGuestInfoRequired):
		return http.StatusBadRequest, NewErrorResponse(CheckoutGuestInfoRequired, "Guest name and phone are required")
	case errors.Is(err, service.ErrAddressRequired):
		return http.StatusBadRequest, NewErrorResponse(CheckoutAddressRequired, "Shipping address is required")
	case errors.Is(err, service.ErrPaymentMethodRequired):
		return http.StatusBadRequest, NewErrorResponse(CheckoutPaymentRequired, "Payment method is required")
	case errors.Is(err, service.ErrSubmissionInFlight):
		return http.StatusConflict, NewErrorResponse(CheckoutInFlight, "An order submission is already in progress")
	case errors.Is(err, service.ErrSizeCategoryUnresolved):
		return http.StatusUnprocessableEntity, NewErrorResponse(CheckoutSizeCategoryMissing, err.Error())
	case errors.Is(err, service.ErrFishOnlinePaymentUnsupported):
		return http.StatusBadRequest, NewErrorResponse(CheckoutFishOnlineUnsupported, "Online payment is not available for fish orders")

	// Upstream commerce API
	case errors.Is(err, commerce.ErrNotFound):
		return http.StatusNotFound, NewErrorResponse(CatalogProductNotFound, "Product not found")
	case errors.Is(err, commerce.ErrUnauthorized):
		return http.StatusBadGateway, NewErrorResponse(InternalExternalAPI, "Commerce API rejected the request")
	case errors.Is(err, commerce.ErrInvalidRequest):
		return http.StatusBadRequest, NewErrorResponse(ValidationInvalidInput, "Commerce API rejected the request payload")
	case errors.Is(err, commerce.ErrNetworkError),
		errors.Is(err, commerce.ErrUpstreamFailed),
		errors.Is(err, commerce.ErrMissingOrderID):
		return http.StatusBadGateway, NewErrorResponse(InternalExternalAPI, "Commerce API is unavailable")

	// Database
	case errors.Is(err, gorm.ErrRecordNotFound):
		return http.StatusNotFound, NewErrorResponse(ValidationInvalidID, "Record not found")

	default:
		return http.StatusInternalServerError, NewErrorResponse(InternalServerError, "An unexpected error occurred")
	}
}
