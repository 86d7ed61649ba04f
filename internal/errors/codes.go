package errors

// Error code constants, format: CATEGORY_SPECIFIC_DETAIL.
// The storefront client maps these codes to localized messages.

const (
	// ==================== Auth (AUTH_) ====================
	AuthUnauthorized   = "AUTH_UNAUTHORIZED"
	AuthTokenExpired   = "AUTH_TOKEN_EXPIRED"
	AuthTokenInvalid   = "AUTH_TOKEN_INVALID"
	AuthzForbidden     = "AUTHZ_FORBIDDEN"
	AuthzRoleNotFound  = "AUTHZ_ROLE_NOT_FOUND"
	AuthzAdminOnly     = "AUTHZ_ADMIN_ONLY"

	// ==================== Validation (VALIDATION_) ====================
	ValidationInvalidInput = "VALIDATION_INVALID_INPUT"
	ValidationInvalidID    = "VALIDATION_INVALID_ID"
	ValidationRequired     = "VALIDATION_REQUIRED"

	// ==================== Cart (CART_) ====================
	CartEmpty        = "CART_EMPTY"
	CartItemNotFound = "CART_ITEM_NOT_FOUND"
	CartStockLimit   = "CART_STOCK_LIMIT"

	// ==================== Catalog (CATALOG_) ====================
	CatalogProductNotFound = "CATALOG_PRODUCT_NOT_FOUND"
	CatalogInvalidVariant  = "CATALOG_INVALID_VARIANT"

	// ==================== Shipping quote (QUOTE_) ====================
	QuoteZoneRequired = "QUOTE_ZONE_REQUIRED"
	QuoteNotReady     = "QUOTE_NOT_READY"
	QuoteSuperseded   = "QUOTE_SUPERSEDED"
	QuoteFailed       = "QUOTE_FAILED"

	// ==================== Checkout (CHECKOUT_) ====================
	CheckoutGuestInfoRequired     = "CHECKOUT_GUEST_INFO_REQUIRED"
	CheckoutAddressRequired       = "CHECKOUT_ADDRESS_REQUIRED"
	CheckoutPaymentRequired       = "CHECKOUT_PAYMENT_REQUIRED"
	CheckoutInFlight              = "CHECKOUT_IN_FLIGHT"
	CheckoutRegularOrderFailed    = "CHECKOUT_REGULAR_ORDER_FAILED"
	CheckoutFishOrderFailed       = "CHECKOUT_FISH_ORDER_FAILED"
	CheckoutPartialSuccess        = "CHECKOUT_PARTIAL_SUCCESS"
	CheckoutSizeCategoryMissing   = "CHECKOUT_SIZE_CATEGORY_MISSING"
	CheckoutFishOnlineUnsupported = "CHECKOUT_FISH_ONLINE_UNSUPPORTED"
	CheckoutPaymentSessionFailed  = "CHECKOUT_PAYMENT_SESSION_FAILED"

	// ==================== Internal (INTERNAL_) ====================
	InternalServerError   = "INTERNAL_SERVER_ERROR"
	InternalDatabaseError = "INTERNAL_DATABASE_ERROR"
	InternalExternalAPI   = "INTERNAL_EXTERNAL_API"
)
