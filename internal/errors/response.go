package errors

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// ErrorInfo is the payload of a failed API response.
type ErrorInfo struct {
	Code    string      `json:"code"`
	Message string      `json:"message"`
	Details interface{} `json:"details,omitempty"`
}

// ErrorResponse is the envelope every failed request returns.
type ErrorResponse struct {
	Success bool      `json:"success"`
	Error   ErrorInfo `json:"error"`
}

// NewErrorResponse builds a standard error envelope.
func NewErrorResponse(code, message string) ErrorResponse {
	return ErrorResponse{
		Success: false,
		Error: ErrorInfo{
			Code:    code,
			Message: message,
		},
	}
}

// NewErrorResponseWithDetails builds an error envelope carrying extra context,
// e.g. the product name whose size category could not be resolved.
func NewErrorResponseWithDetails(code, message string, details interface{}) ErrorResponse {
	return ErrorResponse{
		Success: false,
		Error: ErrorInfo{
			Code:    code,
			Message: message,
			Details: details,
		},
	}
}

// RespondWithError writes a standard error envelope with the given status.
func RespondWithError(c *gin.Context, status int, code, message string) {
	c.JSON(status, NewErrorResponse(code, message))
}

// Unauthorized writes a 401 with the standard envelope.
func Unauthorized(c *gin.Context, message string) {
	RespondWithError(c, http.StatusUnauthorized, AuthUnauthorized, message)
}

// Forbidden writes a 403 with the standard envelope.
func Forbidden(c *gin.Context, message string) {
	RespondWithError(c, http.StatusForbidden, AuthzForbidden, message)
}

// BadRequest writes a 400 with the standard envelope.
func BadRequest(c *gin.Context, message string) {
	RespondWithError(c, http.StatusBadRequest, ValidationInvalidInput, message)
}

// HandleServiceError maps a service-layer error to a response and writes it.
func HandleServiceError(c *gin.Context, err error) {
	status, response := ParseError(err)
	c.JSON(status, response)
}
