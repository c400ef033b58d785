package apierror

import (
	"encoding/json"
	"net/http"
)

// Error represents a structured API error response.
type Error struct {
	StatusCode int    `json:"-"`
	Code       string `json:"-"`
	Message    string `json:"error"`
}

// Error implements the error interface.
func (e *Error) Error() string {
	return e.Message
}

// ToJSON converts the error to its wire form: {"error": "..."}.
func (e *Error) ToJSON() []byte {
	data, _ := json.Marshal(e)
	return data
}

// BadRequest creates a 400 Bad Request error.
func BadRequest(message string) *Error {
	return &Error{
		StatusCode: http.StatusBadRequest,
		Code:       "BAD_REQUEST",
		Message:    message,
	}
}

// ValidationError creates a 400 error for malformed or missing client input.
func ValidationError(message string) *Error {
	return &Error{
		StatusCode: http.StatusBadRequest,
		Code:       "VALIDATION_ERROR",
		Message:    message,
	}
}

// NotFound creates a 404 Not Found error for an unknown item id.
func NotFound(message string) *Error {
	if message == "" {
		message = "Not found"
	}
	return &Error{
		StatusCode: http.StatusNotFound,
		Code:       "NOT_FOUND",
		Message:    message,
	}
}

// ProductNotFound creates a 404 for a barcode the upstream database does
// not know. Distinct from NotFound so callers can tell a missing item
// apart from a missing upstream product.
func ProductNotFound(message string) *Error {
	if message == "" {
		message = "product not found"
	}
	return &Error{
		StatusCode: http.StatusNotFound,
		Code:       "PRODUCT_NOT_FOUND",
		Message:    message,
	}
}

// UpstreamUnavailable creates a 502 Bad Gateway error for transport
// failures or non-success responses from the external product database.
func UpstreamUnavailable(message string) *Error {
	if message == "" {
		message = "upstream request failed"
	}
	return &Error{
		StatusCode: http.StatusBadGateway,
		Code:       "UPSTREAM_UNAVAILABLE",
		Message:    message,
	}
}

// InternalError creates a 500 Internal Server Error.
func InternalError(message string) *Error {
	if message == "" {
		message = "an unexpected error occurred"
	}
	return &Error{
		StatusCode: http.StatusInternalServerError,
		Code:       "INTERNAL_ERROR",
		Message:    message,
	}
}
