package dto

import "net/http"

// General error codes
const (
	ErrCodeInternal   = "INTERNAL_ERROR"
	ErrCodeBadRequest = "BAD_REQUEST"
	ErrCodeValidation = "VALIDATION_ERROR"
	ErrCodeNotFound   = "NOT_FOUND"
)

// errorCodeHTTPStatus maps domain error codes to HTTP status codes. Codes
// not listed here fall back to 400 for domain errors; unknown error types
// become 500.
var errorCodeHTTPStatus = map[string]int{
	ErrCodeInternal:   http.StatusInternalServerError,
	ErrCodeBadRequest: http.StatusBadRequest,
	ErrCodeValidation: http.StatusBadRequest,
	ErrCodeNotFound:   http.StatusNotFound,

	"UNAUTHORIZED":       http.StatusUnauthorized,
	"FORBIDDEN":          http.StatusForbidden,
	"INVALID_TOKEN":      http.StatusUnauthorized,
	"INVALID_RESET_CODE": http.StatusUnauthorized,

	"DUPLICATE_PHONE": http.StatusConflict,
	"DUPLICATE_EMAIL": http.StatusConflict,
	"DUPLICATE_CODE":  http.StatusConflict,

	"ALREADY_SUBMITTED":   http.StatusConflict,
	"COUPON_ALREADY_USED": http.StatusConflict,

	"COUPON_INACTIVE":     http.StatusUnprocessableEntity,
	"COUPON_EXPIRED":      http.StatusUnprocessableEntity,
	"COUPON_EXHAUSTED":    http.StatusUnprocessableEntity,
	"COUPON_NOT_ASSIGNED": http.StatusUnprocessableEntity,

	"INVALID_STATUS":         http.StatusUnprocessableEntity,
	"ORDER_NUMBER_EXHAUSTED": http.StatusInternalServerError,
	"RENDER_TIMEOUT":         http.StatusServiceUnavailable,
	"RENDER_FAILED":          http.StatusInternalServerError,

	"IMPORT_EMPTY_FILE":       http.StatusBadRequest,
	"IMPORT_INVALID_ENCODING": http.StatusBadRequest,
	"IMPORT_MISSING_HEADER":   http.StatusBadRequest,
}

// GetHTTPStatus returns the HTTP status code for a domain error code.
// Unmapped codes are treated as client errors; domain validation failures
// dominate that set.
func GetHTTPStatus(code string) int {
	if status, ok := errorCodeHTTPStatus[code]; ok {
		return status
	}
	return http.StatusBadRequest
}
