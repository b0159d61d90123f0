package dto

import "net/http"

// General error codes
const (
	ErrCodeInternal   = "INTERNAL_ERROR"
	ErrCodeBadRequest = "BAD_REQUEST"
)

// Authentication error codes
const (
	ErrCodeUnauthorized = "UNAUTHORIZED"
	ErrCodeForbidden    = "FORBIDDEN"
)

// Resource error codes
const (
	ErrCodeNotFound = "NOT_FOUND"
	ErrCodeConflict = "CONFLICT"
)

// ErrorCodeHTTPStatus maps domain error codes to HTTP status codes.
// Validation failures map to 400, business rule violations to 422.
var ErrorCodeHTTPStatus = map[string]int{
	ErrCodeInternal:   http.StatusInternalServerError,
	ErrCodeBadRequest: http.StatusBadRequest,

	// Authentication and authorization
	ErrCodeUnauthorized:   http.StatusUnauthorized,
	"INVALID_CREDENTIALS": http.StatusUnauthorized,
	"TOKEN_EXPIRED":       http.StatusUnauthorized,
	"TOKEN_INVALID":       http.StatusUnauthorized,
	"TOKEN_MAX_REFRESH":   http.StatusUnauthorized,
	ErrCodeForbidden:      http.StatusForbidden,
	"ROLE_NOT_SET":        http.StatusForbidden,
	"INVALID_OWNER":       http.StatusForbidden,

	// Resources
	ErrCodeNotFound:  http.StatusNotFound,
	ErrCodeConflict:  http.StatusConflict,
	"ALREADY_EXISTS": http.StatusConflict,
	"USERNAME_TAKEN": http.StatusConflict,

	// Validation
	"INVALID_INPUT":        http.StatusBadRequest,
	"INVALID_ROLE":         http.StatusBadRequest,
	"INVALID_USERNAME":     http.StatusBadRequest,
	"INVALID_EMAIL":        http.StatusBadRequest,
	"INVALID_PASSWORD":     http.StatusBadRequest,
	"INVALID_NAME":         http.StatusBadRequest,
	"INVALID_CATEGORY":     http.StatusBadRequest,
	"INVALID_PRICE":        http.StatusBadRequest,
	"INVALID_QUANTITY":     http.StatusBadRequest,
	"INVALID_RATING":       http.StatusBadRequest,
	"INVALID_STATUS":       http.StatusBadRequest,
	"INVALID_MESSAGE":      http.StatusBadRequest,
	"INVALID_CONTENT_TYPE": http.StatusBadRequest,
	"INVALID_IMAGE_KEY":    http.StatusBadRequest,

	// Business rules
	"INVALID_STATE":             http.StatusUnprocessableEntity,
	"INVALID_STATUS_TRANSITION": http.StatusUnprocessableEntity,
	"INSUFFICIENT_STOCK":        http.StatusUnprocessableEntity,
	"REVIEW_NOT_ELIGIBLE":       http.StatusUnprocessableEntity,
	"SELF_DELETE":               http.StatusUnprocessableEntity,
}

// GetHTTPStatus returns the HTTP status code for an error code, defaulting
// to 500 for codes outside the table
func GetHTTPStatus(code string) int {
	if status, ok := ErrorCodeHTTPStatus[code]; ok {
		return status
	}
	return http.StatusInternalServerError
}
