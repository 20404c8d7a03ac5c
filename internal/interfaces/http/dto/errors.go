package dto

import (
	"net/http"
	"strings"
)

// Error codes originated by the HTTP layer itself. Domain errors carry
// their own codes and are mapped to status codes below.
const (
	ErrCodeBadRequest   = "BAD_REQUEST"
	ErrCodeValidation   = "VALIDATION_ERROR"
	ErrCodeUnauthorized = "UNAUTHORIZED"
	ErrCodeForbidden    = "FORBIDDEN"
	ErrCodeNotFound     = "NOT_FOUND"
	ErrCodeInternal     = "INTERNAL_ERROR"
)

// errorCodeHTTPStatus maps domain error codes to HTTP status codes
var errorCodeHTTPStatus = map[string]int{
	// Authentication
	"INVALID_CREDENTIALS": http.StatusUnauthorized,
	"INVALID_TOKEN":       http.StatusUnauthorized,
	"TOKEN_EXPIRED":       http.StatusUnauthorized,
	ErrCodeUnauthorized:   http.StatusUnauthorized,

	// Authorization and account state
	ErrCodeForbidden:         http.StatusForbidden,
	"ACCOUNT_INACTIVE":       http.StatusForbidden,
	"ORGANIZATION_PENDING":   http.StatusForbidden,
	"ORGANIZATION_SUSPENDED": http.StatusForbidden,
	"ORGANIZATION_REJECTED":  http.StatusForbidden,

	// Resources
	ErrCodeNotFound:   http.StatusNotFound,
	"QUOTE_NOT_FOUND": http.StatusNotFound,
	"EMAIL_TAKEN":     http.StatusConflict,
	"ALREADY_EXISTS":  http.StatusConflict,

	// Business rules
	"INVALID_STATE":      http.StatusUnprocessableEntity,
	"INVALID_TRANSITION": http.StatusUnprocessableEntity,
	"QUERY_CANCELLED":    http.StatusUnprocessableEntity,
	"INVALID_ITEM_KIND":  http.StatusUnprocessableEntity,

	// Input
	ErrCodeBadRequest: http.StatusBadRequest,
	ErrCodeValidation: http.StatusBadRequest,

	// Downstream services
	"STORAGE_UNAVAILABLE":  http.StatusServiceUnavailable,
	"RENDERER_UNAVAILABLE": http.StatusServiceUnavailable,
	"UPLOAD_FAILED":        http.StatusBadGateway,
	"PDF_FAILED":           http.StatusBadGateway,
	"PDF_TIMEOUT":          http.StatusGatewayTimeout,

	ErrCodeInternal: http.StatusInternalServerError,
}

// GetHTTPStatus returns the HTTP status code for a domain error code.
// Codes not explicitly mapped fall back on their naming convention:
// INVALID_* are rejected input (400), UNKNOWN_* are dangling references
// in an otherwise well-formed request (422).
func GetHTTPStatus(code string) int {
	if status, ok := errorCodeHTTPStatus[code]; ok {
		return status
	}
	if strings.HasPrefix(code, "INVALID_") {
		return http.StatusBadRequest
	}
	if strings.HasPrefix(code, "UNKNOWN_") {
		return http.StatusUnprocessableEntity
	}
	return http.StatusInternalServerError
}
