package routes

import (
	"errors"
	"net/http"

	"status-page/internal/status"
	"status-page/internal/statuspage"
	"status-page/internal/utils"
)

// HTTPError represents an error with an associated HTTP status code and user message
type HTTPError struct {
	Err        error  // The underlying error
	StatusCode int    // HTTP status code
	Message    string // User-friendly message
}

// ErrorInfo contains error metadata for user-facing errors
type ErrorInfo struct {
	Message string // User-friendly message
}

// Error implements the error interface
func (e *HTTPError) Error() string {
	if e.Err != nil {
		return e.Err.Error()
	}
	return e.Message
}

// Unwrap returns the underlying error
func (e *HTTPError) Unwrap() error {
	return e.Err
}

// NewHTTPError creates a new HTTPError
func NewHTTPError(statusCode int, err error, message string) *HTTPError {
	return &HTTPError{
		Err:        err,
		StatusCode: statusCode,
		Message:    message,
	}
}

// Routes-specific errors (that don't conflict with other packages)
var (
	// Authentication errors
	ErrUnauthorized = errors.New("unauthorized")

	// Validation errors
	ErrInvalidRequest = errors.New("invalid request")
	ErrMissingFields  = errors.New("missing required fields")

	// Page errors
	ErrAssetNotFound = errors.New("asset not found")
	ErrDocsNotFound  = errors.New("documentation not available")

	// Internal errors
	ErrQRCode             = errors.New("failed to encode QR code")
	ErrServiceUnavailable = errors.New("service unavailable")
)

// errorStatusMap maps errors to HTTP status codes
var errorStatusMap = map[error]int{
	// 400 Bad Request
	ErrInvalidRequest:           http.StatusBadRequest,
	ErrMissingFields:            http.StatusBadRequest,
	statuspage.ErrValidation:    http.StatusBadRequest,
	statuspage.ErrDuplicateName: http.StatusBadRequest,
	status.ErrInvalidStatus:     http.StatusBadRequest,
	status.ErrInvalidDate:       http.StatusBadRequest,

	// 401 Unauthorized
	ErrUnauthorized: http.StatusUnauthorized,

	// 404 Not Found
	statuspage.ErrNotFound: http.StatusNotFound,
	ErrAssetNotFound:       http.StatusNotFound,

	// 500 Internal Server Error
	ErrDocsNotFound:                  http.StatusInternalServerError,
	utils.ErrStorageProviderNotFound: http.StatusInternalServerError,

	// 503 Service Unavailable
	ErrServiceUnavailable: http.StatusServiceUnavailable,
}

// errorInfoMap maps errors to user-facing messages. Errors mapped to a 4xx
// status without an entry here pass their own text through.
var errorInfoMap = map[error]ErrorInfo{
	ErrUnauthorized:         {Message: "Invalid API key"},
	ErrInvalidRequest:       {Message: "Invalid request format"},
	ErrMissingFields:        {Message: "Missing required fields"},
	status.ErrInvalidStatus: {Message: "Invalid status"},
	status.ErrInvalidDate:   {Message: "Invalid date format, expected YYYY-MM-DD"},
	statuspage.ErrNotFound:  {Message: "Component not found"},
	ErrAssetNotFound:        {Message: "Not found"},

	// Internal
	ErrDocsNotFound:                  {Message: "Documentation is not available"},
	utils.ErrStorageProviderNotFound: {Message: "Storage service is not available"},
	ErrServiceUnavailable:            {Message: "Service is temporarily unavailable"},
}

// GetErrorStatus returns the HTTP status code for an error
func GetErrorStatus(err error) int {
	// Check if it's already an HTTPError
	var httpErr *HTTPError
	if errors.As(err, &httpErr) {
		return httpErr.StatusCode
	}

	// Check direct match
	if status, ok := errorStatusMap[err]; ok {
		return status
	}

	// Check if error wraps a known error
	for knownErr, status := range errorStatusMap {
		if errors.Is(err, knownErr) {
			return status
		}
	}

	// Default to 500 Internal Server Error
	return http.StatusInternalServerError
}

// GetErrorInfo returns error information for the response body
func GetErrorInfo(err error) ErrorInfo {
	// Check if it's an HTTPError with custom info
	var httpErr *HTTPError
	if errors.As(err, &httpErr) {
		return ErrorInfo{Message: httpErr.Message}
	}

	// Check direct match
	if info, ok := errorInfoMap[err]; ok {
		return info
	}

	// Check if error wraps a known error
	for knownErr, info := range errorInfoMap {
		if errors.Is(err, knownErr) {
			return info
		}
	}

	// For unknown errors, return a generic message for 5xx, specific for others
	if GetErrorStatus(err) >= 500 {
		return ErrorInfo{Message: "An internal error occurred"}
	}
	return ErrorInfo{Message: err.Error()}
}
