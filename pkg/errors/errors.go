package errors

import "fmt"

// ErrorType represents different types of errors that can occur when talking
// to the stats service
type ErrorType string

const (
	ErrorTypeNetwork     ErrorType = "network"
	ErrorTypeRateLimit   ErrorType = "rate_limit"
	ErrorTypeParsing     ErrorType = "parsing"
	ErrorTypeNotFound    ErrorType = "not_found"
	ErrorTypeServerError ErrorType = "server_error"
	ErrorTypeEmpty       ErrorType = "empty"
	ErrorTypeUnknown     ErrorType = "unknown"
)

// Error represents a stats API error with type information
type Error struct {
	Type    ErrorType
	Message string
	Code    int
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s error (code %d): %s", e.Type, e.Code, e.Message)
}

// IsRetryable checks if an error type should be retried. The stats service
// gives no usable distinction between transient and permanent failures, so
// everything except a definitive not-found retries.
func IsRetryable(errorType ErrorType) bool {
	switch errorType {
	case ErrorTypeNotFound:
		return false
	default:
		return true
	}
}

// IsRetryableStatusCode checks if an HTTP status code indicates a retryable error
func IsRetryableStatusCode(statusCode int) bool {
	switch statusCode {
	case 0: // Network error
		return true
	case 429: // Too Many Requests
		return true
	case 500, 502, 503, 504:
		return true
	case 404:
		return false
	default:
		return statusCode >= 500
	}
}

// TypeForStatusCode maps an HTTP status code to an ErrorType.
func TypeForStatusCode(statusCode int) ErrorType {
	switch {
	case statusCode == 0:
		return ErrorTypeNetwork
	case statusCode == 429:
		return ErrorTypeRateLimit
	case statusCode == 404:
		return ErrorTypeNotFound
	case statusCode >= 500:
		return ErrorTypeServerError
	default:
		return ErrorTypeUnknown
	}
}
