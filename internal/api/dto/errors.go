package dto

// APIError represents a structured error response.
// All error responses from the API use this format for consistency.
type APIError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// Common error codes
const (
	ErrCodeBadRequest    = "bad_request"
	ErrCodeParseError    = "parse_error"
	ErrCodeLedgerError   = "ledger_error"
	ErrCodeInternalError = "internal_error"
)

// NewAPIError creates a new APIError with the given code and message.
func NewAPIError(code, message string) APIError {
	return APIError{
		Code:    code,
		Message: message,
	}
}

// BadRequestError creates a bad request error response.
func BadRequestError(message string) APIError {
	return NewAPIError(ErrCodeBadRequest, message)
}

// ParseErrorResponse creates a response for a fatal scrape-parse failure.
func ParseErrorResponse(message string) APIError {
	return NewAPIError(ErrCodeParseError, message)
}

// LedgerError creates a response for a failed remote ledger call.
func LedgerError(message string) APIError {
	return NewAPIError(ErrCodeLedgerError, message)
}

// InternalError creates an internal server error response.
func InternalError() APIError {
	return NewAPIError(ErrCodeInternalError, "an internal error occurred")
}
