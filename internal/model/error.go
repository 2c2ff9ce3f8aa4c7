package model

// ErrorResponse represents a standardised error response.
type ErrorResponse struct {
	Error         string `json:"error"`
	Message       string `json:"message"`
	CorrelationID string `json:"correlationId,omitempty"`
}

// Standard error codes for API responses
const (
	ErrCodeInvalidJSON     = "INVALID_JSON"
	ErrCodeMissingField    = "MISSING_FIELD"
	ErrCodeProductNotFound = "PRODUCT_NOT_FOUND"
	ErrCodeTariffNotFound  = "TARIFF_NOT_FOUND"
	ErrCodeInvalidQuantity = "INVALID_QUANTITY"
	ErrCodeInvalidCart     = "INVALID_CART"
	ErrCodeMissingReason   = "MISSING_REASON"
	ErrCodeUnknownState    = "UNKNOWN_STATE"
	ErrCodeConflict        = "CONFLICT"
	ErrCodeOrderNotFound   = "ORDER_NOT_FOUND"
	ErrCodeUnauthorised    = "UNAUTHORIZED"
	ErrCodeForbidden       = "FORBIDDEN"
	ErrCodeInternalError   = "INTERNAL_ERROR"
)

// Domain errors for business logic
type DomainError struct {
	Code    string
	Message string
}

func (e *DomainError) Error() string {
	return e.Message
}

// NewDomainError creates a new domain error
func NewDomainError(code, message string) *DomainError {
	return &DomainError{
		Code:    code,
		Message: message,
	}
}

// Common domain errors
var (
	ErrProductNotFound = NewDomainError(ErrCodeProductNotFound, "Product not found in catalogue")
	ErrTariffNotFound  = NewDomainError(ErrCodeTariffNotFound, "No tariff for the requested format and colour combination")
	ErrInvalidQuantity = NewDomainError(ErrCodeInvalidQuantity, "Quantity must be greater than zero")
	ErrInvalidCart     = NewDomainError(ErrCodeInvalidCart, "Cart must contain at least one line")
	ErrMissingReason   = NewDomainError(ErrCodeMissingReason, "A correction requires a non-empty reason")
	ErrUnknownState    = NewDomainError(ErrCodeUnknownState, "Unknown order state")
	ErrConflict        = NewDomainError(ErrCodeConflict, "Order was modified concurrently")
	ErrOrderNotFound   = NewDomainError(ErrCodeOrderNotFound, "Order not found")
)
