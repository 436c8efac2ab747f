package model

// Standard error codes for API responses
const (
	ErrCodeMissingField    = "MISSING_FIELD"
	ErrCodeInvalidNumber   = "INVALID_NUMBER"
	ErrCodeInvalidRange    = "INVALID_RANGE"
	ErrCodeDuplicateSKU    = "DUPLICATE_SKU"
	ErrCodeProductNotFound = "PRODUCT_NOT_FOUND"
	ErrCodeUnauthorised    = "UNAUTHORIZED"
	ErrCodeInternalError   = "INTERNAL_ERROR"
)

// DomainError is a business-rule violation with a stable code and a
// message fit for end users.
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

// IsValidation reports whether the error is a request-validation
// failure (as opposed to not-found or an internal fault).
func (e *DomainError) IsValidation() bool {
	switch e.Code {
	case ErrCodeMissingField, ErrCodeInvalidNumber, ErrCodeInvalidRange, ErrCodeDuplicateSKU:
		return true
	}
	return false
}

// Common domain errors
var (
	ErrFieldsRequired     = NewDomainError(ErrCodeMissingField, "All fields are required")
	ErrNotNumeric         = NewDomainError(ErrCodeInvalidNumber, "Column and row must be numbers")
	ErrInvalidPosition    = NewDomainError(ErrCodeInvalidRange, "Invalid column or row value")
	ErrSKUTooLong         = NewDomainError(ErrCodeInvalidRange, "SKU must be 50 characters or fewer")
	ErrNameTooLong        = NewDomainError(ErrCodeInvalidRange, "Name must be 100 characters or fewer")
	ErrDuplicateSKU       = NewDomainError(ErrCodeDuplicateSKU, "Product with this SKU already exists")
	ErrProductNotFound    = NewDomainError(ErrCodeProductNotFound, "Product not found")
	ErrInvalidCredentials = NewDomainError(ErrCodeUnauthorised, "Invalid username or password")
)
