package domain

import "errors"

// Domain errors (no external dependencies). The HTTP layer maps these to
// status codes; bulk import collects them per identifier instead of aborting.
var (
	ErrNotFound           = errors.New("resource not found")
	ErrUserNotFound       = errors.New("user not found")
	ErrUsernameTaken      = errors.New("username already registered")
	ErrEmailAlreadyExists = errors.New("email already registered")
	ErrInvalidInput       = errors.New("invalid input")
	ErrInvalidVAT         = errors.New("invalid VAT number")
	ErrDuplicate          = errors.New("resource already exists")
	ErrForbidden          = errors.New("access denied")
	ErrNoFinancialData    = errors.New("no financial statements available")
	ErrProviderFailure    = errors.New("business-data provider request failed")
)
