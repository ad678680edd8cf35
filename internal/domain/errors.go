package domain

import "errors"

var (
	// ErrEmailTaken indicates a registration attempt with an email that
	// already exists.
	ErrEmailTaken = errors.New("email already exists")
	// ErrUserNotFound indicates a login attempt with an unknown email.
	ErrUserNotFound = errors.New("email does not exist")
	// ErrInvalidCredentials indicates that the provided password was incorrect.
	ErrInvalidCredentials = errors.New("invalid password")
	// ErrUnauthenticated indicates a missing, invalid, or expired session.
	ErrUnauthenticated = errors.New("unauthenticated")
	// ErrRecipeNotFound covers both a recipe that does not exist and a
	// recipe owned by someone else. The two cases are intentionally
	// indistinguishable.
	ErrRecipeNotFound = errors.New("recipe not found")
)

// ValidationError reports missing or malformed input.
type ValidationError struct {
	Reason string
}

func (e *ValidationError) Error() string {
	return e.Reason
}

// Validation builds a ValidationError with the given reason.
func Validation(reason string) error {
	return &ValidationError{Reason: reason}
}
