package errors

import "fmt"

// Common error types for the verification workflow
type (
	ErrValidation          struct{ Field, Message string }
	ErrPreconditionFailed  struct{ Requires string }
	ErrInvalidTransaction  struct{}
	ErrProviderUnreachable struct{ Err error }
	ErrProviderResponse    struct{ Err error }
	ErrDatabase            struct{ Err error }
	ErrNotFound            struct{ Resource string }
)

func (e ErrValidation) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Message)
}

func (e ErrPreconditionFailed) Error() string {
	return fmt.Sprintf("precondition failed: requires %s", e.Requires)
}

func (e ErrInvalidTransaction) Error() string {
	return "OTP transaction is unknown or already consumed"
}

func (e ErrProviderUnreachable) Error() string {
	return fmt.Sprintf("couldn't reach verification provider: %v", e.Err)
}

func (e ErrProviderResponse) Error() string {
	return fmt.Sprintf("verification provider returned an unexpected response: %v", e.Err)
}

func (e ErrDatabase) Error() string {
	return fmt.Sprintf("database error: %v", e.Err)
}

func (e ErrNotFound) Error() string {
	return fmt.Sprintf("%s not found", e.Resource)
}
