package utils

import "errors"

// Validation failures. All of them are recovered locally by re-prompting;
// none of them mutates the answer set.
var (
	ErrUnknownQuestion   = errors.New("unknown question id")
	ErrWrongQuestion     = errors.New("question does not match the current step")
	ErrInvalidChoice     = errors.New("choice is not in the question's choice set")
	ErrInvalidNumber     = errors.New("value is not a valid number")
	ErrPriceOutOfRange   = errors.New("price must be between 1 and 100000")
	ErrMembersOutOfRange = errors.New("members must be between 1 and 10")
)

// Flow failures.
var (
	ErrInvalidMode       = errors.New("invalid diagnosis mode")
	ErrInvalidTransition = errors.New("operation not allowed in the current state")
	ErrInvalidStep       = errors.New("step is outside the allowed range")
	ErrIncompleteAnswers = errors.New("required answers are missing")
	ErrSessionNotFound   = errors.New("diagnosis session not found")
)

// Storage failures. Persistence is best-effort: callers log these through the
// bounded error log and keep the in-memory session alive.
var (
	ErrStorageFailure = errors.New("storage operation failed")
	ErrCorruptPayload = errors.New("stored payload could not be decoded")
)

// IsValidationError reports whether err belongs to the validation family.
func IsValidationError(err error) bool {
	return errors.Is(err, ErrUnknownQuestion) ||
		errors.Is(err, ErrWrongQuestion) ||
		errors.Is(err, ErrInvalidChoice) ||
		errors.Is(err, ErrInvalidNumber) ||
		errors.Is(err, ErrPriceOutOfRange) ||
		errors.Is(err, ErrMembersOutOfRange)
}
