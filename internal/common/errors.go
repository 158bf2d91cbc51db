// Package common defines shared sentinel errors and helpers used across
// gradebook components. Callers should use errors.Is to match the errors.
package common

import "errors"

var (
	// Repository-level errors.
	ErrorNotFound = errors.New("not found")

	// Identity errors.
	ErrDuplicateIdentity = errors.New("username or roll number already exists")
	ErrUnknownIdentity   = errors.New("username not found")

	// ErrAuthenticationFailed covers both a wrong username and a wrong
	// password so callers cannot tell which field was wrong.
	ErrAuthenticationFailed = errors.New("invalid username or password")

	// Result entry errors.
	ErrInvalidScore     = errors.New("score must be between 0 and 100")
	ErrDuplicateSubject = errors.New("subject code already exists")
	ErrDuplicateResult  = errors.New("result already entered for this student, subject and semester")

	// Validation errors (weak password, bad numeric input, etc.).
	ErrValidation = errors.New("validation error")

	// ErrAuditWriteFailed marks a failure of the audit side effect. It is
	// reported separately from the primary operation's outcome and never
	// rolls back an already committed write.
	ErrAuditWriteFailed = errors.New("audit write failed")
)
