package domain

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/CHIRANJEEVICHETAN/Tecosoft-Docs-sub001/internal/rbac"
)

// HTTPError defines errors that can be mapped to HTTP status codes.
// Implementing this interface enables extensible error handling.
type HTTPError interface {
	error
	StatusCode() int
}

// Domain error types implementing HTTPError interface
type (
	// NotFoundError indicates a resource was not found
	NotFoundError struct {
		Message string
	}

	// ValidationError indicates invalid input
	ValidationError struct {
		Message string
	}

	// UnauthorizedError indicates authentication failure
	UnauthorizedError struct {
		Message string
	}

	// ForbiddenError indicates authorization failure
	ForbiddenError struct {
		Message string
	}
)

// Error implementations
func (e *NotFoundError) Error() string     { return e.Message }
func (e *ValidationError) Error() string   { return e.Message }
func (e *UnauthorizedError) Error() string { return e.Message }
func (e *ForbiddenError) Error() string    { return e.Message }

// StatusCode implementations (HTTPError interface)
func (e *NotFoundError) StatusCode() int     { return http.StatusNotFound }
func (e *ValidationError) StatusCode() int   { return http.StatusBadRequest }
func (e *UnauthorizedError) StatusCode() int { return http.StatusUnauthorized }
func (e *ForbiddenError) StatusCode() int    { return http.StatusForbidden }

// Sentinel errors - use with errors.Is()
var (
	ErrNotFound         = errors.New("not found")
	ErrConflict         = errors.New("already exists")
	ErrValidation       = errors.New("validation failed")
	ErrUnauthorized     = errors.New("unauthorized")
	ErrForbidden        = errors.New("forbidden")
	ErrQuotaExceeded    = errors.New("plan quota exceeded")
	ErrSelfModification = errors.New("cannot change or remove your own membership")
	ErrLastOwner        = errors.New("project must keep at least one owner")
	ErrInviteExpired    = errors.New("invitation has expired")
)

// ConflictError represents a resource conflict with details about the existing resource
type ConflictError struct {
	Message      string // Human-readable error message
	ResourceType string // Type of resource (organization, project, document, invitation)
	ResourceID   string // ID of the existing/conflicting resource
}

// Error implements the error interface
func (e *ConflictError) Error() string {
	return e.Message
}

// StatusCode implements the HTTPError interface
func (e *ConflictError) StatusCode() int {
	return http.StatusConflict
}

// Is allows errors.Is() to match against ErrConflict
func (e *ConflictError) Is(target error) bool {
	return target == ErrConflict
}

// AccessDeniedError is a denied authorization decision carried as an error.
// The reason decides the HTTP status: an unauthenticated caller gets 401,
// every other denial 403. Note the distinction from data errors: a failed
// identity lookup is a 5xx, never coerced into a denial.
type AccessDeniedError struct {
	Reason  rbac.DenyReason
	Missing []rbac.Permission
}

func (e *AccessDeniedError) Error() string {
	if len(e.Missing) == 0 {
		return fmt.Sprintf("access denied: %s", e.Reason)
	}
	parts := make([]string, len(e.Missing))
	for i, p := range e.Missing {
		parts[i] = string(p)
	}
	return fmt.Sprintf("access denied: %s (missing %s)", e.Reason, strings.Join(parts, ", "))
}

func (e *AccessDeniedError) StatusCode() int {
	if e.Reason == rbac.DenyUnauthenticated {
		return http.StatusUnauthorized
	}
	return http.StatusForbidden
}

// Is allows errors.Is() to match ErrUnauthorized or ErrForbidden depending on
// the denial reason.
func (e *AccessDeniedError) Is(target error) bool {
	if e.Reason == rbac.DenyUnauthenticated {
		return target == ErrUnauthorized
	}
	return target == ErrForbidden
}

// AccessDenied wraps a guard decision into an error. Callers must only pass
// denied decisions.
func AccessDenied(decision rbac.Decision) error {
	return &AccessDeniedError{Reason: decision.Reason, Missing: decision.Missing}
}

// QuotaExceededError reports a plan limit that blocks a create operation.
type QuotaExceededError struct {
	Resource string // what ran out: projects, members, documents
	Current  int64
	Limit    int64
}

func (e *QuotaExceededError) Error() string {
	return fmt.Sprintf("%s quota exceeded: %d of %d used", e.Resource, e.Current, e.Limit)
}

func (e *QuotaExceededError) StatusCode() int {
	return http.StatusUnprocessableEntity
}

func (e *QuotaExceededError) Is(target error) bool {
	return target == ErrQuotaExceeded
}
