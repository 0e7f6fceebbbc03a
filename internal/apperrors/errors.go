package apperrors

import (
	"errors"
	"fmt"
	"strings"
)

// ErrNotFound indicates that a requested resource could not be found.
var ErrNotFound = errors.New("resource not found")

// ErrValidation indicates that input data failed validation checks.
var ErrValidation = errors.New("validation error")

// ErrDuplicate indicates that an attempt was made to create a resource that already exists.
var ErrDuplicate = errors.New("resource already exists")

// ErrForbidden indicates that the caller is known but not allowed to perform the action.
var ErrForbidden = errors.New("forbidden")

// ErrConflict indicates that the stored version of a transaction moved past the version the caller read.
var ErrConflict = errors.New("version conflict")

// ErrDependencyUnmet indicates an attempt to complete an item whose dependencies are not completed.
var ErrDependencyUnmet = errors.New("dependencies not completed")

// ErrUpload indicates a rejected document upload (too large, unsupported type, unreadable body).
var ErrUpload = errors.New("upload rejected")

// ErrUnsupportedContentType is the ErrUpload returned for media types outside the allow-list.
var ErrUnsupportedContentType = fmt.Errorf("%w: content type not accepted", ErrUpload)

// ErrTransient marks failures of external collaborators that are worth retrying.
var ErrTransient = errors.New("transient failure")

// AppError carries an HTTP-ish status code alongside the wrapped cause.
type AppError struct {
	Code    int
	Message string
	Err     error
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// NewAppError creates a new AppError.
func NewAppError(code int, message string, err error) *AppError {
	return &AppError{Code: code, Message: message, Err: err}
}

// NewNotFoundError creates an AppError that matches ErrNotFound.
func NewNotFoundError(message string) *AppError {
	return &AppError{Code: 404, Message: message, Err: ErrNotFound}
}

// NewConflictError creates an AppError that matches ErrConflict.
func NewConflictError(message string) *AppError {
	return &AppError{Code: 409, Message: message, Err: ErrConflict}
}

// DependencyUnmetError lists the dependencies that blocked a completion.
type DependencyUnmetError struct {
	ItemID string
	Unmet  []string
}

func (e *DependencyUnmetError) Error() string {
	return fmt.Sprintf("item %s cannot be completed: dependencies not completed: %s", e.ItemID, strings.Join(e.Unmet, ", "))
}

// Is lets errors.Is(err, ErrDependencyUnmet) match.
func (e *DependencyUnmetError) Is(target error) bool {
	return target == ErrDependencyUnmet
}
