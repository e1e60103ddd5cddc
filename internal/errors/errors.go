package errors

import "fmt"

type ValidationDetail struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

type ValidationError struct {
	Message string
	Details []ValidationDetail
}

func (e *ValidationError) Error() string {
	return e.Message
}

func NewValidationError(message string, details ...ValidationDetail) *ValidationError {
	return &ValidationError{
		Message: message,
		Details: details,
	}
}

func IsValidationError(err error) (*ValidationError, bool) {
	if ve, ok := err.(*ValidationError); ok {
		return ve, true
	}
	return nil, false
}

type NotFoundError struct {
	Message string
}

func (e *NotFoundError) Error() string {
	return e.Message
}

func NewNotFoundError(message string) *NotFoundError {
	return &NotFoundError{Message: message}
}

func IsNotFoundError(err error) (*NotFoundError, bool) {
	if nfe, ok := err.(*NotFoundError); ok {
		return nfe, true
	}
	return nil, false
}

// StoreError marks any failed read or write against the record store. The
// operation that hit it is aborted and the error surfaces to the caller; there
// is no automatic retry.
type StoreError struct {
	Message string
	Cause   error
}

func (e *StoreError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Cause)
	}
	return e.Message
}

func (e *StoreError) Unwrap() error {
	return e.Cause
}

func NewStoreError(message string, cause error) *StoreError {
	return &StoreError{
		Message: message,
		Cause:   cause,
	}
}

func IsStoreError(err error) (*StoreError, bool) {
	if se, ok := err.(*StoreError); ok {
		return se, true
	}
	return nil, false
}

// MergeError reports a duplicate group whose three-step commit failed partway.
// Other groups in the same batch still proceed; the affected group stays in
// whatever intermediate state it reached until the next detect/commit cycle.
type MergeError struct {
	NormalizedPhone string
	Step            string
	Cause           error
}

func (e *MergeError) Error() string {
	return fmt.Sprintf("merging group %s failed at %s: %v", e.NormalizedPhone, e.Step, e.Cause)
}

func (e *MergeError) Unwrap() error {
	return e.Cause
}

func NewMergeError(normalizedPhone, step string, cause error) *MergeError {
	return &MergeError{
		NormalizedPhone: normalizedPhone,
		Step:            step,
		Cause:           cause,
	}
}

func IsMergeError(err error) (*MergeError, bool) {
	if me, ok := err.(*MergeError); ok {
		return me, true
	}
	return nil, false
}

// ConflictError marks a request that is valid in isolation but illegal in the
// current workflow state, e.g. committing a merge with no detected plan.
type ConflictError struct {
	Message string
}

func (e *ConflictError) Error() string {
	return e.Message
}

func NewConflictError(message string) *ConflictError {
	return &ConflictError{Message: message}
}

func IsConflictError(err error) (*ConflictError, bool) {
	if ce, ok := err.(*ConflictError); ok {
		return ce, true
	}
	return nil, false
}
