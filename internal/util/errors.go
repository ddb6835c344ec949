package util

import (
	"errors"
	"fmt"
)

// ErrorKind classifies service failures so the transport layer can choose a
// user-facing reaction without inspecting store errors.
type ErrorKind int

const (
	// KindNotFound: a student, topic or exercise lookup failed.
	KindNotFound ErrorKind = iota
	// KindPreconditionFailed: the action targets an exercise never recommended
	// to the student, an exhausted hint sequence, or a missing solution.
	KindPreconditionFailed
	// KindExhausted: no unattempted exercise remains at any valid tier.
	KindExhausted
	// KindStoreFailure: the underlying persistence operation failed. The cause
	// is wrapped and logged; the user only ever sees a generic message.
	KindStoreFailure
)

// ServiceError is the failure half of every service result. Message holds the
// localized text shown to the student.
type ServiceError struct {
	Kind    ErrorKind
	Message string
	Err     error
}

func (e *ServiceError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *ServiceError) Unwrap() error {
	return e.Err
}

func NotFoundError(message string) *ServiceError {
	return &ServiceError{Kind: KindNotFound, Message: message}
}

func PreconditionError(message string) *ServiceError {
	return &ServiceError{Kind: KindPreconditionFailed, Message: message}
}

func ExhaustedError(message string) *ServiceError {
	return &ServiceError{Kind: KindExhausted, Message: message}
}

func StoreError(err error) *ServiceError {
	return &ServiceError{
		Kind:    KindStoreFailure,
		Message: "Ocurrió un error interno. Inténtalo nuevamente más tarde.",
		Err:     err,
	}
}

// KindOf extracts the error kind; unknown errors count as store failures so
// nothing raw ever reaches the user.
func KindOf(err error) ErrorKind {
	var se *ServiceError
	if errors.As(err, &se) {
		return se.Kind
	}
	return KindStoreFailure
}

// UserMessage returns the localized text for err, falling back to the generic
// internal error message.
func UserMessage(err error) string {
	var se *ServiceError
	if errors.As(err, &se) {
		return se.Message
	}
	return "Ocurrió un error interno. Inténtalo nuevamente más tarde."
}
