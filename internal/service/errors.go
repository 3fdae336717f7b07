package service

import (
	"errors"
	"fmt"
)

// Common service errors. The API layer maps them to HTTP status codes.
var (
	// ErrInvalidRequest indicates a generation request with an unknown kind or
	// question type. API layer should map this to HTTP 400 Bad Request.
	ErrInvalidRequest = errors.New("invalid generation request")

	// ErrExamNotFound indicates that the exam does not exist.
	// API layer should map this to HTTP 404 Not Found.
	ErrExamNotFound = errors.New("exam not found")

	// ErrInvalidExam indicates that the exam built from the input failed
	// validation. API layer should map this to HTTP 400 Bad Request.
	ErrInvalidExam = errors.New("invalid exam")

	// ErrNoQuestions is wrapped with ErrInvalidExam when a quiz yields no
	// usable questions.
	ErrNoQuestions = errors.New("quiz has no valid questions")
)

// ServiceError wraps unexpected errors from a service operation with context.
type ServiceError struct {
	Service   string
	Operation string
	Message   string
	Err       error
}

// Error implements the error interface for ServiceError.
func (e *ServiceError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s service %s failed: %s: %v", e.Service, e.Operation, e.Message, e.Err)
	}
	return fmt.Sprintf("%s service %s failed: %s", e.Service, e.Operation, e.Message)
}

// Unwrap returns the wrapped error to support errors.Is/errors.As.
func (e *ServiceError) Unwrap() error {
	return e.Err
}
