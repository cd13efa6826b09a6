// Package apperror defines the error taxonomy shared by the interview core and
// its presentation layers.
package apperror

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

var (
	// ErrNotFound is returned when a session or stored value does not exist.
	ErrNotFound = errors.New("not found")
	// ErrSessionBusy is returned when a generator call is already pending for a session.
	ErrSessionBusy = errors.New("session is waiting for the generator")
	// ErrCredentialMissing is returned when no API key is configured for the generator.
	ErrCredentialMissing = errors.New("API key chưa được cấu hình")
)

// GenerationError wraps any failure while generating questions or evaluating an answer:
// missing credential, transport failure or a response that fails schema validation.
type GenerationError struct {
	Op  string
	Err error
}

func (e *GenerationError) Error() string {
	return fmt.Sprintf("generation failed (%s): %v", e.Op, e.Err)
}

func (e *GenerationError) Unwrap() error {
	return e.Err
}

func NewGenerationError(op string, err error) *GenerationError {
	return &GenerationError{Op: op, Err: err}
}

// ReportUnavailableError is terminal for a session: no retry, no partial report.
type ReportUnavailableError struct {
	Err error
}

func (e *ReportUnavailableError) Error() string {
	return fmt.Sprintf("report unavailable: %v", e.Err)
}

func (e *ReportUnavailableError) Unwrap() error {
	return e.Err
}

func NewReportUnavailable(err error) *ReportUnavailableError {
	return &ReportUnavailableError{Err: err}
}

// ValidationError is a local rejection raised before any remote call.
type ValidationError struct {
	Message string
	Fields  map[string]string
}

func (e *ValidationError) Error() string {
	if len(e.Fields) == 0 {
		return fmt.Sprintf("validation error: %s", e.Message)
	}
	keys := make([]string, 0, len(e.Fields))
	for k := range e.Fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, k+": "+e.Fields[k])
	}
	return fmt.Sprintf("validation error: %s (%s)", e.Message, strings.Join(parts, "; "))
}

func NewValidationError(message string, fields map[string]string) *ValidationError {
	return &ValidationError{Message: message, Fields: fields}
}

// InvalidTransitionError reports an operation attempted from a state that does not allow it.
type InvalidTransitionError struct {
	Op    string
	State string
}

func (e *InvalidTransitionError) Error() string {
	return fmt.Sprintf("%s is not allowed in state %s", e.Op, e.State)
}

func NewInvalidTransition(op, state string) *InvalidTransitionError {
	return &InvalidTransitionError{Op: op, State: state}
}

func IsGeneration(err error) bool {
	var target *GenerationError
	return errors.As(err, &target)
}

func IsReportUnavailable(err error) bool {
	var target *ReportUnavailableError
	return errors.As(err, &target)
}

func IsValidation(err error) bool {
	var target *ValidationError
	return errors.As(err, &target)
}

func IsInvalidTransition(err error) bool {
	var target *InvalidTransitionError
	return errors.As(err, &target)
}
