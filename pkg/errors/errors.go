package errors

import (
	"errors"
	"fmt"
)

// Error types for classifying poll-cycle failures

// ErrorType represents different categories of errors
type ErrorType string

const (
	// Report parsing errors, fatal to the poll cycle
	ErrorTypeSectionNotFound     ErrorType = "section_not_found"
	ErrorTypeSectionOrder        ErrorType = "section_order"
	ErrorTypeDescriptorNotFound  ErrorType = "descriptor_not_found"
	ErrorTypeProcessSectionParse ErrorType = "process_section_parse"
	ErrorTypeManagerNotRunning   ErrorType = "manager_not_running"

	// Degradation warnings, recorded but never abort the cycle
	ErrorTypeLagSection   ErrorType = "lag_section"
	ErrorTypeMemoryLookup ErrorType = "memory_lookup"

	// Ambient errors raised by configuration and collaborators
	ErrorTypeValidation ErrorType = "validation"
	ErrorTypeConfig     ErrorType = "config"
	ErrorTypeConflict   ErrorType = "conflict"
	ErrorTypeProcess    ErrorType = "process"
	ErrorTypeIO         ErrorType = "io"
	ErrorTypeTransport  ErrorType = "transport"
	ErrorTypeInternal   ErrorType = "internal"
)

// DomainError represents a structured error with type and context
type DomainError struct {
	Type    ErrorType
	Message string
	Cause   error
	Context map[string]interface{}
}

func (e *DomainError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s: %v", e.Type, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Type, e.Message)
}

func (e *DomainError) Unwrap() error {
	return e.Cause
}

// Is checks if the error is of a specific type
func (e *DomainError) Is(target error) bool {
	if other, ok := target.(*DomainError); ok {
		return e.Type == other.Type
	}
	return false
}

// WithContext adds context information to the error
func (e *DomainError) WithContext(key string, value interface{}) *DomainError {
	if e.Context == nil {
		e.Context = make(map[string]interface{})
	}
	e.Context[key] = value
	return e
}

// NewDomainError creates a new domain error
func NewDomainError(errorType ErrorType, message string, cause error) *DomainError {
	return &DomainError{
		Type:    errorType,
		Message: message,
		Cause:   cause,
		Context: make(map[string]interface{}),
	}
}

// Report parsing errors

func NewSectionNotFoundError(message string, cause error) *DomainError {
	return NewDomainError(ErrorTypeSectionNotFound, message, cause)
}

func NewSectionOrderError(message string, cause error) *DomainError {
	return NewDomainError(ErrorTypeSectionOrder, message, cause)
}

func NewDescriptorNotFoundError(message string, cause error) *DomainError {
	return NewDomainError(ErrorTypeDescriptorNotFound, message, cause)
}

func NewProcessSectionParseError(message string, cause error) *DomainError {
	return NewDomainError(ErrorTypeProcessSectionParse, message, cause)
}

func NewManagerNotRunningError(message string, cause error) *DomainError {
	return NewDomainError(ErrorTypeManagerNotRunning, message, cause)
}

// Degradation warnings

func NewLagSectionWarning(message string, cause error) *DomainError {
	return NewDomainError(ErrorTypeLagSection, message, cause)
}

func NewMemoryLookupWarning(message string, cause error) *DomainError {
	return NewDomainError(ErrorTypeMemoryLookup, message, cause)
}

// Configuration and validation errors

func NewValidationError(message string, cause error) *DomainError {
	return NewDomainError(ErrorTypeValidation, message, cause)
}

func NewConfigError(message string, cause error) *DomainError {
	return NewDomainError(ErrorTypeConfig, message, cause)
}

func NewConflictError(message string, cause error) *DomainError {
	return NewDomainError(ErrorTypeConflict, message, cause)
}

// Collaborator errors

func NewProcessError(message string, cause error) *DomainError {
	return NewDomainError(ErrorTypeProcess, message, cause)
}

func NewIOError(message string, cause error) *DomainError {
	return NewDomainError(ErrorTypeIO, message, cause)
}

func NewTransportError(message string, cause error) *DomainError {
	return NewDomainError(ErrorTypeTransport, message, cause)
}

func NewInternalError(message string, cause error) *DomainError {
	return NewDomainError(ErrorTypeInternal, message, cause)
}

// Error checking helpers

func IsSectionNotFoundError(err error) bool {
	var domainErr *DomainError
	return errors.As(err, &domainErr) && domainErr.Type == ErrorTypeSectionNotFound
}

func IsSectionOrderError(err error) bool {
	var domainErr *DomainError
	return errors.As(err, &domainErr) && domainErr.Type == ErrorTypeSectionOrder
}

func IsDescriptorNotFoundError(err error) bool {
	var domainErr *DomainError
	return errors.As(err, &domainErr) && domainErr.Type == ErrorTypeDescriptorNotFound
}

func IsProcessSectionParseError(err error) bool {
	var domainErr *DomainError
	return errors.As(err, &domainErr) && domainErr.Type == ErrorTypeProcessSectionParse
}

func IsManagerNotRunningError(err error) bool {
	var domainErr *DomainError
	return errors.As(err, &domainErr) && domainErr.Type == ErrorTypeManagerNotRunning
}

func IsLagSectionWarning(err error) bool {
	var domainErr *DomainError
	return errors.As(err, &domainErr) && domainErr.Type == ErrorTypeLagSection
}

func IsMemoryLookupWarning(err error) bool {
	var domainErr *DomainError
	return errors.As(err, &domainErr) && domainErr.Type == ErrorTypeMemoryLookup
}

func IsValidationError(err error) bool {
	var domainErr *DomainError
	return errors.As(err, &domainErr) && domainErr.Type == ErrorTypeValidation
}

func IsConfigError(err error) bool {
	var domainErr *DomainError
	return errors.As(err, &domainErr) && domainErr.Type == ErrorTypeConfig
}

func IsConflictError(err error) bool {
	var domainErr *DomainError
	return errors.As(err, &domainErr) && domainErr.Type == ErrorTypeConflict
}

func IsProcessError(err error) bool {
	var domainErr *DomainError
	return errors.As(err, &domainErr) && domainErr.Type == ErrorTypeProcess
}

func IsIOError(err error) bool {
	var domainErr *DomainError
	return errors.As(err, &domainErr) && domainErr.Type == ErrorTypeIO
}

func IsTransportError(err error) bool {
	var domainErr *DomainError
	return errors.As(err, &domainErr) && domainErr.Type == ErrorTypeTransport
}

func IsInternalError(err error) bool {
	var domainErr *DomainError
	return errors.As(err, &domainErr) && domainErr.Type == ErrorTypeInternal
}

// IsFatal reports whether an error must abort the poll cycle before any
// metrics are transmitted. Degradation warnings and per-sink transport
// failures are survivable; everything else means a half-parsed registry,
// and silently wrong values are worse than a monitoring gap.
func IsFatal(err error) bool {
	var domainErr *DomainError
	if !errors.As(err, &domainErr) {
		return true
	}
	switch domainErr.Type {
	case ErrorTypeLagSection, ErrorTypeMemoryLookup, ErrorTypeTransport:
		return false
	}
	return true
}

// Error aggregation for non-fatal warnings collected during a cycle
type ErrorCollection struct {
	Errors []error
}

func (e *ErrorCollection) Error() string {
	if len(e.Errors) == 0 {
		return "no errors"
	}
	if len(e.Errors) == 1 {
		return e.Errors[0].Error()
	}
	return fmt.Sprintf("%d errors occurred: %v", len(e.Errors), e.Errors[0])
}

func (e *ErrorCollection) Add(err error) {
	if err != nil {
		e.Errors = append(e.Errors, err)
	}
}

func (e *ErrorCollection) HasErrors() bool {
	return len(e.Errors) > 0
}

func (e *ErrorCollection) ToError() error {
	if !e.HasErrors() {
		return nil
	}
	return e
}

// NewErrorCollection creates a new error collection
func NewErrorCollection() *ErrorCollection {
	return &ErrorCollection{
		Errors: make([]error, 0),
	}
}
