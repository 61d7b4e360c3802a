// Package errors provides the structured error type returned by the balance engine.
// Every error names the chain and module it came from.
//
//nolint:revive // Package name intentionally shadows stdlib
package errors

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

// Error codes.
const (
	CodeInvalidArgument       = "INVALID_ARGUMENT"
	CodeCapabilityUnavailable = "CAPABILITY_UNAVAILABLE"
	CodeRuntimeIncompatible   = "RUNTIME_INCOMPATIBLE"
	CodePartialSourceFailure  = "PARTIAL_SOURCE_FAILURE"
	CodeAggregateFailure      = "AGGREGATE_FAILURE"
	CodeInvariantViolation    = "INVARIANT_VIOLATION"
	CodeChainNotFound         = "CHAIN_NOT_FOUND"
	CodeUnsupportedOperation  = "UNSUPPORTED_OPERATION"
	CodeNotConnected          = "NOT_CONNECTED"
	CodeQueryFailed           = "QUERY_FAILED"
	CodeGeneral               = "GENERAL_ERROR"
)

// Error is the structured error type.
type Error struct {
	Code    string            // Machine-readable error code
	Message string            // Human-readable message
	Chain   string            // Chain the failure belongs to, if any
	Module  string            // Runtime module the failure belongs to, if any
	Details map[string]string // Additional context
	Cause   error             // Underlying error
}

func (e *Error) Error() string {
	var b strings.Builder

	if e.Chain != "" || e.Module != "" {
		b.WriteString("[")
		b.WriteString(e.Chain)
		if e.Module != "" {
			if e.Chain != "" {
				b.WriteString("/")
			}
			b.WriteString(e.Module)
		}
		b.WriteString("] ")
	}
	b.WriteString(e.Message)

	// sorted for deterministic output
	if len(e.Details) > 0 {
		keys := make([]string, 0, len(e.Details))
		for k := range e.Details {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		for _, k := range keys {
			fmt.Fprintf(&b, " (%s: %s)", k, e.Details[k])
		}
	}

	if e.Cause != nil {
		fmt.Fprintf(&b, ": %v", e.Cause)
	}
	return b.String()
}

func (e *Error) Unwrap() error {
	return e.Cause
}

// Is implements errors.Is for Error. Two errors match when their codes match.
func (e *Error) Is(target error) bool {
	var t *Error
	if errors.As(target, &t) {
		return e.Code == t.Code
	}
	return false
}

// Sentinel errors. Use New or Wrap to attach chain and module.
var (
	ErrInvalidArgument = &Error{
		Code:    CodeInvalidArgument,
		Message: "invalid argument",
	}

	ErrCapabilityUnavailable = &Error{
		Code:    CodeCapabilityUnavailable,
		Message: "module is not part of the chain runtime",
	}

	ErrRuntimeIncompatible = &Error{
		Code:    CodeRuntimeIncompatible,
		Message: "storage item is not compatible with the current runtime",
	}

	// ErrPartialSourceFailure is never returned to callers. It tags debug logs
	// for a redundant source that failed while another one survived.
	ErrPartialSourceFailure = &Error{
		Code:    CodePartialSourceFailure,
		Message: "redundant source failed",
	}

	ErrAggregateFailure = &Error{
		Code:    CodeAggregateFailure,
		Message: "all sources failed",
	}

	ErrInvariantViolation = &Error{
		Code:    CodeInvariantViolation,
		Message: "balance invariant violated",
	}

	ErrChainNotFound = &Error{
		Code:    CodeChainNotFound,
		Message: "chain not found",
	}

	ErrUnsupportedOperation = &Error{
		Code:    CodeUnsupportedOperation,
		Message: "operation not supported by chain",
	}

	ErrNotConnected = &Error{
		Code:    CodeNotConnected,
		Message: "network connector is not connected",
	}

	ErrQueryFailed = &Error{
		Code:    CodeQueryFailed,
		Message: "storage query failed",
	}
)

// New creates an error of the sentinel's kind for the given chain and module.
// An empty message keeps the sentinel's message.
func New(kind *Error, chain, module, message string) *Error {
	if message == "" {
		message = kind.Message
	}
	return &Error{
		Code:    kind.Code,
		Message: message,
		Chain:   chain,
		Module:  module,
	}
}

// Newf is New with a formatted message.
func Newf(kind *Error, chain, module, format string, args ...any) *Error {
	return New(kind, chain, module, fmt.Sprintf(format, args...))
}

// Wrap wraps cause as an error of the sentinel's kind.
func Wrap(kind *Error, chain, module string, cause error, message string) error {
	if cause == nil {
		return nil
	}
	e := New(kind, chain, module, message)
	e.Cause = cause
	return e
}

// WithDetails adds details to an error. Non-structured errors are wrapped as GENERAL_ERROR.
func WithDetails(err error, details map[string]string) error {
	if err == nil {
		return nil
	}

	var e *Error
	if errors.As(err, &e) {
		merged := make(map[string]string, len(e.Details)+len(details))
		for k, v := range e.Details {
			merged[k] = v
		}
		for k, v := range details {
			merged[k] = v
		}
		return &Error{
			Code:    e.Code,
			Message: e.Message,
			Chain:   e.Chain,
			Module:  e.Module,
			Details: merged,
			Cause:   e.Cause,
		}
	}

	return &Error{
		Code:    CodeGeneral,
		Message: err.Error(),
		Details: details,
		Cause:   err,
	}
}

// Code returns the error code of err, or GENERAL_ERROR for non-structured errors.
func Code(err error) string {
	var e *Error
	if errors.As(err, &e) {
		return e.Code
	}
	return CodeGeneral
}

// Is wraps errors.Is.
func Is(err, target error) bool {
	return errors.Is(err, target)
}

// As wraps errors.As.
func As(err error, target any) bool {
	return errors.As(err, target)
}
