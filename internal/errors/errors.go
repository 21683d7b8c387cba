// Package errors defines the error taxonomy the completion backend's
// request pipeline, completers, and LSP subservers raise: each variant
// names the HTTP status code an external HTTP layer would surface it as,
// without this package doing any HTTP framing itself.
package errors

import (
	"fmt"
	"time"
)

// ErrorType tags which taxonomy bucket an error falls in.
type ErrorType string

const (
	ErrorTypeMalformedRequest    ErrorType = "malformed_request"
	ErrorTypeNotFound            ErrorType = "not_found"
	ErrorTypeInternal            ErrorType = "internal"
	ErrorTypeSubserver           ErrorType = "subserver"
	ErrorTypeTransientFilesystem ErrorType = "transient_filesystem"
)

// RequestError reports a malformed SimpleRequest: missing file contents,
// an out-of-range line or column, or a JSON decode failure upstream.
// Surfaces as HTTP 400.
type RequestError struct {
	Reason     string
	Underlying error
	Timestamp  time.Time
}

// NewMalformedRequest creates a RequestError for reason.
func NewMalformedRequest(reason string) *RequestError {
	return &RequestError{Reason: reason, Timestamp: time.Now()}
}

func (e *RequestError) Error() string {
	if e.Underlying != nil {
		return fmt.Sprintf("malformed request: %s: %v", e.Reason, e.Underlying)
	}
	return fmt.Sprintf("malformed request: %s", e.Reason)
}

func (e *RequestError) Unwrap() error   { return e.Underlying }
func (e *RequestError) HTTPStatus() int { return 400 }

// NotFoundError reports an unknown route or an HMAC-authentication
// mismatch. Surfaces as HTTP 404.
type NotFoundError struct {
	Resource  string
	Timestamp time.Time
}

func NewNotFound(resource string) *NotFoundError {
	return &NotFoundError{Resource: resource, Timestamp: time.Now()}
}

func (e *NotFoundError) Error() string   { return fmt.Sprintf("not found: %s", e.Resource) }
func (e *NotFoundError) HTTPStatus() int { return 404 }

// InternalError reports an unexpected failure in the ranking or subserver
// pipelines. Surfaces as HTTP 500.
type InternalError struct {
	Operation  string
	Underlying error
	Timestamp  time.Time
}

func NewInternalError(operation string, err error) *InternalError {
	return &InternalError{Operation: operation, Underlying: err, Timestamp: time.Now()}
}

func (e *InternalError) Error() string {
	return fmt.Sprintf("internal error during %s: %v", e.Operation, e.Underlying)
}

func (e *InternalError) Unwrap() error   { return e.Underlying }
func (e *InternalError) HTTPStatus() int { return 500 }

// SubserverError describes an error object an LSP call returned: the
// method called plus the JSON-RPC error code and message.
type SubserverError struct {
	Method    string
	Code      int
	Message   string
	Timestamp time.Time
}

func NewSubserverError(method string, code int, message string) *SubserverError {
	return &SubserverError{Method: method, Code: code, Message: message, Timestamp: time.Now()}
}

func (e *SubserverError) Error() string {
	return fmt.Sprintf("subserver error calling %s: %d %s", e.Method, e.Code, e.Message)
}

// TransientFilesystemError marks a directory read or file-type probe
// failure. Callers degrade to an empty candidate list instead of failing
// the request — this type exists so that degradation decision is explicit
// rather than inferred from a bare *os.PathError.
type TransientFilesystemError struct {
	Path       string
	Underlying error
	Timestamp  time.Time
}

func NewTransientFilesystem(path string, err error) *TransientFilesystemError {
	return &TransientFilesystemError{Path: path, Underlying: err, Timestamp: time.Now()}
}

func (e *TransientFilesystemError) Error() string {
	return fmt.Sprintf("transient filesystem error for %s: %v", e.Path, e.Underlying)
}

func (e *TransientFilesystemError) Unwrap() error { return e.Underlying }

// MultiError aggregates independent failures, e.g. one per completer in a
// dispatch fan-out, without letting one completer's failure hide another's.
type MultiError struct {
	Errors []error
}

// NewMultiError filters out nil entries and wraps the rest.
func NewMultiError(errs []error) *MultiError {
	filtered := make([]error, 0, len(errs))
	for _, err := range errs {
		if err != nil {
			filtered = append(filtered, err)
		}
	}
	return &MultiError{Errors: filtered}
}

func (e *MultiError) Error() string {
	if len(e.Errors) == 0 {
		return "no errors"
	}
	if len(e.Errors) == 1 {
		return e.Errors[0].Error()
	}
	return fmt.Sprintf("%d errors: %v", len(e.Errors), e.Errors)
}

func (e *MultiError) Unwrap() []error { return e.Errors }
