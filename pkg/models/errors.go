package models

import (
	"errors"
	"fmt"
)

// Messages returned to clients. These are part of the wire contract and are sent
// as JSON-encoded strings with HTTP status 200.
const (
	InvalidInputMessage    = "Invalid input"
	InvalidRequestMessage  = "Invalid request"
	ProcessingErrorMessage = "An error occurred"
)

/* InvalidInput */

// ErrInvalidInput marks a request body that is unparsable or does not have the
// expected shape.
var ErrInvalidInput = errors.New("invalid input")

/* InvalidRequestError */

// ErrInvalidRequest marks a well-formed request asking for an unsupported
// combination of parameters.
var ErrInvalidRequest = errors.New("invalid request")

type InvalidRequestError struct {
	Reason string
}

func (e *InvalidRequestError) Error() string {
	return fmt.Sprintf("invalid request: %s", e.Reason)
}

func (*InvalidRequestError) Unwrap() error {
	return ErrInvalidRequest
}

func NewInvalidRequestError(reason string) error {
	return &InvalidRequestError{Reason: reason}
}

/* ProcessingError */

// ErrProcessing marks a failure of the external program or of parsing its output.
var ErrProcessing = errors.New("processing error")

type ProcessingError struct {
	Op  string
	Err error
}

func (e *ProcessingError) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("processing error: %s", e.Op)
	}
	return fmt.Sprintf("processing error: %s: %v", e.Op, e.Err)
}

// Unwrap exposes both the sentinel and the cause to errors.Is / errors.As.
func (e *ProcessingError) Unwrap() []error {
	if e.Err == nil {
		return []error{ErrProcessing}
	}
	return []error{ErrProcessing, e.Err}
}

func NewProcessingError(op string, err error) error {
	return &ProcessingError{Op: op, Err: err}
}

// ClientMessage maps an error to the string reported to the client. Errors outside
// the taxonomy are reported as processing errors.
func ClientMessage(err error) string {
	switch {
	case errors.Is(err, ErrInvalidInput):
		return InvalidInputMessage
	case errors.Is(err, ErrInvalidRequest):
		return InvalidRequestMessage
	default:
		return ProcessingErrorMessage
	}
}
