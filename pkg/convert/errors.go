package convert

import (
	"errors"
	"fmt"
)

// ErrEmptyInput is the local validation failure for a blank description.
// It never reaches the network.
var ErrEmptyInput = errors.New("empty process description")

// ErrMalformedResponse is returned when a success response carries no markup.
var ErrMalformedResponse = errors.New("conversion response has no bpmn markup")

// ServiceError is a non-success status reported by the conversion service.
type ServiceError struct {
	Status  int
	Message string // Server supplied message, may be empty
}

func (e *ServiceError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("conversion service returned %d", e.Status)
	}
	return fmt.Sprintf("conversion service returned %d: %s", e.Status, e.Message)
}

// TransportError covers network, timeout and decode failures of the call.
type TransportError struct {
	Err error
}

func (e *TransportError) Error() string { return "conversion request failed: " + e.Err.Error() }

func (e *TransportError) Unwrap() error { return e.Err }

// RenderError is a viewer rejection of the returned markup.
type RenderError struct {
	Err error
}

func (e *RenderError) Error() string { return "diagram import failed: " + e.Err.Error() }

func (e *RenderError) Unwrap() error { return e.Err }

// Reason is the viewer's own user-facing explanation. Errors that do not
// carry one (cancellation, I/O) report an empty reason.
func (e *RenderError) Reason() string {
	var r interface{ Reason() string }
	if e.Err != nil && errors.As(e.Err, &r) {
		return r.Reason()
	}
	return ""
}

// UserMessage reduces any failure of the conversion flow to the single line
// shown in the error region.
func UserMessage(err error) string {
	if err == nil {
		return ""
	}
	if errors.Is(err, ErrEmptyInput) {
		return MsgEmptyInput
	}

	var svcErr *ServiceError
	if errors.As(err, &svcErr) {
		if svcErr.Message != "" {
			return svcErr.Message
		}
		return MsgConversionFailed
	}

	var renderErr *RenderError
	if errors.As(err, &renderErr) {
		if reason := renderErr.Reason(); reason != "" {
			return reason
		}
		return MsgRenderFailed
	}

	return MsgConversionFailed
}
