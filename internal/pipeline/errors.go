// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package pipeline

import (
	"errors"
	"fmt"
)

// User-facing messages.
const (
	MsgNoText          = "Please enter some text to analyze"
	MsgNoFile          = "Please select a file"
	MsgInvalidFileType = "Please select a valid file type"
	MsgPasswordMissing = "Password is required"
	MsgUnparseable     = "Failed to process content"
)

var (
	// ErrBusy is returned by Submit while another submission is in flight.
	ErrBusy = errors.New("a submission is already in progress")

	// ErrNoResult is returned by Download when there is nothing to save.
	ErrNoResult = errors.New("no successful result to download")

	// ErrNoArtifact is returned by Preview when nothing has been acquired.
	ErrNoArtifact = errors.New("no artifact acquired")
)

// ValidationError is a local input problem. It is detected before any
// network call and never sent to the service.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	if e.Field == "" {
		return e.Message
	}
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// ServiceError is a failed exchange with the service: a non-2xx status, a
// transport failure, or a response that could not be understood.
type ServiceError struct {
	// StatusCode is zero for transport failures.
	StatusCode int
	Message    string
	RequestID  string
	Err        error
}

func (e *ServiceError) Error() string {
	if e.StatusCode == 0 {
		return e.Message
	}
	return fmt.Sprintf("HTTP %d: %s", e.StatusCode, e.Message)
}

func (e *ServiceError) Unwrap() error { return e.Err }
