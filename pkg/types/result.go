// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

import "encoding/json"

// ResultKind identifies what a settled submission produced.
type ResultKind string

const (
	ResultJSON   ResultKind = "json"
	ResultBinary ResultKind = "binary"
	ResultFailed ResultKind = "failed"
)

// Result is the reconciled outcome of one request/response cycle.
type Result struct {
	Kind ResultKind `json:"kind"`

	// StatusCode is the HTTP status, zero when no response arrived.
	StatusCode int `json:"status_code,omitempty"`

	// Data is the JSON body of a ResultJSON.
	Data json.RawMessage `json:"data,omitempty"`

	// Blob and ContentType hold a ResultBinary payload.
	Blob        []byte `json:"-"`
	ContentType string `json:"content_type,omitempty"`

	// Message is the human-readable failure message of a ResultFailed.
	Message string `json:"message,omitempty"`

	// SourceName is the display name of the artifact that was submitted.
	SourceName string `json:"source_name,omitempty"`

	// RequestID is the X-Request-ID sent with the request.
	RequestID string `json:"request_id,omitempty"`
}

// Succeeded reports whether the result carries a success payload.
func (r *Result) Succeeded() bool {
	return r != nil && r.Kind != ResultFailed
}
