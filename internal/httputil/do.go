// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package httputil provides HTTP helpers shared by the service client and
// the submission pipeline.
package httputil

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/google/uuid"
	"github.com/tidwall/gjson"
)

// HeaderRequestID carries a per-request identifier to the service.
const HeaderRequestID = "X-Request-ID"

// DefaultMaxBody is the response size cap used when none is configured.
const DefaultMaxBody int64 = 64 << 20

// GenericErrorMessage is shown when a failed response carries no usable message.
const GenericErrorMessage = "An error occurred while communicating with the server"

// Response is a fully read HTTP response.
type Response struct {
	StatusCode  int
	ContentType string
	Body        []byte
	RequestID   string
}

// OK reports whether the status is 2xx.
func (r *Response) OK() bool {
	return r.StatusCode >= 200 && r.StatusCode < 300
}

// Do executes req exactly once, attaching a fresh request id, and reads at
// most maxBody bytes of the response. There is no retry: a failed attempt is
// reported to the caller as-is. A body larger than maxBody is an error.
func Do(ctx context.Context, client *http.Client, req *http.Request, maxBody int64) (*Response, error) {
	if maxBody <= 0 {
		maxBody = DefaultMaxBody
	}
	id := req.Header.Get(HeaderRequestID)
	if id == "" {
		id = uuid.New().String()
	}
	req = req.Clone(ctx)
	req.Header.Set(HeaderRequestID, id)

	resp, err := client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBody+1))
	if err != nil {
		return nil, fmt.Errorf("reading response body: %w", err)
	}
	if int64(len(body)) > maxBody {
		return nil, fmt.Errorf("response body exceeds %d bytes", maxBody)
	}

	return &Response{
		StatusCode:  resp.StatusCode,
		ContentType: resp.Header.Get("Content-Type"),
		Body:        body,
		RequestID:   id,
	}, nil
}

// ErrorMessage extracts a human-readable message from a failed response
// body. It reads the "error" field, then "message", of a JSON object. Binary
// bodies are treated as text first, so a JSON error delivered with a blob
// content type is still found. Anything else yields fallback.
func ErrorMessage(body []byte, fallback string) string {
	if fallback == "" {
		fallback = GenericErrorMessage
	}
	if !gjson.ValidBytes(body) {
		return fallback
	}
	parsed := gjson.ParseBytes(body)
	if !parsed.IsObject() {
		return fallback
	}
	for _, key := range []string{"error", "message"} {
		v := parsed.Get(key)
		if !v.Exists() {
			continue
		}
		// Some services nest {"error": {"message": "..."}}.
		if v.IsObject() {
			if m := v.Get("message"); m.Exists() && strings.TrimSpace(m.String()) != "" {
				return m.String()
			}
			continue
		}
		if msg := strings.TrimSpace(v.String()); msg != "" {
			return v.String()
		}
	}
	return fallback
}
