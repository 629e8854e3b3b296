// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package pipeline

import (
	"encoding/json"
	"mime"
	"strings"

	"github.com/pdiddy/redact-studio/internal/httputil"
	"github.com/pdiddy/redact-studio/pkg/types"
)

// Reconcile converts a settled response into a Result. Non-2xx statuses
// become failures carrying the service's "error" message when the body has
// one, whatever its content type. A 2xx JSON body becomes a JSON result; any
// other 2xx body is an opaque binary payload, except for JSON-only profiles
// where it is a failure.
func Reconcile(p types.Profile, resp *httputil.Response) (*types.Result, error) {
	r := &types.Result{
		StatusCode: resp.StatusCode,
		RequestID:  resp.RequestID,
	}

	if !resp.OK() {
		r.Kind = types.ResultFailed
		r.Message = httputil.ErrorMessage(resp.Body, "")
		return r, &ServiceError{StatusCode: resp.StatusCode, Message: r.Message, RequestID: resp.RequestID}
	}

	if isJSON(resp.ContentType) || (p.Body == types.BodyJSON && resp.ContentType == "") {
		if !json.Valid(resp.Body) {
			r.Kind = types.ResultFailed
			r.Message = MsgUnparseable
			return r, &ServiceError{StatusCode: resp.StatusCode, Message: r.Message, RequestID: resp.RequestID}
		}
		r.Kind = types.ResultJSON
		r.Data = json.RawMessage(resp.Body)
		return r, nil
	}

	if p.Body == types.BodyJSON {
		r.Kind = types.ResultFailed
		r.Message = MsgUnparseable
		return r, &ServiceError{StatusCode: resp.StatusCode, Message: r.Message, RequestID: resp.RequestID}
	}

	r.Kind = types.ResultBinary
	r.Blob = resp.Body
	r.ContentType = resp.ContentType
	return r, nil
}

func isJSON(contentType string) bool {
	mt, _, err := mime.ParseMediaType(contentType)
	if err != nil {
		return false
	}
	return mt == "application/json" || strings.HasSuffix(mt, "+json")
}
