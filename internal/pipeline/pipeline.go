// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package pipeline implements the submission pipeline: it holds one
// artifact, validates it against a profile, sends it to the service with
// the chosen options, and keeps the reconciled result.
package pipeline

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"sync"
	"sync/atomic"

	"golang.org/x/sync/semaphore"

	"github.com/pdiddy/redact-studio/internal/acquire"
	"github.com/pdiddy/redact-studio/internal/httputil"
	"github.com/pdiddy/redact-studio/pkg/types"
)

// Poster sends one request body to a service path.
type Poster interface {
	Post(ctx context.Context, path string, body io.Reader, contentType string) (*httputil.Response, error)
}

// Pipeline mediates between user input and the service for one profile.
// It holds at most one artifact and one result; every acquisition or
// submission supersedes the previous one. At most one request is in flight.
type Pipeline struct {
	profile    types.Profile
	poster     Poster
	log        *slog.Logger
	inspectPDF func([]byte) (int, error)
	busy       *semaphore.Weighted
	inFlight   atomic.Bool

	mu       sync.Mutex
	state    State
	artifact *types.Artifact
	result   *types.Result
	// gen changes on every acquisition or clear so that a response settling
	// after the artifact was replaced is dropped.
	gen uint64
}

// Option configures a Pipeline.
type Option func(*Pipeline)

// WithLogger sets the structured logger.
func WithLogger(l *slog.Logger) Option {
	return func(p *Pipeline) {
		if l != nil {
			p.log = l
		}
	}
}

// WithPDFInspector replaces the PDF page counter used on acquisition.
func WithPDFInspector(f func([]byte) (int, error)) Option {
	return func(p *Pipeline) {
		if f != nil {
			p.inspectPDF = f
		}
	}
}

// New returns an empty pipeline for profile that posts through poster.
func New(profile types.Profile, poster Poster, opts ...Option) *Pipeline {
	p := &Pipeline{
		profile:    profile,
		poster:     poster,
		log:        slog.New(slog.NewTextHandler(io.Discard, nil)),
		inspectPDF: acquire.PageCount,
		busy:       semaphore.NewWeighted(1),
	}
	for _, o := range opts {
		o(p)
	}
	p.log = p.log.With("profile", profile.Name)
	return p
}

// Profile returns the profile the pipeline was built for.
func (p *Pipeline) Profile() types.Profile { return p.profile }

// State returns the current state.
func (p *Pipeline) State() State {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.state
}

// Busy reports whether a submission is in flight. It stays true when the
// artifact is replaced mid-flight, since the request still holds the gate.
func (p *Pipeline) Busy() bool {
	return p.inFlight.Load()
}

// Artifact returns the held artifact, or nil.
func (p *Pipeline) Artifact() *types.Artifact {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.artifact
}

// Result returns the last settled result, or nil.
func (p *Pipeline) Result() *types.Result {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.result
}

// Acquire validates a against the profile's allow-list and, on success,
// replaces the held artifact and clears any prior result. On failure the
// pipeline is left exactly as it was.
func (p *Pipeline) Acquire(a *types.Artifact) error {
	if a == nil {
		return &ValidationError{Field: "artifact", Message: p.missingMessage()}
	}
	if err := p.checkMediaType(a); err != nil {
		p.log.Debug("artifact rejected", "name", a.Name, "media_type", a.MediaType)
		return err
	}
	if a.IsBinary() && len(a.Data) == 0 {
		return &ValidationError{Field: "artifact", Message: fmt.Sprintf("%s is empty", a.Name)}
	}

	held := *a
	held.Data = append([]byte(nil), a.Data...)
	if held.Kind() == types.KindPDF {
		n, err := p.inspectPDF(held.Data)
		if err != nil {
			return &ValidationError{Field: "artifact", Message: fmt.Sprintf("%s is not a readable PDF: %v", a.Name, err)}
		}
		held.Pages = n
	}

	p.mu.Lock()
	p.artifact = &held
	p.result = nil
	p.state = StateAcquired
	p.gen++
	p.mu.Unlock()

	p.log.Debug("artifact acquired", "name", held.Name, "media_type", held.MediaType, "bytes", len(held.Data), "origin", held.Origin)
	return nil
}

func (p *Pipeline) checkMediaType(a *types.Artifact) error {
	if p.profile.TextOnly() {
		if a.Kind() != types.KindText || !p.profile.Accepts(a.MediaType) {
			return &ValidationError{Field: "artifact", Message: fmt.Sprintf("%s (%s is not text)", MsgInvalidFileType, a.MediaType)}
		}
		return nil
	}
	if !p.profile.Accepts(a.MediaType) {
		return &ValidationError{
			Field:   "artifact",
			Message: fmt.Sprintf("%s (got %s, accepted: %s)", MsgInvalidFileType, a.MediaType, p.profile.AcceptList()),
		}
	}
	return nil
}

func (p *Pipeline) missingMessage() string {
	if p.profile.TextOnly() {
		return MsgNoText
	}
	return MsgNoFile
}

// Clear discards the artifact and any result. It is idempotent. A request
// still in flight is not aborted; its result is dropped when it settles.
func (p *Pipeline) Clear() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.artifact = nil
	p.result = nil
	p.state = StateEmpty
	p.gen++
}

// Submit validates the held artifact and opts, then issues exactly one
// request. It fails fast with ErrBusy while another submission is in flight
// and with a *ValidationError for local input problems; neither touches the
// network. Service failures return the failure result together with a
// *ServiceError.
func (p *Pipeline) Submit(ctx context.Context, opts types.Options) (*types.Result, error) {
	if !p.busy.TryAcquire(1) {
		return nil, ErrBusy
	}
	p.inFlight.Store(true)
	defer func() {
		p.inFlight.Store(false)
		p.busy.Release(1)
	}()

	p.mu.Lock()
	a, gen := p.artifact, p.gen
	p.mu.Unlock()

	if a.Empty() {
		return nil, &ValidationError{Field: "artifact", Message: p.missingMessage()}
	}
	prepared, err := PrepareOptions(p.profile, opts)
	if err != nil {
		return nil, err
	}
	body, contentType, err := Encode(p.profile, a, prepared)
	if err != nil {
		return nil, fmt.Errorf("encoding request: %w", err)
	}

	p.mu.Lock()
	if p.gen != gen {
		p.mu.Unlock()
		return nil, &ValidationError{Field: "artifact", Message: "artifact changed before submission"}
	}
	p.state = StateSubmitting
	p.result = nil
	p.mu.Unlock()

	p.log.Info("submitting", "name", a.Name, "endpoint", p.profile.Endpoint, "content_type", contentType)

	result, err := p.exchange(ctx, body, contentType)
	result.SourceName = a.Name

	p.mu.Lock()
	if p.gen == gen {
		p.result = result
		if result.Succeeded() {
			p.state = StateSucceeded
		} else {
			p.state = StateFailed
		}
	} else {
		p.log.Debug("dropping stale result", "name", a.Name)
	}
	p.mu.Unlock()

	if err != nil {
		p.log.Info("submission failed", "name", a.Name, "status", result.StatusCode, "message", result.Message)
	} else {
		p.log.Info("submission succeeded", "name", a.Name, "kind", result.Kind, "request_id", result.RequestID)
	}
	return result, err
}

func (p *Pipeline) exchange(ctx context.Context, body io.Reader, contentType string) (*types.Result, error) {
	resp, err := p.poster.Post(ctx, p.profile.Endpoint, body, contentType)
	if err != nil {
		r := &types.Result{Kind: types.ResultFailed, Message: httputil.GenericErrorMessage}
		return r, &ServiceError{Message: httputil.GenericErrorMessage, Err: err}
	}
	return Reconcile(p.profile, resp)
}
