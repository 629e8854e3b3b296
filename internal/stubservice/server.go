// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package stubservice is a stand-in for the remote analysis/redaction
// service. It speaks the same endpoints with trivial behavior: analysis is
// regex counting and redaction echoes the upload back.
package stubservice

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"github.com/pdiddy/redact-studio/pkg/types"
)

// DefaultAddr is where the stub listens when no address is configured.
const DefaultAddr = "127.0.0.1:3000"

// HealthMessage is the body of GET /health.
const HealthMessage = "redact-studio stub service is up"

const bodyLimit = "64M"

// Server is the stub service.
type Server struct {
	e   *echo.Echo
	log *slog.Logger
}

// New builds a Server with all routes registered.
func New(logger *slog.Logger) *Server {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.HTTPErrorHandler = errorHandler

	s := &Server{e: e, log: logger}

	e.Use(middleware.Recover())
	e.Use(middleware.RequestID())
	e.Use(middleware.BodyLimit(bodyLimit))
	e.Use(s.logRequests)

	e.GET("/health", s.handleHealth)
	e.GET("/supportedentities", s.handleSupportedEntities)
	e.GET("/recognizers", s.handleRecognizers)
	e.POST("/analyze", s.handleAnalyze)
	e.POST("/redact", s.handleRedactImage)
	e.POST("/redact-image", s.handleRedactForm)
	e.POST("/redact-pdf", s.handleRedactForm)
	e.POST("/encrypt-pdf", s.handleEncryptPDF)
	return s
}

// Handler exposes the routes for httptest servers.
func (s *Server) Handler() http.Handler { return s.e }

// Start listens on cfg.Addr until ctx is cancelled, then shuts down
// gracefully.
func (s *Server) Start(ctx context.Context, cfg types.StubConfig) error {
	addr := cfg.Addr
	if addr == "" {
		addr = DefaultAddr
	}
	errCh := make(chan error, 1)
	go func() {
		errCh <- s.e.Start(addr)
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("stub service: %w", err)
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := s.e.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("shutting down stub service: %w", err)
		}
		return nil
	}
}

func (s *Server) logRequests(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		start := time.Now()
		err := next(c)
		s.log.Info("request",
			"method", c.Request().Method,
			"path", c.Request().URL.Path,
			"status", c.Response().Status,
			"request_id", c.Response().Header().Get(echo.HeaderXRequestID),
			"duration", time.Since(start),
		)
		return err
	}
}

// apiError is the JSON error body: {"error": "..."}.
type apiError struct {
	Status  int    `json:"-"`
	Message string `json:"error"`
}

func (e *apiError) Error() string { return e.Message }

func badRequest(format string, args ...any) *apiError {
	return &apiError{Status: http.StatusBadRequest, Message: fmt.Sprintf(format, args...)}
}

func errorHandler(err error, c echo.Context) {
	if c.Response().Committed {
		return
	}
	var ae *apiError
	var he *echo.HTTPError
	switch {
	case errors.As(err, &ae):
	case errors.As(err, &he):
		ae = &apiError{Status: he.Code, Message: fmt.Sprint(he.Message)}
	default:
		ae = &apiError{Status: http.StatusInternalServerError, Message: err.Error()}
	}
	_ = c.JSON(ae.Status, ae)
}

func checkLanguage(lang string) error {
	if lang == "" {
		return nil
	}
	if !types.Language(lang).Valid() {
		return badRequest("invalid language")
	}
	return nil
}
