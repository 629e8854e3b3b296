// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

import "time"

// HTTPConfig holds shared HTTP settings for requests to the service.
type HTTPConfig struct {
	// Timeout is the HTTP request timeout. Zero leaves the transport default.
	Timeout time.Duration `json:"timeout" yaml:"timeout"`

	// UserAgent is the User-Agent header sent with HTTP requests
	// (e.g. "redact-studio/0.1").
	UserAgent string `json:"user_agent" yaml:"user_agent"`
}

// ClientConfig holds settings for the service client.
type ClientConfig struct {
	HTTPConfig `yaml:",inline"`

	// BaseURL is the service root (default http://localhost:3000).
	BaseURL string `json:"base_url" yaml:"base_url"`

	// MaxResponseBytes caps how much of a response body is read (default 64 MiB).
	MaxResponseBytes int64 `json:"max_response_bytes" yaml:"max_response_bytes"`
}

// BatchConfig holds settings for running many submissions in one command.
type BatchConfig struct {
	// Concurrency bounds how many pipelines run at once (default 4).
	Concurrency int `json:"concurrency" yaml:"concurrency"`

	// OutputDir receives downloaded results.
	OutputDir string `json:"output_dir" yaml:"output_dir"`
}

// StubConfig holds settings for the local stub service.
type StubConfig struct {
	// Addr is the listen address (default "127.0.0.1:3000").
	Addr string `json:"addr" yaml:"addr"`
}
