// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package types defines shared data structures for the redact-studio client:
// artifacts, submission options, results, profiles, and configuration.
package types
