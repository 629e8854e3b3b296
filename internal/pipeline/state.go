// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package pipeline

// State is the pipeline's position in Empty → Acquired → Submitting →
// {Succeeded | Failed}. Clear returns to Empty and Acquire to Acquired
// from any state.
type State int

const (
	StateEmpty State = iota
	StateAcquired
	StateSubmitting
	StateSucceeded
	StateFailed
)

func (s State) String() string {
	switch s {
	case StateEmpty:
		return "empty"
	case StateAcquired:
		return "acquired"
	case StateSubmitting:
		return "submitting"
	case StateSucceeded:
		return "succeeded"
	case StateFailed:
		return "failed"
	default:
		return "unknown"
	}
}
