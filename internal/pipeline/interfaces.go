package pipeline

import "context"

// Availability reports whether a model backend can currently serve sessions.
// Callers probe this before paying for session creation; anything other than
// AvailabilityReady forces the regex extractor for the whole run.
type Availability int

const (
	AvailabilityUnknown Availability = iota
	AvailabilityNotReady
	AvailabilityReady
)

// Session wraps one generative-model conversation. A single session is
// created per pipeline run and reused for every line, then released.
type Session interface {
	// Prompt sends one message on the conversation and returns the raw
	// model response text.
	Prompt(ctx context.Context, message string) (string, error)

	// Close releases the session. Safe to call exactly once per session.
	Close() error
}

// SessionFactory creates model sessions. Implementations exist for the
// Gemini backend and for test doubles; the orchestrator depends only on
// this interface.
type SessionFactory interface {
	Availability(ctx context.Context) Availability
	NewSession(ctx context.Context) (Session, error)
}
