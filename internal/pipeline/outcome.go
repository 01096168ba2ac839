package pipeline

import "steamsync/internal/store"

// OutcomeKind classifies how one appid resolved within a run.
type OutcomeKind int

const (
	// OutcomeWritten means the entry was normalized and persisted.
	OutcomeWritten OutcomeKind = iota
	// OutcomePermanent means the id was quarantined and will not be retried.
	OutcomePermanent
	// OutcomeTransient means a transport failure left the id eligible for
	// the next run.
	OutcomeTransient
)

// Outcome is the per-id result the driver branches on. Failures travel as
// values, not errors, so one bad id never disturbs its siblings.
type Outcome struct {
	Kind   OutcomeKind
	AppID  int64
	App    *store.App
	Reason string
}

// Written wraps a persisted entry.
func Written(app *store.App) Outcome {
	return Outcome{Kind: OutcomeWritten, AppID: app.AppID, App: app}
}

// PermanentFailure marks an id as unrecoverable.
func PermanentFailure(appID int64, reason string) Outcome {
	return Outcome{Kind: OutcomePermanent, AppID: appID, Reason: reason}
}

// TransientFailure marks an id as retryable next run.
func TransientFailure(appID int64, reason string) Outcome {
	return Outcome{Kind: OutcomeTransient, AppID: appID, Reason: reason}
}

// Fault is a permanent, non-retryable problem with one payload.
type Fault struct {
	AppID  int64
	Reason string
}
