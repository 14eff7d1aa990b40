package deploy

import (
	"time"

	"github.com/google/uuid"
)

// Record is one deployment journal entry.
type Record struct {
	// RunID identifies the deployment run the entry belongs to.
	RunID uuid.UUID
	// Timestamp is when the deployment completed.
	Timestamp time.Time
	// Commit is the deployed commit identifier.
	Commit string
	// Services lists the units touched by the run, in restart order.
	Services []string
}

// Report is the outcome of a deployment run, returned to callers so they
// can assert on what happened instead of parsing logs.
type Report struct {
	// RunID identifies this deployment run.
	RunID uuid.UUID
	// PreviousCommit is the marker value before the run, empty on first deploy.
	PreviousCommit string
	// Commit is the commit the run deployed (and persisted to the marker).
	Commit string
	// Services lists the units restarted and verified, in order.
	Services []string
	// ShortCircuit is set when no new commit was found and the run was a no-op.
	ShortCircuit bool
	// InstallRan is set when the dependency installer was invoked.
	InstallRan bool
	// StartedAt is when the run began.
	StartedAt time.Time
	// FinishedAt is when the run completed successfully.
	FinishedAt time.Time
}
