package dto

import "learnobs/internal/modules/processing/domain"

type (
	Kind        = domain.Kind
	State       = domain.State
	Artifact    = domain.Artifact
	SessionInfo = domain.SessionInfo
	Target      = domain.Target
	Op          = domain.Op
	Job         = domain.Job
	Result      = domain.Result
	Report      = domain.Report
)

const (
	KindImage = domain.KindImage
	KindAudio = domain.KindAudio

	OpSubmit     = domain.OpSubmit
	OpRegenerate = domain.OpRegenerate

	StateIdle         = domain.StateIdle
	StateStaged       = domain.StateStaged
	StateSubmitting   = domain.StateSubmitting
	StateReported     = domain.StateReported
	StateRegenerating = domain.StateRegenerating
)

// Snapshot is a read-only view of the workflow for rendering.
type Snapshot struct {
	State    State
	InFlight bool
	Image    *Artifact
	Audio    *Artifact
	Info     SessionInfo
	Report   *Report
}
