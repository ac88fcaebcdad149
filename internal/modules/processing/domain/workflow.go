package domain

import (
	"fmt"
	"strings"

	apperrors "learnobs/internal/platform/errors"
)

type State int

const (
	StateIdle State = iota
	StateStaged
	// StateValidating is entered and left inside BeginSubmit.
	StateValidating
	StateSubmitting
	StateReported
	StateRegenerating
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateStaged:
		return "staged"
	case StateValidating:
		return "validating"
	case StateSubmitting:
		return "submitting"
	case StateReported:
		return "reported"
	case StateRegenerating:
		return "regenerating"
	default:
		return fmt.Sprintf("state(%d)", int(s))
	}
}

type Op int

const (
	OpSubmit Op = iota + 1
	OpRegenerate
)

// Target says on whose behalf a job runs.
type Target struct {
	ObserverID string
	Admin      bool
}

// Job is a snapshot of everything a single network call needs. Seq ties
// the result back to the workflow that issued it.
type Job struct {
	Seq        uint64
	Op         Op
	Kind       Kind
	Artifact   Artifact
	Info       SessionInfo
	Transcript string
	Target     Target
}

// Result is what the service produced for a job.
type Result struct {
	Report     string
	Transcript string
}

// Report is the current generated report.
type Report struct {
	Text       string
	Transcript string
	Source     Kind
	Info       SessionInfo
}

const incompleteRegeneration = "Please ensure transcript and session info are complete"

// Workflow is the upload/processing state machine. It is not safe for
// concurrent use; the owner serializes all calls.
type Workflow struct {
	state    State
	resume   State
	image    *Artifact
	audio    *Artifact
	info     SessionInfo
	report   *Report
	inFlight bool
	seq      uint64
	onBehalf Target
}

func NewWorkflow() *Workflow {
	return &Workflow{state: StateIdle}
}

func (w *Workflow) State() State { return w.state }

func (w *Workflow) InFlight() bool { return w.inFlight }

func (w *Workflow) Info() SessionInfo { return w.info }

func (w *Workflow) Target() Target { return w.onBehalf }

func (w *Workflow) SetTarget(t Target) { w.onBehalf = t }

func (w *Workflow) Staged(kind Kind) (Artifact, bool) {
	var slot *Artifact
	switch kind {
	case KindImage:
		slot = w.image
	case KindAudio:
		slot = w.audio
	}
	if slot == nil {
		return Artifact{}, false
	}
	return *slot, true
}

func (w *Workflow) Report() (Report, bool) {
	if w.report == nil {
		return Report{}, false
	}
	return *w.report, true
}

// Stage replaces the staged artifact of the same kind. A rejected artifact
// changes nothing.
func (w *Workflow) Stage(a Artifact) error {
	if w.inFlight {
		return apperrors.ErrSubmissionInFlight
	}
	if err := a.Check(); err != nil {
		return err
	}
	staged := a
	switch a.Kind {
	case KindImage:
		w.image = &staged
	case KindAudio:
		w.audio = &staged
	}
	w.state = StateStaged
	return nil
}

// Unstage drops the artifact of kind, if any.
func (w *Workflow) Unstage(kind Kind) {
	if w.inFlight {
		return
	}
	switch kind {
	case KindImage:
		w.image = nil
	case KindAudio:
		w.audio = nil
	}
	if w.state == StateStaged && w.image == nil && w.audio == nil {
		w.state = StateIdle
	}
}

func (w *Workflow) SetSessionInfo(info SessionInfo) {
	w.info = info
}

// BeginSubmit validates synchronously and moves to Submitting. On any
// error the state is left as it was and no job is issued.
func (w *Workflow) BeginSubmit(kind Kind) (Job, error) {
	if w.inFlight {
		return Job{}, apperrors.ErrSubmissionInFlight
	}
	if _, err := kind.Policy(); err != nil {
		return Job{}, err
	}
	artifact, ok := w.Staged(kind)
	if !ok {
		return Job{}, &apperrors.Error{Kind: apperrors.KindValidation, Message: kind.MissingMessage(), Err: apperrors.ErrNothingStaged}
	}

	prev := w.state
	w.state = StateValidating
	if err := w.info.Validate(); err != nil {
		w.state = prev
		return Job{}, err
	}

	w.resume = prev
	w.state = StateSubmitting
	w.inFlight = true
	w.seq++
	return Job{Seq: w.seq, Op: OpSubmit, Kind: kind, Artifact: artifact, Info: w.info, Target: w.onBehalf}, nil
}

// CompleteSubmit overwrites the current report. Audio results also carry
// the editable transcript.
func (w *Workflow) CompleteSubmit(job Job, res Result) error {
	if err := w.accept(job, OpSubmit); err != nil {
		return err
	}
	report := Report{Text: res.Report, Source: job.Kind, Info: job.Info}
	if job.Kind == KindAudio {
		report.Transcript = res.Transcript
	}
	w.report = &report
	w.state = StateReported
	w.inFlight = false
	return nil
}

// FailSubmit returns to the state before submission with the artifact kept.
func (w *Workflow) FailSubmit(job Job) error {
	if err := w.accept(job, OpSubmit); err != nil {
		return err
	}
	w.state = w.resume
	w.inFlight = false
	return nil
}

func (w *Workflow) BeginRegenerate(transcript string) (Job, error) {
	if w.inFlight {
		return Job{}, apperrors.ErrSubmissionInFlight
	}
	if w.state != StateReported || w.report == nil || w.report.Source != KindAudio {
		return Job{}, apperrors.ErrNotReported
	}
	if strings.TrimSpace(transcript) == "" || !w.info.Complete() {
		return Job{}, apperrors.Validation(incompleteRegeneration)
	}
	w.state = StateRegenerating
	w.inFlight = true
	w.seq++
	return Job{Seq: w.seq, Op: OpRegenerate, Kind: KindAudio, Info: w.info, Transcript: transcript, Target: w.onBehalf}, nil
}

func (w *Workflow) CompleteRegenerate(job Job, res Result) error {
	if err := w.accept(job, OpRegenerate); err != nil {
		return err
	}
	w.report = &Report{Text: res.Report, Transcript: job.Transcript, Source: KindAudio, Info: job.Info}
	w.state = StateReported
	w.inFlight = false
	return nil
}

// FailRegenerate keeps the prior report.
func (w *Workflow) FailRegenerate(job Job) error {
	if err := w.accept(job, OpRegenerate); err != nil {
		return err
	}
	w.state = StateReported
	w.inFlight = false
	return nil
}

// Reset forgets everything. Results of jobs issued before the reset are
// rejected as stale.
func (w *Workflow) Reset() {
	seq := w.seq
	*w = Workflow{state: StateIdle, seq: seq + 1}
}

func (w *Workflow) accept(job Job, op Op) error {
	if !w.inFlight || job.Seq != w.seq || job.Op != op {
		return apperrors.ErrStaleResult
	}
	return nil
}
