package triage

import "fmt"

// State of a report in the triage pipeline
type State string

const (
	StateCreated          State = "created"
	StateClassifying      State = "classifying"
	StateRecommending     State = "recommending"
	StateLocatingFacility State = "locating_facility"
	StateEstimatingRoute  State = "estimating_route"
	StateCompleted        State = "completed"
	StateFailed           State = "failed"
)

// StageError is returned when a pipeline stage fails. The pipeline is
// then in StateFailed and nothing done by earlier stages is undone.
type StageError struct {
	State State
	Stage State
	Err   error
}

func (e *StageError) Error() string {
	return fmt.Sprintf("triage %s: %s", e.Stage, e.Err)
}

func (e *StageError) Unwrap() error {
	return e.Err
}

func failed(stage State, err error) *StageError {
	return &StageError{State: StateFailed, Stage: stage, Err: err}
}
