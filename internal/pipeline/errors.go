package pipeline

import "fmt"

// Pipeline stage names, used in error tagging and metrics dimensions.
const (
	StageFetch      = "fetch"
	StageTranscribe = "transcribe"
	StageSummarize  = "summarize"
)

// StageError tags a pipeline failure with the stage that produced it.
// Callers that only need a user-facing outcome can treat any StageError as
// "processing failed"; metrics and logs use the stage for attribution.
type StageError struct {
	Stage string
	Err   error
}

func (e *StageError) Error() string {
	return fmt.Sprintf("%s stage: %v", e.Stage, e.Err)
}

func (e *StageError) Unwrap() error {
	return e.Err
}

func stageErr(stage string, err error) error {
	return &StageError{Stage: stage, Err: err}
}
