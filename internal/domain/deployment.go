package domain

import "fmt"

// DeploymentStage identifies the step of a deployment run
type DeploymentStage string

const (
	StageLookup  DeploymentStage = "lookup"
	StageSubmit  DeploymentStage = "submit"
	StageConfirm DeploymentStage = "confirm"
)

// Description returns the human readable activity of the stage
func (s DeploymentStage) Description() string {
	switch s {
	case StageLookup:
		return "looking up contract factory"
	case StageSubmit:
		return "submitting deployment"
	case StageConfirm:
		return "waiting for confirmation"
	default:
		return string(s)
	}
}

// DeploymentError is the single failure kind of a deployment run. It records
// where the run stopped and wraps whatever the toolkit returned.
type DeploymentError struct {
	Stage    DeploymentStage
	Contract string
	Err      error
}

func (e *DeploymentError) Error() string {
	return fmt.Sprintf("deployment of %s failed while %s: %v", e.Contract, e.Stage.Description(), e.Err)
}

func (e *DeploymentError) Unwrap() error {
	return e.Err
}
