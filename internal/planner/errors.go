package planner

import "fmt"

// IncompleteInputError reports that the caller did not supply enough data to
// assemble a planning request.
type IncompleteInputError struct {
	Reason string
}

func (e *IncompleteInputError) Error() string {
	return fmt.Sprintf("incomplete planning input: %s", e.Reason)
}

// PlanGenerationError reports that the AI-delegated path failed. It is
// recoverable: the caller falls back to the rule-based planner.
type PlanGenerationError struct {
	Reason string
	Err    error
}

func (e *PlanGenerationError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("plan generation failed: %s: %v", e.Reason, e.Err)
	}
	return fmt.Sprintf("plan generation failed: %s", e.Reason)
}

func (e *PlanGenerationError) Unwrap() error {
	return e.Err
}
