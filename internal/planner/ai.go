package planner

import (
	"context"

	"github.com/julianstephens/weekfit/internal/llm"
	"github.com/julianstephens/weekfit/internal/logging"
	"github.com/julianstephens/weekfit/internal/models"
)

// AIPlanner delegates the scheduling decision to a text-generation
// collaborator. A malformed response earns exactly one fixed-format retry
// before the planner gives up with a PlanGenerationError.
type AIPlanner struct {
	client llm.TextCompleter
	log    *logging.Logger
}

func NewAIPlanner(client llm.TextCompleter, log *logging.Logger) *AIPlanner {
	return &AIPlanner{client: client, log: log}
}

func (p *AIPlanner) Name() string {
	return "ai"
}

func (p *AIPlanner) Plan(ctx context.Context, req *PlanningRequest) (*models.WeeklyPlan, error) {
	prompt := EncodeInstructions(req)

	raw, err := p.client.Complete(ctx, SystemInstruction, prompt)
	if err != nil {
		return nil, &PlanGenerationError{Reason: "completion request failed", Err: err}
	}

	plan, perr := parseResponse(raw, req)
	if perr == nil {
		return plan, nil
	}
	p.log.Debugw("retrying after malformed response", "error", perr)

	raw, err = p.client.Complete(ctx, SystemInstruction, prompt+"\n\n"+repromptInstructions(req, perr.Error()))
	if err != nil {
		return nil, &PlanGenerationError{Reason: "completion retry failed", Err: err}
	}

	plan, perr = parseResponse(raw, req)
	if perr != nil {
		return nil, &PlanGenerationError{Reason: "response unusable after retry", Err: perr}
	}
	return plan, nil
}
