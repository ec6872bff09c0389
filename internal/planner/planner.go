package planner

import (
	"context"

	"github.com/julianstephens/weekfit/internal/logging"
	"github.com/julianstephens/weekfit/internal/models"
	"github.com/julianstephens/weekfit/internal/validation"
)

// Planner produces a weekly plan for a frozen request.
type Planner interface {
	Name() string
	Plan(ctx context.Context, req *PlanningRequest) (*models.WeeklyPlan, error)
}

// Engine runs the AI-delegated planner when one is configured and falls back
// to the rule-based planner when it fails or its output does not validate.
// Every plan it returns has been through validation and conflict resolution.
type Engine struct {
	ai    Planner
	rules Planner
	log   *logging.Logger
}

func NewEngine(ai Planner, log *logging.Logger) *Engine {
	return &Engine{ai: ai, rules: NewRulePlanner(), log: log}
}

func (e *Engine) Generate(ctx context.Context, req *PlanningRequest) (*models.WeeklyPlan, error) {
	pctx := e.planContext(req)

	if e.ai != nil {
		plan, err := e.ai.Plan(ctx, req)
		if err == nil {
			if verr := validation.ValidatePlan(plan, pctx); verr == nil {
				return e.finish(plan, req, pctx)
			} else {
				e.log.Warnw("discarding invalid ai plan", "error", verr)
			}
		} else {
			e.log.Warnw("ai planning failed, falling back to rules", "error", err)
		}
	}

	plan, err := e.rules.Plan(ctx, req)
	if err != nil {
		return nil, err
	}
	if verr := validation.ValidatePlan(plan, pctx); verr != nil {
		return nil, verr
	}
	return e.finish(plan, req, pctx)
}

// finish resolves appointment conflicts and re-checks the result. Conflict
// resolution only removes assignments, so the re-check guards against bugs
// rather than expected failures.
func (e *Engine) finish(plan *models.WeeklyPlan, req *PlanningRequest, pctx validation.PlanContext) (*models.WeeklyPlan, error) {
	resolved := validation.ResolveConflicts(plan, req.Appointments)
	if err := validation.ValidatePlan(resolved, pctx); err != nil {
		return nil, err
	}
	return resolved, nil
}

func (e *Engine) planContext(req *PlanningRequest) validation.PlanContext {
	names := make([]string, len(req.Activities))
	for i, a := range req.Activities {
		names[i] = a.Name
	}
	return validation.NewPlanContext(req.Dates(), names, req.AllowMultiplePerDay)
}
