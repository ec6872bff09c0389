package planner

import (
	"context"
	"errors"
	"testing"

	"github.com/julianstephens/weekfit/internal/logging"
)

type fakeCompleter struct {
	responses []string
	err       error
	calls     int
}

func (f *fakeCompleter) Complete(_ context.Context, _, _ string) (string, error) {
	if f.err != nil {
		return "", f.err
	}
	if f.calls >= len(f.responses) {
		return "", errors.New("no more responses")
	}
	resp := f.responses[f.calls]
	f.calls++
	return resp, nil
}

func TestAIPlanner_ValidFirstTry(t *testing.T) {
	req := testRequest(t, nil)
	completer := &fakeCompleter{responses: []string{validResponse(req)}}
	p := NewAIPlanner(completer, logging.Nop())

	plan, err := p.Plan(context.Background(), req)
	if err != nil {
		t.Fatalf("Plan() error = %v", err)
	}
	if completer.calls != 1 {
		t.Errorf("completer called %d times, want 1", completer.calls)
	}
	if len(plan.Days) != 7 {
		t.Errorf("plan has %d days, want 7", len(plan.Days))
	}
}

func TestAIPlanner_RecoversWithOneRetry(t *testing.T) {
	req := testRequest(t, nil)
	completer := &fakeCompleter{responses: []string{"not json at all", validResponse(req)}}
	p := NewAIPlanner(completer, logging.Nop())

	plan, err := p.Plan(context.Background(), req)
	if err != nil {
		t.Fatalf("Plan() error = %v, want recovery on retry", err)
	}
	if completer.calls != 2 {
		t.Errorf("completer called %d times, want 2", completer.calls)
	}
	if plan == nil {
		t.Fatal("expected a plan after retry")
	}
}

func TestAIPlanner_GivesUpAfterRetry(t *testing.T) {
	req := testRequest(t, nil)
	completer := &fakeCompleter{responses: []string{"garbage", "still garbage"}}
	p := NewAIPlanner(completer, logging.Nop())

	_, err := p.Plan(context.Background(), req)

	var genErr *PlanGenerationError
	if !errors.As(err, &genErr) {
		t.Fatalf("Plan() error = %v, want PlanGenerationError", err)
	}
	if completer.calls != 2 {
		t.Errorf("completer called %d times, want exactly 2 (one retry)", completer.calls)
	}
}

func TestAIPlanner_CompletionFailure(t *testing.T) {
	req := testRequest(t, nil)
	completer := &fakeCompleter{err: errors.New("network down")}
	p := NewAIPlanner(completer, logging.Nop())

	_, err := p.Plan(context.Background(), req)

	var genErr *PlanGenerationError
	if !errors.As(err, &genErr) {
		t.Fatalf("Plan() error = %v, want PlanGenerationError", err)
	}
}
