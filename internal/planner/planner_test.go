package planner

import (
	"context"
	"testing"

	"github.com/julianstephens/weekfit/internal/logging"
	"github.com/julianstephens/weekfit/internal/models"
)

func TestEngine_UsesAIPlanWhenValid(t *testing.T) {
	req := testRequest(t, nil)
	completer := &fakeCompleter{responses: []string{validResponse(req)}}
	engine := NewEngine(NewAIPlanner(completer, logging.Nop()), logging.Nop())

	plan, err := engine.Generate(context.Background(), req)
	if err != nil {
		t.Fatalf("Generate() error = %v", err)
	}
	if plan.GeneratedBy != "ai" {
		t.Errorf("GeneratedBy = %q, want ai", plan.GeneratedBy)
	}
}

func TestEngine_FallsBackToRules(t *testing.T) {
	req := testRequest(t, nil)
	completer := &fakeCompleter{responses: []string{"garbage", "more garbage"}}
	engine := NewEngine(NewAIPlanner(completer, logging.Nop()), logging.Nop())

	plan, err := engine.Generate(context.Background(), req)
	if err != nil {
		t.Fatalf("Generate() error = %v, want fallback to rules", err)
	}
	if plan.GeneratedBy != "rules" {
		t.Errorf("GeneratedBy = %q, want rules after fallback", plan.GeneratedBy)
	}
	if len(plan.Days) != 7 {
		t.Errorf("fallback plan has %d days, want 7", len(plan.Days))
	}
}

func TestEngine_NoAIConfigured(t *testing.T) {
	req := testRequest(t, nil)
	engine := NewEngine(nil, logging.Nop())

	plan, err := engine.Generate(context.Background(), req)
	if err != nil {
		t.Fatalf("Generate() error = %v", err)
	}
	if plan.GeneratedBy != "rules" {
		t.Errorf("GeneratedBy = %q, want rules", plan.GeneratedBy)
	}
}

func TestEngine_ResolvesAppointmentConflicts(t *testing.T) {
	req := testRequest(t, func(in *Input) {
		// An all-day appointment on every day of the week.
		for i := 0; i < 7; i++ {
			in.Appointments = append(in.Appointments, models.Appointment{
				ID:    "appt",
				Title: "Conference",
				Date:  testWeekStart.AddDate(0, 0, i).Format("2006-01-02"),
			})
		}
	})
	engine := NewEngine(nil, logging.Nop())

	plan, err := engine.Generate(context.Background(), req)
	if err != nil {
		t.Fatalf("Generate() error = %v", err)
	}
	for _, day := range plan.Days {
		if day.Verdict != models.VerdictRest {
			t.Errorf("day %s scheduled over an all-day appointment", day.Date)
		}
	}
}
