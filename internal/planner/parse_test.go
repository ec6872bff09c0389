package planner

import (
	"fmt"
	"strings"
	"testing"

	"github.com/julianstephens/weekfit/internal/models"
)

// validResponse builds a response scheduling Yoga on the first day and
// resting every other day.
func validResponse(req *PlanningRequest) string {
	var days []string
	for i, date := range req.Dates() {
		if i == 0 {
			days = append(days, fmt.Sprintf(
				`%q: {"verdict": "scheduled", "activities": [{"name": "Yoga", "time_of_day": "evening", "rationale": "easy start"}], "rationale": "kick off the week", "weather": "clear"}`, date))
			continue
		}
		days = append(days, fmt.Sprintf(`%q: {"verdict": "rest", "activities": [], "rationale": "recovery"}`, date))
	}
	return "{" + strings.Join(days, ",") + "}"
}

func TestParseResponse_Valid(t *testing.T) {
	req := testRequest(t, nil)

	plan, err := parseResponse(validResponse(req), req)
	if err != nil {
		t.Fatalf("parseResponse() error = %v", err)
	}
	if len(plan.Days) != 7 {
		t.Fatalf("plan has %d days, want 7", len(plan.Days))
	}
	if plan.Days[0].Verdict != models.VerdictScheduled {
		t.Errorf("day 1 verdict = %v, want scheduled", plan.Days[0].Verdict)
	}
	if plan.Days[0].Activities[0].ActivityID != "a2" {
		t.Errorf("assignment should resolve the activity ID, got %q", plan.Days[0].Activities[0].ActivityID)
	}
	if plan.GeneratedBy != "ai" {
		t.Errorf("GeneratedBy = %q, want ai", plan.GeneratedBy)
	}
}

func TestParseResponse_MarkdownFences(t *testing.T) {
	req := testRequest(t, nil)
	fenced := "Here is the plan:\n```json\n" + validResponse(req) + "\n```\n"

	if _, err := parseResponse(fenced, req); err != nil {
		t.Fatalf("parseResponse() should tolerate fenced responses, got %v", err)
	}
}

func TestParseResponse_MissingDay(t *testing.T) {
	req := testRequest(t, nil)
	resp := validResponse(req)
	resp = strings.Replace(resp, req.Dates()[3], "2030-01-01", 1)

	if _, err := parseResponse(resp, req); err == nil {
		t.Fatal("a response missing a week day should be rejected")
	}
}

func TestParseResponse_UnknownActivity(t *testing.T) {
	req := testRequest(t, nil)
	resp := strings.Replace(validResponse(req), `"Yoga"`, `"Base Jumping"`, 1)

	if _, err := parseResponse(resp, req); err == nil {
		t.Fatal("a response naming an unknown activity should be rejected")
	}
}

func TestParseResponse_RestDayWithActivities(t *testing.T) {
	req := testRequest(t, nil)
	resp := strings.Replace(validResponse(req), `"verdict": "scheduled"`, `"verdict": "rest"`, 1)

	if _, err := parseResponse(resp, req); err == nil {
		t.Fatal("a rest day listing activities should be rejected")
	}
}

func TestParseResponse_UnknownVerdict(t *testing.T) {
	req := testRequest(t, nil)
	resp := strings.Replace(validResponse(req), `"verdict": "scheduled"`, `"verdict": "maybe"`, 1)

	if _, err := parseResponse(resp, req); err == nil {
		t.Fatal("an unknown verdict should be rejected")
	}
}

func TestParseResponse_TooManyActivities(t *testing.T) {
	req := testRequest(t, nil)
	resp := strings.Replace(validResponse(req),
		`"activities": [{"name": "Yoga", "time_of_day": "evening", "rationale": "easy start"}]`,
		`"activities": [{"name": "Yoga", "time_of_day": "evening"}, {"name": "Swim", "time_of_day": "morning"}]`, 1)

	if _, err := parseResponse(resp, req); err == nil {
		t.Fatal("two activities on one day should be rejected when multiples are off")
	}
}

func TestParseResponse_NoJSON(t *testing.T) {
	req := testRequest(t, nil)

	if _, err := parseResponse("I could not produce a plan.", req); err == nil {
		t.Fatal("prose without JSON should be rejected")
	}
}
