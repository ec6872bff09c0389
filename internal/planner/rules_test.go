package planner

import (
	"context"
	"reflect"
	"strings"
	"testing"
	"time"

	"github.com/julianstephens/weekfit/internal/models"
)

func rulesPlan(t *testing.T, req *PlanningRequest) *models.WeeklyPlan {
	t.Helper()
	plan, err := NewRulePlanner().Plan(context.Background(), req)
	if err != nil {
		t.Fatalf("Plan() error = %v", err)
	}
	return plan
}

func TestRulePlanner_SevenOrderedDays(t *testing.T) {
	plan := rulesPlan(t, testRequest(t, nil))

	if len(plan.Days) != 7 {
		t.Fatalf("plan has %d days, want 7", len(plan.Days))
	}
	for i, day := range plan.Days {
		want := testWeekStart.AddDate(0, 0, i).Format("2006-01-02")
		if day.Date != want {
			t.Errorf("day %d date = %s, want %s", i, day.Date, want)
		}
	}
	if plan.GeneratedBy != "rules" {
		t.Errorf("GeneratedBy = %q, want rules", plan.GeneratedBy)
	}
}

func TestRulePlanner_GoodWeatherExclusion(t *testing.T) {
	req := testRequest(t, func(in *Input) {
		in.Activities = []models.Activity{{
			ID: "run", Name: "Morning Run", DurationMin: 45, Intensity: models.IntensityHigh,
			Dependencies:  []string{models.DependencyGoodWeather},
			PreferredTime: models.TimeMorning,
		}}
		for i := range in.Forecast {
			in.Forecast[i].Precipitation = 80
		}
	})

	plan := rulesPlan(t, req)
	for _, day := range plan.Days {
		if day.Verdict != models.VerdictRest {
			t.Errorf("day %s scheduled despite 80%% precipitation and a good-weather activity", day.Date)
		}
	}
}

func TestRulePlanner_ReadinessForcesRest(t *testing.T) {
	req := testRequest(t, func(in *Input) {
		score := 40
		in.Activities = []models.Activity{{
			ID: "hiit", Name: "HIIT", DurationMin: 30, Intensity: models.IntensityHigh,
		}}
		in.Readiness = &models.ReadinessSnapshot{ReadinessScore: &score, Source: models.SourceManual}
	})

	plan := rulesPlan(t, req)
	for _, day := range plan.Days {
		if day.Verdict != models.VerdictRest {
			t.Fatalf("day %s scheduled a high-intensity activity at readiness 40", day.Date)
		}
		if !strings.Contains(day.Rationale, "readiness") {
			t.Errorf("rest rationale should cite readiness, got %q", day.Rationale)
		}
	}
}

func TestRulePlanner_PreferredDaysRespected(t *testing.T) {
	req := testRequest(t, func(in *Input) {
		in.Activities = []models.Activity{{
			ID: "hike", Name: "Hike", DurationMin: 120, Intensity: models.IntensityMedium,
			PreferredDays: []time.Weekday{time.Saturday},
		}}
	})

	plan := rulesPlan(t, req)
	for _, day := range plan.Days {
		date, _ := time.Parse("2006-01-02", day.Date)
		if day.Verdict == models.VerdictScheduled && date.Weekday() != time.Saturday {
			t.Errorf("Hike scheduled on %s, allowed only on Saturday", date.Weekday())
		}
	}
	if saturday := plan.Day("2026-09-12"); saturday == nil || saturday.Verdict != models.VerdictScheduled {
		t.Error("Hike should be scheduled on the Saturday of the week")
	}
}

func TestRulePlanner_AtLeastOneRestDay(t *testing.T) {
	plan := rulesPlan(t, testRequest(t, nil))
	if plan.RestDays() == 0 {
		t.Error("a week with activities available every day should still include a rest day")
	}
}

func TestRulePlanner_Deterministic(t *testing.T) {
	req := testRequest(t, nil)
	first := rulesPlan(t, req)
	second := rulesPlan(t, req)

	if !reflect.DeepEqual(first.Days, second.Days) {
		t.Error("identical requests should produce identical plans")
	}
}

func TestRulePlanner_RotatesForVariety(t *testing.T) {
	req := testRequest(t, func(in *Input) {
		in.Activities = []models.Activity{
			{ID: "a", Name: "Swim", DurationMin: 60, Intensity: models.IntensityMedium},
			{ID: "b", Name: "Yoga", DurationMin: 30, Intensity: models.IntensityLow},
		}
	})

	plan := rulesPlan(t, req)
	if plan.Days[0].Activities[0].ActivityName != "Swim" {
		t.Errorf("day 1 should pick the first activity, got %s", plan.Days[0].Activities[0].ActivityName)
	}
	if plan.Days[1].Activities[0].ActivityName != "Yoga" {
		t.Errorf("day 2 should rotate to the unused activity, got %s", plan.Days[1].Activities[0].ActivityName)
	}
}

func TestRulePlanner_MultiplePerDay(t *testing.T) {
	req := testRequest(t, func(in *Input) {
		in.AllowMultiplePerDay = true
		in.Activities = append(in.Activities, models.Activity{
			ID: "a4", Name: "Walk", DurationMin: 30, Intensity: models.IntensityLow,
		})
	})

	plan := rulesPlan(t, req)
	for _, day := range plan.Days {
		if len(day.Activities) > 3 {
			t.Fatalf("day %s has %d activities, at most 3 allowed", day.Date, len(day.Activities))
		}
		seen := map[models.TimeOfDay]bool{}
		for _, a := range day.Activities {
			if seen[a.TimeOfDay] {
				t.Errorf("day %s assigns two activities to %s", day.Date, a.TimeOfDay)
			}
			seen[a.TimeOfDay] = true
		}
	}
}
