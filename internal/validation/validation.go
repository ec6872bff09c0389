// Package validation checks generated weekly plans against their request and
// resolves appointment conflicts before a plan is accepted.
package validation

import (
	"fmt"
	"strings"

	"github.com/julianstephens/weekfit/internal/constants"
	"github.com/julianstephens/weekfit/internal/models"
)

// InvalidPlanError names the first violated rule found in a plan.
type InvalidPlanError struct {
	Rule string
	Date string
}

func (e *InvalidPlanError) Error() string {
	if e.Date != "" {
		return fmt.Sprintf("invalid plan: %s (day %s)", e.Rule, e.Date)
	}
	return fmt.Sprintf("invalid plan: %s", e.Rule)
}

// PlanContext carries the request facts a plan is checked against.
type PlanContext struct {
	Dates               []string
	ActivityNames       map[string]bool
	AllowMultiplePerDay bool
}

func NewPlanContext(dates []string, activityNames []string, allowMultiplePerDay bool) PlanContext {
	names := make(map[string]bool, len(activityNames))
	for _, n := range activityNames {
		names[strings.ToLower(strings.TrimSpace(n))] = true
	}
	return PlanContext{Dates: dates, ActivityNames: names, AllowMultiplePerDay: allowMultiplePerDay}
}

// ValidatePlan checks a plan structurally and against its request. It stops
// at the first violation.
func ValidatePlan(plan *models.WeeklyPlan, pctx PlanContext) error {
	if plan == nil {
		return &InvalidPlanError{Rule: "plan is nil"}
	}
	if len(plan.Days) != constants.WeekDays {
		return &InvalidPlanError{Rule: fmt.Sprintf("plan has %d days, want %d", len(plan.Days), constants.WeekDays)}
	}

	for i, day := range plan.Days {
		if day.Date != pctx.Dates[i] {
			return &InvalidPlanError{Rule: fmt.Sprintf("day %d is %s, want %s", i+1, day.Date, pctx.Dates[i]), Date: day.Date}
		}
		if !day.Verdict.Valid() {
			return &InvalidPlanError{Rule: fmt.Sprintf("unknown verdict %q", day.Verdict), Date: day.Date}
		}
		if day.Verdict == models.VerdictRest && len(day.Activities) > 0 {
			return &InvalidPlanError{Rule: "rest day lists activities", Date: day.Date}
		}
		if day.Verdict == models.VerdictScheduled && len(day.Activities) == 0 {
			return &InvalidPlanError{Rule: "scheduled day lists no activities", Date: day.Date}
		}

		max := 1
		if pctx.AllowMultiplePerDay {
			max = 3
		}
		if len(day.Activities) > max {
			return &InvalidPlanError{Rule: fmt.Sprintf("%d activities on one day, at most %d allowed", len(day.Activities), max), Date: day.Date}
		}

		seen := make(map[models.TimeOfDay]bool, len(day.Activities))
		for _, a := range day.Activities {
			if !pctx.ActivityNames[strings.ToLower(strings.TrimSpace(a.ActivityName))] {
				return &InvalidPlanError{Rule: fmt.Sprintf("unknown activity %q", a.ActivityName), Date: day.Date}
			}
			if a.TimeOfDay == models.TimeAny || !a.TimeOfDay.Valid() {
				return &InvalidPlanError{Rule: fmt.Sprintf("unknown time of day %q", a.TimeOfDay), Date: day.Date}
			}
			if seen[a.TimeOfDay] {
				return &InvalidPlanError{Rule: fmt.Sprintf("two activities at %s", a.TimeOfDay), Date: day.Date}
			}
			seen[a.TimeOfDay] = true
		}
	}

	return nil
}
