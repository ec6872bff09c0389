package planner

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/julianstephens/weekfit/internal/constants"
	"github.com/julianstephens/weekfit/internal/models"
)

// RulePlanner is the deterministic fallback. Given the same request it always
// produces the same plan, and the plan it produces always validates.
type RulePlanner struct{}

func NewRulePlanner() *RulePlanner {
	return &RulePlanner{}
}

func (p *RulePlanner) Name() string {
	return "rules"
}

type rankedActivity struct {
	activity  models.Activity
	timeMatch bool
	fresh     bool
	order     int
}

func (r rankedActivity) score() int {
	s := 0
	if r.timeMatch {
		s += 2
	}
	if r.fresh {
		s++
	}
	return s
}

func (p *RulePlanner) Plan(_ context.Context, req *PlanningRequest) (*models.WeeklyPlan, error) {
	plan := &models.WeeklyPlan{
		WeekStart:   req.Dates()[0],
		GeneratedBy: "rules",
		CreatedAt:   time.Now().Format(time.RFC3339),
	}

	ceiling := req.Readiness.IntensityCeiling()
	chosen := map[string]bool{}
	if req.LastActivity != "" {
		chosen[strings.ToLower(req.LastActivity)] = true
	}

	dayScores := make([]int, 0, constants.WeekDays)

	for _, date := range req.Dates() {
		day, _ := time.Parse(constants.DateFormat, date)
		forecast := req.Forecast[date]
		dp := models.DayPlan{
			Date:           date,
			WeatherSummary: forecast.Summary(req.Unit),
		}

		candidates := make([]models.Activity, 0, len(req.Activities))
		for _, a := range req.Activities {
			if !a.AllowedOn(day.Weekday()) {
				continue
			}
			if a.RequiresGoodWeather() && !forecast.SuitsGoodWeather() {
				continue
			}
			candidates = append(candidates, a)
		}
		if len(candidates) == 0 {
			dp.Verdict = models.VerdictRest
			dp.Rationale = "no suitable activity for the day's conditions"
			plan.Days = append(plan.Days, dp)
			dayScores = append(dayScores, 0)
			continue
		}

		capped := candidates[:0]
		for _, a := range candidates {
			if a.Intensity.Rank() <= ceiling.Rank() {
				capped = append(capped, a)
			}
		}
		if len(capped) == 0 {
			dp.Verdict = models.VerdictRest
			if req.Readiness != nil && req.Readiness.ReadinessScore != nil {
				dp.Rationale = fmt.Sprintf("readiness %d caps intensity at %s; no activity fits", *req.Readiness.ReadinessScore, ceiling)
			} else {
				dp.Rationale = fmt.Sprintf("no activity within the %s intensity ceiling", ceiling)
			}
			plan.Days = append(plan.Days, dp)
			dayScores = append(dayScores, 0)
			continue
		}

		slot := models.TimeAfternoon
		if sunriseBefore(forecast.Sunrise, 8*60) {
			slot = models.TimeMorning
		}

		ranked := make([]rankedActivity, 0, len(capped))
		for i, a := range capped {
			ranked = append(ranked, rankedActivity{
				activity:  a,
				timeMatch: a.PreferredTime == slot || a.PreferredTime == models.TimeAny || a.PreferredTime == "",
				fresh:     !chosen[strings.ToLower(a.Name)],
				order:     i,
			})
		}
		sort.SliceStable(ranked, func(i, j int) bool {
			return ranked[i].score() > ranked[j].score()
		})

		limit := 1
		if req.AllowMultiplePerDay {
			limit = 3
			if limit > len(ranked) {
				limit = len(ranked)
			}
		}

		taken := map[models.TimeOfDay]bool{}
		for _, r := range ranked[:limit] {
			tod := pickSlot(r.activity.PreferredTime, slot, taken)
			if tod == "" {
				break
			}
			taken[tod] = true
			dp.Activities = append(dp.Activities, models.Assignment{
				ActivityID:   r.activity.ID,
				ActivityName: r.activity.Name,
				TimeOfDay:    tod,
				Rationale:    assignmentRationale(r, ceiling, req.Readiness),
			})
			chosen[strings.ToLower(r.activity.Name)] = true
		}

		dp.Verdict = models.VerdictScheduled
		dp.Rationale = "scheduled by availability, weather and recent history"
		plan.Days = append(plan.Days, dp)
		dayScores = append(dayScores, ranked[0].score())
	}

	applyRestFloor(plan, dayScores)

	return plan, nil
}

// pickSlot resolves an assignment's time of day: the activity's own
// preference when free, otherwise the derived slot, otherwise the first free
// daytime slot.
func pickSlot(pref models.TimeOfDay, derived models.TimeOfDay, taken map[models.TimeOfDay]bool) models.TimeOfDay {
	if pref != "" && pref != models.TimeAny && !taken[pref] {
		return pref
	}
	if !taken[derived] {
		return derived
	}
	for _, tod := range []models.TimeOfDay{models.TimeMorning, models.TimeAfternoon, models.TimeEvening} {
		if !taken[tod] {
			return tod
		}
	}
	return ""
}

func assignmentRationale(r rankedActivity, ceiling models.Intensity, readiness *models.ReadinessSnapshot) string {
	var reasons []string
	if r.activity.RequiresGoodWeather() {
		reasons = append(reasons, "good weather expected")
	}
	if r.timeMatch && r.activity.PreferredTime != "" && r.activity.PreferredTime != models.TimeAny {
		reasons = append(reasons, "matches preferred time")
	}
	if r.fresh {
		reasons = append(reasons, "adds variety this week")
	}
	if readiness != nil && readiness.ReadinessScore != nil && ceiling != models.IntensityVeryHigh {
		reasons = append(reasons, fmt.Sprintf("within the %s readiness ceiling", ceiling))
	}
	if len(reasons) == 0 {
		return "best fit for the day"
	}
	return strings.Join(reasons, "; ")
}

// applyRestFloor guarantees at least one rest day per week. When every day
// came out scheduled, the day with the weakest top candidate becomes rest;
// ties go to the latest such day.
func applyRestFloor(plan *models.WeeklyPlan, dayScores []int) {
	if plan.RestDays() > 0 {
		return
	}
	lowest := 0
	for i, s := range dayScores {
		if s <= dayScores[lowest] {
			lowest = i
		}
	}
	plan.Days[lowest].Verdict = models.VerdictRest
	plan.Days[lowest].Activities = nil
	plan.Days[lowest].Rationale = "recovery day to keep the week balanced"
}

func sunriseBefore(sunrise string, cutoffMin int) bool {
	t, err := time.Parse(constants.TimeFormat, sunrise)
	if err != nil {
		return false
	}
	return t.Hour()*60+t.Minute() <= cutoffMin
}
