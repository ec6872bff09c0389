package planner

import (
	"strings"
	"time"

	"github.com/julianstephens/weekfit/internal/constants"
	"github.com/julianstephens/weekfit/internal/models"
)

// Input carries the raw material for a planning request.
type Input struct {
	Activities          []models.Activity
	Appointments        []models.Appointment
	Forecast            []models.DayForecast
	Readiness           *models.ReadinessSnapshot
	Instructions        string
	LastActivity        string
	AllowMultiplePerDay bool
	Unit                string
	WeekStart           time.Time
}

// PlanningRequest is a frozen snapshot of everything a planner needs for one
// week. Once built it is never mutated, so both planning paths see identical
// inputs.
type PlanningRequest struct {
	Activities          []models.Activity
	Appointments        []models.Appointment
	Forecast            map[string]models.DayForecast
	Readiness           *models.ReadinessSnapshot
	Instructions        string
	LastActivity        string
	AllowMultiplePerDay bool
	Unit                string
	WeekStart           time.Time

	dates []string
}

// BuildRequest assembles a PlanningRequest from raw inputs. It returns an
// IncompleteInputError when there are no activities to schedule or the
// forecast does not cover all seven days of the target week.
func BuildRequest(in Input) (*PlanningRequest, error) {
	if len(in.Activities) == 0 {
		return nil, &IncompleteInputError{Reason: "no activities to schedule"}
	}

	dates := make([]string, 0, constants.WeekDays)
	for i := 0; i < constants.WeekDays; i++ {
		dates = append(dates, in.WeekStart.AddDate(0, 0, i).Format(constants.DateFormat))
	}

	forecast := make(map[string]models.DayForecast, len(in.Forecast))
	for _, day := range in.Forecast {
		forecast[day.Date] = day
	}
	for _, date := range dates {
		if _, ok := forecast[date]; !ok {
			return nil, &IncompleteInputError{Reason: "forecast missing for " + date}
		}
	}

	unit := in.Unit
	if unit == "" {
		unit = "C"
	}

	req := &PlanningRequest{
		Activities:          make([]models.Activity, len(in.Activities)),
		Appointments:        make([]models.Appointment, len(in.Appointments)),
		Forecast:            forecast,
		Readiness:           in.Readiness,
		Instructions:        strings.TrimSpace(in.Instructions),
		LastActivity:        strings.TrimSpace(in.LastActivity),
		AllowMultiplePerDay: in.AllowMultiplePerDay,
		Unit:                unit,
		WeekStart:           in.WeekStart,
		dates:               dates,
	}
	copy(req.Activities, in.Activities)
	copy(req.Appointments, in.Appointments)

	return req, nil
}

// Dates returns the seven dates of the target week in order.
func (r *PlanningRequest) Dates() []string {
	return r.dates
}

// ActivityByName looks up an activity by name, ignoring case and surrounding
// whitespace.
func (r *PlanningRequest) ActivityByName(name string) (models.Activity, bool) {
	want := strings.ToLower(strings.TrimSpace(name))
	for _, a := range r.Activities {
		if strings.ToLower(strings.TrimSpace(a.Name)) == want {
			return a, true
		}
	}
	return models.Activity{}, false
}
