package planner

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/julianstephens/weekfit/internal/models"
)

type responseAssignment struct {
	Name      string `json:"name"`
	TimeOfDay string `json:"time_of_day"`
	Rationale string `json:"rationale"`
}

type responseDay struct {
	Verdict    string               `json:"verdict"`
	Activities []responseAssignment `json:"activities"`
	Rationale  string               `json:"rationale"`
	Weather    string               `json:"weather"`
}

// extractJSONBlock pulls the outermost JSON object out of a raw model
// response, tolerating markdown fences and surrounding prose.
func extractJSONBlock(raw string) (string, error) {
	s := strings.TrimSpace(raw)
	if strings.HasPrefix(s, "```") {
		s = strings.TrimPrefix(s, "```json")
		s = strings.TrimPrefix(s, "```")
		if i := strings.LastIndex(s, "```"); i >= 0 {
			s = s[:i]
		}
		s = strings.TrimSpace(s)
	}
	start := strings.Index(s, "{")
	end := strings.LastIndex(s, "}")
	if start < 0 || end <= start {
		return "", fmt.Errorf("no JSON object found in response")
	}
	return s[start : end+1], nil
}

// parseResponse turns a raw model response into a WeeklyPlan. Extraction is
// tolerant, but the payload itself is held to the request strictly: every day
// of the week present, no unknown day keys, known activity names and enum
// values only.
func parseResponse(raw string, req *PlanningRequest) (*models.WeeklyPlan, error) {
	block, err := extractJSONBlock(raw)
	if err != nil {
		return nil, err
	}

	var days map[string]responseDay
	if err := json.Unmarshal([]byte(block), &days); err != nil {
		return nil, fmt.Errorf("response is not a JSON object of day plans: %w", err)
	}

	wanted := make(map[string]bool, len(req.Dates()))
	for _, d := range req.Dates() {
		wanted[d] = true
	}
	for key := range days {
		if !wanted[key] {
			return nil, fmt.Errorf("unexpected day key %q in response", key)
		}
	}

	plan := &models.WeeklyPlan{
		WeekStart:   req.Dates()[0],
		GeneratedBy: "ai",
		CreatedAt:   time.Now().Format(time.RFC3339),
	}

	for _, date := range req.Dates() {
		day, ok := days[date]
		if !ok {
			return nil, fmt.Errorf("response missing day %s", date)
		}

		verdict := models.Verdict(strings.ToLower(strings.TrimSpace(day.Verdict)))
		if !verdict.Valid() {
			return nil, fmt.Errorf("day %s has unknown verdict %q", date, day.Verdict)
		}
		if verdict == models.VerdictRest && len(day.Activities) > 0 {
			return nil, fmt.Errorf("day %s is rest but lists activities", date)
		}
		if verdict == models.VerdictScheduled && len(day.Activities) == 0 {
			return nil, fmt.Errorf("day %s is scheduled but lists no activities", date)
		}
		max := 1
		if req.AllowMultiplePerDay {
			max = 3
		}
		if len(day.Activities) > max {
			return nil, fmt.Errorf("day %s lists %d activities, at most %d allowed", date, len(day.Activities), max)
		}

		dp := models.DayPlan{
			Date:           date,
			Verdict:        verdict,
			Rationale:      strings.TrimSpace(day.Rationale),
			WeatherSummary: strings.TrimSpace(day.Weather),
		}
		if dp.WeatherSummary == "" {
			dp.WeatherSummary = req.Forecast[date].Summary(req.Unit)
		}

		seen := make(map[models.TimeOfDay]bool)
		for _, ra := range day.Activities {
			act, ok := req.ActivityByName(ra.Name)
			if !ok {
				return nil, fmt.Errorf("day %s references unknown activity %q", date, ra.Name)
			}
			tod := models.TimeOfDay(strings.ToLower(strings.TrimSpace(ra.TimeOfDay)))
			if tod == "" || tod == models.TimeAny {
				tod = models.TimeAfternoon
			}
			if !tod.Valid() {
				return nil, fmt.Errorf("day %s has unknown time of day %q", date, ra.TimeOfDay)
			}
			if seen[tod] {
				return nil, fmt.Errorf("day %s assigns two activities to %s", date, tod)
			}
			seen[tod] = true
			dp.Activities = append(dp.Activities, models.Assignment{
				ActivityID:   act.ID,
				ActivityName: act.Name,
				TimeOfDay:    tod,
				Rationale:    strings.TrimSpace(ra.Rationale),
			})
		}

		plan.Days = append(plan.Days, dp)
	}

	return plan, nil
}
