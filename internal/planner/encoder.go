package planner

import (
	"fmt"
	"strings"

	"github.com/julianstephens/weekfit/internal/models"
)

// SystemInstruction frames the collaborator's role for every planning call.
const SystemInstruction = `You are a weekly activity scheduler. You are given a list of activities with their constraints, a list of appointments, a seven-day weather forecast, and optionally a recovery readiness snapshot. You assign activities to days of the week, or mark a day as rest, respecting every stated constraint. You respond with JSON only, no prose outside the JSON.`

// EncodeInstructions renders the planning request as a deterministic
// instruction block. Identical requests always produce identical text.
func EncodeInstructions(req *PlanningRequest) string {
	var b strings.Builder

	b.WriteString("Plan the week starting ")
	b.WriteString(req.Dates()[0])
	b.WriteString(".\n\n")

	b.WriteString("Activities:\n")
	for _, a := range req.Activities {
		b.WriteString("- ")
		b.WriteString(a.Name)
		fmt.Fprintf(&b, " (intensity: %s, duration: %d min", a.Intensity, a.DurationMin)
		if a.PreferredTime != "" && a.PreferredTime != models.TimeAny {
			fmt.Fprintf(&b, ", preferred time: %s", a.PreferredTime)
		}
		if len(a.PreferredDays) > 0 {
			days := make([]string, len(a.PreferredDays))
			for i, d := range a.PreferredDays {
				days[i] = d.String()
			}
			fmt.Fprintf(&b, ", only on: %s", strings.Join(days, ", "))
		}
		if a.RequiresGoodWeather() {
			b.WriteString(", requires good weather")
		}
		b.WriteString(")\n")
	}

	if len(req.Appointments) > 0 {
		b.WriteString("\nAppointments (do not schedule activities over these):\n")
		for _, appt := range req.Appointments {
			b.WriteString("- ")
			b.WriteString(appt.Title)
			if appt.AllDay() {
				fmt.Fprintf(&b, " on %s (all day)", appt.Date)
			} else {
				fmt.Fprintf(&b, " on %s at %s for %d min", appt.Date, appt.Time, appt.DurationMin)
			}
			if len(appt.RepeatsOn) > 0 {
				days := make([]string, len(appt.RepeatsOn))
				for i, d := range appt.RepeatsOn {
					days[i] = d.String()
				}
				fmt.Fprintf(&b, ", repeats every %s", strings.Join(days, ", "))
			}
			b.WriteString("\n")
		}
	}

	b.WriteString("\nForecast:\n")
	for _, date := range req.Dates() {
		day := req.Forecast[date]
		fmt.Fprintf(&b, "- %s: high %.1f°%s, low %.1f°%s, precipitation %d%%, sunrise %s, sunset %s\n",
			date, day.TempMax, req.Unit, day.TempMin, req.Unit, day.Precipitation, day.Sunrise, day.Sunset)
		if day.Severe() {
			fmt.Fprintf(&b, "  severe weather expected (code %d): schedule indoor activities or rest\n", day.Code)
		}
	}

	if req.Readiness != nil && req.Readiness.ReadinessScore != nil {
		fmt.Fprintf(&b, "\nReadiness score: %d (source: %s). ", *req.Readiness.ReadinessScore, req.Readiness.Source)
		switch req.Readiness.IntensityCeiling() {
		case models.IntensityMedium:
			b.WriteString("Do not schedule activities above medium intensity.\n")
		case models.IntensityHigh:
			b.WriteString("Do not schedule activities above high intensity.\n")
		default:
			b.WriteString("No intensity restriction.\n")
		}
	}

	if req.Readiness != nil && req.Readiness.SleepScore != nil {
		fmt.Fprintf(&b, "\nSleep score: %d (%s sleep quality). Favor lighter activities after poor sleep.\n",
			*req.Readiness.SleepScore, sleepQuality(*req.Readiness.SleepScore))
	}

	if req.LastActivity != "" {
		fmt.Fprintf(&b, "\nMost recent activity: %s. Prefer variety over repeating it immediately.\n", req.LastActivity)
	}

	if req.Instructions != "" {
		fmt.Fprintf(&b, "\nAdditional instructions: %s\n", req.Instructions)
	}

	b.WriteString("\nRules:\n")
	b.WriteString("- Treat a day with precipitation of 60% or higher, or with severe weather, as unsuitable for activities that require good weather.\n")
	if req.AllowMultiplePerDay {
		b.WriteString("- You may schedule up to three activities per day, at most one per time of day.\n")
	} else {
		b.WriteString("- Schedule at most one activity per day.\n")
	}
	b.WriteString("- Only use activity names from the list above, exactly as written.\n")
	b.WriteString("- Include rest days: nobody trains seven days straight.\n")

	b.WriteString("\nRespond with a JSON object whose keys are exactly these seven dates: ")
	b.WriteString(strings.Join(req.Dates(), ", "))
	b.WriteString(".\nEach value must be an object of the form:\n")
	b.WriteString(`{"verdict": "scheduled" or "rest", "activities": [{"name": "...", "time_of_day": "morning|afternoon|evening|night", "rationale": "..."}], "rationale": "...", "weather": "..."}` + "\n")
	b.WriteString("Rest days must have an empty activities array.\n")

	return b.String()
}

// sleepQuality buckets a sleep score the way the readiness providers do.
func sleepQuality(score int) string {
	switch {
	case score < 30:
		return "poor"
	case score < 65:
		return "moderate"
	default:
		return "good"
	}
}

// repromptInstructions asks the collaborator to fix a malformed response. The
// correction text is fixed so retries stay deterministic.
func repromptInstructions(req *PlanningRequest, reason string) string {
	var b strings.Builder
	b.WriteString("Your previous response could not be used: ")
	b.WriteString(reason)
	b.WriteString("\nRespond again with only a JSON object keyed by exactly these seven dates: ")
	b.WriteString(strings.Join(req.Dates(), ", "))
	b.WriteString(".\nUse only activity names from the original list, with verdict, activities, rationale and weather fields as specified. No text outside the JSON.")
	return b.String()
}
