package validation

import (
	"time"

	"github.com/julianstephens/weekfit/internal/constants"
	"github.com/julianstephens/weekfit/internal/models"
)

// Occurrences expands an appointment into the concrete dates it occupies
// within the given week. One-off appointments occur on their own date when it
// falls in the week; repeating appointments occur on every matching weekday.
func Occurrences(appt models.Appointment, dates []string) []string {
	if len(appt.RepeatsOn) == 0 {
		for _, d := range dates {
			if d == appt.Date {
				return []string{d}
			}
		}
		return nil
	}

	repeats := make(map[time.Weekday]bool, len(appt.RepeatsOn))
	for _, wd := range appt.RepeatsOn {
		repeats[wd] = true
	}
	var out []string
	for _, d := range dates {
		day, err := time.Parse(constants.DateFormat, d)
		if err != nil {
			continue
		}
		if repeats[day.Weekday()] {
			out = append(out, d)
		}
	}
	return out
}

// apptWindow returns the minutes-from-midnight window an appointment
// occupies. All-day appointments block the whole day.
func apptWindow(appt models.Appointment) (int, int) {
	if appt.AllDay() {
		return 0, 24 * 60
	}
	t, err := time.Parse(constants.TimeFormat, appt.Time)
	if err != nil {
		return 0, 24 * 60
	}
	start := t.Hour()*60 + t.Minute()
	dur := appt.DurationMin
	if dur <= 0 {
		dur = constants.DefaultEventDurationMin
	}
	return start, start + dur
}

func overlaps(aStart, aEnd, bStart, bEnd int) bool {
	return aStart < bEnd && bStart < aEnd
}

// ResolveConflicts removes assignments whose time-of-day window overlaps an
// appointment and returns the adjusted plan. Days emptied by removal become
// rest days. The input plan is not modified and no error is ever raised.
func ResolveConflicts(plan *models.WeeklyPlan, appts []models.Appointment) *models.WeeklyPlan {
	dates := make([]string, len(plan.Days))
	for i, d := range plan.Days {
		dates[i] = d.Date
	}

	blocked := make(map[string][][2]int)
	for _, appt := range appts {
		start, end := apptWindow(appt)
		for _, date := range Occurrences(appt, dates) {
			blocked[date] = append(blocked[date], [2]int{start, end})
		}
	}

	out := *plan
	out.Days = make([]models.DayPlan, len(plan.Days))
	copy(out.Days, plan.Days)

	for i, day := range out.Days {
		windows := blocked[day.Date]
		if len(windows) == 0 || day.Verdict != models.VerdictScheduled {
			continue
		}

		kept := make([]models.Assignment, 0, len(day.Activities))
		for _, a := range day.Activities {
			start, end := a.TimeOfDay.Window()
			conflict := false
			for _, w := range windows {
				if overlaps(start, end, w[0], w[1]) {
					conflict = true
					break
				}
			}
			if !conflict {
				kept = append(kept, a)
			}
		}

		if len(kept) == 0 {
			out.Days[i].Verdict = models.VerdictRest
			out.Days[i].Activities = nil
			out.Days[i].Rationale = "appointment conflict"
			continue
		}
		out.Days[i].Activities = kept
	}

	return &out
}
