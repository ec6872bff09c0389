// Package calsync exports weekly plans to an external calendar and imports
// calendar events as appointments.
package calsync

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/julianstephens/weekfit/internal/constants"
	"github.com/julianstephens/weekfit/internal/logging"
	"github.com/julianstephens/weekfit/internal/models"
)

// Client is the external calendar collaborator.
type Client interface {
	CreateEvent(ctx context.Context, ev models.CalendarEventRef) (string, error)
	ListEvents(ctx context.Context, from, to string) ([]models.CalendarEventRef, error)
}

// CalendarExportError reports a single entry that could not be exported.
type CalendarExportError struct {
	Date     string
	Activity string
	Reason   string
	Err      error
}

func (e *CalendarExportError) Error() string {
	msg := fmt.Sprintf("exporting %q on %s: %s", e.Activity, e.Date, e.Reason)
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", msg, e.Err)
	}
	return msg
}

func (e *CalendarExportError) Unwrap() error {
	return e.Err
}

// ExportResult is the outcome for one plan entry. A failed entry carries its
// error; the rest of the export proceeds regardless.
type ExportResult struct {
	Date     string
	Activity string
	EventID  string
	Err      error
}

// ImportSummary reports what an import run did.
type ImportSummary struct {
	Created         int
	SkippedExisting int
	SkippedExported int
	Appointments    []models.Appointment
}

// Engine drives calendar synchronization through a Client.
type Engine struct {
	client Client
	log    *logging.Logger
}

func NewEngine(client Client, log *logging.Logger) *Engine {
	return &Engine{client: client, log: log}
}

// Export creates one calendar event per scheduled assignment, in plan order.
// Every entry gets its own result; one failure never aborts the rest.
func (e *Engine) Export(ctx context.Context, plan *models.WeeklyPlan, activities []models.Activity) []ExportResult {
	durations := make(map[string]int, len(activities))
	for _, a := range activities {
		durations[normalizeTitle(a.Name)] = a.DurationMin
	}

	var results []ExportResult
	for _, day := range plan.Days {
		if day.Verdict != models.VerdictScheduled {
			continue
		}
		for _, assignment := range day.Activities {
			res := ExportResult{Date: day.Date, Activity: assignment.ActivityName}

			ev, err := exportEvent(day, assignment, durations)
			if err != nil {
				res.Err = err
				results = append(results, res)
				continue
			}

			id, err := e.client.CreateEvent(ctx, ev)
			if err != nil {
				res.Err = &CalendarExportError{Date: day.Date, Activity: assignment.ActivityName, Reason: "calendar rejected the event", Err: err}
				e.log.Warnw("export entry failed", "date", day.Date, "activity", assignment.ActivityName, "error", err)
			} else {
				res.EventID = id
			}
			results = append(results, res)
		}
	}
	return results
}

func exportEvent(day models.DayPlan, assignment models.Assignment, durations map[string]int) (models.CalendarEventRef, error) {
	if strings.TrimSpace(assignment.ActivityName) == "" {
		return models.CalendarEventRef{}, &CalendarExportError{Date: day.Date, Reason: "assignment has no activity name"}
	}
	if day.Date == "" {
		return models.CalendarEventRef{}, &CalendarExportError{Activity: assignment.ActivityName, Reason: "assignment has no date"}
	}

	start, _ := assignment.TimeOfDay.Window()
	dur := durations[normalizeTitle(assignment.ActivityName)]
	if dur <= 0 {
		dur = constants.DefaultEventDurationMin
	}

	desc := assignment.Rationale
	if day.WeatherSummary != "" {
		if desc != "" {
			desc += "\n"
		}
		desc += "Weather: " + day.WeatherSummary
	}

	return models.CalendarEventRef{
		Title:       assignment.ActivityName,
		Date:        day.Date,
		Time:        fmt.Sprintf("%02d:%02d", start/60, start%60),
		DurationMin: dur,
		Description: desc,
		Exported:    true,
	}, nil
}

// Import turns calendar events into appointments, skipping events this tool
// exported and anything already known. Running the same import twice creates
// nothing new.
func (e *Engine) Import(events []models.CalendarEventRef, existing []models.Appointment) ImportSummary {
	known := make(map[string]bool, len(existing))
	for _, appt := range existing {
		known[appointmentKey(appt)] = true
	}

	summary := ImportSummary{}
	now := time.Now().Format(time.RFC3339)

	for _, ev := range events {
		if ev.Exported {
			summary.SkippedExported++
			continue
		}
		if strings.TrimSpace(ev.Title) == "" {
			continue
		}

		key := eventKey(ev)
		if known[key] {
			summary.SkippedExisting++
			continue
		}
		known[key] = true

		dur := ev.DurationMin
		if dur <= 0 && !ev.AllDay {
			dur = constants.DefaultEventDurationMin
		}
		appt := models.Appointment{
			ID:          uuid.NewString(),
			Title:       strings.TrimSpace(ev.Title),
			Description: ev.Description,
			Type:        models.InferAppointmentType(ev.Title),
			Date:        ev.Date,
			Time:        ev.Time,
			DurationMin: dur,
			CreatedAt:   now,
		}
		summary.Appointments = append(summary.Appointments, appt)
		summary.Created++
	}

	return summary
}

// normalizeTitle lowercases and collapses whitespace so titles compare the
// same regardless of formatting.
func normalizeTitle(s string) string {
	return strings.Join(strings.Fields(strings.ToLower(s)), " ")
}

// eventKey is the dedup identity of a calendar event. Timed events include
// their start time, all-day events do not, so the two never cross-match.
func eventKey(ev models.CalendarEventRef) string {
	if ev.AllDay || ev.Time == "" {
		return fmt.Sprintf("allday|%s|%s", normalizeTitle(ev.Title), ev.Date)
	}
	return fmt.Sprintf("timed|%s|%s|%s", normalizeTitle(ev.Title), ev.Date, ev.Time)
}

func appointmentKey(appt models.Appointment) string {
	if appt.AllDay() {
		return fmt.Sprintf("allday|%s|%s", normalizeTitle(appt.Title), appt.Date)
	}
	return fmt.Sprintf("timed|%s|%s|%s", normalizeTitle(appt.Title), appt.Date, appt.Time)
}
