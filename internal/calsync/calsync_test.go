package calsync

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/julianstephens/weekfit/internal/logging"
	"github.com/julianstephens/weekfit/internal/models"
)

type fakeClient struct {
	created []models.CalendarEventRef
	events  []models.CalendarEventRef
	failOn  map[string]bool
}

func (f *fakeClient) CreateEvent(_ context.Context, ev models.CalendarEventRef) (string, error) {
	if f.failOn[ev.Title] {
		return "", errors.New("quota exceeded")
	}
	f.created = append(f.created, ev)
	return fmt.Sprintf("ev-%d", len(f.created)), nil
}

func (f *fakeClient) ListEvents(_ context.Context, _, _ string) ([]models.CalendarEventRef, error) {
	return f.events, nil
}

func testPlan() *models.WeeklyPlan {
	return &models.WeeklyPlan{
		WeekStart: "2026-09-07",
		Days: []models.DayPlan{
			{Date: "2026-09-07", Verdict: models.VerdictScheduled, WeatherSummary: "20.0°C, 10% rain",
				Activities: []models.Assignment{{ActivityName: "Swim", TimeOfDay: models.TimeMorning, Rationale: "pool day"}}},
			{Date: "2026-09-08", Verdict: models.VerdictRest, Rationale: "recovery"},
			{Date: "2026-09-09", Verdict: models.VerdictScheduled,
				Activities: []models.Assignment{{ActivityName: "Yoga", TimeOfDay: models.TimeEvening}}},
		},
	}
}

func testCalsyncActivities() []models.Activity {
	return []models.Activity{
		{ID: "a1", Name: "Swim", DurationMin: 45},
		{ID: "a2", Name: "Yoga", DurationMin: 30},
	}
}

func TestExport_CreatesEventsInPlanOrder(t *testing.T) {
	client := &fakeClient{}
	engine := NewEngine(client, logging.Nop())

	results := engine.Export(context.Background(), testPlan(), testCalsyncActivities())

	if len(results) != 2 {
		t.Fatalf("got %d results, want 2 (rest days export nothing)", len(results))
	}
	for _, res := range results {
		if res.Err != nil {
			t.Errorf("unexpected error for %s: %v", res.Activity, res.Err)
		}
	}
	if client.created[0].Title != "Swim" || client.created[1].Title != "Yoga" {
		t.Errorf("events out of order: %v", client.created)
	}
	if client.created[0].Time != "06:00" {
		t.Errorf("morning assignment should start at 06:00, got %s", client.created[0].Time)
	}
	if client.created[0].DurationMin != 45 {
		t.Errorf("event duration should come from the activity, got %d", client.created[0].DurationMin)
	}
}

func TestExport_PartialFailure(t *testing.T) {
	client := &fakeClient{failOn: map[string]bool{"Swim": true}}
	engine := NewEngine(client, logging.Nop())

	results := engine.Export(context.Background(), testPlan(), testCalsyncActivities())

	if len(results) != 2 {
		t.Fatalf("got %d results, want 2", len(results))
	}
	if results[0].Err == nil {
		t.Error("failed entry should carry its error")
	}
	var exportErr *CalendarExportError
	if !errors.As(results[0].Err, &exportErr) {
		t.Errorf("failed entry error = %T, want CalendarExportError", results[0].Err)
	}
	if results[1].Err != nil || results[1].EventID == "" {
		t.Error("one failure must not abort the remaining entries")
	}
}

func TestImport_CreatesAppointments(t *testing.T) {
	engine := NewEngine(&fakeClient{}, logging.Nop())
	events := []models.CalendarEventRef{
		{ID: "e1", Title: "Dentist", Date: "2026-09-09", Time: "10:00", DurationMin: 30},
		{ID: "e2", Title: "Conference", Date: "2026-09-10", AllDay: true},
	}

	summary := engine.Import(events, nil)

	if summary.Created != 2 {
		t.Fatalf("Created = %d, want 2", summary.Created)
	}
	if summary.Appointments[0].Type != models.AppointmentMedical {
		t.Errorf("Dentist should be inferred as medical, got %s", summary.Appointments[0].Type)
	}
	if !summary.Appointments[1].AllDay() {
		t.Error("all-day event should import as all-day appointment")
	}
}

func TestImport_Idempotent(t *testing.T) {
	engine := NewEngine(&fakeClient{}, logging.Nop())
	events := []models.CalendarEventRef{
		{ID: "e1", Title: "Dentist", Date: "2026-09-09", Time: "10:00", DurationMin: 30},
	}

	first := engine.Import(events, nil)
	second := engine.Import(events, first.Appointments)

	if first.Created != 1 {
		t.Fatalf("first import Created = %d, want 1", first.Created)
	}
	if second.Created != 0 || second.SkippedExisting != 1 {
		t.Errorf("second import Created = %d, SkippedExisting = %d, want 0 and 1",
			second.Created, second.SkippedExisting)
	}
}

func TestImport_TitleNormalization(t *testing.T) {
	engine := NewEngine(&fakeClient{}, logging.Nop())
	existing := []models.Appointment{{Title: "Team  Meeting", Date: "2026-09-09", Time: "14:00"}}
	events := []models.CalendarEventRef{
		{ID: "e1", Title: "team meeting", Date: "2026-09-09", Time: "14:00"},
	}

	summary := engine.Import(events, existing)
	if summary.Created != 0 {
		t.Error("case and whitespace differences alone should not create a duplicate")
	}
}

func TestImport_TimeVariantIsDistinct(t *testing.T) {
	engine := NewEngine(&fakeClient{}, logging.Nop())
	existing := []models.Appointment{{Title: "Dentist", Date: "2026-09-09", Time: "10:00"}}
	events := []models.CalendarEventRef{
		{ID: "e1", Title: "Dentist", Date: "2026-09-09", Time: "15:00", DurationMin: 30},
	}

	summary := engine.Import(events, existing)
	if summary.Created != 1 {
		t.Error("the same title at a different time is a distinct appointment")
	}
}

func TestImport_AllDayAndTimedNeverCrossMatch(t *testing.T) {
	engine := NewEngine(&fakeClient{}, logging.Nop())
	existing := []models.Appointment{{Title: "Conference", Date: "2026-09-10"}}
	events := []models.CalendarEventRef{
		{ID: "e1", Title: "Conference", Date: "2026-09-10", Time: "09:00", DurationMin: 60},
	}

	summary := engine.Import(events, existing)
	if summary.Created != 1 {
		t.Error("a timed event must not match an all-day appointment with the same title and date")
	}
}

func TestImport_SkipsOwnExports(t *testing.T) {
	engine := NewEngine(&fakeClient{}, logging.Nop())
	events := []models.CalendarEventRef{
		{ID: "e1", Title: "Swim", Date: "2026-09-07", Time: "06:00", Exported: true},
	}

	summary := engine.Import(events, nil)
	if summary.Created != 0 || summary.SkippedExported != 1 {
		t.Errorf("own exports should be skipped, got Created=%d SkippedExported=%d",
			summary.Created, summary.SkippedExported)
	}
}
