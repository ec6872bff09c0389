package storage

import (
	"fmt"
	"path/filepath"
	"testing"
	"time"

	"github.com/julianstephens/weekfit/internal/models"
)

func setupTestJSONStore(t *testing.T) (*JSONStore, string) {
	path := filepath.Join(t.TempDir(), "weekfit.json")
	store := NewJSONStore(path)
	if err := store.Init(); err != nil {
		t.Fatalf("failed to initialize test store: %v", err)
	}
	return store, path
}

func TestJSONStoreLoadRequiresInit(t *testing.T) {
	store := NewJSONStore(filepath.Join(t.TempDir(), "missing.json"))
	if err := store.Load(); err == nil {
		t.Error("expected error when loading an uninitialized store")
	}
}

func TestJSONStorePersistsAcrossReload(t *testing.T) {
	store, path := setupTestJSONStore(t)

	activity := testStoreActivity("act-1", "Morning Run")
	if err := store.AddActivity(activity); err != nil {
		t.Fatalf("failed to add activity: %v", err)
	}

	settings := Settings{Unit: "F", AllowMultiplePerDay: true, AIModel: "gemini-2.5-flash"}
	if err := store.SaveSettings(settings); err != nil {
		t.Fatalf("failed to save settings: %v", err)
	}

	// A fresh store reading the same file sees everything
	reloaded := NewJSONStore(path)
	if err := reloaded.Load(); err != nil {
		t.Fatalf("failed to reload store: %v", err)
	}

	got, err := reloaded.GetActivity(activity.ID)
	if err != nil {
		t.Fatalf("failed to get activity after reload: %v", err)
	}
	if got.Name != activity.Name {
		t.Errorf("expected name %s, got %s", activity.Name, got.Name)
	}

	gotSettings, err := reloaded.GetSettings()
	if err != nil {
		t.Fatalf("failed to get settings after reload: %v", err)
	}
	if gotSettings != settings {
		t.Errorf("expected settings %+v, got %+v", settings, gotSettings)
	}
}

func TestJSONStoreActivitySoftDelete(t *testing.T) {
	store, _ := setupTestJSONStore(t)

	activity := testStoreActivity("act-2", "Yoga")
	if err := store.AddActivity(activity); err != nil {
		t.Fatalf("failed to add activity: %v", err)
	}
	if err := store.DeleteActivity(activity.ID); err != nil {
		t.Fatalf("failed to delete activity: %v", err)
	}

	if _, err := store.GetActivity(activity.ID); err == nil {
		t.Error("expected error when getting deleted activity, got nil")
	}
	all, err := store.GetAllActivities()
	if err != nil {
		t.Fatalf("failed to get all activities: %v", err)
	}
	if len(all) != 0 {
		t.Errorf("expected no activities after deletion, got %d", len(all))
	}

	// Restore brings it back
	if err := store.RestoreActivity(activity.ID); err != nil {
		t.Fatalf("failed to restore activity: %v", err)
	}
	if _, err := store.GetActivity(activity.ID); err != nil {
		t.Errorf("expected restored activity, got error: %v", err)
	}
}

func TestJSONStoreActivityOrderStable(t *testing.T) {
	store, _ := setupTestJSONStore(t)

	base := time.Date(2026, 9, 1, 8, 0, 0, 0, time.UTC)
	for i := 0; i < 12; i++ {
		activity := testStoreActivity(fmt.Sprintf("id-%02d", i), fmt.Sprintf("Activity %d", i))
		activity.CreatedAt = base.Add(time.Duration(i) * time.Minute).Format(time.RFC3339)
		if err := store.AddActivity(activity); err != nil {
			t.Fatalf("failed to add activity: %v", err)
		}
	}

	first, err := store.GetAllActivities()
	if err != nil {
		t.Fatalf("failed to get all activities: %v", err)
	}
	for i, a := range first {
		if want := fmt.Sprintf("id-%02d", i); a.ID != want {
			t.Fatalf("pos %d: expected %s, got %s", i, want, a.ID)
		}
	}

	// Repeated reads must return the same order every time
	for run := 0; run < 20; run++ {
		again, err := store.GetAllActivities()
		if err != nil {
			t.Fatalf("run %d: failed to get all activities: %v", run, err)
		}
		for i := range first {
			if again[i].ID != first[i].ID {
				t.Fatalf("run %d: activity order changed: pos %d was %s, now %s",
					run, i, first[i].ID, again[i].ID)
			}
		}
	}
}

func TestJSONStoreAppointmentOrderByDateTime(t *testing.T) {
	store, _ := setupTestJSONStore(t)

	appts := []models.Appointment{
		{ID: "b", Title: "Later", Date: "2026-09-09", Time: "15:00", Type: models.AppointmentOther, DurationMin: 30},
		{ID: "c", Title: "Earlier day", Date: "2026-09-08", Time: "18:00", Type: models.AppointmentOther, DurationMin: 30},
		{ID: "a", Title: "Same day morning", Date: "2026-09-09", Time: "09:00", Type: models.AppointmentOther, DurationMin: 30},
	}
	for _, appt := range appts {
		appt.CreatedAt = time.Now().UTC().Format(time.RFC3339)
		if err := store.AddAppointment(appt); err != nil {
			t.Fatalf("failed to add appointment: %v", err)
		}
	}

	got, err := store.GetAllAppointments()
	if err != nil {
		t.Fatalf("failed to get all appointments: %v", err)
	}
	if got[0].ID != "c" || got[1].ID != "a" || got[2].ID != "b" {
		t.Errorf("expected date/time order c, a, b, got %s, %s, %s", got[0].ID, got[1].ID, got[2].ID)
	}
}

func TestJSONStoreAppointments(t *testing.T) {
	store, _ := setupTestJSONStore(t)

	appt := models.Appointment{
		ID:          "appt-1",
		Title:       "Standup",
		Type:        models.AppointmentWork,
		Date:        "2026-09-07",
		Time:        "09:30",
		DurationMin: 15,
		RepeatsOn:   []time.Weekday{time.Monday, time.Thursday},
		CreatedAt:   time.Now().UTC().Format(time.RFC3339),
	}
	if err := store.AddAppointment(appt); err != nil {
		t.Fatalf("failed to add appointment: %v", err)
	}

	got, err := store.GetAppointment(appt.ID)
	if err != nil {
		t.Fatalf("failed to get appointment: %v", err)
	}
	if got.Title != appt.Title || len(got.RepeatsOn) != 2 {
		t.Errorf("appointment not preserved: %+v", got)
	}

	if err := store.DeleteAppointment(appt.ID); err != nil {
		t.Fatalf("failed to delete appointment: %v", err)
	}
	if _, err := store.GetAppointment(appt.ID); err == nil {
		t.Error("expected error when getting deleted appointment, got nil")
	}
}

func TestJSONStorePlans(t *testing.T) {
	store, _ := setupTestJSONStore(t)

	plan := models.WeeklyPlan{
		WeekStart:   "2026-09-07",
		GeneratedBy: "ai",
		CreatedAt:   time.Now().UTC().Format(time.RFC3339),
		Days: []models.DayPlan{
			{Date: "2026-09-07", Verdict: models.VerdictScheduled,
				Activities: []models.Assignment{{ActivityName: "Swim", TimeOfDay: models.TimeAfternoon}}},
		},
	}
	if err := store.SavePlan(plan); err != nil {
		t.Fatalf("failed to save plan: %v", err)
	}

	got, err := store.GetPlan(plan.WeekStart)
	if err != nil {
		t.Fatalf("failed to get plan: %v", err)
	}
	if got.GeneratedBy != "ai" || len(got.Days) != 1 {
		t.Errorf("plan not preserved: %+v", got)
	}

	if err := store.DeletePlan(plan.WeekStart); err != nil {
		t.Fatalf("failed to delete plan: %v", err)
	}
	if _, err := store.GetPlan(plan.WeekStart); err == nil {
		t.Error("expected error when getting deleted plan, got nil")
	}
}
