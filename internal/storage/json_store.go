package storage

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"time"

	"github.com/julianstephens/weekfit/internal/models"
)

type Store struct {
	Version      int                           `json:"version"`
	Settings     Settings                      `json:"settings"`
	Activities   map[string]models.Activity    `json:"activities"`
	Appointments map[string]models.Appointment `json:"appointments"`
	Plans        map[string]models.WeeklyPlan  `json:"plans"`
}

// JSONStore keeps everything in a single JSON file. Not safe for concurrent
// use by multiple processes sharing the same path.
type JSONStore struct {
	path  string
	store *Store
}

func NewJSONStore(configPath string) *JSONStore {
	return &JSONStore{
		path: configPath,
	}
}

func (s *JSONStore) Init() error {
	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0700); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	if _, err := os.Stat(s.path); err == nil {
		return fmt.Errorf("storage already initialized at %s", s.path)
	}

	s.store = &Store{
		Version:      1,
		Settings:     DefaultSettings(),
		Activities:   make(map[string]models.Activity),
		Appointments: make(map[string]models.Appointment),
		Plans:        make(map[string]models.WeeklyPlan),
	}

	return s.save()
}

func (s *JSONStore) Load() error {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return fmt.Errorf("storage not initialized, run 'weekfit init' first")
		}
		return fmt.Errorf("failed to read storage: %w", err)
	}

	s.store = &Store{}
	if err := json.Unmarshal(data, s.store); err != nil {
		return fmt.Errorf("failed to parse storage: %w", err)
	}

	if s.store.Activities == nil {
		s.store.Activities = make(map[string]models.Activity)
	}
	if s.store.Appointments == nil {
		s.store.Appointments = make(map[string]models.Appointment)
	}
	if s.store.Plans == nil {
		s.store.Plans = make(map[string]models.WeeklyPlan)
	}

	return nil
}

func (s *JSONStore) Close() error {
	return nil
}

func (s *JSONStore) save() error {
	data, err := json.MarshalIndent(s.store, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to serialize storage: %w", err)
	}

	if err := os.WriteFile(s.path, data, 0600); err != nil {
		return fmt.Errorf("failed to write storage: %w", err)
	}

	return nil
}

func (s *JSONStore) GetSettings() (Settings, error) {
	if s.store == nil {
		return Settings{}, fmt.Errorf("storage not loaded")
	}
	return s.store.Settings, nil
}

func (s *JSONStore) SaveSettings(settings Settings) error {
	if s.store == nil {
		return fmt.Errorf("storage not loaded")
	}
	s.store.Settings = settings
	return s.save()
}

func (s *JSONStore) AddActivity(activity models.Activity) error {
	if s.store == nil {
		return fmt.Errorf("storage not loaded")
	}

	s.store.Activities[activity.ID] = activity
	return s.save()
}

func (s *JSONStore) GetActivity(id string) (models.Activity, error) {
	if s.store == nil {
		return models.Activity{}, fmt.Errorf("storage not loaded")
	}

	activity, ok := s.store.Activities[id]
	if !ok || activity.DeletedAt != nil {
		return models.Activity{}, fmt.Errorf("activity not found: %s", id)
	}

	return activity, nil
}

func (s *JSONStore) GetAllActivities() ([]models.Activity, error) {
	if s.store == nil {
		return nil, fmt.Errorf("storage not loaded")
	}

	activities := make([]models.Activity, 0, len(s.store.Activities))
	for _, activity := range s.store.Activities {
		if activity.DeletedAt == nil {
			activities = append(activities, activity)
		}
	}

	// Map iteration order is random; callers rank and encode in input order.
	sort.Slice(activities, func(i, j int) bool {
		if activities[i].CreatedAt != activities[j].CreatedAt {
			return activities[i].CreatedAt < activities[j].CreatedAt
		}
		return activities[i].ID < activities[j].ID
	})

	return activities, nil
}

func (s *JSONStore) UpdateActivity(activity models.Activity) error {
	if s.store == nil {
		return fmt.Errorf("storage not loaded")
	}

	if _, ok := s.store.Activities[activity.ID]; !ok {
		return fmt.Errorf("activity not found: %s", activity.ID)
	}

	s.store.Activities[activity.ID] = activity
	return s.save()
}

func (s *JSONStore) DeleteActivity(id string) error {
	if s.store == nil {
		return fmt.Errorf("storage not loaded")
	}

	activity, ok := s.store.Activities[id]
	if !ok {
		return fmt.Errorf("activity not found: %s", id)
	}
	if activity.DeletedAt != nil {
		return fmt.Errorf("activity with id %s is already deleted", id)
	}

	now := time.Now().UTC().Format(time.RFC3339)
	activity.DeletedAt = &now
	s.store.Activities[id] = activity
	return s.save()
}

func (s *JSONStore) RestoreActivity(id string) error {
	if s.store == nil {
		return fmt.Errorf("storage not loaded")
	}

	activity, ok := s.store.Activities[id]
	if !ok {
		return fmt.Errorf("activity not found: %s", id)
	}
	if activity.DeletedAt == nil {
		return fmt.Errorf("cannot restore an activity that is not deleted: %s", id)
	}

	activity.DeletedAt = nil
	s.store.Activities[id] = activity
	return s.save()
}

func (s *JSONStore) AddAppointment(appt models.Appointment) error {
	if s.store == nil {
		return fmt.Errorf("storage not loaded")
	}

	s.store.Appointments[appt.ID] = appt
	return s.save()
}

func (s *JSONStore) GetAppointment(id string) (models.Appointment, error) {
	if s.store == nil {
		return models.Appointment{}, fmt.Errorf("storage not loaded")
	}

	appt, ok := s.store.Appointments[id]
	if !ok || appt.DeletedAt != nil {
		return models.Appointment{}, fmt.Errorf("appointment not found: %s", id)
	}

	return appt, nil
}

func (s *JSONStore) GetAllAppointments() ([]models.Appointment, error) {
	if s.store == nil {
		return nil, fmt.Errorf("storage not loaded")
	}

	appts := make([]models.Appointment, 0, len(s.store.Appointments))
	for _, appt := range s.store.Appointments {
		if appt.DeletedAt == nil {
			appts = append(appts, appt)
		}
	}

	sort.Slice(appts, func(i, j int) bool {
		if appts[i].Date != appts[j].Date {
			return appts[i].Date < appts[j].Date
		}
		if appts[i].Time != appts[j].Time {
			return appts[i].Time < appts[j].Time
		}
		return appts[i].ID < appts[j].ID
	})

	return appts, nil
}

func (s *JSONStore) DeleteAppointment(id string) error {
	if s.store == nil {
		return fmt.Errorf("storage not loaded")
	}

	appt, ok := s.store.Appointments[id]
	if !ok {
		return fmt.Errorf("appointment not found: %s", id)
	}
	if appt.DeletedAt != nil {
		return fmt.Errorf("appointment with id %s is already deleted", id)
	}

	now := time.Now().UTC().Format(time.RFC3339)
	appt.DeletedAt = &now
	s.store.Appointments[id] = appt
	return s.save()
}

func (s *JSONStore) SavePlan(plan models.WeeklyPlan) error {
	if s.store == nil {
		return fmt.Errorf("storage not loaded")
	}

	if plan.DeletedAt != nil {
		return fmt.Errorf("cannot save a deleted plan: %s", plan.WeekStart)
	}

	s.store.Plans[plan.WeekStart] = plan
	return s.save()
}

func (s *JSONStore) GetPlan(weekStart string) (models.WeeklyPlan, error) {
	if s.store == nil {
		return models.WeeklyPlan{}, fmt.Errorf("storage not loaded")
	}

	plan, ok := s.store.Plans[weekStart]
	if !ok || plan.DeletedAt != nil {
		return models.WeeklyPlan{}, fmt.Errorf("no plan found for week: %s", weekStart)
	}

	return plan, nil
}

func (s *JSONStore) DeletePlan(weekStart string) error {
	if s.store == nil {
		return fmt.Errorf("storage not loaded")
	}

	plan, ok := s.store.Plans[weekStart]
	if !ok {
		return fmt.Errorf("plan not found for week: %s", weekStart)
	}

	now := time.Now().UTC().Format(time.RFC3339)
	plan.DeletedAt = &now
	s.store.Plans[weekStart] = plan
	return s.save()
}

// GetConfigPath returns the path to the underlying storage file.
//
// Concurrency note:
//   - JSONStore is not safe for concurrent use by multiple goroutines without
//     external synchronization.
//   - Running multiple weekfit processes that share the same storage path at
//     the same time is not supported and may lead to data loss.
func (s *JSONStore) GetConfigPath() string {
	return s.path
}
