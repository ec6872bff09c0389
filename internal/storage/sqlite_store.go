package storage

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/julianstephens/weekfit/internal/models"
	_ "modernc.org/sqlite"
)

const schema = `
CREATE TABLE IF NOT EXISTS settings (
	key   TEXT PRIMARY KEY,
	value TEXT NOT NULL
);

CREATE TABLE IF NOT EXISTS activities (
	id             TEXT PRIMARY KEY,
	name           TEXT NOT NULL,
	location       TEXT,
	description    TEXT,
	duration_min   INTEGER NOT NULL,
	intensity      TEXT NOT NULL,
	dependencies   TEXT,
	preferred_time TEXT,
	preferred_days TEXT,
	created_at     TEXT NOT NULL,
	deleted_at     TEXT
);

CREATE TABLE IF NOT EXISTS appointments (
	id           TEXT PRIMARY KEY,
	title        TEXT NOT NULL,
	description  TEXT,
	type         TEXT NOT NULL,
	date         TEXT NOT NULL,
	time         TEXT,
	duration_min INTEGER NOT NULL,
	repeats_on   TEXT,
	created_at   TEXT NOT NULL,
	deleted_at   TEXT
);

CREATE TABLE IF NOT EXISTS plans (
	week_start   TEXT PRIMARY KEY,
	generated_by TEXT NOT NULL,
	days         TEXT NOT NULL,
	created_at   TEXT NOT NULL,
	deleted_at   TEXT
);
`

type SQLiteStore struct {
	path string
	db   *sql.DB
}

func NewSQLiteStore(path string) *SQLiteStore {
	return &SQLiteStore{
		path: path,
	}
}

func (s *SQLiteStore) Init() error {
	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0700); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	db, err := sql.Open("sqlite", s.path)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	s.db = db

	if _, err := s.db.Exec(schema); err != nil {
		return fmt.Errorf("failed to create schema: %w", err)
	}

	if _, err := s.GetSettings(); err != nil {
		if err := s.SaveSettings(DefaultSettings()); err != nil {
			return fmt.Errorf("failed to save default settings: %w", err)
		}
	}

	return nil
}

func (s *SQLiteStore) Load() error {
	if s.db != nil {
		return nil
	}

	if _, err := os.Stat(s.path); os.IsNotExist(err) {
		return fmt.Errorf("storage not initialized, run 'weekfit init' first")
	}

	db, err := sql.Open("sqlite", s.path)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	s.db = db

	return nil
}

func (s *SQLiteStore) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

func (s *SQLiteStore) GetSettings() (Settings, error) {
	rows, err := s.db.Query("SELECT key, value FROM settings")
	if err != nil {
		return Settings{}, err
	}
	defer rows.Close()

	settings := Settings{}
	count := 0
	for rows.Next() {
		var key, value string
		if err := rows.Scan(&key, &value); err != nil {
			return Settings{}, err
		}
		switch key {
		case "unit":
			settings.Unit = value
		case "allow_multiple_per_day":
			settings.AllowMultiplePerDay = value == "true"
		case "ai_model":
			settings.AIModel = value
		}
		count++
	}

	if count == 0 {
		return Settings{}, fmt.Errorf("settings not found")
	}

	return settings, nil
}

func (s *SQLiteStore) SaveSettings(settings Settings) error {
	tx, err := s.db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	stmt, err := tx.Prepare("INSERT OR REPLACE INTO settings (key, value) VALUES (?, ?)")
	if err != nil {
		return err
	}
	defer stmt.Close()

	if _, err := stmt.Exec("unit", settings.Unit); err != nil {
		return err
	}
	if _, err := stmt.Exec("allow_multiple_per_day", strconv.FormatBool(settings.AllowMultiplePerDay)); err != nil {
		return err
	}
	if _, err := stmt.Exec("ai_model", settings.AIModel); err != nil {
		return err
	}

	return tx.Commit()
}

func (s *SQLiteStore) AddActivity(activity models.Activity) error {
	return s.upsertActivity(activity)
}

func (s *SQLiteStore) UpdateActivity(activity models.Activity) error {
	var exists int
	err := s.db.QueryRow("SELECT COUNT(*) FROM activities WHERE id = ?", activity.ID).Scan(&exists)
	if err != nil {
		return err
	}
	if exists == 0 {
		return fmt.Errorf("activity not found: %s", activity.ID)
	}
	return s.upsertActivity(activity)
}

func (s *SQLiteStore) upsertActivity(activity models.Activity) error {
	depsJSON, err := json.Marshal(activity.Dependencies)
	if err != nil {
		return fmt.Errorf("failed to marshal dependencies: %w", err)
	}
	daysJSON, err := json.Marshal(activity.PreferredDays)
	if err != nil {
		return fmt.Errorf("failed to marshal preferred days: %w", err)
	}

	var deletedAt sql.NullString
	if activity.DeletedAt != nil {
		deletedAt = sql.NullString{String: *activity.DeletedAt, Valid: true}
	}

	_, err = s.db.Exec(`
		INSERT OR REPLACE INTO activities (
			id, name, location, description, duration_min, intensity,
			dependencies, preferred_time, preferred_days, created_at, deleted_at
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		activity.ID, activity.Name, activity.Location, activity.Description, activity.DurationMin, activity.Intensity,
		string(depsJSON), activity.PreferredTime, string(daysJSON), activity.CreatedAt, deletedAt,
	)
	return err
}

func scanActivity(scan func(dest ...any) error) (models.Activity, error) {
	var a models.Activity
	var deps, days, intensity, preferredTime string
	var deletedAt sql.NullString

	err := scan(
		&a.ID, &a.Name, &a.Location, &a.Description, &a.DurationMin, &intensity,
		&deps, &preferredTime, &days, &a.CreatedAt, &deletedAt,
	)
	if err != nil {
		return models.Activity{}, err
	}

	a.Intensity = models.Intensity(intensity)
	a.PreferredTime = models.TimeOfDay(preferredTime)
	if deletedAt.Valid {
		a.DeletedAt = &deletedAt.String
	}
	if deps != "" {
		if err := json.Unmarshal([]byte(deps), &a.Dependencies); err != nil {
			return models.Activity{}, fmt.Errorf("failed to unmarshal dependencies: %w", err)
		}
	}
	if days != "" {
		var weekdays []int
		if err := json.Unmarshal([]byte(days), &weekdays); err == nil {
			for _, w := range weekdays {
				a.PreferredDays = append(a.PreferredDays, time.Weekday(w))
			}
		}
	}

	return a, nil
}

const activityColumns = `id, name, location, description, duration_min, intensity,
	dependencies, preferred_time, preferred_days, created_at, deleted_at`

func (s *SQLiteStore) GetActivity(id string) (models.Activity, error) {
	row := s.db.QueryRow(
		"SELECT "+activityColumns+" FROM activities WHERE id = ? AND deleted_at IS NULL", id)
	activity, err := scanActivity(row.Scan)
	if err != nil {
		if err == sql.ErrNoRows {
			return models.Activity{}, fmt.Errorf("activity not found: %s", id)
		}
		return models.Activity{}, err
	}
	return activity, nil
}

func (s *SQLiteStore) GetAllActivities() ([]models.Activity, error) {
	rows, err := s.db.Query(
		"SELECT " + activityColumns + " FROM activities WHERE deleted_at IS NULL ORDER BY created_at")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var activities []models.Activity
	for rows.Next() {
		activity, err := scanActivity(rows.Scan)
		if err != nil {
			return nil, err
		}
		activities = append(activities, activity)
	}

	return activities, rows.Err()
}

func (s *SQLiteStore) DeleteActivity(id string) error {
	return s.softDelete("activities", "activity", id)
}

func (s *SQLiteStore) RestoreActivity(id string) error {
	var deletedAt sql.NullString
	err := s.db.QueryRow("SELECT deleted_at FROM activities WHERE id = ?", id).Scan(&deletedAt)
	if err != nil {
		if err == sql.ErrNoRows {
			return fmt.Errorf("activity not found: %s", id)
		}
		return fmt.Errorf("failed to check activity existence: %w", err)
	}

	if !deletedAt.Valid {
		return fmt.Errorf("cannot restore an activity that is not deleted: %s", id)
	}

	_, err = s.db.Exec("UPDATE activities SET deleted_at = NULL WHERE id = ?", id)
	return err
}

func (s *SQLiteStore) softDelete(table, noun, id string) error {
	var deletedAt sql.NullString
	err := s.db.QueryRow("SELECT deleted_at FROM "+table+" WHERE id = ?", id).Scan(&deletedAt)
	if err != nil {
		if err == sql.ErrNoRows {
			return fmt.Errorf("%s with id %s not found", noun, id)
		}
		return fmt.Errorf("failed to check %s existence: %w", noun, err)
	}

	if deletedAt.Valid {
		return fmt.Errorf("%s with id %s is already deleted", noun, id)
	}

	now := time.Now().UTC().Format(time.RFC3339)
	_, err = s.db.Exec("UPDATE "+table+" SET deleted_at = ? WHERE id = ?", now, id)
	return err
}

func (s *SQLiteStore) AddAppointment(appt models.Appointment) error {
	repeatsJSON, err := json.Marshal(appt.RepeatsOn)
	if err != nil {
		return fmt.Errorf("failed to marshal repeat weekdays: %w", err)
	}

	var deletedAt sql.NullString
	if appt.DeletedAt != nil {
		deletedAt = sql.NullString{String: *appt.DeletedAt, Valid: true}
	}

	_, err = s.db.Exec(`
		INSERT OR REPLACE INTO appointments (
			id, title, description, type, date, time, duration_min, repeats_on, created_at, deleted_at
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		appt.ID, appt.Title, appt.Description, appt.Type, appt.Date, appt.Time,
		appt.DurationMin, string(repeatsJSON), appt.CreatedAt, deletedAt,
	)
	return err
}

func scanAppointment(scan func(dest ...any) error) (models.Appointment, error) {
	var a models.Appointment
	var apptType, repeats string
	var deletedAt sql.NullString

	err := scan(
		&a.ID, &a.Title, &a.Description, &apptType, &a.Date, &a.Time,
		&a.DurationMin, &repeats, &a.CreatedAt, &deletedAt,
	)
	if err != nil {
		return models.Appointment{}, err
	}

	a.Type = models.AppointmentType(apptType)
	if deletedAt.Valid {
		a.DeletedAt = &deletedAt.String
	}
	if repeats != "" {
		var weekdays []int
		if err := json.Unmarshal([]byte(repeats), &weekdays); err == nil {
			for _, w := range weekdays {
				a.RepeatsOn = append(a.RepeatsOn, time.Weekday(w))
			}
		}
	}

	return a, nil
}

const appointmentColumns = `id, title, description, type, date, time, duration_min, repeats_on, created_at, deleted_at`

func (s *SQLiteStore) GetAppointment(id string) (models.Appointment, error) {
	row := s.db.QueryRow(
		"SELECT "+appointmentColumns+" FROM appointments WHERE id = ? AND deleted_at IS NULL", id)
	appt, err := scanAppointment(row.Scan)
	if err != nil {
		if err == sql.ErrNoRows {
			return models.Appointment{}, fmt.Errorf("appointment not found: %s", id)
		}
		return models.Appointment{}, err
	}
	return appt, nil
}

func (s *SQLiteStore) GetAllAppointments() ([]models.Appointment, error) {
	rows, err := s.db.Query(
		"SELECT " + appointmentColumns + " FROM appointments WHERE deleted_at IS NULL ORDER BY date, time")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var appts []models.Appointment
	for rows.Next() {
		appt, err := scanAppointment(rows.Scan)
		if err != nil {
			return nil, err
		}
		appts = append(appts, appt)
	}

	return appts, rows.Err()
}

func (s *SQLiteStore) DeleteAppointment(id string) error {
	return s.softDelete("appointments", "appointment", id)
}

func (s *SQLiteStore) SavePlan(plan models.WeeklyPlan) error {
	if plan.DeletedAt != nil {
		return fmt.Errorf("cannot save a deleted plan: %s", plan.WeekStart)
	}

	daysJSON, err := json.Marshal(plan.Days)
	if err != nil {
		return fmt.Errorf("failed to marshal plan days: %w", err)
	}

	_, err = s.db.Exec(
		"INSERT OR REPLACE INTO plans (week_start, generated_by, days, created_at, deleted_at) VALUES (?, ?, ?, ?, NULL)",
		plan.WeekStart, plan.GeneratedBy, string(daysJSON), plan.CreatedAt,
	)
	return err
}

func (s *SQLiteStore) GetPlan(weekStart string) (models.WeeklyPlan, error) {
	var plan models.WeeklyPlan
	var days string
	err := s.db.QueryRow(
		"SELECT week_start, generated_by, days, created_at FROM plans WHERE week_start = ? AND deleted_at IS NULL",
		weekStart,
	).Scan(&plan.WeekStart, &plan.GeneratedBy, &days, &plan.CreatedAt)
	if err != nil {
		if err == sql.ErrNoRows {
			return models.WeeklyPlan{}, fmt.Errorf("no plan found for week: %s", weekStart)
		}
		return models.WeeklyPlan{}, err
	}

	if err := json.Unmarshal([]byte(days), &plan.Days); err != nil {
		return models.WeeklyPlan{}, fmt.Errorf("failed to unmarshal plan days: %w", err)
	}

	return plan, nil
}

func (s *SQLiteStore) DeletePlan(weekStart string) error {
	var deletedAt sql.NullString
	err := s.db.QueryRow("SELECT deleted_at FROM plans WHERE week_start = ?", weekStart).Scan(&deletedAt)
	if err != nil {
		if err == sql.ErrNoRows {
			return fmt.Errorf("plan not found for week: %s", weekStart)
		}
		return err
	}
	if deletedAt.Valid {
		return fmt.Errorf("plan for week %s is already deleted", weekStart)
	}

	now := time.Now().UTC().Format(time.RFC3339)
	_, err = s.db.Exec("UPDATE plans SET deleted_at = ? WHERE week_start = ?", now, weekStart)
	return err
}

func (s *SQLiteStore) GetConfigPath() string {
	return s.path
}
