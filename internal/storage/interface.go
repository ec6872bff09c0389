package storage

import "github.com/julianstephens/weekfit/internal/models"

// Settings are the user-tunable defaults kept alongside the data.
type Settings struct {
	Unit                string `json:"unit"`
	AllowMultiplePerDay bool   `json:"allow_multiple_per_day"`
	AIModel             string `json:"ai_model"`
}

// DefaultSettings returns the settings written at init time.
func DefaultSettings() Settings {
	return Settings{
		Unit:                "C",
		AllowMultiplePerDay: false,
		AIModel:             "gemini-2.5-flash",
	}
}

type Provider interface {
	// Lifecycle
	Init() error
	Load() error
	Close() error

	// Settings
	GetSettings() (Settings, error)
	SaveSettings(Settings) error

	// Activities
	AddActivity(models.Activity) error
	GetActivity(id string) (models.Activity, error)
	GetAllActivities() ([]models.Activity, error)
	UpdateActivity(models.Activity) error
	DeleteActivity(id string) error
	RestoreActivity(id string) error

	// Appointments
	AddAppointment(models.Appointment) error
	GetAppointment(id string) (models.Appointment, error)
	GetAllAppointments() ([]models.Appointment, error)
	DeleteAppointment(id string) error

	// Plans
	SavePlan(models.WeeklyPlan) error
	GetPlan(weekStart string) (models.WeeklyPlan, error)
	DeletePlan(weekStart string) error

	// Utils
	GetConfigPath() string
}
