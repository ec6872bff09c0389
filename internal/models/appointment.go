package models

import (
	"strings"
	"time"
)

type AppointmentType string

const (
	AppointmentWork     AppointmentType = "work"
	AppointmentSchool   AppointmentType = "school"
	AppointmentMedical  AppointmentType = "medical"
	AppointmentPersonal AppointmentType = "personal"
	AppointmentSocial   AppointmentType = "social"
	AppointmentOther    AppointmentType = "other"
)

func (t AppointmentType) Valid() bool {
	switch t {
	case AppointmentWork, AppointmentSchool, AppointmentMedical,
		AppointmentPersonal, AppointmentSocial, AppointmentOther:
		return true
	default:
		return false
	}
}

// Appointment is a fixed, non-negotiable commitment. The scheduler never
// assigns an activity that overlaps one.
type Appointment struct {
	ID          string          `json:"id"`
	Title       string          `json:"title"`
	Description string          `json:"description,omitempty"`
	Type        AppointmentType `json:"type"`
	Date        string          `json:"date"`           // YYYY-MM-DD
	Time        string          `json:"time,omitempty"` // HH:MM, empty for all-day
	DurationMin int             `json:"duration_min"`
	RepeatsOn   []time.Weekday  `json:"repeats_on,omitempty"` // empty = one-off
	CreatedAt   string          `json:"created_at"` // RFC3339 timestamp
	DeletedAt   *string         `json:"deleted_at,omitempty"` // RFC3339 timestamp
}

// AllDay reports whether the appointment has no start time.
func (a Appointment) AllDay() bool {
	return a.Time == ""
}

var appointmentKeywords = []struct {
	typ   AppointmentType
	words []string
}{
	{AppointmentWork, []string{"work", "meeting", "call", "standup", "sync"}},
	{AppointmentSchool, []string{"class", "lecture", "study", "exam", "school"}},
	{AppointmentMedical, []string{"doctor", "dentist", "appointment", "checkup", "medical"}},
	{AppointmentSocial, []string{"dinner", "lunch", "coffee", "party", "hangout"}},
}

// InferAppointmentType guesses an appointment type from its title.
// Used when importing calendar events that carry no type information.
func InferAppointmentType(title string) AppointmentType {
	lower := strings.ToLower(title)
	for _, group := range appointmentKeywords {
		for _, word := range group.words {
			if strings.Contains(lower, word) {
				return group.typ
			}
		}
	}
	return AppointmentOther
}
