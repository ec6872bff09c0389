package models

// CalendarEventRef is the external calendar's view of an event: the unit the
// sync engine creates on export and deduplicates against on import.
type CalendarEventRef struct {
	ID          string `json:"id,omitempty"`
	Title       string `json:"title"`
	Date        string `json:"date"`           // YYYY-MM-DD
	Time        string `json:"time,omitempty"` // HH:MM, empty for all-day
	DurationMin int    `json:"duration_min"`
	AllDay      bool   `json:"all_day"`
	Description string `json:"description,omitempty"`
	Exported    bool   `json:"exported,omitempty"` // true when the event was created by a weekfit export
}
