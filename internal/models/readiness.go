package models

type ReadinessSource string

const (
	SourceNone   ReadinessSource = "none"
	SourceManual ReadinessSource = "manual"
	SourceFitbit ReadinessSource = "fitbit"
	SourceOura   ReadinessSource = "oura"
)

// ReadinessSnapshot captures the user's physiological recovery state for the
// first day of the planning week. Either score may be absent.
type ReadinessSnapshot struct {
	ReadinessScore *int            `json:"readiness_score,omitempty"` // 0-100
	SleepScore     *int            `json:"sleep_score,omitempty"`     // 0-100
	Source         ReadinessSource `json:"source"`
}

// IntensityCeiling derives the maximum activity intensity the snapshot
// permits. A nil snapshot or missing readiness score defaults to High;
// readiness below 60 caps at Medium, 60-80 at High, above 80 lifts the cap.
func (r *ReadinessSnapshot) IntensityCeiling() Intensity {
	if r == nil || r.ReadinessScore == nil {
		return IntensityHigh
	}
	score := *r.ReadinessScore
	switch {
	case score < 60:
		return IntensityMedium
	case score <= 80:
		return IntensityHigh
	default:
		return IntensityVeryHigh
	}
}
