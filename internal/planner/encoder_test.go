package planner

import (
	"strings"
	"testing"

	"github.com/julianstephens/weekfit/internal/models"
)

func TestEncodeInstructions_Deterministic(t *testing.T) {
	req := testRequest(t, func(in *Input) {
		score := 72
		in.Readiness = &models.ReadinessSnapshot{ReadinessScore: &score, Source: models.SourceManual}
		in.Instructions = "prefer outdoor activities"
	})

	first := EncodeInstructions(req)
	second := EncodeInstructions(req)
	if first != second {
		t.Error("encoding the same request twice should produce identical text")
	}
}

func TestEncodeInstructions_ContainsWeekDates(t *testing.T) {
	req := testRequest(t, nil)
	prompt := EncodeInstructions(req)

	for _, date := range req.Dates() {
		if !strings.Contains(prompt, date) {
			t.Errorf("prompt missing date %s", date)
		}
	}
}

func TestEncodeInstructions_ReadinessCap(t *testing.T) {
	req := testRequest(t, func(in *Input) {
		score := 40
		in.Readiness = &models.ReadinessSnapshot{ReadinessScore: &score, Source: models.SourceOura}
	})
	prompt := EncodeInstructions(req)

	if !strings.Contains(prompt, "Readiness score: 40") {
		t.Error("prompt should state the readiness score")
	}
	if !strings.Contains(prompt, "above medium intensity") {
		t.Error("low readiness should add a medium-intensity cap directive")
	}
}

func TestEncodeInstructions_SleepScoreIncluded(t *testing.T) {
	req := testRequest(t, func(in *Input) {
		readiness, sleep := 70, 55
		in.Readiness = &models.ReadinessSnapshot{
			ReadinessScore: &readiness,
			SleepScore:     &sleep,
			Source:         models.SourceManual,
		}
	})
	prompt := EncodeInstructions(req)

	if !strings.Contains(prompt, "Sleep score: 55") {
		t.Error("prompt should state the sleep score")
	}
	if !strings.Contains(prompt, "moderate sleep quality") {
		t.Error("a mid-range sleep score should be labeled moderate")
	}
}

func TestEncodeInstructions_SleepScoreWithoutReadiness(t *testing.T) {
	req := testRequest(t, func(in *Input) {
		sleep := 25
		in.Readiness = &models.ReadinessSnapshot{SleepScore: &sleep, Source: models.SourceFitbit}
	})
	prompt := EncodeInstructions(req)

	if !strings.Contains(prompt, "Sleep score: 25") {
		t.Error("sleep score should appear even when no readiness score was supplied")
	}
	if !strings.Contains(prompt, "poor sleep quality") {
		t.Error("a low sleep score should be labeled poor")
	}
}

func TestEncodeInstructions_FreeTextIncluded(t *testing.T) {
	req := testRequest(t, func(in *Input) {
		in.Instructions = "no swimming on Wednesday"
	})

	if !strings.Contains(EncodeInstructions(req), "no swimming on Wednesday") {
		t.Error("user instructions should appear verbatim in the prompt")
	}
}

func TestEncodeInstructions_SingleVsMultiple(t *testing.T) {
	single := EncodeInstructions(testRequest(t, nil))
	if !strings.Contains(single, "at most one activity per day") {
		t.Error("single mode should ask for at most one activity per day")
	}

	multiple := EncodeInstructions(testRequest(t, func(in *Input) { in.AllowMultiplePerDay = true }))
	if !strings.Contains(multiple, "up to three activities per day") {
		t.Error("multiple mode should allow up to three activities per day")
	}
}
