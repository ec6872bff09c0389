package tui

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/google/uuid"

	"github.com/julianstephens/weekfit/internal/constants"
	"github.com/julianstephens/weekfit/internal/models"
	"github.com/julianstephens/weekfit/internal/storage"
	"github.com/julianstephens/weekfit/internal/tui/components/activities"
	"github.com/julianstephens/weekfit/internal/tui/components/week"
)

type SessionState int

const (
	StateWeek SessionState = iota
	StateActivities
	StateAdding
	StateConfirmDelete
)

type ActivityFormModel struct {
	Name        string
	Duration    string
	Intensity   models.Intensity
	Time        models.TimeOfDay
	GoodWeather bool
}

type Model struct {
	store              storage.Provider
	state              SessionState
	keys               KeyMap
	help               help.Model
	weekModel          week.Model
	activityList       activities.Model
	form               *huh.Form
	activityForm       *ActivityFormModel
	activityToDeleteID string
	quitting           bool
	width              int
	height             int
}

func NewModel(store storage.Provider) Model {
	weekStart := time.Now().Format(constants.DateFormat)
	wm := week.New(0, 0)
	if plan, err := store.GetPlan(weekStart); err == nil {
		wm.SetPlan(plan)
	}

	acts, err := store.GetAllActivities()
	if err != nil {
		acts = []models.Activity{}
	}

	return Model{
		store:        store,
		state:        StateWeek,
		keys:         DefaultKeyMap(),
		help:         help.New(),
		weekModel:    wm,
		activityList: activities.New(acts, 0, 0),
	}
}

func newActivityForm(fm *ActivityFormModel) *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Name").
				Value(&fm.Name).
				Validate(func(s string) error {
					if strings.TrimSpace(s) == "" {
						return fmt.Errorf("name is required")
					}
					return nil
				}),
			huh.NewInput().
				Title("Duration (min)").
				Value(&fm.Duration).
				Validate(func(s string) error {
					i, err := strconv.Atoi(s)
					if err != nil {
						return err
					}
					if i <= 0 {
						return fmt.Errorf("duration must be a positive number of minutes")
					}
					return nil
				}),
			huh.NewSelect[models.Intensity]().
				Title("Intensity").
				Options(
					huh.NewOption("Low", models.IntensityLow),
					huh.NewOption("Medium", models.IntensityMedium),
					huh.NewOption("High", models.IntensityHigh),
					huh.NewOption("Very High", models.IntensityVeryHigh),
				).
				Value(&fm.Intensity),
			huh.NewSelect[models.TimeOfDay]().
				Title("Preferred time").
				Options(
					huh.NewOption("Any", models.TimeAny),
					huh.NewOption("Morning", models.TimeMorning),
					huh.NewOption("Afternoon", models.TimeAfternoon),
					huh.NewOption("Evening", models.TimeEvening),
					huh.NewOption("Night", models.TimeNight),
				).
				Value(&fm.Time),
			huh.NewConfirm().
				Title("Requires good weather").
				Value(&fm.GoodWeather),
		),
	).WithTheme(huh.ThemeDracula())
}

func (fm *ActivityFormModel) toActivity() models.Activity {
	duration, _ := strconv.Atoi(fm.Duration)
	var deps []string
	if fm.GoodWeather {
		deps = append(deps, models.DependencyGoodWeather)
	}
	return models.Activity{
		ID:            uuid.New().String(),
		Name:          strings.TrimSpace(fm.Name),
		DurationMin:   duration,
		Intensity:     fm.Intensity,
		Dependencies:  deps,
		PreferredTime: fm.Time,
		CreatedAt:     time.Now().Format(time.RFC3339),
	}
}

func (m Model) ShortHelp() []key.Binding {
	keys := []key.Binding{m.keys.Tab, m.keys.Quit, m.keys.Help}
	if m.state == StateActivities {
		keys = append(keys, m.keys.Add, m.keys.Delete)
	}
	return keys
}

func (m Model) FullHelp() [][]key.Binding {
	global := []key.Binding{m.keys.Tab, m.keys.ShiftTab, m.keys.Quit, m.keys.Help}
	navigation := []key.Binding{m.keys.Up, m.keys.Down}

	var actions []key.Binding
	if m.state == StateActivities {
		actions = []key.Binding{m.keys.Add, m.keys.Delete}
	}

	return [][]key.Binding{global, navigation, actions}
}

func (m Model) Init() tea.Cmd {
	return nil
}

func (m *Model) reloadActivities() {
	acts, err := m.store.GetAllActivities()
	if err != nil {
		return
	}
	m.activityList.SetActivities(acts)
}
