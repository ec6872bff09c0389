package week

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/julianstephens/weekfit/internal/constants"
	"github.com/julianstephens/weekfit/internal/models"
)

var (
	dayStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("241")).
			Width(16)

	activityStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("252")).
			Bold(true)

	restStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("114")).
			Italic(true)

	detailStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("240")).
			Italic(true)
)

type Model struct {
	viewport viewport.Model
	Plan     *models.WeeklyPlan
	width    int
	height   int
}

func New(width, height int) Model {
	return Model{
		viewport: viewport.New(width, height),
	}
}

func (m Model) Init() tea.Cmd {
	return nil
}

func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	var cmd tea.Cmd
	m.viewport, cmd = m.viewport.Update(msg)
	return m, cmd
}

func (m Model) View() string {
	if m.Plan == nil {
		return "No plan for this week yet. Run 'weekfit plan' to generate one."
	}
	return m.viewport.View()
}

func (m *Model) SetSize(width, height int) {
	m.width = width
	m.height = height
	m.viewport.Width = width
	m.viewport.Height = height
	m.Render()
}

func (m *Model) SetPlan(plan models.WeeklyPlan) {
	m.Plan = &plan
	m.Render()
}

func (m *Model) Render() {
	if m.Plan == nil {
		m.viewport.SetContent("No plan loaded.")
		return
	}

	var b strings.Builder
	for _, day := range m.Plan.Days {
		date, _ := time.Parse(constants.DateFormat, day.Date)
		header := fmt.Sprintf("%s %s", date.Weekday().String()[:3], day.Date)

		if day.Verdict == models.VerdictRest {
			b.WriteString(fmt.Sprintf("%s %s\n", dayStyle.Render(header), restStyle.Render("rest")))
			if day.Rationale != "" {
				b.WriteString(fmt.Sprintf("%s %s\n", dayStyle.Render(""), detailStyle.Render(day.Rationale)))
			}
			continue
		}

		names := make([]string, len(day.Activities))
		for i, a := range day.Activities {
			names[i] = fmt.Sprintf("%s (%s)", a.ActivityName, a.TimeOfDay)
		}
		b.WriteString(fmt.Sprintf("%s %s\n", dayStyle.Render(header), activityStyle.Render(strings.Join(names, ", "))))
		if day.WeatherSummary != "" {
			b.WriteString(fmt.Sprintf("%s %s\n", dayStyle.Render(""), detailStyle.Render(day.WeatherSummary)))
		}
	}
	m.viewport.SetContent(b.String())
}
