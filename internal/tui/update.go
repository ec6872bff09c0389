package tui

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"

	"github.com/julianstephens/weekfit/internal/tui/components/activities"
)

const tabCount = 2

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		m.weekModel.SetSize(msg.Width-4, msg.Height-6)
		m.activityList.SetSize(msg.Width-4, msg.Height-6)

	case activities.AddActivityMsg:
		m.activityForm = &ActivityFormModel{Duration: "60"}
		m.form = newActivityForm(m.activityForm)
		m.state = StateAdding
		return m, m.form.Init()

	case activities.DeleteActivityMsg:
		m.activityToDeleteID = msg.ID
		m.state = StateConfirmDelete
		return m, nil
	}

	switch m.state {
	case StateAdding:
		return m.updateAdding(msg)
	case StateConfirmDelete:
		return m.updateConfirmDelete(msg)
	}

	if msg, ok := msg.(tea.KeyMsg); ok {
		switch {
		case key.Matches(msg, m.keys.Quit):
			m.quitting = true
			return m, tea.Quit
		case key.Matches(msg, m.keys.Tab):
			m.state = (m.state + 1) % tabCount
			return m, nil
		case key.Matches(msg, m.keys.ShiftTab):
			m.state = (m.state - 1 + tabCount) % tabCount
			return m, nil
		case key.Matches(msg, m.keys.Help):
			m.help.ShowAll = !m.help.ShowAll
			return m, nil
		}
	}

	var cmd tea.Cmd
	switch m.state {
	case StateWeek:
		m.weekModel, cmd = m.weekModel.Update(msg)
	case StateActivities:
		m.activityList, cmd = m.activityList.Update(msg)
	}
	return m, cmd
}

func (m Model) updateAdding(msg tea.Msg) (tea.Model, tea.Cmd) {
	form, cmd := m.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		m.form = f
	}

	if m.form.State == huh.StateCompleted {
		_ = m.store.AddActivity(m.activityForm.toActivity())
		m.reloadActivities()
		m.form = nil
		m.activityForm = nil
		m.state = StateActivities
		return m, nil
	}
	if m.form.State == huh.StateAborted {
		m.form = nil
		m.activityForm = nil
		m.state = StateActivities
		return m, nil
	}

	return m, cmd
}

func (m Model) updateConfirmDelete(msg tea.Msg) (tea.Model, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok {
		switch msg.String() {
		case "y", "Y":
			_ = m.store.DeleteActivity(m.activityToDeleteID)
			m.reloadActivities()
			fallthrough
		case "n", "N", "esc", "q":
			m.activityToDeleteID = ""
			m.state = StateActivities
		}
	}
	return m, nil
}
