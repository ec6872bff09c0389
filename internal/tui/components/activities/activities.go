package activities

import (
	"fmt"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/julianstephens/weekfit/internal/models"
)

type AddActivityMsg struct{}

type DeleteActivityMsg struct {
	ID string
}

type Item struct {
	Activity models.Activity
}

func (i Item) Title() string { return i.Activity.Name }

func (i Item) Description() string {
	desc := fmt.Sprintf("%d min | %s", i.Activity.DurationMin, i.Activity.Intensity)
	if i.Activity.PreferredTime != "" && i.Activity.PreferredTime != models.TimeAny {
		desc += " | " + string(i.Activity.PreferredTime)
	}
	if i.Activity.RequiresGoodWeather() {
		desc += " | good weather"
	}
	return desc
}

func (i Item) FilterValue() string { return i.Activity.Name }

type KeyMap struct {
	Add    key.Binding
	Delete key.Binding
}

func DefaultKeyMap() KeyMap {
	return KeyMap{
		Add: key.NewBinding(
			key.WithKeys("a"),
			key.WithHelp("a", "add"),
		),
		Delete: key.NewBinding(
			key.WithKeys("d"),
			key.WithHelp("d", "delete"),
		),
	}
}

type Model struct {
	list list.Model
	keys KeyMap
}

func New(acts []models.Activity, width, height int) Model {
	items := make([]list.Item, len(acts))
	for i, a := range acts {
		items[i] = Item{Activity: a}
	}

	l := list.New(items, list.NewDefaultDelegate(), width, height)
	l.Title = "Activities"
	l.SetShowTitle(false)
	l.SetShowHelp(false) // Help is rendered globally by the main model

	keys := DefaultKeyMap()
	l.AdditionalShortHelpKeys = func() []key.Binding {
		return []key.Binding{keys.Add, keys.Delete}
	}
	l.AdditionalFullHelpKeys = func() []key.Binding {
		return []key.Binding{keys.Add, keys.Delete}
	}

	return Model{list: l, keys: keys}
}

func (m *Model) SetActivities(acts []models.Activity) {
	items := make([]list.Item, len(acts))
	for i, a := range acts {
		items[i] = Item{Activity: a}
	}
	m.list.SetItems(items)
}

func (m Model) Selected() (models.Activity, bool) {
	if i, ok := m.list.SelectedItem().(Item); ok {
		return i.Activity, true
	}
	return models.Activity{}, false
}

func (m Model) Init() tea.Cmd {
	return nil
}

func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		if m.list.FilterState() == list.Filtering {
			break
		}
		switch {
		case key.Matches(msg, m.keys.Add):
			return m, func() tea.Msg { return AddActivityMsg{} }
		case key.Matches(msg, m.keys.Delete):
			if i, ok := m.list.SelectedItem().(Item); ok {
				return m, func() tea.Msg { return DeleteActivityMsg{ID: i.Activity.ID} }
			}
		}
	}

	m.list, cmd = m.list.Update(msg)
	return m, cmd
}

func (m Model) View() string {
	if len(m.list.Items()) == 0 && m.list.FilterState() != list.Filtering {
		return "\n  No activities yet.\n  Press 'a' to add one."
	}
	return m.list.View()
}

func (m *Model) SetSize(width, height int) {
	m.list.SetSize(width, height)
}
