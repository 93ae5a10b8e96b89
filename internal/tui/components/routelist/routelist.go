package routelist

import (
	"fmt"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"

	"rutero/internal/engine"
	"rutero/internal/models"
)

type CompleteMsg struct {
	Key string
}

type SkipMsg struct {
	Key string
}

type PostponeMsg struct {
	Key string
}

type Item struct {
	Stop engine.RouteStop
}

func (i Item) Title() string {
	title := i.Stop.Occurrence.Client.Name
	if i.Stop.Occurrence.Kind != models.KindVisit {
		title = fmt.Sprintf("%s (%s)", title, i.Stop.Occurrence.Kind)
	}
	if i.Stop.Occurrence.Rescheduled {
		title += " ⇄"
	}
	return title
}

func (i Item) Description() string {
	return fmt.Sprintf("%.1f km | every %dw", i.Stop.LegKm, i.Stop.Occurrence.Client.FrequencyWeeks)
}

func (i Item) FilterValue() string { return i.Stop.Occurrence.Client.Name }

type KeyMap struct {
	Complete key.Binding
	Skip     key.Binding
	Postpone key.Binding
}

func DefaultKeyMap() KeyMap {
	return KeyMap{
		Complete: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "complete"),
		),
		Skip: key.NewBinding(
			key.WithKeys("s"),
			key.WithHelp("s", "skip"),
		),
		Postpone: key.NewBinding(
			key.WithKeys("p"),
			key.WithHelp("p", "postpone"),
		),
	}
}

type Model struct {
	list list.Model
	keys KeyMap
}

func New(stops []engine.RouteStop, width, height int) Model {
	l := list.New(toItems(stops), list.NewDefaultDelegate(), width, height)
	l.SetShowTitle(false)
	l.SetShowHelp(false) // We handle help globally in the main model

	keys := DefaultKeyMap()
	l.AdditionalShortHelpKeys = func() []key.Binding {
		return []key.Binding{keys.Complete, keys.Skip, keys.Postpone}
	}
	l.AdditionalFullHelpKeys = func() []key.Binding {
		return []key.Binding{keys.Complete, keys.Skip, keys.Postpone}
	}

	return Model{list: l, keys: keys}
}

func toItems(stops []engine.RouteStop) []list.Item {
	items := make([]list.Item, len(stops))
	for i, stop := range stops {
		items[i] = Item{Stop: stop}
	}
	return items
}

func (m *Model) SetStops(stops []engine.RouteStop) {
	m.list.SetItems(toItems(stops))
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
		case key.Matches(msg, m.keys.Complete):
			if i, ok := m.list.SelectedItem().(Item); ok {
				return m, func() tea.Msg { return CompleteMsg{Key: i.Stop.Occurrence.Key} }
			}
		case key.Matches(msg, m.keys.Skip):
			if i, ok := m.list.SelectedItem().(Item); ok {
				return m, func() tea.Msg { return SkipMsg{Key: i.Stop.Occurrence.Key} }
			}
		case key.Matches(msg, m.keys.Postpone):
			if i, ok := m.list.SelectedItem().(Item); ok {
				return m, func() tea.Msg { return PostponeMsg{Key: i.Stop.Occurrence.Key} }
			}
		}
	}

	m.list, cmd = m.list.Update(msg)
	return m, cmd
}

func (m Model) View() string {
	if len(m.list.Items()) == 0 && m.list.FilterState() != list.Filtering {
		return "\n  No pending visits for this day."
	}
	return m.list.View()
}

func (m *Model) SetSize(width, height int) {
	m.list.SetSize(width, height)
}
