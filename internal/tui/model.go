package tui

import (
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"

	"rutero/internal/engine"
	"rutero/internal/tui/components/routelist"
)

type SessionState int

const (
	StateRoute SessionState = iota
	StatePickDay
	StateFinish
)

type FinishFormModel struct {
	Observations string
}

type Model struct {
	eng   *engine.Engine
	state SessionState
	keys  KeyMap
	help  help.Model

	routeList routelist.Model
	view      engine.DayView

	form       *huh.Form
	finishForm *FinishFormModel
	pickKey    string // occurrence awaiting a target day
	pickDay    string

	statusMsg string
	errMsg    string
	quitting  bool
	width     int
	height    int
}

func NewModel(eng *engine.Engine) Model {
	m := Model{
		eng:       eng,
		state:     StateRoute,
		keys:      DefaultKeyMap(),
		help:      help.New(),
		routeList: routelist.New(nil, 0, 0),
	}
	m.refresh()
	return m
}

// refresh rebuilds the day view after any engine mutation; the engine owns
// the state, the model only mirrors it.
func (m *Model) refresh() {
	m.view = m.eng.View(m.eng.Day())
	m.routeList.SetStops(m.view.Pending)
}

func (m Model) ShortHelp() []key.Binding {
	keys := []key.Binding{m.keys.Tab, m.keys.Quit, m.keys.Help}
	if m.state == StateRoute {
		keys = append(keys, m.keys.Enter, m.keys.Skip, m.keys.Postpone)
	}
	return keys
}

func (m Model) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{m.keys.Tab, m.keys.ShiftTab, m.keys.Quit, m.keys.Help},
		{m.keys.Up, m.keys.Down, m.keys.Enter, m.keys.Skip, m.keys.Postpone},
		{m.keys.Begin, m.keys.Finish, m.keys.Commit},
	}
}

func (m Model) Init() tea.Cmd {
	return nil
}
