package tui

import (
	"context"
	"fmt"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"

	"rutero/internal/engine"
	"rutero/internal/models"
	"rutero/internal/tui/components/routelist"
)

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	if m.state == StatePickDay || m.state == StateFinish {
		if msg, ok := msg.(tea.KeyMsg); ok && msg.Type == tea.KeyEsc {
			m.state = StateRoute
			return m, nil
		}

		form, cmd := m.form.Update(msg)
		if f, ok := form.(*huh.Form); ok {
			m.form = f
		}
		cmds = append(cmds, cmd)

		switch m.form.State {
		case huh.StateCompleted:
			if m.state == StatePickDay {
				m.completePickDay()
			} else {
				m.completeFinish()
			}
			m.state = StateRoute
		case huh.StateAborted:
			m.state = StateRoute
		}
		return m, tea.Batch(cmds...)
	}

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		m.routeList.SetSize(msg.Width-4, msg.Height-10)

	case routelist.CompleteMsg:
		m.act("completed", m.eng.Complete(context.Background(), msg.Key, engine.VisitDetails{}))
		return m, nil

	case routelist.SkipMsg:
		m.act("skipped", m.eng.Skip(context.Background(), msg.Key, engine.VisitDetails{}))
		return m, nil

	case routelist.PostponeMsg:
		if err := m.eng.Postpone(context.Background(), msg.Key); err != nil {
			m.errMsg = err.Error()
			return m, nil
		}
		m.errMsg = ""
		m.refresh()
		return m.openPickDay(msg.Key), nil

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			m.quitting = true
			return m, tea.Quit
		case key.Matches(msg, m.keys.Help):
			m.help.ShowAll = !m.help.ShowAll
			return m, nil
		case key.Matches(msg, m.keys.Tab):
			m.cycleDay(1)
			return m, nil
		case key.Matches(msg, m.keys.ShiftTab):
			m.cycleDay(-1)
			return m, nil
		case key.Matches(msg, m.keys.Begin):
			if err := m.eng.StartRoute(); err != nil {
				m.errMsg = err.Error()
			} else {
				m.errMsg = ""
				m.statusMsg = "Route started at " + m.eng.Session().Start
			}
			return m, nil
		case key.Matches(msg, m.keys.Finish):
			return m.openFinish(), nil
		case key.Matches(msg, m.keys.Commit):
			n, err := m.eng.CommitPendingReschedules(context.Background())
			if err != nil {
				m.errMsg = err.Error()
			} else if n > 0 {
				m.errMsg = ""
				m.statusMsg = fmt.Sprintf("Committed %d reschedule(s)", n)
				m.refresh()
			}
			return m, nil
		}
	}

	var cmd tea.Cmd
	m.routeList, cmd = m.routeList.Update(msg)
	cmds = append(cmds, cmd)
	return m, tea.Batch(cmds...)
}

// act records the outcome of a visit transition and refreshes the mirror.
func (m *Model) act(verb string, err error) {
	if err != nil {
		m.errMsg = err.Error()
		return
	}
	m.errMsg = ""
	m.statusMsg = "Visit " + verb
	m.refresh()
}

func (m *Model) cycleDay(step int) {
	days := models.Weekdays
	current := 0
	for i, day := range days {
		if day == m.eng.Day() {
			current = i
			break
		}
	}
	next := (current + step + len(days)) % len(days)
	if err := m.eng.SelectDay(days[next]); err != nil {
		m.errMsg = err.Error()
		return
	}
	m.errMsg = ""
	m.refresh()
}

func (m Model) openPickDay(key string) Model {
	options := make([]huh.Option[string], len(models.Weekdays))
	for i, day := range models.Weekdays {
		options[i] = huh.NewOption(string(day), string(day))
	}

	m.pickKey = key
	m.pickDay = string(models.Weekdays[0])
	m.form = huh.NewForm(huh.NewGroup(
		huh.NewSelect[string]().
			Title("Move visit to which day?").
			Options(options...).
			Value(&m.pickDay),
	))
	m.state = StatePickDay
	return m
}

func (m *Model) completePickDay() {
	err := m.eng.ChooseTargetDay(context.Background(), m.pickKey, models.Weekday(m.pickDay))
	if err != nil {
		m.errMsg = err.Error()
		return
	}
	m.errMsg = ""
	if len(m.eng.PendingReschedules()) > 0 {
		m.statusMsg = "Reschedule queued; press 'c' to commit"
	} else {
		m.statusMsg = "Visit rescheduled to " + m.pickDay
	}
	m.refresh()
}

func (m Model) openFinish() Model {
	m.finishForm = &FinishFormModel{}
	m.form = huh.NewForm(huh.NewGroup(
		huh.NewText().
			Title("Observations").
			Description("Anything worth remembering about today's route?").
			Value(&m.finishForm.Observations),
	))
	m.state = StateFinish
	return m
}

func (m *Model) completeFinish() {
	summary, err := m.eng.FinishRoute(context.Background(), m.finishForm.Observations)
	if err != nil {
		m.errMsg = err.Error()
		return
	}
	m.errMsg = ""
	m.statusMsg = fmt.Sprintf("Route finished: %.1f km, %d completed, %d skipped",
		summary.DistanceKM, summary.Completed, summary.Skipped)
	m.refresh()
}
