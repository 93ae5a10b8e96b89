package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"rutero/internal/models"
)

func (m Model) View() string {
	if m.quitting {
		return ""
	}

	if m.state == StatePickDay || m.state == StateFinish {
		return docStyle.Render(m.form.View())
	}

	ui := lipgloss.JoinVertical(
		lipgloss.Left,
		m.viewTabs(),
		m.viewHeader(),
		m.routeList.View(),
		m.viewSections(),
		m.viewStatus(),
		m.help.View(m),
	)
	return ui
}

func (m Model) viewTabs() string {
	today := m.eng.TodayWeekday()
	var tabs []string
	for _, day := range models.Weekdays {
		title := string(day)[:3]
		switch {
		case day == m.eng.Day():
			tabs = append(tabs, activeTabStyle.Render(title))
		case day == today:
			tabs = append(tabs, todayTabStyle.Render(title))
		default:
			tabs = append(tabs, inactiveTabStyle.Render(title))
		}
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, tabs...)
}

func (m Model) viewHeader() string {
	period := m.eng.Period()
	label := m.view.Date
	if label == "" {
		label = string(m.view.Day)
	}
	header := fmt.Sprintf("%s · period %d, week %d", label, period.Number, period.Week)
	if len(m.view.Pending) > 0 {
		header += fmt.Sprintf(" · %.1f km", m.view.TotalKm)
	}
	session := m.eng.Session()
	if session.Finished {
		header += fmt.Sprintf(" · finished %s–%s", session.Start, session.End)
	} else if session.Open() {
		header += " · on route since " + session.Start
	}
	return summaryStyle.Render(header)
}

func (m Model) viewSections() string {
	var b strings.Builder
	if n := len(m.view.Completed); n > 0 {
		fmt.Fprintf(&b, "✓ %d completed", n)
	}
	if n := len(m.view.Skipped); n > 0 {
		if b.Len() > 0 {
			b.WriteString("  ")
		}
		fmt.Fprintf(&b, "− %d skipped", n)
	}
	if n := len(m.view.Postponed); n > 0 {
		if b.Len() > 0 {
			b.WriteString("  ")
		}
		fmt.Fprintf(&b, "→ %d postponed", n)
	}
	if n := len(m.eng.PendingReschedules()); n > 0 {
		if b.Len() > 0 {
			b.WriteString("  ")
		}
		fmt.Fprintf(&b, "⧗ %d uncommitted reschedule(s)", n)
	}
	if b.Len() == 0 {
		return ""
	}
	return summaryStyle.Render(b.String())
}

func (m Model) viewStatus() string {
	if m.errMsg != "" {
		return errorStyle.Render("✗ " + m.errMsg)
	}
	if m.statusMsg != "" {
		return statusStyle.Render(m.statusMsg)
	}
	return ""
}
