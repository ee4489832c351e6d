package tui

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"

	"github.com/julianstephens/pharmtrack/internal/constants"
)

var tabTitles = []string{"Day", "Calendar", "Courses", "Packages", "Settings"}

func (m Model) View() string {
	if m.quitting {
		return ""
	}

	var content string

	switch m.state {
	case constants.StateDay:
		content = docStyle.Render(m.dayModel.View())
	case constants.StateCalendar:
		content = docStyle.Render(m.calendarModel.View())
	case constants.StateCourses:
		content = docStyle.Render(m.coursesModel.View())
	case constants.StatePackages:
		content = docStyle.Render(m.packagesModel.View())
	case constants.StateSettings:
		content = docStyle.Render(m.settingsModel.View())
	case constants.StateEditSettings:
		content = m.form.View()
	case constants.StateConfirmDelete:
		content = m.viewConfirmDelete()
	}

	var status []string
	if m.validationWarning != "" && m.state != constants.StateEditSettings {
		status = append(status, bannerStyle.Render(m.validationWarning))
	}
	if m.formError != "" {
		status = append(status, errorStyle.Render(m.formError))
	}

	parts := []string{m.viewTabs()}
	parts = append(parts, status...)
	parts = append(parts, content, m.help.View(m))
	return lipgloss.JoinVertical(lipgloss.Left, parts...)
}

func (m Model) viewTabs() string {
	active := m.state
	switch active {
	case constants.StateEditSettings:
		active = constants.StateSettings
	case constants.StateConfirmDelete:
		active = constants.StateCourses
		if m.toDelete != nil && m.toDelete.kind == "package" {
			active = constants.StatePackages
		}
	}

	var tabs []string
	for i, title := range tabTitles {
		if active == constants.SessionState(i) {
			tabs = append(tabs, activeTabStyle.Render(title))
		} else {
			tabs = append(tabs, inactiveTabStyle.Render(title))
		}
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, tabs...)
}

func (m Model) viewConfirmDelete() string {
	question := "Are you sure you want to delete this record?"
	if m.toDelete != nil {
		question = fmt.Sprintf("Delete %s %q?", m.toDelete.kind, m.toDelete.name)
	}
	return lipgloss.Place(m.width, max(m.height-4, 0),
		lipgloss.Center, lipgloss.Center,
		lipgloss.JoinVertical(lipgloss.Center,
			dangerStyle.Render(question),
			"Its intake history is kept and it can be restored later.",
			"",
			"[y] Yes",
			"[n] No",
		),
	)
}
