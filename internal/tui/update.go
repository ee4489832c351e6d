package tui

import (
	"fmt"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"

	"github.com/julianstephens/pharmtrack/internal/constants"
	"github.com/julianstephens/pharmtrack/internal/ledger"
	"github.com/julianstephens/pharmtrack/internal/logger"
	"github.com/julianstephens/pharmtrack/internal/tui/components/courses"
	"github.com/julianstephens/pharmtrack/internal/tui/components/day"
	"github.com/julianstephens/pharmtrack/internal/tui/components/packages"
	"github.com/julianstephens/pharmtrack/internal/tui/components/settings"
	"github.com/julianstephens/pharmtrack/internal/tui/state"
)

const tabCount = int(constants.StateSettings) + 1

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch m.state {
	case constants.StateEditSettings:
		return m.updateEditSettings(msg)
	case constants.StateConfirmDelete:
		return m.updateConfirmDelete(msg)
	}

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		w, h := msg.Width-4, msg.Height-6
		m.dayModel.SetSize(w, h)
		m.calendarModel.SetSize(w, h)
		m.coursesModel.SetSize(w, h)
		m.packagesModel.SetSize(w, h)
		m.settingsModel.SetSize(w, h)
		return m, nil

	case dateCheckMsg:
		m.rollDate()
		return m, checkDate()

	case day.ToggleIntakeMsg:
		m.toggleIntake(msg)
		return m, nil

	case courses.ToggleActiveMsg:
		m.toggleCourse(msg.ID)
		return m, nil

	case courses.DeleteCourseMsg:
		course, err := m.ctx.Store.GetCourse(msg.ID)
		if err != nil {
			m.formError = fmt.Sprintf("failed to get course: %v", err)
			return m, nil
		}
		m.toDelete = &deleteTarget{kind: "course", id: course.ID, name: course.CourseName}
		m.state = constants.StateConfirmDelete
		return m, nil

	case courses.RestoreCourseMsg:
		m.afterWrite(m.ctx.Store.RestoreCourse(msg.ID), "failed to restore course")
		return m, nil

	case packages.DeletePackageMsg:
		pkg, err := m.ctx.Store.GetPackage(msg.ID)
		if err != nil {
			m.formError = fmt.Sprintf("failed to get package: %v", err)
			return m, nil
		}
		m.toDelete = &deleteTarget{kind: "package", id: pkg.ID, name: pkg.Name()}
		m.state = constants.StateConfirmDelete
		return m, nil

	case packages.RestorePackageMsg:
		m.afterWrite(m.ctx.Store.RestorePackage(msg.ID), "failed to restore package")
		return m, nil

	case settings.EditSettingsMsg:
		current, err := m.ctx.Settings()
		if err != nil {
			m.formError = err.Error()
			return m, nil
		}
		m.formError = ""
		m.settingsForm = newSettingsFormModel(current)
		m.form = NewSettingsForm(m.settingsForm)
		m.state = constants.StateEditSettings
		return m, m.form.Init()

	case tea.KeyMsg:
		if handled, cmd := m.handleGlobalKeys(msg); handled {
			return m, cmd
		}
		if handled := m.handleDateKeys(msg); handled {
			return m, nil
		}
	}

	return m.updateActive(msg)
}

// updateActive hands a message to the component of the current tab.
func (m Model) updateActive(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	switch m.state {
	case constants.StateDay:
		m.dayModel, cmd = m.dayModel.Update(msg)
	case constants.StateCourses:
		m.coursesModel, cmd = m.coursesModel.Update(msg)
	case constants.StatePackages:
		m.packagesModel, cmd = m.packagesModel.Update(msg)
	case constants.StateSettings:
		m.settingsModel, cmd = m.settingsModel.Update(msg)
	}
	return m, cmd
}

func (m *Model) filtering() bool {
	switch m.state {
	case constants.StateCourses:
		return m.coursesModel.Filtering()
	case constants.StatePackages:
		return m.packagesModel.Filtering()
	}
	return false
}

func (m *Model) handleGlobalKeys(msg tea.KeyMsg) (bool, tea.Cmd) {
	if msg.String() == "ctrl+c" {
		m.quitting = true
		return true, tea.Quit
	}
	if m.filtering() {
		return false, nil
	}

	switch {
	case key.Matches(msg, m.keys.Quit):
		m.quitting = true
		return true, tea.Quit
	case key.Matches(msg, m.keys.Tab):
		m.state = constants.SessionState((int(m.state) + 1) % tabCount)
		return true, nil
	case key.Matches(msg, m.keys.ShiftTab):
		m.state = constants.SessionState((int(m.state) + tabCount - 1) % tabCount)
		return true, nil
	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll
		return true, nil
	}
	return false, nil
}

// handleDateKeys moves the date cursor on the Day and Calendar tabs.
func (m *Model) handleDateKeys(msg tea.KeyMsg) bool {
	switch m.state {
	case constants.StateDay:
		switch {
		case key.Matches(msg, m.keys.Left):
			m.setView(m.view.ShiftDay(-1))
		case key.Matches(msg, m.keys.Right):
			m.setView(m.view.ShiftDay(1))
		case key.Matches(msg, m.keys.Today):
			m.setView(m.view.GoToday())
		default:
			return false
		}
		return true

	case constants.StateCalendar:
		switch {
		case key.Matches(msg, m.keys.Left):
			m.setView(m.view.MoveCursor(-1))
		case key.Matches(msg, m.keys.Right):
			m.setView(m.view.MoveCursor(1))
		case key.Matches(msg, m.keys.Up):
			m.setView(m.view.MoveCursor(-7))
		case key.Matches(msg, m.keys.Down):
			m.setView(m.view.MoveCursor(7))
		case key.Matches(msg, m.keys.PrevMonth):
			m.setView(m.view.ShiftMonth(-1))
		case key.Matches(msg, m.keys.NextMonth):
			m.setView(m.view.ShiftMonth(1))
		case key.Matches(msg, m.keys.Today):
			m.setView(m.view.GoToday())
		case key.Matches(msg, m.keys.Enter):
			m.setView(m.view.Open())
			m.state = constants.StateDay
		default:
			return false
		}
		return true
	}
	return false
}

func (m *Model) toggleIntake(msg day.ToggleIntakeMsg) {
	rec := ledger.NewRecord(msg.Entry.IntakeItem, !msg.Entry.Taken, time.Now())
	if err := m.ctx.Store.SaveIntake(rec); err != nil {
		m.formError = fmt.Sprintf("failed to save intake: %v", err)
		return
	}
	logger.Debug("Intake toggled", "key", rec.ID, "taken", rec.Taken)
	m.formError = ""
	if err := m.refreshDay(); err != nil {
		m.formError = err.Error()
		return
	}
	if err := m.refreshMonth(); err != nil {
		m.formError = err.Error()
	}
}

func (m *Model) toggleCourse(id string) {
	course, err := m.ctx.Store.GetCourse(id)
	if err != nil {
		m.formError = fmt.Sprintf("failed to get course: %v", err)
		return
	}
	course.IsActive = !course.IsActive
	m.afterWrite(m.ctx.Store.UpdateCourse(course), "failed to update course")
}

// afterWrite reports a failed store write or reloads the tabs after a successful one.
func (m *Model) afterWrite(err error, what string) {
	if err != nil {
		m.formError = fmt.Sprintf("%s: %v", what, err)
		return
	}
	m.formError = ""
	m.refresh()
	m.updateValidationStatus()
}

// rollDate follows midnight. A Day tab showing today moves on with it.
func (m *Model) rollDate() {
	now := today(m.timezone)
	if now.Equal(m.view.Today) {
		return
	}
	v := m.view
	if v.ViewDate.Equal(v.Today) {
		v.ViewDate = now
	}
	v.Today = now
	m.setView(v)
}

func (m Model) updateConfirmDelete(msg tea.Msg) (tea.Model, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok || m.toDelete == nil {
		return m, nil
	}

	target := *m.toDelete
	back := constants.StateCourses
	if target.kind == "package" {
		back = constants.StatePackages
	}

	switch keyMsg.String() {
	case "y", "Y":
		m.ctx.PerformAutomaticBackup()
		var err error
		if target.kind == "package" {
			err = m.ctx.Store.DeletePackage(target.id)
		} else {
			err = m.ctx.Store.DeleteCourse(target.id)
		}
		m.afterWrite(err, "failed to delete "+target.kind)
	case "n", "N", "esc", "q":
	default:
		return m, nil
	}

	m.toDelete = nil
	m.state = back
	return m, nil
}

func (m Model) updateEditSettings(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	if msg, ok := msg.(tea.KeyMsg); ok && msg.Type == tea.KeyEsc {
		m.formError = ""
		m.state = constants.StateSettings
		return m, nil
	}

	form, cmd := m.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		m.form = f
	}
	cmds = append(cmds, cmd)

	switch m.form.State {
	case huh.StateCompleted:
		updated, err := m.settingsForm.Settings()
		if err != nil {
			m.formError = err.Error()
			m.form.State = huh.StateNormal
			return m, tea.Batch(cmds...)
		}
		if err := m.ctx.Store.SaveSettings(updated); err != nil {
			m.formError = "Failed to update settings: " + err.Error()
			m.form.State = huh.StateNormal
			return m, tea.Batch(cmds...)
		}

		m.formError = ""
		m.settingsModel.SetSettings(updated)
		if updated.Timezone != m.timezone {
			m.timezone = updated.Timezone
			m.view = state.New(today(updated.Timezone))
			m.refresh()
		}
		m.state = constants.StateSettings
	case huh.StateAborted:
		m.formError = ""
		m.state = constants.StateSettings
	}
	return m, tea.Batch(cmds...)
}
