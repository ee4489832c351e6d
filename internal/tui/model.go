package tui

import (
	"fmt"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"

	"github.com/julianstephens/pharmtrack/internal/cli"
	"github.com/julianstephens/pharmtrack/internal/constants"
	"github.com/julianstephens/pharmtrack/internal/ledger"
	"github.com/julianstephens/pharmtrack/internal/logger"
	"github.com/julianstephens/pharmtrack/internal/models"
	"github.com/julianstephens/pharmtrack/internal/scheduler"
	"github.com/julianstephens/pharmtrack/internal/storage"
	"github.com/julianstephens/pharmtrack/internal/tui/components/calendar"
	"github.com/julianstephens/pharmtrack/internal/tui/components/courses"
	"github.com/julianstephens/pharmtrack/internal/tui/components/day"
	"github.com/julianstephens/pharmtrack/internal/tui/components/packages"
	"github.com/julianstephens/pharmtrack/internal/tui/components/settings"
	"github.com/julianstephens/pharmtrack/internal/tui/state"
	"github.com/julianstephens/pharmtrack/internal/utils"
	"github.com/julianstephens/pharmtrack/internal/validation"
)

// deleteTarget is the record awaiting confirmation in StateConfirmDelete.
type deleteTarget struct {
	kind string // "course" or "package"
	id   string
	name string
}

type Model struct {
	ctx           *cli.Context
	timezone      string
	state         constants.SessionState
	view          state.ViewState
	keys          KeyMap
	help          help.Model
	dayModel      day.Model
	calendarModel calendar.Model
	coursesModel  courses.Model
	packagesModel packages.Model
	settingsModel settings.Model
	form          *huh.Form
	settingsForm  *SettingsFormModel
	toDelete      *deleteTarget
	quitting      bool
	width         int
	height        int

	validationWarning   string
	validationConflicts []validation.Conflict
	formError           string // error of the last form or store operation
}

// dateCheckMsg fires periodically so the view follows midnight in the configured timezone.
type dateCheckMsg time.Time

func NewModel(store storage.Provider, sched *scheduler.Scheduler) Model {
	ctx := &cli.Context{Store: store, Scheduler: sched}

	current, err := ctx.Settings()
	if err != nil {
		current = models.DefaultSettings()
	}

	m := Model{
		ctx:           ctx,
		timezone:      current.Timezone,
		state:         constants.StateDay,
		view:          state.New(today(current.Timezone)),
		keys:          DefaultKeyMap(),
		help:          help.New(),
		dayModel:      day.New(0, 0),
		calendarModel: calendar.New(0, 0),
		coursesModel:  courses.New(0, 0),
		packagesModel: packages.New(0, 0),
		settingsModel: settings.New(current, 0, 0),
	}
	if err != nil {
		m.formError = err.Error()
	}

	m.refresh()
	m.updateValidationStatus()
	return m
}

// today falls back to the system date when the timezone cannot be resolved.
func today(timezone string) time.Time {
	day, err := utils.ResolveDay("today", timezone)
	if err != nil {
		logger.Warn("Falling back to local date", "timezone", timezone, "error", err)
		return utils.CivilDate(time.Now())
	}
	return day
}

func checkDate() tea.Cmd {
	return tea.Tick(time.Minute, func(t time.Time) tea.Msg { return dateCheckMsg(t) })
}

func (m Model) ShortHelp() []key.Binding {
	keys := []key.Binding{m.keys.Tab, m.keys.Quit, m.keys.Help}
	switch m.state {
	case constants.StateDay:
		keys = append(keys, m.keys.Left, m.keys.Right, m.keys.Toggle, m.keys.Today)
	case constants.StateCalendar:
		keys = append(keys, m.keys.PrevMonth, m.keys.NextMonth, m.keys.Enter, m.keys.Today)
	}
	return keys
}

func (m Model) FullHelp() [][]key.Binding {
	global := []key.Binding{m.keys.Tab, m.keys.ShiftTab, m.keys.Quit, m.keys.Help}
	navigation := []key.Binding{m.keys.Up, m.keys.Down, m.keys.Left, m.keys.Right}

	var actions []key.Binding
	switch m.state {
	case constants.StateDay:
		actions = []key.Binding{m.keys.Toggle, m.keys.Today}
	case constants.StateCalendar:
		actions = []key.Binding{m.keys.PrevMonth, m.keys.NextMonth, m.keys.Enter, m.keys.Today}
	}

	return [][]key.Binding{global, navigation, actions}
}

func (m Model) Init() tea.Cmd {
	return checkDate()
}

// refresh reloads everything the tabs show from the store.
func (m *Model) refresh() {
	if err := m.refreshDay(); err != nil {
		m.formError = err.Error()
		return
	}
	if err := m.refreshMonth(); err != nil {
		m.formError = err.Error()
		return
	}

	allCourses, err := m.ctx.Store.GetAllCoursesIncludingDeleted()
	if err != nil {
		m.formError = fmt.Sprintf("failed to get courses: %v", err)
		return
	}
	m.coursesModel.SetCourses(allCourses, m.view.Today)

	allPackages, err := m.ctx.Store.GetAllPackagesIncludingDeleted()
	if err != nil {
		m.formError = fmt.Sprintf("failed to get packages: %v", err)
		return
	}
	m.packagesModel.SetPackages(allPackages)
}

func (m *Model) refreshDay() error {
	entries, err := m.ctx.Day(m.view.ViewDate)
	if err != nil {
		return err
	}
	m.dayModel.SetEntries(m.view, entries)
	return nil
}

func (m *Model) refreshMonth() error {
	liveCourses, err := m.ctx.Store.GetAllCourses()
	if err != nil {
		return fmt.Errorf("failed to get courses: %w", err)
	}
	livePackages, err := m.ctx.Store.GetAllPackages()
	if err != nil {
		return fmt.Errorf("failed to get packages: %w", err)
	}
	first, last := ledger.MonthRange(m.view.Month)
	records, err := m.ctx.Store.GetIntakesInRange(first, last)
	if err != nil {
		return fmt.Errorf("failed to get intakes: %w", err)
	}
	days := ledger.Month(m.ctx.Scheduler, m.view.Month, liveCourses, livePackages, records)
	m.calendarModel.SetMonth(m.view, days)
	return nil
}

// setView moves the date cursor and redraws the day and month it touches.
func (m *Model) setView(v state.ViewState) {
	monthChanged := !v.Month.Equal(m.view.Month)
	m.view = v
	if err := m.refreshDay(); err != nil {
		m.formError = err.Error()
		return
	}
	if monthChanged {
		if err := m.refreshMonth(); err != nil {
			m.formError = err.Error()
			return
		}
	} else {
		m.calendarModel.SetMonth(m.view, m.calendarModel.Days())
	}
}

// updateValidationStatus runs validation and updates the warning message
func (m *Model) updateValidationStatus() {
	pkgs, err := m.ctx.Store.GetAllPackagesIncludingDeleted()
	if err != nil {
		m.validationWarning = "⚠ Validation unavailable"
		m.validationConflicts = nil
		return
	}
	allCourses, err := m.ctx.Store.GetAllCoursesIncludingDeleted()
	if err != nil {
		m.validationWarning = "⚠ Validation unavailable"
		m.validationConflicts = nil
		return
	}
	intakes, err := m.ctx.Store.GetAllIntakes()
	if err != nil {
		m.validationWarning = "⚠ Validation unavailable"
		m.validationConflicts = nil
		return
	}

	result := validation.New().Validate(pkgs, allCourses, intakes)
	m.validationConflicts = result.Conflicts
	if result.HasConflicts() {
		m.validationWarning = fmt.Sprintf("⚠ %d validation warning(s), run 'pharmtrack validate'", len(result.Conflicts))
	} else {
		m.validationWarning = ""
	}
}
