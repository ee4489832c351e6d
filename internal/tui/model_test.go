package tui

import (
	"errors"
	"path/filepath"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/julianstephens/pharmtrack/internal/constants"
	"github.com/julianstephens/pharmtrack/internal/models"
	"github.com/julianstephens/pharmtrack/internal/scheduler"
	"github.com/julianstephens/pharmtrack/internal/storage"
	"github.com/julianstephens/pharmtrack/internal/storage/sqlite"
	"github.com/julianstephens/pharmtrack/internal/tui/components/courses"
	"github.com/julianstephens/pharmtrack/internal/tui/components/day"
	"github.com/julianstephens/pharmtrack/internal/tui/state"
)

var march1 = time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)

func setupTestModel(t *testing.T) (Model, *sqlite.Store) {
	dbPath := filepath.Join(t.TempDir(), "test.db")

	store := sqlite.NewStore(dbPath)
	if err := store.Init(); err != nil {
		t.Fatalf("failed to init store: %v", err)
	}
	t.Cleanup(func() {
		if err := store.Close(); err != nil {
			t.Errorf("failed to close store: %v", err)
		}
	})

	dose := 1.0
	course := models.Course{
		ID:            "c1",
		CourseName:    "Omega-3",
		StartDate:     "2024-03-01",
		IsActive:      true,
		IntervalDays:  1,
		Schedule:      models.Schedule{Morning: true, Evening: true},
		DosePerIntake: &dose,
	}
	if err := store.AddCourse(course); err != nil {
		t.Fatalf("failed to add course: %v", err)
	}

	m := NewModel(store, scheduler.New())
	m.setView(state.New(march1))
	return m, store
}

func send(t *testing.T, m Model, msg tea.Msg) (Model, tea.Cmd) {
	t.Helper()
	next, cmd := m.Update(msg)
	updated, ok := next.(Model)
	if !ok {
		t.Fatalf("Update returned %T, want Model", next)
	}
	return updated, cmd
}

func runes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func TestNewModel(t *testing.T) {
	m, _ := setupTestModel(t)

	if m.state != constants.StateDay {
		t.Errorf("initial state = %v, want StateDay", m.state)
	}
	if m.formError != "" {
		t.Errorf("unexpected error: %s", m.formError)
	}
	if m.validationWarning != "" {
		t.Errorf("unexpected validation warning: %s", m.validationWarning)
	}
	if e, ok := m.dayModel.Selected(); !ok || e.CourseID != "c1" {
		t.Errorf("day tab selection = %+v, %v", e, ok)
	}
	if days := m.calendarModel.Days(); len(days) != 31 {
		t.Errorf("calendar has %d days, want 31", len(days))
	}
}

func TestTabCycling(t *testing.T) {
	m, _ := setupTestModel(t)

	for i := 0; i < tabCount; i++ {
		m, _ = send(t, m, tea.KeyMsg{Type: tea.KeyTab})
	}
	if m.state != constants.StateDay {
		t.Errorf("after a full cycle state = %v, want StateDay", m.state)
	}

	m, _ = send(t, m, tea.KeyMsg{Type: tea.KeyShiftTab})
	if m.state != constants.StateSettings {
		t.Errorf("shift+tab from Day = %v, want StateSettings", m.state)
	}
}

func TestDayNavigation(t *testing.T) {
	m, _ := setupTestModel(t)

	m, _ = send(t, m, runes("l"))
	if !m.view.ViewDate.Equal(march1.AddDate(0, 0, 1)) {
		t.Errorf("ViewDate = %v, want 2024-03-02", m.view.ViewDate)
	}
	m, _ = send(t, m, runes("h"))
	m, _ = send(t, m, runes("h"))
	if !m.view.ViewDate.Equal(march1.AddDate(0, 0, -1)) {
		t.Errorf("ViewDate = %v, want 2024-02-29", m.view.ViewDate)
	}
	if _, ok := m.dayModel.Selected(); ok {
		t.Error("no intakes expected before the course starts")
	}
}

func TestToggleIntake(t *testing.T) {
	m, store := setupTestModel(t)

	entry, ok := m.dayModel.Selected()
	if !ok {
		t.Fatal("expected an entry on 2024-03-01")
	}
	m, _ = send(t, m, day.ToggleIntakeMsg{Entry: entry})
	if m.formError != "" {
		t.Fatalf("toggle failed: %s", m.formError)
	}

	records, err := store.GetIntakesForDate("2024-03-01")
	if err != nil {
		t.Fatalf("failed to get intakes: %v", err)
	}
	if len(records) != 1 || records[0].ID != "c1_2024-03-01_morning" || !records[0].Taken {
		t.Fatalf("records = %+v", records)
	}
	if got, _ := m.dayModel.Selected(); !got.Taken {
		t.Error("day tab did not pick up the taken state")
	}
	if status := m.calendarModel.Days()[0].Status; status != constants.StatusPending {
		t.Errorf("calendar status for 03-01 = %s, want pending", status)
	}

	entry, _ = m.dayModel.Selected()
	m, _ = send(t, m, day.ToggleIntakeMsg{Entry: entry})
	if got, _ := m.dayModel.Selected(); got.Taken {
		t.Error("second toggle should untake the intake")
	}
}

func TestCalendarEnterOpensDay(t *testing.T) {
	m, _ := setupTestModel(t)
	m.state = constants.StateCalendar

	m, _ = send(t, m, tea.KeyMsg{Type: tea.KeyRight})
	m, _ = send(t, m, tea.KeyMsg{Type: tea.KeyDown})
	want := march1.AddDate(0, 0, 8)
	if !m.view.Selected.Equal(want) {
		t.Fatalf("Selected = %v, want %v", m.view.Selected, want)
	}

	m, _ = send(t, m, runes("]"))
	if m.view.Month.Month() != time.April {
		t.Errorf("Month = %v, want April", m.view.Month)
	}
	m, _ = send(t, m, runes("["))

	m, _ = send(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	if m.state != constants.StateDay {
		t.Errorf("state = %v, want StateDay", m.state)
	}
	if !m.view.ViewDate.Equal(want) {
		t.Errorf("ViewDate = %v, want %v", m.view.ViewDate, want)
	}
}

func TestConfirmDelete(t *testing.T) {
	m, store := setupTestModel(t)
	m.state = constants.StateCourses

	m, _ = send(t, m, courses.DeleteCourseMsg{ID: "c1"})
	if m.state != constants.StateConfirmDelete {
		t.Fatalf("state = %v, want StateConfirmDelete", m.state)
	}
	m, _ = send(t, m, runes("n"))
	if m.state != constants.StateCourses {
		t.Errorf("state after cancel = %v, want StateCourses", m.state)
	}
	if _, err := store.GetCourse("c1"); err != nil {
		t.Fatalf("course deleted despite cancel: %v", err)
	}

	m, _ = send(t, m, courses.DeleteCourseMsg{ID: "c1"})
	m, _ = send(t, m, runes("y"))
	if _, err := store.GetCourse("c1"); !errors.Is(err, storage.ErrNotFound) {
		t.Errorf("GetCourse after delete error = %v, want ErrNotFound", err)
	}
	if _, ok := m.dayModel.Selected(); ok {
		t.Error("deleted course still shows on the day tab")
	}

	m, _ = send(t, m, courses.RestoreCourseMsg{ID: "c1"})
	if _, ok := m.dayModel.Selected(); !ok {
		t.Error("restored course is missing from the day tab")
	}
}

func TestToggleCourse(t *testing.T) {
	m, store := setupTestModel(t)

	m, _ = send(t, m, courses.ToggleActiveMsg{ID: "c1"})
	course, err := store.GetCourse("c1")
	if err != nil {
		t.Fatalf("failed to get course: %v", err)
	}
	if course.IsActive {
		t.Error("course should be paused")
	}
	if _, ok := m.dayModel.Selected(); ok {
		t.Error("paused course still shows on the day tab")
	}
}

func TestSettingsFormModel(t *testing.T) {
	tests := []struct {
		name    string
		form    SettingsFormModel
		wantErr bool
	}{
		{name: "valid", form: SettingsFormModel{DefaultTime: "09:00", RepeatInterval: " 15 ", Timezone: "UTC"}},
		{name: "bad interval", form: SettingsFormModel{DefaultTime: "09:00", RepeatInterval: "often"}, wantErr: true},
		{name: "negative interval", form: SettingsFormModel{DefaultTime: "09:00", RepeatInterval: "-5"}, wantErr: true},
		{name: "bad time", form: SettingsFormModel{DefaultTime: "9am", RepeatInterval: "0"}, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := tt.form.Settings()
			if (err != nil) != tt.wantErr {
				t.Fatalf("Settings() error = %v, wantErr %v", err, tt.wantErr)
			}
			if !tt.wantErr && got.RepeatInterval != 15 {
				t.Errorf("RepeatInterval = %d, want 15", got.RepeatInterval)
			}
		})
	}
}
