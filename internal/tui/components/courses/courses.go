package courses

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/julianstephens/pharmtrack/internal/constants"
	"github.com/julianstephens/pharmtrack/internal/models"
	"github.com/julianstephens/pharmtrack/internal/scheduler"
	"github.com/julianstephens/pharmtrack/internal/utils"
)

type ToggleActiveMsg struct {
	ID string
}

type DeleteCourseMsg struct {
	ID string
}

type RestoreCourseMsg struct {
	ID string
}

type Item struct {
	Course   models.Course
	Forecast scheduler.StockForecast
}

func (i Item) Title() string {
	switch {
	case i.Course.DeletedAt != nil:
		return "👻 " + i.Course.CourseName + " (deleted)"
	case !i.Course.IsActive:
		return i.Course.CourseName + " (paused)"
	}
	return i.Course.CourseName
}

func (i Item) Description() string {
	parts := []string{slotSummary(i.Course.Schedule)}
	if n := i.Course.Interval(); n > 1 {
		parts = append(parts, fmt.Sprintf("every %d days", n))
	} else {
		parts = append(parts, "daily")
	}
	parts = append(parts, dateRange(i.Course))

	if i.Forecast.Known {
		stock := fmt.Sprintf("stock lasts %d days (until %s)", i.Forecast.DaysLeft, i.Forecast.RunsOutOn)
		if i.Forecast.Low {
			stock = "⚠ " + stock
		}
		parts = append(parts, stock)
	}
	if i.Course.DeletedAt != nil {
		parts = append(parts, "can restore with 'r'")
	}
	return strings.Join(parts, " | ")
}

func (i Item) FilterValue() string { return i.Course.CourseName }

func slotSummary(s models.Schedule) string {
	slots := s.Slots()
	if len(slots) == 0 {
		return "no slots"
	}
	labels := make([]string, len(slots))
	for i, slot := range slots {
		labels[i] = constants.SlotLabels[slot]
	}
	return strings.Join(labels, ", ")
}

func dateRange(c models.Course) string {
	if c.OpenEnded() {
		if c.IsLifelong {
			return "from " + c.StartDate + ", lifelong"
		}
		return "from " + c.StartDate
	}
	return c.StartDate + " to " + *c.EndDate
}

type KeyMap struct {
	Toggle  key.Binding
	Delete  key.Binding
	Restore key.Binding
}

func DefaultKeyMap() KeyMap {
	return KeyMap{
		Toggle: key.NewBinding(
			key.WithKeys("p"),
			key.WithHelp("p", "pause/resume"),
		),
		Delete: key.NewBinding(
			key.WithKeys("d"),
			key.WithHelp("d", "delete"),
		),
		Restore: key.NewBinding(
			key.WithKeys("r"),
			key.WithHelp("r", "restore"),
		),
	}
}

type Model struct {
	list list.Model
	keys KeyMap
}

func New(width, height int) Model {
	l := list.New(nil, list.NewDefaultDelegate(), width, height)
	l.Title = "Courses"
	l.SetShowTitle(false)
	l.SetShowHelp(false)

	keys := DefaultKeyMap()
	l.AdditionalShortHelpKeys = func() []key.Binding {
		return []key.Binding{keys.Toggle, keys.Delete, keys.Restore}
	}
	l.AdditionalFullHelpKeys = func() []key.Binding {
		return []key.Binding{keys.Toggle, keys.Delete, keys.Restore}
	}

	return Model{list: l, keys: keys}
}

// SetCourses replaces the list; stock is forecast from today.
func (m *Model) SetCourses(courses []models.Course, today time.Time) {
	m.list.SetItems(Items(courses, today))
}

func Items(courses []models.Course, today time.Time) []list.Item {
	today = utils.CivilDate(today)
	items := make([]list.Item, len(courses))
	for i, c := range courses {
		items[i] = Item{Course: c, Forecast: scheduler.Forecast(c, today)}
	}
	return items
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
		i, ok := m.list.SelectedItem().(Item)
		switch {
		case !ok:
		case key.Matches(msg, m.keys.Toggle):
			if i.Course.DeletedAt == nil {
				return m, func() tea.Msg { return ToggleActiveMsg{ID: i.Course.ID} }
			}
		case key.Matches(msg, m.keys.Delete):
			if i.Course.DeletedAt == nil {
				return m, func() tea.Msg { return DeleteCourseMsg{ID: i.Course.ID} }
			}
		case key.Matches(msg, m.keys.Restore):
			if i.Course.DeletedAt != nil {
				return m, func() tea.Msg { return RestoreCourseMsg{ID: i.Course.ID} }
			}
		}
	}

	m.list, cmd = m.list.Update(msg)
	return m, cmd
}

func (m Model) View() string {
	if len(m.list.Items()) == 0 && m.list.FilterState() != list.Filtering {
		return "\n  No courses yet.\n  Add one with 'pharmtrack course add'."
	}
	return m.list.View()
}

// Filtering reports whether the list is taking filter input.
func (m Model) Filtering() bool {
	return m.list.FilterState() == list.Filtering
}

func (m *Model) SetSize(width, height int) {
	m.list.SetSize(width, height)
}
