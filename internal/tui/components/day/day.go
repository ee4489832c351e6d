package day

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/julianstephens/pharmtrack/internal/ledger"
	"github.com/julianstephens/pharmtrack/internal/models"
	"github.com/julianstephens/pharmtrack/internal/tui/state"
	"github.com/julianstephens/pharmtrack/internal/utils"
)

var (
	headerStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("205"))

	timeStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("241")).
			Width(7)

	slotStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("241")).
			Width(11)

	nameStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("252")).
			Bold(true)

	takenStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("42")).
			Strikethrough(true)

	detailStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("240")).
			Italic(true)

	cursorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("205")).
			Bold(true)
)

// ToggleIntakeMsg asks the parent to flip the taken state of an entry.
type ToggleIntakeMsg struct {
	Entry models.DayEntry
}

type KeyMap struct {
	Up     key.Binding
	Down   key.Binding
	Toggle key.Binding
}

func DefaultKeyMap() KeyMap {
	return KeyMap{
		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("↑/k", "up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("↓/j", "down"),
		),
		Toggle: key.NewBinding(
			key.WithKeys(" ", "x", "enter"),
			key.WithHelp("space", "take/untake"),
		),
	}
}

type Model struct {
	viewport viewport.Model
	keys     KeyMap
	view     state.ViewState
	entries  []models.DayEntry
	cursor   int
}

func New(width, height int) Model {
	return Model{
		viewport: viewport.New(width, height),
		keys:     DefaultKeyMap(),
	}
}

func (m Model) Init() tea.Cmd {
	return nil
}

func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok {
		switch {
		case key.Matches(msg, m.keys.Up):
			if m.cursor > 0 {
				m.cursor--
				m.render()
			}
			return m, nil
		case key.Matches(msg, m.keys.Down):
			if m.cursor < len(m.entries)-1 {
				m.cursor++
				m.render()
			}
			return m, nil
		case key.Matches(msg, m.keys.Toggle):
			if e, ok := m.Selected(); ok {
				return m, func() tea.Msg { return ToggleIntakeMsg{Entry: e} }
			}
			return m, nil
		}
	}

	var cmd tea.Cmd
	m.viewport, cmd = m.viewport.Update(msg)
	return m, cmd
}

func (m Model) View() string {
	return m.viewport.View()
}

func (m *Model) SetSize(width, height int) {
	m.viewport.Width = width
	m.viewport.Height = height
	m.render()
}

// SetEntries replaces the day shown. The cursor stays on the same row when it still exists.
func (m *Model) SetEntries(view state.ViewState, entries []models.DayEntry) {
	if !view.ViewDate.Equal(m.view.ViewDate) {
		m.cursor = 0
	}
	m.view = view
	m.entries = entries
	if m.cursor >= len(entries) {
		m.cursor = max(len(entries)-1, 0)
	}
	m.render()
}

// Selected returns the entry under the cursor.
func (m Model) Selected() (models.DayEntry, bool) {
	if m.cursor < 0 || m.cursor >= len(m.entries) {
		return models.DayEntry{}, false
	}
	return m.entries[m.cursor], true
}

func (m *Model) render() {
	m.viewport.SetContent(Render(m.view, m.entries, m.cursor))
}

// Render draws the intake list of view.ViewDate with the cursor on row cursor.
func Render(view state.ViewState, entries []models.DayEntry, cursor int) string {
	var b strings.Builder

	title := fmt.Sprintf("%s, %s", view.ViewDate.Weekday(), utils.FormatDate(view.ViewDate))
	if view.IsToday(view.ViewDate) {
		title += " (today)"
	}
	b.WriteString(headerStyle.Render(title) + "\n")

	s := ledger.Summarize(entries)
	if s.Planned == 0 {
		b.WriteString("\nNo intakes scheduled.\n")
		return b.String()
	}
	b.WriteString(detailStyle.Render(fmt.Sprintf("Planned %d · Taken %d · Remaining %d", s.Planned, s.Taken, s.Remaining)) + "\n\n")

	for i, e := range entries {
		pointer := "  "
		if i == cursor {
			pointer = cursorStyle.Render("> ")
		}
		check := "[ ]"
		name := nameStyle.Render(e.CourseName)
		if e.Taken {
			check = "[x]"
			name = takenStyle.Render(e.CourseName)
		}

		details := utils.FormatDecimal(e.Dose)
		if info := strings.TrimSpace(e.DosageInfo + " " + e.PackageType); info != "" {
			details += " × " + info
		}
		if e.MealLabel != "" {
			details += ", " + e.MealLabel
		}

		fmt.Fprintf(&b, "%s%s %s%s%s %s\n",
			pointer,
			check,
			timeStyle.Render(e.Time),
			slotStyle.Render(e.TimeLabel),
			name,
			detailStyle.Render(details),
		)
	}
	return b.String()
}
