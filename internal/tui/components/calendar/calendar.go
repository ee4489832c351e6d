package calendar

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/julianstephens/pharmtrack/internal/constants"
	"github.com/julianstephens/pharmtrack/internal/ledger"
	"github.com/julianstephens/pharmtrack/internal/tui/state"
	"github.com/julianstephens/pharmtrack/internal/utils"
)

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("205")).
			Width(28).
			Align(lipgloss.Center)

	weekdayStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("240"))

	cellStyle = lipgloss.NewStyle().Width(4).Align(lipgloss.Right)

	doneStyle     = cellStyle.Foreground(lipgloss.Color("42"))
	pendingStyle  = cellStyle.Foreground(lipgloss.Color("214")).Bold(true)
	selectedStyle = lipgloss.NewStyle().Reverse(true)
	todayStyle    = lipgloss.NewStyle().Underline(true)

	legendStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("240")).
			Italic(true).
			MarginTop(1)
)

var weekdays = []string{"Mo", "Tu", "We", "Th", "Fr", "Sa", "Su"}

type Model struct {
	view   state.ViewState
	days   []ledger.DayStatus
	width  int
	height int
}

func New(width, height int) Model {
	return Model{width: width, height: height}
}

// SetMonth replaces the month shown; days must be the statuses of view.Month.
func (m *Model) SetMonth(view state.ViewState, days []ledger.DayStatus) {
	m.view = view
	m.days = days
}

// Days returns the statuses last set with SetMonth.
func (m Model) Days() []ledger.DayStatus {
	return m.days
}

func (m *Model) SetSize(width, height int) {
	m.width = width
	m.height = height
}

func (m Model) View() string {
	return Render(m.view, m.days)
}

// Render draws a Monday-first month grid. Days with outstanding intakes end
// in "!", fully taken days in "*"; the cursor is shown reversed.
func Render(view state.ViewState, days []ledger.DayStatus) string {
	var b strings.Builder
	b.WriteString(titleStyle.Render(view.Month.Format("January 2006")) + "\n")

	header := make([]string, len(weekdays))
	for i, wd := range weekdays {
		header[i] = fmt.Sprintf("%4s", wd)
	}
	b.WriteString(weekdayStyle.Render(strings.Join(header, "")) + "\n")

	col := 0
	if len(days) > 0 {
		col = utils.MondayIndex(days[0].Date.Weekday())
	}
	b.WriteString(strings.Repeat("    ", col))

	for _, d := range days {
		b.WriteString(cell(view, d))
		col++
		if col == 7 {
			b.WriteString("\n")
			col = 0
		}
	}
	if col != 0 {
		b.WriteString("\n")
	}

	b.WriteString(legendStyle.Render("* all taken  ! intakes remaining"))
	return b.String()
}

func cell(view state.ViewState, d ledger.DayStatus) string {
	label := fmt.Sprintf("%d", d.Date.Day())
	style := cellStyle
	switch d.Status {
	case constants.StatusDone:
		label += "*"
		style = doneStyle
	case constants.StatusPending:
		label += "!"
		style = pendingStyle
	default:
		label += " "
	}
	if view.IsToday(d.Date) {
		style = style.Inherit(todayStyle)
	}
	if d.Date.Equal(view.Selected) {
		style = style.Inherit(selectedStyle)
	}
	return style.Render(label)
}
