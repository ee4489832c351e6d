package settings

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/julianstephens/pharmtrack/internal/models"
)

type EditSettingsMsg struct{}

type Model struct {
	settings models.Settings
	width    int
	height   int
}

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("205")).
			MarginBottom(1)

	labelStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("240")).
			Width(25)

	valueStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("255")).
			Bold(true)

	sectionStyle = lipgloss.NewStyle().
			MarginTop(1).
			MarginBottom(1)
)

func New(settings models.Settings, width, height int) Model {
	return Model{
		settings: settings,
		width:    width,
		height:   height,
	}
}

func (m *Model) SetSettings(settings models.Settings) {
	m.settings = settings
}

func (m Model) Init() tea.Cmd {
	return nil
}

func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "e":
			return m, func() tea.Msg { return EditSettingsMsg{} }
		}
	}
	return m, nil
}

func row(label, value string) string {
	return fmt.Sprintf("%s %s", labelStyle.Render(label), valueStyle.Render(value))
}

func (m Model) View() string {
	if m.width == 0 {
		return ""
	}

	repeat := "off"
	if m.settings.RepeatInterval > 0 {
		repeat = fmt.Sprintf("every %d min", m.settings.RepeatInterval)
	}

	general := sectionStyle.Render(titleStyle.Render("General") + "\n" +
		row("Timezone:", m.settings.Timezone))

	reminders := sectionStyle.Render(titleStyle.Render("Reminders") + "\n" + lipgloss.JoinVertical(
		lipgloss.Left,
		row("Enabled:", fmt.Sprintf("%t", m.settings.NotificationsEnabled)),
		row("Default Time:", m.settings.DefaultTime),
		row("Repeat:", repeat),
	))

	helpText := lipgloss.NewStyle().
		Foreground(lipgloss.Color("240")).
		Italic(true).
		MarginTop(2).
		Render("Press 'e' to edit settings")

	content := lipgloss.JoinVertical(lipgloss.Left, general, reminders, helpText)

	return lipgloss.Place(
		m.width,
		m.height,
		lipgloss.Left,
		lipgloss.Top,
		lipgloss.NewStyle().Padding(2, 4).Render(content),
	)
}

func (m *Model) SetSize(width, height int) {
	m.width = width
	m.height = height
}
