package packages

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/julianstephens/pharmtrack/internal/models"
)

type DeletePackageMsg struct {
	ID string
}

type RestorePackageMsg struct {
	ID string
}

type Item struct {
	Package models.Package
}

func (i Item) Title() string {
	if i.Package.DeletedAt != nil {
		return "👻 " + i.Package.Name() + " (deleted)"
	}
	return i.Package.Name()
}

func (i Item) Description() string {
	parts := []string{i.Package.MedicationType}
	if ing := i.Package.ActiveIngredient; ing != "" {
		parts = append(parts, ing)
	}
	parts = append(parts, fmt.Sprintf("%d of %d left", i.Package.Remaining(), i.Package.Quantity))
	if i.Package.DeletedAt != nil {
		parts = append(parts, "can restore with 'r'")
	}
	return strings.Join(parts, " | ")
}

func (i Item) FilterValue() string { return i.Package.Name() }

type KeyMap struct {
	Delete  key.Binding
	Restore key.Binding
}

func DefaultKeyMap() KeyMap {
	return KeyMap{
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
	l.Title = "Packages"
	l.SetShowTitle(false)
	l.SetShowHelp(false)

	keys := DefaultKeyMap()
	l.AdditionalShortHelpKeys = func() []key.Binding {
		return []key.Binding{keys.Delete, keys.Restore}
	}
	l.AdditionalFullHelpKeys = func() []key.Binding {
		return []key.Binding{keys.Delete, keys.Restore}
	}

	return Model{list: l, keys: keys}
}

func (m *Model) SetPackages(pkgs []models.Package) {
	items := make([]list.Item, len(pkgs))
	for i, p := range pkgs {
		items[i] = Item{Package: p}
	}
	m.list.SetItems(items)
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
		switch {
		case key.Matches(msg, m.keys.Delete):
			if i, ok := m.list.SelectedItem().(Item); ok && i.Package.DeletedAt == nil {
				return m, func() tea.Msg { return DeletePackageMsg{ID: i.Package.ID} }
			}
		case key.Matches(msg, m.keys.Restore):
			if i, ok := m.list.SelectedItem().(Item); ok && i.Package.DeletedAt != nil {
				return m, func() tea.Msg { return RestorePackageMsg{ID: i.Package.ID} }
			}
		}
	}

	m.list, cmd = m.list.Update(msg)
	return m, cmd
}

func (m Model) View() string {
	if len(m.list.Items()) == 0 && m.list.FilterState() != list.Filtering {
		return "\n  No packages yet.\n  Add one with 'pharmtrack package add'."
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
