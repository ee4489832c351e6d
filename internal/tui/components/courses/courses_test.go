package courses

import (
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/julianstephens/pharmtrack/internal/models"
)

func floatPtr(f float64) *float64 { return &f }
func intPtr(i int) *int           { return &i }
func strPtr(s string) *string     { return &s }

func TestItem(t *testing.T) {
	today := time.Date(2024, 3, 10, 0, 0, 0, 0, time.UTC)
	course := models.Course{
		ID:                   "c1",
		CourseName:           "Omega-3",
		StartDate:            "2024-03-01",
		IsActive:             true,
		IntervalDays:         1,
		Schedule:             models.Schedule{Morning: true, Evening: true},
		DosePerIntake:        floatPtr(1),
		CurrentStock:         floatPtr(10),
		LowStockReminderDays: intPtr(7),
	}

	item := Items([]models.Course{course}, today)[0].(Item)
	if item.Title() != "Omega-3" {
		t.Errorf("Title() = %q", item.Title())
	}
	desc := item.Description()
	for _, want := range []string{"Morning, Evening", "daily", "from 2024-03-01", "⚠ stock lasts 5 days (until 2024-03-15)"} {
		if !strings.Contains(desc, want) {
			t.Errorf("Description() = %q, missing %q", desc, want)
		}
	}

	course.IsActive = false
	if got := (Item{Course: course}).Title(); got != "Omega-3 (paused)" {
		t.Errorf("paused Title() = %q", got)
	}

	course.DeletedAt = strPtr("2024-03-09T10:00:00Z")
	deleted := Item{Course: course}
	if !strings.Contains(deleted.Title(), "(deleted)") || !strings.Contains(deleted.Description(), "restore") {
		t.Errorf("deleted item = %q / %q", deleted.Title(), deleted.Description())
	}
}

func TestUpdate_Messages(t *testing.T) {
	today := time.Date(2024, 3, 10, 0, 0, 0, 0, time.UTC)
	live := models.Course{ID: "c1", CourseName: "Omega-3", StartDate: "2024-03-01", IsActive: true}

	m := New(80, 20)
	m.SetCourses([]models.Course{live}, today)

	tests := []struct {
		key  string
		want tea.Msg
	}{
		{key: "p", want: ToggleActiveMsg{ID: "c1"}},
		{key: "d", want: DeleteCourseMsg{ID: "c1"}},
	}
	for _, tt := range tests {
		t.Run(tt.key, func(t *testing.T) {
			_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(tt.key)})
			if cmd == nil {
				t.Fatalf("Update(%q) returned no command", tt.key)
			}
			if got := cmd(); got != tt.want {
				t.Errorf("Update(%q) emitted %#v, want %#v", tt.key, got, tt.want)
			}
		})
	}

	live.DeletedAt = strPtr("2024-03-09T10:00:00Z")
	m.SetCourses([]models.Course{live}, today)
	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("r")})
	if cmd == nil {
		t.Fatal("expected a restore command")
	}
	if got := cmd(); got != (RestoreCourseMsg{ID: "c1"}) {
		t.Errorf("restore emitted %#v", got)
	}
}
