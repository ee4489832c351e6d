package state

import (
	"testing"
	"time"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestNew(t *testing.T) {
	v := New(time.Date(2024, 3, 5, 21, 30, 0, 0, time.FixedZone("X", 3600)))

	if !v.Today.Equal(date(2024, 3, 5)) {
		t.Errorf("Today = %v", v.Today)
	}
	if !v.ViewDate.Equal(v.Today) || !v.Selected.Equal(v.Today) {
		t.Errorf("ViewDate/Selected should start at today: %+v", v)
	}
	if !v.Month.Equal(date(2024, 3, 1)) {
		t.Errorf("Month = %v", v.Month)
	}
}

func TestMoveCursor(t *testing.T) {
	v := New(date(2024, 3, 30))

	moved := v.MoveCursor(7)
	if !moved.Selected.Equal(date(2024, 4, 6)) {
		t.Errorf("Selected = %v, want 2024-04-06", moved.Selected)
	}
	if !moved.Month.Equal(date(2024, 4, 1)) {
		t.Errorf("Month = %v, want April", moved.Month)
	}
	if !v.Selected.Equal(date(2024, 3, 30)) {
		t.Error("MoveCursor modified its receiver")
	}
}

func TestShiftMonth(t *testing.T) {
	tests := []struct {
		name  string
		start time.Time
		n     int
		want  time.Time
	}{
		{name: "next month", start: date(2024, 3, 15), n: 1, want: date(2024, 4, 15)},
		{name: "clamps to february", start: date(2024, 1, 31), n: 1, want: date(2024, 2, 29)},
		{name: "previous year", start: date(2024, 1, 10), n: -1, want: date(2023, 12, 10)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v := New(tt.start).ShiftMonth(tt.n)
			if !v.Selected.Equal(tt.want) {
				t.Errorf("Selected = %v, want %v", v.Selected, tt.want)
			}
			if v.Month.Day() != 1 || v.Month.Month() != tt.want.Month() {
				t.Errorf("Month = %v", v.Month)
			}
		})
	}
}

func TestOpenAndGoToday(t *testing.T) {
	v := New(date(2024, 3, 5)).MoveCursor(3).Open()
	if !v.ViewDate.Equal(date(2024, 3, 8)) {
		t.Errorf("ViewDate = %v, want 2024-03-08", v.ViewDate)
	}
	if v.IsToday(v.ViewDate) {
		t.Error("2024-03-08 is not today")
	}

	v = v.ShiftDay(-10).GoToday()
	if !v.ViewDate.Equal(date(2024, 3, 5)) || !v.Selected.Equal(date(2024, 3, 5)) {
		t.Errorf("GoToday did not reset the cursor: %+v", v)
	}
}
