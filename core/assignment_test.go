package core

import (
	"testing"
	"time"

	"github.com/volatiletech/null/v8"
)

func TestAssignment_HoursLeft(t *testing.T) {
	now := time.Date(2025, 8, 4, 10, 0, 0, 0, JST)
	tests := []struct {
		name string
		due  null.Time
		want int
	}{
		{name: "absent due", due: null.Time{}, want: 0},
		{name: "due now", due: null.TimeFrom(now), want: 0},
		{name: "in 90 minutes rounds down", due: null.TimeFrom(now.Add(90 * time.Minute)), want: 1},
		{name: "in two days", due: null.TimeFrom(now.Add(48 * time.Hour)), want: 48},
		{name: "30 minutes overdue floors to -1", due: null.TimeFrom(now.Add(-30 * time.Minute)), want: -1},
		{name: "exactly one hour overdue", due: null.TimeFrom(now.Add(-time.Hour)), want: -1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a := Assignment{Label: "x", Due: tt.due}
			if got := a.HoursLeft(now); got != tt.want {
				t.Errorf("HoursLeft() = %d, want %d", got, tt.want)
			}
		})
	}
}
