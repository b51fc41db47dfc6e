package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestDaysOverdue(t *testing.T) {
	due := time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC)
	rental := Rental{DueDate: due}

	tests := []struct {
		name string
		now  time.Time
		want int
	}{
		{"Before due date", due.Add(-time.Hour), 0},
		{"Exactly at due date", due, 0},
		{"One hour late counts as a day", due.Add(time.Hour), 1},
		{"Exactly one day late", due.Add(24 * time.Hour), 1},
		{"A day and a minute late", due.Add(24*time.Hour + time.Minute), 2},
		{"Three days late", due.Add(72 * time.Hour), 3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, rental.DaysOverdue(tt.now))
		})
	}
}
