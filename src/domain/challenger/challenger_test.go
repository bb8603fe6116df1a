package challenger

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestDurationDays(t *testing.T) {
	tests := []struct {
		duration string
		want     int
	}{
		{"7 days", 7},
		{"14 days", 14},
		{"21 days", 21},
		{"30 days", 30},
		{"30days", 30},
		{"2 weeks", 2},
		{"days", 0},
		{"", 0},
		{"no digits at all", 0},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, DurationDays(tt.duration), "duration %q", tt.duration)
	}
}

func TestDueForReminderBoundary(t *testing.T) {
	now := time.Date(2024, 3, 15, 12, 0, 0, 0, time.UTC)
	cohort := Cohort{Name: "daily", ReferenceField: ReferenceUpdatedAt}

	ch := &Challenger{Duration: "7 days"}

	// exactly seven days elapsed is due
	ch.UpdatedAt = now.AddDate(0, 0, -7)
	assert.True(t, DueForReminder(ch, cohort, now))

	// one millisecond short of seven days is not
	ch.UpdatedAt = now.AddDate(0, 0, -7).Add(time.Millisecond)
	assert.False(t, DueForReminder(ch, cohort, now))

	// well past the duration stays due
	ch.UpdatedAt = now.AddDate(0, 0, -30)
	assert.True(t, DueForReminder(ch, cohort, now))
}

func TestDueForReminderUnparsableDuration(t *testing.T) {
	now := time.Date(2024, 3, 15, 12, 0, 0, 0, time.UTC)
	cohort := Cohort{Name: "daily", ReferenceField: ReferenceUpdatedAt}

	// zero-day duration means due immediately
	ch := &Challenger{Duration: "unknown", UpdatedAt: now}
	assert.True(t, DueForReminder(ch, cohort, now))
}

func TestCohortReferenceTime(t *testing.T) {
	created := time.Date(2023, 10, 1, 0, 0, 0, 0, time.UTC)
	updated := time.Date(2024, 1, 5, 0, 0, 0, 0, time.UTC)
	ch := &Challenger{CreatedAt: created, UpdatedAt: updated}

	byCreation := Cohort{ReferenceField: ReferenceCreatedAt}
	byUpdate := Cohort{ReferenceField: ReferenceUpdatedAt}

	assert.Equal(t, created, byCreation.ReferenceTime(ch))
	assert.Equal(t, updated, byUpdate.ReferenceTime(ch))
}
