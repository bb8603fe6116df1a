package challenger

import (
	"regexp"
	"strconv"
	"time"
)

// Challenger is one registration of a participant. The same mobile number may
// appear in several rows (re-registration); the notification pipeline always
// collapses to the most recent row per mobile.
type Challenger struct {
	ID           int
	Name         string
	Mobile       string
	CountryCode  string
	Duration     string // free text, e.g. "7 days"
	Category     string
	Subcategory  string
	Type         string
	OTP          string
	OTPVerified  bool
	PDF          string // object key of the assigned diet plan PDF
	ReminderSent bool
	IsDeleted    bool
	IsDummy      bool
	IP           string
	Referer      string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// ReferenceField selects which timestamp a cohort measures elapsed time from
type ReferenceField string

const (
	ReferenceCreatedAt ReferenceField = "created_at"
	ReferenceUpdatedAt ReferenceField = "updated_at"
)

// Cohort describes one selectable subset of challengers for a campaign pass.
// WindowStart/WindowEnd bound the reference field; nil means unbounded.
type Cohort struct {
	Name           string
	ReferenceField ReferenceField
	WindowStart    *time.Time
	WindowEnd      *time.Time
}

// ReferenceTime returns the timestamp the cohort measures eligibility from
func (c Cohort) ReferenceTime(ch *Challenger) time.Time {
	if c.ReferenceField == ReferenceCreatedAt {
		return ch.CreatedAt
	}
	return ch.UpdatedAt
}

var leadingDigits = regexp.MustCompile(`(\d+)`)

// DurationDays extracts the number of days out of a free-text duration label:
// "30 days" -> 30, "7 days" -> 7. Unparsable input yields 0, which makes the
// challenger immediately eligible.
func DurationDays(duration string) int {
	match := leadingDigits.FindString(duration)
	if match == "" {
		return 0
	}
	days, err := strconv.Atoi(match)
	if err != nil {
		return 0
	}
	return days
}

// DueForReminder reports whether enough days have elapsed since the cohort's
// reference timestamp to cover the challenger's plan duration
func DueForReminder(ch *Challenger, cohort Cohort, now time.Time) bool {
	elapsedDays := int(now.Sub(cohort.ReferenceTime(ch)).Hours() / 24)
	return elapsedDays >= DurationDays(ch.Duration)
}
