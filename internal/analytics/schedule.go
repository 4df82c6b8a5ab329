// Package analytics is the pure computational layer of paydown: it turns
// raw debt and transaction records into the derived figures the UI
// displays. Every function is a stateless transform over its inputs;
// "now" is always caller-supplied so results are reproducible.
package analytics

import "time"

// Urgency classifies how close a payment is to its due date.
type Urgency string

const (
	UrgencyOverdue  Urgency = "overdue"
	UrgencyDueToday Urgency = "due_today"
	UrgencyDanger   Urgency = "danger"
	UrgencyWarning  Urgency = "warning"
	UrgencyNormal   Urgency = "normal"
)

// NextDueDate resolves the next occurrence of a recurring day-of-month.
//
// If today's day-of-month has not passed dueDay the occurrence falls in
// the current month, otherwise in the next one (rolling the year forward
// at December). dueDay is clamped to the last valid day of the target
// month, so dueDay=31 resolves to Feb 28 in a non-leap February rather
// than producing an invalid date.
func NextDueDate(now time.Time, dueDay int) time.Time {
	year, month, day := now.Date()
	if day > dueDay {
		month++
		if month > time.December {
			month = time.January
			year++
		}
	}
	clamped := min(dueDay, lastDayOfMonth(year, month))
	return time.Date(year, month, clamped, 0, 0, 0, 0, now.Location())
}

// DaysUntilDue returns the whole-day distance from now to the next
// occurrence of dueDay. The difference is computed between midnight
// boundaries so the hour of day never shifts the result.
func DaysUntilDue(now time.Time, dueDay int) int {
	due := NextDueDate(now, dueDay)
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	return int(due.Sub(today) / (24 * time.Hour))
}

// ClassifyUrgency maps a days-until-due value onto an urgency tag.
func ClassifyUrgency(daysUntil int) Urgency {
	switch {
	case daysUntil < 0:
		return UrgencyOverdue
	case daysUntil == 0:
		return UrgencyDueToday
	case daysUntil <= 3:
		return UrgencyDanger
	case daysUntil <= 7:
		return UrgencyWarning
	default:
		return UrgencyNormal
	}
}

// lastDayOfMonth uses the day-zero-of-next-month trick to get the number
// of days in a month.
func lastDayOfMonth(year int, month time.Month) int {
	return time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC).Day()
}
