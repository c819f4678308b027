package util

import "time"

// IsSameMonth reports whether a and b fall in the same calendar year and month
func IsSameMonth(a, b time.Time) bool {
	return a.Year() == b.Year() && a.Month() == b.Month()
}

// IsSameDay reports whether a and b fall on the same calendar day
func IsSameDay(a, b time.Time) bool {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}

// IsPreviousDay reports whether a is the calendar day immediately before b
func IsPreviousDay(a, b time.Time) bool {
	next := time.Date(a.Year(), a.Month(), a.Day()+1, 0, 0, 0, 0, time.UTC)
	return IsSameDay(next, time.Date(b.Year(), b.Month(), b.Day(), 0, 0, 0, 0, time.UTC))
}

// Today formats t as a calendar date in the YYYY-MM-DD layout
func Today(t time.Time) string {
	return t.Format("2006-01-02")
}
