// Package dateutil holds the pure calendar arithmetic shared by the
// bucketing and calendar views.
package dateutil

import (
	"fmt"
	"time"
)

// KeyLayout is the canonical calendar-date key, e.g. "2024-03-15".
const KeyLayout = "2006-01-02"

// Key formats t as a calendar-date key.
func Key(t time.Time) string {
	return t.Format(KeyLayout)
}

// Parse interprets a date key as local midnight of that day.
func Parse(key string) (time.Time, error) {
	t, err := time.ParseInLocation(KeyLayout, key, time.Local)
	if err != nil {
		return time.Time{}, fmt.Errorf("parse date %q: %w", key, err)
	}
	return t, nil
}

// StartOfDay truncates t to local midnight.
func StartOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// TodayKey returns the date key of now's calendar day.
func TodayKey(now time.Time) string {
	return Key(now)
}

// TomorrowKey returns the date key of the day after now.
func TomorrowKey(now time.Time) string {
	return Key(now.AddDate(0, 0, 1))
}

// DiffDays counts whole calendar days from now's day to date's day.
// Negative for past dates. Both days are normalized to UTC midnight so the
// count is exact across DST transitions.
func DiffDays(date, now time.Time) int {
	a := time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, time.UTC)
	b := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	return int(a.Sub(b) / (24 * time.Hour))
}

// SameMonth reports whether a and b fall in the same calendar year and month.
func SameMonth(a, b time.Time) bool {
	return a.Year() == b.Year() && a.Month() == b.Month()
}

// DaysInMonth returns the day count of the given month, leap-aware.
func DaysInMonth(year int, month time.Month) int {
	// Move to the next month, roll back a day.
	firstOfMonth := time.Date(year, month, 1, 0, 0, 0, 0, time.UTC)
	lastOfMonth := firstOfMonth.AddDate(0, 1, 0).AddDate(0, 0, -1)
	return lastOfMonth.Day()
}

// FormatRu rewrites a date key as the Russian display form DD.MM.YYYY.
// Unparsable input is returned unchanged.
func FormatRu(key string) string {
	t, err := Parse(key)
	if err != nil {
		return key
	}
	return t.Format("02.01.2006")
}

var monthNamesRu = [...]string{
	"Январь", "Февраль", "Март", "Апрель", "Май", "Июнь",
	"Июль", "Август", "Сентябрь", "Октябрь", "Ноябрь", "Декабрь",
}

// MonthNameRu returns the Russian month name in nominative case.
func MonthNameRu(month time.Month) string {
	return monthNamesRu[month-1]
}
