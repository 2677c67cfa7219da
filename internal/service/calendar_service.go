package service

import (
	"fmt"
	"time"

	"family-planner/internal/dateutil"
	"family-planner/internal/model"
)

// CalendarCells is the fixed grid size: six Monday-first weeks.
const CalendarCells = 42

// CalendarCell is one day slot in the month grid.
type CalendarCell struct {
	Date       time.Time // local midnight
	Day        int
	OtherMonth bool
	Today      bool
	Tasks      []model.Task // visible tasks dated on this cell
}

// HasTasks reports whether the cell carries at least one task.
func (c CalendarCell) HasTasks() bool {
	return len(c.Tasks) > 0
}

// Key returns the cell's date key.
func (c CalendarCell) Key() string {
	return dateutil.Key(c.Date)
}

// MonthGrid builds the 42-cell grid for the given month. The first row
// starts on Monday, so cells before the 1st show the tail of the previous
// month and cells past the last day show the head of the next, both flagged
// OtherMonth. Tasks are indexed by date key in one pass over the visible
// set, then each cell does a constant-time lookup.
func MonthGrid(year int, month time.Month, visible []model.Task, now time.Time) []CalendarCell {
	first := time.Date(year, month, 1, 0, 0, 0, 0, time.Local)
	// time.Weekday is Sunday-based; remap so Monday=0..Sunday=6.
	firstWeekday := (int(first.Weekday()) + 6) % 7

	byDate := make(map[string][]model.Task, len(visible))
	for _, task := range visible {
		byDate[task.Date] = append(byDate[task.Date], task)
	}

	todayKey := dateutil.TodayKey(now)

	cells := make([]CalendarCell, 0, CalendarCells)
	for i := 0; i < CalendarCells; i++ {
		date := first.AddDate(0, 0, i-firstWeekday)
		key := dateutil.Key(date)
		cells = append(cells, CalendarCell{
			Date:       date,
			Day:        date.Day(),
			OtherMonth: date.Month() != month || date.Year() != year,
			Today:      key == todayKey,
			Tasks:      byDate[key],
		})
	}
	return cells
}

// PrevMonth steps the calendar back one month, rolling the year at January.
func PrevMonth(year int, month time.Month) (int, time.Month) {
	if month == time.January {
		return year - 1, time.December
	}
	return year, month - 1
}

// NextMonth steps the calendar forward one month, rolling the year at
// December. Navigation is unbounded in both directions.
func NextMonth(year int, month time.Month) (int, time.Month) {
	if month == time.December {
		return year + 1, time.January
	}
	return year, month + 1
}

// MonthTitle renders the calendar header, e.g. "Март 2024".
func MonthTitle(year int, month time.Month) string {
	return fmt.Sprintf("%s %d", dateutil.MonthNameRu(month), year)
}
