package service

import (
	"strings"
	"time"

	"family-planner/internal/dateutil"
	"family-planner/internal/model"
)

// Buckets holds the four time-window views of the open tasks. The buckets
// are independent views, not a partition: a task can sit in both "week" and
// "month" at once, while today/tomorrow exclude month.
type Buckets struct {
	Today    []model.Task
	Tomorrow []model.Task
	Week     []model.Task
	Month    []model.Task
}

// BuildBuckets distributes the visible, incomplete tasks relative to now:
//   - an exact match on today's or tomorrow's date key lands in that bucket;
//   - 2 to 6 days out lands in "week";
//   - anything else in the current calendar month lands in "month".
//
// Completed tasks never appear; tasks with an unparsable date are skipped.
func BuildBuckets(visible []model.Task, now time.Time) Buckets {
	var b Buckets

	todayKey := dateutil.TodayKey(now)
	tomorrowKey := dateutil.TomorrowKey(now)

	for _, task := range visible {
		if task.Completed {
			continue
		}

		date, err := dateutil.Parse(task.Date)
		if err != nil {
			continue
		}
		diff := dateutil.DiffDays(date, now)

		switch task.Date {
		case todayKey:
			b.Today = append(b.Today, task)
		case tomorrowKey:
			b.Tomorrow = append(b.Tomorrow, task)
		}

		if diff >= 2 && diff <= 6 {
			b.Week = append(b.Week, task)
		}

		if dateutil.SameMonth(date, now) && task.Date != todayKey && task.Date != tomorrowKey {
			b.Month = append(b.Month, task)
		}
	}

	return b
}

// CompletedReport returns the completed tasks among visible in store order.
func CompletedReport(visible []model.Task) []model.Task {
	var out []model.Task
	for _, task := range visible {
		if task.Completed {
			out = append(out, task)
		}
	}
	return out
}

// FormatReportEntry renders one completed-report line:
// "15.03.2024 10:00–11:00 - 🏠 Дом Купить продукты".
func FormatReportEntry(task model.Task) string {
	var sb strings.Builder
	sb.WriteString(dateutil.FormatRu(task.Date))
	if tr := task.TimeRange(); tr != "" {
		sb.WriteString(" ")
		sb.WriteString(tr)
	}
	sb.WriteString(" - ")
	if cat, ok := task.Category(); ok {
		sb.WriteString(cat.Label())
		sb.WriteString(" ")
	}
	sb.WriteString(task.Title)
	return sb.String()
}
