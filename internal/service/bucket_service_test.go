package service

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"family-planner/internal/model"
)

func openTask(id int, date string) model.Task {
	return model.Task{
		ID:         id,
		Title:      "Задача",
		CategoryID: model.CategoryHome,
		Visibility: model.VisibilityShared,
		Date:       date,
	}
}

func ids(tasks []model.Task) []int {
	out := make([]int, 0, len(tasks))
	for _, t := range tasks {
		out = append(out, t.ID)
	}
	return out
}

// Friday 2024-03-15, mid-day.
var fri = time.Date(2024, time.March, 15, 14, 30, 0, 0, time.Local)

func TestBuildBuckets(t *testing.T) {
	tasks := []model.Task{
		openTask(1, "2024-03-15"), // today
		openTask(2, "2024-03-16"), // tomorrow
		openTask(3, "2024-03-20"), // diff=5 -> week, and month
		openTask(4, "2024-03-30"), // diff=15, same month -> month only
		openTask(5, "2024-04-01"), // next month -> nothing
	}

	b := BuildBuckets(tasks, fri)

	assert.Equal(t, []int{1}, ids(b.Today))
	assert.Equal(t, []int{2}, ids(b.Tomorrow))
	assert.Equal(t, []int{3}, ids(b.Week))
	assert.Equal(t, []int{3, 4}, ids(b.Month))
}

func TestBuildBucketsWeekWindow(t *testing.T) {
	tests := []struct {
		date     string
		inWeek   bool
		inToday  bool
		inTomorw bool
	}{
		{"2024-03-15", false, true, false}, // diff 0
		{"2024-03-16", false, false, true}, // diff 1
		{"2024-03-17", true, false, false}, // diff 2, window start
		{"2024-03-21", true, false, false}, // diff 6, window end
		{"2024-03-22", false, false, false}, // diff 7, out
	}
	for _, tt := range tests {
		t.Run(tt.date, func(t *testing.T) {
			b := BuildBuckets([]model.Task{openTask(1, tt.date)}, fri)
			assert.Equal(t, tt.inWeek, len(b.Week) == 1, "week")
			assert.Equal(t, tt.inToday, len(b.Today) == 1, "today")
			assert.Equal(t, tt.inTomorw, len(b.Tomorrow) == 1, "tomorrow")
		})
	}
}

func TestBuildBucketsWeekAndMonthOverlap(t *testing.T) {
	// A task can legitimately sit in both views at once.
	b := BuildBuckets([]model.Task{openTask(1, "2024-03-18")}, fri)
	assert.Len(t, b.Week, 1)
	assert.Len(t, b.Month, 1)
}

func TestBuildBucketsMonthExcludesTodayAndTomorrow(t *testing.T) {
	tasks := []model.Task{
		openTask(1, "2024-03-15"),
		openTask(2, "2024-03-16"),
	}
	b := BuildBuckets(tasks, fri)
	assert.Empty(t, b.Month)
}

func TestBuildBucketsPastDatesStayInMonth(t *testing.T) {
	// Overdue but same month: shows up in the month view only.
	b := BuildBuckets([]model.Task{openTask(1, "2024-03-01")}, fri)
	assert.Empty(t, b.Today)
	assert.Empty(t, b.Tomorrow)
	assert.Empty(t, b.Week)
	assert.Equal(t, []int{1}, ids(b.Month))
}

func TestBuildBucketsSkipsCompleted(t *testing.T) {
	dates := []string{"2024-03-15", "2024-03-16", "2024-03-18", "2024-03-30"}
	var tasks []model.Task
	for i, d := range dates {
		task := openTask(i+1, d)
		task.Completed = true
		tasks = append(tasks, task)
	}

	b := BuildBuckets(tasks, fri)
	assert.Empty(t, b.Today)
	assert.Empty(t, b.Tomorrow)
	assert.Empty(t, b.Week)
	assert.Empty(t, b.Month)
}

func TestBuildBucketsSkipsUnparsableDates(t *testing.T) {
	b := BuildBuckets([]model.Task{openTask(1, "когда-нибудь")}, fri)
	assert.Empty(t, b.Today)
	assert.Empty(t, b.Tomorrow)
	assert.Empty(t, b.Week)
	assert.Empty(t, b.Month)
}

func TestCompletedReport(t *testing.T) {
	done := openTask(2, "2024-03-10")
	done.Completed = true
	alsoDone := openTask(4, "2024-03-01")
	alsoDone.Completed = true

	report := CompletedReport([]model.Task{
		openTask(1, "2024-03-15"),
		done,
		openTask(3, "2024-03-16"),
		alsoDone,
	})

	require.Len(t, report, 2)
	assert.Equal(t, []int{2, 4}, ids(report), "store order, not date order")
}

func TestFormatReportEntry(t *testing.T) {
	task := model.Task{
		Title:      "Купить продукты",
		CategoryID: model.CategoryShop,
		Date:       "2024-03-15",
		TimeStart:  "10:00",
		TimeEnd:    "11:00",
	}
	assert.Equal(t, "15.03.2024 10:00–11:00 - 🛒 Покупки Купить продукты", FormatReportEntry(task))

	task.TimeEnd = ""
	assert.Equal(t, "15.03.2024 10:00 - 🛒 Покупки Купить продукты", FormatReportEntry(task))

	task.TimeStart = ""
	assert.Equal(t, "15.03.2024 - 🛒 Покупки Купить продукты", FormatReportEntry(task))
}
