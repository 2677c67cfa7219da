package service

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"family-planner/internal/dateutil"
	"family-planner/internal/model"
)

// ReminderService builds human-readable daily summaries of a user's open
// tasks, for the report command and the scheduled reminder loop.
type ReminderService struct {
	tasks  *TaskService
	access *AccessPolicy
}

func NewReminderService(tasks *TaskService, access *AccessPolicy) *ReminderService {
	return &ReminderService{tasks: tasks, access: access}
}

// DailySummary renders the report for one user: today's and tomorrow's
// tasks plus anything overdue, all restricted to what the user may see.
func (s *ReminderService) DailySummary(user *model.User, now time.Time) string {
	visible := s.access.VisibleTasks(s.tasks.ListAll(), user)
	buckets := BuildBuckets(visible, now)
	overdue := overdueTasks(visible, now)

	var builder strings.Builder
	builder.WriteString(fmt.Sprintf("📋 Задачи для %s\n", user.Name))
	builder.WriteString(fmt.Sprintf("🗓 %s\n\n", now.Format("02.01.2006")))

	builder.WriteString("🔥 Сегодня\n")
	if len(buckets.Today) == 0 {
		builder.WriteString("— нет задач на сегодня\n")
	} else {
		for _, task := range buckets.Today {
			builder.WriteString(formatSummaryLine(task))
		}
	}

	builder.WriteString("\n🌅 Завтра\n")
	if len(buckets.Tomorrow) == 0 {
		builder.WriteString("— нет задач на завтра\n")
	} else {
		for _, task := range buckets.Tomorrow {
			builder.WriteString(formatSummaryLine(task))
		}
	}

	if len(overdue) > 0 {
		builder.WriteString("\n⚠️ Просроченные\n")
		for _, task := range overdue {
			builder.WriteString(formatOverdueLine(task))
		}
	}

	return strings.TrimSpace(builder.String())
}

// overdueTasks returns incomplete visible tasks dated before today, oldest
// first.
func overdueTasks(visible []model.Task, now time.Time) []model.Task {
	var out []model.Task
	for _, task := range visible {
		if task.Completed {
			continue
		}
		date, err := dateutil.Parse(task.Date)
		if err != nil {
			continue
		}
		if dateutil.DiffDays(date, now) < 0 {
			out = append(out, task)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Date < out[j].Date
	})
	return out
}

func formatSummaryLine(task model.Task) string {
	var sb strings.Builder

	icon := "🟢"
	if cat, ok := task.Category(); ok {
		icon = cat.Icon
	}
	sb.WriteString(fmt.Sprintf("%s %s", icon, strings.TrimSpace(task.Title)))

	if tr := task.TimeRange(); tr != "" {
		sb.WriteString(fmt.Sprintf("\n   ⏰ %s", tr))
	}
	if task.PrizeText != "" {
		sb.WriteString(fmt.Sprintf("\n   🎁 %s", strings.TrimSpace(task.PrizeText)))
	}
	if task.Description != "" {
		sb.WriteString(fmt.Sprintf("\n   📝 %s", strings.TrimSpace(task.Description)))
	}

	sb.WriteByte('\n')
	return sb.String()
}

func formatOverdueLine(task model.Task) string {
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("⚠️ %s — до %s\n", strings.TrimSpace(task.Title), dateutil.FormatRu(task.Date)))
	return sb.String()
}
