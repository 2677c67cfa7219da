package ui

import (
	"errors"
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"family-planner/internal/dateutil"
	"family-planner/internal/model"
	"family-planner/internal/service"
)

// row is one line of the bucketed list: either a section header or a task.
type row struct {
	header string
	task   model.Task
	isTask bool
}

// buildRows flattens the four buckets into list rows with section headers.
func buildRows(visible []model.Task, now time.Time) []row {
	buckets := service.BuildBuckets(visible, now)

	sections := []struct {
		title string
		tasks []model.Task
	}{
		{fmt.Sprintf("Сегодня (%s)", dateutil.FormatRu(dateutil.TodayKey(now))), buckets.Today},
		{fmt.Sprintf("Завтра (%s)", dateutil.FormatRu(dateutil.TomorrowKey(now))), buckets.Tomorrow},
		{"Неделя", buckets.Week},
		{"Месяц", buckets.Month},
	}

	var rows []row
	for _, sec := range sections {
		rows = append(rows, row{header: sec.title})
		for _, task := range sec.tasks {
			rows = append(rows, row{task: task, isTask: true})
		}
	}
	return rows
}

// nearestTaskRow returns the closest task-row index at or after from,
// falling back to the closest one before it. -1 when there are none.
func nearestTaskRow(rows []row, from int) int {
	for i := from; i < len(rows); i++ {
		if rows[i].isTask {
			return i
		}
	}
	for i := from - 1; i >= 0; i-- {
		if rows[i].isTask {
			return i
		}
	}
	return -1
}

func (m Model) currentTask() (model.Task, bool) {
	if m.cursor < 0 || m.cursor >= len(m.rows) || !m.rows[m.cursor].isTask {
		return model.Task{}, false
	}
	return m.rows[m.cursor].task, true
}

func (m Model) updateList(key tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch key.String() {
	case "q":
		return m, tea.Quit
	case "j", "down":
		if next := nearestTaskRow(m.rows, m.cursor+1); next > m.cursor {
			m.cursor = next
		}
	case "k", "up":
		for i := m.cursor - 1; i >= 0; i-- {
			if m.rows[i].isTask {
				m.cursor = i
				break
			}
		}
	case "a":
		m.startForm(nil)
	case "e":
		if task, ok := m.currentTask(); ok {
			m.startForm(&task)
		}
	case " ":
		if task, ok := m.currentTask(); ok {
			m.toggleTask(task.ID)
		}
	case "d":
		if task, ok := m.currentTask(); ok {
			t := task
			m.pendingDelete = &t
			m.status = fmt.Sprintf("Удалить задачу «%s»? y/n", t.Title)
			m.mode = modeConfirmDelete
		}
	case "enter":
		if task, ok := m.currentTask(); ok {
			t := task
			m.detail = &t
			m.mode = modeDetails
		}
	case "c":
		m.openCalendar()
	case "m":
		m.menuCursor = 0
		m.mode = modeMenu
	}
	return m, nil
}

// toggleTask flips completion; a vanished id is a benign race with a prior
// delete and is silently ignored.
func (m *Model) toggleTask(id int) {
	_, outcome, err := m.tasks.ToggleCompleted(m.ctx, id)
	if err != nil && !errors.Is(err, service.ErrTaskNotFound) {
		m.status = err.Error()
		return
	}
	if err == nil && !outcome.Persisted {
		m.status = "Не удалось сохранить на диск"
	}
	m.refreshRows()
}

func (m Model) viewList() string {
	var b strings.Builder

	b.WriteString(titleStyle.Render("Семейный планировщик"))
	if m.user != nil {
		b.WriteString(dimStyle.Render("  Профиль: " + m.user.Name))
	}
	b.WriteString("\n\n")

	if len(m.rows) == 0 {
		b.WriteString(dimStyle.Render("Нет задач. Нажмите 'a', чтобы добавить."))
		b.WriteString("\n")
	}

	for i, r := range m.rows {
		if !r.isTask {
			b.WriteString(sectionStyle.Render(r.header))
			b.WriteString("\n")
			continue
		}
		line := renderTaskLine(r.task)
		if i == m.cursor {
			line = selectedStyle.Render("> " + line)
		} else {
			line = "  " + line
		}
		b.WriteString(line)
		b.WriteString("\n")
	}

	b.WriteString("\n")
	if m.status != "" {
		b.WriteString(m.status)
		b.WriteString("\n")
	}
	b.WriteString(dimStyle.Render("j/k — выбор • a — новая • e — изменить • пробел — выполнено • d — удалить • enter — подробнее • c — календарь • m — меню • q — выход"))
	b.WriteString("\n")
	return b.String()
}

func renderTaskLine(task model.Task) string {
	checkbox := "[ ]"
	if task.Completed {
		checkbox = "[x]"
	}

	label := task.Title
	if cat, ok := task.Category(); ok {
		label = cat.Icon + " " + label
	}

	parts := []string{checkbox, label}
	if tr := task.TimeRange(); tr != "" {
		parts = append(parts, tr)
	}
	if task.Visibility == model.VisibilityPersonal {
		parts = append(parts, "(лично)")
	}
	if task.PrizeText != "" {
		parts = append(parts, "🎁 "+task.PrizeText)
	}
	return strings.Join(parts, " ")
}

func (m Model) updateReadOnly(key tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch key.String() {
	case "esc", "enter", "q":
		m.detail = nil
		m.mode = modeList
		m.refreshRows()
	}
	return m, nil
}

func (m Model) viewDetails() string {
	if m.detail == nil {
		return ""
	}
	t := *m.detail

	catLabel := "—"
	if cat, ok := t.Category(); ok {
		catLabel = cat.Label()
	}
	timePart := t.TimeRange()
	if timePart == "" {
		timePart = "—"
	}
	visibility := "Общая"
	if t.Visibility == model.VisibilityPersonal {
		visibility = "Личная"
	}

	var b strings.Builder
	b.WriteString(titleStyle.Render(t.Title))
	b.WriteString("\n\n")
	b.WriteString(fmt.Sprintf("Дата        : %s\n", dateutil.FormatRu(t.Date)))
	b.WriteString(fmt.Sprintf("Время       : %s\n", timePart))
	b.WriteString(fmt.Sprintf("Категория   : %s\n", catLabel))
	b.WriteString(fmt.Sprintf("Видимость   : %s\n", visibility))
	b.WriteString(fmt.Sprintf("Приз        : %s\n", orDash(t.PrizeText)))
	b.WriteString(fmt.Sprintf("Описание    : %s\n", orDash(t.Description)))
	b.WriteString("\n")
	b.WriteString(dimStyle.Render("esc — назад"))
	b.WriteString("\n")
	return b.String()
}

func (m Model) viewCompleted() string {
	completed := service.CompletedReport(m.tasks.Visible(m.user))

	var b strings.Builder
	b.WriteString(titleStyle.Render("Выполненные задачи"))
	b.WriteString("\n\n")
	if len(completed) == 0 {
		b.WriteString(dimStyle.Render("Пока нет выполненных задач."))
		b.WriteString("\n")
	}
	for _, task := range completed {
		b.WriteString(service.FormatReportEntry(task))
		b.WriteString("\n")
	}
	b.WriteString("\n")
	b.WriteString(dimStyle.Render("esc — назад"))
	b.WriteString("\n")
	return b.String()
}

func (m Model) viewCategories() string {
	accessible := m.access.AccessibleCategories(m.user)

	var b strings.Builder
	b.WriteString(titleStyle.Render("Ваши категории"))
	b.WriteString("\n\n")
	if len(accessible) == 0 {
		b.WriteString(dimStyle.Render("Нет доступных категорий."))
		b.WriteString("\n")
	}
	for _, cat := range accessible {
		b.WriteString(cat.Label())
		b.WriteString("\n")
	}
	b.WriteString("\n")
	b.WriteString(dimStyle.Render("esc — назад"))
	b.WriteString("\n")
	return b.String()
}

func (m Model) updateConfirmDelete(key tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch key.String() {
	case "y", "Y", "enter":
		if m.pendingDelete != nil {
			outcome, err := m.tasks.Delete(m.ctx, m.pendingDelete.ID)
			switch {
			case err != nil && !errors.Is(err, service.ErrTaskNotFound):
				m.status = err.Error()
			case err == nil && !outcome.Persisted:
				m.status = "Задача удалена (не удалось сохранить на диск)"
			default:
				m.status = "Задача удалена"
			}
		}
		m.pendingDelete = nil
		m.mode = modeList
		m.refreshRows()
	case "n", "N", "esc":
		m.pendingDelete = nil
		m.status = "Удаление отменено"
		m.mode = modeList
	}
	return m, nil
}

func (m Model) updateConfirmReset(key tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch key.String() {
	case "y", "Y":
		if outcome := m.tasks.Clear(m.ctx); outcome.Persisted {
			m.status = "Все задачи стёрты"
		} else {
			m.status = "Все задачи стёрты (не удалось сохранить на диск)"
		}
		m.mode = modeList
		m.refreshRows()
	case "n", "N", "esc":
		m.status = "Сброс отменён"
		m.mode = modeList
	}
	return m, nil
}

func orDash(v string) string {
	if strings.TrimSpace(v) == "" {
		return "—"
	}
	return v
}
