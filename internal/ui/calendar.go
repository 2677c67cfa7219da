package ui

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"family-planner/internal/dateutil"
	"family-planner/internal/service"
)

var weekdayHeaderRu = []string{"Пн", "Вт", "Ср", "Чт", "Пт", "Сб", "Вс"}

// openCalendar shows the current month with the cursor on today when today
// is in view.
func (m *Model) openCalendar() {
	now := time.Now()
	m.calYear, m.calMonth = now.Year(), now.Month()
	m.rebuildCalendar()
	for i, cell := range m.calCells {
		if cell.Today {
			m.calCursor = i
			break
		}
	}
	m.mode = modeCalendar
}

func (m *Model) rebuildCalendar() {
	m.calCells = service.MonthGrid(m.calYear, m.calMonth, m.tasks.Visible(m.user), time.Now())
	if m.calCursor >= len(m.calCells) {
		m.calCursor = 0
	}
}

func (m Model) updateCalendar(key tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch key.String() {
	case "esc", "q", "c":
		m.mode = modeList
		m.refreshRows()
	case "h", "left":
		if m.calCursor > 0 {
			m.calCursor--
		}
	case "l", "right":
		if m.calCursor < len(m.calCells)-1 {
			m.calCursor++
		}
	case "k", "up":
		if m.calCursor >= 7 {
			m.calCursor -= 7
		}
	case "j", "down":
		if m.calCursor+7 < len(m.calCells) {
			m.calCursor += 7
		}
	case "[", "p":
		m.calYear, m.calMonth = service.PrevMonth(m.calYear, m.calMonth)
		m.calCursor = 0
		m.rebuildCalendar()
	case "]", "n":
		m.calYear, m.calMonth = service.NextMonth(m.calYear, m.calMonth)
		m.calCursor = 0
		m.rebuildCalendar()
	}
	return m, nil
}

func (m Model) viewCalendar() string {
	var b strings.Builder

	b.WriteString(titleStyle.Render(service.MonthTitle(m.calYear, m.calMonth)))
	b.WriteString("\n\n")

	for _, wd := range weekdayHeaderRu {
		b.WriteString(fmt.Sprintf(" %3s ", wd))
	}
	b.WriteString("\n")

	for i, cell := range m.calCells {
		label := fmt.Sprintf("%3d", cell.Day)
		switch {
		case cell.Today:
			label = todayStyle.Render(label)
		case cell.OtherMonth:
			label = dimStyle.Render(label)
		case cell.HasTasks():
			label = taskDayStyle.Render(label)
		}
		if i == m.calCursor {
			b.WriteString(selectedStyle.Render(">") + label + " ")
		} else {
			b.WriteString(" " + label + " ")
		}
		if (i+1)%7 == 0 {
			b.WriteString("\n")
		}
	}

	b.WriteString("\n")
	b.WriteString(m.renderSelectedDay())
	b.WriteString("\n")
	b.WriteString(dimStyle.Render("hjkl — день • [/] — месяц • esc — назад"))
	b.WriteString("\n")
	return b.String()
}

// renderSelectedDay is the tooltip equivalent: the selected cell's tasks.
func (m Model) renderSelectedDay() string {
	if m.calCursor < 0 || m.calCursor >= len(m.calCells) {
		return ""
	}
	cell := m.calCells[m.calCursor]

	var b strings.Builder
	b.WriteString(sectionStyle.Render(dateutil.FormatRu(cell.Key())))
	b.WriteString("\n")
	if !cell.HasTasks() {
		b.WriteString(dimStyle.Render("Нет задач"))
		b.WriteString("\n")
		return b.String()
	}
	for _, task := range cell.Tasks {
		var parts []string
		if tr := task.TimeRange(); tr != "" {
			parts = append(parts, tr)
		}
		if cat, ok := task.Category(); ok {
			parts = append(parts, cat.Label())
		}
		parts = append(parts, task.Title)
		b.WriteString(strings.Join(parts, " "))
		b.WriteString("\n")
	}
	return b.String()
}
