package ui

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"
)

var menuItems = []string{
	"📂 Категории",
	"📆 Календарь",
	"✅ Выполненные",
	"🗑️ Сбросить всё",
	"🚪 Выйти из профиля",
}

func (m Model) updateMenu(key tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch key.String() {
	case "esc", "m", "q":
		m.mode = modeList
	case "j", "down":
		if m.menuCursor < len(menuItems)-1 {
			m.menuCursor++
		}
	case "k", "up":
		if m.menuCursor > 0 {
			m.menuCursor--
		}
	case "enter":
		switch m.menuCursor {
		case 0:
			m.mode = modeCategories
		case 1:
			m.openCalendar()
		case 2:
			m.mode = modeCompleted
		case 3:
			m.status = "Стереть ВСЕ задачи? Это нельзя отменить. y/n"
			m.mode = modeConfirmReset
		case 4:
			m.logout()
		}
	}
	return m, nil
}

func (m Model) viewMenu() string {
	var b strings.Builder
	b.WriteString(titleStyle.Render("Меню"))
	b.WriteString("\n\n")
	for i, item := range menuItems {
		if i == m.menuCursor {
			b.WriteString(selectedStyle.Render("> " + item))
		} else {
			b.WriteString("  " + item)
		}
		b.WriteString("\n")
	}
	b.WriteString("\n")
	b.WriteString(dimStyle.Render("j/k — выбор • enter — открыть • esc — назад"))
	b.WriteString("\n")
	return b.String()
}
