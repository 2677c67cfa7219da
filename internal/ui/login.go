package ui

import (
	"errors"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"family-planner/internal/service"
)

func (m Model) updateLogin(key tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch key.String() {
	case "esc":
		return m, tea.Quit
	case "tab", "shift+tab", "up", "down":
		m.loginFocus = 1 - m.loginFocus
		if m.loginFocus == 0 {
			m.nameInput.Focus()
			m.pinInput.Blur()
		} else {
			m.pinInput.Focus()
			m.nameInput.Blur()
		}
		return m, nil
	case "enter":
		return m.submitLogin()
	}

	var cmd tea.Cmd
	if m.loginFocus == 0 {
		m.nameInput, cmd = m.nameInput.Update(key)
	} else {
		m.pinInput, cmd = m.pinInput.Update(key)
	}
	return m, cmd
}

func (m Model) submitLogin() (tea.Model, tea.Cmd) {
	user, err := m.auth.Login(m.ctx, m.nameInput.Value(), m.pinInput.Value())
	if err != nil {
		if errors.Is(err, service.ErrInvalidCredentials) {
			m.loginErr = "Неверное имя или пин-код"
		} else {
			m.loginErr = err.Error()
		}
		return m, nil
	}

	m.user = user
	m.loginErr = ""
	m.status = "Профиль: " + user.Name
	m.mode = modeList
	m.refreshRows()
	return m, nil
}

func (m Model) viewLogin() string {
	var b strings.Builder

	b.WriteString(titleStyle.Render("Семейный планировщик"))
	b.WriteString("\n\n")
	b.WriteString("Вход\n\n")
	b.WriteString(m.nameInput.View())
	b.WriteString("\n")
	b.WriteString(m.pinInput.View())
	b.WriteString("\n\n")

	if m.loginErr != "" {
		b.WriteString(errorStyle.Render(m.loginErr))
		b.WriteString("\n\n")
	}

	b.WriteString(dimStyle.Render("tab — переключить поле • enter — войти • esc — выход"))
	b.WriteString("\n")
	return b.String()
}
