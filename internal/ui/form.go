package ui

import (
	"errors"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"family-planner/internal/model"
	"family-planner/internal/service"
)

// formState mirrors the task form: one value per field, edited through a
// single shared text input, advanced with enter.
type formState struct {
	taskID     int // 0 for a new task
	title      string
	descr      string
	category   string
	visibility string
	date       string
	timeStart  string
	timeEnd    string
	prize      string
	index      int
	message    string
}

func formFields() []string {
	return []string{
		"название",
		"описание",
		"категория",
		"видимость (personal/shared)",
		"дата (ГГГГ-ММ-ДД)",
		"начало (ЧЧ:ММ)",
		"конец (ЧЧ:ММ)",
		"приз",
	}
}

func (f formState) currentValue() string {
	switch f.index {
	case 0:
		return f.title
	case 1:
		return f.descr
	case 2:
		return f.category
	case 3:
		return f.visibility
	case 4:
		return f.date
	case 5:
		return f.timeStart
	case 6:
		return f.timeEnd
	case 7:
		return f.prize
	default:
		return ""
	}
}

func (f *formState) setCurrentValue(v string) {
	v = strings.TrimSpace(v)
	switch f.index {
	case 0:
		f.title = v
	case 1:
		f.descr = v
	case 2:
		f.category = strings.ToLower(v)
	case 3:
		f.visibility = strings.ToLower(v)
	case 4:
		f.date = v
	case 5:
		f.timeStart = v
	case 6:
		f.timeEnd = v
	case 7:
		f.prize = v
	}
}

// startForm opens the form, pre-filled from task when editing.
func (m *Model) startForm(task *model.Task) {
	f := &formState{visibility: string(model.VisibilityPersonal)}
	if task != nil {
		f.taskID = task.ID
		f.title = task.Title
		f.descr = task.Description
		f.category = string(task.CategoryID)
		f.visibility = string(task.Visibility)
		f.date = task.Date
		f.timeStart = task.TimeStart
		f.timeEnd = task.TimeEnd
		f.prize = task.PrizeText
	}

	m.form = f
	m.input.SetValue(f.currentValue())
	m.input.Placeholder = formFields()[f.index]
	m.input.Focus()
	m.mode = modeForm
}

func (m *Model) closeForm() {
	m.form = nil
	m.input.Blur()
	m.input.SetValue("")
	m.mode = modeList
	m.refreshRows()
}

func (m Model) updateForm(key tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.form == nil {
		m.mode = modeList
		return m, nil
	}

	switch key.String() {
	case "esc":
		m.status = "Отменено"
		m.closeForm()
		return m, nil
	case "tab", "down":
		m.form.setCurrentValue(m.input.Value())
		m.form.index = (m.form.index + 1) % len(formFields())
		m.input.SetValue(m.form.currentValue())
		m.input.Placeholder = formFields()[m.form.index]
		return m, nil
	case "shift+tab", "up":
		m.form.setCurrentValue(m.input.Value())
		m.form.index = (m.form.index - 1 + len(formFields())) % len(formFields())
		m.input.SetValue(m.form.currentValue())
		m.input.Placeholder = formFields()[m.form.index]
		return m, nil
	case "enter":
		m.form.setCurrentValue(m.input.Value())
		if m.form.index < len(formFields())-1 {
			m.form.index++
			m.input.SetValue(m.form.currentValue())
			m.input.Placeholder = formFields()[m.form.index]
			return m, nil
		}
		return m.saveForm()
	default:
		var cmd tea.Cmd
		m.input, cmd = m.input.Update(key)
		return m, cmd
	}
}

func (m Model) saveForm() (tea.Model, tea.Cmd) {
	f := m.form
	input := service.TaskInput{
		Title:       f.title,
		Description: f.descr,
		CategoryID:  model.CategoryID(f.category),
		Visibility:  model.Visibility(f.visibility),
		Date:        f.date,
		TimeStart:   f.timeStart,
		TimeEnd:     f.timeEnd,
		PrizeText:   f.prize,
	}

	var outcome service.Outcome
	var err error
	if f.taskID == 0 {
		_, outcome, err = m.tasks.Create(m.ctx, m.user, input)
	} else {
		_, outcome, err = m.tasks.Update(m.ctx, m.user, f.taskID, input)
	}

	switch {
	case err == nil:
		if f.taskID == 0 {
			m.status = "Задача добавлена"
		} else {
			m.status = "Задача обновлена"
		}
		if !outcome.Persisted {
			m.status += " (не удалось сохранить на диск)"
		}
		m.closeForm()
	case errors.Is(err, service.ErrTaskNotFound):
		// Deleted out from under the edit; nothing left to update.
		m.status = ""
		m.closeForm()
	default:
		var ve *service.ValidationError
		if errors.As(err, &ve) {
			m.form.message = validationMessageRu(ve)
		} else {
			m.form.message = err.Error()
		}
	}
	return m, nil
}

func validationMessageRu(ve *service.ValidationError) string {
	switch ve.Field {
	case "title":
		return "Введите название задачи"
	case "category":
		return "Выберите доступную категорию"
	case "visibility":
		return "Видимость: personal или shared"
	case "date":
		return "Дата в формате ГГГГ-ММ-ДД"
	case "timeStart", "timeEnd":
		return "Время в формате ЧЧ:ММ"
	default:
		return ve.Message
	}
}

func (m Model) viewForm() string {
	f := m.form
	if f == nil {
		return ""
	}

	header := "Новая задача"
	if f.taskID != 0 {
		header = "Изменение задачи"
	}

	var b strings.Builder
	b.WriteString(titleStyle.Render(header))
	b.WriteString("\n\n")

	values := []string{f.title, f.descr, f.category, f.visibility, f.date, f.timeStart, f.timeEnd, f.prize}
	for i, name := range formFields() {
		prefix := " "
		if i == f.index {
			prefix = ">"
		}
		val := values[i]
		if strings.TrimSpace(val) == "" {
			val = dimStyle.Render("(пусто)")
		}
		b.WriteString(fmt.Sprintf("%s %-28s : %s\n", prefix, name, val))
	}

	if f.index == 2 {
		var opts []string
		for _, cat := range m.access.AccessibleCategories(m.user) {
			opts = append(opts, string(cat.ID))
		}
		b.WriteString("\n")
		b.WriteString(dimStyle.Render("Доступно: " + strings.Join(opts, ", ")))
	}

	b.WriteString("\n\n")
	b.WriteString(m.input.View())
	b.WriteString("\n\n")

	if f.message != "" {
		b.WriteString(errorStyle.Render(f.message))
		b.WriteString("\n")
	}
	b.WriteString(dimStyle.Render("enter — далее/сохранить • tab — следующее поле • esc — отмена"))
	b.WriteString("\n")
	return b.String()
}
