// Package ui is the terminal front end: login screen, bucketed task lists,
// task form, month calendar and the side menu. All planner logic lives in
// the service layer; this package only wires keys to it.
package ui

import (
	"context"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"family-planner/internal/model"
	"family-planner/internal/service"
)

type mode int

const (
	modeLogin mode = iota
	modeList
	modeForm
	modeDetails
	modeCompleted
	modeCategories
	modeCalendar
	modeMenu
	modeConfirmDelete
	modeConfirmReset
)

var (
	titleStyle    = lipgloss.NewStyle().Bold(true)
	sectionStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("81"))
	dimStyle      = lipgloss.NewStyle().Faint(true)
	errorStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("9"))
	selectedStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("212"))
	todayStyle    = lipgloss.NewStyle().Reverse(true).Bold(true)
	taskDayStyle  = lipgloss.NewStyle().Underline(true)
)

// Model is the single bubbletea model for the whole app.
type Model struct {
	ctx    context.Context
	auth   *service.AuthService
	tasks  *service.TaskService
	access *service.AccessPolicy

	user   *model.User
	mode   mode
	status string

	// login screen
	nameInput  textinput.Model
	pinInput   textinput.Model
	loginFocus int
	loginErr   string

	// bucket list
	rows   []row
	cursor int

	// side menu
	menuCursor int

	// task form
	form  *formState
	input textinput.Model

	// details / delete confirmation
	detail        *model.Task
	pendingDelete *model.Task

	// calendar
	calYear   int
	calMonth  time.Month
	calCursor int
	calCells  []service.CalendarCell
}

// New assembles the initial model on the login screen, pre-filled from the
// last successful login when one is stored.
func New(ctx context.Context, auth *service.AuthService, tasks *service.TaskService, access *service.AccessPolicy) Model {
	name := textinput.New()
	name.Placeholder = "Имя"
	name.CharLimit = 64
	name.Width = 24
	name.Focus()

	pin := textinput.New()
	pin.Placeholder = "Пин-код"
	pin.CharLimit = 4
	pin.Width = 24
	pin.EchoMode = textinput.EchoPassword
	pin.EchoCharacter = '•'

	input := textinput.New()
	input.CharLimit = 256
	input.Width = 40

	m := Model{
		ctx:    ctx,
		auth:   auth,
		tasks:  tasks,
		access: access,
		mode:   modeLogin,

		nameInput: name,
		pinInput:  pin,
		input:     input,
	}

	if last := auth.LastLogin(ctx); last != nil {
		m.nameInput.SetValue(last.Name)
		m.pinInput.SetValue(last.PIN)
	}

	return m
}

// Run starts the TUI and blocks until the user quits.
func Run(ctx context.Context, auth *service.AuthService, tasks *service.TaskService, access *service.AccessPolicy) error {
	program := tea.NewProgram(New(ctx, auth, tasks, access))
	_, err := program.Run()
	return err
}

func (m Model) Init() tea.Cmd {
	return textinput.Blink
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	key, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}
	if key.String() == "ctrl+c" {
		return m, tea.Quit
	}

	switch m.mode {
	case modeLogin:
		return m.updateLogin(key)
	case modeList:
		return m.updateList(key)
	case modeForm:
		return m.updateForm(key)
	case modeDetails, modeCompleted, modeCategories:
		return m.updateReadOnly(key)
	case modeCalendar:
		return m.updateCalendar(key)
	case modeMenu:
		return m.updateMenu(key)
	case modeConfirmDelete:
		return m.updateConfirmDelete(key)
	case modeConfirmReset:
		return m.updateConfirmReset(key)
	}
	return m, nil
}

func (m Model) View() string {
	switch m.mode {
	case modeLogin:
		return m.viewLogin()
	case modeForm:
		return m.viewForm()
	case modeDetails:
		return m.viewDetails()
	case modeCompleted:
		return m.viewCompleted()
	case modeCategories:
		return m.viewCategories()
	case modeCalendar:
		return m.viewCalendar()
	case modeMenu:
		return m.viewMenu()
	default:
		return m.viewList()
	}
}

// refreshRows rebuilds the bucketed list for the active user and clamps the
// cursor onto a task row.
func (m *Model) refreshRows() {
	m.rows = buildRows(m.tasks.Visible(m.user), time.Now())
	if m.cursor >= len(m.rows) {
		m.cursor = len(m.rows) - 1
	}
	if m.cursor < 0 {
		m.cursor = 0
	}
	m.cursor = nearestTaskRow(m.rows, m.cursor)
}

func (m *Model) logout() {
	m.user = nil
	m.rows = nil
	m.cursor = 0
	m.status = ""
	m.loginErr = ""
	m.nameInput.SetValue("")
	m.pinInput.SetValue("")
	m.loginFocus = 0
	m.nameInput.Focus()
	m.pinInput.Blur()
	m.mode = modeLogin
}
