package tui

import (
	tea "github.com/charmbracelet/bubbletea"

	"mapa/internal/app"
)

type page int

const (
	pageLanding page = iota
	pageAuth
	pageChat
)

// Model is the root bubbletea model. It routes between the landing,
// authentication and chat pages and owns the shared theme.
type Model struct {
	app   *app.Application
	theme Theme
	page  page

	width  int
	height int

	landing landingModel
	auth    authModel
	chat    chatModel
}

func NewModel(application *app.Application) Model {
	theme := NewTheme()
	return Model{
		app:     application,
		theme:   theme,
		page:    pageLanding,
		landing: newLandingModel(theme, application.Ready()),
		auth:    newAuthModel(theme, application.Users),
	}
}

// Run starts the interactive program and blocks until it exits.
func Run(application *app.Application) error {
	p := tea.NewProgram(NewModel(application), tea.WithAltScreen())
	_, err := p.Run()
	return err
}

func (m Model) Init() tea.Cmd {
	return nil
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.landing.setSize(msg.Width, msg.Height)
		m.auth.setSize(msg.Width, msg.Height)
		m.chat.setSize(msg.Width, msg.Height)
		return m, nil

	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return m, tea.Quit
		}

	case authDoneMsg:
		m.chat = newChatModel(m.theme, m.app, msg.username)
		m.chat.setSize(m.width, m.height)
		m.page = pageChat
		return m, m.chat.Init()

	case logoutMsg, accountDeletedMsg:
		m.auth = newAuthModel(m.theme, m.app.Users)
		m.auth.setSize(m.width, m.height)
		m.page = pageLanding
		return m, nil
	}

	var cmd tea.Cmd
	switch m.page {
	case pageLanding:
		m.landing, cmd = m.landing.Update(msg)
		if m.landing.proceed {
			m.landing.proceed = false
			m.page = pageAuth
			return m, m.auth.Init()
		}
	case pageAuth:
		m.auth, cmd = m.auth.Update(msg)
	case pageChat:
		m.chat, cmd = m.chat.Update(msg)
	}
	return m, cmd
}

func (m Model) View() string {
	switch m.page {
	case pageAuth:
		return m.auth.View()
	case pageChat:
		return m.chat.View()
	default:
		return m.landing.View()
	}
}
