package tui

import (
	"errors"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"mapa/internal/app"
)

type authMode int

const (
	modeSignIn authMode = iota
	modeSignUp
)

// authModel renders the sign-in / sign-up screen. Sign-up auto-logs the
// new account in on success.
type authModel struct {
	theme Theme
	users *app.UserStore

	mode   authMode
	inputs []textinput.Model
	focus  int
	errMsg string

	width  int
	height int
}

func newAuthModel(theme Theme, users *app.UserStore) authModel {
	m := authModel{theme: theme, users: users}
	m.buildInputs()
	return m
}

func (m *authModel) buildInputs() {
	n := 2
	if m.mode == modeSignUp {
		n = 3
	}
	m.inputs = make([]textinput.Model, n)
	labels := []string{"username", "password", "confirm password"}
	for i := range m.inputs {
		in := textinput.New()
		in.Placeholder = labels[i]
		in.CharLimit = 64
		in.Width = 32
		if i > 0 {
			in.EchoMode = textinput.EchoPassword
			in.EchoCharacter = '•'
		}
		m.inputs[i] = in
	}
	m.focus = 0
	m.inputs[0].Focus()
}

func (m *authModel) setSize(w, h int) {
	m.width, m.height = w, h
}

func (m authModel) Init() tea.Cmd {
	return textinput.Blink
}

func (m authModel) Update(msg tea.Msg) (authModel, tea.Cmd) {
	key, ok := msg.(tea.KeyMsg)
	if !ok {
		return m.updateInputs(msg)
	}

	switch key.String() {
	case "esc":
		return m, func() tea.Msg { return logoutMsg{} }

	case "ctrl+t":
		if m.mode == modeSignIn {
			m.mode = modeSignUp
		} else {
			m.mode = modeSignIn
		}
		m.errMsg = ""
		m.buildInputs()
		return m, textinput.Blink

	case "tab", "down":
		m.setFocus((m.focus + 1) % len(m.inputs))
		return m, nil

	case "shift+tab", "up":
		m.setFocus((m.focus - 1 + len(m.inputs)) % len(m.inputs))
		return m, nil

	case "enter":
		return m.submit()
	}

	return m.updateInputs(msg)
}

func (m *authModel) setFocus(i int) {
	m.inputs[m.focus].Blur()
	m.focus = i
	m.inputs[m.focus].Focus()
}

func (m authModel) updateInputs(msg tea.Msg) (authModel, tea.Cmd) {
	cmds := make([]tea.Cmd, len(m.inputs))
	for i := range m.inputs {
		m.inputs[i], cmds[i] = m.inputs[i].Update(msg)
	}
	return m, tea.Batch(cmds...)
}

func (m authModel) submit() (authModel, tea.Cmd) {
	username := strings.TrimSpace(m.inputs[0].Value())
	password := m.inputs[1].Value()

	if m.mode == modeSignIn {
		if !m.users.Verify(username, password) {
			m.errMsg = "Invalid username or password"
			return m, nil
		}
		m.errMsg = ""
		return m, func() tea.Msg { return authDoneMsg{username: username} }
	}

	confirm := m.inputs[2].Value()
	if err := m.users.Create(username, password, confirm); err != nil {
		var verr *app.ValidationError
		switch {
		case errors.As(err, &verr):
			m.errMsg = verr.Reason
		case errors.Is(err, app.ErrUserExists):
			m.errMsg = "Username already exists"
		default:
			m.errMsg = "Could not save the account, try again"
		}
		return m, nil
	}
	m.errMsg = ""
	return m, func() tea.Msg { return authDoneMsg{username: username} }
}

func (m authModel) View() string {
	t := m.theme

	title := "Sign in"
	switchHint := "ctrl+t to create an account"
	if m.mode == modeSignUp {
		title = "Create account"
		switchHint = "ctrl+t to sign in instead"
	}

	var b strings.Builder
	b.WriteString(t.TopBarBadge.Render("MAPA"))
	b.WriteString("  ")
	b.WriteString(t.TopBarTitle.Render(title))
	b.WriteString("\n\n")
	for i := range m.inputs {
		box := t.InputBox
		if i == m.focus {
			box = t.InputBoxF
		}
		b.WriteString(box.Render(m.inputs[i].View()))
		b.WriteString("\n")
	}
	if m.errMsg != "" {
		b.WriteString("\n")
		b.WriteString(t.ErrBanner.Render(m.errMsg))
		b.WriteString("\n")
	}
	b.WriteString("\n")
	b.WriteString(t.Footer.Render("enter to submit · tab to move · " + switchHint + " · esc back"))

	card := b.String()
	if m.width == 0 || m.height == 0 {
		return card
	}
	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, card)
}
