package tui

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"mapa/internal/app"
)

const sidebarWidth = 30

var spinFrames = []string{"⠋", "⠙", "⠹", "⠸", "⠼", "⠴", "⠦", "⠧", "⠇", "⠏"}

type chatFocus int

const (
	focusInput chatFocus = iota
	focusSidebar
)

// chatModel is the signed-in workspace: conversation sidebar, transcript
// viewport and the question input.
type chatModel struct {
	theme    Theme
	app      *app.Application
	session  *app.Session
	username string

	viewport    viewport.Model
	input       textarea.Model
	renameInput textinput.Model
	md          *MarkdownRenderer

	focus     chatFocus
	selected  int
	pending   bool
	spinFrame int
	banner    string
	bannerErr bool

	width  int
	height int
	sized  bool
}

func newChatModel(theme Theme, application *app.Application, username string) chatModel {
	in := textarea.New()
	in.Placeholder = "Ask about Mapúa…"
	in.CharLimit = 2000
	in.SetHeight(3)
	in.ShowLineNumbers = false
	in.Focus()

	rn := textinput.New()
	rn.CharLimit = 120
	rn.Width = sidebarWidth - 6

	return chatModel{
		theme:       theme,
		app:         application,
		session:     application.SessionFor(username),
		username:    username,
		input:       in,
		renameInput: rn,
		md:          NewMarkdownRenderer(theme),
	}
}

func (m *chatModel) setSize(w, h int) {
	m.width, m.height = w, h
	if w == 0 || h == 0 {
		return
	}
	transcriptWidth := w - sidebarWidth - 6
	if transcriptWidth < 20 {
		transcriptWidth = 20
	}
	transcriptHeight := h - m.input.Height() - 7
	if transcriptHeight < 3 {
		transcriptHeight = 3
	}
	if !m.sized {
		m.viewport = viewport.New(transcriptWidth, transcriptHeight)
		m.sized = true
	} else {
		m.viewport.Width = transcriptWidth
		m.viewport.Height = transcriptHeight
	}
	m.input.SetWidth(transcriptWidth)
	m.refreshTranscript()
}

func (m chatModel) Init() tea.Cmd {
	return textarea.Blink
}

func spinTick() tea.Cmd {
	return tea.Tick(120*time.Millisecond, func(time.Time) tea.Msg { return spinMsg{} })
}

func (m chatModel) Update(msg tea.Msg) (chatModel, tea.Cmd) {
	switch msg := msg.(type) {
	case spinMsg:
		if !m.pending {
			return m, nil
		}
		m.spinFrame = (m.spinFrame + 1) % len(spinFrames)
		return m, spinTick()

	case answerMsg:
		m.pending = false
		if msg.err != nil {
			m.banner, m.bannerErr = answerErrorText(msg.err), true
		} else {
			m.session.AppendTurnTo(msg.conversationID, app.Turn{Role: app.RoleAssistant, Text: msg.answer})
		}
		m.refreshTranscript()
		m.viewport.GotoBottom()
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)
	}

	return m.updateFocused(msg)
}

func (m chatModel) handleKey(key tea.KeyMsg) (chatModel, tea.Cmd) {
	// Account deletion confirmation takes over the keyboard.
	if m.session.ConfirmingAccountDelete() {
		switch key.String() {
		case "y", "Y":
			m.session.ResolveAccountDelete()
			if !m.app.DeleteAccount(m.username) {
				m.banner, m.bannerErr = "Failed to delete account", true
				return m, nil
			}
			return m, func() tea.Msg { return accountDeletedMsg{} }
		case "n", "N", "esc":
			m.session.ResolveAccountDelete()
		}
		return m, nil
	}

	if m.session.RenamingID() != "" {
		switch key.String() {
		case "enter":
			m.session.Rename(m.session.RenamingID(), m.renameInput.Value())
			m.renameInput.Blur()
			return m, nil
		case "esc":
			m.session.CancelRename()
			m.renameInput.Blur()
			return m, nil
		}
		var cmd tea.Cmd
		m.renameInput, cmd = m.renameInput.Update(key)
		return m, cmd
	}

	switch key.String() {
	case "ctrl+n":
		m.session.NewConversation()
		m.selected = 0
		m.banner, m.bannerErr = "", false
		m.refreshTranscript()
		return m, nil

	case "ctrl+l":
		return m, func() tea.Msg { return logoutMsg{} }

	case "ctrl+d":
		m.session.RequestAccountDelete()
		return m, nil

	case "tab":
		if m.focus == focusInput {
			m.focus = focusSidebar
			m.input.Blur()
		} else {
			m.focus = focusInput
			m.input.Focus()
		}
		return m, nil
	}

	if m.focus == focusSidebar {
		return m.handleSidebarKey(key)
	}

	if key.String() == "enter" {
		return m.submitQuery()
	}
	return m.updateFocused(key)
}

func (m chatModel) handleSidebarKey(key tea.KeyMsg) (chatModel, tea.Cmd) {
	rows := m.displayOrder()
	if m.selected >= len(rows) {
		m.selected = len(rows) - 1
	}
	switch key.String() {
	case "up", "k":
		if m.selected > 0 {
			m.selected--
		}
	case "down", "j":
		if m.selected < len(rows)-1 {
			m.selected++
		}
	case "enter":
		m.session.Activate(rows[m.selected].ID)
		m.banner, m.bannerErr = "", false
		m.refreshTranscript()
	case "m":
		m.session.ToggleContextMenu(rows[m.selected].ID)
	case "r":
		row := rows[m.selected]
		if m.session.MenuID() == row.ID {
			m.session.StartRename(row.ID)
			m.renameInput.SetValue(row.Title)
			m.renameInput.CursorEnd()
			m.renameInput.Focus()
		}
	case "d":
		row := rows[m.selected]
		if m.session.MenuID() == row.ID {
			m.session.Delete(row.ID)
			if n := len(m.session.Conversations()); m.selected >= n {
				m.selected = n - 1
			}
			m.refreshTranscript()
		}
	case "esc":
		if id := m.session.MenuID(); id != "" {
			m.session.ToggleContextMenu(id)
		} else {
			m.focus = focusInput
			m.input.Focus()
		}
	}
	return m, nil
}

func (m chatModel) submitQuery() (chatModel, tea.Cmd) {
	query := strings.TrimSpace(m.input.Value())
	if query == "" || m.pending {
		return m, nil
	}
	if !m.app.Ready() {
		m.banner = "The knowledge base is empty. Run `mapa ingest` first."
		m.bannerErr = true
		return m, nil
	}

	m.input.Reset()
	m.banner, m.bannerErr = "", false
	m.session.AppendTurn(app.Turn{Role: app.RoleUser, Text: query})
	m.pending = true
	m.spinFrame = 0
	m.refreshTranscript()
	m.viewport.GotoBottom()

	application := m.app
	askingID := m.session.ActiveID()
	ask := func() tea.Msg {
		answer, err := application.Ask(context.Background(), query)
		return answerMsg{conversationID: askingID, query: query, answer: answer, err: err}
	}
	return m, tea.Batch(ask, spinTick())
}

func (m chatModel) updateFocused(msg tea.Msg) (chatModel, tea.Cmd) {
	var cmds []tea.Cmd
	var cmd tea.Cmd
	if m.focus == focusInput {
		m.input, cmd = m.input.Update(msg)
		cmds = append(cmds, cmd)
	}
	m.viewport, cmd = m.viewport.Update(msg)
	cmds = append(cmds, cmd)
	return m, tea.Batch(cmds...)
}

func answerErrorText(err error) string {
	var gerr *app.GenerationError
	switch {
	case errors.Is(err, app.ErrNotReady):
		return "The knowledge base is empty. Run `mapa ingest` first."
	case errors.As(err, &gerr):
		return "The assistant could not produce an answer: " + gerr.Err.Error()
	default:
		return err.Error()
	}
}

// displayOrder returns the sidebar rows newest-first.
func (m chatModel) displayOrder() []*app.Conversation {
	conversations := m.session.Conversations()
	rows := make([]*app.Conversation, len(conversations))
	for i, c := range conversations {
		rows[len(conversations)-1-i] = c
	}
	return rows
}

func (m *chatModel) refreshTranscript() {
	if !m.sized {
		return
	}
	m.viewport.SetContent(m.renderTranscript(m.viewport.Width))
}

func (m chatModel) renderTranscript(width int) string {
	turns := m.session.WorkingTranscript()
	t := m.theme

	if len(turns) == 0 {
		var b strings.Builder
		b.WriteString(t.TopBarTitle.Render("Hello, Mapúan! 👋"))
		b.WriteString("\n\n")
		b.WriteString(t.TopBarMeta.Render("Ask me anything about Mapúa University."))
		return b.String()
	}

	var b strings.Builder
	for i, turn := range turns {
		if i > 0 {
			b.WriteString("\n\n")
		}
		if turn.Role == app.RoleUser {
			b.WriteString(t.RoleYou.Render("You"))
			b.WriteString("\n")
			b.WriteString(lipgloss.NewStyle().Width(width).Render(turn.Text))
		} else {
			b.WriteString(t.RoleAI.Render("MAPA"))
			b.WriteString("\n")
			b.WriteString(m.md.Render(turn.Text, width))
		}
	}
	return b.String()
}

func (m chatModel) renderSidebar(height int) string {
	t := m.theme
	var b strings.Builder
	b.WriteString(t.SidebarSection.Render("Conversations"))
	b.WriteString("\n")

	for i, c := range m.displayOrder() {
		title := app.TruncateTitle(c.Title)
		style := t.SidebarRow
		marker := "  "
		if c.ID == m.session.ActiveID() {
			style = t.SidebarRowActive
			marker = "● "
		}
		if m.focus == focusSidebar && i == m.selected {
			style = t.SidebarRowSel
			marker = "> "
		}
		b.WriteString(style.Render(marker + title))
		b.WriteString("\n")

		if m.session.RenamingID() == c.ID {
			b.WriteString("  " + m.renameInput.View())
			b.WriteString("\n")
		} else if m.session.MenuID() == c.ID {
			b.WriteString(t.SidebarMenu.Render("    r rename · d delete"))
			b.WriteString("\n")
		}
	}

	pane := t.Pane
	if m.focus == focusSidebar {
		pane = t.PaneFocused
	}
	return pane.Width(sidebarWidth).Height(height).Render(b.String())
}

func (m chatModel) View() string {
	if !m.sized {
		return "loading…"
	}
	t := m.theme

	top := lipgloss.JoinHorizontal(lipgloss.Center,
		t.TopBarBadge.Render(" MAPA "),
		t.TopBar.Render("  "),
		t.TopBarTitle.Render(app.TruncateTitle(m.session.Active().Title)),
		t.TopBarMeta.Render(fmt.Sprintf("  ·  %s", m.username)),
	)

	transcriptPane := t.Pane
	if m.focus == focusInput {
		transcriptPane = t.PaneFocused
	}
	body := lipgloss.JoinHorizontal(lipgloss.Top,
		m.renderSidebar(m.viewport.Height),
		transcriptPane.Width(m.viewport.Width+2).Height(m.viewport.Height).Render(m.viewport.View()),
	)

	inputBox := t.InputBox
	if m.focus == focusInput {
		inputBox = t.InputBoxF
	}

	var status string
	switch {
	case m.session.ConfirmingAccountDelete():
		status = t.ErrBanner.Render("Delete your account and all conversations? y/n")
	case m.pending:
		status = t.Spinner.Render(spinFrames[m.spinFrame]) + t.TopBarMeta.Render(" thinking…")
	case m.banner != "":
		if m.bannerErr {
			status = t.ErrBanner.Render(m.banner)
		} else {
			status = t.Banner.Render(m.banner)
		}
	}

	footer := t.Footer.Render("enter send · tab sidebar · ctrl+n new chat · ctrl+l logout · ctrl+d delete account · ctrl+c quit")

	return lipgloss.JoinVertical(lipgloss.Left,
		top,
		body,
		inputBox.Render(m.input.View()),
		status,
		footer,
	)
}
