package tui

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

const landingArt = `
███╗   ███╗ █████╗ ██████╗  █████╗
████╗ ████║██╔══██╗██╔══██╗██╔══██╗
██╔████╔██║███████║██████╔╝███████║
██║╚██╔╝██║██╔══██║██╔═══╝ ██╔══██║
██║ ╚═╝ ██║██║  ██║██║     ██║  ██║
╚═╝     ╚═╝╚═╝  ╚═╝╚═╝     ╚═╝  ╚═╝`

// landingModel is the first screen: a banner plus the route into auth.
type landingModel struct {
	theme   Theme
	ready   bool
	proceed bool

	width  int
	height int
}

func newLandingModel(theme Theme, ready bool) landingModel {
	return landingModel{theme: theme, ready: ready}
}

func (m *landingModel) setSize(w, h int) {
	m.width, m.height = w, h
}

func (m landingModel) Update(msg tea.Msg) (landingModel, tea.Cmd) {
	if key, ok := msg.(tea.KeyMsg); ok {
		switch key.String() {
		case "enter":
			m.proceed = true
		case "q", "esc":
			return m, tea.Quit
		}
	}
	return m, nil
}

func (m landingModel) View() string {
	t := m.theme

	var b strings.Builder
	b.WriteString(t.TopBarBadge.Render(strings.TrimPrefix(landingArt, "\n")))
	b.WriteString("\n\n")
	b.WriteString(t.TopBarTitle.Render("Mapúa University Assistant"))
	b.WriteString("\n")
	b.WriteString(t.TopBarMeta.Render("Ask about admissions, programs, tuition and campus life."))
	b.WriteString("\n\n")
	if m.ready {
		b.WriteString(t.Banner.Render("● knowledge base ready"))
	} else {
		b.WriteString(t.ErrBanner.Render("● knowledge base empty — answers are unavailable until ingest runs"))
	}
	b.WriteString("\n\n")
	b.WriteString(t.Footer.Render("enter to sign in · q to quit"))

	card := b.String()
	if m.width == 0 || m.height == 0 {
		return card
	}
	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, card)
}
