package tui

import (
	"os"

	"github.com/charmbracelet/lipgloss"
)

type ThemeName string

const (
	// ThemeCardinal is the default: the university's crimson and gold.
	ThemeCardinal ThemeName = "cardinal"
	ThemePlain    ThemeName = "plain"
)

type Theme struct {
	Name ThemeName

	// Colors
	TextPrimary lipgloss.AdaptiveColor
	TextMuted   lipgloss.AdaptiveColor
	TextFaint   lipgloss.AdaptiveColor

	Accent   lipgloss.AdaptiveColor
	Gold     lipgloss.AdaptiveColor
	Success  lipgloss.AdaptiveColor
	Error    lipgloss.AdaptiveColor
	Border   lipgloss.AdaptiveColor
	BorderHi lipgloss.AdaptiveColor

	// Styles
	TopBar      lipgloss.Style
	TopBarTitle lipgloss.Style
	TopBarBadge lipgloss.Style
	TopBarMeta  lipgloss.Style

	Pane        lipgloss.Style
	PaneFocused lipgloss.Style
	PaneTitle   lipgloss.Style
	Footer      lipgloss.Style
	InputBox    lipgloss.Style
	InputBoxF   lipgloss.Style
	Spinner     lipgloss.Style
	Banner      lipgloss.Style
	ErrBanner   lipgloss.Style

	RoleYou lipgloss.Style
	RoleAI  lipgloss.Style
	RoleSys lipgloss.Style
	RoleErr lipgloss.Style

	SidebarRow       lipgloss.Style
	SidebarRowActive lipgloss.Style
	SidebarRowSel    lipgloss.Style
	SidebarMenu      lipgloss.Style
	SidebarSection   lipgloss.Style
}

func NewTheme() Theme {
	name := ThemeName(os.Getenv("MAPA_THEME"))
	if name == "" {
		name = ThemeCardinal
	}
	if os.Getenv("MAPA_NO_COLOR") == "1" || name == ThemePlain {
		return newPlainTheme()
	}
	return newCardinalTheme()
}

func newCardinalTheme() Theme {
	t := Theme{
		Name:        ThemeCardinal,
		TextPrimary: lipgloss.AdaptiveColor{Light: "#1a1a1a", Dark: "#f2f2f2"},
		TextMuted:   lipgloss.AdaptiveColor{Light: "#4a5568", Dark: "#c7c7c7"},
		TextFaint:   lipgloss.AdaptiveColor{Light: "#718096", Dark: "#9aa0a6"},

		Accent:   lipgloss.AdaptiveColor{Light: "#C8102E", Dark: "#ff5c70"},
		Gold:     lipgloss.AdaptiveColor{Light: "#b8860b", Dark: "#FFB81C"},
		Success:  lipgloss.AdaptiveColor{Light: "#0f766e", Dark: "#46d1b7"},
		Error:    lipgloss.AdaptiveColor{Light: "#b42318", Dark: "#ff7a7a"},
		Border:   lipgloss.AdaptiveColor{Light: "#cbd5e0", Dark: "#3a3a3a"},
		BorderHi: lipgloss.AdaptiveColor{Light: "#C8102E", Dark: "#ff5c70"},
	}
	return t.buildStyles()
}

func newPlainTheme() Theme {
	t := Theme{
		Name:        ThemePlain,
		TextPrimary: lipgloss.AdaptiveColor{Light: "#000000", Dark: "#ffffff"},
		TextMuted:   lipgloss.AdaptiveColor{Light: "#333333", Dark: "#dddddd"},
		TextFaint:   lipgloss.AdaptiveColor{Light: "#555555", Dark: "#bbbbbb"},

		Accent:   lipgloss.AdaptiveColor{Light: "#000000", Dark: "#ffffff"},
		Gold:     lipgloss.AdaptiveColor{Light: "#000000", Dark: "#ffffff"},
		Success:  lipgloss.AdaptiveColor{Light: "#000000", Dark: "#ffffff"},
		Error:    lipgloss.AdaptiveColor{Light: "#000000", Dark: "#ffffff"},
		Border:   lipgloss.AdaptiveColor{Light: "#555555", Dark: "#777777"},
		BorderHi: lipgloss.AdaptiveColor{Light: "#000000", Dark: "#ffffff"},
	}
	return t.buildStyles()
}

func (t Theme) buildStyles() Theme {
	t.TopBar = lipgloss.NewStyle().Foreground(t.TextMuted)
	t.TopBarTitle = lipgloss.NewStyle().Bold(true).Foreground(t.Gold)
	t.TopBarBadge = lipgloss.NewStyle().Bold(true).Foreground(t.Accent)
	t.TopBarMeta = lipgloss.NewStyle().Foreground(t.TextMuted)

	t.Pane = lipgloss.NewStyle().Border(lipgloss.NormalBorder()).BorderForeground(t.Border).Padding(0, 1)
	t.PaneFocused = lipgloss.NewStyle().Border(lipgloss.NormalBorder()).BorderForeground(t.BorderHi).Padding(0, 1)
	t.PaneTitle = lipgloss.NewStyle().Bold(true).Foreground(t.TextMuted)
	t.Footer = lipgloss.NewStyle().Foreground(t.TextMuted)
	t.InputBox = lipgloss.NewStyle().Border(lipgloss.NormalBorder()).BorderForeground(t.Border).Padding(0, 1)
	t.InputBoxF = lipgloss.NewStyle().Border(lipgloss.NormalBorder()).BorderForeground(t.BorderHi).Padding(0, 1)
	t.Spinner = lipgloss.NewStyle().Bold(true).Foreground(t.Accent)
	t.Banner = lipgloss.NewStyle().Foreground(t.Success)
	t.ErrBanner = lipgloss.NewStyle().Bold(true).Foreground(t.Error)

	t.RoleYou = lipgloss.NewStyle().Bold(true).Foreground(t.Gold)
	t.RoleAI = lipgloss.NewStyle().Bold(true).Foreground(t.Accent)
	t.RoleSys = lipgloss.NewStyle().Foreground(t.TextMuted)
	t.RoleErr = lipgloss.NewStyle().Bold(true).Foreground(t.Error)

	t.SidebarRow = lipgloss.NewStyle().Foreground(t.TextMuted)
	t.SidebarRowActive = lipgloss.NewStyle().Bold(true).Foreground(t.Accent)
	t.SidebarRowSel = lipgloss.NewStyle().Bold(true).Foreground(t.TextPrimary)
	t.SidebarMenu = lipgloss.NewStyle().Foreground(t.TextFaint)
	t.SidebarSection = lipgloss.NewStyle().Bold(true).Foreground(t.TextFaint)
	return t
}
