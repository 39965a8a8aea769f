package ui

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/abelbrown/nurture/internal/config"
)

// Styles groups the lipgloss styles for one theme/dark-mode combination.
// The UI owns presentation entirely; the core never sees a color.
type Styles struct {
	Display   lipgloss.Style // big timer readout
	Overdue   lipgloss.Style // timer readout while overdue
	Sub       lipgloss.Style // line under the timer
	Clock     lipgloss.Style // live wall clock
	Title     lipgloss.Style
	Selected  lipgloss.Style
	Normal    lipgloss.Style
	Muted     lipgloss.Style
	Badge     lipgloss.Style // feed-kind badge
	Banner    lipgloss.Style // reminder banner
	Encourage lipgloss.Style
	Error     lipgloss.Style
	Warning   lipgloss.Style
	StatusBar lipgloss.Style
	StatusKey lipgloss.Style
}

// themeAccents maps each theme to its primary/highlight colors.
var themeAccents = map[config.Theme][2]lipgloss.Color{
	config.ThemeDefault: {lipgloss.Color("62"), lipgloss.Color("212")},
	config.ThemeRose:    {lipgloss.Color("211"), lipgloss.Color("217")},
	config.ThemeMint:    {lipgloss.Color("78"), lipgloss.Color("121")},
}

// NewStyles builds the style set for the given theme and dark-mode flag.
func NewStyles(theme config.Theme, dark bool) Styles {
	accents, ok := themeAccents[theme]
	if !ok {
		accents = themeAccents[config.ThemeDefault]
	}
	primary, highlight := accents[0], accents[1]

	text := lipgloss.Color("255")
	muted := lipgloss.Color("241")
	faint := lipgloss.Color("240")
	badgeBg := lipgloss.Color("236")
	if !dark {
		text = lipgloss.Color("235")
		muted = lipgloss.Color("243")
		faint = lipgloss.Color("245")
		badgeBg = lipgloss.Color("253")
	}

	return Styles{
		Display: lipgloss.NewStyle().
			Bold(true).
			Foreground(primary).
			Padding(0, 1),
		Overdue: lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("196")).
			Padding(0, 1),
		Sub:   lipgloss.NewStyle().Foreground(muted).Padding(0, 1),
		Clock: lipgloss.NewStyle().Foreground(faint).Padding(0, 1),
		Title: lipgloss.NewStyle().
			Bold(true).
			Foreground(highlight).
			Padding(0, 1),
		Selected: lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("255")).
			Background(primary).
			Padding(0, 1),
		Normal: lipgloss.NewStyle().Foreground(text).Padding(0, 1),
		Muted:  lipgloss.NewStyle().Foreground(muted).Padding(0, 1),
		Badge: lipgloss.NewStyle().
			Foreground(primary).
			Background(badgeBg).
			Padding(0, 1),
		Banner: lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("255")).
			Background(lipgloss.Color("196")).
			Padding(0, 1),
		Encourage: lipgloss.NewStyle().
			Italic(true).
			Foreground(highlight).
			Padding(0, 1),
		Error: lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("196")).
			Padding(0, 1),
		Warning: lipgloss.NewStyle().
			Foreground(lipgloss.Color("214")).
			Padding(0, 1),
		StatusBar: lipgloss.NewStyle().
			Foreground(text).
			Background(badgeBg).
			Padding(0, 1),
		StatusKey: lipgloss.NewStyle().
			Foreground(highlight).
			Bold(true),
	}
}
