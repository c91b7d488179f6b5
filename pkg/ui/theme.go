package ui

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
)

type Scheme string

const (
	SchemeLight Scheme = "light"
	SchemeDark  Scheme = "dark"
)

// DetectScheme resolves the color scheme: an explicit override wins when it
// names a known scheme, otherwise the terminal background decides. Anything
// unrecognized falls back to light.
func DetectScheme(override string) Scheme {
	switch Scheme(override) {
	case SchemeLight:
		return SchemeLight
	case SchemeDark:
		return SchemeDark
	}
	if override == "" && termenv.HasDarkBackground() {
		return SchemeDark
	}
	return SchemeLight
}

// Theme is the full token set for one scheme, built atomically by NewTheme.
type Theme struct {
	Scheme Scheme

	Title     lipgloss.Style
	Tab       lipgloss.Style
	ActiveTab lipgloss.Style
	Card      lipgloss.Style
	Badge     lipgloss.Style
	Removed   lipgloss.Style
	Success   lipgloss.Style
	ErrorText lipgloss.Style
	Muted     lipgloss.Style
	Modal     lipgloss.Style
	Selected  lipgloss.Style
}

type palette struct {
	accent, badge, removed, success, errorc, muted, border string
}

var palettes = map[Scheme]palette{
	SchemeLight: {accent: "25", badge: "28", removed: "124", success: "28", errorc: "124", muted: "243", border: "240"},
	SchemeDark:  {accent: "39", badge: "42", removed: "203", success: "42", errorc: "203", muted: "246", border: "244"},
}

func NewTheme(s Scheme) Theme {
	p, ok := palettes[s]
	if !ok {
		s = SchemeLight
		p = palettes[s]
	}
	return Theme{
		Scheme:    s,
		Title:     lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color(p.accent)),
		Tab:       lipgloss.NewStyle().Padding(0, 2).Foreground(lipgloss.Color(p.muted)),
		ActiveTab: lipgloss.NewStyle().Padding(0, 2).Bold(true).Foreground(lipgloss.Color(p.accent)).Underline(true),
		Card: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color(p.border)).
			Padding(0, 1),
		Badge:     lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color(p.badge)),
		Removed:   lipgloss.NewStyle().Strikethrough(true).Foreground(lipgloss.Color(p.removed)),
		Success:   lipgloss.NewStyle().Foreground(lipgloss.Color(p.success)),
		ErrorText: lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color(p.errorc)),
		Muted:     lipgloss.NewStyle().Foreground(lipgloss.Color(p.muted)),
		Modal: lipgloss.NewStyle().
			Border(lipgloss.DoubleBorder()).
			BorderForeground(lipgloss.Color(p.accent)).
			Padding(1, 2),
		Selected: lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color(p.accent)),
	}
}
