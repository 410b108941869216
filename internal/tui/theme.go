package tui

import "github.com/charmbracelet/lipgloss"

// Palette is the set of colours a theme is built from.
type Palette struct {
	Accent lipgloss.Color
	Bright lipgloss.Color
	Dim    lipgloss.Color
	Text   lipgloss.Color
	Muted  lipgloss.Color
	Error  lipgloss.Color
	Warn   lipgloss.Color
}

var palettes = map[string]Palette{
	"green": {
		Accent: lipgloss.Color("#00FF41"),
		Bright: lipgloss.Color("#39FF14"),
		Dim:    lipgloss.Color("#008F11"),
		Text:   lipgloss.Color("#e0e0e0"),
		Muted:  lipgloss.Color("#3a3a4e"),
		Error:  lipgloss.Color("#FF4136"),
		Warn:   lipgloss.Color("#FFD700"),
	},
	"amber": {
		Accent: lipgloss.Color("#FFB000"),
		Bright: lipgloss.Color("#FFCC00"),
		Dim:    lipgloss.Color("#8F6200"),
		Text:   lipgloss.Color("#f0e6d0"),
		Muted:  lipgloss.Color("#4e3a1a"),
		Error:  lipgloss.Color("#FF4136"),
		Warn:   lipgloss.Color("#FFFFFF"),
	},
	"mono": {
		Accent: lipgloss.Color("#FFFFFF"),
		Bright: lipgloss.Color("#FFFFFF"),
		Dim:    lipgloss.Color("#888888"),
		Text:   lipgloss.Color("#e0e0e0"),
		Muted:  lipgloss.Color("#444444"),
		Error:  lipgloss.Color("#FFFFFF"),
		Warn:   lipgloss.Color("#FFFFFF"),
	},
}

// Theme holds every style the shell renders with.
type Theme struct {
	Palette Palette

	Banner    lipgloss.Style
	Title     lipgloss.Style
	Label     lipgloss.Style
	Input     lipgloss.Style
	Help      lipgloss.Style
	Success   lipgloss.Style
	Error     lipgloss.Style
	Confirm   lipgloss.Style
	Box       lipgloss.Style
	DiffAdd   lipgloss.Style
	DiffDel   lipgloss.Style
	DiffHunk  lipgloss.Style
	Separator lipgloss.Style
}

// NewTheme builds the named theme, falling back to green.
func NewTheme(name string) Theme {
	p, ok := palettes[name]
	if !ok {
		p = palettes["green"]
	}
	return Theme{
		Palette: p,

		Banner: lipgloss.NewStyle().
			Foreground(p.Accent).
			Bold(true),

		Title: lipgloss.NewStyle().
			Foreground(p.Bright).
			Bold(true).
			MarginBottom(1),

		Label: lipgloss.NewStyle().
			Foreground(p.Accent).
			Width(18),

		Input: lipgloss.NewStyle().
			Foreground(p.Text),

		Help: lipgloss.NewStyle().
			Foreground(p.Dim),

		Success: lipgloss.NewStyle().
			Foreground(p.Bright).
			Bold(true),

		Error: lipgloss.NewStyle().
			Foreground(p.Error).
			Bold(true),

		Confirm: lipgloss.NewStyle().
			Foreground(p.Warn).
			Bold(true),

		Box: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(p.Dim).
			Padding(0, 1),

		DiffAdd: lipgloss.NewStyle().
			Foreground(p.Bright),

		DiffDel: lipgloss.NewStyle().
			Foreground(p.Error),

		DiffHunk: lipgloss.NewStyle().
			Foreground(p.Dim).
			Italic(true),

		Separator: lipgloss.NewStyle().
			Foreground(p.Muted),
	}
}

const Banner = `
  ╔═╗╦ ╦╔═╗╔╗╔╔═╗╔╗ ╔═╗╔═╗╦╔═
  ╠═╝╠═╣║ ║║║║║╣ ╠╩╗║ ║║ ║╠╩╗
  ╩  ╩ ╩╚═╝╝╚╝╚═╝╚═╝╚═╝╚═╝╩ ╩
`
