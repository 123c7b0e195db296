package tui

import "github.com/charmbracelet/lipgloss"

// ---------------------------------------------------------------------------
// Catppuccin palettes: Mocha for dark, Latte for light
// ---------------------------------------------------------------------------

type palette struct {
	text, subtext, surface, mantle lipgloss.Color
	accent, warning, success       lipgloss.Color
	errorColor                     lipgloss.Color
}

var mocha = palette{
	text:       "#cdd6f4",
	subtext:    "#a6adc8",
	surface:    "#45475a",
	mantle:     "#181825",
	accent:     "#f5c2e7",
	warning:    "#f9e2af",
	success:    "#a6e3a1",
	errorColor: "#f38ba8",
}

var latte = palette{
	text:       "#4c4f69",
	subtext:    "#6c6f85",
	surface:    "#bcc0cc",
	mantle:     "#e6e9ef",
	accent:     "#ea76cb",
	warning:    "#df8e1d",
	success:    "#40a02b",
	errorColor: "#d20f39",
}

// ---------------------------------------------------------------------------
// Styles
// ---------------------------------------------------------------------------

type styles struct {
	header  lipgloss.Style
	session lipgloss.Style
	body    lipgloss.Style
	banner  lipgloss.Style
	chip    lipgloss.Style
	toast   lipgloss.Style
	status  lipgloss.Style
}

func newStyles(dark bool) styles {
	p := latte
	if dark {
		p = mocha
	}
	return styles{
		header:  lipgloss.NewStyle().Bold(true).Foreground(p.accent).Background(p.mantle).Padding(0, 1),
		session: lipgloss.NewStyle().Foreground(p.subtext),
		body:    lipgloss.NewStyle().Foreground(p.text).Padding(1, 2),
		banner:  lipgloss.NewStyle().Bold(true).Foreground(p.mantle).Background(p.errorColor).Padding(0, 1),
		chip:    lipgloss.NewStyle().Foreground(p.warning),
		toast:   lipgloss.NewStyle().Foreground(p.mantle).Background(p.success).Padding(0, 1),
		status:  lipgloss.NewStyle().Foreground(p.subtext).Background(p.surface),
	}
}
