package tui

import "github.com/charmbracelet/lipgloss"

// Theme is the color palette for the terminal UI. ANSI 256-color codes
// for broad terminal compatibility.
type Theme struct {
	NormalText lipgloss.Color
	FaintText  lipgloss.Color

	SelectedBackground lipgloss.Color
	SelectedForeground lipgloss.Color

	HeaderForeground lipgloss.Color
	BorderColor      lipgloss.Color
	HelpText         lipgloss.Color

	AdminBadge lipgloss.Color
	ErrorText  lipgloss.Color
	NoticeText lipgloss.Color
}

// DefaultTheme targets 256-color terminals with a dark background.
var DefaultTheme = Theme{
	NormalText: lipgloss.Color("252"),
	FaintText:  lipgloss.Color("245"),

	SelectedBackground: lipgloss.Color("236"),
	SelectedForeground: lipgloss.Color("255"),

	HeaderForeground: lipgloss.Color("255"),
	BorderColor:      lipgloss.Color("240"),
	HelpText:         lipgloss.Color("241"),

	AdminBadge: lipgloss.Color("208"), // orange
	ErrorText:  lipgloss.Color("196"), // bright red
	NoticeText: lipgloss.Color("114"), // green
}

// styles holds the pre-built lipgloss styles derived from a Theme.
type styles struct {
	title    lipgloss.Style
	header   lipgloss.Style
	row      lipgloss.Style
	selected lipgloss.Style
	faint    lipgloss.Style
	help     lipgloss.Style
	errText  lipgloss.Style
	notice   lipgloss.Style
	badge    lipgloss.Style
	box      lipgloss.Style
	label    lipgloss.Style
}

func newStyles(theme Theme) styles {
	return styles{
		title: lipgloss.NewStyle().
			Foreground(theme.HeaderForeground).
			Bold(true),
		header: lipgloss.NewStyle().
			Foreground(theme.HeaderForeground).
			Underline(true),
		row: lipgloss.NewStyle().
			Foreground(theme.NormalText),
		selected: lipgloss.NewStyle().
			Foreground(theme.SelectedForeground).
			Background(theme.SelectedBackground),
		faint: lipgloss.NewStyle().
			Foreground(theme.FaintText),
		help: lipgloss.NewStyle().
			Foreground(theme.HelpText),
		errText: lipgloss.NewStyle().
			Foreground(theme.ErrorText),
		notice: lipgloss.NewStyle().
			Foreground(theme.NoticeText),
		badge: lipgloss.NewStyle().
			Foreground(theme.AdminBadge).
			Bold(true),
		box: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(theme.BorderColor).
			Padding(0, 1),
		label: lipgloss.NewStyle().
			Foreground(theme.FaintText).
			Width(14),
	}
}
