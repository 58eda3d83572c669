// Package tui provides the interactive terminal UI for paramclip.
package tui

import "github.com/charmbracelet/lipgloss"

// Color palette
var (
	ColorPrimary   = lipgloss.Color("#FF6B6B") // Red - errors
	ColorSecondary = lipgloss.Color("#4ecdc4") // Teal - headings, links
	ColorAccent    = lipgloss.Color("#ffe66d") // Yellow - keys, button
	ColorMuted     = lipgloss.Color("#666666") // Gray - help text
	ColorSuccess   = lipgloss.Color("#a8e6cf") // Green - copied
	ColorText      = lipgloss.Color("#f1faee") // Light text
	ColorLabel     = lipgloss.Color("#a8dadc") // Label color
	ColorBg        = lipgloss.Color("#1a1a2e") // Dark background
	ColorBgAlt     = lipgloss.Color("#2d3436") // Alt background
	ColorBorder    = lipgloss.Color("#3d5a80") // Border color
)

// Title styles
var (
	TitleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(ColorPrimary).
			Background(ColorBg).
			Padding(0, 1)

	SubtitleStyle = lipgloss.NewStyle().
			Foreground(ColorSecondary)
)

// Card styles
var (
	CardStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(ColorBorder).
			Padding(0, 2)

	CardHeaderStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(ColorLabel)

	BadgeStyle = lipgloss.NewStyle().
			Foreground(ColorMuted).
			Background(ColorBgAlt).
			Padding(0, 1)

	ContentBoxStyle = lipgloss.NewStyle().
			Border(lipgloss.NormalBorder()).
			BorderForeground(ColorBorder).
			Foreground(ColorText).
			Padding(1, 2).
			Margin(1, 0)

	EmptyTitleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(ColorMuted).
			MarginTop(1)

	CodeStyle = lipgloss.NewStyle().
			Foreground(ColorAccent).
			Background(ColorBgAlt).
			Padding(0, 1)
)

// Button styles
var (
	ButtonStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(ColorBg).
			Background(ColorAccent).
			Padding(0, 3)

	ButtonCopiedStyle = ButtonStyle.
				Background(ColorSuccess)

	ButtonDisabledStyle = lipgloss.NewStyle().
				Foreground(ColorMuted).
				Background(ColorBgAlt).
				Padding(0, 3)
)

// Instructions panel styles
var (
	PanelStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(ColorSecondary).
			Padding(1, 2).
			Margin(1, 0)

	PanelTitleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(ColorText).
			MarginBottom(1)

	BulletStyle = lipgloss.NewStyle().
			Foreground(ColorSecondary)
)

// Status styles
var (
	HelpStyle = lipgloss.NewStyle().
			Foreground(ColorMuted)

	ErrorStyle = lipgloss.NewStyle().
			Foreground(ColorPrimary).
			Bold(true)

	CopiedStyle = lipgloss.NewStyle().
			Foreground(ColorSuccess).
			Bold(true)

	ToastStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(ColorSuccess).
			Foreground(ColorSuccess).
			Padding(0, 1)

	ToastErrorStyle = ToastStyle.
			BorderForeground(ColorPrimary).
			Foreground(ColorPrimary)
)

// Content area style
var ContentStyle = lipgloss.NewStyle().
	Padding(1, 2)
