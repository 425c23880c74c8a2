package ui

import "github.com/charmbracelet/lipgloss"

// Colors used throughout the kiosk TUI.
var (
	colorPink    = lipgloss.Color("#FF5FA2")
	colorCyan    = lipgloss.Color("#00FFFF")
	colorYellow  = lipgloss.Color("#FFFF00")
	colorRed     = lipgloss.Color("#FF0000")
	colorGreen   = lipgloss.Color("#00FF00")
	colorGray    = lipgloss.Color("#666666")
	colorDimGray = lipgloss.Color("#444444")
	colorWhite   = lipgloss.Color("#FFFFFF")
)

// Base styles reused by the splash and chat screens.
var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(colorPink)

	subtitleStyle = lipgloss.NewStyle().
			Foreground(colorGray)

	labelStyle = lipgloss.NewStyle().
			Foreground(colorCyan)

	labelActiveStyle = lipgloss.NewStyle().
				Bold(true).
				Foreground(colorYellow)

	userTurnStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(colorGreen)

	botTurnStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(colorPink)

	systemTurnStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(colorYellow)

	pendingStyle = lipgloss.NewStyle().
			Foreground(colorGray).
			Italic(true)

	presetStyle = lipgloss.NewStyle().
			Foreground(colorCyan)

	presetKeyStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(colorYellow)

	noticeStyle = lipgloss.NewStyle().
			Foreground(colorYellow).
			Italic(true)

	placeholderStyle = lipgloss.NewStyle().
				Foreground(colorDimGray)

	recordingStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(colorRed)

	avatarStyle = lipgloss.NewStyle().
			Foreground(colorPink)

	dividerStyle = lipgloss.NewStyle().
			Foreground(colorDimGray)

	footerKeyStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(colorYellow)

	footerDescStyle = lipgloss.NewStyle().
			Foreground(colorGray)

	dimStyle = lipgloss.NewStyle().
			Foreground(colorGray)

	whiteStyle = lipgloss.NewStyle().
			Foreground(colorWhite)
)
