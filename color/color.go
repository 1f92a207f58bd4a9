// Package color names the terminal colors used outside of the TUI palette.
package color

import "github.com/charmbracelet/lipgloss"

func New(value string) lipgloss.Color {
	return lipgloss.Color(value)
}

// ANSI colors, so the CLI output follows the terminal theme.
var (
	Red      = New("1")
	Green    = New("2")
	Yellow   = New("3")
	Blue     = New("4")
	Purple   = New("5")
	HiYellow = New("11")
	HiPurple = New("13")
)

// Orange marks key bindings that start playback.
var Orange = New("#ffb703")
