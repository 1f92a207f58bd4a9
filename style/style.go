// Package style composes lipgloss styles for the terminal interface.
package style

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/mangomedia/mango/color"
)

func New() lipgloss.Style {
	return lipgloss.NewStyle()
}

// Fg returns a renderer with the foreground set to c.
func Fg(c lipgloss.Color) func(string) string {
	return func(s string) string { return New().Foreground(c).Render(s) }
}

// Badge returns a padded renderer with dark text on bg.
func Badge(bg lipgloss.Color) lipgloss.Style {
	return New().Foreground(Base).Background(bg).Padding(0, 1)
}

var (
	Faint = func(s string) string { return New().Faint(true).Render(s) }
	Bold  = func(s string) string { return New().Bold(true).Render(s) }
)

var Title = func(s string) string {
	return New().Foreground(color.New("230")).Background(color.New("62")).Padding(0, 1).Render(s)
}

var ErrorTitle = func(s string) string {
	return New().Foreground(color.New("230")).Background(color.Red).Padding(0, 1).Render(s)
}
