// Package tui provides the primary terminal user interface implementation.
package tui

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/mangomedia/mango/catalog"
	"github.com/samber/mo"
)

// Options encapsulates the runtime configuration for the terminal user interface.
type Options struct {
	// History opens the watch history instead of the home screen.
	History bool

	// Subscribed overrides the stored subscription flag for this run.
	Subscribed mo.Option[bool]

	Catalog *catalog.Catalog
}

// Run initializes and executes the primary Bubble Tea application loop.
func Run(options *Options) error {
	bubble := newBubble(options)

	if options.History {
		bubble.newState(historyState)
	} else {
		bubble.newState(homeState)
	}

	program := tea.NewProgram(bubble, tea.WithAltScreen())
	bubble.queue.bind(program.Send)

	_, err := program.Run()

	// the program may quit while a player is still open
	bubble.leavePlayer()
	return err
}
