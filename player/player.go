// Package player drives external media players. The content player
// implements playback.Port over mpv's JSON-IPC interface; ad creatives are
// rendered by a separate, short-lived mpv process.
package player

import (
	"fmt"

	"github.com/mangomedia/mango/playback"
)

// Player is a content playback backend.
type Player interface {
	playback.Port

	// Load opens url paused. Playback starts only when the coordinator
	// calls Play.
	Load(url string, title string) error

	// SetChapters replaces the chapter markers of the loaded media.
	SetChapters(chapters []Chapter) error

	// Close terminates the backend and releases its resources.
	Close() error

	// Wait is closed when the backend process exits.
	Wait() <-chan struct{}
}

// New returns the backend registered under name.
func New(name string) (Player, error) {
	switch name {
	case "mpv", "":
		return NewMPV(), nil
	default:
		return nil, fmt.Errorf("unsupported player %q, only mpv can be controlled", name)
	}
}
