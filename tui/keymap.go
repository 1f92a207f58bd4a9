package tui

import (
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	"github.com/mangomedia/mango/color"
	"github.com/mangomedia/mango/style"
)

type statefulKeymap struct {
	state state

	// controls are off when player.custom_controls is false
	controls bool

	quit, forceQuit,
	confirm,
	back,
	subscribe,
	history,
	remove,
	playPause, seekBack, seekForward,
	up, down, left, right,
	top, bottom,
	showHelp key.Binding
}

func (k *statefulKeymap) setState(newState state) {
	k.state = newState
}

func bind(help, desc string, keys ...string) key.Binding {
	return key.NewBinding(key.WithKeys(keys...), key.WithHelp(help, desc))
}

func newStatefulKeymap() *statefulKeymap {
	play := style.Fg(color.Orange)

	return &statefulKeymap{
		controls: true,

		quit:      bind("q", "quit", "q"),
		forceQuit: bind("ctrl+c", "quit", "ctrl+c", "ctrl+d"),
		confirm:   bind(play("enter"), play("play"), "enter"),
		back:      bind("esc", "back", "esc"),

		subscribe: bind("s", "toggle subscription", "s"),
		history:   bind("H", "history", "H"),
		remove:    bind("d", "remove", "d"),

		playPause:   bind("space", "play/pause", " "),
		seekBack:    bind("←", "rewind", "left", "h"),
		seekForward: bind("→", "forward", "right", "l"),

		up:       bind("↑", "up", "up", "k"),
		down:     bind("↓", "down", "down", "j"),
		left:     bind("←", "prev page", "left", "h"),
		right:    bind("→", "next page", "right", "l"),
		top:      bind("g", "top", "g"),
		bottom:   bind("G", "bottom", "G"),
		showHelp: bind("?", "help", "?"),
	}
}

// help returns the short and full help of the current state.
func (k *statefulKeymap) help() (short, full []key.Binding) {
	switch k.state {
	case loadingState:
		short = []key.Binding{k.forceQuit}
	case homeState:
		short = []key.Binding{k.confirm, k.subscribe, k.history}
		return short, append(short, k.quit)
	case historyState:
		short = []key.Binding{k.confirm, k.remove, k.back}
	case playerState:
		if k.controls {
			short = []key.Binding{k.playPause, k.seekBack, k.seekForward, k.back}
		} else {
			short = []key.Binding{k.back, k.forceQuit}
		}
	case errorState:
		short = []key.Binding{k.back, k.quit}
	}
	return short, short
}

func (k *statefulKeymap) ShortHelp() []key.Binding {
	short, _ := k.help()
	return short
}

func (k *statefulKeymap) FullHelp() [][]key.Binding {
	_, full := k.help()
	return [][]key.Binding{full}
}

func (k *statefulKeymap) forList() list.KeyMap {
	return list.KeyMap{
		CursorUp:      k.up,
		CursorDown:    k.down,
		NextPage:      k.right,
		PrevPage:      k.left,
		GoToStart:     k.top,
		GoToEnd:       k.bottom,
		ShowFullHelp:  k.showHelp,
		CloseFullHelp: k.showHelp,
		Quit:          k.quit,
		ForceQuit:     k.forceQuit,
	}
}
