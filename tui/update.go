package tui

import (
	"errors"
	"fmt"

	bubblesKey "github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/mangomedia/mango/history"
	"github.com/mangomedia/mango/internal/app"
	"github.com/mangomedia/mango/internal/ui"
	"github.com/mangomedia/mango/key"
	"github.com/mangomedia/mango/log"
	"github.com/mangomedia/mango/playback"
	"github.com/mangomedia/mango/player"
	"github.com/samber/lo"
	"github.com/spf13/viper"
)

type playerOpenedMsg struct {
	player     player.Player
	contentURL string
	title      string
}

type playerExitedMsg struct {
	player player.Player
}

func (b *statefulBubble) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	if uiCmd := b.notifier.Update(msg); uiCmd != nil {
		cmd = uiCmd
	}

	switch msg := msg.(type) {
	case drainMsg:
		b.queue.drain()
		return b, cmd
	case error:
		b.busy = false
		b.raiseError(msg)
		return b, cmd
	case tea.WindowSizeMsg:
		b.resize(msg.Width, msg.Height)
	case subscriptionMsg:
		b.subscribed = bool(msg)
		b.refreshHomeTitle()
		return b, cmd
	case playerExitedMsg:
		if b.visit != nil && b.visit.Player == msg.player {
			b.leavePlayer()
			b.previousState()
		}
		return b, cmd
	case tea.KeyMsg:
		if bubblesKey.Matches(msg, b.keymap.forceQuit) {
			b.leavePlayer()
			return b, tea.Quit
		}

		if b.busy {
			return b, cmd
		}

		if bubblesKey.Matches(msg, b.keymap.back) {
			switch b.state {
			case playerState:
				b.leavePlayer()
			case homeState:
				return b, cmd
			}

			b.previousState()
			return b, cmd
		}
	}

	var stateCmd tea.Cmd
	switch b.state {
	case loadingState:
		stateCmd = b.updateLoading(msg)
	case homeState:
		stateCmd = b.updateHome(msg)
	case historyState:
		stateCmd = b.updateHistory(msg)
	case playerState:
		stateCmd = b.updatePlayer(msg)
	case errorState:
		stateCmd = b.updateError(msg)
	}

	return b, tea.Batch(cmd, stateCmd)
}

func (b *statefulBubble) updateLoading(msg tea.Msg) tea.Cmd {
	switch msg := msg.(type) {
	case spinner.TickMsg:
		var cmd tea.Cmd
		b.spinnerC, cmd = b.spinnerC.Update(msg)
		return cmd
	case playerOpenedMsg:
		b.busy = false
		return b.enterPlayer(msg)
	}
	return nil
}

func (b *statefulBubble) updateHome(msg tea.Msg) tea.Cmd {
	if msg, ok := msg.(tea.KeyMsg); ok {
		switch {
		case bubblesKey.Matches(msg, b.keymap.confirm):
			return b.openSelected(&b.homeC)
		case bubblesKey.Matches(msg, b.keymap.subscribe):
			return b.toggleSubscription()
		case bubblesKey.Matches(msg, b.keymap.history):
			b.newState(historyState)
			return b.loadHistory()
		}
	}

	var cmd tea.Cmd
	b.homeC, cmd = b.homeC.Update(msg)
	return cmd
}

func (b *statefulBubble) updateHistory(msg tea.Msg) tea.Cmd {
	switch msg := msg.(type) {
	case historyLoadedMsg:
		return b.historyC.SetItems(lo.Map(msg, func(e *history.Entry, _ int) list.Item {
			return &listItem{internal: e}
		}))
	case tea.KeyMsg:
		switch {
		case bubblesKey.Matches(msg, b.keymap.confirm):
			return b.openSelected(&b.historyC)
		case bubblesKey.Matches(msg, b.keymap.remove):
			item, ok := b.historyC.SelectedItem().(*listItem)
			if !ok {
				return nil
			}
			url, _, _ := contentOf(item)
			if err := history.Remove(url); err != nil {
				return func() tea.Msg { return err }
			}
			return b.loadHistory()
		}
	}

	var cmd tea.Cmd
	b.historyC, cmd = b.historyC.Update(msg)
	return cmd
}

func (b *statefulBubble) updatePlayer(msg tea.Msg) tea.Cmd {
	switch msg := msg.(type) {
	case spinner.TickMsg:
		var cmd tea.Cmd
		b.spinnerC, cmd = b.spinnerC.Update(msg)
		return cmd
	case tea.KeyMsg:
		if b.coordinator == nil || !b.coordinator.Controls() {
			return nil
		}

		step := float64(viper.GetInt(key.PlayerSeekStep))

		var err error
		switch {
		case bubblesKey.Matches(msg, b.keymap.playPause):
			err = b.coordinator.TogglePlayPause()
		case bubblesKey.Matches(msg, b.keymap.seekBack):
			err = b.coordinator.SeekBy(-step)
		case bubblesKey.Matches(msg, b.keymap.seekForward):
			err = b.coordinator.SeekBy(step)
		}

		switch {
		case err == nil:
		case errors.Is(err, playback.ErrDurationUnknown):
			return ui.Notify("Still loading, seeking is not available yet")
		case errors.Is(err, playback.ErrAdBreak):
			return ui.Notify("Seeking is available once the ad break ends")
		default:
			log.Warn(err)
			return ui.Notify(err.Error())
		}
	}
	return nil
}

func (b *statefulBubble) updateError(msg tea.Msg) tea.Cmd {
	if msg, ok := msg.(tea.KeyMsg); ok && bubblesKey.Matches(msg, b.keymap.quit) {
		return tea.Quit
	}
	return nil
}

func (b *statefulBubble) openSelected(l *list.Model) tea.Cmd {
	item, ok := l.SelectedItem().(*listItem)
	if !ok {
		return nil
	}

	url, title, ok := contentOf(item)
	if !ok {
		return nil
	}

	b.busy = true
	b.progressStatus = fmt.Sprintf("Starting %s", title)
	b.newState(loadingState)

	return tea.Batch(b.spinnerC.Tick, b.openPlayer(url, title))
}

// openPlayer starts the content player paused. Whether it plays is up to the
// coordinator.
func (b *statefulBubble) openPlayer(url, title string) tea.Cmd {
	return func() tea.Msg {
		p, err := player.New(viper.GetString(key.Player))
		if err != nil {
			return err
		}

		if err := p.Load(url, title); err != nil {
			return err
		}

		return playerOpenedMsg{player: p, contentURL: url, title: title}
	}
}

func (b *statefulBubble) enterPlayer(msg playerOpenedMsg) tea.Cmd {
	b.visit = &app.Visit{
		ContentURL: msg.contentURL,
		Title:      msg.title,
		Subscribed: b.subscribed,
		Player:     msg.player,
		Queue:      b.queue,
	}
	b.surface = app.NewSurface(msg.player)
	b.coordinator = app.NewCoordinator(*b.visit, b.surface)
	b.keymap.controls = b.coordinator.Controls()

	b.newState(playerState)

	b.coordinator.Appear()
	b.coordinator.Visible()
	b.coordinator.Layout()

	return tea.Batch(b.spinnerC.Tick, waitForExit(msg.player))
}

func waitForExit(p player.Player) tea.Cmd {
	return func() tea.Msg {
		<-p.Wait()
		return playerExitedMsg{player: p}
	}
}

// leavePlayer tears down the open visit, if any.
func (b *statefulBubble) leavePlayer() {
	if b.visit == nil {
		return
	}

	b.coordinator.Teardown()
	b.surface.Close()

	if err := app.SaveHistory(*b.visit, b.coordinator); err != nil {
		log.With("tui").Warnf("save history: %s", err)
	}

	if err := b.visit.Player.Close(); err != nil {
		log.With("tui").Debugf("close player: %s", err)
	}

	b.visit = nil
	b.surface = nil
	b.coordinator = nil
}
