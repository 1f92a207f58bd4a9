package tui

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/mangomedia/mango/history"
	"github.com/mangomedia/mango/subscription"
)

type subscriptionMsg bool

type historyLoadedMsg []*history.Entry

func (b *statefulBubble) Init() tea.Cmd {
	cmds := []tea.Cmd{b.loadSubscription()}
	if b.state == historyState {
		cmds = append(cmds, b.loadHistory())
	}
	return tea.Batch(cmds...)
}

func (b *statefulBubble) loadSubscription() tea.Cmd {
	return func() tea.Msg {
		if subscribed, ok := b.options.Subscribed.Get(); ok {
			return subscriptionMsg(subscribed)
		}

		subscribed, err := subscription.Subscribed()
		if err != nil {
			return err
		}
		return subscriptionMsg(subscribed)
	}
}

func (b *statefulBubble) toggleSubscription() tea.Cmd {
	return func() tea.Msg {
		subscribed, err := subscription.Toggle()
		if err != nil {
			return err
		}
		return subscriptionMsg(subscribed)
	}
}

func (b *statefulBubble) loadHistory() tea.Cmd {
	return func() tea.Msg {
		entries, err := history.Recent()
		if err != nil {
			return err
		}
		return historyLoadedMsg(entries)
	}
}
