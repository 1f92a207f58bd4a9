package tui

import (
	"sync"

	tea "github.com/charmbracelet/bubbletea"
)

// drainMsg asks the update loop to run the pending queue tasks.
type drainMsg struct{}

// programDispatcher is the UI queue of the TUI: tasks run inside Update, on
// the bubbletea event loop. Dispatch never blocks, so a task may dispatch
// another one.
type programDispatcher struct {
	mu        sync.Mutex
	pending   []func()
	scheduled bool
	send      func(tea.Msg)
}

func (d *programDispatcher) bind(send func(tea.Msg)) {
	d.mu.Lock()
	d.send = send
	wake := len(d.pending) > 0 && !d.scheduled
	d.scheduled = d.scheduled || wake
	d.mu.Unlock()

	if wake {
		go send(drainMsg{})
	}
}

func (d *programDispatcher) Dispatch(task func()) {
	d.mu.Lock()
	d.pending = append(d.pending, task)
	wake := !d.scheduled && d.send != nil
	if wake {
		d.scheduled = true
	}
	send := d.send
	d.mu.Unlock()

	if wake {
		go send(drainMsg{})
	}
}

// drain runs tasks in dispatch order until none are left, including the ones
// they dispatch.
func (d *programDispatcher) drain() (n int) {
	for {
		d.mu.Lock()
		if len(d.pending) == 0 {
			d.scheduled = false
			d.mu.Unlock()
			return
		}
		task := d.pending[0]
		d.pending = d.pending[1:]
		d.mu.Unlock()

		task()
		n++
	}
}
