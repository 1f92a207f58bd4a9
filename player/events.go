package player

import (
	"encoding/json"
	"errors"
	"fmt"
	"net"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/mangomedia/mango/log"
)

// EventCallback receives mpv property changes and other events. For property
// changes name is the property; for plain events it is the event name and
// data is nil.
type EventCallback func(name string, data interface{})

type mpvEvent struct {
	Event string      `json:"event"`
	Name  string      `json:"name"`
	Data  interface{} `json:"data"`
}

// EventListener keeps a dedicated connection to mpv and forwards
// observe_property notifications.
type EventListener struct {
	socketPath string
	properties []string
	callback   EventCallback

	mu        sync.Mutex
	conn      net.Conn
	stopCh    chan struct{}
	done      chan struct{}
	listening bool
}

// NewEventListener observes properties on the mpv instance at socketPath.
func NewEventListener(socketPath string, callback EventCallback, properties ...string) *EventListener {
	return &EventListener{
		socketPath: socketPath,
		properties: properties,
		callback:   callback,
		stopCh:     make(chan struct{}),
		done:       make(chan struct{}),
	}
}

// Start subscribes to the properties on its own connection and starts the
// read loop. Observers are bound to the connection that registered them.
func (el *EventListener) Start() error {
	el.mu.Lock()
	defer el.mu.Unlock()

	if el.listening {
		return nil
	}

	conn, err := net.Dial("unix", el.socketPath)
	if err != nil {
		return fmt.Errorf("event listener connect: %w", err)
	}

	for i, name := range el.properties {
		payload, err := json.Marshal(ipcCommand{
			Command:   []interface{}{"observe_property", i + 1, name},
			RequestID: requestIDs.Add(1),
		})
		if err != nil {
			conn.Close()
			return fmt.Errorf("observe %s: %w", name, err)
		}
		if _, err := conn.Write(append(payload, '\n')); err != nil {
			conn.Close()
			return fmt.Errorf("observe %s: %w", name, err)
		}
	}

	el.conn = conn
	el.listening = true
	go el.readLoop()

	log.Infof("mpv event listener started on %s (observing: %s)", el.socketPath, strings.Join(el.properties, ", "))
	return nil
}

// Stop terminates the listener and waits for its read loop.
func (el *EventListener) Stop() {
	el.mu.Lock()
	if !el.listening {
		el.mu.Unlock()
		return
	}
	el.listening = false
	close(el.stopCh)
	el.conn.Close()
	el.mu.Unlock()

	<-el.done
}

// readLoop reads newline-delimited JSON events until stopped or the
// connection drops.
func (el *EventListener) readLoop() {
	defer close(el.done)

	buf := make([]byte, 4096)
	var remainder []byte

	for {
		select {
		case <-el.stopCh:
			return
		default:
		}

		if err := el.conn.SetReadDeadline(time.Now().Add(5 * time.Second)); err != nil {
			return
		}

		n, err := el.conn.Read(buf)
		if err != nil {
			if errors.Is(err, os.ErrDeadlineExceeded) {
				continue
			}
			select {
			case <-el.stopCh:
			default:
				log.Warnf("event listener read error: %v", err)
			}
			return
		}

		data := append(remainder, buf[:n]...)
		remainder = nil

		lines := strings.Split(string(data), "\n")
		for i, line := range lines {
			// the last piece is incomplete unless data ended on a newline
			if i == len(lines)-1 {
				if line != "" {
					remainder = []byte(line)
				}
				continue
			}

			if line = strings.TrimSpace(line); line != "" {
				el.processEvent(line)
			}
		}
	}
}

func (el *EventListener) processEvent(line string) {
	var ev mpvEvent
	if err := json.Unmarshal([]byte(line), &ev); err != nil || ev.Event == "" {
		return
	}

	if el.callback == nil {
		return
	}

	if ev.Event == "property-change" {
		if ev.Name != "" {
			el.callback(ev.Name, ev.Data)
		}
		return
	}

	el.callback(ev.Event, nil)
}
