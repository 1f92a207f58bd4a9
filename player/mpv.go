package player

import (
	"crypto/rand"
	"fmt"
	"net"
	"net/url"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/mangomedia/mango/constant"
	"github.com/mangomedia/mango/log"
	"github.com/mangomedia/mango/where"
	"github.com/samber/mo"
)

const (
	socketWaitRetries = 10
	socketWaitDelay   = 300 * time.Millisecond
)

// MPV is the content player. It implements playback.Port by driving an mpv
// process over JSON-IPC.
type MPV struct {
	binary     string
	socketPath string
	cmd        *exec.Cmd
	exited     chan struct{}
	listener   *EventListener

	reached     chan struct{}
	reachedOnce sync.Once

	mu sync.Mutex // serializes socket round trips

	stateMu sync.Mutex
	rate    float64
}

// NewMPV returns an idle player. Nothing runs until Load.
func NewMPV() *MPV {
	return &MPV{
		binary:  "mpv",
		exited:  make(chan struct{}),
		reached: make(chan struct{}),
	}
}

// Load starts mpv paused on rawURL.
func (m *MPV) Load(rawURL string, title string) error {
	target, err := sanitizeMediaTarget(rawURL)
	if err != nil {
		return fmt.Errorf("invalid media target: %w", err)
	}

	if m.socketPath == "" {
		socket, err := randomSocket()
		if err != nil {
			return err
		}
		m.socketPath = socket
	}

	m.cmd = exec.Command(m.binary, buildArgs(m.socketPath, sanitizeTitle(title), target,
		"--pause=yes",
		"--keep-open=yes",
	)...)
	m.cmd.SysProcAttr = sysProcAttr()
	m.cmd.Stdout = nil
	m.cmd.Stderr = nil
	m.cmd.Stdin = nil

	if err := m.cmd.Start(); err != nil {
		return fmt.Errorf("start mpv: %w", err)
	}

	// reap the process so it never turns into a zombie
	m.exited = make(chan struct{})
	go func() {
		_ = m.cmd.Wait()
		close(m.exited)
	}()

	if err := m.waitForSocket(); err != nil {
		select {
		case <-m.exited:
		default:
			log.Warnf("killing mpv: socket never became ready")
			_ = killProcess(m.cmd)
		}
		return fmt.Errorf("mpv socket not ready: %w", err)
	}

	m.listener = NewEventListener(m.socketPath, m.onEvent, "eof-reached")
	if err := m.listener.Start(); err != nil {
		// still playable, the end of the content just goes unnoticed
		log.With("mpv").Warn(err)
	}

	return nil
}

func (m *MPV) onEvent(name string, data interface{}) {
	if name == "eof-reached" && data == true {
		m.reachedOnce.Do(func() { close(m.reached) })
	}
}

// buildArgs assembles the mpv command line. User configuration in mpv.conf
// is respected: no --vo, --profile or --hwdec.
func buildArgs(socket, title, target string, extra ...string) []string {
	args := []string{
		"--no-terminal",
		"--really-quiet",
		"--input-ipc-server=" + socket,
		"--force-media-title=" + title,
		"--title=" + title,
		"--force-window=yes",
		"--user-agent=" + constant.UserAgent,
	}
	args = append(args, extra...)
	// end of options, nothing after this can be read as a flag
	return append(args, "--", target)
}

func randomSocket() (string, error) {
	b := make([]byte, 4)
	if _, err := rand.Read(b); err != nil {
		return "", fmt.Errorf("generate socket name: %w", err)
	}
	return filepath.Join(where.Temp(), fmt.Sprintf("%x.sock", b)), nil
}

// waitForSocket polls until the IPC socket accepts connections.
func (m *MPV) waitForSocket() error {
	for i := 0; i < socketWaitRetries; i++ {
		time.Sleep(socketWaitDelay)

		select {
		case <-m.exited:
			return fmt.Errorf("mpv exited before socket was ready")
		default:
		}

		conn, err := net.Dial("unix", m.socketPath)
		if err == nil {
			conn.Close()
			return nil
		}
	}
	return fmt.Errorf("socket %s not ready after %d attempts", m.socketPath, socketWaitRetries)
}

func (m *MPV) Play() error {
	if err := m.set("speed", 1.0); err != nil {
		return err
	}
	if err := m.set("pause", false); err != nil {
		return err
	}
	m.setRate(1)
	return nil
}

func (m *MPV) Pause() error {
	return m.set("pause", true)
}

// Seek moves playback to an absolute position in seconds.
func (m *MPV) Seek(seconds float64) error {
	_, err := m.sendCommand("seek", seconds, "absolute")
	return err
}

func (m *MPV) CurrentTime() (float64, error) {
	return m.getFloatProperty("time-pos")
}

// Duration is absent until mpv has parsed the stream.
func (m *MPV) Duration() mo.Option[float64] {
	d, err := m.getFloatProperty("duration")
	if err != nil || d <= 0 {
		return mo.None[float64]()
	}
	return mo.Some(d)
}

// Rate is the last rate requested, 0 while held by SetRate(0).
func (m *MPV) Rate() float64 {
	m.stateMu.Lock()
	defer m.stateMu.Unlock()
	return m.rate
}

// SetRate maps a playback rate onto mpv: zero pauses, anything else sets the
// speed and unpauses.
func (m *MPV) SetRate(rate float64) error {
	if rate <= 0 {
		if err := m.set("pause", true); err != nil {
			return err
		}
		m.setRate(0)
		return nil
	}

	if err := m.set("speed", rate); err != nil {
		return err
	}
	if err := m.set("pause", false); err != nil {
		return err
	}
	m.setRate(rate)
	return nil
}

func (m *MPV) setRate(rate float64) {
	m.stateMu.Lock()
	defer m.stateMu.Unlock()
	m.rate = rate
}

func (m *MPV) Reached() <-chan struct{} {
	return m.reached
}

// Percent returns how much of the content has been played, 0 to 100.
func (m *MPV) Percent() (float64, error) {
	pos, err := m.CurrentTime()
	if err != nil {
		return 0, err
	}

	dur, ok := m.Duration().Get()
	if !ok {
		return 0, nil
	}
	return min(pos/dur*100, 100), nil
}

// Wait is closed when the mpv process exits.
func (m *MPV) Wait() <-chan struct{} {
	return m.exited
}

// IsRunning reports whether mpv answers IPC commands.
func (m *MPV) IsRunning() bool {
	if m.socketPath == "" {
		return false
	}

	select {
	case <-m.exited:
		return false
	default:
	}

	_, err := m.sendCommand("get_property", "pid")
	return err == nil
}

// Close quits mpv, killing it if it does not leave in time.
func (m *MPV) Close() error {
	if m.listener != nil {
		m.listener.Stop()
	}

	if m.socketPath == "" || m.cmd == nil {
		return nil
	}

	_, _ = m.sendCommand("quit")

	select {
	case <-m.exited:
	case <-time.After(3 * time.Second):
		_ = killProcess(m.cmd)
	}

	_ = os.Remove(m.socketPath)
	return nil
}

func (m *MPV) set(property string, value interface{}) error {
	_, err := m.sendCommand("set_property", property, value)
	return err
}

func (m *MPV) getFloatProperty(name string) (float64, error) {
	data, err := m.sendCommand("get_property", name)
	if err != nil {
		return 0, err
	}

	if data == nil {
		return 0, fmt.Errorf("property %s: nil response", name)
	}

	val, ok := data.(float64)
	if !ok {
		return 0, fmt.Errorf("property %s: expected float64, got %T", name, data)
	}

	return val, nil
}

// sanitizeMediaTarget only lets http(s) URLs and local paths through.
func sanitizeMediaTarget(link string) (string, error) {
	l := strings.TrimSpace(link)
	if l == "" {
		return "", fmt.Errorf("empty URL")
	}

	if strings.ContainsAny(l, "\x00\n\r") {
		return "", fmt.Errorf("invalid control characters in URL")
	}

	if strings.HasPrefix(l, "-") {
		return "", fmt.Errorf("url must not start with '-' (looks like a flag)")
	}

	if strings.Contains(l, "://") {
		u, err := url.Parse(l)
		if err != nil {
			return "", fmt.Errorf("invalid URL: %w", err)
		}
		switch strings.ToLower(u.Scheme) {
		case "http", "https":
			return l, nil
		default:
			return "", fmt.Errorf("unsupported URL scheme: %s", u.Scheme)
		}
	}

	return filepath.Clean(l), nil
}

func sanitizeTitle(title string) string {
	t := strings.NewReplacer("\n", " ", "\r", " ", "\t", " ", "\x00", "").Replace(title)
	return strings.TrimSpace(t)
}
