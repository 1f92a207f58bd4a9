package player

import (
	"bufio"
	"encoding/json"
	"fmt"
	"net"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/mangomedia/mango/ads"
	"github.com/mangomedia/mango/where"
	. "github.com/smartystreets/goconvey/convey"
)

// fakeMPV answers JSON-IPC requests the way mpv does, including unrelated
// event lines broadcast before the reply.
type fakeMPV struct {
	ln    net.Listener
	props map[string]interface{}

	mu       sync.Mutex
	commands [][]interface{}
	conns    []net.Conn
}

func newFakeMPV(t *testing.T) *fakeMPV {
	dir, err := os.MkdirTemp("", "mpv")
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { os.RemoveAll(dir) })

	ln, err := net.Listen("unix", filepath.Join(dir, "mpv.sock"))
	if err != nil {
		t.Fatal(err)
	}

	f := &fakeMPV{
		ln: ln,
		props: map[string]interface{}{
			"time-pos": 12.5,
			"duration": 120.0,
			"pid":      42.0,
		},
	}
	go f.serve()
	return f
}

func (f *fakeMPV) serve() {
	for {
		conn, err := f.ln.Accept()
		if err != nil {
			return
		}
		f.mu.Lock()
		f.conns = append(f.conns, conn)
		f.mu.Unlock()
		go f.handle(conn)
	}
}

func (f *fakeMPV) handle(conn net.Conn) {
	defer conn.Close()

	enc := json.NewEncoder(conn)
	scanner := bufio.NewScanner(conn)
	for scanner.Scan() {
		var cmd ipcCommand
		if err := json.Unmarshal(scanner.Bytes(), &cmd); err != nil {
			continue
		}

		f.mu.Lock()
		f.commands = append(f.commands, cmd.Command)
		f.mu.Unlock()

		_ = enc.Encode(map[string]interface{}{"event": "playback-restart"})

		reply := map[string]interface{}{"request_id": cmd.RequestID, "error": "success"}
		switch cmd.Command[0] {
		case "get_property":
			name := cmd.Command[1].(string)
			f.mu.Lock()
			v, ok := f.props[name]
			f.mu.Unlock()
			if ok {
				reply["data"] = v
			} else {
				reply["error"] = "property unavailable"
			}
		case "observe_property":
			_ = enc.Encode(reply)
			_ = enc.Encode(map[string]interface{}{
				"event": "property-change", "id": cmd.Command[1], "name": cmd.Command[2], "data": true,
			})
			continue
		}
		_ = enc.Encode(reply)
	}
}

func (f *fakeMPV) close() {
	f.ln.Close()
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, c := range f.conns {
		c.Close()
	}
}

func (f *fakeMPV) sent() []string {
	f.mu.Lock()
	defer f.mu.Unlock()

	var out []string
	for _, c := range f.commands {
		out = append(out, strings.TrimSpace(fmt.Sprintln(c...)))
	}
	return out
}

func (f *fakeMPV) unset(name string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.props, name)
}

func TestMPV(t *testing.T) {
	Convey("Given an mpv IPC socket", t, func() {
		srv := newFakeMPV(t)
		defer srv.close()

		m := NewMPV()
		m.socketPath = srv.ln.Addr().String()

		Convey("Properties are read past broadcast events", func() {
			pos, err := m.CurrentTime()
			So(err, ShouldBeNil)
			So(pos, ShouldEqual, 12.5)
			So(m.Duration().MustGet(), ShouldEqual, 120.0)
			So(m.IsRunning(), ShouldBeTrue)
		})

		Convey("An unknown duration is absent", func() {
			srv.unset("duration")
			So(m.Duration().IsAbsent(), ShouldBeTrue)

			pct, err := m.Percent()
			So(err, ShouldBeNil)
			So(pct, ShouldEqual, 0.0)
		})

		Convey("Play and pause drive the pause property", func() {
			So(m.Play(), ShouldBeNil)
			So(m.Rate(), ShouldEqual, 1.0)
			So(m.Pause(), ShouldBeNil)
			So(srv.sent(), ShouldResemble, []string{
				"set_property speed 1",
				"set_property pause false",
				"set_property pause true",
			})
		})

		Convey("A zero rate pins the content paused", func() {
			So(m.SetRate(0), ShouldBeNil)
			So(m.Rate(), ShouldEqual, 0.0)
			So(m.SetRate(1.5), ShouldBeNil)
			So(m.Rate(), ShouldEqual, 1.5)
			So(srv.sent(), ShouldResemble, []string{
				"set_property pause true",
				"set_property speed 1.5",
				"set_property pause false",
			})
		})

		Convey("Seeks are absolute", func() {
			So(m.Seek(42), ShouldBeNil)
			So(srv.sent(), ShouldResemble, []string{"seek 42 absolute"})
		})

		Convey("mpv errors are not retried", func() {
			srv.unset("time-pos")
			_, err := m.CurrentTime()
			So(err, ShouldNotBeNil)
			So(err.Error(), ShouldContainSubstring, "property unavailable")
			So(srv.sent(), ShouldHaveLength, 1)
		})

		Convey("Cue points become chapters", func() {
			So(NewCueMarker(m).Mark([]ads.CuePoint{
				{Index: 0, Kind: ads.CuePrerollOrPostroll},
				{Index: 1, Kind: ads.CueMidroll, Offset: 15 * time.Second},
			}), ShouldBeNil)
			So(srv.sent(), ShouldHaveLength, 1)
		})

		Convey("The end of the content closes Reached", func() {
			m.listener = NewEventListener(m.socketPath, m.onEvent, "eof-reached")
			So(m.listener.Start(), ShouldBeNil)
			defer m.listener.Stop()

			select {
			case <-m.Reached():
			case <-time.After(2 * time.Second):
			}
			So(isClosed(m.Reached()), ShouldBeTrue)
		})
	})
}

func isClosed(ch <-chan struct{}) bool {
	select {
	case <-ch:
		return true
	default:
		return false
	}
}

func TestArgs(t *testing.T) {
	Convey("Command lines", t, func() {
		Convey("Content is loaded paused after the end of options", func() {
			args := buildArgs("/tmp/x.sock", "Title", "https://example.com/video.m3u8", "--pause=yes")
			So(args, ShouldContain, "--input-ipc-server=/tmp/x.sock")
			So(args, ShouldContain, "--pause=yes")
			So(args[len(args)-2], ShouldEqual, "--")
			So(args[len(args)-1], ShouldEqual, "https://example.com/video.m3u8")
		})

		Convey("Ads play in their own window", func() {
			args := adArgs("Ad: x", "https://ads.example.com/a.mp4")
			So(args, ShouldContain, "--keep-open=no")
			So(args[len(args)-1], ShouldEqual, "https://ads.example.com/a.mp4")
		})

		Convey("Targets are sanitized", func() {
			_, err := sanitizeMediaTarget("--script=evil.lua")
			So(err, ShouldNotBeNil)
			_, err = sanitizeMediaTarget("ftp://example.com/a.mp4")
			So(err, ShouldNotBeNil)
			_, err = sanitizeMediaTarget("")
			So(err, ShouldNotBeNil)
			u, err := sanitizeMediaTarget(" https://example.com/a.m3u8 ")
			So(err, ShouldBeNil)
			So(u, ShouldEqual, "https://example.com/a.m3u8")
			So(sanitizeTitle(" a\nb\x00 "), ShouldEqual, "a b")
		})
	})

	Convey("Cue point chapters", t, func() {
		So(CuePointChapters([]ads.CuePoint{{Kind: ads.CuePrerollOrPostroll}}), ShouldBeNil)
		So(CuePointChapters([]ads.CuePoint{
			{Kind: ads.CuePrerollOrPostroll},
			{Kind: ads.CueMidroll, Offset: 15 * time.Second},
			{Kind: ads.CueMidroll, Offset: 45 * time.Second},
		}), ShouldResemble, []Chapter{
			{Title: "Content", Time: 0},
			{Title: "Ad break 1", Time: 15},
			{Title: "Ad break 2", Time: 45},
		})
	})

	Convey("IPC sockets live in the temp directory that is cleaned on start", t, func() {
		a, err := randomSocket()
		So(err, ShouldBeNil)
		b, err := randomSocket()
		So(err, ShouldBeNil)

		So(filepath.Dir(a), ShouldEqual, where.Temp())
		So(filepath.Ext(a), ShouldEqual, ".sock")
		So(a, ShouldNotEqual, b)
	})

	Convey("Backends", t, func() {
		p, err := New("mpv")
		So(err, ShouldBeNil)
		So(p, ShouldNotBeNil)
		_, err = New("iina")
		So(err, ShouldNotBeNil)
	})
}
