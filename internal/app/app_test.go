package app

import (
	"sync"
	"testing"
	"time"

	"github.com/mangomedia/mango/filesystem"
	"github.com/mangomedia/mango/history"
	"github.com/mangomedia/mango/key"
	"github.com/mangomedia/mango/playback"
	"github.com/mangomedia/mango/player"
	"github.com/mangomedia/mango/queue"
	"github.com/samber/mo"
	. "github.com/smartystreets/goconvey/convey"
	"github.com/spf13/viper"
	"go.uber.org/goleak"
)

func init() {
	filesystem.SetMemMapFs()
}

type fakePlayer struct {
	mu       sync.Mutex
	playing  bool
	position float64
	duration mo.Option[float64]
	chapters []player.Chapter
	reached  chan struct{}
	exited   chan struct{}
}

func newFakePlayer() *fakePlayer {
	return &fakePlayer{
		duration: mo.Some(200.0),
		position: 50,
		reached:  make(chan struct{}),
		exited:   make(chan struct{}),
	}
}

func (p *fakePlayer) Play() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.playing = true
	return nil
}

func (p *fakePlayer) Pause() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.playing = false
	return nil
}

func (p *fakePlayer) Seek(seconds float64) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.position = seconds
	return nil
}

func (p *fakePlayer) CurrentTime() (float64, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.position, nil
}

func (p *fakePlayer) Duration() mo.Option[float64] {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.duration
}

func (p *fakePlayer) Rate() float64 { return 1 }
func (p *fakePlayer) SetRate(float64) error { return nil }
func (p *fakePlayer) Reached() <-chan struct{} { return p.reached }
func (p *fakePlayer) Load(string, string) error { return nil }
func (p *fakePlayer) Wait() <-chan struct{} { return p.exited }

func (p *fakePlayer) Close() error {
	close(p.exited)
	return nil
}

func (p *fakePlayer) SetChapters(chapters []player.Chapter) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.chapters = chapters
	return nil
}

func (p *fakePlayer) isPlaying() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.playing
}

func TestSurface(t *testing.T) {
	Convey("A player surface", t, func() {
		p := newFakePlayer()
		s := NewSurface(p)
		So(s.Alive(), ShouldBeTrue)

		Convey("Dies when the screen closes", func() {
			s.Close()
			So(s.Alive(), ShouldBeFalse)
		})

		Convey("Dies when the player exits", func() {
			So(p.Close(), ShouldBeNil)
			So(s.Alive(), ShouldBeFalse)
		})
	})
}

func TestVisit(t *testing.T) {
	defer goleak.VerifyNone(t, goleak.IgnoreCurrent())

	viper.Set(key.AdsTimeoutSeconds, 1)
	viper.Set(key.AdsMarkCuePoints, true)
	viper.Set(key.PlayerObserverIntervalMs, 5)
	viper.Set(key.PlayerCustomControls, true)
	viper.Set(key.HistorySave, true)

	Convey("Given ads disabled in the config", t, func() {
		viper.Set(key.AdsEnable, false)
		defer viper.Set(key.AdsEnable, true)
		So(history.Clear(), ShouldBeNil)

		q := queue.NewManual()
		p := newFakePlayer()
		v := Visit{
			ContentURL: "https://example.com/video.m3u8",
			Title:      "Vertical 1",
			Player:     p,
			Queue:      q,
		}
		surface := NewSurface(p)
		c := NewCoordinator(v, surface)

		Convey("An unsubscribed visit plays content without an ad session", func() {
			Reset(func() {
				c.Teardown()
				q.Drain()
			})

			c.Appear()
			c.Visible()

			So(c.Session().Subscribed, ShouldBeTrue)
			So(c.AdSessionsCreated(), ShouldEqual, 0)
			So(c.Phase(), ShouldEqual, playback.PhaseContentPlaying)
			So(p.isPlaying(), ShouldBeTrue)

			So(q.DrainUntil(func() bool { return c.LastDuration().IsPresent() }, 2*time.Second), ShouldBeTrue)

			Convey("Leaving saves the position to history", func() {
				c.Teardown()
				surface.Close()
				q.Drain()
				So(p.Close(), ShouldBeNil)

				So(SaveHistory(v, c), ShouldBeNil)
				entry, err := history.Find(v.ContentURL)
				So(err, ShouldBeNil)
				So(entry.IsPresent(), ShouldBeTrue)
				So(entry.MustGet().Percent, ShouldEqual, 25.0)
				So(entry.MustGet().Subscribed, ShouldBeTrue)
				So(entry.MustGet().AdOutcome, ShouldBeEmpty)
			})
		})

		Convey("Nothing is saved before the duration is known", func() {
			So(SaveHistory(v, c), ShouldBeNil)
			entry, err := history.Find(v.ContentURL)
			So(err, ShouldBeNil)
			So(entry.IsPresent(), ShouldBeFalse)
		})
	})

	Convey("Ads enabled builds the VMAP loader", t, func() {
		viper.Set(key.AdsEnable, true)
		viper.Set(key.AdsMaxWrapperDepth, 3)
		So(AdsEnabled(), ShouldBeTrue)
		So(AdTimeout(), ShouldEqual, time.Second)
		So(NewAdLoader(), ShouldNotBeNil)
		So(AdClient().Timeout, ShouldEqual, time.Second)
	})
}
