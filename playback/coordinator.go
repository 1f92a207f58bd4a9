package playback

import (
	"time"

	"github.com/mangomedia/mango/ads"
	"github.com/mangomedia/mango/log"
	"github.com/mangomedia/mango/queue"
	"github.com/mangomedia/mango/util"
	"github.com/samber/mo"
)

// Options configure a Coordinator.
type Options struct {
	ContentURL string
	Subscribed bool

	Port    Port
	Loader  ads.Loader
	Surface ads.Surface
	Queue   queue.Dispatcher

	// AdTag is the ad tag template; a fresh correlator is substituted for
	// every request.
	AdTag     string
	AdTimeout time.Duration
	Clock     func() time.Time

	ObserveInterval    time.Duration
	WithCustomControls bool

	// OnChange runs on the queue after every visible state change.
	OnChange func()
	// OnCuePoints runs on the queue once ad metadata has loaded.
	OnCuePoints func([]ads.CuePoint)
}

// Coordinator is the state machine of one player screen. It owns the content
// port and, for unsubscribed visits, the ad session that gates it.
//
// All methods must run on the UI queue.
type Coordinator struct {
	opts    Options
	session *Session

	phase      Phase
	content    ContentState
	affordance Affordance
	slider     Slider
	position   float64
	duration   mo.Option[float64]
	ended      bool
	closed     bool
	// content was paused by the user when the ad break began
	userPaused bool

	ad         *ads.Session
	adSessions int
	outcome    mo.Option[ads.Outcome]

	observer    Disposer
	stopReached chan struct{}
}

// NewCoordinator returns a coordinator in PhaseInit.
func NewCoordinator(opts Options) *Coordinator {
	if opts.Clock == nil {
		opts.Clock = time.Now
	}
	if opts.ObserveInterval <= 0 {
		opts.ObserveInterval = DefaultObserveInterval
	}

	return &Coordinator{
		opts:    opts,
		session: NewSession(opts.ContentURL, opts.Subscribed),
		phase:   PhaseInit,
		slider:  DefaultSlider,
	}
}

// Appear marks a fresh visibility transition. It re-arms the visit guard and
// attaches the time observer.
func (c *Coordinator) Appear() {
	if c.closed {
		return
	}

	c.session.Arm()

	if c.observer == nil {
		c.observer = ObserveTime(c.opts.Port, c.opts.ObserveInterval, c.opts.Queue, c.onTime)
	}
	if c.stopReached == nil {
		c.stopReached = make(chan struct{})
		go c.watchReached(c.opts.Port.Reached(), c.stopReached)
	}
}

// Visible runs once the screen is on display. Only the first call after
// Appear does anything.
func (c *Coordinator) Visible() {
	if c.closed || !c.session.Disarm() {
		return
	}

	if c.session.Subscribed {
		log.With("playback").Info("subscribed, starting content")
		c.startContent()
		return
	}

	c.requestAd()
}

// Layout is a relayout pass. It never requests ads.
func (c *Coordinator) Layout() {}

// TogglePlayPause flips the content between playing and user-paused. It is
// ignored while an ad holds the content.
func (c *Coordinator) TogglePlayPause() error {
	switch {
	case c.closed:
		return ErrClosed
	case !c.opts.WithCustomControls:
		return ErrControlsDisabled
	case c.phase != PhaseContentPlaying:
		return nil
	}

	switch c.content {
	case ContentPlaying:
		if err := c.opts.Port.Pause(); err != nil {
			return err
		}
		c.content = ContentPaused
		c.affordance = ShowPlay
	default:
		if err := c.opts.Port.Play(); err != nil {
			return err
		}
		c.content = ContentPlaying
		c.affordance = ShowPause
	}

	c.changed()
	return nil
}

// Seek moves the content to the slider value, in seconds. It is rejected
// until the duration is known.
func (c *Coordinator) Seek(value float64) error {
	switch {
	case c.closed:
		return ErrClosed
	case !c.opts.WithCustomControls:
		return ErrControlsDisabled
	case c.phase == PhaseRequestingAd, c.phase == PhasePausedForAd:
		return ErrAdBreak
	}

	duration, ok := c.opts.Port.Duration().Get()
	if !ok || duration <= 0 {
		return ErrDurationUnknown
	}

	value = util.Clamp(value, 0, duration)
	if err := c.opts.Port.Seek(value); err != nil {
		return err
	}

	c.position = value
	c.duration = mo.Some(duration)
	c.slider.Max = duration
	c.slider.Value = value
	c.changed()
	return nil
}

// SeekBy seeks relative to the current position.
func (c *Coordinator) SeekBy(delta float64) error {
	return c.Seek(c.position + delta)
}

// Teardown ends the visit: the ad session is cancelled, the time observer
// disposed and the content paused. Later events are ignored.
func (c *Coordinator) Teardown() {
	if c.closed {
		return
	}
	c.closed = true

	if s := c.ad; s != nil {
		c.ad = nil
		s.Cancel()
	}

	if c.observer != nil {
		c.observer.Dispose()
	}
	if c.stopReached != nil {
		close(c.stopReached)
	}

	if err := c.opts.Port.Pause(); err != nil {
		log.With("playback").Warnf("pause on teardown: %s", err)
	}

	c.phase = PhaseClosed
	c.content = ContentStopped
	c.affordance = ShowPlay
	log.With("playback").Info("torn down")
}

func (c *Coordinator) requestAd() {
	if c.ad != nil {
		log.With("playback").Warn("ad session still active, not requesting another")
		return
	}

	if c.opts.Loader == nil {
		c.startContent()
		return
	}

	url, err := ads.NewRequestContext(c.opts.AdTag, c.opts.Clock()).URL()
	if err != nil {
		log.With("playback").Warnf("%s, falling back to content", err)
		c.startContent()
		return
	}

	c.phase = PhaseRequestingAd
	c.ad = ads.NewSession(ads.Options{
		Loader:   c.opts.Loader,
		Surface:  c.opts.Surface,
		Playhead: ads.NewContentPlayhead(c.opts.Port),
		Queue:    c.opts.Queue,
		Handler:  c.onAdEvent,
		Timeout:  c.opts.AdTimeout,
	})
	c.adSessions++
	c.changed()

	c.ad.Request(url)
}

func (c *Coordinator) onAdEvent(s *ads.Session, ev ads.Event) {
	if c.closed || s != c.ad {
		return
	}

	switch ev.Kind {
	case ads.EventRequestPause:
		c.pauseForAd()
	case ads.EventRequestResume:
		c.startContent()
	case ads.EventLoaded:
		if c.opts.OnCuePoints != nil {
			c.opts.OnCuePoints(s.CuePoints())
		}
	case ads.EventError:
		log.With("playback").Warnf("ad error: %s", ev.Err)
	case ads.EventFinished:
		c.ad = nil
		c.outcome = mo.Some(ev.Outcome)
		if ev.Outcome.Err != nil {
			log.With("playback").Infof("ads ended (%s), playing content", ev.Outcome.Cause)
		}
		c.startContent()
		return
	}

	c.changed()
}

func (c *Coordinator) pauseForAd() {
	if err := c.opts.Port.Pause(); err != nil {
		log.With("playback").Warnf("pause for ad: %s", err)
	}
	// pausing alone can lose to a resume already in flight
	if err := c.opts.Port.SetRate(0); err != nil {
		log.With("playback").Warnf("pin rate: %s", err)
	}

	if c.content != ContentPausedForAd {
		c.userPaused = c.content == ContentPaused
	}
	c.content = ContentPausedForAd
	c.phase = PhasePausedForAd
	c.affordance = ShowPlay
}

// startContent is idempotent: playing content stays as it is and a
// pause made by the user before the ad break is kept.
func (c *Coordinator) startContent() {
	if c.closed {
		return
	}

	c.phase = PhaseContentPlaying

	switch {
	case c.content == ContentPlaying, c.content == ContentPaused:
	case c.ended:
		c.content = ContentStopped
		c.affordance = ShowPlay
	case c.userPaused:
		c.content = ContentPaused
		c.affordance = ShowPlay
	default:
		if err := c.opts.Port.Play(); err != nil {
			log.With("playback").Errorf("start content: %s", err)
		} else {
			c.content = ContentPlaying
			c.affordance = ShowPause
		}
	}
	c.userPaused = false

	c.changed()
}

func (c *Coordinator) onTime(position float64, duration mo.Option[float64]) {
	if c.closed {
		return
	}

	c.position = position
	if d, ok := duration.Get(); ok && d > 0 {
		c.duration = duration
		c.slider.Max = d
		c.slider.Value = min(position, d)
	}
	c.changed()
}

func (c *Coordinator) watchReached(reached <-chan struct{}, stop <-chan struct{}) {
	select {
	case <-reached:
		c.opts.Queue.Dispatch(c.onReached)
	case <-stop:
	}
}

func (c *Coordinator) onReached() {
	if c.closed {
		return
	}

	log.With("playback").Info("content reached its end")
	c.ended = true
	c.content = ContentStopped
	c.affordance = ShowPlay

	if c.ad != nil {
		c.ad.ContentComplete()
	}
	c.changed()
}

func (c *Coordinator) changed() {
	if c.opts.OnChange != nil {
		c.opts.OnChange()
	}
}

func (c *Coordinator) Phase() Phase { return c.phase }
func (c *Coordinator) Content() ContentState { return c.content }
func (c *Coordinator) Affordance() Affordance { return c.affordance }
func (c *Coordinator) Slider() Slider { return c.slider }
func (c *Coordinator) Position() float64 { return c.position }
func (c *Coordinator) Session() *Session { return c.session }
func (c *Coordinator) AdSession() *ads.Session { return c.ad }
func (c *Coordinator) AdSessionsCreated() int { return c.adSessions }
func (c *Coordinator) Controls() bool { return c.opts.WithCustomControls }
func (c *Coordinator) Closed() bool { return c.closed }

// Outcome is the terminal outcome of the last ad session, if any finished.
func (c *Coordinator) Outcome() mo.Option[ads.Outcome] { return c.outcome }

// Duration is the content duration, when known.
func (c *Coordinator) Duration() mo.Option[float64] { return c.opts.Port.Duration() }

// LastDuration is the last duration the time observer saw. It survives the
// port going away.
func (c *Coordinator) LastDuration() mo.Option[float64] { return c.duration }
