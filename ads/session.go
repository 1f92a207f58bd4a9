package ads

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/mangomedia/mango/log"
	"github.com/mangomedia/mango/queue"
	"github.com/sirupsen/logrus"
)

// DefaultTimeout bounds a single ad metadata request.
const DefaultTimeout = 10 * time.Second

// Options configure a Session.
type Options struct {
	Loader   Loader
	Surface  Surface
	Playhead ContentPlayhead
	Queue    queue.Dispatcher
	Handler  Handler
	Settings RenderingSettings
	Timeout  time.Duration
}

// Session negotiates one ad break against one ad tag and reports exactly one
// terminal outcome through EventFinished.
//
// Every method must be called on the UI queue. Loader and manager callbacks
// are re-dispatched onto that queue before they touch session state.
type Session struct {
	id       string
	loader   Loader
	surface  Surface
	playhead ContentPlayhead
	queue    queue.Dispatcher
	handler  Handler
	settings RenderingSettings
	timeout  time.Duration

	state    SessionState
	manager  Manager
	released bool
	finished bool
	cues     []CuePoint
	cancel   context.CancelFunc
}

// NewSession builds an idle session.
func NewSession(opts Options) *Session {
	if opts.Timeout <= 0 {
		opts.Timeout = DefaultTimeout
	}
	if opts.Handler == nil {
		opts.Handler = func(*Session, Event) {}
	}

	return &Session{
		id:       uuid.NewString(),
		loader:   opts.Loader,
		surface:  opts.Surface,
		playhead: opts.Playhead,
		queue:    opts.Queue,
		handler:  opts.Handler,
		settings: opts.Settings,
		timeout:  opts.Timeout,
	}
}

// ID identifies the session in logs.
func (s *Session) ID() string {
	return s.id
}

func (s *Session) log() *logrus.Entry {
	return log.With("ads").WithField("session", s.id)
}

// State returns the current session state.
func (s *Session) State() SessionState {
	return s.state
}

// CuePoints returns the cue points classified when metadata loaded.
func (s *Session) CuePoints() []CuePoint {
	return s.cues
}

// Finished reports whether the terminal outcome has been delivered.
func (s *Session) Finished() bool {
	return s.finished
}

// Request issues the ad request. A session only ever requests once; later
// calls are ignored.
func (s *Session) Request(adTagURL string) {
	if s.state != StateIdle || s.finished {
		s.log().Warnf("request ignored in state %s", s.state)
		return
	}

	if s.surface == nil || !s.surface.Alive() {
		s.log().Warn("host surface gone before request")
		s.state = StateFailed
		s.queue.Dispatch(func() {
			s.finish(Outcome{Cause: CauseHostSurfaceGone, Err: ErrHostSurfaceGone})
		})
		return
	}

	s.state = StateRequesting
	s.log().Infof("requesting %s", adTagURL)

	ctx, cancel := context.WithTimeout(context.Background(), s.timeout)
	s.cancel = cancel

	req := Request{
		AdTagURL: adTagURL,
		Display:  DisplayContainer{Surface: s.surface},
		Playhead: s.playhead,
	}

	go func() {
		manager, err := s.loader.RequestAds(ctx, req)
		s.queue.Dispatch(func() {
			s.onLoaded(manager, err)
		})
	}()
}

// Cancel terminates the session from the host side: pending requests are
// abandoned and the manager is released. It is a no-op once finished.
func (s *Session) Cancel() {
	if s.finished {
		return
	}

	s.log().Info("session cancelled")
	s.state = StateFailed
	s.release()
	s.finish(Outcome{Cause: CauseCancelled, Err: ErrCancelled})
}

// ContentComplete forwards the end of the content to the manager so that
// post-rolls can play.
func (s *Session) ContentComplete() {
	if s.finished || s.manager == nil || s.released {
		return
	}

	s.manager.ContentComplete()
}

func (s *Session) onLoaded(manager Manager, err error) {
	if s.finished {
		// the session died while the request was in flight
		if manager != nil {
			manager.Destroy()
		}
		return
	}

	if err != nil || manager == nil {
		if err == nil {
			err = fmt.Errorf("loader returned no manager")
		}
		s.log().Warnf("loading failed: %s", err)
		s.state = StateFailed
		s.release()
		s.finish(Outcome{Cause: CauseLoadFailed, Err: fmt.Errorf("%w: %w", ErrAdLoadFailed, err)})
		return
	}

	if !s.surface.Alive() {
		s.log().Warn("host surface gone after load")
		manager.Destroy()
		s.state = StateFailed
		s.finish(Outcome{Cause: CauseHostSurfaceGone, Err: ErrHostSurfaceGone})
		return
	}

	s.manager = manager
	s.state = StateLoaded
	s.cues = ClassifyCuePoints(manager.CuePoints())
	for _, cue := range s.cues {
		s.log().Info(cue.String())
	}

	events := manager.Events()
	go func() {
		for ev := range events {
			s.queue.Dispatch(func() {
				s.onManagerEvent(manager, ev)
			})
		}
	}()

	if err := manager.Init(s.settings); err != nil {
		s.fail(err)
	}
}

func (s *Session) onManagerEvent(manager Manager, ev ManagerEvent) {
	if s.finished || manager != s.manager {
		return
	}

	s.log().Debugf("manager event %s %s", ev.Type, ev.AdID)

	switch ev.Type {
	case ManagerLoaded:
		s.state = StateLoaded
		s.emit(Event{Kind: EventLoaded, AdID: ev.AdID})
		if err := manager.Start(); err != nil {
			s.fail(err)
		}
	case ManagerStarted:
		s.state = StatePlaying
		s.emit(Event{Kind: EventStarted, AdID: ev.AdID})
	case ManagerAdCompleted:
		// a pod may hold several ads, only AllAdsCompleted ends the break
		s.emit(Event{Kind: EventAdCompleted, AdID: ev.AdID})
	case ManagerAllAdsCompleted:
		s.state = StateCompleted
		s.emit(Event{Kind: EventAllAdsCompleted})
		s.release()
		s.finish(Outcome{Cause: CauseCompleted})
	case ManagerContentPauseRequested:
		s.emit(Event{Kind: EventRequestPause, AdID: ev.AdID})
	case ManagerContentResumeRequested:
		s.emit(Event{Kind: EventRequestResume, AdID: ev.AdID})
	case ManagerError:
		err := ev.Err
		if err == nil {
			err = fmt.Errorf("unknown ad error")
		}
		s.fail(err)
	}
}

func (s *Session) fail(err error) {
	if s.finished {
		return
	}

	s.log().Warnf("playback error: %s", err)
	wrapped := fmt.Errorf("%w: %w", ErrAdPlayback, err)
	s.state = StateFailed
	s.emit(Event{Kind: EventError, Err: wrapped})
	s.release()
	s.finish(Outcome{Cause: CausePlaybackError, Err: wrapped})
}

// release destroys the manager at most once.
func (s *Session) release() {
	if s.cancel != nil {
		s.cancel()
	}

	if s.released || s.manager == nil {
		return
	}

	s.released = true
	s.manager.Destroy()
}

func (s *Session) finish(outcome Outcome) {
	if s.finished {
		return
	}

	s.finished = true
	s.log().Infof("session finished: %s", outcome.Cause)
	s.handler(s, Event{Kind: EventFinished, Outcome: outcome})
}

func (s *Session) emit(ev Event) {
	s.handler(s, ev)
}
