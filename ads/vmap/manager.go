package vmap

import (
	"context"
	"errors"
	"net/http"
	"sync"
	"time"

	"github.com/mangomedia/mango/ads"
	"github.com/mangomedia/mango/constant"
	"github.com/mangomedia/mango/log"
	"github.com/samber/lo"
	"github.com/samber/mo"
)

type managerOptions struct {
	breaks   []*Break
	renderer Renderer
	client   *http.Client
	playhead ads.ContentPlayhead
	surface  ads.Surface
	poll     time.Duration
	failed   func(url string)
}

// Manager schedules resolved breaks. Pre-rolls play as soon as it starts,
// timed breaks when the content playhead passes their offset and post-rolls
// after ContentComplete.
type Manager struct {
	managerOptions

	events chan ads.ManagerEvent

	mu          sync.Mutex
	initialized bool
	started     bool
	destroyed   bool
	preferred   []string

	stop         chan struct{}
	stopOnce     sync.Once
	complete     chan struct{}
	completeOnce sync.Once
	closeOnce    sync.Once
	done         chan struct{}
}

func newManager(opts managerOptions) *Manager {
	if opts.poll <= 0 {
		opts.poll = defaultPollInterval
	}

	return &Manager{
		managerOptions: opts,
		events:         make(chan ads.ManagerEvent, 32),
		stop:           make(chan struct{}),
		complete:       make(chan struct{}),
		done:           make(chan struct{}),
	}
}

func (m *Manager) CuePoints() []mo.Option[float64] {
	return lo.Map(m.breaks, func(b *Break, _ int) mo.Option[float64] {
		return b.Offset.CuePoint()
	})
}

func (m *Manager) Events() <-chan ads.ManagerEvent {
	return m.events
}

func (m *Manager) Init(settings ads.RenderingSettings) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.destroyed {
		return ErrDestroyed
	}

	m.preferred = settings.PreferredMIMETypes
	if !m.initialized {
		m.initialized = true
		m.emit(ads.ManagerEvent{Type: ads.ManagerLoaded})
	}
	return nil
}

func (m *Manager) Start() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	switch {
	case m.destroyed:
		return ErrDestroyed
	case !m.initialized:
		return ErrNotInitialized
	case m.started:
		return nil
	}

	m.started = true
	go m.run()
	return nil
}

func (m *Manager) ContentComplete() {
	m.completeOnce.Do(func() { close(m.complete) })
}

// Destroy stops scheduling, interrupts the ad being rendered and closes
// Events. It waits for the scheduler to exit.
func (m *Manager) Destroy() {
	m.stopOnce.Do(func() { close(m.stop) })

	m.mu.Lock()
	m.destroyed = true
	started := m.started
	m.mu.Unlock()

	if !started {
		m.closeEvents()
		return
	}

	<-m.done
}

func (m *Manager) closeEvents() {
	m.closeOnce.Do(func() { close(m.events) })
}

// emit never blocks past Destroy.
func (m *Manager) emit(ev ads.ManagerEvent) bool {
	select {
	case <-m.stop:
		return false
	default:
	}

	select {
	case m.events <- ev:
		return true
	case <-m.stop:
		return false
	}
}

func (m *Manager) run() {
	defer close(m.done)
	defer m.closeEvents()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go func() {
		select {
		case <-m.stop:
			cancel()
		case <-ctx.Done():
		}
	}()

	var (
		pre, timed, post []*Break
	)
	for _, b := range m.breaks {
		switch b.Offset.Kind {
		case OffsetStart:
			pre = append(pre, b)
		case OffsetTime:
			timed = append(timed, b)
		case OffsetEnd:
			post = append(post, b)
		default:
			log.With("vmap").Warnf("break %q cannot be placed without the content duration, skipping", b.ID)
		}
	}

	played := false
	for _, b := range pre {
		ok, ran := m.playBreak(ctx, b, true)
		if !ok {
			return
		}
		played = played || ran
	}
	if !played {
		// nothing held the content back
		if !m.emit(ads.ManagerEvent{Type: ads.ManagerContentResumeRequested}) {
			return
		}
	}

	ticker := time.NewTicker(m.poll)
	defer ticker.Stop()

	for len(timed) > 0 || len(post) > 0 {
		select {
		case <-m.stop:
			return
		case <-m.complete:
			for _, b := range post {
				if ok, _ := m.playBreak(ctx, b, false); !ok {
					return
				}
			}
			post = nil
			timed = nil
		case <-ticker.C:
			if m.playhead == nil {
				continue
			}
			position := m.playhead.Position()
			for len(timed) > 0 && timed[0].Offset.At <= position {
				b := timed[0]
				timed = timed[1:]
				if ok, _ := m.playBreak(ctx, b, true); !ok {
					return
				}
			}
		}
	}

	m.emit(ads.ManagerEvent{Type: ads.ManagerAllAdsCompleted})
}

// playBreak renders every ad of b. It reports whether scheduling may go on
// and whether anything played.
func (m *Manager) playBreak(ctx context.Context, b *Break, resume bool) (ok, ran bool) {
	if len(b.Ads) == 0 {
		return true, false
	}

	if m.surface != nil && !m.surface.Alive() {
		m.emit(ads.ManagerEvent{Type: ads.ManagerError, Err: ads.ErrHostSurfaceGone})
		return false, false
	}

	log.With("vmap").Infof("playing break %q with %d ads", b.ID, len(b.Ads))
	if !m.emit(ads.ManagerEvent{Type: ads.ManagerContentPauseRequested}) {
		return false, false
	}

	m.mu.Lock()
	preferred := m.preferred
	m.mu.Unlock()

	for _, ad := range b.Ads {
		media, found := ad.Pick(preferred)
		if !found {
			log.With("vmap").Warnf("ad %q has no media, skipping", ad.AdID)
			continue
		}

		if !m.emit(ads.ManagerEvent{Type: ads.ManagerStarted, AdID: ad.AdID}) {
			return false, true
		}
		m.track(ctx, ad.Impressions)
		m.track(ctx, ad.Tracking["start"])

		if err := m.renderer.Render(ctx, ad, media); err != nil {
			if errors.Is(err, context.Canceled) || ctx.Err() != nil {
				return false, true
			}
			m.emit(ads.ManagerEvent{Type: ads.ManagerError, AdID: ad.AdID, Err: err})
			return false, true
		}

		m.track(ctx, ad.Tracking["complete"])
		if !m.emit(ads.ManagerEvent{Type: ads.ManagerAdCompleted, AdID: ad.AdID}) {
			return false, true
		}
	}

	// content has ended after a post-roll, there is nothing to resume
	if resume && !m.emit(ads.ManagerEvent{Type: ads.ManagerContentResumeRequested}) {
		return false, true
	}
	return true, true
}

// track pings tracking URLs. Unreachable URLs go to the failure hook unless
// the break itself was cancelled.
func (m *Manager) track(ctx context.Context, urls []string) {
	if m.client == nil {
		return
	}

	for _, u := range urls {
		reqCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
		req, err := http.NewRequestWithContext(reqCtx, http.MethodGet, u, nil)
		if err != nil {
			cancel()
			continue
		}
		req.Header.Set("User-Agent", constant.UserAgent)

		resp, err := m.client.Do(req)
		cancel()
		if err != nil {
			log.With("vmap").Debugf("tracking %s: %s", u, err)
			if m.failed != nil && ctx.Err() == nil {
				m.failed(u)
			}
			continue
		}
		_ = resp.Body.Close()
	}
}
