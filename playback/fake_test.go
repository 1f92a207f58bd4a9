package playback

import (
	"context"
	"sync"
	"sync/atomic"

	"github.com/mangomedia/mango/ads"
	"github.com/samber/mo"
)

type fakePort struct {
	mu       sync.Mutex
	playing  bool
	rate     float64
	position float64
	duration mo.Option[float64]
	plays    int
	pauses   int
	seeks    int
	reached  chan struct{}
}

func newPort() *fakePort {
	return &fakePort{duration: mo.None[float64](), reached: make(chan struct{})}
}

func (p *fakePort) Play() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.plays++
	p.playing = true
	p.rate = 1
	return nil
}

func (p *fakePort) Pause() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.pauses++
	p.playing = false
	return nil
}

func (p *fakePort) Seek(seconds float64) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.seeks++
	p.position = seconds
	return nil
}

func (p *fakePort) CurrentTime() (float64, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.position, nil
}

func (p *fakePort) Duration() mo.Option[float64] {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.duration
}

func (p *fakePort) Rate() float64 {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.rate
}

func (p *fakePort) SetRate(rate float64) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.rate = rate
	p.playing = rate > 0
	return nil
}

func (p *fakePort) Reached() <-chan struct{} { return p.reached }

func (p *fakePort) set(position float64, duration mo.Option[float64]) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.position = position
	p.duration = duration
}

func (p *fakePort) snapshot() fakePort {
	p.mu.Lock()
	defer p.mu.Unlock()
	return fakePort{
		playing:  p.playing,
		rate:     p.rate,
		position: p.position,
		plays:    p.plays,
		pauses:   p.pauses,
		seeks:    p.seeks,
	}
}

type surface struct{ alive atomic.Bool }

func newSurface() *surface {
	s := &surface{}
	s.alive.Store(true)
	return s
}

func (s *surface) Alive() bool { return s.alive.Load() }

type fakeManager struct {
	cues      []mo.Option[float64]
	events    chan ads.ManagerEvent
	destroyed atomic.Int32
	completes atomic.Int32
	once      sync.Once
}

func newManager() *fakeManager {
	return &fakeManager{
		cues:   []mo.Option[float64]{mo.None[float64](), mo.Some(15.0), mo.None[float64]()},
		events: make(chan ads.ManagerEvent, 16),
	}
}

func (m *fakeManager) CuePoints() []mo.Option[float64] { return m.cues }
func (m *fakeManager) Init(ads.RenderingSettings) error { return nil }
func (m *fakeManager) Start() error { return nil }
func (m *fakeManager) ContentComplete() { m.completes.Add(1) }
func (m *fakeManager) Events() <-chan ads.ManagerEvent { return m.events }

func (m *fakeManager) Destroy() {
	m.destroyed.Add(1)
	m.once.Do(func() { close(m.events) })
}

func (m *fakeManager) send(types ...ads.ManagerEventType) {
	for _, t := range types {
		m.events <- ads.ManagerEvent{Type: t}
	}
}

type fakeLoader struct {
	manager *fakeManager
	err     error

	mu   sync.Mutex
	urls []string
}

func (l *fakeLoader) RequestAds(_ context.Context, req ads.Request) (ads.Manager, error) {
	l.mu.Lock()
	l.urls = append(l.urls, req.AdTagURL)
	l.mu.Unlock()

	if l.err != nil {
		return nil, l.err
	}
	return l.manager, nil
}

func (l *fakeLoader) requested() []string {
	l.mu.Lock()
	defer l.mu.Unlock()
	return append([]string{}, l.urls...)
}
