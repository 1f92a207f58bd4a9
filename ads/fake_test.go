package ads

import (
	"context"
	"sync"
	"sync/atomic"

	"github.com/samber/mo"
)

type fakeSurface struct {
	alive atomic.Bool
}

func newSurface(alive bool) *fakeSurface {
	s := &fakeSurface{}
	s.alive.Store(alive)
	return s
}

func (f *fakeSurface) Alive() bool { return f.alive.Load() }

type fakeManager struct {
	cues   []mo.Option[float64]
	events chan ManagerEvent

	mu        sync.Mutex
	inits     int
	starts    int
	destroyed int
	completes int
	once      sync.Once
}

func newManager(cues ...mo.Option[float64]) *fakeManager {
	return &fakeManager{
		cues:   cues,
		events: make(chan ManagerEvent, 16),
	}
}

func (m *fakeManager) CuePoints() []mo.Option[float64] { return m.cues }

func (m *fakeManager) Init(RenderingSettings) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.inits++
	return nil
}

func (m *fakeManager) Start() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.starts++
	return nil
}

func (m *fakeManager) ContentComplete() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.completes++
}

func (m *fakeManager) Events() <-chan ManagerEvent { return m.events }

func (m *fakeManager) Destroy() {
	m.mu.Lock()
	m.destroyed++
	m.mu.Unlock()
	m.once.Do(func() { close(m.events) })
}

func (m *fakeManager) Destroyed() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.destroyed
}

func (m *fakeManager) send(types ...ManagerEventType) {
	for _, t := range types {
		m.events <- ManagerEvent{Type: t}
	}
}

type fakeLoader struct {
	manager *fakeManager
	err     error
	block   bool

	requests atomic.Int32
	last     atomic.Pointer[Request]
}

func (l *fakeLoader) RequestAds(ctx context.Context, req Request) (Manager, error) {
	l.requests.Add(1)
	l.last.Store(&req)

	if l.block {
		<-ctx.Done()
		return nil, ctx.Err()
	}
	if l.err != nil {
		return nil, l.err
	}
	return l.manager, nil
}
