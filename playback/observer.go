package playback

import (
	"sync"
	"sync/atomic"
	"time"

	"github.com/mangomedia/mango/queue"
	"github.com/samber/mo"
)

// DefaultObserveInterval is the time observer cadence.
const DefaultObserveInterval = 500 * time.Millisecond

// TimeFunc receives the content position on the UI queue.
type TimeFunc func(position float64, duration mo.Option[float64])

// Disposer releases a registration. Dispose is idempotent.
type Disposer interface {
	Dispose()
}

type timeObserver struct {
	port     Port
	interval time.Duration
	queue    queue.Dispatcher
	fn       TimeFunc

	disposed atomic.Bool
	stop     chan struct{}
	done     chan struct{}
	once     sync.Once
}

// ObserveTime samples port every interval and republishes the position on q.
// The returned Disposer must be called when the owning screen goes away; once
// it returns no further callbacks run.
func ObserveTime(port Port, interval time.Duration, q queue.Dispatcher, fn TimeFunc) Disposer {
	if interval <= 0 {
		interval = DefaultObserveInterval
	}

	o := &timeObserver{
		port:     port,
		interval: interval,
		queue:    q,
		fn:       fn,
		stop:     make(chan struct{}),
		done:     make(chan struct{}),
	}
	go o.loop()
	return o
}

func (o *timeObserver) loop() {
	defer close(o.done)

	ticker := time.NewTicker(o.interval)
	defer ticker.Stop()

	for {
		select {
		case <-o.stop:
			return
		case <-ticker.C:
			position, err := o.port.CurrentTime()
			if err != nil {
				continue
			}
			duration := o.port.Duration()

			o.queue.Dispatch(func() {
				if o.disposed.Load() {
					return
				}
				o.fn(position, duration)
			})
		}
	}
}

func (o *timeObserver) Dispose() {
	o.once.Do(func() {
		o.disposed.Store(true)
		close(o.stop)
		<-o.done
	})
}
