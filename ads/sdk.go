package ads

import (
	"context"
	"time"

	"github.com/samber/mo"
)

// Surface is the host UI area ads are rendered into. It may be torn down at
// any time, so it is checked before every use rather than assumed to exist.
type Surface interface {
	Alive() bool
}

// TimeSource reports the content player's position in seconds.
type TimeSource interface {
	CurrentTime() (float64, error)
}

// ContentPlayhead lets the ad SDK infer how much of the content has played,
// which it needs to schedule mid-rolls.
type ContentPlayhead interface {
	Position() time.Duration
}

// NewContentPlayhead adapts a content time source. Read errors report the
// start of the content.
func NewContentPlayhead(src TimeSource) ContentPlayhead {
	return playhead{src: src}
}

type playhead struct {
	src TimeSource
}

func (p playhead) Position() time.Duration {
	seconds, err := p.src.CurrentTime()
	if err != nil || seconds < 0 {
		return 0
	}
	return time.Duration(seconds * float64(time.Second))
}

// DisplayContainer binds ad rendering to the host surface.
type DisplayContainer struct {
	Surface Surface
}

// Request is a single ad request handed to a Loader.
type Request struct {
	AdTagURL string
	Display  DisplayContainer
	Playhead ContentPlayhead
}

// RenderingSettings configures ad rendering. The zero value is the default.
type RenderingSettings struct {
	// PreferredMIMETypes orders media file selection; empty means the loader's default.
	PreferredMIMETypes []string
}

// Loader fetches ad metadata. RequestAds blocks until the metadata is loaded,
// fails, or ctx is done; callers run it off the UI queue.
type Loader interface {
	RequestAds(ctx context.Context, req Request) (Manager, error)
}

// Manager drives playback of a loaded ad schedule.
type Manager interface {
	// CuePoints lists the schedule. An absent value is the pre-/post-roll sentinel.
	CuePoints() []mo.Option[float64]

	// Init prepares rendering; the manager reports ManagerLoaded when ready.
	Init(settings RenderingSettings) error

	// Start begins rendering the schedule.
	Start() error

	// ContentComplete tells the manager the content reached its end so
	// post-rolls can play.
	ContentComplete()

	// Events is closed once the manager has been destroyed.
	Events() <-chan ManagerEvent

	// Destroy releases the manager. It is safe to call more than once.
	Destroy()
}

// ManagerEventType enumerates what an ad manager reports.
type ManagerEventType int

const (
	ManagerOther ManagerEventType = iota
	ManagerLoaded
	ManagerStarted
	ManagerAdCompleted
	ManagerAllAdsCompleted
	ManagerContentPauseRequested
	ManagerContentResumeRequested
	ManagerError
)

func (t ManagerEventType) String() string {
	switch t {
	case ManagerLoaded:
		return "LOADED"
	case ManagerStarted:
		return "STARTED"
	case ManagerAdCompleted:
		return "COMPLETE"
	case ManagerAllAdsCompleted:
		return "ALL_ADS_COMPLETED"
	case ManagerContentPauseRequested:
		return "CONTENT_PAUSE_REQUESTED"
	case ManagerContentResumeRequested:
		return "CONTENT_RESUME_REQUESTED"
	case ManagerError:
		return "ERROR"
	default:
		return "OTHER"
	}
}

// ManagerEvent is one notification from an ad manager.
type ManagerEvent struct {
	Type ManagerEventType
	AdID string
	Err  error
}
