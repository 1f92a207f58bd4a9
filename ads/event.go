package ads

// SessionState is owned by the Session. Observers only see it through events.
type SessionState int

const (
	StateIdle SessionState = iota
	StateRequesting
	StateLoaded
	StatePlaying
	StateCompleted
	StateFailed
)

func (s SessionState) String() string {
	switch s {
	case StateIdle:
		return "Idle"
	case StateRequesting:
		return "Requesting"
	case StateLoaded:
		return "Loaded"
	case StatePlaying:
		return "Playing"
	case StateCompleted:
		return "Completed"
	case StateFailed:
		return "Failed"
	default:
		return "Unknown"
	}
}

// EventKind tags a session event.
type EventKind int

const (
	EventLoaded EventKind = iota
	EventStarted
	EventAdCompleted
	EventAllAdsCompleted
	EventError
	EventRequestPause
	EventRequestResume
	// EventFinished is the terminal outcome. It is delivered exactly once.
	EventFinished
)

func (k EventKind) String() string {
	switch k {
	case EventLoaded:
		return "Loaded"
	case EventStarted:
		return "Started"
	case EventAdCompleted:
		return "AdCompleted"
	case EventAllAdsCompleted:
		return "AllAdsCompleted"
	case EventError:
		return "Error"
	case EventRequestPause:
		return "RequestPause"
	case EventRequestResume:
		return "RequestResume"
	case EventFinished:
		return "Finished"
	default:
		return "Unknown"
	}
}

// Cause explains why a session finished.
type Cause int

const (
	CauseCompleted Cause = iota
	CauseHostSurfaceGone
	CauseLoadFailed
	CausePlaybackError
	CauseCancelled
)

func (c Cause) String() string {
	switch c {
	case CauseCompleted:
		return "completed"
	case CauseHostSurfaceGone:
		return "host surface gone"
	case CauseLoadFailed:
		return "load failed"
	case CausePlaybackError:
		return "playback error"
	case CauseCancelled:
		return "cancelled"
	default:
		return "unknown"
	}
}

// Outcome is the terminal result of a session. Err is nil on completion.
type Outcome struct {
	Cause Cause
	Err   error
}

// Event is the single tagged event a session emits. Outcome is only set for
// EventFinished, Err for EventError.
type Event struct {
	Kind    EventKind
	AdID    string
	Err     error
	Outcome Outcome
}

// Handler consumes session events on the UI queue.
type Handler func(s *Session, ev Event)
