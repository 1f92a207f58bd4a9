package playback

import "github.com/mangomedia/mango/icon"

// Phase of the coordinator state machine.
type Phase int

const (
	PhaseInit Phase = iota
	PhaseRequestingAd
	PhaseContentPlaying
	PhasePausedForAd
	PhaseClosed
)

func (p Phase) String() string {
	switch p {
	case PhaseInit:
		return "Init"
	case PhaseRequestingAd:
		return "Loading ads"
	case PhaseContentPlaying:
		return "Playing"
	case PhasePausedForAd:
		return "Paused for ad"
	case PhaseClosed:
		return "Closed"
	default:
		return "Unknown"
	}
}

// ContentState is what the coordinator last told the port to do.
type ContentState int

const (
	ContentStopped ContentState = iota
	ContentPlaying
	ContentPausedForAd
	ContentPaused
)

func (c ContentState) String() string {
	switch c {
	case ContentStopped:
		return "Stopped"
	case ContentPlaying:
		return "Playing"
	case ContentPausedForAd:
		return "PausedForAd"
	case ContentPaused:
		return "Paused"
	default:
		return "Unknown"
	}
}

// Affordance is the icon the play/pause control shows.
type Affordance int

const (
	ShowPlay Affordance = iota
	ShowPause
)

func (a Affordance) Icon() string {
	if a == ShowPause {
		return icon.Get(icon.Pause)
	}
	return icon.Get(icon.Play)
}

// Slider mirrors the seek control. Max stays at its default until the
// duration is known.
type Slider struct {
	Min, Max, Value float64
}

// DefaultSlider is the range of a slider with no duration yet.
var DefaultSlider = Slider{Min: 0, Max: 1}

// Fraction is Value as a share of the range.
func (s Slider) Fraction() float64 {
	if s.Max <= s.Min {
		return 0
	}
	f := (s.Value - s.Min) / (s.Max - s.Min)
	switch {
	case f < 0:
		return 0
	case f > 1:
		return 1
	default:
		return f
	}
}

// Session is one visit to the player screen. Its guard lets a visit request
// ads at most once no matter how many layout passes it sees.
type Session struct {
	ContentURL string
	Subscribed bool

	armed  bool
	visits int
}

// NewSession snapshots the subscription flag for the visit.
func NewSession(contentURL string, subscribed bool) *Session {
	return &Session{ContentURL: contentURL, Subscribed: subscribed}
}

// Arm re-arms the guard on a fresh visibility transition.
func (s *Session) Arm() {
	s.armed = true
}

// Disarm consumes the guard. It reports false if the visit already used it.
func (s *Session) Disarm() bool {
	if !s.armed {
		return false
	}
	s.armed = false
	s.visits++
	return true
}

// Visits counts the visits that consumed the guard.
func (s *Session) Visits() int {
	return s.visits
}
