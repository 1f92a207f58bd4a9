// Package playback coordinates content playback with ad breaks for one
// player screen.
package playback

import "github.com/samber/mo"

// Port is the content media actuator. It holds no policy: the Coordinator
// decides when it plays.
type Port interface {
	Play() error
	Pause() error
	Seek(seconds float64) error
	CurrentTime() (float64, error)
	// Duration is absent while the media is still loading.
	Duration() mo.Option[float64]
	Rate() float64
	SetRate(rate float64) error
	// Reached fires when the content plays to its end.
	Reached() <-chan struct{}
}
