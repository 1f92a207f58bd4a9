// Package app wires a content player, the ad SDK and the playback
// coordinator together from the user's configuration.
package app

import (
	"net/http"
	"sync/atomic"
	"time"

	"github.com/mangomedia/mango/ads"
	"github.com/mangomedia/mango/ads/vmap"
	"github.com/mangomedia/mango/history"
	"github.com/mangomedia/mango/internal/sync"
	"github.com/mangomedia/mango/key"
	"github.com/mangomedia/mango/log"
	"github.com/mangomedia/mango/network"
	"github.com/mangomedia/mango/playback"
	"github.com/mangomedia/mango/player"
	"github.com/mangomedia/mango/queue"
	"github.com/mangomedia/mango/util"
	"github.com/spf13/viper"
)

// Visit is one trip to the player screen.
type Visit struct {
	ContentURL string
	Title      string
	Subscribed bool

	Player player.Player
	Queue  queue.Dispatcher

	// OnChange runs on the queue after every visible state change.
	OnChange func()

	// Loader overrides the configured ad loader.
	Loader ads.Loader
}

// Surface is the ad surface of a visit: the content player's window. It dies
// when the player process exits or the screen closes.
type Surface struct {
	player player.Player
	closed atomic.Bool
}

func NewSurface(p player.Player) *Surface {
	return &Surface{player: p}
}

func (s *Surface) Alive() bool {
	if s.closed.Load() {
		return false
	}

	select {
	case <-s.player.Wait():
		return false
	default:
		return true
	}
}

// Close marks the surface gone.
func (s *Surface) Close() {
	s.closed.Store(true)
}

// AdsEnabled reports whether unsubscribed visits request ads.
func AdsEnabled() bool {
	return viper.GetBool(key.AdsEnable)
}

// AdTimeout is the ad metadata timeout.
func AdTimeout() time.Duration {
	return time.Duration(viper.GetInt(key.AdsTimeoutSeconds)) * time.Second
}

// AdClient is the HTTP client for ad servers.
func AdClient() *http.Client {
	return network.ForAds(AdTimeout(), viper.GetBool(key.AdsBrowserTLS))
}

// NewAdLoader returns the VMAP loader, rendering creatives with a separate
// mpv process.
func NewAdLoader() *vmap.Loader {
	opts := []vmap.Option{
		vmap.WithMaxWrapperDepth(viper.GetInt(key.AdsMaxWrapperDepth)),
		// same cadence as the seek bar
		vmap.WithPollInterval(time.Duration(viper.GetInt(key.PlayerObserverIntervalMs)) * time.Millisecond),
	}
	if viper.GetBool(key.AdsRetryBeacons) {
		opts = append(opts, vmap.WithTrackingFailures(sync.QueueFailure))
	}

	return vmap.NewLoader(AdClient(), player.NewAdRenderer(), opts...)
}

// NewCoordinator builds the coordinator for v. Disabling ads in the config
// treats the visit as subscribed.
func NewCoordinator(v Visit, surface ads.Surface) *playback.Coordinator {
	subscribed := v.Subscribed || !AdsEnabled()

	loader := v.Loader
	if loader == nil && !subscribed {
		loader = NewAdLoader()
	}

	var marker *player.CueMarker
	if viper.GetBool(key.AdsMarkCuePoints) {
		marker = player.NewCueMarker(v.Player)
	}

	return playback.NewCoordinator(playback.Options{
		ContentURL:         v.ContentURL,
		Subscribed:         subscribed,
		Port:               v.Player,
		Loader:             loader,
		Surface:            surface,
		Queue:              v.Queue,
		AdTag:              viper.GetString(key.AdsTag),
		AdTimeout:          AdTimeout(),
		ObserveInterval:    time.Duration(viper.GetInt(key.PlayerObserverIntervalMs)) * time.Millisecond,
		WithCustomControls: viper.GetBool(key.PlayerCustomControls),
		OnChange:           v.OnChange,
		OnCuePoints: func(cues []ads.CuePoint) {
			for _, c := range cues {
				log.With("ads").Debugf("cue point %s", c)
			}
			if marker == nil {
				return
			}
			if err := marker.Mark(cues); err != nil {
				log.Warn(err)
			}
		},
	})
}

// SaveHistory records how far the visit got. Nothing is saved before the
// duration is known.
func SaveHistory(v Visit, c *playback.Coordinator) error {
	if !viper.GetBool(key.HistorySave) {
		return nil
	}

	duration, ok := c.LastDuration().Get()
	if !ok || duration <= 0 {
		return nil
	}

	entry := &history.Entry{
		ContentURL: v.ContentURL,
		Title:      v.Title,
		Position:   c.Position(),
		Duration:   duration,
		Percent:    util.Clamp(c.Position()/duration*100, 0, 100),
		Subscribed: c.Session().Subscribed,
		UpdatedAt:  time.Now(),
	}
	if outcome, ok := c.Outcome().Get(); ok {
		entry.AdOutcome = outcome.Cause.String()
	}

	return history.Save(entry)
}
