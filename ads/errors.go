package ads

import "errors"

// Terminal causes of an ad session. None of them is ever shown to the user:
// every ad-side failure degrades to playing the content.
var (
	ErrHostSurfaceGone = errors.New("host surface is no longer available")
	ErrAdLoadFailed    = errors.New("ad metadata could not be loaded")
	ErrAdPlayback      = errors.New("ad playback failed")
	ErrCancelled       = errors.New("ad session cancelled")
	ErrInvalidTag      = errors.New("invalid ad tag url")
)
