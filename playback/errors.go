package playback

import "errors"

var (
	ErrDurationUnknown  = errors.New("content duration is not known yet")
	ErrControlsDisabled = errors.New("playback controls are disabled")
	ErrAdBreak          = errors.New("an ad break holds the content")
	ErrClosed           = errors.New("player screen is closed")
)
