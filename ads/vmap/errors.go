package vmap

import "errors"

var (
	ErrUnsupportedDocument = errors.New("response is neither VMAP nor VAST")
	ErrNoAds               = errors.New("response contains no playable ads")
	ErrWrapperLimit        = errors.New("VAST wrapper chain too deep")
	ErrBadOffset           = errors.New("malformed break offset")
	ErrNotInitialized      = errors.New("ads manager not initialized")
	ErrDestroyed           = errors.New("ads manager destroyed")
)
