package vmap

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/samber/mo"
)

// OffsetKind tells how an AdBreak timeOffset positions the break.
type OffsetKind int

const (
	OffsetStart OffsetKind = iota
	OffsetEnd
	OffsetTime
	OffsetPercent
	OffsetPosition
)

// Offset is a parsed VMAP timeOffset.
type Offset struct {
	Kind     OffsetKind
	At       time.Duration
	Percent  float64
	Position int
}

// ParseOffset accepts "start", "end", "HH:MM:SS[.mmm]", "n%" and "#n".
func ParseOffset(s string) (Offset, error) {
	s = strings.TrimSpace(s)

	switch {
	case s == "start":
		return Offset{Kind: OffsetStart}, nil
	case s == "end":
		return Offset{Kind: OffsetEnd}, nil
	case strings.HasSuffix(s, "%"):
		p, err := strconv.ParseFloat(strings.TrimSuffix(s, "%"), 64)
		if err != nil || p < 0 || p > 100 {
			return Offset{}, fmt.Errorf("%w: %q", ErrBadOffset, s)
		}
		return Offset{Kind: OffsetPercent, Percent: p}, nil
	case strings.HasPrefix(s, "#"):
		n, err := strconv.Atoi(s[1:])
		if err != nil || n < 1 {
			return Offset{}, fmt.Errorf("%w: %q", ErrBadOffset, s)
		}
		return Offset{Kind: OffsetPosition, Position: n}, nil
	}

	d, err := ParseClock(s)
	if err != nil {
		return Offset{}, fmt.Errorf("%w: %q", ErrBadOffset, s)
	}
	if d == 0 {
		return Offset{Kind: OffsetStart}, nil
	}
	return Offset{Kind: OffsetTime, At: d}, nil
}

// CuePoint reports the offset the way an ad manager lists it: absent for
// pre- and post-rolls, seconds for timed mid-rolls and -1 for offsets that
// cannot be placed without knowing the content duration.
func (o Offset) CuePoint() mo.Option[float64] {
	switch o.Kind {
	case OffsetStart, OffsetEnd:
		return mo.None[float64]()
	case OffsetTime:
		return mo.Some(o.At.Seconds())
	default:
		return mo.Some(-1.0)
	}
}

// ParseClock parses HH:MM:SS with optional milliseconds, the format of both
// VMAP offsets and VAST durations.
func ParseClock(s string) (time.Duration, error) {
	parts := strings.Split(strings.TrimSpace(s), ":")
	if len(parts) != 3 {
		return 0, fmt.Errorf("malformed clock value %q", s)
	}

	h, err := strconv.Atoi(parts[0])
	if err != nil || h < 0 {
		return 0, fmt.Errorf("malformed hours in %q", s)
	}
	m, err := strconv.Atoi(parts[1])
	if err != nil || m < 0 || m > 59 {
		return 0, fmt.Errorf("malformed minutes in %q", s)
	}
	sec, err := strconv.ParseFloat(parts[2], 64)
	if err != nil || sec < 0 || sec >= 60 {
		return 0, fmt.Errorf("malformed seconds in %q", s)
	}

	return time.Duration(h)*time.Hour +
		time.Duration(m)*time.Minute +
		time.Duration(sec*float64(time.Second)).Round(time.Millisecond), nil
}
