package ads

import (
	"fmt"
	"math"
	"time"

	"github.com/samber/lo"
	"github.com/samber/mo"
)

// CueKind classifies a scheduled ad insertion point.
type CueKind int

const (
	CueUnknown CueKind = iota
	CuePrerollOrPostroll
	CueMidroll
)

// CuePoint is a classified cue point. Offset is only meaningful for mid-rolls.
type CuePoint struct {
	Index  int
	Kind   CueKind
	Offset time.Duration
}

func (c CuePoint) String() string {
	switch c.Kind {
	case CuePrerollOrPostroll:
		return fmt.Sprintf("Cue Point %d: Pre-roll or Post-roll", c.Index)
	case CueMidroll:
		return fmt.Sprintf("Cue Point %d: Mid-roll at %v seconds", c.Index, c.Offset.Seconds())
	default:
		return fmt.Sprintf("Cue Point %d: Unknown type", c.Index)
	}
}

// ClassifyCuePoints maps the raw cue list reported by an ad manager. An absent
// value is the pre-/post-roll sentinel; a finite non-negative value is a
// mid-roll offset in seconds; anything else is unknown.
func ClassifyCuePoints(raw []mo.Option[float64]) []CuePoint {
	return lo.Map(raw, func(v mo.Option[float64], i int) CuePoint {
		seconds, ok := v.Get()
		switch {
		case !ok:
			return CuePoint{Index: i, Kind: CuePrerollOrPostroll}
		case math.IsNaN(seconds) || math.IsInf(seconds, 0) || seconds < 0:
			return CuePoint{Index: i, Kind: CueUnknown}
		default:
			return CuePoint{
				Index:  i,
				Kind:   CueMidroll,
				Offset: time.Duration(seconds * float64(time.Second)),
			}
		}
	})
}
