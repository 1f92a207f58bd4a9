package ads

import (
	"math"
	"testing"
	"time"

	"github.com/samber/mo"
	. "github.com/smartystreets/goconvey/convey"
)

func TestClassifyCuePoints(t *testing.T) {
	Convey("Given raw cue points", t, func() {
		cues := ClassifyCuePoints([]mo.Option[float64]{
			mo.None[float64](),
			mo.Some(30.0),
			mo.Some(-1.0),
			mo.Some(math.NaN()),
			mo.None[float64](),
		})

		Convey("They are classified by position", func() {
			So(cues, ShouldHaveLength, 5)
			So(cues[0].Kind, ShouldEqual, CuePrerollOrPostroll)
			So(cues[1].Kind, ShouldEqual, CueMidroll)
			So(cues[1].Offset, ShouldEqual, 30*time.Second)
			So(cues[2].Kind, ShouldEqual, CueUnknown)
			So(cues[3].Kind, ShouldEqual, CueUnknown)
			So(cues[4].Index, ShouldEqual, 4)
		})

		Convey("They describe themselves for the log", func() {
			So(cues[0].String(), ShouldEqual, "Cue Point 0: Pre-roll or Post-roll")
			So(cues[1].String(), ShouldEqual, "Cue Point 1: Mid-roll at 30 seconds")
			So(cues[2].String(), ShouldEqual, "Cue Point 2: Unknown type")
		})

		Convey("An empty schedule yields nothing", func() {
			So(ClassifyCuePoints(nil), ShouldBeEmpty)
		})
	})
}
