package tui

import (
	"math"
	"testing"

	"github.com/mangomedia/mango/playback"
	. "github.com/smartystreets/goconvey/convey"
)

func TestPhaseText(t *testing.T) {
	Convey("The player status line", t, func() {
		So(phaseText(playback.PhaseInit, playback.ContentStopped), ShouldEqual, "Starting")
		So(phaseText(playback.PhaseRequestingAd, playback.ContentStopped), ShouldEqual, "Loading ads")
		So(phaseText(playback.PhasePausedForAd, playback.ContentPausedForAd), ShouldEqual, "Ad playing")
		So(phaseText(playback.PhaseContentPlaying, playback.ContentPlaying), ShouldEqual, "Playing")
		So(phaseText(playback.PhaseContentPlaying, playback.ContentPaused), ShouldEqual, "Paused")
		So(phaseText(playback.PhaseContentPlaying, playback.ContentStopped), ShouldEqual, "Finished")
		So(phaseText(playback.PhaseClosed, playback.ContentStopped), ShouldEqual, "Closed")
	})
}

func TestFormatClock(t *testing.T) {
	Convey("Clock formatting", t, func() {
		So(formatClock(0), ShouldEqual, "0:00")
		So(formatClock(83.9), ShouldEqual, "1:23")
		So(formatClock(3725), ShouldEqual, "1:02:05")
		So(formatClock(-4), ShouldEqual, "0:00")
		So(formatClock(math.NaN()), ShouldEqual, "0:00")
	})
}
