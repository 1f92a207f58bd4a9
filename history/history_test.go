package history

import (
	"testing"
	"time"

	"github.com/mangomedia/mango/filesystem"
	. "github.com/smartystreets/goconvey/convey"
)

func init() {
	filesystem.SetMemMapFs()
}

func TestHistory(t *testing.T) {
	Convey("Given a watched video", t, func() {
		So(Clear(), ShouldBeNil)

		entry := &Entry{
			ContentURL: "https://example.com/video.m3u8",
			Title:      "Vertical 1",
			Position:   754,
			Duration:   1508,
			Percent:    50,
			UpdatedAt:  time.Unix(1700000000, 0),
		}

		Convey("When saving it", func() {
			So(Save(entry), ShouldBeNil)

			Convey("It can be found by URL", func() {
				found, err := Find(entry.ContentURL)
				So(err, ShouldBeNil)
				So(found.IsPresent(), ShouldBeTrue)
				So(found.MustGet().Position, ShouldEqual, 754.0)
				So(found.MustGet().String(), ShouldEqual, "Vertical 1 : 50% (00:12:34)")
			})

			Convey("A shorter rewatch keeps the larger percentage", func() {
				So(Save(&Entry{
					ContentURL: entry.ContentURL,
					Title:      entry.Title,
					Position:   30,
					Percent:    2,
					UpdatedAt:  time.Unix(1700000100, 0),
				}), ShouldBeNil)

				found, _ := Find(entry.ContentURL)
				So(found.MustGet().Percent, ShouldEqual, 50.0)
				So(found.MustGet().Position, ShouldEqual, 30.0)
			})

			Convey("Recent lists the newest first", func() {
				So(Save(&Entry{ContentURL: "https://example.com/other.m3u8", UpdatedAt: time.Unix(1700000500, 0)}), ShouldBeNil)

				recent, err := Recent()
				So(err, ShouldBeNil)
				So(recent, ShouldHaveLength, 2)
				So(recent[0].ContentURL, ShouldEqual, "https://example.com/other.m3u8")
			})

			Convey("Removing it forgets it", func() {
				So(Remove(entry.ContentURL), ShouldBeNil)
				found, err := Find(entry.ContentURL)
				So(err, ShouldBeNil)
				So(found.IsAbsent(), ShouldBeTrue)
			})
		})
	})
}
