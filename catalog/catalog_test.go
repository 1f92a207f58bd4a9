package catalog

import (
	"encoding/json"
	"testing"

	"github.com/mangomedia/mango/constant"
	. "github.com/smartystreets/goconvey/convey"
)

func TestCatalog(t *testing.T) {
	Convey("Given the home catalog", t, func() {
		c := New(constant.SampleContentURL)

		Convey("It has two carousels of five thumbnails", func() {
			So(c.Sections, ShouldHaveLength, 2)
			So(c.Sections[0].Orientation, ShouldEqual, Vertical)
			So(c.Sections[1].Orientation, ShouldEqual, Horizontal)
			So(c.Thumbnails(), ShouldHaveLength, 10)

			for _, th := range c.Thumbnails() {
				So(th.ContentURL, ShouldEqual, constant.SampleContentURL)
			}
		})

		Convey("Vertical thumbnails are taller than wide", func() {
			v, ok := c.Get("v3")
			So(ok, ShouldBeTrue)
			So(v.Height, ShouldBeGreaterThan, v.Width)

			h, ok := c.Get("h3")
			So(ok, ShouldBeTrue)
			So(h.Width, ShouldBeGreaterThan, h.Height)

			_, ok = c.Get("x9")
			So(ok, ShouldBeFalse)
		})

		Convey("Finding is fuzzy and deduplicated", func() {
			found := c.Find("horiz 2")
			So(found, ShouldNotBeEmpty)
			So(found[0].ID, ShouldEqual, "h2")

			found = c.Find("v1")
			So(found, ShouldNotBeEmpty)
			So(found[0].ID, ShouldEqual, "v1")

			So(c.Find("zzzz"), ShouldBeEmpty)
		})

		Convey("It serializes to JSON", func() {
			data, err := c.JSON()
			So(err, ShouldBeNil)

			var back Catalog
			So(json.Unmarshal(data, &back), ShouldBeNil)
			So(back.Sections[1].Thumbnails[4].ID, ShouldEqual, "h5")
		})

		Convey("Its schema describes the document", func() {
			data, err := Schema()
			So(err, ShouldBeNil)
			So(string(data), ShouldContainSubstring, "content_url")
			So(string(data), ShouldContainSubstring, "thumbnails")
		})
	})
}
