package ads

import (
	"errors"
	"testing"
	"time"

	. "github.com/smartystreets/goconvey/convey"
)

func TestRequestContext(t *testing.T) {
	Convey("Given an ad tag template", t, func() {
		now := time.Unix(1700000000, 0)

		Convey("The correlator comes from the current time", func() {
			rc := NewRequestContext("https://ads.example.com/vmap?correlator=", now)
			So(rc.Correlator, ShouldEqual, 1700000000)
		})

		Convey("An empty correlator is filled in place", func() {
			rc := NewRequestContext("https://ads.example.com/gampad/ads?iu=/1/x&cust_params=sample_ar%3Dpremidpostpod&correlator=&env=vp", now)
			u, err := rc.URL()
			So(err, ShouldBeNil)
			So(u, ShouldEqual, "https://ads.example.com/gampad/ads?iu=/1/x&cust_params=sample_ar%3Dpremidpostpod&correlator=1700000000&env=vp")
		})

		Convey("A stale correlator is replaced", func() {
			rc := NewRequestContext("https://ads.example.com/vmap?correlator=42", now)
			u, err := rc.URL()
			So(err, ShouldBeNil)
			So(u, ShouldEqual, "https://ads.example.com/vmap?correlator=1700000000")
		})

		Convey("A template without a correlator gets one", func() {
			rc := NewRequestContext("https://ads.example.com/vmap?output=vmap", now)
			u, err := rc.URL()
			So(err, ShouldBeNil)
			So(u, ShouldEqual, "https://ads.example.com/vmap?output=vmap&correlator=1700000000")

			rc = NewRequestContext("http://ads.example.com/vmap", now)
			u, err = rc.URL()
			So(err, ShouldBeNil)
			So(u, ShouldEqual, "http://ads.example.com/vmap?correlator=1700000000")
		})

		Convey("Two requests a second apart differ", func() {
			a, _ := NewRequestContext("https://ads.example.com/vmap?correlator=", now).URL()
			b, _ := NewRequestContext("https://ads.example.com/vmap?correlator=", now.Add(time.Second)).URL()
			So(a, ShouldNotEqual, b)
		})

		Convey("Malformed templates are rejected", func() {
			for _, tmpl := range []string{"", "ftp://ads.example.com/vmap", "https:///vmap", "://nope"} {
				_, err := NewRequestContext(tmpl, now).URL()
				So(errors.Is(err, ErrInvalidTag), ShouldBeTrue)
			}
		})
	})
}
