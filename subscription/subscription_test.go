package subscription

import (
	"testing"

	"github.com/mangomedia/mango/constant"
	"github.com/smartystreets/goconvey/convey"
	"github.com/zalando/go-keyring"
)

func TestSubscription(t *testing.T) {
	keyring.MockInit()

	convey.Convey("Given an empty keyring", t, func() {
		convey.So(Reset(), convey.ShouldBeNil)

		convey.Convey("The user is not subscribed", func() {
			subscribed, err := Subscribed()
			convey.So(err, convey.ShouldBeNil)
			convey.So(subscribed, convey.ShouldBeFalse)
		})

		convey.Convey("Setting the flag persists it", func() {
			convey.So(Set(true), convey.ShouldBeNil)
			subscribed, err := Subscribed()
			convey.So(err, convey.ShouldBeNil)
			convey.So(subscribed, convey.ShouldBeTrue)
		})

		convey.Convey("Toggling flips it back and forth", func() {
			v, err := Toggle()
			convey.So(err, convey.ShouldBeNil)
			convey.So(v, convey.ShouldBeTrue)

			v, err = Toggle()
			convey.So(err, convey.ShouldBeNil)
			convey.So(v, convey.ShouldBeFalse)
		})

		convey.Convey("A corrupt entry reads as not subscribed", func() {
			convey.So(keyring.Set(constant.Mango, user, "maybe"), convey.ShouldBeNil)
			subscribed, err := Subscribed()
			convey.So(err, convey.ShouldBeNil)
			convey.So(subscribed, convey.ShouldBeFalse)
		})

		convey.Convey("Resetting twice is fine", func() {
			convey.So(Reset(), convey.ShouldBeNil)
			convey.So(Reset(), convey.ShouldBeNil)
		})
	})
}
