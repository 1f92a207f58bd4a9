package icon

import (
	"testing"

	"github.com/mangomedia/mango/key"
	. "github.com/smartystreets/goconvey/convey"
	"github.com/spf13/viper"
)

func TestGet(t *testing.T) {
	Convey("Every icon renders in every variant", t, func() {
		for _, variant := range AvailableVariants() {
			viper.Set(key.IconsVariant, variant)
			for i := range icons {
				So(Get(i), ShouldNotBeEmpty)
			}
		}
	})

	Convey("An unknown variant falls back to plain", t, func() {
		viper.Set(key.IconsVariant, "sparkles")
		So(Get(Ad), ShouldEqual, "AD")
		So(Get(Subscribed), ShouldEqual, "●")
	})

	Convey("An unregistered icon renders as nothing", t, func() {
		viper.Set(key.IconsVariant, plain)
		So(Get(Icon(-1)), ShouldBeEmpty)
	})
}
