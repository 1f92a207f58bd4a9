package cmd

import (
	"testing"

	"github.com/mangomedia/mango/config"
	"github.com/mangomedia/mango/key"
	"github.com/mangomedia/mango/where"
	. "github.com/smartystreets/goconvey/convey"
	"github.com/spf13/cobra"
)

func TestConfigValues(t *testing.T) {
	Convey("Parsing values for config keys", t, func() {
		Convey("Follows the type of the default", func() {
			v, err := parseValue(config.Default[key.AdsTimeoutSeconds], []string{"15"})
			So(err, ShouldBeNil)
			So(v, ShouldEqual, 15)

			v, err = parseValue(config.Default[key.AdsEnable], []string{"false"})
			So(err, ShouldBeNil)
			So(v, ShouldEqual, false)

			v, err = parseValue(config.Default[key.AdsTag], []string{"https://ads.example.com/vmap"})
			So(err, ShouldBeNil)
			So(v, ShouldEqual, "https://ads.example.com/vmap")
		})

		Convey("Rejects malformed values", func() {
			_, err := parseValue(config.Default[key.AdsTimeoutSeconds], []string{"ten"})
			So(err, ShouldNotBeNil)

			_, err = parseValue(config.Default[key.AdsEnable], nil)
			So(err, ShouldNotBeNil)
		})

		Convey("Suggests the nearest key", func() {
			So(closestKey("ads.tga"), ShouldEqual, key.AdsTag)
			So(errUnknownKey("ads.tga").Error(), ShouldContainSubstring, key.AdsTag)
		})

		Convey("Resolves keys from arguments or flags", func() {
			cmd := &cobra.Command{}
			cmd.Flags().String("key", "", "")

			field, err := lookupField(cmd, []string{key.PlayerSeekStep})
			So(err, ShouldBeNil)
			So(field.Key, ShouldEqual, key.PlayerSeekStep)

			_, err = lookupField(cmd, nil)
			So(err, ShouldNotBeNil)

			So(cmd.Flags().Set("key", key.HistorySave), ShouldBeNil)
			field, err = lookupField(cmd, nil)
			So(err, ShouldBeNil)
			So(field.Key, ShouldEqual, key.HistorySave)
		})
	})
}

func TestEnvNames(t *testing.T) {
	Convey("Every config key has an environment variable", t, func() {
		names := envNames()
		So(names, ShouldContain, "MANGO_ADS_TAG")
		So(names, ShouldContain, "MANGO_PLAYER_DEFAULT")
		So(names, ShouldContain, where.EnvConfigPath)
		So(len(names), ShouldEqual, len(config.Default)+1)
	})
}

func TestCommands(t *testing.T) {
	Convey("The command tree", t, func() {
		names := make(map[string]bool)
		for _, c := range rootCmd.Commands() {
			names[c.Name()] = true
		}

		for _, name := range []string{"play", "subscription", "ads", "catalog", "history", "config", "where", "version", "env", "clear"} {
			So(names[name], ShouldBeTrue)
		}
	})
}
