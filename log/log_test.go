package log

import (
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/mangomedia/mango/filesystem"
	"github.com/mangomedia/mango/key"
	. "github.com/smartystreets/goconvey/convey"
	"github.com/spf13/viper"
)

func TestSetup(t *testing.T) {
	Convey("Given an in-memory filesystem", t, func() {
		filesystem.SetMemMapFs()
		viper.Reset()
		t.Setenv("MANGO_CONFIG_PATH", "/config")

		Reset(func() {
			viper.Reset()
			logger = discarding()
		})

		Convey("Nothing is written while logging is off", func() {
			So(Setup(), ShouldBeNil)
			Warnf("ad request failed: %s", "timeout")

			exists, err := filesystem.API().Exists(Path(time.Now()))
			So(err, ShouldBeNil)
			So(exists, ShouldBeFalse)
		})

		Convey("Text entries are appended to today's file", func() {
			viper.Set(key.LogsWrite, true)
			viper.Set(key.LogsLevel, "debug")
			So(Setup(), ShouldBeNil)

			Debugf("cue points: %v", []float64{0, 30, -1})
			With("vmap").Info("manager destroyed")

			data, err := filesystem.API().ReadFile(Path(time.Now()))
			So(err, ShouldBeNil)
			So(string(data), ShouldContainSubstring, "cue points: [0 30 -1]")
			So(string(data), ShouldContainSubstring, "component=vmap")
		})

		Convey("Levels below the configured one are dropped", func() {
			viper.Set(key.LogsWrite, true)
			viper.Set(key.LogsLevel, "warn")
			So(Setup(), ShouldBeNil)

			Infof("ignored")
			Warn("kept")

			data, err := filesystem.API().ReadFile(Path(time.Now()))
			So(err, ShouldBeNil)
			So(string(data), ShouldNotContainSubstring, "ignored")
			So(string(data), ShouldContainSubstring, "kept")
		})

		Convey("JSON entries carry the component field", func() {
			viper.Set(key.LogsWrite, true)
			viper.Set(key.LogsJson, true)
			So(Setup(), ShouldBeNil)

			With("coordinator").Warn("ad timeout")

			data, err := filesystem.API().ReadFile(Path(time.Now()))
			So(err, ShouldBeNil)

			var entry map[string]any
			line := strings.TrimSpace(string(data))
			So(json.Unmarshal([]byte(line), &entry), ShouldBeNil)
			So(entry["component"], ShouldEqual, "coordinator")
			So(entry["msg"], ShouldEqual, "ad timeout")
			So(entry["level"], ShouldEqual, "warning")
		})
	})
}
