package cache

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/mangomedia/mango/filesystem"
	. "github.com/smartystreets/goconvey/convey"
)

func TestPrune(t *testing.T) {
	Convey("Given a directory with old and fresh files", t, func() {
		filesystem.SetMemMapFs()
		fs := filesystem.API()
		now := time.Now()
		dir := "/tmp/mango"

		old := filepath.Join(dir, "mpv-1.sock")
		fresh := filepath.Join(dir, "mpv-2.sock")
		nested := filepath.Join(dir, "nested", "old.log")
		for _, path := range []string{old, fresh, nested} {
			So(fs.WriteFile(path, []byte("x"), 0o644), ShouldBeNil)
		}
		So(fs.Chtimes(old, now.Add(-48*time.Hour), now.Add(-48*time.Hour)), ShouldBeNil)
		So(fs.Chtimes(nested, now.Add(-72*time.Hour), now.Add(-72*time.Hour)), ShouldBeNil)

		Convey("Only expired files are removed", func() {
			removed, err := prune(dir, TempTTL, now)
			So(err, ShouldBeNil)
			So(removed, ShouldEqual, 2)

			exists, _ := fs.Exists(fresh)
			So(exists, ShouldBeTrue)
			exists, _ = fs.Exists(old)
			So(exists, ShouldBeFalse)
			exists, _ = fs.Exists(nested)
			So(exists, ShouldBeFalse)
		})

		Convey("A missing directory is not an error", func() {
			removed, err := prune("/nowhere", TempTTL, now)
			So(err, ShouldBeNil)
			So(removed, ShouldEqual, 0)
		})
	})
}
