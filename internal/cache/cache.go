// Package cache prunes stale files that mango leaves behind: mpv IPC sockets
// in the temp directory and old log files.
package cache

import (
	"os"
	"time"

	"github.com/mangomedia/mango/filesystem"
	"github.com/mangomedia/mango/log"
	"github.com/mangomedia/mango/where"
	"github.com/spf13/afero"
)

const (
	TempTTL = 24 * time.Hour
	LogsTTL = 14 * 24 * time.Hour
)

// CollectGarbage removes expired temp and log files. Errors are logged, never returned.
func CollectGarbage() {
	now := time.Now()

	for dir, ttl := range map[string]time.Duration{
		where.Temp(): TempTTL,
		where.Logs(): LogsTTL,
	} {
		removed, err := prune(dir, ttl, now)
		if err != nil {
			log.With("cache").Warnf("prune %s: %s", dir, err)
			continue
		}
		if removed > 0 {
			log.With("cache").Debugf("removed %d stale files from %s", removed, dir)
		}
	}
}

// prune deletes regular files under dir last modified more than ttl before now.
func prune(dir string, ttl time.Duration, now time.Time) (removed int, err error) {
	var stale []string
	err = afero.Walk(filesystem.API(), dir, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return nil
		}
		if !info.IsDir() && now.Sub(info.ModTime()) > ttl {
			stale = append(stale, path)
		}
		return nil
	})
	if err != nil {
		return 0, err
	}

	for _, path := range stale {
		if err := filesystem.API().Remove(path); err == nil {
			removed++
		}
	}
	return removed, nil
}
