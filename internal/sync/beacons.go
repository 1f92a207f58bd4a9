// Package sync retries ad tracking beacons that could not be delivered, for
// example while the machine was offline.
package sync

import (
	"bufio"
	"context"
	"encoding/json"
	"errors"
	"io/fs"
	"net/http"
	"os"
	"path/filepath"
	gosync "sync"
	"time"

	"github.com/mangomedia/mango/constant"
	"github.com/mangomedia/mango/filesystem"
	"github.com/mangomedia/mango/log"
	"github.com/mangomedia/mango/where"
	"golang.org/x/time/rate"
)

// MaxAge is how long an undelivered beacon is worth retrying.
const MaxAge = 24 * time.Hour

// Beacon is one queued tracking URL.
type Beacon struct {
	URL      string    `json:"url"`
	QueuedAt time.Time `json:"queued_at"`
}

var (
	mu gosync.Mutex

	// replayRate paces the replay so a backlog does not burst the ad server.
	replayRate = rate.Every(200 * time.Millisecond)
)

func queuePath() string {
	return filepath.Join(where.Cache(), "failed_beacons.jsonl")
}

// QueueFailure queues url for a later retry. It matches the tracking failure
// hook of the VMAP loader.
func QueueFailure(url string) {
	if err := appendBeacons(Beacon{URL: url, QueuedAt: time.Now()}); err != nil {
		log.With("sync").Warnf("queue beacon: %s", err)
	}
}

func appendBeacons(beacons ...Beacon) error {
	if len(beacons) == 0 {
		return nil
	}

	mu.Lock()
	defer mu.Unlock()

	f, err := filesystem.API().OpenFile(queuePath(), os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return err
	}
	defer f.Close()

	encoder := json.NewEncoder(f)
	for _, b := range beacons {
		if err := encoder.Encode(b); err != nil {
			return err
		}
	}
	return nil
}

// Pending lists the queued beacons, oldest first.
func Pending() ([]Beacon, error) {
	mu.Lock()
	defer mu.Unlock()
	return readBeacons()
}

func readBeacons() ([]Beacon, error) {
	f, err := filesystem.API().Open(queuePath())
	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var beacons []Beacon
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		var b Beacon
		if err := json.Unmarshal(scanner.Bytes(), &b); err == nil && b.URL != "" {
			beacons = append(beacons, b)
		}
	}
	return beacons, scanner.Err()
}

// take empties the queue and returns what it held.
func take() ([]Beacon, error) {
	mu.Lock()
	defer mu.Unlock()

	beacons, err := readBeacons()
	if err != nil || len(beacons) == 0 {
		return beacons, err
	}
	return beacons, filesystem.API().Remove(queuePath())
}

// ReconcileFailures replays the queue once. Beacons that fail again are
// queued back; expired ones are dropped.
func ReconcileFailures(ctx context.Context, client *http.Client) (delivered int, err error) {
	beacons, err := take()
	if err != nil || len(beacons) == 0 {
		return 0, err
	}

	var retry []Beacon
	defer func() {
		if requeueErr := appendBeacons(retry...); requeueErr != nil && err == nil {
			err = requeueErr
		}
	}()

	limiter := rate.NewLimiter(replayRate, 1)
	for _, b := range beacons {
		if time.Since(b.QueuedAt) > MaxAge {
			log.With("sync").Debugf("dropping expired beacon %s", b.URL)
			continue
		}

		if ctx.Err() != nil {
			retry = append(retry, b)
			continue
		}

		if limiter.Wait(ctx) != nil {
			retry = append(retry, b)
			continue
		}

		if pingErr := ping(ctx, client, b.URL); pingErr != nil {
			log.With("sync").Debugf("beacon %s: %s", b.URL, pingErr)
			retry = append(retry, b)
			continue
		}
		delivered++
	}

	log.With("sync").Infof("delivered %d of %d queued beacons", delivered, len(beacons))
	return delivered, ctx.Err()
}

func ping(ctx context.Context, client *http.Client, url string) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return err
	}
	req.Header.Set("User-Agent", constant.UserAgent)

	resp, err := client.Do(req)
	if err != nil {
		return err
	}
	_ = resp.Body.Close()

	if resp.StatusCode >= 500 {
		return errors.New(resp.Status)
	}
	return nil
}
