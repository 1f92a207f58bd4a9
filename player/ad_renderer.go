package player

import (
	"context"
	"fmt"
	"os/exec"
	"time"

	"github.com/mangomedia/mango/ads/vmap"
	"github.com/mangomedia/mango/log"
)

// AdRenderer plays ad creatives in their own mpv window, one process per
// creative, on top of the paused content.
type AdRenderer struct {
	binary string
	grace  time.Duration
}

// NewAdRenderer returns a renderer using the mpv binary.
func NewAdRenderer() *AdRenderer {
	return &AdRenderer{binary: "mpv", grace: 2 * time.Second}
}

// Render blocks until the creative has played or ctx is done. Cancellation
// terminates the window.
func (r *AdRenderer) Render(ctx context.Context, ad vmap.LinearAd, media vmap.Media) error {
	target, err := sanitizeMediaTarget(media.URL)
	if err != nil {
		return fmt.Errorf("ad %s: %w", ad.AdID, err)
	}

	title := "Ad"
	if ad.Title != "" {
		title = "Ad: " + sanitizeTitle(ad.Title)
	}

	cmd := exec.Command(r.binary, adArgs(title, target)...)
	cmd.SysProcAttr = sysProcAttr()

	if err := cmd.Start(); err != nil {
		return fmt.Errorf("start ad player: %w", err)
	}
	log.With("player").Infof("rendering ad %s (%s, %v)", ad.AdID, media.MIMEType, ad.Duration)

	exited := make(chan error, 1)
	go func() { exited <- cmd.Wait() }()

	select {
	case err := <-exited:
		if err != nil {
			return fmt.Errorf("ad %s: %w", ad.AdID, err)
		}
		return nil
	case <-ctx.Done():
		_ = interrupt(cmd)
		select {
		case <-exited:
		case <-time.After(r.grace):
			_ = killProcess(cmd)
			<-exited
		}
		return ctx.Err()
	}
}

func adArgs(title, target string) []string {
	return []string{
		"--no-terminal",
		"--really-quiet",
		"--force-window=yes",
		"--keep-open=no",
		"--ontop",
		"--no-osc",
		"--force-media-title=" + title,
		"--title=" + title,
		"--",
		target,
	}
}
