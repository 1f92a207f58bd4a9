// Package vmap is an ad SDK that fetches VMAP playlists (or bare VAST
// responses), resolves their breaks into linear ads and schedules them
// against the content playhead.
package vmap

import (
	"cmp"
	"context"
	"fmt"
	"io"
	"net/http"
	"slices"
	"strings"
	"time"

	"github.com/mangomedia/mango/ads"
	"github.com/mangomedia/mango/constant"
	"github.com/mangomedia/mango/log"
	"golang.org/x/sync/errgroup"
)

const (
	maxResponseSize     = 4 << 20
	defaultWrapperDepth = 5
	defaultPollInterval = 250 * time.Millisecond
	parallelFetches     = 4
)

// Break is a resolved ad break.
type Break struct {
	ID     string
	Offset Offset
	Ads    []LinearAd
	Err    error
}

// Loader implements ads.Loader over HTTP.
type Loader struct {
	client       *http.Client
	renderer     Renderer
	wrapperDepth int
	pollInterval time.Duration
	trackFailed  func(url string)
}

// Option configures a Loader.
type Option func(*Loader)

// WithMaxWrapperDepth limits how many VAST wrappers are followed.
func WithMaxWrapperDepth(n int) Option {
	return func(l *Loader) {
		if n > 0 {
			l.wrapperDepth = n
		}
	}
}

// WithPollInterval sets how often managers sample the content playhead.
func WithPollInterval(d time.Duration) Option {
	return func(l *Loader) {
		if d > 0 {
			l.pollInterval = d
		}
	}
}

// WithTrackingFailures hands tracking URLs that could not be reached to fn,
// for example to retry them later.
func WithTrackingFailures(fn func(url string)) Option {
	return func(l *Loader) {
		l.trackFailed = fn
	}
}

// NewLoader returns a loader that fetches with client and plays ads with
// renderer.
func NewLoader(client *http.Client, renderer Renderer, opts ...Option) *Loader {
	l := &Loader{
		client:       client,
		renderer:     renderer,
		wrapperDepth: defaultWrapperDepth,
		pollInterval: defaultPollInterval,
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// RequestAds fetches the ad tag and resolves every break. A break that fails
// to resolve is kept with no ads so the schedule still lists it; the request
// only fails when the tag itself cannot be loaded or holds nothing playable.
func (l *Loader) RequestAds(ctx context.Context, req ads.Request) (ads.Manager, error) {
	breaks, err := l.Resolve(ctx, req.AdTagURL)
	if err != nil {
		return nil, err
	}

	return newManager(managerOptions{
		breaks:   breaks,
		renderer: l.renderer,
		client:   l.client,
		playhead: req.Playhead,
		surface:  req.Display.Surface,
		poll:     l.pollInterval,
		failed:   l.trackFailed,
	}), nil
}

// Resolve fetches the ad tag and returns its breaks in playback order.
func (l *Loader) Resolve(ctx context.Context, adTagURL string) ([]*Break, error) {
	body, err := l.fetch(ctx, adTagURL)
	if err != nil {
		return nil, err
	}

	doc, err := Parse(body)
	if err != nil {
		return nil, err
	}

	var breaks []*Break
	switch {
	case doc.VMAP != nil:
		breaks, err = l.resolveBreaks(ctx, doc.VMAP.AdBreaks)
		if err != nil {
			return nil, err
		}
	case doc.VAST != nil:
		// a bare VAST response is a single pre-roll
		linear, err := l.resolveVAST(ctx, doc.VAST, 0)
		if err != nil {
			return nil, err
		}
		breaks = []*Break{{ID: "preroll", Offset: Offset{Kind: OffsetStart}, Ads: linear}}
	}

	if !slices.ContainsFunc(breaks, func(b *Break) bool { return len(b.Ads) > 0 }) {
		return nil, ErrNoAds
	}

	sortBreaks(breaks)
	return breaks, nil
}

func (l *Loader) resolveBreaks(ctx context.Context, adBreaks []AdBreak) ([]*Break, error) {
	var breaks []*Break

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(parallelFetches)

	for _, ab := range adBreaks {
		offset, err := ParseOffset(ab.TimeOffset)
		if err != nil {
			log.With("vmap").Warnf("break %q: %s", ab.BreakID, err)
			continue
		}

		b := &Break{ID: ab.BreakID, Offset: offset}
		breaks = append(breaks, b)

		if ab.BreakType != "" && !strings.Contains(ab.BreakType, "linear") {
			log.With("vmap").Infof("skipping %s break %q", ab.BreakType, ab.BreakID)
			continue
		}
		if ab.AdSource == nil {
			continue
		}

		g.Go(func() error {
			linear, err := l.resolveSource(gctx, ab.AdSource)
			if err != nil {
				if ctx.Err() != nil {
					return ctx.Err()
				}
				log.With("vmap").Warnf("break %q: %s", ab.BreakID, err)
				b.Err = err
				return nil
			}
			b.Ads = linear
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	return breaks, nil
}

func (l *Loader) resolveSource(ctx context.Context, src *AdSource) ([]LinearAd, error) {
	switch {
	case src.VASTAdData != nil && src.VASTAdData.VAST != nil:
		return l.resolveVAST(ctx, src.VASTAdData.VAST, 0)
	case src.AdTagURI != nil && strings.TrimSpace(src.AdTagURI.URI) != "":
		body, err := l.fetch(ctx, strings.TrimSpace(src.AdTagURI.URI))
		if err != nil {
			return nil, err
		}
		vast, err := ParseVAST(body)
		if err != nil {
			return nil, err
		}
		return l.resolveVAST(ctx, vast, 0)
	default:
		return nil, ErrNoAds
	}
}

func (l *Loader) resolveVAST(ctx context.Context, vast *VAST, depth int) ([]LinearAd, error) {
	pod := slices.Clone(vast.Ads)
	slices.SortStableFunc(pod, func(a, b Ad) int {
		return sequenceKey(a.Sequence) - sequenceKey(b.Sequence)
	})

	var out []LinearAd
	for _, ad := range pod {
		switch {
		case ad.InLine != nil:
			out = append(out, linearAds(ad, ad.InLine.AdTitle, ad.InLine.Impressions, ad.InLine.Creatives)...)
		case ad.Wrapper != nil:
			if depth+1 > l.wrapperDepth {
				return nil, fmt.Errorf("%w: %d", ErrWrapperLimit, depth+1)
			}

			body, err := l.fetch(ctx, strings.TrimSpace(ad.Wrapper.VASTAdTagURI))
			if err != nil {
				return nil, err
			}
			inner, err := ParseVAST(body)
			if err != nil {
				return nil, err
			}
			wrapped, err := l.resolveVAST(ctx, inner, depth+1)
			if err != nil {
				return nil, err
			}
			out = append(out, merge(wrapped, ad.Wrapper.Impressions, ad.Wrapper.Creatives)...)
		}
	}

	return out, nil
}

func (l *Loader) fetch(ctx context.Context, url string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("User-Agent", constant.UserAgent)
	req.Header.Set("Accept", "application/xml, text/xml")

	resp, err := l.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("fetch %s: unexpected status %s", url, resp.Status)
	}

	return io.ReadAll(io.LimitReader(resp.Body, maxResponseSize))
}

// unsequenced ads play after the sequenced pod
func sequenceKey(seq int) int {
	if seq <= 0 {
		return 1 << 30
	}
	return seq
}

// sortBreaks orders pre-rolls first, timed breaks ascending and post-rolls
// last. Percent and positional breaks keep their document order after timed
// ones.
func sortBreaks(breaks []*Break) {
	rank := func(b *Break) int {
		switch b.Offset.Kind {
		case OffsetStart:
			return 0
		case OffsetTime:
			return 1
		case OffsetEnd:
			return 3
		default:
			return 2
		}
	}

	slices.SortStableFunc(breaks, func(a, b *Break) int {
		if ra, rb := rank(a), rank(b); ra != rb {
			return ra - rb
		}
		if a.Offset.Kind == OffsetTime {
			return cmp.Compare(a.Offset.At, b.Offset.At)
		}
		return 0
	})
}
