package vmap

import (
	"context"
	"strings"
	"time"

	"github.com/samber/lo"
)

// DefaultMIMETypes is the media preference used when rendering settings name
// none.
var DefaultMIMETypes = []string{"video/mp4", "video/webm", "application/x-mpegURL"}

// Media is one rendition of a linear creative.
type Media struct {
	URL      string
	MIMEType string
	Width    int
	Height   int
	Bitrate  int
}

// LinearAd is a resolved linear creative with its wrappers merged in.
type LinearAd struct {
	AdID        string
	Title       string
	Duration    time.Duration
	Media       []Media
	Impressions []string
	Tracking    map[string][]string
}

// Pick selects the rendition to play. Earlier MIME types in preferred win;
// within a type the highest bitrate wins. Without any match the first
// rendition is used.
func (a LinearAd) Pick(preferred []string) (Media, bool) {
	if len(a.Media) == 0 {
		return Media{}, false
	}
	if len(preferred) == 0 {
		preferred = DefaultMIMETypes
	}

	for _, mime := range preferred {
		matching := lo.Filter(a.Media, func(m Media, _ int) bool {
			return strings.EqualFold(m.MIMEType, mime)
		})
		if len(matching) > 0 {
			return lo.MaxBy(matching, func(x, y Media) bool { return x.Bitrate > y.Bitrate }), true
		}
	}

	return a.Media[0], true
}

// Renderer plays one linear ad on the host surface and returns once it has
// finished or ctx is done.
type Renderer interface {
	Render(ctx context.Context, ad LinearAd, media Media) error
}

// linearAds flattens the linear creatives of an inline ad.
func linearAds(ad Ad, title string, impressions []string, creatives []Creative) []LinearAd {
	var out []LinearAd

	for _, c := range creatives {
		if c.Linear == nil {
			continue
		}

		duration, _ := ParseClock(c.Linear.Duration)

		tracking := make(map[string][]string)
		for _, t := range c.Linear.TrackingEvents {
			if u := strings.TrimSpace(t.URL); u != "" {
				tracking[t.Event] = append(tracking[t.Event], u)
			}
		}

		media := lo.FilterMap(c.Linear.MediaFiles, func(m MediaFile, _ int) (Media, bool) {
			u := strings.TrimSpace(m.URL)
			return Media{
				URL:      u,
				MIMEType: strings.TrimSpace(m.Type),
				Width:    m.Width,
				Height:   m.Height,
				Bitrate:  m.Bitrate,
			}, u != ""
		})

		id := ad.ID
		if c.ID != "" {
			id = ad.ID + "/" + c.ID
		}

		out = append(out, LinearAd{
			AdID:        id,
			Title:       strings.TrimSpace(title),
			Duration:    duration,
			Media:       media,
			Impressions: trimAll(impressions),
			Tracking:    tracking,
		})
	}

	return out
}

// merge folds wrapper impressions and tracking into the ads it wraps.
func merge(ads []LinearAd, impressions []string, creatives []Creative) []LinearAd {
	extra := make(map[string][]string)
	for _, c := range creatives {
		if c.Linear == nil {
			continue
		}
		for _, t := range c.Linear.TrackingEvents {
			if u := strings.TrimSpace(t.URL); u != "" {
				extra[t.Event] = append(extra[t.Event], u)
			}
		}
	}

	wrapperImpressions := trimAll(impressions)
	return lo.Map(ads, func(a LinearAd, _ int) LinearAd {
		a.Impressions = append(append([]string{}, a.Impressions...), wrapperImpressions...)
		merged := make(map[string][]string, len(a.Tracking)+len(extra))
		for k, v := range a.Tracking {
			merged[k] = append(merged[k], v...)
		}
		for k, v := range extra {
			merged[k] = append(merged[k], v...)
		}
		a.Tracking = merged
		return a
	})
}

func trimAll(urls []string) []string {
	return lo.FilterMap(urls, func(u string, _ int) (string, bool) {
		u = strings.TrimSpace(u)
		return u, u != ""
	})
}
