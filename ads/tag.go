package ads

import (
	"fmt"
	"net/url"
	"strconv"
	"strings"
	"time"
)

const correlatorParam = "correlator"

// RequestContext is an ad tag template bound to the correlator of a single
// request. A fresh context is built for every ad session so the ad server
// cannot answer from cache.
type RequestContext struct {
	Template   string
	Correlator int64
}

// NewRequestContext derives the correlator from now (Unix seconds).
func NewRequestContext(template string, now time.Time) RequestContext {
	return RequestContext{
		Template:   template,
		Correlator: now.Unix(),
	}
}

// URL returns the ad tag with the correlator substituted. The existing
// correlator parameter is replaced in place so the remaining query keeps the
// template's exact encoding; a template without one gets it appended.
func (c RequestContext) URL() (string, error) {
	u, err := url.Parse(strings.TrimSpace(c.Template))
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrInvalidTag, err)
	}

	switch strings.ToLower(u.Scheme) {
	case "http", "https":
	default:
		return "", fmt.Errorf("%w: unsupported scheme %q", ErrInvalidTag, u.Scheme)
	}

	if u.Host == "" {
		return "", fmt.Errorf("%w: missing host", ErrInvalidTag)
	}

	value := correlatorParam + "=" + strconv.FormatInt(c.Correlator, 10)

	var (
		params   []string
		replaced bool
	)
	if u.RawQuery != "" {
		params = strings.Split(u.RawQuery, "&")
	}
	for i, p := range params {
		name, _, _ := strings.Cut(p, "=")
		if name == correlatorParam {
			params[i] = value
			replaced = true
		}
	}
	if !replaced {
		params = append(params, value)
	}

	u.RawQuery = strings.Join(params, "&")
	return u.String(), nil
}
