package history

import (
	"fmt"
	"time"
)

// Entry is the last known playback state of one content URL.
type Entry struct {
	ContentURL string    `json:"content_url"`
	Title      string    `json:"title"`
	Position   float64   `json:"position"`
	Duration   float64   `json:"duration"`
	Percent    float64   `json:"watched_percentage"`
	Subscribed bool      `json:"subscribed"`
	AdOutcome  string    `json:"ad_outcome,omitempty"`
	UpdatedAt  time.Time `json:"updated_at"`
}

func (e *Entry) key() string {
	return e.ContentURL
}

func (e *Entry) String() string {
	return fmt.Sprintf("%s : %.0f%% (%s)", e.Title, e.Percent, formatSeconds(e.Position))
}

func formatSeconds(s float64) string {
	d := time.Duration(s) * time.Second
	return fmt.Sprintf("%02d:%02d:%02d", int(d.Hours()), int(d.Minutes())%60, int(d.Seconds())%60)
}
