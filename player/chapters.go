package player

import (
	"fmt"

	"github.com/mangomedia/mango/ads"
	"github.com/mangomedia/mango/log"
	"github.com/samber/lo"
)

// Chapter is one entry of mpv's chapter-list.
type Chapter struct {
	Title string  `json:"title"`
	Time  float64 `json:"time"`
}

// SetChapters replaces the chapter-list of the loaded media.
func (m *MPV) SetChapters(chapters []Chapter) error {
	list := lo.Map(chapters, func(c Chapter, _ int) map[string]interface{} {
		return map[string]interface{}{"title": c.Title, "time": c.Time}
	})
	_, err := m.sendCommand("set_property", "chapter-list", list)
	return err
}

// CuePointChapters turns the ad schedule into chapter markers so the mpv
// timeline shows where mid-roll breaks sit. Pre- and post-rolls have no
// position on the timeline and are left out.
func CuePointChapters(cues []ads.CuePoint) []Chapter {
	midrolls := lo.Filter(cues, func(c ads.CuePoint, _ int) bool {
		return c.Kind == ads.CueMidroll && c.Offset > 0
	})
	if len(midrolls) == 0 {
		return nil
	}

	chapters := []Chapter{{Title: "Content", Time: 0}}
	for i, c := range midrolls {
		chapters = append(chapters, Chapter{
			Title: fmt.Sprintf("Ad break %d", i+1),
			Time:  c.Offset.Seconds(),
		})
	}
	return chapters
}

// CueMarker marks ad breaks on the content player.
type CueMarker struct {
	player Player
}

// NewCueMarker returns a marker for p.
func NewCueMarker(p Player) *CueMarker {
	return &CueMarker{player: p}
}

// Mark applies the chapters for cues. A schedule without mid-rolls leaves the
// chapter list alone.
func (c *CueMarker) Mark(cues []ads.CuePoint) error {
	chapters := CuePointChapters(cues)
	if len(chapters) == 0 {
		return nil
	}

	log.With("player").Infof("marking %d ad breaks", len(chapters)-1)
	if err := c.player.SetChapters(chapters); err != nil {
		return fmt.Errorf("mark cue points: %w", err)
	}
	return nil
}
