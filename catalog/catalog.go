// Package catalog describes the browsable content on the home screen.
package catalog

import (
	"encoding/json"
	"fmt"

	"github.com/invopop/jsonschema"
	"github.com/lithammer/fuzzysearch/fuzzy"
	"github.com/samber/lo"
	"golang.org/x/exp/slices"
)

// Orientation of a carousel's thumbnails.
type Orientation string

const (
	Vertical   Orientation = "vertical"
	Horizontal Orientation = "horizontal"
)

// Thumbnail is a selectable item. Every thumbnail opens the player on
// ContentURL.
type Thumbnail struct {
	ID          string      `json:"id" jsonschema:"description=Stable identifier, e.g. v1 or h3"`
	Title       string      `json:"title"`
	Section     string      `json:"section"`
	Orientation Orientation `json:"orientation" jsonschema:"enum=vertical,enum=horizontal"`
	Width       int         `json:"width" jsonschema:"minimum=1"`
	Height      int         `json:"height" jsonschema:"minimum=1"`
	ContentURL  string      `json:"content_url" jsonschema:"format=uri"`
}

// Section is one carousel.
type Section struct {
	Title       string      `json:"title"`
	Orientation Orientation `json:"orientation" jsonschema:"enum=vertical,enum=horizontal"`
	Thumbnails  []Thumbnail `json:"thumbnails"`
}

// Catalog is the whole home screen.
type Catalog struct {
	Sections []Section `json:"sections"`
}

const perSection = 5

// New builds the home catalog: a vertical and a horizontal carousel of five
// thumbnails each, all pointing at contentURL.
func New(contentURL string) *Catalog {
	section := func(title string, o Orientation, prefix string, w, h int) Section {
		return Section{
			Title:       title,
			Orientation: o,
			Thumbnails: lo.Times(perSection, func(i int) Thumbnail {
				return Thumbnail{
					ID:          fmt.Sprintf("%s%d", prefix, i+1),
					Title:       fmt.Sprintf("%s %d", title, i+1),
					Section:     title,
					Orientation: o,
					Width:       w,
					Height:      h,
					ContentURL:  contentURL,
				}
			}),
		}
	}

	return &Catalog{
		Sections: []Section{
			section("Vertical", Vertical, "v", 100, 150),
			section("Horizontal", Horizontal, "h", 150, 100),
		},
	}
}

// Thumbnails lists every thumbnail in section order.
func (c *Catalog) Thumbnails() []Thumbnail {
	return lo.FlatMap(c.Sections, func(s Section, _ int) []Thumbnail {
		return s.Thumbnails
	})
}

// Get looks a thumbnail up by id.
func (c *Catalog) Get(id string) (Thumbnail, bool) {
	return lo.Find(c.Thumbnails(), func(t Thumbnail) bool {
		return t.ID == id
	})
}

// Find fuzzy-matches query against thumbnail ids and titles, best matches
// first.
func (c *Catalog) Find(query string) []Thumbnail {
	thumbnails := c.Thumbnails()
	byTarget := make(map[string]Thumbnail, len(thumbnails)*2)
	targets := make([]string, 0, len(thumbnails)*2)
	for _, t := range thumbnails {
		for _, target := range []string{t.ID, t.Title} {
			byTarget[target] = t
			targets = append(targets, target)
		}
	}

	ranks := fuzzy.RankFindNormalizedFold(query, targets)
	slices.SortStableFunc(ranks, func(a, b fuzzy.Rank) int {
		return a.Distance - b.Distance
	})

	return lo.UniqBy(lo.Map(ranks, func(r fuzzy.Rank, _ int) Thumbnail {
		return byTarget[r.Target]
	}), func(t Thumbnail) string {
		return t.ID
	})
}

// JSON is the indented JSON form of the catalog.
func (c *Catalog) JSON() ([]byte, error) {
	return json.MarshalIndent(c, "", "  ")
}

// Schema is the JSON schema of the catalog document.
func Schema() ([]byte, error) {
	return json.MarshalIndent(jsonschema.Reflect(&Catalog{}), "", "  ")
}
