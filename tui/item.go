package tui

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"
	"github.com/mangomedia/mango/catalog"
	"github.com/mangomedia/mango/history"
	"github.com/mangomedia/mango/icon"
	"github.com/mangomedia/mango/style"
)

// listItem implements the list.Item interface for thumbnails and history entries.
type listItem struct {
	internal interface{}
}

func (t *listItem) Title() string {
	switch e := t.internal.(type) {
	case catalog.Thumbnail:
		return fmt.Sprintf("%s %s", icon.Get(icon.Video), e.Title)
	case *history.Entry:
		return e.Title
	default:
		return t.FilterValue()
	}
}

func (t *listItem) Description() string {
	switch e := t.internal.(type) {
	case catalog.Thumbnail:
		return style.Faint(fmt.Sprintf("%s • %dx%d", e.Orientation, e.Width, e.Height))
	case *history.Entry:
		c := style.PartialColor
		if e.Percent >= 95 {
			c = style.ContentColor
		}
		return lipgloss.NewStyle().Foreground(c).Render(e.String())
	default:
		return ""
	}
}

func (t *listItem) FilterValue() string {
	switch e := t.internal.(type) {
	case catalog.Thumbnail:
		return e.Title
	case *history.Entry:
		return e.Title
	default:
		return ""
	}
}

// contentOf returns the content URL and title a list item opens.
func contentOf(item *listItem) (url, title string, ok bool) {
	switch e := item.internal.(type) {
	case catalog.Thumbnail:
		return e.ContentURL, e.Title, true
	case *history.Entry:
		return e.ContentURL, e.Title, true
	default:
		return "", "", false
	}
}
