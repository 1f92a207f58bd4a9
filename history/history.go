// Package history remembers how far each content URL was watched.
package history

import (
	"github.com/mangomedia/mango/filesystem"
	"github.com/mangomedia/mango/where"
	"github.com/metafates/gache"
	"github.com/samber/lo"
	"github.com/samber/mo"
	"golang.org/x/exp/slices"
)

var cacher = gache.New[map[string]*Entry](
	&gache.Options{
		Path:       where.History(),
		FileSystem: &filesystem.GacheFs{},
	},
)

// Get returns every entry keyed by content URL.
func Get() (map[string]*Entry, error) {
	cached, expired, err := cacher.Get()
	if err != nil {
		return nil, err
	}
	if expired || cached == nil {
		return make(map[string]*Entry), nil
	}
	return cached, nil
}

// Recent returns the entries, most recently updated first.
func Recent() ([]*Entry, error) {
	saved, err := Get()
	if err != nil {
		return nil, err
	}

	entries := lo.Values(saved)
	slices.SortFunc(entries, func(a, b *Entry) int {
		return b.UpdatedAt.Compare(a.UpdatedAt)
	})
	return entries, nil
}

// Find returns the entry for contentURL, if one was saved.
func Find(contentURL string) (mo.Option[*Entry], error) {
	saved, err := Get()
	if err != nil {
		return mo.None[*Entry](), err
	}

	entry, ok := saved[contentURL]
	return mo.TupleToOption(entry, ok), nil
}

// Save records entry. The watched percentage never goes down on a rewatch;
// the position always follows the latest visit.
func Save(entry *Entry) error {
	saved, err := Get()
	if err != nil {
		return err
	}

	if existing, ok := saved[entry.key()]; ok && existing.Percent > entry.Percent {
		entry.Percent = existing.Percent
	}

	saved[entry.key()] = entry
	return cacher.Set(saved)
}

// Remove deletes the entry for contentURL.
func Remove(contentURL string) error {
	saved, err := Get()
	if err != nil {
		return err
	}

	delete(saved, contentURL)
	return cacher.Set(saved)
}

// Clear deletes every entry.
func Clear() error {
	return cacher.Set(make(map[string]*Entry))
}
