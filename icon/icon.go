// Package icon renders the status symbols of the CLI and the player screen
// in the variant picked by icons.variant.
package icon

import (
	"github.com/mangomedia/mango/key"
	"github.com/samber/lo"
	"github.com/spf13/viper"
)

const (
	emoji   = "emoji"
	nerd    = "nerd"
	plain   = "plain"
	kaomoji = "kaomoji"
	squares = "squares"
)

func AvailableVariants() []string {
	return []string{emoji, nerd, plain, kaomoji, squares}
}

type iconDef struct {
	emoji   string
	nerd    string
	plain   string
	kaomoji string
	squares string
}

func (d *iconDef) variant(name string) string {
	return map[string]string{
		emoji:   d.emoji,
		nerd:    d.nerd,
		plain:   d.plain,
		kaomoji: d.kaomoji,
		squares: d.squares,
	}[name]
}

// Get renders i. An unknown variant falls back to plain.
func Get(i Icon) string {
	def, ok := icons[i]
	if !ok {
		return ""
	}

	variant := viper.GetString(key.IconsVariant)
	if !lo.Contains(AvailableVariants(), variant) {
		variant = plain
	}
	return def.variant(variant)
}
