package icon

// Icon identifies a UI symbol in the icon registry.
type Icon int

const (
	Success Icon = iota
	Fail
	Progress
	Play
	Pause
	Ad
	Subscribed
	Unsubscribed
	Video
)

var icons = map[Icon]*iconDef{
	Success: {
		emoji:   "🎉",
		nerd:    "",
		plain:   "✓",
		kaomoji: "(ᵔᴥᵔ)",
		squares: "🟩",
	},
	Fail: {
		emoji:   "💩",
		nerd:    "",
		plain:   "✖",
		kaomoji: "(╯°□°)╯︵ ┻━┻",
		squares: "🟥",
	},
	Progress: {
		emoji:   "⏳",
		nerd:    "",
		plain:   "…",
		kaomoji: "(・_・ヾ",
		squares: "🟦",
	},
	Play: {
		emoji:   "▶️",
		nerd:    "",
		plain:   "▶",
		kaomoji: "ᕕ( ᐛ )ᕗ",
		squares: "🟩",
	},
	Pause: {
		emoji:   "⏸️",
		nerd:    "",
		plain:   "⏸",
		kaomoji: "(－_－) zzZ",
		squares: "🟨",
	},
	Ad: {
		emoji:   "📢",
		nerd:    "",
		plain:   "AD",
		kaomoji: "(•̀ᴗ•́)و",
		squares: "🟧",
	},
	Subscribed: {
		emoji:   "✅",
		nerd:    "",
		plain:   "●",
		kaomoji: "(✿◠‿◠)",
		squares: "🟩",
	},
	Unsubscribed: {
		emoji:   "❌",
		nerd:    "",
		plain:   "○",
		kaomoji: "(ง'̀-'́)ง",
		squares: "🟥",
	},
	Video: {
		emoji:   "🎬",
		nerd:    "",
		plain:   "▣",
		kaomoji: "[▶]",
		squares: "🟪",
	},
}
