// Package key defines the canonical set of configuration identifiers used for centralized settings management.
package key

// Media Playback - these keys configure the content player and its controls.
const (
	Player                   = "player.default"
	PlayerObserverIntervalMs = "player.observer_interval_ms"
	PlayerCustomControls     = "player.custom_controls"
	PlayerSeekStep           = "player.seek_step"
)

// Advertising - these keys govern ad requests for unsubscribed sessions.
const (
	AdsEnable          = "ads.enable"
	AdsTag             = "ads.tag"
	AdsTimeoutSeconds  = "ads.timeout_seconds"
	AdsBrowserTLS      = "ads.browser_tls"
	AdsMarkCuePoints   = "ads.mark_cue_points"
	AdsMaxWrapperDepth = "ads.max_wrapper_depth"
	AdsRetryBeacons    = "ads.retry_beacons"
)

// Catalog - these keys define the home screen content.
const (
	CatalogSampleURL = "catalog.sample_url"
)

// History Tracking - these keys configure the persistence of playback positions.
const (
	HistorySave = "history.save"
)

// Iconography - these keys manage the visual rendering of UI symbols.
const (
	IconsVariant = "icons.variant"
)

// Terminal User Interface (TUI) - these keys define the interactive environment's styling.
const (
	TUIItemSpacing = "tui.item_spacing"
)

// Logging Infrastructure - these keys manage the application's internal diagnostics.
const (
	LogsWrite = "logs.write"
	LogsLevel = "logs.level"
	LogsJson  = "logs.json"
)

// CLI Execution Environment - these flags and settings govern the non-TUI application behavior.
const (
	CliColored = "cli.colored"
)
