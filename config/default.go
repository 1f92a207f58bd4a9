package config

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"github.com/mangomedia/mango/color"
	"github.com/mangomedia/mango/constant"
	"github.com/mangomedia/mango/key"
	"github.com/mangomedia/mango/style"
	"github.com/spf13/viper"
)

// Field is a registered setting with its default value.
type Field struct {
	Key         string
	Value       any
	Description string
}

var fields = []Field{
	{key.Player, "mpv", "Media player used for content and ad playback.\nOnly mpv exposes the IPC interface required for ad coordination"},
	{key.PlayerObserverIntervalMs, 500, "Interval in milliseconds between playback position updates of the seek bar"},
	{key.PlayerCustomControls, true, "Show the play/pause and seek controls on the player screen"},
	{key.PlayerSeekStep, 10, "Seconds to move when seeking with the arrow keys"},

	{key.AdsEnable, true, "Request ads for unsubscribed sessions"},
	{key.AdsTag, constant.DefaultAdTag, "VMAP ad tag URL.\nThe correlator parameter is regenerated on every request"},
	{key.AdsTimeoutSeconds, 10, "Timeout in seconds for ad metadata requests"},
	{key.AdsBrowserTLS, false, "Use a browser TLS fingerprint for ad server requests"},
	{key.AdsMarkCuePoints, true, "Show ad cue points as chapter markers in the player timeline"},
	{key.AdsMaxWrapperDepth, 5, "Maximum number of VAST wrapper redirects to follow"},
	{key.AdsRetryBeacons, true, "Queue tracking beacons that could not be delivered and retry them on the next start"},

	{key.CatalogSampleURL, constant.SampleContentURL, "HLS stream played by every catalog thumbnail"},
	{key.HistorySave, true, "Save the playback position when leaving the player"},
	{key.IconsVariant, "plain", "Icons variant.\nAvailable options are: emoji, kaomoji, plain, squares, nerd (nerd-font required)"},
	{key.TUIItemSpacing, 1, "Spacing between items in the TUI"},

	{key.LogsWrite, false, "Write logs"},
	{key.LogsLevel, "info", "Available options are: (from less to most verbose)\npanic, fatal, error, warn, info, debug, trace"},
	{key.LogsJson, false, "Use json format for logs"},
	{key.CliColored, true, "Enable colored CLI output"},
}

// Default maps each key to its field.
var Default = make(map[string]Field, len(fields))

// EnvExposed lists the keys bound to MANGO_* variables.
var EnvExposed []string

func init() {
	for _, f := range fields {
		if _, ok := Default[f.Key]; ok {
			panic("duplicate config key: " + f.Key)
		}
		Default[f.Key] = f
		EnvExposed = append(EnvExposed, f.Key)
	}
}

func (f *Field) Env() string {
	env := strings.ToUpper(EnvKeyReplacer.Replace(f.Key))
	prefix := strings.ToUpper(constant.Mango + "_")
	if strings.HasPrefix(env, prefix) {
		return env
	}
	return prefix + env
}

func (f *Field) typeName() string {
	return fmt.Sprintf("%T", f.Value)
}

func (f *Field) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Key         string `json:"key"`
		Value       any    `json:"value"`
		Default     any    `json:"default"`
		Description string `json:"description"`
		Type        string `json:"type"`
	}{
		Key:         f.Key,
		Value:       viper.Get(f.Key),
		Default:     f.Value,
		Description: f.Description,
		Type:        f.typeName(),
	})
}

// Pretty describes the field and its current value for `config info`.
func (f *Field) Pretty() string {
	label := style.Fg(color.Blue)
	rows := [][2]string{
		{"Key:", style.Fg(color.Purple)(f.Key)},
		{"Env:", f.Env()},
		{"Value:", highlight(viper.Get(f.Key))},
		{"Default:", highlight(f.Value)},
		{"Type:", f.typeName()},
	}

	var b strings.Builder
	b.WriteString(style.Faint(f.Description))
	for _, row := range rows {
		fmt.Fprintf(&b, "\n%s %s", label(fmt.Sprintf("%-8s", row[0])), row[1])
	}
	return b.String()
}

func highlight(v any) string {
	switch value := v.(type) {
	case bool:
		if value {
			return style.Fg(color.Green)(strconv.FormatBool(value))
		}
		return style.Fg(color.Red)(strconv.FormatBool(value))
	case string:
		return style.Fg(color.Yellow)(value)
	default:
		return fmt.Sprint(value)
	}
}
