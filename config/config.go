// Package config registers the defaults, environment bindings and file
// lookup of the viper configuration.
package config

import (
	"errors"
	"fmt"
	"net/url"
	"strings"

	"github.com/mangomedia/mango/constant"
	"github.com/mangomedia/mango/filesystem"
	"github.com/mangomedia/mango/key"
	"github.com/mangomedia/mango/where"
	"github.com/samber/lo"
	"github.com/spf13/viper"
)

var EnvKeyReplacer = strings.NewReplacer(".", "_")

// Setup loads mango.toml from the config directory on top of the defaults.
// A missing file is fine; invalid values are not.
func Setup() error {
	viper.SetConfigName(constant.Mango)
	viper.SetConfigType("toml")
	viper.SetFs(filesystem.API())
	viper.AddConfigPath(where.Config())

	viper.SetEnvPrefix(constant.Mango)
	viper.SetEnvKeyReplacer(EnvKeyReplacer)
	for _, env := range EnvExposed {
		viper.MustBindEnv(env)
	}

	viper.SetTypeByDefaultValue(true)
	for name, field := range Default {
		viper.SetDefault(name, field.Value)
	}

	if err := viper.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return err
		}
	}

	return Validate()
}

var logLevels = []string{"panic", "fatal", "error", "warn", "warning", "info", "debug", "trace"}

// Validate reports every setting whose value mango cannot work with.
func Validate() error {
	var errs []error
	invalid := func(k string, format string, args ...any) {
		errs = append(errs, fmt.Errorf("%s: %s", k, fmt.Sprintf(format, args...)))
	}

	if v := viper.GetInt(key.AdsTimeoutSeconds); v <= 0 {
		invalid(key.AdsTimeoutSeconds, "must be positive, got %d", v)
	}
	if v := viper.GetInt(key.AdsMaxWrapperDepth); v < 1 {
		invalid(key.AdsMaxWrapperDepth, "must be at least 1, got %d", v)
	}
	if v := viper.GetInt(key.PlayerObserverIntervalMs); v < 50 {
		invalid(key.PlayerObserverIntervalMs, "must be at least 50, got %d", v)
	}
	if v := viper.GetInt(key.PlayerSeekStep); v <= 0 {
		invalid(key.PlayerSeekStep, "must be positive, got %d", v)
	}
	if v := viper.GetString(key.LogsLevel); !lo.Contains(logLevels, strings.ToLower(v)) {
		invalid(key.LogsLevel, "unknown level %q", v)
	}

	if viper.GetBool(key.AdsEnable) {
		tag := viper.GetString(key.AdsTag)
		u, err := url.Parse(tag)
		if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
			invalid(key.AdsTag, "not an http(s) URL: %q", tag)
		}
	}

	return errors.Join(errs...)
}
