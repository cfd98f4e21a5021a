package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"

	"github.com/HerbHall/kartstats/internal/combination"
	"github.com/HerbHall/kartstats/internal/dataset"
	"github.com/HerbHall/kartstats/internal/recommend"
	"github.com/HerbHall/kartstats/internal/search"
)

// EnvPrefix prefixes environment overrides, e.g. KARTSTATS_SERVER_PORT.
const EnvPrefix = "KARTSTATS"

// Settings is the decoded configuration tree.
type Settings struct {
	Server      ServerSettings      `mapstructure:"server"`
	Dataset     DatasetSettings     `mapstructure:"dataset"`
	Store       StoreSettings       `mapstructure:"store"`
	Search      SearchSettings      `mapstructure:"search"`
	Recommend   recommend.Options   `mapstructure:"recommend"`
	Combination CombinationSettings `mapstructure:"combination"`
	Log         LogSettings         `mapstructure:"log"`
}

// ServerSettings configures the HTTP listener.
type ServerSettings struct {
	Host string `mapstructure:"host"`
	Port string `mapstructure:"port"`
	// SearchRate is the sustained searches per second allowed per client.
	SearchRate  float64 `mapstructure:"search_rate"`
	SearchBurst int     `mapstructure:"search_burst"`
}

// Addr returns host:port.
func (s ServerSettings) Addr() string {
	return s.Host + ":" + s.Port
}

// DatasetSettings lists the roster sources in priority order. Empty
// locations are skipped.
type DatasetSettings struct {
	Structured string               `mapstructure:"structured"`
	Tabular    string               `mapstructure:"tabular"`
	Embedded   bool                 `mapstructure:"embedded"`
	Fetch      dataset.FetchOptions `mapstructure:"fetch"`
}

// StoreSettings configures persistence of combinations and history.
type StoreSettings struct {
	Enabled bool   `mapstructure:"enabled"`
	Path    string `mapstructure:"path"`
}

// SearchSettings configures interactive search.
type SearchSettings struct {
	Debounce     time.Duration `mapstructure:"debounce"`
	HistoryLimit int           `mapstructure:"history_limit"`
}

// CombinationSettings configures combination building.
type CombinationSettings struct {
	Bonus int `mapstructure:"bonus"`
}

// LogSettings configures the zap logger.
type LogSettings struct {
	Level       string `mapstructure:"level"`
	Development bool   `mapstructure:"development"`
}

// SetDefaults registers every default on v.
func SetDefaults(v *viper.Viper) {
	v.SetDefault("server.host", "0.0.0.0")
	v.SetDefault("server.port", "8080")
	v.SetDefault("server.search_rate", 10.0)
	v.SetDefault("server.search_burst", 20)

	v.SetDefault("dataset.structured", "")
	v.SetDefault("dataset.tabular", "")
	v.SetDefault("dataset.embedded", true)
	v.SetDefault("dataset.fetch.timeout", "10s")
	v.SetDefault("dataset.fetch.attempts", 3)
	v.SetDefault("dataset.fetch.delay", "1s")

	v.SetDefault("store.enabled", true)
	v.SetDefault("store.path", "kartstats.db")

	v.SetDefault("search.debounce", search.DefaultDelay)
	v.SetDefault("search.history_limit", search.DefaultHistoryLimit)

	v.SetDefault("recommend.limit", recommend.DefaultLimit)
	v.SetDefault("recommend.vehicle_cap", recommend.DefaultVehicleCap)
	w := recommend.DefaultWeights()
	v.SetDefault("recommend.weights.speed", w.Speed)
	v.SetDefault("recommend.weights.handling", w.Handling)
	v.SetDefault("recommend.weights.acceleration", w.Acceleration)
	v.SetDefault("recommend.weights.weight", w.Weight)

	v.SetDefault("combination.bonus", combination.DefaultBonus)

	v.SetDefault("log.level", "info")
	v.SetDefault("log.development", false)
}

// Load reads the configuration. With an empty path it looks for
// kartstats.yaml in the working directory and /etc/kartstats, and a missing
// file is not an error. Environment variables override file values.
func Load(path string) (*Config, error) {
	v := viper.New()
	SetDefaults(v)

	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("kartstats")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath("/etc/kartstats")
	}

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if path != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("read config: %w", err)
		}
	}
	return New(v), nil
}

// Settings decodes the full configuration tree.
func (c *Config) Settings() (Settings, error) {
	var s Settings
	if err := c.Unmarshal(&s); err != nil {
		return Settings{}, fmt.Errorf("decode config: %w", err)
	}
	return s, nil
}
