// Package config loads kartstats settings from a YAML file, environment
// variables and built-in defaults.
package config

import (
	"time"

	"github.com/spf13/viper"
)

// Config is a nil-safe read-only view over a viper instance.
type Config struct {
	v *viper.Viper
}

// New wraps v. A nil v behaves as an empty configuration.
func New(v *viper.Viper) *Config {
	if v == nil {
		v = viper.New()
	}
	return &Config{v: v}
}

func (c *Config) GetString(key string) string          { return c.v.GetString(key) }
func (c *Config) GetInt(key string) int                { return c.v.GetInt(key) }
func (c *Config) GetBool(key string) bool              { return c.v.GetBool(key) }
func (c *Config) GetDuration(key string) time.Duration { return c.v.GetDuration(key) }
func (c *Config) IsSet(key string) bool                { return c.v.IsSet(key) }

// Sub returns the subtree at key. A missing subtree yields an empty Config.
func (c *Config) Sub(key string) *Config {
	return New(c.v.Sub(key))
}

// Unmarshal decodes the whole configuration into target using mapstructure tags.
func (c *Config) Unmarshal(target any) error {
	return c.v.Unmarshal(target)
}

// Viper exposes the underlying instance.
func (c *Config) Viper() *viper.Viper {
	return c.v
}
