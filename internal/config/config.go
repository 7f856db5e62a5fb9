// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import (
	"fmt"
	"io"
	"maps"
	"math"
	"slices"
	"sync/atomic"
	"time"

	"github.com/BurntSushi/toml"

	"github.com/MKhiriev/go-hydra-config/internal/logger"
)

// Well-known top-level keys.
const (
	KeyMaxPoolSize     = "MAX_POOL_SIZE"
	KeyMinPoolSize     = "MIN_POOL_SIZE"
	KeyBatchSize       = "BATCH_SIZE"
	KeyDatabaseURL     = "DATABASE_URL"
	KeyDatabaseSchema  = "DATABASE_SCHEMA"
	KeyUserAgent       = "USER_AGENT"
	KeyRequestTimeout  = "REQUEST_TIMEOUT"
	KeyHTTPRetries     = "HTTP_RETRIES"
	KeyExcludedDomains = "EXCLUDED_DOMAINS"
	KeyAllowedSchemes  = "ALLOWED_SCHEMES"
	KeyLogLevel        = "LOG_LEVEL"
	KeyAppName         = "APP_NAME"
	KeyAppVersion      = "APP_VERSION"
)

// Config is the resolved configuration: a mapping from upper-case keys to
// string, int64, float64, bool, sequence or nested map values.
//
// Reads are safe from any number of goroutines. Every [Config.Override]
// publishes a complete new map, so a reader never observes a half-applied
// override. Concurrent Override calls are not serialized against each other:
// callers that mutate from several goroutines must serialize those calls
// themselves, otherwise one override may be lost.
type Config struct {
	values atomic.Pointer[map[string]any]
	logger *logger.Logger
}

func newConfig(values map[string]any, log *logger.Logger) *Config {
	cfg := &Config{logger: log}
	cfg.values.Store(&values)
	return cfg
}

// New wraps an already-resolved map in a *Config after validating it. The map
// is copied. It is intended for callers that assemble values programmatically
// and for tests.
func New(values map[string]any) (*Config, error) {
	copied := cloneMap(values)
	if err := validate(copied); err != nil {
		return nil, err
	}
	return newConfig(copied, logger.Nop()), nil
}

func (c *Config) current() map[string]any {
	return *c.values.Load()
}

// Lookup returns the value stored under key and whether it is configured, so
// that "not configured" can be told apart from a configured zero value.
func (c *Config) Lookup(key string) (any, bool) {
	v, ok := c.current()[key]
	return v, ok
}

// Get returns the value stored under key, or nil when the key is not
// configured. It never fails.
func (c *Config) Get(key string) any {
	return c.current()[key]
}

// String returns the string value for key, or defaultVal if missing or not a
// string.
func (c *Config) String(key, defaultVal string) string {
	if s, ok := c.Get(key).(string); ok {
		return s
	}
	return defaultVal
}

// Int returns the integer value for key, or defaultVal if missing or not an
// integer. Floats with no fractional part are accepted.
func (c *Config) Int(key string, defaultVal int) int {
	switch v := c.Get(key).(type) {
	case int64:
		return int(v)
	case int:
		return v
	case int32:
		return int(v)
	case float64:
		if v == math.Trunc(v) {
			return int(v)
		}
	}
	return defaultVal
}

// Float returns the numeric value for key as float64, or defaultVal if
// missing or not a number.
func (c *Config) Float(key string, defaultVal float64) float64 {
	if f, ok := toFloat(c.Get(key)); ok {
		return f
	}
	return defaultVal
}

// Bool returns the boolean value for key, or defaultVal if missing or not a
// boolean.
func (c *Config) Bool(key string, defaultVal bool) bool {
	if b, ok := c.Get(key).(bool); ok {
		return b
	}
	return defaultVal
}

// Strings returns the sequence stored under key as a new []string, or nil if
// missing or not a sequence. Non-string elements are formatted with fmt.
func (c *Config) Strings(key string) []string {
	switch v := c.Get(key).(type) {
	case []string:
		return slices.Clone(v)
	case []any:
		out := make([]string, len(v))
		for i, item := range v {
			if s, ok := item.(string); ok {
				out[i] = s
				continue
			}
			out[i] = fmt.Sprint(item)
		}
		return out
	}
	return nil
}

// Duration returns the duration value for key, or defaultVal if missing or
// invalid.
//
// Accepts:
//   - int64, int, float64: interpreted as seconds
//   - string: parsed with time.ParseDuration
func (c *Config) Duration(key string, defaultVal time.Duration) time.Duration {
	switch v := c.Get(key).(type) {
	case int64:
		return time.Duration(v) * time.Second
	case int:
		return time.Duration(v) * time.Second
	case float64:
		return time.Duration(v * float64(time.Second))
	case string:
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return defaultVal
}

// Keys returns all configured keys in sorted order.
func (c *Config) Keys() []string {
	return slices.Sorted(maps.Keys(c.current()))
}

// All returns a deep copy of the configuration map.
func (c *Config) All() map[string]any {
	return cloneMap(c.current())
}

// Override merges values over the configuration, replacing whole top-level
// keys, and re-validates the result. On success the merged map is published
// in a single step; on failure the previous configuration stays in effect and
// the validation error is returned. Keys not named in values are unchanged.
//
// Override is not safe for concurrent use with other Override calls.
func (c *Config) Override(values map[string]any) error {
	next := maps.Clone(c.current())
	for k, v := range values {
		next[k] = cloneValue(v)
	}

	if err := validate(next); err != nil {
		c.logger.Debug().Err(err).Strs("keys", slices.Sorted(maps.Keys(values))).Msg("override rejected")
		return err
	}

	c.values.Store(&next)
	return nil
}

// UserAgentFull returns USER_AGENT with its version segment replaced by
// APP_VERSION. See [FullUserAgent] for the exact rule.
func (c *Config) UserAgentFull() string {
	return FullUserAgent(c.String(KeyUserAgent, ""), c.String(KeyAppVersion, ""))
}

// Encode writes the configuration to w as TOML.
func (c *Config) Encode(w io.Writer) error {
	if err := toml.NewEncoder(w).Encode(c.current()); err != nil {
		return fmt.Errorf("error encoding configuration: %w", err)
	}
	return nil
}

func toFloat(v any) (float64, bool) {
	switch n := v.(type) {
	case int64:
		return float64(n), true
	case int:
		return float64(n), true
	case int32:
		return float64(n), true
	case float64:
		return n, true
	case float32:
		return float64(n), true
	}
	return 0, false
}

func cloneMap(m map[string]any) map[string]any {
	out := make(map[string]any, len(m))
	for k, v := range m {
		out[k] = cloneValue(v)
	}
	return out
}

func cloneValue(v any) any {
	switch val := v.(type) {
	case map[string]any:
		return cloneMap(val)
	case []any:
		out := make([]any, len(val))
		for i, item := range val {
			out[i] = cloneValue(item)
		}
		return out
	case []string:
		return slices.Clone(val)
	case []map[string]any:
		out := make([]map[string]any, len(val))
		for i, item := range val {
			out[i] = cloneMap(item)
		}
		return out
	}
	return v
}
