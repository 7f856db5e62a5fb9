// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import (
	"errors"
	"fmt"
	"maps"
	"os"
	"slices"

	"github.com/MKhiriev/go-hydra-config/internal/envfile"
	"github.com/MKhiriev/go-hydra-config/internal/environ"
	"github.com/MKhiriev/go-hydra-config/internal/interpolate"
	"github.com/MKhiriev/go-hydra-config/internal/logger"
	"github.com/MKhiriev/go-hydra-config/internal/utils"
)

// Load resolves the configuration from all sources in order:
//  1. .env files (working directory, then project root) into env
//  2. default settings, interpolated then parsed
//  3. local override file, interpolated, parsed and merged key by key
//  4. a second interpolation pass over the merged values
//  5. environment overrides for existing top-level keys
//
// The result is validated and receives APP_NAME and APP_VERSION.
//
// Returns an error wrapping [ErrDefaultSource], [ErrLocalSource] or a
// [*ValidationError]; any of them should abort startup.
func Load(env environ.Environment, log *logger.Logger, opts Options) (*Config, error) {
	return newConfigBuilder(env, log, opts).
		withEnvFiles().
		withDefaults().
		withLocal().
		withInterpolation().
		withEnvOverrides().
		build()
}

type configBuilder struct {
	env      environ.Environment
	logger   *logger.Logger
	explicit Options
	opts     Options

	values map[string]any
	err    error
}

func newConfigBuilder(env environ.Environment, log *logger.Logger, opts Options) *configBuilder {
	if log == nil {
		log = logger.Nop()
	}

	b := &configBuilder{
		env:      env,
		logger:   log.WithField("load_id", utils.NewLoadID()),
		explicit: opts,
	}
	b.resolveOptions()

	return b
}

func (b *configBuilder) resolveOptions() {
	opts, err := resolveOptions(b.env, b.explicit)
	if err != nil {
		b.err = errors.Join(b.err, err)
		return
	}
	b.opts = opts
}

func (b *configBuilder) build() (*Config, error) {
	if b.err != nil {
		return nil, fmt.Errorf("error occurred during building config: %w", b.err)
	}

	if err := validate(b.values); err != nil {
		return nil, err
	}

	version, fallback := resolveVersion(b.opts.Version)
	if fallback {
		b.logger.Debug().Str("version", version).Msg("application version unknown, using fallback")
	}
	b.values[KeyAppName] = AppName
	b.values[KeyAppVersion] = version

	b.logger.Info().
		Int("keys", len(b.values)).
		Str("version", version).
		Msg("configuration resolved")

	return newConfig(b.values, b.logger), nil
}

func (b *configBuilder) withEnvFiles() *configBuilder {
	if b.err != nil {
		return b
	}

	for _, res := range envfile.Load(b.env, b.opts.envFilePaths()...) {
		if res.Err != nil {
			b.logger.Debug().Err(res.Err).Str("path", res.Path).Msg("env file not loaded")
			continue
		}
		b.logger.Debug().
			Str("path", res.Path).
			Strs("applied", res.Applied).
			Strs("skipped", res.Skipped).
			Msg("env file loaded")
	}

	// .env files may have provided HYDRA_SETTINGS and friends
	b.resolveOptions()
	return b
}

func (b *configBuilder) withDefaults() *configBuilder {
	if b.err != nil {
		return b
	}

	raw, source, err := b.defaultSource()
	if err != nil {
		b.err = errors.Join(b.err, fmt.Errorf("%w: %w", ErrDefaultSource, err))
		return b
	}

	values, err := parseTOML(interpolate.Text(string(raw), b.env))
	if err != nil {
		b.err = errors.Join(b.err, fmt.Errorf("%w: %s: %w", ErrDefaultSource, source, err))
		return b
	}

	b.logger.Debug().Str("source", source).Int("keys", len(values)).Msg("default settings loaded")
	b.values = values
	return b
}

func (b *configBuilder) defaultSource() ([]byte, string, error) {
	switch {
	case len(b.opts.Defaults) > 0:
		return b.opts.Defaults, "inline", nil
	case b.opts.DefaultPath != "":
		raw, err := os.ReadFile(b.opts.DefaultPath)
		if err != nil {
			return nil, b.opts.DefaultPath, fmt.Errorf("error reading %s: %w", b.opts.DefaultPath, err)
		}
		return raw, b.opts.DefaultPath, nil
	default:
		return defaultSettings, "embedded", nil
	}
}

func (b *configBuilder) withLocal() *configBuilder {
	if b.err != nil {
		return b
	}

	path := b.opts.localPath()
	if _, err := os.Stat(path); err != nil {
		b.logger.Debug().Err(err).Str("path", path).Msg("no local settings")
		return b
	}

	raw, err := os.ReadFile(path)
	if err != nil {
		b.err = errors.Join(b.err, fmt.Errorf("%w: %s: %w", ErrLocalSource, path, err))
		return b
	}

	local, err := parseTOML(interpolate.Text(string(raw), b.env))
	if err != nil {
		b.err = errors.Join(b.err, fmt.Errorf("%w: %s: %w", ErrLocalSource, path, err))
		return b
	}

	// whole top-level keys are replaced, nested tables included
	maps.Copy(b.values, local)

	b.logger.Debug().
		Str("path", path).
		Strs("keys", slices.Sorted(maps.Keys(local))).
		Msg("local settings merged")
	return b
}

func (b *configBuilder) withInterpolation() *configBuilder {
	if b.err != nil {
		return b
	}

	b.values = interpolate.Value(b.values, b.env).(map[string]any)
	return b
}

func (b *configBuilder) withEnvOverrides() *configBuilder {
	if b.err != nil {
		return b
	}

	for _, key := range slices.Sorted(maps.Keys(b.values)) {
		raw, ok := b.env.LookupEnv(key)
		if !ok {
			continue
		}

		value, err := Coerce(b.values[key], raw)
		if err != nil {
			b.logger.Debug().Err(err).Str("key", key).Msg("keeping raw environment value")
		}
		b.values[key] = value
		b.logger.Debug().Str("key", key).Msg("overridden from environment")
	}

	return b
}
