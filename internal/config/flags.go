// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import (
	"flag"
	"fmt"
	"io"
	"maps"
	"slices"
	"strings"
)

// Overrides collects repeated -set KEY=VALUE flags.
// It implements the flag.Value interface.
type Overrides map[string]string

// String returns the overrides as comma-separated KEY=VALUE pairs sorted by
// key.
func (o Overrides) String() string {
	pairs := make([]string, 0, len(o))
	for _, k := range slices.Sorted(maps.Keys(o)) {
		pairs = append(pairs, k+"="+o[k])
	}
	return strings.Join(pairs, ",")
}

// Set parses a single KEY=VALUE pair. The key must consist of upper-case
// letters, digits and underscores; the value may be empty and may contain
// '='.
func (o Overrides) Set(s string) error {
	key, value, ok := strings.Cut(s, "=")
	if !ok {
		return fmt.Errorf("%w: need KEY=VALUE, got %q", ErrInvalidOverride, s)
	}
	if !isKey(key) {
		return fmt.Errorf("%w: bad key %q", ErrInvalidOverride, key)
	}

	o[key] = value
	return nil
}

// Typed converts the raw override strings into values shaped like the ones
// they replace in cfg, using the same rules as environment overrides. Keys
// unknown to cfg stay strings.
func (o Overrides) Typed(cfg *Config) map[string]any {
	out := make(map[string]any, len(o))
	for k, raw := range o {
		existing, ok := cfg.Lookup(k)
		if !ok {
			out[k] = raw
			continue
		}
		// a failed coercion keeps the raw string
		out[k], _ = Coerce(existing, raw)
	}
	return out
}

// Flags holds the parsed command line of the hydra-config command.
type Flags struct {
	// Options are the loader options given on the command line.
	Options Options
	// Overrides are applied through [Config.Override] after loading.
	Overrides Overrides
	// Args are the remaining positional arguments.
	Args []string
}

// ParseFlags parses the hydra-config command line.
//
// Flags:
//
//	-settings  local settings file (overrides HYDRA_SETTINGS)
//	-defaults  default settings file (overrides HYDRA_DEFAULT_SETTINGS)
//	-root      project root holding the second .env file
//	-workdir   working directory for ./.env and ./config.toml
//	-set       KEY=VALUE override, repeatable
func ParseFlags(name string, args []string, output io.Writer) (*Flags, error) {
	f := &Flags{Overrides: Overrides{}}

	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.SetOutput(output)
	fs.StringVar(&f.Options.LocalPath, "settings", "", "Local settings file")
	fs.StringVar(&f.Options.DefaultPath, "defaults", "", "Default settings file")
	fs.StringVar(&f.Options.ProjectRoot, "root", "", "Project root holding a .env file")
	fs.StringVar(&f.Options.WorkDir, "workdir", "", "Working directory")
	fs.Var(f.Overrides, "set", "KEY=VALUE override (repeatable)")

	if err := fs.Parse(args); err != nil {
		return nil, err
	}

	f.Args = fs.Args()
	return f, nil
}

func isKey(s string) bool {
	if s == "" {
		return false
	}
	for i := 0; i < len(s); i++ {
		c := s[i]
		if !((c >= 'A' && c <= 'Z') || (c >= '0' && c <= '9') || c == '_') {
			return false
		}
	}
	return true
}
