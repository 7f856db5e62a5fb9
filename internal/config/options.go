// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import (
	"fmt"
	"os"
	"path/filepath"

	"dario.cat/mergo"
	"github.com/caarlos0/env/v11"

	"github.com/MKhiriev/go-hydra-config/internal/environ"
)

const (
	// LocalSettingsFile is the override file looked up in the working
	// directory when HYDRA_SETTINGS is not set.
	LocalSettingsFile = "config.toml"
	// EnvFileName is the environment file looked up in the working directory
	// and in the project root.
	EnvFileName = ".env"
)

// Options controls where the loader looks for its sources.
//
// Options are layered: built-in defaults, then values taken from the
// environment (see the `env` tags), then the non-zero fields passed by the
// caller.
type Options struct {
	// DefaultPath replaces the embedded defaults with a file on disk. The file
	// must exist and parse.
	// Env: HYDRA_DEFAULT_SETTINGS
	DefaultPath string `env:"HYDRA_DEFAULT_SETTINGS"`

	// LocalPath is the optional local override file. When empty,
	// <WorkDir>/config.toml is used.
	// Env: HYDRA_SETTINGS
	LocalPath string `env:"HYDRA_SETTINGS"`

	// ProjectRoot is the directory holding the second .env file. Defaults to
	// the directory of the running executable.
	// Env: HYDRA_PROJECT_ROOT
	ProjectRoot string `env:"HYDRA_PROJECT_ROOT"`

	// WorkDir is the directory holding the first .env file and the fallback
	// local override file. Defaults to the current working directory.
	WorkDir string

	// Version is the application version, usually injected at build time
	// with -ldflags. It takes precedence over module build information.
	Version string

	// Defaults, when non-empty, is used as the default TOML source instead of
	// DefaultPath or the embedded file.
	Defaults []byte
}

// localPath returns the resolved local override path.
func (o Options) localPath() string {
	if o.LocalPath != "" {
		return o.LocalPath
	}
	return filepath.Join(o.WorkDir, LocalSettingsFile)
}

// envFilePaths returns the .env locations in load order.
func (o Options) envFilePaths() []string {
	return []string{
		filepath.Join(o.WorkDir, EnvFileName),
		filepath.Join(o.ProjectRoot, EnvFileName),
	}
}

func defaultOptions() Options {
	workDir, err := os.Getwd()
	if err != nil {
		workDir = "."
	}

	projectRoot := workDir
	if exe, err := os.Executable(); err == nil {
		projectRoot = filepath.Dir(exe)
	}

	return Options{
		WorkDir:     workDir,
		ProjectRoot: projectRoot,
	}
}

// parseEnvOptions populates Options from environment using the caarlos0/env
// library. Only fields carrying an `env` tag are read.
func parseEnvOptions(environment environ.Environment) (Options, error) {
	var opts Options
	err := env.ParseWithOptions(&opts, env.Options{
		Environment: env.ToMap(environment.Environ()),
	})
	if err != nil {
		return Options{}, fmt.Errorf("error getting env options: %w", err)
	}

	return opts, nil
}

// resolveOptions merges built-in defaults, environment-provided options and
// explicit options, in increasing order of precedence.
func resolveOptions(environment environ.Environment, explicit Options) (Options, error) {
	resolved := defaultOptions()

	fromEnv, err := parseEnvOptions(environment)
	if err != nil {
		return Options{}, err
	}

	for _, layer := range []Options{fromEnv, explicit} {
		if err := mergo.Merge(&resolved, layer, mergo.WithOverride); err != nil {
			return Options{}, fmt.Errorf("error merging options: %w", err)
		}
	}

	return resolved, nil
}
