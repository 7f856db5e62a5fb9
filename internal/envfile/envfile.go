// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package envfile loads KEY=VALUE environment files into an
// [environ.Environment] without overriding variables that are already set.
//
// Files are applied in the order given, so the first definition of a variable
// wins across the pre-existing environment, the first file, then the next.
// Loading is best-effort: a missing or malformed file is reported in its
// [Result] and the remaining files are still processed. Callers decide how to
// log failures.
package envfile

import (
	"errors"
	"fmt"
	"io/fs"
	"path/filepath"
	"sort"

	"github.com/joho/godotenv"

	"github.com/MKhiriev/go-hydra-config/internal/environ"
)

// Result describes the outcome of loading a single file.
type Result struct {
	// Path is the file that was attempted.
	Path string
	// Applied lists the variables set from this file, sorted.
	Applied []string
	// Skipped lists the variables already present in the environment, sorted.
	Skipped []string
	// Err is non-nil when the file could not be read or parsed, or when a
	// variable could not be set.
	Err error
}

// Missing reports whether the file did not exist.
func (r Result) Missing() bool {
	return errors.Is(r.Err, fs.ErrNotExist)
}

// Load applies each file to env and returns one [Result] per distinct path.
// Paths are compared after [filepath.Clean]; a repeated path is loaded once.
func Load(env environ.Environment, paths ...string) []Result {
	results := make([]Result, 0, len(paths))
	seen := make(map[string]struct{}, len(paths))

	for _, p := range paths {
		clean := filepath.Clean(p)
		if _, dup := seen[clean]; dup {
			continue
		}
		seen[clean] = struct{}{}

		results = append(results, loadFile(env, clean))
	}

	return results
}

func loadFile(env environ.Environment, path string) Result {
	res := Result{Path: path}

	vars, err := godotenv.Read(path)
	if err != nil {
		res.Err = fmt.Errorf("error reading env file %s: %w", path, err)
		return res
	}

	keys := make([]string, 0, len(vars))
	for k := range vars {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	var setErrs []error
	for _, k := range keys {
		if _, exists := env.LookupEnv(k); exists {
			res.Skipped = append(res.Skipped, k)
			continue
		}
		if err := env.Setenv(k, vars[k]); err != nil {
			setErrs = append(setErrs, fmt.Errorf("error setting %s: %w", k, err))
			continue
		}
		res.Applied = append(res.Applied, k)
	}
	res.Err = errors.Join(setErrs...)

	return res
}
