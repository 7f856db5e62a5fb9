// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package environ abstracts access to the process environment so that the
// configuration engine can be driven either by the real environment ([OS]) or
// by an in-memory variable set ([Map]) in tests and programmatic resolution.
package environ

import (
	"os"
	"sort"
)

//go:generate mockgen -source=environ.go -destination=../mock/environment_mock.go -package=mock

// Environment is the set of environment variables consulted while resolving
// configuration.
type Environment interface {
	// LookupEnv returns the value of key and whether it is present. A variable
	// that is set to the empty string is present.
	LookupEnv(key string) (string, bool)

	// Setenv sets key to value.
	Setenv(key, value string) error

	// Environ returns a copy of all variables in "KEY=VALUE" form.
	Environ() []string
}

type osEnvironment struct{}

// OS returns an [Environment] backed by the real process environment.
func OS() Environment {
	return osEnvironment{}
}

func (osEnvironment) LookupEnv(key string) (string, bool) {
	return os.LookupEnv(key)
}

func (osEnvironment) Setenv(key, value string) error {
	return os.Setenv(key, value)
}

func (osEnvironment) Environ() []string {
	return os.Environ()
}

// Map is an in-memory [Environment]. The zero value is not usable; create one
// with a map literal or make.
type Map map[string]string

func (m Map) LookupEnv(key string) (string, bool) {
	v, ok := m[key]
	return v, ok
}

func (m Map) Setenv(key, value string) error {
	m[key] = value
	return nil
}

// Environ returns the variables sorted by key.
func (m Map) Environ() []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	out := make([]string, 0, len(keys))
	for _, k := range keys {
		out = append(out, k+"="+m[k])
	}
	return out
}
