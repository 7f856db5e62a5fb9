// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import (
	"context"
	"sync"

	"github.com/MKhiriev/go-hydra-config/internal/environ"
	"github.com/MKhiriev/go-hydra-config/internal/logger"
)

// Process-wide instance. Written only inside globalOnce or by the test hooks.
var (
	global     *Config
	globalErr  error
	globalOnce sync.Once
	globalMu   sync.RWMutex
)

// Init loads the process-wide configuration. It must be called at most once,
// before concurrent use begins; later calls return the existing instance
// together with [ErrAlreadyInitialized].
func Init(env environ.Environment, log *logger.Logger, opts Options) (*Config, error) {
	ran := false
	globalOnce.Do(func() {
		ran = true
		cfg, err := Load(env, log, opts)
		globalMu.Lock()
		global, globalErr = cfg, err
		globalMu.Unlock()
	})

	globalMu.RLock()
	defer globalMu.RUnlock()
	if !ran {
		if globalErr != nil {
			return nil, globalErr
		}
		return global, ErrAlreadyInitialized
	}
	return global, globalErr
}

// Global returns the process-wide configuration, loading it from the real
// environment with default options on first use when [Init] was not called.
// A load failure is cached and returned on every call.
func Global() (*Config, error) {
	globalOnce.Do(func() {
		cfg, err := Load(environ.OS(), logger.NewLogger("hydra-config"), Options{})
		globalMu.Lock()
		global, globalErr = cfg, err
		globalMu.Unlock()
	})

	globalMu.RLock()
	defer globalMu.RUnlock()
	return global, globalErr
}

// SetGlobal installs cfg as the process-wide configuration and prevents any
// later lazy load. Intended for tests.
func SetGlobal(cfg *Config) {
	globalOnce.Do(func() {})

	globalMu.Lock()
	defer globalMu.Unlock()
	global, globalErr = cfg, nil
}

// ResetGlobalForTesting clears the process-wide configuration so the next
// [Init] or [Global] call loads again. It must only be used in tests.
func ResetGlobalForTesting() {
	globalMu.Lock()
	defer globalMu.Unlock()
	global, globalErr = nil, nil
	globalOnce = sync.Once{}
}

type contextKey string

func (c contextKey) String() string {
	return string(c)
}

var configCtxKey = contextKey("config")

// WithContext returns a copy of ctx carrying cfg.
func WithContext(ctx context.Context, cfg *Config) context.Context {
	return context.WithValue(ctx, configCtxKey, cfg)
}

// FromContext returns the *Config stored by [WithContext], if any.
func FromContext(ctx context.Context) (*Config, bool) {
	cfg, ok := ctx.Value(configCtxKey).(*Config)
	return cfg, ok && cfg != nil
}
