// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package config resolves the process configuration from layered sources into
// a single typed key/value view.
//
// Sources are applied in the following order (later sources win):
//  1. Bundled defaults (config_default.toml, embedded in the binary)
//  2. Local override file (HYDRA_SETTINGS, else ./config.toml), optional
//  3. Process environment variables named after existing top-level keys
//
// Before any of that, ./.env and <project root>/.env are loaded into the
// process environment without overriding variables that are already set.
// Both TOML sources may reference environment variables through ${NAME},
// ${NAME:-default} and $NAME placeholders, see package interpolate.
//
// The local file replaces whole top-level keys; nested tables are not merged.
// Environment overrides are coerced to the type of the value they replace.
// After every load and every [Config.Override] the pool invariant
// MAX_POOL_SIZE >= BATCH_SIZE is checked.
//
// The main entry points are [Load] for explicit construction and [Global] for
// a lazily initialized process-wide instance.
package config
