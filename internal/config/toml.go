// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import (
	_ "embed"
	"fmt"

	"github.com/BurntSushi/toml"
)

//go:embed config_default.toml
var defaultSettings []byte

// parseTOML decodes TOML text into a generic map. Integers decode as int64,
// floats as float64, arrays as []any and tables as map[string]any.
func parseTOML(text string) (map[string]any, error) {
	values := make(map[string]any)
	if _, err := toml.Decode(text, &values); err != nil {
		return nil, fmt.Errorf("error decoding toml: %w", err)
	}

	return values, nil
}
