// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import (
	"fmt"
	"strconv"
	"strings"
)

// truthy holds the lower-cased spellings accepted as boolean true.
var truthy = map[string]bool{
	"true": true,
	"1":    true,
	"t":    true,
	"y":    true,
	"yes":  true,
}

// Coerce converts raw to the type of existing:
//
//	sequence → raw split on commas ("" gives an empty sequence)
//	bool     → true iff lower-cased raw is one of true, 1, t, y, yes
//	integer  → parsed base-10 int64
//	float    → parsed float64
//	other    → raw unchanged
//
// When an integer or float cannot be parsed, raw is returned unchanged
// together with an error wrapping [ErrCoercion]; the returned value is still
// the one to use.
func Coerce(existing any, raw string) (any, error) {
	switch existing.(type) {
	case []any, []string:
		if raw == "" {
			return []string{}, nil
		}
		return strings.Split(raw, ","), nil
	case bool:
		return truthy[strings.ToLower(raw)], nil
	case int, int8, int16, int32, int64, uint, uint8, uint16, uint32, uint64:
		n, err := strconv.ParseInt(strings.TrimSpace(raw), 10, 64)
		if err != nil {
			return raw, fmt.Errorf("%w: %q is not an integer", ErrCoercion, raw)
		}
		return n, nil
	case float32, float64:
		f, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
		if err != nil {
			return raw, fmt.Errorf("%w: %q is not a number", ErrCoercion, raw)
		}
		return f, nil
	default:
		return raw, nil
	}
}
