// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package interpolate

import (
	"strings"

	"github.com/MKhiriev/go-hydra-config/internal/environ"
)

// Resolve returns the substitution for a placeholder token. Literal tokens
// resolve to their raw text.
func Resolve(tok Token, env environ.Environment) string {
	if tok.Kind == KindLiteral {
		return tok.Raw
	}
	if v, ok := env.LookupEnv(tok.Name); ok {
		return v
	}
	if tok.HasDefault() {
		return tok.Default
	}
	return ""
}

// Text replaces every placeholder in text with its resolved value.
func Text(text string, env environ.Environment) string {
	if strings.IndexByte(text, '$') < 0 {
		return text
	}

	tokens := Tokenize(text)
	var b strings.Builder
	b.Grow(len(text))
	for _, tok := range tokens {
		b.WriteString(Resolve(tok, env))
	}
	return b.String()
}

// Value interpolates structured configuration values. Strings go through
// [Text]; maps are rebuilt with the same keys and sequences with the same
// order and length, interpolating each element. Any other value is returned
// unchanged.
func Value(v any, env environ.Environment) any {
	switch val := v.(type) {
	case string:
		return Text(val, env)
	case map[string]any:
		out := make(map[string]any, len(val))
		for k, item := range val {
			out[k] = Value(item, env)
		}
		return out
	case []any:
		out := make([]any, len(val))
		for i, item := range val {
			out[i] = Value(item, env)
		}
		return out
	case []string:
		out := make([]string, len(val))
		for i, item := range val {
			out[i] = Text(item, env)
		}
		return out
	case []map[string]any:
		out := make([]map[string]any, len(val))
		for i, item := range val {
			out[i] = Value(item, env).(map[string]any)
		}
		return out
	default:
		return v
	}
}
