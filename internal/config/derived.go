// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import (
	"regexp"
	"runtime/debug"
)

const (
	// AppName is injected as APP_NAME and used as the user agent of last
	// resort.
	AppName = "udata-hydra"
	// FallbackVersion is injected as APP_VERSION when no version is known.
	FallbackVersion = "0.0.0"
)

// readBuildInfo is swapped in tests.
var readBuildInfo = debug.ReadBuildInfo

// versionSegment matches a '/' followed by a run of characters that are
// neither '/' nor whitespace, ending at whitespace or at the end of the text.
var versionSegment = regexp.MustCompile(`/[^/\s]+(\s|$)`)

// FullUserAgent returns template with its first version segment replaced by
// "/"+version, e.g. "hydra/1.0 (+http://x)" becomes "hydra/2.3.4 (+http://x)".
// When template has no such segment, "/"+version is appended. When either
// template or version is empty, [AppName] is returned.
func FullUserAgent(template, version string) string {
	if template == "" || version == "" {
		return AppName
	}

	loc := versionSegment.FindStringSubmatchIndex(template)
	if loc == nil {
		return template + "/" + version
	}

	// loc[2] is where the terminating whitespace (or end) begins.
	return template[:loc[0]] + "/" + version + template[loc[2]:]
}

// resolveVersion picks the application version: the explicit build-time
// value, else the main module version from build information, else
// FallbackVersion. The second result reports whether the fallback was used.
func resolveVersion(explicit string) (string, bool) {
	if explicit != "" {
		return explicit, false
	}

	if info, ok := readBuildInfo(); ok && info != nil {
		if v := info.Main.Version; v != "" && v != "(devel)" {
			return v, false
		}
	}

	return FallbackVersion, true
}
