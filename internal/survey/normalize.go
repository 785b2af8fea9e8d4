// AIScout - AI Tool Discovery and Recommendation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/aiscout

package survey

import (
	"html"
	"strings"
	"unicode/utf8"

	"github.com/microcosm-cc/bluemonday"
)

const (
	maxNameLength        = 200
	maxDescriptionLength = 2000
)

// stripPolicy removes every tag. Catalog text is stored as plain text and
// rendered by the dashboard, so no markup survives.
var stripPolicy = bluemonday.StrictPolicy()

// normalizeText strips markup, decodes entities, collapses whitespace and
// truncates to limit runes.
func normalizeText(s string, limit int) string {
	if s == "" {
		return ""
	}
	s = stripPolicy.Sanitize(s)
	s = html.UnescapeString(s)
	s = strings.Join(strings.Fields(s), " ")
	return truncateRunes(s, limit)
}

func normalizeName(s string) string {
	return normalizeText(s, maxNameLength)
}

func normalizeDescription(s string) string {
	return normalizeText(s, maxDescriptionLength)
}

func truncateRunes(s string, limit int) string {
	if limit <= 0 || utf8.RuneCountInString(s) <= limit {
		return s
	}
	runes := []rune(s)
	return strings.TrimSpace(string(runes[:limit-1])) + "…"
}

// httpsURL upgrades an http:// link to https://.
func httpsURL(u string) string {
	u = strings.TrimSpace(u)
	if strings.HasPrefix(u, "http://") {
		return "https://" + strings.TrimPrefix(u, "http://")
	}
	return u
}
