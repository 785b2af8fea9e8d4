// AIScout - AI Tool Discovery and Recommendation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/aiscout

package models

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
)

// Well-known metadata keys written by the source adapters.
const (
	MetaStars          = "stars"
	MetaForks          = "forks"
	MetaDownloads      = "downloads"
	MetaLikes          = "likes"
	MetaViews          = "views"
	MetaLanguage       = "language"
	MetaTopics         = "topics"
	MetaTags           = "tags"
	MetaAuthor         = "author"
	MetaAuthors        = "authors"
	MetaOwner          = "owner"
	MetaLicense        = "license"
	MetaPipelineTag    = "pipeline_tag"
	MetaLibrary        = "library_name"
	MetaChannel        = "channel"
	MetaVideoID        = "video_id"
	MetaMentionedTools = "mentioned_tools"
	MetaPublishedAt    = "published_at"
	MetaArXivID        = "arxiv_id"
	MetaPrimaryCat     = "primary_category"
	MetaPDFURL         = "pdf_url"
	MetaPushedAt       = "pushed_at"
)

// Metadata is the open, source-specific detail attached to a Tool.
//
// Values are limited to string, int64, float64, bool, []string and []float64.
// After a JSON round trip numbers come back as float64 and lists as []any, so
// the typed getters accept both shapes.
type Metadata map[string]any

// SetString stores s under key, skipping empty strings.
func (m Metadata) SetString(key, s string) {
	if s != "" {
		m[key] = s
	}
}

// SetInt stores n under key.
func (m Metadata) SetInt(key string, n int64) { m[key] = n }

// SetFloat stores f under key.
func (m Metadata) SetFloat(key string, f float64) { m[key] = f }

// SetBool stores b under key.
func (m Metadata) SetBool(key string, b bool) { m[key] = b }

// SetStrings stores a copy of ss under key, skipping empty lists.
func (m Metadata) SetStrings(key string, ss []string) {
	if len(ss) == 0 {
		return
	}
	m[key] = append([]string(nil), ss...)
}

// String returns the value under key rendered as a string.
func (m Metadata) String(key string) string {
	switch v := m[key].(type) {
	case string:
		return v
	case nil:
		return ""
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	case int64:
		return strconv.FormatInt(v, 10)
	case bool:
		return strconv.FormatBool(v)
	default:
		return fmt.Sprint(v)
	}
}

// Int returns the numeric value under key, or 0.
func (m Metadata) Int(key string) int64 {
	switch v := m[key].(type) {
	case int64:
		return v
	case int:
		return int64(v)
	case float64:
		return int64(v)
	case string:
		n, _ := strconv.ParseInt(v, 10, 64)
		return n
	default:
		return 0
	}
}

// Float returns the numeric value under key, or 0.
func (m Metadata) Float(key string) float64 {
	switch v := m[key].(type) {
	case float64:
		return v
	case int64:
		return float64(v)
	case int:
		return float64(v)
	default:
		return 0
	}
}

// Strings returns the list under key. A plain string is returned as a one-element list.
func (m Metadata) Strings(key string) []string {
	switch v := m[key].(type) {
	case []string:
		return v
	case []any:
		out := make([]string, 0, len(v))
		for _, item := range v {
			out = append(out, fmt.Sprint(item))
		}
		return out
	case string:
		if v == "" {
			return nil
		}
		return []string{v}
	default:
		return nil
	}
}

// Validate rejects values outside the supported scalar and list types.
func (m Metadata) Validate() error {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	for _, k := range keys {
		if strings.TrimSpace(k) == "" {
			return fmt.Errorf("metadata: empty key")
		}
		switch v := m[k].(type) {
		case string, int64, int, float64, bool, []string, []float64, nil:
		case []any:
			for _, item := range v {
				switch item.(type) {
				case string, float64, bool:
				default:
					return fmt.Errorf("metadata %q: unsupported list element %T", k, item)
				}
			}
		default:
			return fmt.Errorf("metadata %q: unsupported value type %T", k, v)
		}
	}
	return nil
}
