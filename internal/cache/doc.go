// AIScout - AI Tool Discovery and Recommendation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/aiscout

/*
Package cache provides the in-memory structures shared by the API and the
survey adapters.

# TTL cache

Cache is a thread-safe key/value store with per-entry expiration. The API
layer keeps serialized read results in it (tool listings, search hits,
stats) and clears it after every survey cycle and profile write, so a
dashboard never shows a catalog older than one TTL.

	c := cache.New(5 * time.Minute)
	defer c.Close()

	key := cache.GenerateKey("search", params)
	if v, ok := c.Get(key); ok {
	    return v.([]*models.Tool), nil
	}

Expired entries are dropped lazily on Get and by a background sweep.

# Keyword matching

AhoCorasick finds every occurrence of many patterns in one pass over the
text. Matching is case-insensitive by default and can be restricted to
whole words, which the video adapter uses to find tool names such as
"Claude" or "LangChain" in titles without matching inside longer words.
KeywordMatcher wraps the automaton for the common "which of these names
does this text mention" question.
*/
package cache
