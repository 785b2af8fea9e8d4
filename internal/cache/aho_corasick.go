// AIScout - AI Tool Discovery and Recommendation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/aiscout

package cache

import (
	"strings"
	"sync"
	"unicode"
	"unicode/utf8"
)

// AhoCorasick finds all occurrences of many patterns in a text in
// O(n + m + z) time: text length, total pattern length, match count.
//
//	ac := NewAhoCorasick()
//	ac.AddPattern("langchain", "LangChain")
//	ac.AddPattern("llama", "LLaMA")
//	ac.Build()
//	matches := ac.Search("Building agents with LangChain and Llama 3")
type AhoCorasick struct {
	mu            sync.RWMutex
	root          *acNode
	patterns      []Pattern
	keys          []string // normalized pattern text, parallel to patterns
	built         bool
	caseSensitive bool
	wholeWords    bool
}

type acNode struct {
	children map[rune]*acNode
	failure  *acNode
	output   []int // indices of patterns ending here
	depth    int
}

// Pattern is a search pattern with associated data.
type Pattern struct {
	Text string
	Data any
}

// Match is one pattern occurrence. Position and End are byte offsets into
// the (case-folded) text.
type Match struct {
	Pattern  string
	Data     any
	Position int
	End      int
}

// NewAhoCorasick creates a case-insensitive automaton that matches
// patterns anywhere in the text.
func NewAhoCorasick() *AhoCorasick {
	return &AhoCorasick{root: newACNode(0)}
}

// NewAhoCorasickCaseSensitive creates a case-sensitive automaton.
func NewAhoCorasickCaseSensitive() *AhoCorasick {
	return &AhoCorasick{root: newACNode(0), caseSensitive: true}
}

func newACNode(depth int) *acNode {
	return &acNode{
		children: make(map[rune]*acNode),
		depth:    depth,
	}
}

// SetWholeWords restricts matches to occurrences not surrounded by letters
// or digits, so "claude" does not match inside "claudette".
func (ac *AhoCorasick) SetWholeWords(on bool) {
	ac.mu.Lock()
	ac.wholeWords = on
	ac.mu.Unlock()
}

// AddPattern adds a pattern. Empty patterns are ignored. The automaton must
// be rebuilt before the pattern takes effect.
func (ac *AhoCorasick) AddPattern(pattern string, data any) {
	if strings.TrimSpace(pattern) == "" {
		return
	}

	ac.mu.Lock()
	defer ac.mu.Unlock()

	ac.built = false
	ac.patterns = append(ac.patterns, Pattern{Text: pattern, Data: data})
	ac.keys = append(ac.keys, ac.fold(pattern))
}

// AddPatterns adds several patterns sharing the same data.
func (ac *AhoCorasick) AddPatterns(patterns []string, data any) {
	for _, p := range patterns {
		ac.AddPattern(p, data)
	}
}

// Build constructs the trie and failure links.
func (ac *AhoCorasick) Build() {
	ac.mu.Lock()
	defer ac.mu.Unlock()

	if ac.built {
		return
	}

	ac.root = newACNode(0)
	for i, key := range ac.keys {
		ac.insert(i, key)
	}
	ac.buildFailureLinks()
	ac.built = true
}

func (ac *AhoCorasick) fold(s string) string {
	if ac.caseSensitive {
		return s
	}
	return strings.ToLower(s)
}

func (ac *AhoCorasick) insert(index int, key string) {
	node := ac.root
	for _, ch := range key {
		if node.children[ch] == nil {
			node.children[ch] = newACNode(node.depth + 1)
		}
		node = node.children[ch]
	}
	node.output = append(node.output, index)
}

// buildFailureLinks walks the trie breadth-first.
func (ac *AhoCorasick) buildFailureLinks() {
	queue := make([]*acNode, 0, len(ac.root.children))
	for _, child := range ac.root.children {
		child.failure = ac.root
		queue = append(queue, child)
	}

	for len(queue) > 0 {
		current := queue[0]
		queue = queue[1:]

		for ch, child := range current.children {
			queue = append(queue, child)

			fail := current.failure
			for fail != nil && fail.children[ch] == nil {
				fail = fail.failure
			}

			if fail == nil {
				child.failure = ac.root
			} else {
				child.failure = fail.children[ch]
				child.output = append(child.output, child.failure.output...)
			}
		}
	}
}

// Search returns every match in text, ordered by end position.
func (ac *AhoCorasick) Search(text string) []Match {
	var matches []Match
	ac.scan(text, func(m Match) bool {
		matches = append(matches, m)
		return true
	})
	return matches
}

// SearchFirst returns the match that ends first.
func (ac *AhoCorasick) SearchFirst(text string) (Match, bool) {
	var (
		first Match
		found bool
	)
	ac.scan(text, func(m Match) bool {
		first, found = m, true
		return false
	})
	return first, found
}

// Contains reports whether any pattern occurs in text.
func (ac *AhoCorasick) Contains(text string) bool {
	_, found := ac.SearchFirst(text)
	return found
}

// scan feeds matches to fn until it returns false.
func (ac *AhoCorasick) scan(text string, fn func(Match) bool) {
	ac.mu.RLock()
	defer ac.mu.RUnlock()

	if !ac.built || len(ac.patterns) == 0 {
		return
	}

	s := ac.fold(text)
	node := ac.root

	for i, ch := range s {
		for node != nil && node.children[ch] == nil {
			node = node.failure
		}
		if node == nil {
			node = ac.root
			continue
		}
		node = node.children[ch]

		end := i + utf8.RuneLen(ch)
		for _, idx := range node.output {
			start := end - len(ac.keys[idx])
			if ac.wholeWords && !isWordBoundary(s, start, end) {
				continue
			}
			m := Match{
				Pattern:  ac.patterns[idx].Text,
				Data:     ac.patterns[idx].Data,
				Position: start,
				End:      end,
			}
			if !fn(m) {
				return
			}
		}
	}
}

func isWordBoundary(s string, start, end int) bool {
	if start > 0 {
		r, _ := utf8.DecodeLastRuneInString(s[:start])
		if isWordRune(r) {
			return false
		}
	}
	if end < len(s) {
		r, _ := utf8.DecodeRuneInString(s[end:])
		if isWordRune(r) {
			return false
		}
	}
	return true
}

func isWordRune(r rune) bool {
	return unicode.IsLetter(r) || unicode.IsDigit(r) || r == '_'
}

// PatternCount returns the number of added patterns.
func (ac *AhoCorasick) PatternCount() int {
	ac.mu.RLock()
	defer ac.mu.RUnlock()
	return len(ac.patterns)
}

// Clear removes all patterns.
func (ac *AhoCorasick) Clear() {
	ac.mu.Lock()
	defer ac.mu.Unlock()

	ac.root = newACNode(0)
	ac.patterns = nil
	ac.keys = nil
	ac.built = false
}

// KeywordMatcher answers "which of these names does the text mention",
// matching whole words case-insensitively.
type KeywordMatcher struct {
	ac *AhoCorasick
}

// NewKeywordMatcher builds a matcher over keywords. Each match reports the
// keyword as given, so callers get canonical spellings back.
func NewKeywordMatcher(keywords []string) *KeywordMatcher {
	ac := NewAhoCorasick()
	ac.SetWholeWords(true)
	for _, k := range keywords {
		ac.AddPattern(k, k)
	}
	ac.Build()
	return &KeywordMatcher{ac: ac}
}

// Find returns the distinct keywords mentioned in text, ordered by where
// each first occurrence ends.
func (m *KeywordMatcher) Find(text string) []string {
	var (
		out  []string
		seen = make(map[string]bool)
	)
	for _, match := range m.ac.Search(text) {
		name, _ := match.Data.(string)
		if name == "" || seen[name] {
			continue
		}
		seen[name] = true
		out = append(out, name)
	}
	return out
}

// Contains reports whether text mentions any keyword.
func (m *KeywordMatcher) Contains(text string) bool {
	return m.ac.Contains(text)
}

// Len returns the number of keywords.
func (m *KeywordMatcher) Len() int {
	return m.ac.PatternCount()
}
