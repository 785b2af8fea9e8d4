// AIScout - AI Tool Discovery and Recommendation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/aiscout

package survey

import (
	"math"
	"regexp"
	"strings"

	"github.com/tomtom215/aiscout/internal/cache"
	"github.com/tomtom215/aiscout/internal/models"
)

// Category names of the fixed taxonomy.
const (
	CategoryLLM         = "LLM"
	CategoryVision      = "Computer Vision"
	CategoryNLP         = "NLP"
	CategoryAgent       = "Agent"
	CategoryAudio       = "Audio"
	CategoryRobotics    = "Robotics"
	CategoryMLFramework = "ML Framework"
	CategoryDataScience = "Data Science"
	CategoryMLOps       = "MLOps"
	CategoryGeneral     = models.CategoryGeneral
)

const maxPopularityScore = 100.0

// PopularityMetrics are the raw engagement counts a source reports.
type PopularityMetrics struct {
	Stars     int64
	Downloads int64
	Views     int64
	Likes     int64
}

// CalculatePopularityScore combines log-scaled counts:
// 10*log10(stars+1) + 5*log10(downloads+1) + 2*log10(views+1) + 3*log10(likes+1),
// clamped to [0, 100]. Negative counts are treated as zero.
func CalculatePopularityScore(m PopularityMetrics) float64 {
	score := 10*logCount(m.Stars) +
		5*logCount(m.Downloads) +
		2*logCount(m.Views) +
		3*logCount(m.Likes)
	return math.Max(0, math.Min(maxPopularityScore, score))
}

func logCount(n int64) float64 {
	if n <= 0 {
		return 0
	}
	return math.Log10(float64(n) + 1)
}

// categoryTable is a priority list. The first category with a keyword
// contained in the text wins.
var categoryTable = []struct {
	category string
	keywords []string
}{
	{CategoryLLM, []string{"llm", "large language model", "language model", "gpt", "chatbot", "chat", "text generation", "instruct"}},
	{CategoryVision, []string{"computer vision", "vision", "image", "object detection", "segmentation", "ocr", "diffusion", "video generation"}},
	{CategoryNLP, []string{"nlp", "natural language", "sentiment", "translation", "summarization", "named entity", "tokeniz", "text classification"}},
	{CategoryAgent, []string{"agent", "autonomous", "multi-agent", "tool use", "function calling"}},
	{CategoryAudio, []string{"audio", "speech", "voice", "music", "text-to-speech", "transcription"}},
	{CategoryRobotics, []string{"robot", "embodied", "manipulation", "locomotion"}},
	{CategoryMLFramework, []string{"framework", "pytorch", "tensorflow", "jax", "keras", "deep learning library", "training"}},
	{CategoryDataScience, []string{"data science", "analytics", "pandas", "dataframe", "visualization", "dataset"}},
	{CategoryMLOps, []string{"mlops", "deployment", "model serving", "monitoring", "experiment tracking", "pipeline", "inference server"}},
}

// categoryMatcher maps every keyword to its category's priority.
var categoryMatcher = func() *cache.AhoCorasick {
	ac := cache.NewAhoCorasick()
	for priority, row := range categoryTable {
		for _, kw := range row.keywords {
			ac.AddPattern(kw, priority)
		}
	}
	ac.Build()
	return ac
}()

// CategorizeByKeywords returns the highest-priority category whose keywords
// occur in text, or "General AI" when none do.
func CategorizeByKeywords(text string) string {
	best := len(categoryTable)
	for _, m := range categoryMatcher.Search(text) {
		if p, ok := m.Data.(int); ok && p < best {
			best = p
		}
	}
	if best == len(categoryTable) {
		return CategoryGeneral
	}
	return categoryTable[best].category
}

// capabilityPatterns maps canonical capability labels to the phrases that
// indicate them.
var capabilityPatterns = []struct {
	label string
	re    *regexp.Regexp
}{
	{"text generation", regexp.MustCompile(`(?i)\b(text[\s-]generation|generat(e|es|ing|ive) text|language generation)\b`)},
	{"image generation", regexp.MustCompile(`(?i)\b(image[\s-]generation|text[\s-]to[\s-]image|generat(e|es|ing) images?)\b`)},
	{"code generation", regexp.MustCompile(`(?i)\b(code[\s-]generation|code[\s-]completion|generat(e|es|ing) code)\b`)},
	{"classification", regexp.MustCompile(`(?i)\bclassif(y|ies|ier|iers|ication)\b`)},
	{"object detection", regexp.MustCompile(`(?i)\b(object[\s-]detection|detect(s|ing)? objects)\b`)},
	{"detection", regexp.MustCompile(`(?i)\b(anomaly|face|fraud|language)[\s-]detection\b`)},
	{"translation", regexp.MustCompile(`(?i)\b(translation|translat(e|es|ing)|machine translation)\b`)},
	{"summarization", regexp.MustCompile(`(?i)\b(summari[sz]ation|summari[sz](e|es|ing))\b`)},
	{"question answering", regexp.MustCompile(`(?i)\b(question[\s-]answering|q&a|answer(s|ing)? questions)\b`)},
	{"embedding", regexp.MustCompile(`(?i)\b(embeddings?|feature[\s-]extraction|sentence[\s-]similarity)\b`)},
	{"semantic search", regexp.MustCompile(`(?i)\b(semantic[\s-]search|vector[\s-]search|retrieval)\b`)},
	{"fine-tuning", regexp.MustCompile(`(?i)\b(fine[\s-]?tun(e|es|ed|ing)|lora|peft)\b`)},
	{"inference", regexp.MustCompile(`(?i)\b(inference|serving)\b`)},
	{"speech recognition", regexp.MustCompile(`(?i)\b(speech[\s-]recognition|speech[\s-]to[\s-]text|automatic[\s-]speech[\s-]recognition|transcri(be|ption))\b`)},
}

// ExtractCapabilities returns the distinct capability labels found in text,
// in table order.
func ExtractCapabilities(text string) []string {
	if strings.TrimSpace(text) == "" {
		return nil
	}
	var out []string
	for _, p := range capabilityPatterns {
		if p.re.MatchString(text) {
			out = append(out, p.label)
		}
	}
	return out
}

// mergeCapabilities unions capability lists, keeping first-seen order.
func mergeCapabilities(lists ...[]string) []string {
	seen := make(map[string]bool)
	var out []string
	for _, l := range lists {
		for _, c := range l {
			c = strings.ToLower(strings.TrimSpace(c))
			if c == "" || seen[c] {
				continue
			}
			seen[c] = true
			out = append(out, c)
		}
	}
	return out
}

// Categories returns the taxonomy in priority order, General AI last.
func Categories() []string {
	out := make([]string, 0, len(categoryTable)+1)
	for _, row := range categoryTable {
		out = append(out, row.category)
	}
	return append(out, CategoryGeneral)
}
