// AIScout - AI Tool Discovery and Recommendation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/aiscout

package survey

import (
	"context"
	"encoding/xml"
	"fmt"
	"net/url"
	"regexp"
	"strconv"
	"strings"

	"github.com/tomtom215/aiscout/internal/config"
	"github.com/tomtom215/aiscout/internal/models"
)

type arxivFeed struct {
	XMLName xml.Name     `xml:"feed"`
	Entries []arxivEntry `xml:"entry"`
}

type arxivEntry struct {
	ID        string        `xml:"id"`
	Title     string        `xml:"title"`
	Summary   string        `xml:"summary"`
	Published string        `xml:"published"`
	Authors   []arxivAuthor `xml:"author"`
	Links     []arxivLink   `xml:"link"`
	Primary   struct {
		Term string `xml:"term,attr"`
	} `xml:"http://arxiv.org/schemas/atom primary_category"`
}

type arxivAuthor struct {
	Name string `xml:"name"`
}

type arxivLink struct {
	Href  string `xml:"href,attr"`
	Rel   string `xml:"rel,attr"`
	Type  string `xml:"type,attr"`
	Title string `xml:"title,attr"`
}

// arxivVersion matches the trailing version of an abs URL or id ("v2").
var arxivVersion = regexp.MustCompile(`v\d+$`)

// arxivCategories is the fallback when the title and abstract match no
// keyword.
var arxivCategories = map[string]string{
	"cs.CL":   CategoryNLP,
	"cs.CV":   CategoryVision,
	"cs.RO":   CategoryRobotics,
	"cs.MA":   CategoryAgent,
	"cs.SD":   CategoryAudio,
	"eess.AS": CategoryAudio,
	"eess.IV": CategoryVision,
}

// ArXivAdapter surveys recent preprints, one arXiv category per query
// dimension. The provider asks for at least three seconds between calls, so
// the fetcher's limiter is spaced by the configured delay.
type ArXivAdapter struct {
	Base
	baseURL    string
	limit      int
	categories []string
}

// NewArXivAdapter creates the preprint adapter.
func NewArXivAdapter(cfg config.ArXivConfig, sc config.SurveyConfig, store Store) *ArXivAdapter {
	return &ArXivAdapter{
		Base:       newBase(models.SourceArXiv, store, newSourceFetcher(models.SourceArXiv, sc, cfg.Delay), cfg.Delay),
		baseURL:    strings.TrimRight(cfg.BaseURL, "/"),
		limit:      cfg.Limit,
		categories: cfg.Categories,
	}
}

// Survey implements Adapter.
func (a *ArXivAdapter) Survey(ctx context.Context) (*models.SurveyResult, error) {
	result := newResult()

	for i, cat := range a.categories {
		if err := a.pause(ctx, i); err != nil {
			return result, err
		}

		entries, err := a.fetchCategory(ctx, cat)
		if err != nil {
			if ctx.Err() != nil {
				return result, ctx.Err()
			}
			a.dimensionError(result, cat, err)
			continue
		}

		for _, e := range entries {
			tool := a.toTool(e, cat)
			if tool == nil {
				continue
			}
			if err := a.saveTool(ctx, tool, &result.Stats); err != nil {
				a.dimensionError(result, cat, err)
				continue
			}
			result.Tools = append(result.Tools, tool)
		}
		a.log.Debug().Str("category", cat).Int("papers", len(entries)).Msg("Category surveyed")
	}
	return result, nil
}

func (a *ArXivAdapter) fetchCategory(ctx context.Context, cat string) ([]arxivEntry, error) {
	q := url.Values{}
	q.Set("search_query", "cat:"+cat)
	q.Set("sortBy", "submittedDate")
	q.Set("sortOrder", "descending")
	q.Set("max_results", strconv.Itoa(a.limit))

	body, err := a.fetcher.FetchWithRetry(ctx, a.baseURL+"/api/query?"+q.Encode(), nil)
	if err != nil {
		return nil, err
	}
	return parseArXivFeed(body)
}

func parseArXivFeed(body []byte) ([]arxivEntry, error) {
	var feed arxivFeed
	if err := xml.Unmarshal(body, &feed); err != nil {
		return nil, fmt.Errorf("failed to parse atom feed: %w", err)
	}
	// The API reports query errors as a single entry under /api/errors.
	if len(feed.Entries) == 1 && strings.Contains(feed.Entries[0].ID, "/api/errors") {
		return nil, fmt.Errorf("arxiv query error: %s", strings.TrimSpace(feed.Entries[0].Summary))
	}
	return feed.Entries, nil
}

// toTool returns nil for entries without a usable link.
func (a *ArXivAdapter) toTool(e arxivEntry, cat string) *models.Tool {
	absURL, pdfURL := "", ""
	for _, l := range e.Links {
		switch {
		case l.Title == "pdf" || l.Type == "application/pdf":
			pdfURL = httpsURL(l.Href)
		case l.Rel == "alternate" && absURL == "":
			absURL = httpsURL(l.Href)
		}
	}
	if absURL == "" {
		absURL = httpsURL(e.ID)
	}
	if absURL == "" {
		return nil
	}

	// Revisions of one paper share a catalog entry.
	absURL = arxivVersion.ReplaceAllString(absURL, "")
	arxivID := absURL
	if i := strings.LastIndex(absURL, "/abs/"); i >= 0 {
		arxivID = absURL[i+len("/abs/"):]
	}

	title := normalizeName(e.Title)
	summary := normalizeDescription(e.Summary)
	text := title + " " + summary

	primary := e.Primary.Term
	if primary == "" {
		primary = cat
	}
	category := CategorizeByKeywords(text)
	if category == CategoryGeneral {
		if c, ok := arxivCategories[primary]; ok {
			category = c
		}
	}

	authors := make([]string, 0, len(e.Authors))
	for _, au := range e.Authors {
		if name := strings.TrimSpace(au.Name); name != "" {
			authors = append(authors, name)
		}
	}

	meta := models.Metadata{}
	meta.SetStrings(models.MetaAuthors, authors)
	meta.SetString(models.MetaArXivID, arxivID)
	meta.SetString(models.MetaPrimaryCat, primary)
	meta.SetString(models.MetaPublishedAt, strings.TrimSpace(e.Published))
	meta.SetString(models.MetaPDFURL, pdfURL)

	return &models.Tool{
		Name:            title,
		Description:     summary,
		URL:             absURL,
		Category:        category,
		Subcategory:     primary,
		Capabilities:    ExtractCapabilities(text),
		APIAvailable:    false,
		OpenSource:      false,
		PricingModel:    "free",
		PopularityScore: 0,
		Metadata:        meta,
	}
}
