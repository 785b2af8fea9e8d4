// AIScout - AI Tool Discovery and Recommendation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/aiscout

package survey

import (
	"context"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/tomtom215/aiscout/internal/config"
	"github.com/tomtom215/aiscout/internal/models"
)

type ghSearchResponse struct {
	TotalCount int      `json:"total_count"`
	Items      []ghRepo `json:"items"`
}

type ghRepo struct {
	FullName    string    `json:"full_name"`
	HTMLURL     string    `json:"html_url"`
	Description string    `json:"description"`
	Homepage    string    `json:"homepage"`
	Stars       int64     `json:"stargazers_count"`
	Forks       int64     `json:"forks_count"`
	Language    string    `json:"language"`
	Topics      []string  `json:"topics"`
	Archived    bool      `json:"archived"`
	PushedAt    time.Time `json:"pushed_at"`
	Owner       struct {
		Login string `json:"login"`
	} `json:"owner"`
	License *struct {
		SPDXID string `json:"spdx_id"`
	} `json:"license"`
}

// GitHubAdapter surveys repository search, one topic per query dimension,
// most starred first.
type GitHubAdapter struct {
	Base
	baseURL string
	token   string
	limit   int
	topics  []string
}

// NewGitHubAdapter creates the code host adapter. The token is optional;
// without it GitHub applies the unauthenticated search limit.
func NewGitHubAdapter(cfg config.GitHubConfig, sc config.SurveyConfig, store Store) *GitHubAdapter {
	return &GitHubAdapter{
		Base:    newBase(models.SourceGitHub, store, newSourceFetcher(models.SourceGitHub, sc, 0), cfg.Delay),
		baseURL: strings.TrimRight(cfg.BaseURL, "/"),
		token:   cfg.Token,
		limit:   cfg.Limit,
		topics:  cfg.Topics,
	}
}

// Survey implements Adapter.
func (a *GitHubAdapter) Survey(ctx context.Context) (*models.SurveyResult, error) {
	result := newResult()

	for i, topic := range a.topics {
		if err := a.pause(ctx, i); err != nil {
			return result, err
		}

		repos, err := a.searchTopic(ctx, topic)
		if err != nil {
			if ctx.Err() != nil {
				return result, ctx.Err()
			}
			a.dimensionError(result, topic, err)
			continue
		}

		for _, r := range repos {
			if r.Archived || r.HTMLURL == "" {
				continue
			}
			tool := a.toTool(r, topic)
			if err := a.saveTool(ctx, tool, &result.Stats); err != nil {
				a.dimensionError(result, topic, err)
				continue
			}
			result.Tools = append(result.Tools, tool)
		}
		a.log.Debug().Str("topic", topic).Int("repos", len(repos)).Msg("Topic surveyed")
	}
	return result, nil
}

func (a *GitHubAdapter) searchTopic(ctx context.Context, topic string) ([]ghRepo, error) {
	q := url.Values{}
	q.Set("q", "topic:"+topic)
	q.Set("sort", "stars")
	q.Set("order", "desc")
	q.Set("per_page", strconv.Itoa(a.limit))

	header := http.Header{}
	header.Set("Accept", "application/vnd.github+json")
	header.Set("X-GitHub-Api-Version", "2022-11-28")
	if a.token != "" {
		header.Set("Authorization", "Bearer "+a.token)
	}

	var resp ghSearchResponse
	if err := a.fetcher.FetchJSON(ctx, a.baseURL+"/search/repositories?"+q.Encode(), header, &resp); err != nil {
		return nil, err
	}
	return resp.Items, nil
}

func (a *GitHubAdapter) toTool(r ghRepo, topic string) *models.Tool {
	desc := normalizeDescription(r.Description)
	topicText := strings.ReplaceAll(strings.Join(r.Topics, " "), "-", " ")
	text := r.FullName + " " + desc + " " + topicText

	meta := models.Metadata{}
	meta.SetInt(models.MetaStars, r.Stars)
	meta.SetInt(models.MetaForks, r.Forks)
	meta.SetString(models.MetaLanguage, r.Language)
	meta.SetStrings(models.MetaTopics, r.Topics)
	meta.SetString(models.MetaOwner, r.Owner.Login)
	if r.License != nil && r.License.SPDXID != "NOASSERTION" {
		meta.SetString(models.MetaLicense, r.License.SPDXID)
	}
	if !r.PushedAt.IsZero() {
		meta.SetString(models.MetaPushedAt, r.PushedAt.UTC().Format(time.RFC3339))
	}

	return &models.Tool{
		Name:            normalizeName(r.FullName),
		Description:     desc,
		URL:             httpsURL(r.HTMLURL),
		Category:        CategorizeByKeywords(text),
		Subcategory:     topic,
		Capabilities:    ExtractCapabilities(desc + " " + topicText),
		APIAvailable:    false,
		OpenSource:      true,
		PricingModel:    "free",
		PopularityScore: CalculatePopularityScore(PopularityMetrics{Stars: r.Stars}),
		Metadata:        meta,
	}
}
