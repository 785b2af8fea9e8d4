// AIScout - AI Tool Discovery and Recommendation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/aiscout

package survey

import (
	"context"
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"github.com/tomtom215/aiscout/internal/cache"
	"github.com/tomtom215/aiscout/internal/config"
	"github.com/tomtom215/aiscout/internal/models"
)

type ytSearchResponse struct {
	Items []struct {
		ID struct {
			VideoID string `json:"videoId"`
		} `json:"id"`
		Snippet ytSnippet `json:"snippet"`
	} `json:"items"`
}

type ytSnippet struct {
	Title        string `json:"title"`
	Description  string `json:"description"`
	ChannelTitle string `json:"channelTitle"`
	PublishedAt  string `json:"publishedAt"`
}

// The Data API reports counts as decimal strings.
type ytVideosResponse struct {
	Items []struct {
		ID         string `json:"id"`
		Statistics struct {
			ViewCount string `json:"viewCount"`
			LikeCount string `json:"likeCount"`
		} `json:"statistics"`
	} `json:"items"`
}

type ytStats struct {
	views int64
	likes int64
}

// YouTubeAdapter searches videos and keeps only those that mention a known
// AI tool by name.
type YouTubeAdapter struct {
	Base
	baseURL string
	apiKey  string
	limit   int
	queries []string
	mention *cache.KeywordMatcher
}

// NewYouTubeAdapter creates the video adapter. A missing API key is not an
// error here: Survey reports it as a single configuration error.
func NewYouTubeAdapter(cfg config.YouTubeConfig, sc config.SurveyConfig, store Store) *YouTubeAdapter {
	known := cfg.KnownTools
	if len(known) == 0 {
		known = config.DefaultKnownTools
	}
	return &YouTubeAdapter{
		Base:    newBase(models.SourceYouTube, store, newSourceFetcher(models.SourceYouTube, sc, 0), cfg.Delay),
		baseURL: strings.TrimRight(cfg.BaseURL, "/"),
		apiKey:  cfg.APIKey,
		limit:   cfg.Limit,
		queries: cfg.Queries,
		mention: cache.NewKeywordMatcher(known),
	}
}

// Survey implements Adapter.
func (a *YouTubeAdapter) Survey(ctx context.Context) (*models.SurveyResult, error) {
	result := newResult()

	if a.apiKey == "" {
		err := fmt.Errorf("%w: YouTube API key not configured (set YOUTUBE_API_KEY)", ErrMissingCredential)
		result.Errors = append(result.Errors, fmt.Sprintf("%s: %v", a.source, err))
		result.Stats.Errors++
		a.log.Warn().Err(err).Msg("Skipping video survey")
		return result, nil
	}

	for i, query := range a.queries {
		if err := a.pause(ctx, i); err != nil {
			return result, err
		}

		if err := a.surveyQuery(ctx, query, result); err != nil {
			if ctx.Err() != nil {
				return result, ctx.Err()
			}
			a.dimensionError(result, query, err)
		}
	}
	return result, nil
}

func (a *YouTubeAdapter) surveyQuery(ctx context.Context, query string, result *models.SurveyResult) error {
	q := url.Values{}
	q.Set("part", "snippet")
	q.Set("type", "video")
	q.Set("q", query)
	q.Set("maxResults", strconv.Itoa(a.limit))
	q.Set("key", a.apiKey)

	var search ytSearchResponse
	if err := a.fetcher.FetchJSON(ctx, a.baseURL+"/youtube/v3/search?"+q.Encode(), nil, &search); err != nil {
		return err
	}

	ids := make([]string, 0, len(search.Items))
	for _, item := range search.Items {
		if item.ID.VideoID != "" {
			ids = append(ids, item.ID.VideoID)
		}
	}
	stats := a.fetchStats(ctx, ids, query, result)

	kept := 0
	for _, item := range search.Items {
		if item.ID.VideoID == "" {
			continue
		}
		title := normalizeName(item.Snippet.Title)
		desc := normalizeDescription(item.Snippet.Description)
		mentioned := a.mention.Find(title + " " + desc)
		if len(mentioned) == 0 {
			continue
		}

		tool := a.toTool(item.ID.VideoID, title, desc, item.Snippet, mentioned, stats[item.ID.VideoID], query)
		if err := a.saveTool(ctx, tool, &result.Stats); err != nil {
			a.dimensionError(result, query, err)
			continue
		}
		result.Tools = append(result.Tools, tool)
		kept++
	}
	a.log.Debug().Str("query", query).Int("videos", len(search.Items)).Int("kept", kept).Msg("Query surveyed")
	return nil
}

// fetchStats looks up view and like counts. A failure is recorded against
// query and leaves the counts at zero; the videos are still kept.
func (a *YouTubeAdapter) fetchStats(ctx context.Context, ids []string, query string, result *models.SurveyResult) map[string]ytStats {
	out := make(map[string]ytStats, len(ids))
	if len(ids) == 0 {
		return out
	}

	q := url.Values{}
	q.Set("part", "statistics")
	q.Set("id", strings.Join(ids, ","))
	q.Set("key", a.apiKey)

	var resp ytVideosResponse
	if err := a.fetcher.FetchJSON(ctx, a.baseURL+"/youtube/v3/videos?"+q.Encode(), nil, &resp); err != nil {
		a.dimensionError(result, query, fmt.Errorf("video statistics: %w", err))
		return out
	}
	for _, item := range resp.Items {
		views, _ := strconv.ParseInt(item.Statistics.ViewCount, 10, 64)
		likes, _ := strconv.ParseInt(item.Statistics.LikeCount, 10, 64)
		out[item.ID] = ytStats{views: views, likes: likes}
	}
	return out
}

func (a *YouTubeAdapter) toTool(videoID, title, desc string, s ytSnippet, mentioned []string, st ytStats, query string) *models.Tool {
	text := title + " " + desc

	meta := models.Metadata{}
	meta.SetString(models.MetaVideoID, videoID)
	meta.SetString(models.MetaChannel, s.ChannelTitle)
	meta.SetInt(models.MetaViews, st.views)
	meta.SetInt(models.MetaLikes, st.likes)
	meta.SetStrings(models.MetaMentionedTools, mentioned)
	meta.SetString(models.MetaPublishedAt, s.PublishedAt)

	return &models.Tool{
		Name:            title,
		Description:     desc,
		URL:             "https://www.youtube.com/watch?v=" + url.QueryEscape(videoID),
		Category:        CategorizeByKeywords(text),
		Subcategory:     query,
		Capabilities:    ExtractCapabilities(text),
		PopularityScore: CalculatePopularityScore(PopularityMetrics{Views: st.views, Likes: st.likes}),
		Metadata:        meta,
	}
}
