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

	"github.com/tomtom215/aiscout/internal/config"
	"github.com/tomtom215/aiscout/internal/models"
)

// hfModel is one entry of the Hub's model listing.
type hfModel struct {
	ID          string   `json:"id"`
	ModelID     string   `json:"modelId"`
	Author      string   `json:"author"`
	Downloads   int64    `json:"downloads"`
	Likes       int64    `json:"likes"`
	PipelineTag string   `json:"pipeline_tag"`
	LibraryName string   `json:"library_name"`
	Tags        []string `json:"tags"`
	Private     bool     `json:"private"`
}

// pipelineCategories maps Hub pipeline tags onto the taxonomy.
var pipelineCategories = map[string]string{
	"text-generation":              CategoryLLM,
	"text2text-generation":         CategoryLLM,
	"conversational":               CategoryLLM,
	"image-text-to-text":           CategoryLLM,
	"image-classification":         CategoryVision,
	"object-detection":             CategoryVision,
	"image-segmentation":           CategoryVision,
	"text-to-image":                CategoryVision,
	"image-to-text":                CategoryVision,
	"image-to-image":               CategoryVision,
	"depth-estimation":             CategoryVision,
	"video-classification":         CategoryVision,
	"automatic-speech-recognition": CategoryAudio,
	"text-to-speech":               CategoryAudio,
	"text-to-audio":                CategoryAudio,
	"audio-classification":         CategoryAudio,
	"robotics":                     CategoryRobotics,
	"reinforcement-learning":       CategoryRobotics,
	"tabular-classification":       CategoryDataScience,
	"tabular-regression":           CategoryDataScience,
	"time-series-forecasting":      CategoryDataScience,
}

// pipelineCapabilities maps pipeline tags onto capability labels.
var pipelineCapabilities = map[string][]string{
	"text-generation":              {"text generation"},
	"text2text-generation":         {"text generation"},
	"text-classification":          {"classification"},
	"image-classification":         {"classification"},
	"zero-shot-classification":     {"classification"},
	"token-classification":         {"classification"},
	"object-detection":             {"object detection", "detection"},
	"automatic-speech-recognition": {"speech recognition"},
	"text-to-image":                {"image generation"},
	"translation":                  {"translation"},
	"summarization":                {"summarization"},
	"question-answering":           {"question answering"},
	"feature-extraction":           {"embedding"},
	"sentence-similarity":          {"embedding", "semantic search"},
}

// HuggingFaceAdapter surveys the Hugging Face model hub, one pipeline task
// per query dimension, most downloaded first.
type HuggingFaceAdapter struct {
	Base
	baseURL string
	limit   int
	tasks   []string
}

// NewHuggingFaceAdapter creates the model hub adapter.
func NewHuggingFaceAdapter(cfg config.HuggingFaceConfig, sc config.SurveyConfig, store Store) *HuggingFaceAdapter {
	return &HuggingFaceAdapter{
		Base:    newBase(models.SourceHuggingFace, store, newSourceFetcher(models.SourceHuggingFace, sc, 0), cfg.Delay),
		baseURL: strings.TrimRight(cfg.BaseURL, "/"),
		limit:   cfg.Limit,
		tasks:   cfg.Tasks,
	}
}

// Survey implements Adapter.
func (a *HuggingFaceAdapter) Survey(ctx context.Context) (*models.SurveyResult, error) {
	result := newResult()

	for i, task := range a.tasks {
		if err := a.pause(ctx, i); err != nil {
			return result, err
		}

		listing, err := a.fetchTask(ctx, task)
		if err != nil {
			if ctx.Err() != nil {
				return result, ctx.Err()
			}
			a.dimensionError(result, task, err)
			continue
		}

		for _, m := range listing {
			if m.Private || m.ID == "" {
				continue
			}
			tool := a.toTool(m, task)
			if err := a.saveTool(ctx, tool, &result.Stats); err != nil {
				a.dimensionError(result, task, err)
				continue
			}
			result.Tools = append(result.Tools, tool)
		}
		a.log.Debug().Str("task", task).Int("models", len(listing)).Msg("Task surveyed")
	}
	return result, nil
}

func (a *HuggingFaceAdapter) fetchTask(ctx context.Context, task string) ([]hfModel, error) {
	q := url.Values{}
	q.Set("pipeline_tag", task)
	q.Set("sort", "downloads")
	q.Set("direction", "-1")
	q.Set("limit", strconv.Itoa(a.limit))

	var listing []hfModel
	if err := a.fetcher.FetchJSON(ctx, a.baseURL+"/api/models?"+q.Encode(), nil, &listing); err != nil {
		return nil, err
	}
	return listing, nil
}

func (a *HuggingFaceAdapter) toTool(m hfModel, task string) *models.Tool {
	tag := m.PipelineTag
	if tag == "" {
		tag = task
	}

	author := m.Author
	if author == "" {
		if owner, _, ok := strings.Cut(m.ID, "/"); ok {
			author = owner
		}
	}

	desc := fmt.Sprintf("%s model", strings.ReplaceAll(tag, "-", " "))
	if author != "" {
		desc += " by " + author
	}
	if m.LibraryName != "" {
		desc += " (" + m.LibraryName + ")"
	}

	category, ok := pipelineCategories[tag]
	if !ok {
		category = CategorizeByKeywords(tag + " " + strings.Join(m.Tags, " "))
		if category == CategoryGeneral {
			category = CategoryNLP
		}
	}

	meta := models.Metadata{}
	meta.SetInt(models.MetaDownloads, m.Downloads)
	meta.SetInt(models.MetaLikes, m.Likes)
	meta.SetString(models.MetaPipelineTag, tag)
	meta.SetString(models.MetaLibrary, m.LibraryName)
	meta.SetString(models.MetaAuthor, author)
	meta.SetStrings(models.MetaTags, m.Tags)

	return &models.Tool{
		Name:        normalizeName(m.ID),
		Description: normalizeDescription(desc),
		URL:         "https://huggingface.co/" + m.ID,
		Category:    category,
		Subcategory: tag,
		Capabilities: mergeCapabilities(
			pipelineCapabilities[tag],
			ExtractCapabilities(strings.Join(m.Tags, " ")),
		),
		APIAvailable:    true,
		OpenSource:      true,
		PricingModel:    "free",
		PopularityScore: CalculatePopularityScore(PopularityMetrics{Downloads: m.Downloads, Likes: m.Likes}),
		Metadata:        meta,
	}
}
