// AIScout - AI Tool Discovery and Recommendation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/aiscout

// Package recommend matches catalog tools to the user's projects and profile.
//
// # Project Analysis
//
// AnalyzeProject walks a directory to a bounded depth, skipping dot
// directories and dependency folders such as node_modules or venv. It
// derives a tech stack from manifests (package.json, requirements.txt,
// go.mod, Cargo.toml and friends), from declared dependencies, and from a
// file-extension census. AI needs come from keyword clusters found in the
// README plus needs implied by the stack. Every analysis inserts a new
// project row.
//
// # Relevance Scoring
//
// GenerateRecommendations scores each tool as
//
//	needsMatch*0.4 + stackBonus(0.3) + categoryBonus(0.2) + popularity/100*0.1
//
// clamped to 1. Tools scoring above the threshold (0.3 by default) are all
// persisted as pending recommendations; the top 20 are returned.
//
// # Profile Recommendations
//
// Personalized scores tools as popularity + 10 per matched interest + 15
// for a preferred category and returns the top 50. It shares no weights
// with project scoring.
//
// # Usage
//
//	engine, err := recommend.NewEngine(recommend.FromAppConfig(cfg.Recommend), db, logging.Logger())
//	project, err := engine.AnalyzeProject(ctx, "./my-app", "")
//	recs, err := engine.GenerateRecommendations(ctx, project.ID)
package recommend
