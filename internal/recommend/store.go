// AIScout - AI Tool Discovery and Recommendation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/aiscout

package recommend

import (
	"context"

	"github.com/tomtom215/aiscout/internal/models"
)

// Store is the part of the catalog the engine reads and writes.
// *database.DB satisfies it.
type Store interface {
	InsertProject(ctx context.Context, p *models.UserProject) (int64, error)
	GetProject(ctx context.Context, id int64) (*models.UserProject, error)
	GetAllTools(ctx context.Context, limit, offset int) ([]*models.Tool, error)
	InsertRecommendation(ctx context.Context, r *models.Recommendation) (int64, error)

	// GetUserProfile returns every entry when key is empty.
	GetUserProfile(ctx context.Context, key string) ([]models.ProfileEntry, error)
}
