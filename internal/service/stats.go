package service

import (
	"context"
	"fmt"

	"github.com/sumarplus/backend/internal/models"
	"github.com/sumarplus/backend/internal/repository"
)

// PlatformStats is the aggregate snapshot shown on the admin dashboard.
type PlatformStats struct {
	TotalCampaigns    int64 `json:"totalCampaigns"`
	ActiveCampaigns   int64 `json:"activeCampaigns"`
	FinishedCampaigns int64 `json:"finishedCampaigns"`
	TotalUsers        int64 `json:"totalUsers"`
	TotalDonations    int64 `json:"totalDonations"`
	TotalDonated      int64 `json:"totalDonated"`
	TotalComments     int64 `json:"totalComments"`
}

// GetPlatformStats gathers the admin dashboard counters. The snapshot is
// assembled from independent count queries and is not transactional.
func (s *Service) GetPlatformStats(ctx context.Context) (*PlatformStats, error) {
	stats := &PlatformStats{}
	var err error

	if stats.TotalCampaigns, err = s.Campaigns.Count(ctx, repository.CampaignFilters{}); err != nil {
		return nil, fmt.Errorf("failed to count campaigns: %w", err)
	}
	active := models.CampaignStatusActive
	if stats.ActiveCampaigns, err = s.Campaigns.Count(ctx, repository.CampaignFilters{Status: &active}); err != nil {
		return nil, fmt.Errorf("failed to count active campaigns: %w", err)
	}
	finished := models.CampaignStatusFinished
	if stats.FinishedCampaigns, err = s.Campaigns.Count(ctx, repository.CampaignFilters{Status: &finished}); err != nil {
		return nil, fmt.Errorf("failed to count finished campaigns: %w", err)
	}
	if stats.TotalUsers, err = s.Users.Count(ctx); err != nil {
		return nil, fmt.Errorf("failed to count users: %w", err)
	}
	if stats.TotalDonations, err = s.Donations.Count(ctx, ""); err != nil {
		return nil, fmt.Errorf("failed to count donations: %w", err)
	}
	if stats.TotalDonated, err = s.Donations.SumAmount(ctx, ""); err != nil {
		return nil, fmt.Errorf("failed to sum donations: %w", err)
	}
	if stats.TotalComments, err = s.Comments.Count(ctx, repository.CommentFilters{}); err != nil {
		return nil, fmt.Errorf("failed to count comments: %w", err)
	}
	return stats, nil
}
