package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/sumarplus/backend/internal/models"
	"github.com/sumarplus/backend/internal/repository"
)

// ListCampaigns returns one page of campaigns, newest first, optionally
// narrowed by status and category.
func (s *Service) ListCampaigns(ctx context.Context, page, limit int, status *models.CampaignStatus, categoryID string) ([]*models.Campaign, models.Pagination, error) {
	page, limit = normalizePage(page, limit)
	filters := repository.CampaignFilters{
		Status:     status,
		CategoryID: categoryID,
		Limit:      limit,
		Offset:     (page - 1) * limit,
	}
	countFilters := filters
	countFilters.Limit = 0
	countFilters.Offset = 0

	campaigns, total, err := fetchPage(ctx,
		func(ctx context.Context) ([]*models.Campaign, error) {
			return s.Campaigns.List(ctx, filters)
		},
		func(ctx context.Context) (int64, error) {
			return s.Campaigns.Count(ctx, countFilters)
		},
	)
	if err != nil {
		return nil, models.Pagination{}, fmt.Errorf("failed to list campaigns: %w", err)
	}
	return campaigns, paginationMeta(page, limit, total), nil
}

// GetCampaign returns a single campaign by id.
func (s *Service) GetCampaign(ctx context.Context, id string) (*models.Campaign, error) {
	if strings.TrimSpace(id) == "" {
		return nil, invalidArgumentf("campaign id is required")
	}

	campaign, err := s.Campaigns.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to lookup campaign %s: %w", id, err)
	}
	if campaign == nil {
		return nil, notFoundf("campaign not found")
	}
	return campaign, nil
}

// CreateCampaignInput carries everything needed to open a campaign.
type CreateCampaignInput struct {
	Title       string
	Description string
	GoalAmount  int64
	Currency    string
	OwnerID     string
	CategoryID  string
	CoverImage  string
}

// CreateCampaign opens a new campaign in draft state.
func (s *Service) CreateCampaign(ctx context.Context, input CreateCampaignInput) (*models.Campaign, error) {
	title := strings.TrimSpace(input.Title)
	if title == "" {
		return nil, invalidArgumentf("campaign title is required")
	}
	if input.GoalAmount <= 0 {
		return nil, invalidArgumentf("goal amount must be positive")
	}

	owner, err := s.Users.GetByID(ctx, input.OwnerID)
	if err != nil {
		return nil, fmt.Errorf("failed to lookup user %s: %w", input.OwnerID, err)
	}
	if owner == nil {
		return nil, notFoundf("user not found")
	}

	if input.CategoryID != "" {
		category, err := s.Categories.GetByID(ctx, input.CategoryID)
		if err != nil {
			return nil, fmt.Errorf("failed to lookup category %s: %w", input.CategoryID, err)
		}
		if category == nil {
			return nil, notFoundf("category not found")
		}
	}

	currency := strings.ToUpper(strings.TrimSpace(input.Currency))
	if currency == "" {
		currency = "EUR"
	}

	campaign, err := s.Campaigns.Create(ctx, &models.Campaign{
		Title:       title,
		Description: strings.TrimSpace(input.Description),
		GoalAmount:  input.GoalAmount,
		Currency:    currency,
		Status:      models.CampaignStatusDraft,
		OwnerID:     input.OwnerID,
		CategoryID:  input.CategoryID,
		CoverImage:  strings.TrimSpace(input.CoverImage),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create campaign: %w", err)
	}

	s.logger.Infof("Campaign %q created by %s (id=%s)", campaign.Title, owner.DisplayName(), campaign.ID)
	return campaign, nil
}
