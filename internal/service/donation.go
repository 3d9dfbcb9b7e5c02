package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/sumarplus/backend/internal/models"
)

// CreateDonationInput carries everything needed to record a donation.
// A nil DonorID records an anonymous donation.
type CreateDonationInput struct {
	CampaignID string
	DonorID    *string
	Amount     int64
	Message    string
}

// CreateDonation records a contribution against an active campaign and
// advances the campaign's collected amount.
func (s *Service) CreateDonation(ctx context.Context, input CreateDonationInput) (*models.Donation, error) {
	if input.Amount <= 0 {
		return nil, invalidArgumentf("donation amount must be positive")
	}

	campaign, err := s.Campaigns.GetByID(ctx, input.CampaignID)
	if err != nil {
		return nil, fmt.Errorf("failed to lookup campaign %s: %w", input.CampaignID, err)
	}
	if campaign == nil {
		return nil, notFoundf("campaign not found")
	}
	if !campaign.IsActive() {
		return nil, invalidArgumentf("campaign is not accepting donations")
	}

	if input.DonorID != nil {
		donor, err := s.Users.GetByID(ctx, *input.DonorID)
		if err != nil {
			return nil, fmt.Errorf("failed to lookup user %s: %w", *input.DonorID, err)
		}
		if donor == nil {
			return nil, notFoundf("user not found")
		}
	}

	donation, err := s.Donations.Create(ctx, &models.Donation{
		CampaignID: input.CampaignID,
		DonorID:    input.DonorID,
		Amount:     input.Amount,
		Message:    strings.TrimSpace(input.Message),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create donation: %w", err)
	}

	if err := s.Campaigns.AddToCollected(ctx, campaign.ID, donation.Amount); err != nil {
		// Donation row exists but the cached campaign total now lags it.
		s.logger.WithError(err).Errorf("Failed to advance collected amount for campaign %s", campaign.ID)
	} else {
		campaign.CollectedAmount += donation.Amount
	}

	s.logger.Infof("Donation of %d recorded for campaign %s", donation.Amount, campaign.ID)
	if s.notifier != nil {
		s.notifier.DonationReceived(campaign, donation)
	}
	return donation, nil
}

// ListDonations returns one page of a campaign's donations, newest first.
func (s *Service) ListDonations(ctx context.Context, campaignID string, page, limit int) ([]*models.Donation, models.Pagination, error) {
	if strings.TrimSpace(campaignID) == "" {
		return nil, models.Pagination{}, invalidArgumentf("campaign id is required")
	}

	campaign, err := s.Campaigns.GetByID(ctx, campaignID)
	if err != nil {
		return nil, models.Pagination{}, fmt.Errorf("failed to lookup campaign %s: %w", campaignID, err)
	}
	if campaign == nil {
		return nil, models.Pagination{}, notFoundf("campaign not found")
	}

	page, limit = normalizePage(page, limit)
	offset := (page - 1) * limit

	donations, total, err := fetchPage(ctx,
		func(ctx context.Context) ([]*models.Donation, error) {
			return s.Donations.ListByCampaign(ctx, campaignID, limit, offset)
		},
		func(ctx context.Context) (int64, error) {
			return s.Donations.Count(ctx, campaignID)
		},
	)
	if err != nil {
		return nil, models.Pagination{}, fmt.Errorf("failed to list donations for campaign %s: %w", campaignID, err)
	}
	return donations, paginationMeta(page, limit, total), nil
}
