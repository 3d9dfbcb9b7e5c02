package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sumarplus/backend/internal/models"
)

func TestCreateDonation(t *testing.T) {
	f := newFixture(t)

	donation, err := f.svc.CreateDonation(context.Background(), CreateDonationInput{
		CampaignID: f.campaign.ID,
		DonorID:    &f.user.ID,
		Amount:     2500,
		Message:    "keep going",
	})
	require.NoError(t, err)
	assert.Equal(t, int64(2500), donation.Amount)
	assert.False(t, donation.IsAnonymous())

	campaign, err := f.svc.GetCampaign(context.Background(), f.campaign.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(2500), campaign.CollectedAmount)
}

func TestCreateDonation_Anonymous(t *testing.T) {
	f := newFixture(t)

	donation, err := f.svc.CreateDonation(context.Background(), CreateDonationInput{
		CampaignID: f.campaign.ID,
		Amount:     100,
	})
	require.NoError(t, err)
	assert.True(t, donation.IsAnonymous())
}

func TestCreateDonation_Validation(t *testing.T) {
	f := newFixture(t)
	draft, err := f.store.Campaigns().Create(context.Background(), &models.Campaign{
		Title:      "Not Yet Open",
		GoalAmount: 1000,
		Status:     models.CampaignStatusDraft,
		OwnerID:    f.user.ID,
	})
	require.NoError(t, err)

	_, err = f.svc.CreateDonation(context.Background(), CreateDonationInput{CampaignID: f.campaign.ID, Amount: 0})
	assert.ErrorIs(t, err, ErrInvalidArgument)

	_, err = f.svc.CreateDonation(context.Background(), CreateDonationInput{CampaignID: "missing-campaign", Amount: 100})
	assert.ErrorIs(t, err, ErrNotFound)

	_, err = f.svc.CreateDonation(context.Background(), CreateDonationInput{CampaignID: draft.ID, Amount: 100})
	assert.ErrorIs(t, err, ErrInvalidArgument)
}

func TestListDonations_NewestFirst(t *testing.T) {
	f := newFixture(t)
	for i := int64(1); i <= 3; i++ {
		_, err := f.svc.CreateDonation(context.Background(), CreateDonationInput{
			CampaignID: f.campaign.ID,
			Amount:     i * 100,
		})
		require.NoError(t, err)
	}

	donations, pagination, err := f.svc.ListDonations(context.Background(), f.campaign.ID, 1, 10)
	require.NoError(t, err)
	require.Len(t, donations, 3)
	assert.Equal(t, int64(300), donations[0].Amount)
	assert.Equal(t, int64(100), donations[2].Amount)
	assert.Equal(t, int64(3), pagination.TotalCount)
}

func TestGetPlatformStats(t *testing.T) {
	f := newFixture(t)
	f.addComment(t, f.campaign.ID, nil, "hello", true, 0)
	f.addComment(t, f.campaign.ID, nil, "hidden", false, 0)
	_, err := f.svc.CreateDonation(context.Background(), CreateDonationInput{
		CampaignID: f.campaign.ID,
		Amount:     4000,
	})
	require.NoError(t, err)

	stats, err := f.svc.GetPlatformStats(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int64(1), stats.TotalCampaigns)
	assert.Equal(t, int64(1), stats.ActiveCampaigns)
	assert.Equal(t, int64(0), stats.FinishedCampaigns)
	assert.Equal(t, int64(1), stats.TotalUsers)
	assert.Equal(t, int64(1), stats.TotalDonations)
	assert.Equal(t, int64(4000), stats.TotalDonated)
	// Stats count every comment, including private ones.
	assert.Equal(t, int64(2), stats.TotalComments)
}
