package memory

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/sumarplus/backend/internal/models"
	"github.com/sumarplus/backend/internal/repository"
)

type userRepo struct {
	s *Store
}

func (r *userRepo) Create(ctx context.Context, user *models.User) (*models.User, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	u := *user
	u.ID = ensureID(u.ID)
	u.CreatedAt = ensureTime(u.CreatedAt)
	u.UpdatedAt = u.CreatedAt
	if u.UserType == "" {
		u.UserType = models.UserTypePerson
	}
	r.s.users[u.ID] = &u

	out := u
	return &out, nil
}

func (r *userRepo) GetByID(ctx context.Context, id string) (*models.User, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	user, exists := r.s.users[id]
	if !exists {
		return nil, nil
	}
	out := *user
	return &out, nil
}

func (r *userRepo) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	for _, user := range r.s.users {
		if strings.EqualFold(user.Email, email) {
			out := *user
			return &out, nil
		}
	}
	return nil, nil
}

func (r *userRepo) Count(ctx context.Context) (int64, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	return int64(len(r.s.users)), nil
}

type categoryRepo struct {
	s *Store
}

func (r *categoryRepo) Create(ctx context.Context, category *models.Category) (*models.Category, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	c := *category
	c.ID = ensureID(c.ID)
	c.CreatedAt = ensureTime(c.CreatedAt)
	r.s.categories[c.ID] = &c

	out := c
	return &out, nil
}

func (r *categoryRepo) GetByID(ctx context.Context, id string) (*models.Category, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	category, exists := r.s.categories[id]
	if !exists {
		return nil, nil
	}
	out := *category
	return &out, nil
}

func (r *categoryRepo) List(ctx context.Context) ([]*models.Category, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	categories := make([]*models.Category, 0, len(r.s.categories))
	for _, category := range r.s.categories {
		out := *category
		categories = append(categories, &out)
	}
	sort.Slice(categories, func(i, j int) bool {
		return categories[i].Name < categories[j].Name
	})
	return categories, nil
}

type campaignRepo struct {
	s *Store
}

func (r *campaignRepo) Create(ctx context.Context, campaign *models.Campaign) (*models.Campaign, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	c := *campaign
	c.ID = ensureID(c.ID)
	c.CreatedAt = ensureTime(c.CreatedAt)
	c.UpdatedAt = c.CreatedAt
	if c.Status == "" {
		c.Status = models.CampaignStatusDraft
	}
	r.s.campaigns[c.ID] = &c

	out := c
	return &out, nil
}

func (r *campaignRepo) GetByID(ctx context.Context, id string) (*models.Campaign, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	campaign, exists := r.s.campaigns[id]
	if !exists {
		return nil, nil
	}
	out := *campaign
	return &out, nil
}

func (r *campaignRepo) List(ctx context.Context, filters repository.CampaignFilters) ([]*models.Campaign, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	campaigns := r.collect(filters)

	start := filters.Offset
	if start > len(campaigns) {
		start = len(campaigns)
	}
	end := len(campaigns)
	if filters.Limit > 0 && start+filters.Limit < end {
		end = start + filters.Limit
	}
	return campaigns[start:end], nil
}

func (r *campaignRepo) Count(ctx context.Context, filters repository.CampaignFilters) (int64, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	return int64(len(r.collect(filters))), nil
}

func (r *campaignRepo) AddToCollected(ctx context.Context, id string, amount int64) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	campaign, exists := r.s.campaigns[id]
	if !exists {
		return fmt.Errorf("campaign %s not found", id)
	}
	campaign.CollectedAmount += amount
	campaign.UpdatedAt = time.Now()
	return nil
}

func (r *campaignRepo) collect(filters repository.CampaignFilters) []*models.Campaign {
	var campaigns []*models.Campaign
	for _, campaign := range r.s.campaigns {
		if filters.Status != nil && campaign.Status != *filters.Status {
			continue
		}
		if filters.CategoryID != "" && campaign.CategoryID != filters.CategoryID {
			continue
		}
		out := *campaign
		campaigns = append(campaigns, &out)
	}
	// Newest first, matching the SQL ordering.
	sort.SliceStable(campaigns, func(i, j int) bool {
		return campaigns[i].CreatedAt.After(campaigns[j].CreatedAt)
	})
	return campaigns
}

type donationRepo struct {
	s *Store
}

func (r *donationRepo) Create(ctx context.Context, donation *models.Donation) (*models.Donation, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	d := *donation
	d.ID = ensureID(d.ID)
	d.CreatedAt = ensureTime(d.CreatedAt)
	r.s.donations[d.ID] = &d
	r.s.donationsFor[d.CampaignID] = append(r.s.donationsFor[d.CampaignID], d.ID)

	out := d
	return &out, nil
}

func (r *donationRepo) ListByCampaign(ctx context.Context, campaignID string, limit, offset int) ([]*models.Donation, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	ids := r.s.donationsFor[campaignID]
	donations := make([]*models.Donation, 0, len(ids))
	// Index slices grow in insertion order; walk backwards for newest first.
	for i := len(ids) - 1; i >= 0; i-- {
		donation := r.s.donations[ids[i]]
		if donation == nil {
			continue
		}
		out := *donation
		if out.DonorID != nil {
			if donor, exists := r.s.users[*out.DonorID]; exists {
				out.Donor = donor.AsAuthor()
			}
		}
		donations = append(donations, &out)
	}

	start := offset
	if start > len(donations) {
		start = len(donations)
	}
	end := len(donations)
	if limit > 0 && start+limit < end {
		end = start + limit
	}
	return donations[start:end], nil
}

func (r *donationRepo) Count(ctx context.Context, campaignID string) (int64, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	if campaignID != "" {
		return int64(len(r.s.donationsFor[campaignID])), nil
	}
	return int64(len(r.s.donations)), nil
}

func (r *donationRepo) SumAmount(ctx context.Context, campaignID string) (int64, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	var sum int64
	if campaignID != "" {
		for _, id := range r.s.donationsFor[campaignID] {
			if donation := r.s.donations[id]; donation != nil {
				sum += donation.Amount
			}
		}
		return sum, nil
	}
	for _, donation := range r.s.donations {
		sum += donation.Amount
	}
	return sum, nil
}
