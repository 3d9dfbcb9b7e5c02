package models

import "time"

// CampaignStatus represents the lifecycle state of a campaign.
type CampaignStatus string

const (
	CampaignStatusDraft    CampaignStatus = "draft"
	CampaignStatusActive   CampaignStatus = "active"
	CampaignStatusFinished CampaignStatus = "finished"
)

// Campaign represents a fundraising campaign. Amounts are stored in cents.
type Campaign struct {
	ID              string         `json:"id" db:"id"`
	Title           string         `json:"title" db:"title"`
	Description     string         `json:"description" db:"description"`
	GoalAmount      int64          `json:"goalAmount" db:"goal_amount"`
	CollectedAmount int64          `json:"collectedAmount" db:"collected_amount"`
	Currency        string         `json:"currency" db:"currency"`
	Status          CampaignStatus `json:"status" db:"status"`
	OwnerID         string         `json:"ownerId" db:"owner_id"`
	CategoryID      string         `json:"categoryId" db:"category_id"`
	CoverImage      string         `json:"coverImage,omitempty" db:"cover_image"`
	CreatedAt       time.Time      `json:"createdAt" db:"created_at"`
	UpdatedAt       time.Time      `json:"updatedAt" db:"updated_at"`

	Owner    *Author   `json:"owner,omitempty"`
	Category *Category `json:"category,omitempty"`
}

// IsActive returns true if the campaign currently accepts donations.
func (c *Campaign) IsActive() bool {
	return c.Status == CampaignStatusActive
}

// Progress returns the collected amount as a fraction of the goal.
func (c *Campaign) Progress() float64 {
	if c.GoalAmount <= 0 {
		return 0
	}
	return float64(c.CollectedAmount) / float64(c.GoalAmount)
}
