package models

import "time"

// Donation represents a single contribution to a campaign. A nil DonorID
// marks an anonymous donation. Amounts are stored in cents.
type Donation struct {
	ID         string    `json:"id" db:"id"`
	CampaignID string    `json:"campaignId" db:"campaign_id"`
	DonorID    *string   `json:"-" db:"donor_id"`
	Amount     int64     `json:"amount" db:"amount"`
	Message    string    `json:"message,omitempty" db:"message"`
	CreatedAt  time.Time `json:"createdAt" db:"created_at"`

	Donor *Author `json:"donor,omitempty"`
}

// IsAnonymous returns true if the donation carries no donor reference.
func (d *Donation) IsAnonymous() bool {
	return d.DonorID == nil
}
