package repository

import (
	"context"

	"github.com/sumarplus/backend/internal/models"
)

// UserRepository defines the interface for user data operations
type UserRepository interface {
	Create(ctx context.Context, user *models.User) (*models.User, error)
	GetByID(ctx context.Context, id string) (*models.User, error)
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	Count(ctx context.Context) (int64, error)
}

// CampaignRepository defines the interface for campaign data operations
type CampaignRepository interface {
	Create(ctx context.Context, campaign *models.Campaign) (*models.Campaign, error)
	GetByID(ctx context.Context, id string) (*models.Campaign, error)
	List(ctx context.Context, filters CampaignFilters) ([]*models.Campaign, error)
	Count(ctx context.Context, filters CampaignFilters) (int64, error)
	AddToCollected(ctx context.Context, id string, amount int64) error
}

// CommentRepository defines the interface for comment data operations.
// List and Count evaluate the same filter predicate so that a page and its
// total are always derived from one definition of eligibility.
type CommentRepository interface {
	Create(ctx context.Context, comment *models.Comment) (*models.Comment, error)
	GetByID(ctx context.Context, id string) (*models.Comment, error)
	List(ctx context.Context, filters CommentFilters) ([]*models.Comment, error)
	Count(ctx context.Context, filters CommentFilters) (int64, error)
}

// DonationRepository defines the interface for donation data operations
type DonationRepository interface {
	Create(ctx context.Context, donation *models.Donation) (*models.Donation, error)
	ListByCampaign(ctx context.Context, campaignID string, limit, offset int) ([]*models.Donation, error)
	Count(ctx context.Context, campaignID string) (int64, error)
	SumAmount(ctx context.Context, campaignID string) (int64, error)
}

// CategoryRepository defines the interface for category data operations
type CategoryRepository interface {
	Create(ctx context.Context, category *models.Category) (*models.Category, error)
	GetByID(ctx context.Context, id string) (*models.Category, error)
	List(ctx context.Context) ([]*models.Category, error)
}

// CommentFilters represents filters for querying comments. Zero values mean
// "no constraint": an empty CampaignID matches every campaign, TopLevelOnly
// false with a nil ParentID matches any nesting level, OnlyPublic false
// includes private comments. TopLevelOnly and ParentID are mutually
// exclusive. Results are ordered by creation time ascending, id as
// tie-break.
type CommentFilters struct {
	CampaignID   string
	TopLevelOnly bool    // parent reference is null
	ParentID     *string // immediate children of this comment
	OnlyPublic   bool
	Limit        int
	Offset       int
}

// CampaignFilters represents filters for querying campaigns. Results are
// ordered by creation time descending (newest first).
type CampaignFilters struct {
	Status     *models.CampaignStatus
	CategoryID string
	Limit      int
	Offset     int
}
