package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/sumarplus/backend/internal/models"
	"github.com/sumarplus/backend/internal/repository"
)

type campaignRepository struct {
	db *sql.DB
}

func NewCampaignRepository(db *sql.DB) repository.CampaignRepository {
	return &campaignRepository{db: db}
}

func (r *campaignRepository) Create(ctx context.Context, campaign *models.Campaign) (*models.Campaign, error) {
	query := `INSERT INTO campaigns (id, title, description, goal_amount, collected_amount, currency, status, owner_id, category_id, cover_image, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
		RETURNING created_at, updated_at`

	if campaign.ID == "" {
		campaign.ID = uuid.New().String()
	}
	now := time.Now()
	campaign.CreatedAt = now
	campaign.UpdatedAt = now
	if campaign.Status == "" {
		campaign.Status = models.CampaignStatusDraft
	}

	// category_id is a nullable UUID reference: an empty id must go in as
	// NULL, "" is not valid uuid input.
	category := sql.NullString{String: campaign.CategoryID, Valid: campaign.CategoryID != ""}

	err := r.db.QueryRowContext(ctx, query,
		campaign.ID, campaign.Title, campaign.Description, campaign.GoalAmount,
		campaign.CollectedAmount, campaign.Currency, campaign.Status,
		campaign.OwnerID, category, campaign.CoverImage,
		campaign.CreatedAt, campaign.UpdatedAt,
	).Scan(&campaign.CreatedAt, &campaign.UpdatedAt)
	if err != nil {
		return nil, fmt.Errorf("failed to create campaign: %w", err)
	}
	return campaign, nil
}

func (r *campaignRepository) GetByID(ctx context.Context, id string) (*models.Campaign, error) {
	query := `SELECT id, title, description, goal_amount, collected_amount, currency, status, owner_id, category_id, cover_image, created_at, updated_at
		FROM campaigns WHERE id = $1`

	campaign, err := scanCampaign(r.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get campaign: %w", err)
	}
	return campaign, nil
}

func (r *campaignRepository) List(ctx context.Context, filters repository.CampaignFilters) ([]*models.Campaign, error) {
	where, args := campaignWhere(filters)
	query := `SELECT id, title, description, goal_amount, collected_amount, currency, status, owner_id, category_id, cover_image, created_at, updated_at
		FROM campaigns` + where + " ORDER BY created_at DESC"

	argIdx := len(args) + 1
	if filters.Limit > 0 {
		query += fmt.Sprintf(" LIMIT $%d", argIdx)
		args = append(args, filters.Limit)
		argIdx++
	}
	if filters.Offset > 0 {
		query += fmt.Sprintf(" OFFSET $%d", argIdx)
		args = append(args, filters.Offset)
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query campaigns: %w", err)
	}
	defer rows.Close()

	var campaigns []*models.Campaign
	for rows.Next() {
		campaign, err := scanCampaign(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan campaign: %w", err)
		}
		campaigns = append(campaigns, campaign)
	}
	return campaigns, rows.Err()
}

// scanCampaign reads one campaign row. category_id is nullable, NULL maps to
// an empty CategoryID.
func scanCampaign(row rowScanner) (*models.Campaign, error) {
	campaign := &models.Campaign{}
	var category sql.NullString
	err := row.Scan(
		&campaign.ID, &campaign.Title, &campaign.Description, &campaign.GoalAmount,
		&campaign.CollectedAmount, &campaign.Currency, &campaign.Status,
		&campaign.OwnerID, &category, &campaign.CoverImage,
		&campaign.CreatedAt, &campaign.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	campaign.CategoryID = category.String
	return campaign, nil
}

func (r *campaignRepository) Count(ctx context.Context, filters repository.CampaignFilters) (int64, error) {
	where, args := campaignWhere(filters)

	var count int64
	if err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM campaigns`+where, args...).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count campaigns: %w", err)
	}
	return count, nil
}

func (r *campaignRepository) AddToCollected(ctx context.Context, id string, amount int64) error {
	result, err := r.db.ExecContext(ctx,
		`UPDATE campaigns SET collected_amount = collected_amount + $2, updated_at = $3 WHERE id = $1`,
		id, amount, time.Now(),
	)
	if err != nil {
		return fmt.Errorf("failed to update collected amount: %w", err)
	}
	n, _ := result.RowsAffected()
	if n == 0 {
		return fmt.Errorf("campaign %s not found", id)
	}
	return nil
}

func campaignWhere(filters repository.CampaignFilters) (string, []interface{}) {
	where := " WHERE 1=1"
	args := []interface{}{}
	argIdx := 1

	if filters.Status != nil {
		where += fmt.Sprintf(" AND status = $%d", argIdx)
		args = append(args, *filters.Status)
		argIdx++
	}
	if filters.CategoryID != "" {
		where += fmt.Sprintf(" AND category_id = $%d", argIdx)
		args = append(args, filters.CategoryID)
		argIdx++
	}
	return where, args
}
