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

type donationRepository struct {
	db *sql.DB
}

func NewDonationRepository(db *sql.DB) repository.DonationRepository {
	return &donationRepository{db: db}
}

func (r *donationRepository) Create(ctx context.Context, donation *models.Donation) (*models.Donation, error) {
	query := `INSERT INTO donations (id, campaign_id, donor_id, amount, message, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING created_at`

	if donation.ID == "" {
		donation.ID = uuid.New().String()
	}
	donation.CreatedAt = time.Now()

	err := r.db.QueryRowContext(ctx, query,
		donation.ID, donation.CampaignID, donation.DonorID,
		donation.Amount, donation.Message, donation.CreatedAt,
	).Scan(&donation.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("failed to create donation: %w", err)
	}
	return donation, nil
}

func (r *donationRepository) ListByCampaign(ctx context.Context, campaignID string, limit, offset int) ([]*models.Donation, error) {
	query := `SELECT d.id, d.campaign_id, d.donor_id, d.amount, d.message, d.created_at,
			u.id, u.first_name, u.last_name, u.organization_name, u.avatar, u.user_type
		FROM donations d
		LEFT JOIN users u ON u.id = d.donor_id
		WHERE d.campaign_id = $1
		ORDER BY d.created_at DESC, d.id DESC`
	args := []interface{}{campaignID}
	argIdx := 2

	if limit > 0 {
		query += fmt.Sprintf(" LIMIT $%d", argIdx)
		args = append(args, limit)
		argIdx++
	}
	if offset > 0 {
		query += fmt.Sprintf(" OFFSET $%d", argIdx)
		args = append(args, offset)
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query donations: %w", err)
	}
	defer rows.Close()

	var donations []*models.Donation
	for rows.Next() {
		donation := &models.Donation{}
		var donorID, firstName, lastName, orgName, avatar, userType sql.NullString
		if err := rows.Scan(
			&donation.ID, &donation.CampaignID, &donation.DonorID,
			&donation.Amount, &donation.Message, &donation.CreatedAt,
			&donorID, &firstName, &lastName, &orgName, &avatar, &userType,
		); err != nil {
			return nil, fmt.Errorf("failed to scan donation: %w", err)
		}
		if donorID.Valid {
			donation.Donor = &models.Author{
				ID:               donorID.String,
				FirstName:        firstName.String,
				LastName:         lastName.String,
				OrganizationName: orgName.String,
				Avatar:           avatar.String,
				UserType:         models.UserType(userType.String),
			}
		}
		donations = append(donations, donation)
	}
	return donations, rows.Err()
}

func (r *donationRepository) Count(ctx context.Context, campaignID string) (int64, error) {
	query := `SELECT COUNT(*) FROM donations`
	args := []interface{}{}
	if campaignID != "" {
		query += ` WHERE campaign_id = $1`
		args = append(args, campaignID)
	}

	var count int64
	if err := r.db.QueryRowContext(ctx, query, args...).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count donations: %w", err)
	}
	return count, nil
}

func (r *donationRepository) SumAmount(ctx context.Context, campaignID string) (int64, error) {
	query := `SELECT COALESCE(SUM(amount), 0) FROM donations`
	args := []interface{}{}
	if campaignID != "" {
		query += ` WHERE campaign_id = $1`
		args = append(args, campaignID)
	}

	var sum int64
	if err := r.db.QueryRowContext(ctx, query, args...).Scan(&sum); err != nil {
		return 0, fmt.Errorf("failed to sum donations: %w", err)
	}
	return sum, nil
}
