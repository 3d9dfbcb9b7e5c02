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

type commentRepository struct {
	db *sql.DB
}

func NewCommentRepository(db *sql.DB) repository.CommentRepository {
	return &commentRepository{db: db}
}

func (r *commentRepository) Create(ctx context.Context, comment *models.Comment) (*models.Comment, error) {
	query := `INSERT INTO comments (id, campaign_id, author_id, parent_id, content, is_public, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING created_at, updated_at`

	if comment.ID == "" {
		comment.ID = uuid.New().String()
	}
	now := time.Now()
	comment.CreatedAt = now
	comment.UpdatedAt = now

	err := r.db.QueryRowContext(ctx, query,
		comment.ID, comment.CampaignID, comment.AuthorID, comment.ParentID,
		comment.Content, comment.IsPublic, comment.CreatedAt, comment.UpdatedAt,
	).Scan(&comment.CreatedAt, &comment.UpdatedAt)
	if err != nil {
		return nil, fmt.Errorf("failed to create comment: %w", err)
	}
	return comment, nil
}

func (r *commentRepository) GetByID(ctx context.Context, id string) (*models.Comment, error) {
	query := selectComment + ` WHERE c.id = $1`

	comment, err := scanComment(r.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get comment: %w", err)
	}
	return comment, nil
}

func (r *commentRepository) List(ctx context.Context, filters repository.CommentFilters) ([]*models.Comment, error) {
	where, args := commentWhere(filters)
	query := selectComment + where + " ORDER BY c.created_at ASC, c.id ASC"

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
		return nil, fmt.Errorf("failed to query comments: %w", err)
	}
	defer rows.Close()

	var comments []*models.Comment
	for rows.Next() {
		comment, err := scanComment(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan comment: %w", err)
		}
		comments = append(comments, comment)
	}
	return comments, rows.Err()
}

func (r *commentRepository) Count(ctx context.Context, filters repository.CommentFilters) (int64, error) {
	where, args := commentWhere(filters)
	query := `SELECT COUNT(*) FROM comments c` + where

	var count int64
	if err := r.db.QueryRowContext(ctx, query, args...).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count comments: %w", err)
	}
	return count, nil
}

// selectComment joins the author projection and the count of immediate
// public replies onto every returned row.
const selectComment = `SELECT c.id, c.campaign_id, c.author_id, c.parent_id, c.content, c.is_public, c.created_at, c.updated_at,
		u.id, u.first_name, u.last_name, u.organization_name, u.avatar, u.user_type,
		(SELECT COUNT(*) FROM comments x WHERE x.parent_id = c.id AND x.is_public) AS replies_count
	FROM comments c
	JOIN users u ON u.id = c.author_id`

// commentWhere builds the WHERE clause shared by List and Count so both
// always evaluate the same eligibility predicate.
func commentWhere(filters repository.CommentFilters) (string, []interface{}) {
	where := " WHERE 1=1"
	args := []interface{}{}
	argIdx := 1

	if filters.CampaignID != "" {
		where += fmt.Sprintf(" AND c.campaign_id = $%d", argIdx)
		args = append(args, filters.CampaignID)
		argIdx++
	}
	if filters.TopLevelOnly {
		where += " AND c.parent_id IS NULL"
	}
	if filters.ParentID != nil {
		where += fmt.Sprintf(" AND c.parent_id = $%d", argIdx)
		args = append(args, *filters.ParentID)
		argIdx++
	}
	if filters.OnlyPublic {
		where += " AND c.is_public = TRUE"
	}
	return where, args
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanComment(row rowScanner) (*models.Comment, error) {
	comment := &models.Comment{}
	author := &models.Author{}
	err := row.Scan(
		&comment.ID, &comment.CampaignID, &comment.AuthorID, &comment.ParentID,
		&comment.Content, &comment.IsPublic, &comment.CreatedAt, &comment.UpdatedAt,
		&author.ID, &author.FirstName, &author.LastName, &author.OrganizationName,
		&author.Avatar, &author.UserType,
		&comment.RepliesCount,
	)
	if err != nil {
		return nil, err
	}
	comment.Author = author
	return comment, nil
}
