package service

import (
	"context"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/sumarplus/backend/internal/models"
	"github.com/sumarplus/backend/internal/repository"
)

// ListTopLevelComments returns one page of the public top-level comments of
// a campaign, oldest first, each annotated with its immediate public reply
// count, together with the pagination metadata for the full eligible set.
func (s *Service) ListTopLevelComments(ctx context.Context, campaignID string, page, limit int) ([]*models.Comment, models.Pagination, error) {
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
	filters := repository.CommentFilters{
		CampaignID:   campaignID,
		TopLevelOnly: true,
		OnlyPublic:   true,
		Limit:        limit,
		Offset:       (page - 1) * limit,
	}

	comments, total, err := s.fetchCommentPage(ctx, filters)
	if err != nil {
		return nil, models.Pagination{}, fmt.Errorf("failed to list comments for campaign %s: %w", campaignID, err)
	}
	return comments, paginationMeta(page, limit, total), nil
}

// ListReplies returns one page of the immediate public replies of a comment,
// oldest first to preserve conversational chronology. Nesting is not
// recursive: deeper levels are fetched by calling this again with a child id.
func (s *Service) ListReplies(ctx context.Context, campaignID, commentID string, page, limit int) ([]*models.Comment, models.Pagination, error) {
	// Preconditions are checked in order: an unknown comment is NotFound
	// even when the campaign id is also bad.
	parent, err := s.Comments.GetByID(ctx, commentID)
	if err != nil {
		return nil, models.Pagination{}, fmt.Errorf("failed to lookup comment %s: %w", commentID, err)
	}
	if parent == nil {
		return nil, models.Pagination{}, notFoundf("comment not found")
	}
	if parent.CampaignID != campaignID {
		return nil, models.Pagination{}, invalidArgumentf("comment does not belong to this campaign")
	}

	page, limit = normalizePage(page, limit)
	filters := repository.CommentFilters{
		ParentID:   &parent.ID,
		OnlyPublic: true,
		Limit:      limit,
		Offset:     (page - 1) * limit,
	}

	replies, total, err := s.fetchCommentPage(ctx, filters)
	if err != nil {
		return nil, models.Pagination{}, fmt.Errorf("failed to list replies for comment %s: %w", commentID, err)
	}
	return replies, paginationMeta(page, limit, total), nil
}

// fetchCommentPage loads one comment page and the matching total under a
// single filter predicate.
func (s *Service) fetchCommentPage(ctx context.Context, filters repository.CommentFilters) ([]*models.Comment, int64, error) {
	countFilters := filters
	countFilters.Limit = 0
	countFilters.Offset = 0

	return fetchPage(ctx,
		func(ctx context.Context) ([]*models.Comment, error) {
			return s.Comments.List(ctx, filters)
		},
		func(ctx context.Context) (int64, error) {
			return s.Comments.Count(ctx, countFilters)
		},
	)
}

// CreateCommentInput carries everything needed to post a comment.
type CreateCommentInput struct {
	CampaignID string
	AuthorID   string
	ParentID   *string
	Content    string
	IsPublic   bool
}

// CreateComment posts a comment against a campaign, optionally as a reply.
// A reply's parent must already exist and belong to the same campaign, which
// keeps every campaign's comment forest well formed.
func (s *Service) CreateComment(ctx context.Context, input CreateCommentInput) (*models.Comment, error) {
	content := strings.TrimSpace(input.Content)
	if content == "" {
		return nil, invalidArgumentf("comment content is required")
	}
	if utf8.RuneCountInString(content) > models.MaxCommentLength {
		return nil, invalidArgumentf("comment content exceeds %d characters", models.MaxCommentLength)
	}
	if strings.TrimSpace(input.AuthorID) == "" {
		return nil, invalidArgumentf("author id is required")
	}

	campaign, err := s.Campaigns.GetByID(ctx, input.CampaignID)
	if err != nil {
		return nil, fmt.Errorf("failed to lookup campaign %s: %w", input.CampaignID, err)
	}
	if campaign == nil {
		return nil, notFoundf("campaign not found")
	}

	author, err := s.Users.GetByID(ctx, input.AuthorID)
	if err != nil {
		return nil, fmt.Errorf("failed to lookup user %s: %w", input.AuthorID, err)
	}
	if author == nil {
		return nil, notFoundf("user not found")
	}

	if input.ParentID != nil {
		parent, err := s.Comments.GetByID(ctx, *input.ParentID)
		if err != nil {
			return nil, fmt.Errorf("failed to lookup parent comment %s: %w", *input.ParentID, err)
		}
		if parent == nil {
			return nil, notFoundf("parent comment not found")
		}
		if parent.CampaignID != input.CampaignID {
			return nil, invalidArgumentf("parent comment does not belong to this campaign")
		}
	}

	comment, err := s.Comments.Create(ctx, &models.Comment{
		CampaignID: input.CampaignID,
		AuthorID:   input.AuthorID,
		ParentID:   input.ParentID,
		Content:    content,
		IsPublic:   input.IsPublic,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create comment: %w", err)
	}
	if comment.Author == nil {
		comment.Author = author.AsAuthor()
	}

	s.logger.Infof("Comment %s posted on campaign %s by %s", comment.ID, campaign.ID, author.DisplayName())
	if s.notifier != nil {
		s.notifier.CommentPosted(campaign, comment)
	}
	return comment, nil
}
