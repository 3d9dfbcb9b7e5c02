package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/sumarplus/backend/internal/models"
	"github.com/sumarplus/backend/internal/repository"
	"github.com/sumarplus/backend/internal/repository/memory"
	"github.com/sumarplus/backend/pkg/logger"
)

type fixture struct {
	svc      *Service
	store    *memory.Store
	user     *models.User
	campaign *models.Campaign
	base     time.Time
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	store := memory.NewStore()
	svc := New(logger.New("error", "text"),
		store.Users(), store.Campaigns(), store.Comments(), store.Donations(), store.Categories())

	user, err := store.Users().Create(context.Background(), &models.User{
		Email:     "ana@example.org",
		FirstName: "Ana",
		LastName:  "Ruiz",
		UserType:  models.UserTypePerson,
		IsActive:  true,
	})
	require.NoError(t, err)

	campaign, err := store.Campaigns().Create(context.Background(), &models.Campaign{
		Title:      "Clean Water",
		GoalAmount: 500000,
		Currency:   "EUR",
		Status:     models.CampaignStatusActive,
		OwnerID:    user.ID,
	})
	require.NoError(t, err)

	return &fixture{
		svc:      svc,
		store:    store,
		user:     user,
		campaign: campaign,
		base:     time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC),
	}
}

// addComment inserts directly through the repository with a deterministic
// creation time so ordering assertions are stable.
func (f *fixture) addComment(t *testing.T, campaignID string, parentID *string, content string, public bool, offset time.Duration) *models.Comment {
	t.Helper()
	comment, err := f.store.Comments().Create(context.Background(), &models.Comment{
		CampaignID: campaignID,
		AuthorID:   f.user.ID,
		ParentID:   parentID,
		Content:    content,
		IsPublic:   public,
		CreatedAt:  f.base.Add(offset),
	})
	require.NoError(t, err)
	return comment
}

func TestListTopLevelComments_PaginationScenario(t *testing.T) {
	f := newFixture(t)
	for i := 0; i < 12; i++ {
		f.addComment(t, f.campaign.ID, nil, fmt.Sprintf("public %d", i), true, time.Duration(i)*time.Minute)
	}
	for i := 0; i < 3; i++ {
		f.addComment(t, f.campaign.ID, nil, fmt.Sprintf("private %d", i), false, time.Duration(100+i)*time.Minute)
	}

	comments, pagination, err := f.svc.ListTopLevelComments(context.Background(), f.campaign.ID, 1, 10)
	require.NoError(t, err)
	assert.Len(t, comments, 10)
	assert.Equal(t, int64(12), pagination.TotalCount)
	assert.Equal(t, 2, pagination.TotalPages)
	assert.True(t, pagination.HasNext)
	assert.False(t, pagination.HasPrev)

	comments, pagination, err = f.svc.ListTopLevelComments(context.Background(), f.campaign.ID, 2, 10)
	require.NoError(t, err)
	assert.Len(t, comments, 2)
	assert.False(t, pagination.HasNext)
	assert.True(t, pagination.HasPrev)
}

func TestListTopLevelComments_WalkReturnsEachExactlyOnce(t *testing.T) {
	f := newFixture(t)
	const total = 23
	for i := 0; i < total; i++ {
		f.addComment(t, f.campaign.ID, nil, fmt.Sprintf("comment %02d", i), true, time.Duration(i)*time.Second)
	}

	seen := make(map[string]int)
	var collected []*models.Comment
	for page := 1; ; page++ {
		comments, pagination, err := f.svc.ListTopLevelComments(context.Background(), f.campaign.ID, page, 5)
		require.NoError(t, err)
		for _, c := range comments {
			seen[c.ID]++
			collected = append(collected, c)
		}
		if !pagination.HasNext {
			assert.Equal(t, pagination.TotalPages, page)
			break
		}
	}

	assert.Len(t, seen, total)
	for id, n := range seen {
		assert.Equalf(t, 1, n, "comment %s returned %d times", id, n)
	}
	for i := 1; i < len(collected); i++ {
		assert.False(t, collected[i].CreatedAt.Before(collected[i-1].CreatedAt),
			"comments must be ordered by creation time ascending")
	}
}

func TestListTopLevelComments_ExcludesReplies(t *testing.T) {
	f := newFixture(t)
	top := f.addComment(t, f.campaign.ID, nil, "top", true, 0)
	f.addComment(t, f.campaign.ID, &top.ID, "reply", true, time.Minute)

	comments, pagination, err := f.svc.ListTopLevelComments(context.Background(), f.campaign.ID, 1, 10)
	require.NoError(t, err)
	require.Len(t, comments, 1)
	assert.Equal(t, top.ID, comments[0].ID)
	assert.Equal(t, int64(1), pagination.TotalCount)
}

func TestListTopLevelComments_RepliesCountImmediateChildrenOnly(t *testing.T) {
	f := newFixture(t)
	top := f.addComment(t, f.campaign.ID, nil, "top", true, 0)
	child1 := f.addComment(t, f.campaign.ID, &top.ID, "child 1", true, time.Minute)
	f.addComment(t, f.campaign.ID, &top.ID, "child 2", true, 2*time.Minute)
	f.addComment(t, f.campaign.ID, &top.ID, "hidden child", false, 3*time.Minute)
	f.addComment(t, f.campaign.ID, &child1.ID, "grandchild", true, 4*time.Minute)

	comments, _, err := f.svc.ListTopLevelComments(context.Background(), f.campaign.ID, 1, 10)
	require.NoError(t, err)
	require.Len(t, comments, 1)
	// Two public immediate children; the private child and the grandchild
	// are not counted.
	assert.Equal(t, int64(2), comments[0].RepliesCount)
}

func TestListTopLevelComments_AuthorAttached(t *testing.T) {
	f := newFixture(t)
	f.addComment(t, f.campaign.ID, nil, "hello", true, 0)

	comments, _, err := f.svc.ListTopLevelComments(context.Background(), f.campaign.ID, 1, 10)
	require.NoError(t, err)
	require.Len(t, comments, 1)
	require.NotNil(t, comments[0].Author)
	assert.Equal(t, f.user.ID, comments[0].Author.ID)
	assert.Equal(t, "Ana", comments[0].Author.FirstName)
}

func TestListTopLevelComments_CampaignNotFound(t *testing.T) {
	f := newFixture(t)

	_, _, err := f.svc.ListTopLevelComments(context.Background(), "missing-campaign", 1, 10)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestListTopLevelComments_EmptyCampaignID(t *testing.T) {
	f := newFixture(t)

	_, _, err := f.svc.ListTopLevelComments(context.Background(), "  ", 1, 10)
	assert.ErrorIs(t, err, ErrInvalidArgument)
}

func TestListTopLevelComments_LimitClampedAndDefaults(t *testing.T) {
	f := newFixture(t)
	f.addComment(t, f.campaign.ID, nil, "one", true, 0)

	_, pagination, err := f.svc.ListTopLevelComments(context.Background(), f.campaign.ID, 1, 500)
	require.NoError(t, err)
	assert.Equal(t, 50, pagination.Limit)

	_, pagination, err = f.svc.ListTopLevelComments(context.Background(), f.campaign.ID, 0, 0)
	require.NoError(t, err)
	assert.Equal(t, 1, pagination.Page)
	assert.Equal(t, 10, pagination.Limit)
}

func TestListTopLevelComments_PersistenceFailure(t *testing.T) {
	campaignRepo := new(repository.MockCampaignRepository)
	campaignRepo.On("GetByID", mock.Anything, "c1").Return(nil, errors.New("connection refused"))

	store := memory.NewStore()
	svc := New(logger.New("error", "text"),
		store.Users(), campaignRepo, store.Comments(), store.Donations(), store.Categories())

	_, _, err := svc.ListTopLevelComments(context.Background(), "c1", 1, 10)
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrNotFound)
	assert.NotErrorIs(t, err, ErrInvalidArgument)
	campaignRepo.AssertExpectations(t)
}

func TestListReplies_Scenario(t *testing.T) {
	f := newFixture(t)
	parent := f.addComment(t, f.campaign.ID, nil, "parent", true, 0)
	first := f.addComment(t, f.campaign.ID, &parent.ID, "first reply", true, time.Minute)
	second := f.addComment(t, f.campaign.ID, &parent.ID, "second reply", true, 2*time.Minute)
	f.addComment(t, f.campaign.ID, &parent.ID, "private reply", false, 3*time.Minute)

	replies, pagination, err := f.svc.ListReplies(context.Background(), f.campaign.ID, parent.ID, 1, 10)
	require.NoError(t, err)
	require.Len(t, replies, 2)
	assert.Equal(t, first.ID, replies[0].ID)
	assert.Equal(t, second.ID, replies[1].ID)
	assert.Equal(t, int64(2), pagination.TotalCount)
	assert.False(t, pagination.HasNext)
}

func TestListReplies_NestedRepliesCarryOwnCounts(t *testing.T) {
	f := newFixture(t)
	parent := f.addComment(t, f.campaign.ID, nil, "parent", true, 0)
	child := f.addComment(t, f.campaign.ID, &parent.ID, "child", true, time.Minute)
	f.addComment(t, f.campaign.ID, &child.ID, "grandchild", true, 2*time.Minute)

	replies, _, err := f.svc.ListReplies(context.Background(), f.campaign.ID, parent.ID, 1, 10)
	require.NoError(t, err)
	require.Len(t, replies, 1)
	// The child's own immediate public children are visible, enabling
	// deeper expansion through repeated calls.
	assert.Equal(t, int64(1), replies[0].RepliesCount)
}

func TestListReplies_CommentNotFound(t *testing.T) {
	f := newFixture(t)

	_, _, err := f.svc.ListReplies(context.Background(), f.campaign.ID, "missing-comment", 1, 10)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestListReplies_WrongCampaignIsInvalidArgument(t *testing.T) {
	f := newFixture(t)
	other, err := f.store.Campaigns().Create(context.Background(), &models.Campaign{
		Title:      "Other Cause",
		GoalAmount: 1000,
		Status:     models.CampaignStatusActive,
		OwnerID:    f.user.ID,
	})
	require.NoError(t, err)
	parent := f.addComment(t, f.campaign.ID, nil, "parent", true, 0)

	_, _, err = f.svc.ListReplies(context.Background(), other.ID, parent.ID, 1, 10)
	assert.ErrorIs(t, err, ErrInvalidArgument)
	assert.NotErrorIs(t, err, ErrNotFound)
}

func TestListReplies_MissingCommentBeatsBadCampaign(t *testing.T) {
	f := newFixture(t)

	// Both identifiers are bad; the comment lookup is checked first.
	_, _, err := f.svc.ListReplies(context.Background(), "missing-campaign", "missing-comment", 1, 10)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestCreateComment(t *testing.T) {
	f := newFixture(t)

	comment, err := f.svc.CreateComment(context.Background(), CreateCommentInput{
		CampaignID: f.campaign.ID,
		AuthorID:   f.user.ID,
		Content:    "  great cause!  ",
		IsPublic:   true,
	})
	require.NoError(t, err)
	assert.Equal(t, "great cause!", comment.Content)
	assert.NotEmpty(t, comment.ID)
	require.NotNil(t, comment.Author)
	assert.Equal(t, f.user.ID, comment.Author.ID)
	assert.Nil(t, comment.ParentID)
}

func TestCreateComment_Reply(t *testing.T) {
	f := newFixture(t)
	parent := f.addComment(t, f.campaign.ID, nil, "parent", true, 0)

	reply, err := f.svc.CreateComment(context.Background(), CreateCommentInput{
		CampaignID: f.campaign.ID,
		AuthorID:   f.user.ID,
		ParentID:   &parent.ID,
		Content:    "me too",
		IsPublic:   true,
	})
	require.NoError(t, err)
	require.NotNil(t, reply.ParentID)
	assert.Equal(t, parent.ID, *reply.ParentID)
}

func TestCreateComment_Validation(t *testing.T) {
	f := newFixture(t)
	parent := f.addComment(t, f.campaign.ID, nil, "parent", true, 0)
	other, err := f.store.Campaigns().Create(context.Background(), &models.Campaign{
		Title:      "Other Cause",
		GoalAmount: 1000,
		Status:     models.CampaignStatusActive,
		OwnerID:    f.user.ID,
	})
	require.NoError(t, err)
	missing := "missing-parent"

	tests := []struct {
		name    string
		input   CreateCommentInput
		wantErr error
	}{
		{
			name:    "empty content",
			input:   CreateCommentInput{CampaignID: f.campaign.ID, AuthorID: f.user.ID, Content: "   "},
			wantErr: ErrInvalidArgument,
		},
		{
			name:    "content too long",
			input:   CreateCommentInput{CampaignID: f.campaign.ID, AuthorID: f.user.ID, Content: strings.Repeat("x", models.MaxCommentLength+1)},
			wantErr: ErrInvalidArgument,
		},
		{
			name:    "campaign missing",
			input:   CreateCommentInput{CampaignID: "missing-campaign", AuthorID: f.user.ID, Content: "hi"},
			wantErr: ErrNotFound,
		},
		{
			name:    "author missing",
			input:   CreateCommentInput{CampaignID: f.campaign.ID, AuthorID: "missing-user", Content: "hi"},
			wantErr: ErrNotFound,
		},
		{
			name:    "parent missing",
			input:   CreateCommentInput{CampaignID: f.campaign.ID, AuthorID: f.user.ID, ParentID: &missing, Content: "hi"},
			wantErr: ErrNotFound,
		},
		{
			name:    "parent from another campaign",
			input:   CreateCommentInput{CampaignID: other.ID, AuthorID: f.user.ID, ParentID: &parent.ID, Content: "hi"},
			wantErr: ErrInvalidArgument,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := f.svc.CreateComment(context.Background(), tt.input)
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}
