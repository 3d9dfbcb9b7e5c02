package models

import "time"

// MaxCommentLength is the longest comment content accepted, in runes.
const MaxCommentLength = 2000

// Comment represents one user post attached to a campaign. A nil ParentID
// marks a top-level comment; replies reference another comment of the same
// campaign, forming a forest per campaign.
type Comment struct {
	ID         string    `json:"id" db:"id"`
	CampaignID string    `json:"campaignId" db:"campaign_id"`
	AuthorID   string    `json:"-" db:"author_id"`
	ParentID   *string   `json:"parentId,omitempty" db:"parent_id"`
	Content    string    `json:"content" db:"content"`
	IsPublic   bool      `json:"-" db:"is_public"`
	CreatedAt  time.Time `json:"createdAt" db:"created_at"`
	UpdatedAt  time.Time `json:"updatedAt" db:"updated_at"`

	// Author and RepliesCount are populated on read paths. RepliesCount
	// counts immediate public children only, never deeper descendants.
	Author       *Author `json:"author,omitempty"`
	RepliesCount int64   `json:"repliesCount"`
}

// IsReply returns true if the comment is a reply to another comment.
func (c *Comment) IsReply() bool {
	return c.ParentID != nil
}
