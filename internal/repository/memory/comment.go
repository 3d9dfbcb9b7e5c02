package memory

import (
	"context"
	"sort"

	"github.com/sumarplus/backend/internal/models"
	"github.com/sumarplus/backend/internal/repository"
)

type commentRepo struct {
	s *Store
}

func (r *commentRepo) Create(ctx context.Context, comment *models.Comment) (*models.Comment, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	c := *comment
	c.ID = ensureID(c.ID)
	c.CreatedAt = ensureTime(c.CreatedAt)
	c.UpdatedAt = c.CreatedAt

	rec := &commentRecord{comment: c, seq: r.s.seq.Inc()}
	r.s.comments[c.ID] = rec

	if c.ParentID != nil {
		r.s.children[*c.ParentID] = append(r.s.children[*c.ParentID], c.ID)
	} else {
		r.s.roots[c.CampaignID] = append(r.s.roots[c.CampaignID], c.ID)
	}

	out := r.enrich(rec)
	return &out, nil
}

func (r *commentRepo) GetByID(ctx context.Context, id string) (*models.Comment, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	rec, exists := r.s.comments[id]
	if !exists {
		return nil, nil
	}
	out := r.enrich(rec)
	return &out, nil
}

func (r *commentRepo) List(ctx context.Context, filters repository.CommentFilters) ([]*models.Comment, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	records := r.collect(filters)

	// Apply offset/limit on the already-ordered slice.
	start := filters.Offset
	if start > len(records) {
		start = len(records)
	}
	end := len(records)
	if filters.Limit > 0 && start+filters.Limit < end {
		end = start + filters.Limit
	}

	comments := make([]*models.Comment, 0, end-start)
	for _, rec := range records[start:end] {
		out := r.enrich(rec)
		comments = append(comments, &out)
	}
	return comments, nil
}

func (r *commentRepo) Count(ctx context.Context, filters repository.CommentFilters) (int64, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	return int64(len(r.collect(filters))), nil
}

// collect gathers every comment matching the filter predicate, ordered by
// creation time ascending with insertion sequence as tie-break. Callers must
// hold at least a read lock.
func (r *commentRepo) collect(filters repository.CommentFilters) []*commentRecord {
	var candidates []string
	switch {
	case filters.ParentID != nil:
		candidates = r.s.children[*filters.ParentID]
	case filters.TopLevelOnly && filters.CampaignID != "":
		candidates = r.s.roots[filters.CampaignID]
	default:
		candidates = make([]string, 0, len(r.s.comments))
		for id := range r.s.comments {
			candidates = append(candidates, id)
		}
	}

	var records []*commentRecord
	for _, id := range candidates {
		rec := r.s.comments[id]
		if rec == nil {
			continue
		}
		c := rec.comment
		if filters.CampaignID != "" && c.CampaignID != filters.CampaignID {
			continue
		}
		if filters.TopLevelOnly && c.ParentID != nil {
			continue
		}
		if filters.OnlyPublic && !c.IsPublic {
			continue
		}
		records = append(records, rec)
	}

	sort.SliceStable(records, func(i, j int) bool {
		if records[i].comment.CreatedAt.Equal(records[j].comment.CreatedAt) {
			return records[i].seq < records[j].seq
		}
		return records[i].comment.CreatedAt.Before(records[j].comment.CreatedAt)
	})
	return records
}

// enrich returns a copy of the record's comment with the author projection
// and the immediate public reply count attached, mirroring what the SQL
// implementation joins onto every row.
func (r *commentRepo) enrich(rec *commentRecord) models.Comment {
	out := rec.comment
	if user, exists := r.s.users[out.AuthorID]; exists {
		out.Author = user.AsAuthor()
	}
	var count int64
	for _, childID := range r.s.children[out.ID] {
		if child := r.s.comments[childID]; child != nil && child.comment.IsPublic {
			count++
		}
	}
	out.RepliesCount = count
	return out
}
