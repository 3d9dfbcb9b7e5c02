package service

import (
	"context"

	"golang.org/x/sync/errgroup"

	"github.com/sumarplus/backend/internal/models"
)

const (
	// DefaultPage is used when the caller supplies no page number.
	DefaultPage = 1
	// DefaultLimit is used when the caller supplies no page size.
	DefaultLimit = 10
	// MaxLimit caps the page size regardless of caller input. The cap is
	// shared policy for every paginated listing.
	MaxLimit = 50
)

// normalizePage clamps a raw page/limit pair into the accepted range.
func normalizePage(page, limit int) (int, int) {
	if page < 1 {
		page = DefaultPage
	}
	if limit <= 0 {
		limit = DefaultLimit
	}
	if limit > MaxLimit {
		limit = MaxLimit
	}
	return page, limit
}

// paginationMeta derives the page metadata from a normalized page/limit pair
// and the total matching the same predicate.
func paginationMeta(page, limit int, total int64) models.Pagination {
	totalPages := int((total + int64(limit) - 1) / int64(limit))
	return models.Pagination{
		Page:       page,
		Limit:      limit,
		TotalCount: total,
		TotalPages: totalPages,
		HasNext:    page < totalPages,
		HasPrev:    page > 1,
	}
}

// fetchPage runs the page query and the count query concurrently; neither
// depends on the other's result. The pair is not snapshot-isolated: the
// count may move between the two reads, which at worst skews hasNext by one
// at a page boundary.
func fetchPage[T any](ctx context.Context, list func(context.Context) ([]T, error), count func(context.Context) (int64, error)) ([]T, int64, error) {
	var (
		items []T
		total int64
	)

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		items, err = list(ctx)
		return err
	})
	g.Go(func() error {
		var err error
		total, err = count(ctx)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, 0, err
	}
	return items, total, nil
}
