package models

// Pagination describes the position of one page within a larger result set.
// TotalCount is measured by an independent count query over the same filter
// predicate as the page itself.
type Pagination struct {
	Page       int   `json:"page"`
	Limit      int   `json:"limit"`
	TotalCount int64 `json:"totalCount"`
	TotalPages int   `json:"totalPages"`
	HasNext    bool  `json:"hasNext"`
	HasPrev    bool  `json:"hasPrev"`
}
