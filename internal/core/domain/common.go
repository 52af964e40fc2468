package domain

import "time"

// AuditFields holds the standard timestamps for persisted domain entities.
type AuditFields struct {
	CreatedAt     time.Time `json:"createdAt"`
	LastUpdatedAt time.Time `json:"lastUpdatedAt"`
}

// PageInfo describes where a page sits inside the full set of matching rows.
type PageInfo struct {
	Page            int  `json:"page"`
	Limit           int  `json:"limit"`
	Count           int  `json:"count"` // total matching rows, not the page length
	TotalPages      int  `json:"totalPages"`
	HasNextPage     bool `json:"hasNextPage"`
	HasPreviousPage bool `json:"hasPreviousPage"`
	NextPage        *int `json:"nextPage"`
	PreviousPage    *int `json:"previousPage"`
}

// PagedResult is one page of items plus its paging metadata.
type PagedResult[T any] struct {
	Items []T `json:"items"`
	PageInfo
}
