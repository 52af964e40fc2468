package pagination

import "github.com/payzen/payzen_backend/internal/core/domain"

const (
	DefaultPage  = 1
	DefaultLimit = 20
	MaxLimit     = 100
	// MaxPage keeps Offset well inside int range for any limit up to MaxLimit.
	MaxPage      = 1_000_000
)

// Normalize applies the default page and limit when they are not positive and caps
// them at MaxPage and MaxLimit.
func Normalize(page, limit int) (int, int) {
	if page <= 0 {
		page = DefaultPage
	}
	if page > MaxPage {
		page = MaxPage
	}
	if limit <= 0 {
		limit = DefaultLimit
	}
	if limit > MaxLimit {
		limit = MaxLimit
	}
	return page, limit
}

// Offset returns the row offset of a normalized page.
func Offset(page, limit int) int {
	return (page - 1) * limit
}

// TotalPages divides the total matching count by limit, rounding up.
func TotalPages(total, limit int) int {
	if total <= 0 || limit <= 0 {
		return 0
	}
	return (total + limit - 1) / limit
}

// NewPageInfo builds paging metadata for a normalized page over total matching rows.
func NewPageInfo(page, limit, total int) domain.PageInfo {
	totalPages := TotalPages(total, limit)
	info := domain.PageInfo{
		Page:            page,
		Limit:           limit,
		Count:           total,
		TotalPages:      totalPages,
		HasNextPage:     page < totalPages,
		HasPreviousPage: page > 1,
	}
	if info.HasNextPage {
		next := page + 1
		info.NextPage = &next
	}
	if info.HasPreviousPage {
		prev := page - 1
		info.PreviousPage = &prev
	}
	return info
}
