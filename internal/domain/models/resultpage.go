// internal/domain/models/resultpage.go
package models

// Pagination describes one page of a result set.
// Pages is always ceil(Total / Limit).
type Pagination struct {
	Page  int   `json:"page"`
	Limit int   `json:"limit"`
	Total int64 `json:"total"`
	Pages int   `json:"pages"`
}

// NewPagination builds a Pagination, deriving Pages from total and limit.
func NewPagination(page, limit int, total int64) Pagination {
	pages := 0
	if limit > 0 && total > 0 {
		pages = int((total + int64(limit) - 1) / int64(limit))
	}
	return Pagination{Page: page, Limit: limit, Total: total, Pages: pages}
}

// HasMore reports whether a page after this one exists.
func (p Pagination) HasMore() bool {
	return p.Page < p.Pages
}

// ResultPage is what the search and listing endpoints return.
type ResultPage struct {
	Opportunities []Opportunity `json:"opportunities"`
	Pagination    Pagination    `json:"pagination"`
}
