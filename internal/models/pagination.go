package models

type Pagination struct {
	Page  int64 `json:"page"`
	Limit int64 `json:"limit"`
	Total int64 `json:"total"`
	Pages int64 `json:"pages"`
}

func NewPagination(page, limit, total int64) Pagination {
	pages := total / limit
	if total%limit != 0 {
		pages++
	}
	return Pagination{Page: page, Limit: limit, Total: total, Pages: pages}
}
