package response

type Pagination struct {
	Page       int   `json:"page"`
	PageSize   int   `json:"page_size"`
	TotalPages int64 `json:"total_pages"`
	TotalItems int64 `json:"total_items"`
	HasMore    bool  `json:"has_more"`
	From       int   `json:"from"`
	To         int   `json:"to"`
}

// NewPagination describes page (1-based) of total items. From and To are
// 1-based and inclusive; both are 0 for an empty page.
func NewPagination(page, pageSize, total int) *Pagination {
	if pageSize < 1 {
		pageSize = 10
	}
	if page < 1 {
		page = 1
	}
	from := total
	if page-1 < total/pageSize+1 {
		from = min((page-1)*pageSize, total)
	}
	to := min(from+pageSize, total)
	p := &Pagination{
		Page:       page,
		PageSize:   pageSize,
		TotalPages: int64((total + pageSize - 1) / pageSize),
		TotalItems: int64(total),
		HasMore:    to < total,
	}
	if from < to {
		p.From = from + 1
		p.To = to
	}
	return p
}
