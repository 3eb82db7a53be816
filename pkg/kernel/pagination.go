package kernel

// PaginationOptions is a 1-based page request
type PaginationOptions struct {
	Page     int `json:"page"`
	PageSize int `json:"page_size"`
}

// Offset is the zero-based rank of the first item on the page
func (p PaginationOptions) Offset() int {
	return (p.Page - 1) * p.PageSize
}

// Valid reports whether both page and page size are at least 1
func (p PaginationOptions) Valid() bool {
	return p.Page >= 1 && p.PageSize >= 1
}
