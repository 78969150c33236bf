package domain

// PageParams carries paging params forwarded to the commerce backend.
type PageParams struct {
	Page     int `json:"page"`
	PageSize int `json:"pageSize"`
}

// Normalize clamps paging params to sane backend defaults.
func (p PageParams) Normalize() PageParams {
	if p.Page < 1 {
		p.Page = 1
	}
	if p.PageSize < 1 || p.PageSize > 500 {
		p.PageSize = 100
	}
	return p
}
