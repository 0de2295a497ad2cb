package request

import "movie-booking/pkg/utils"

type PaginatedRequest struct {
	Page    int `json:"page"`
	PerPage int `json:"per_page"`
}

// Normalize clamps Page and PerPage into range.
func (p PaginatedRequest) Normalize() PaginatedRequest {
	p.Page, p.PerPage = utils.NormalizePage(p.Page, p.PerPage)
	return p
}

func (p PaginatedRequest) Offset() int {
	return utils.CalculateOffset(p.Page, p.PerPage)
}
