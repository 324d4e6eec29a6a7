package request

import "hotel-reservation/pkg/utils"

type PaginatedRequest struct {
	Page    int `json:"page" validate:"min=1"`
	PerPage int `json:"per_page" validate:"min=1,max=100"`
}

// NewPaginatedRequest reads page and per_page query values, falling back to
// the first page of DefaultPerPage on anything unparsable.
func NewPaginatedRequest(page, perPage string) *PaginatedRequest {
	return &PaginatedRequest{
		Page:    utils.ParseInt(page, 1),
		PerPage: utils.ParseInt(perPage, utils.DefaultPerPage),
	}
}

func (p PaginatedRequest) Offset() int {
	if p.Page < 1 {
		return 0
	}
	return (p.Page - 1) * p.Limit()
}

func (p PaginatedRequest) Limit() int {
	switch {
	case p.PerPage < 1:
		return utils.DefaultPerPage
	case p.PerPage > utils.MaxPerPage:
		return utils.MaxPerPage
	default:
		return p.PerPage
	}
}
