package utils

import (
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/ideaboard/ideaboard-api/internal/constants"
)

// PaginationParams holds the pagination parameters
type PaginationParams struct {
	Page   int
	Limit  int
	Offset int
}

// PaginationResponse represents the pagination metadata in API responses
type PaginationResponse struct {
	TotalCount  int64 `json:"totalCount"`
	TotalPages  int   `json:"totalPages"`
	CurrentPage int   `json:"currentPage"`
	PerPage     int   `json:"perPage"`
}

// NewPaginationParams clamps page and limit: a page below 1 becomes 1, a page
// above MaxPage becomes MaxPage and a limit outside [MinPageSize, MaxPageSize]
// falls back to DefaultPageSize.
func NewPaginationParams(page, limit int) PaginationParams {
	if page < constants.MinPageSize {
		page = constants.MinPageSize
	}
	if page > constants.MaxPage {
		page = constants.MaxPage
	}
	if limit < constants.MinPageSize || limit > constants.MaxPageSize {
		limit = constants.DefaultPageSize
	}

	return PaginationParams{
		Page:   page,
		Limit:  limit,
		Offset: (page - 1) * limit,
	}
}

// GetPaginationParams extracts and validates pagination parameters from the request.
// "pages" is accepted as an alias of "page".
func GetPaginationParams(c *gin.Context) PaginationParams {
	pageStr := c.Query("page")
	if pageStr == "" {
		pageStr = c.DefaultQuery("pages", strconv.Itoa(constants.MinPageSize))
	}
	page, err := strconv.Atoi(pageStr)
	if err != nil {
		page = constants.MinPageSize
	}
	limit, err := strconv.Atoi(c.DefaultQuery("limit", strconv.Itoa(constants.DefaultPageSize)))
	if err != nil {
		limit = constants.DefaultPageSize
	}

	return NewPaginationParams(page, limit)
}

// TotalPages returns ceil(total/perPage).
func TotalPages(total int64, perPage int) int {
	if perPage <= 0 {
		return 0
	}
	pages := int(total) / perPage
	if int(total)%perPage > 0 {
		pages++
	}
	return pages
}

// NewPaginationResponse builds the pagination block for a listing.
func NewPaginationResponse(params PaginationParams, total int64) PaginationResponse {
	return PaginationResponse{
		TotalCount:  total,
		TotalPages:  TotalPages(total, params.Limit),
		CurrentPage: params.Page,
		PerPage:     params.Limit,
	}
}
