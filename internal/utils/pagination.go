package utils

import (
	"strconv"

	"github.com/eventpulse/eventpulse-api/internal/constants"
	"github.com/gin-gonic/gin"
)

// PaginationParams holds the pagination parameters
type PaginationParams struct {
	Page   int
	Limit  int
	Offset int
}

// PaginationMeta is the meta block attached to every paginated response.
type PaginationMeta struct {
	Total       int64 `json:"total"`
	PerPage     int   `json:"perPage"`
	CurrentPage int   `json:"currentPage"`
	LastPage    int   `json:"lastPage"`
	HasMore     bool  `json:"hasMorePages"`
	IsEmpty     bool  `json:"isEmpty"`
}

// NewPaginationMeta derives a consistent meta block from a total row count
// and the effective pagination parameters.
func NewPaginationMeta(total int64, page, limit int) PaginationMeta {
	lastPage := int(total) / limit
	if int(total)%limit > 0 {
		lastPage++
	}
	if lastPage < 1 {
		lastPage = 1
	}

	return PaginationMeta{
		Total:       total,
		PerPage:     limit,
		CurrentPage: page,
		LastPage:    lastPage,
		HasMore:     page < lastPage,
		IsEmpty:     total == 0,
	}
}

// GetPaginationParams extracts and validates pagination parameters from the request.
// Out-of-range values fall back to the defaults; the limit ceiling is the one
// documented silent clamp.
func GetPaginationParams(c *gin.Context) PaginationParams {
	page, _ := strconv.Atoi(c.DefaultQuery("page", strconv.Itoa(constants.MinPage)))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", strconv.Itoa(constants.DefaultPageSize)))

	return NormalizePagination(page, limit)
}

// NormalizePagination bounds page and limit and computes the offset.
func NormalizePagination(page, limit int) PaginationParams {
	if page < constants.MinPage {
		page = constants.MinPage
	}
	if limit <= 0 {
		limit = constants.DefaultPageSize
	}
	if limit > constants.MaxPageSize {
		limit = constants.MaxPageSize
	}

	return PaginationParams{
		Page:   page,
		Limit:  limit,
		Offset: (page - 1) * limit,
	}
}
