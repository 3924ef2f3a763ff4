package utils

import (
	"math"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func TestNewPaginationParams(t *testing.T) {
	tests := []struct {
		name       string
		page       int
		limit      int
		wantPage   int
		wantLimit  int
		wantOffset int
	}{
		{"defaults kept", 1, 10, 1, 10, 0},
		{"third page", 3, 5, 3, 5, 10},
		{"zero page clamps to first", 0, 10, 1, 10, 0},
		{"negative page clamps to first", -4, 10, 1, 10, 0},
		{"zero limit falls back", 2, 0, 2, 10, 10},
		{"negative limit falls back", 1, -1, 1, 10, 0},
		{"oversized limit falls back", 1, 1000, 1, 10, 0},
		{"max limit kept", 2, 100, 2, 100, 100},
		{"huge page capped", math.MaxInt, 100, 1_000_000, 100, 99_999_900},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			params := NewPaginationParams(tt.page, tt.limit)
			assert.Equal(t, tt.wantPage, params.Page)
			assert.Equal(t, tt.wantLimit, params.Limit)
			assert.Equal(t, tt.wantOffset, params.Offset)
		})
	}
}

func TestTotalPages(t *testing.T) {
	assert.Equal(t, 0, TotalPages(0, 10))
	assert.Equal(t, 1, TotalPages(1, 10))
	assert.Equal(t, 1, TotalPages(10, 10))
	assert.Equal(t, 2, TotalPages(11, 10))
	assert.Equal(t, 4, TotalPages(7, 2))
	assert.Equal(t, 0, TotalPages(7, 0))
}

func TestGetPaginationParams(t *testing.T) {
	gin.SetMode(gin.TestMode)

	tests := []struct {
		query     string
		wantPage  int
		wantLimit int
	}{
		{"", 1, 10},
		{"page=2&limit=5", 2, 5},
		{"pages=3&limit=4", 3, 4},
		{"page=2&pages=9", 2, 10},
		{"page=abc&limit=xyz", 1, 10},
		{"page=0&limit=0", 1, 10},
	}

	for _, tt := range tests {
		t.Run(tt.query, func(t *testing.T) {
			c, _ := gin.CreateTestContext(httptest.NewRecorder())
			c.Request = httptest.NewRequest("GET", "/?"+tt.query, nil)

			params := GetPaginationParams(c)
			assert.Equal(t, tt.wantPage, params.Page)
			assert.Equal(t, tt.wantLimit, params.Limit)
		})
	}
}

func TestNewPaginationResponse(t *testing.T) {
	resp := NewPaginationResponse(NewPaginationParams(2, 3), 7)
	assert.Equal(t, PaginationResponse{
		TotalCount:  7,
		TotalPages:  3,
		CurrentPage: 2,
		PerPage:     3,
	}, resp)
}
