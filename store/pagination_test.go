package store

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func int64p(v int64) *int64 { return &v }

func TestPaginationDefaults(t *testing.T) {
	tests := []struct {
		name        string
		page        *int64
		perPage     *int64
		wantPage    int64
		wantPerPage int64
	}{
		{"both missing", nil, nil, 1, MaxPerPage},
		{"page missing", nil, int64p(10), 1, 10},
		{"per_page missing means everything allowed", int64p(3), nil, 3, MaxPerPage},
		{"page clamped up", int64p(0), int64p(10), 1, 10},
		{"negative page clamped", int64p(-5), int64p(10), 1, 10},
		{"per_page clamped to cap", int64p(1), int64p(1000), 1, MaxPerPage},
		{"per_page clamped up", int64p(1), int64p(0), 1, 1},
		{"in range untouched", int64p(4), int64p(25), 4, 25},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			page, perPage := PaginationDefaults(tt.page, tt.perPage)
			assert.Equal(t, tt.wantPage, page)
			assert.Equal(t, tt.wantPerPage, perPage)
		})
	}
}

func TestTotalPages(t *testing.T) {
	tests := []struct {
		totalItems int64
		perPage    int64
		want       int64
	}{
		{0, 10, 0},
		{1, 10, 1},
		{10, 10, 1},
		{11, 10, 2},
		{25, 10, 3},
		{100, 100, 1},
		{101, 100, 2},
		{7, 1, 7},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, TotalPages(tt.totalItems, tt.perPage),
			"total_items=%d per_page=%d", tt.totalItems, tt.perPage)
	}
}
