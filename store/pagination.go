package store

import (
	"context"
	"database/sql"
	"fmt"
)

const (
	DefaultPage    int64 = 1
	DefaultPerPage int64 = 10
	// MaxPerPage prevents excessive page sizes.
	MaxPerPage int64 = 100
)

// PaginationResult is one page of rows plus the totals computed against the
// unwindowed query.
type PaginationResult[T any] struct {
	Items      []T   `json:"items"`
	TotalItems int64 `json:"total_items"`
	TotalPages int64 `json:"total_pages"`
	Page       int64 `json:"page"`
	PerPage    int64 `json:"per_page"`
}

// PaginationDefaults normalizes raw pagination params: a missing page means
// the first page, a missing per-page means everything the cap allows, and
// both are clamped into range instead of erroring.
func PaginationDefaults(page, perPage *int64) (int64, int64) {
	p := DefaultPage
	if page != nil && *page > 1 {
		p = *page
	}

	pp := MaxPerPage
	if perPage != nil {
		pp = min(max(*perPage, 1), MaxPerPage)
	}

	return p, pp
}

// loadAndCountPages runs query (which must carry its own ORDER BY) windowed
// to one page, riding COUNT(*) OVER () alongside each row so the total comes
// back in the same round trip. scan must read the row's columns followed by
// the trailing total column.
func loadAndCountPages[T any](
	ctx context.Context,
	db *sql.DB,
	query string,
	args []any,
	page, perPage int64,
	scan func(rows *sql.Rows) (T, int64, error),
) (*PaginationResult[T], error) {
	offset := (page - 1) * perPage
	wrapped := fmt.Sprintf(
		"SELECT t.*, COUNT(*) OVER () AS total_items FROM (%s) t LIMIT $%d OFFSET $%d",
		query, len(args)+1, len(args)+2,
	)

	rows, err := db.QueryContext(ctx, wrapped, append(args, perPage, offset)...)
	if err != nil {
		return nil, storageError("paginated query", err)
	}
	defer rows.Close()

	items := make([]T, 0, perPage)
	var totalItems int64
	for rows.Next() {
		item, total, err := scan(rows)
		if err != nil {
			return nil, storageError("paginated scan", err)
		}
		totalItems = total
		items = append(items, item)
	}
	if err := rows.Err(); err != nil {
		return nil, storageError("paginated rows", err)
	}

	return &PaginationResult[T]{
		Items:      items,
		TotalItems: totalItems,
		TotalPages: TotalPages(totalItems, perPage),
		Page:       page,
		PerPage:    perPage,
	}, nil
}

// TotalPages is ceil(totalItems / perPage); an empty result set has zero
// pages.
func TotalPages(totalItems, perPage int64) int64 {
	return (totalItems + perPage - 1) / perPage
}
