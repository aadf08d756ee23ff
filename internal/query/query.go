// Package query turns page/limit/sort request parameters into bounded,
// ordered list queries shared by every collection endpoint.
package query

import (
	"fmt"
	"strings"

	"fleetwatch-backend/internal/apperr"
)

const (
	DefaultPage  = 1
	DefaultLimit = 10

	defaultOrderColumn = "timestamp"
)

// sortableColumns maps the API-visible sort field names onto store columns.
// Anything outside this list is rejected so arbitrary input never reaches an
// ORDER BY clause.
var sortableColumns = map[string]string{
	"id":        "id",
	"timestamp": "timestamp",
	"type":      "type",
	"severity":  "severity",
	"status":    "status",
}

// ListQuery is a resolved, bounded list request. OrderColumn is always one of
// sortableColumns' values.
type ListQuery struct {
	Offset          int
	Limit           int
	OrderColumn     string
	OrderDescending bool
}

// Resolve builds a ListQuery from a 1-based page, a positive limit and an
// optional "field[:asc|desc]" sort token. An empty sort orders by timestamp
// descending; a missing or malformed direction token falls back to
// descending.
func Resolve(page, limit int, sort string) (ListQuery, error) {
	if page < 1 {
		return ListQuery{}, fmt.Errorf("%w: page must be at least 1, got %d", apperr.ErrInvalidArgument, page)
	}
	if limit < 1 {
		return ListQuery{}, fmt.Errorf("%w: limit must be at least 1, got %d", apperr.ErrInvalidArgument, limit)
	}

	column := defaultOrderColumn
	descending := true

	if sort != "" {
		parts := strings.SplitN(sort, ":", 2)
		mapped, ok := sortableColumns[parts[0]]
		if !ok {
			return ListQuery{}, fmt.Errorf("%w: cannot sort by %q", apperr.ErrInvalidArgument, parts[0])
		}
		column = mapped
		if len(parts) == 2 && strings.EqualFold(parts[1], "asc") {
			descending = false
		}
	}

	return ListQuery{
		Offset:          (page - 1) * limit,
		Limit:           limit,
		OrderColumn:     column,
		OrderDescending: descending,
	}, nil
}

// OrderClause renders the ORDER BY expression. Safe to interpolate because
// OrderColumn only ever holds allow-listed column names.
func (q ListQuery) OrderClause() string {
	if q.OrderDescending {
		return q.OrderColumn + " DESC"
	}
	return q.OrderColumn + " ASC"
}
