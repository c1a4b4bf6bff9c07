// Package admin holds the payload types shared by the user, role and permission services.
package admin

import (
	"strings"

	"github.com/rbac-admin/rbac-admin/internal/db/store"
)

// Pagination describes the page of a list result.
type Pagination struct {
	Page     int   `json:"page"`
	PageSize int   `json:"pageSize"`
	Total    int64 `json:"total"`
}

// Filters echoes the filters applied to a list.
type Filters struct {
	Search string `json:"search,omitempty"`
}

// ListResult is the payload of every list action.
type ListResult[T any] struct {
	Items      []T        `json:"items"`
	Pagination Pagination `json:"pagination"`
	Filters    Filters    `json:"filters"`
}

// NewListResult builds the payload of page, with items already converted for output.
func NewListResult[T, M any](page store.Page[M], q store.ListQuery, items []T) ListResult[T] {
	if items == nil {
		items = []T{}
	}

	return ListResult[T]{
		Items:      items,
		Pagination: Pagination{Page: page.Page, PageSize: store.PageSize, Total: page.Total},
		Filters:    Filters{Search: q.Search},
	}
}

// Result is the payload of every successful mutation.
type Result struct {
	Message  string `json:"message"`
	Redirect string `json:"redirect"`
}

// Query normalizes list parameters from a request.
func Query(search string, page int) store.ListQuery {
	return store.ListQuery{Search: strings.TrimSpace(search), Page: page}
}
