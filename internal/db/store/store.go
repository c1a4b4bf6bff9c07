// Package store persists users, roles, permissions and their join tables through gorm.
//
// Every method accepts a context and returns apperr typed errors for missing rows and unique
// collisions. Multi row mutations run inside a transaction; Transaction exposes one to callers
// that need to compose several mutations atomically.
package store

import (
	"context"
	"strings"

	"gorm.io/gorm"
)

// PageSize is the fixed number of items on one list page.
const PageSize = 6

// likeEscape is the ESCAPE character of search patterns.
const likeEscape = "!"

// Store wraps a gorm connection or transaction.
type Store struct {
	db *gorm.DB
}

// New creates a Store on top of db.
func New(db *gorm.DB) *Store {
	return &Store{db: db}
}

// DB returns the underlying gorm handle.
func (s *Store) DB() *gorm.DB {
	return s.db
}

// Transaction runs fn with a Store bound to a single database transaction.
// The transaction is rolled back when fn returns an error.
func (s *Store) Transaction(ctx context.Context, fn func(tx *Store) error) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&Store{db: tx})
	})
}

// ListQuery selects one page of a name filtered list.
type ListQuery struct {
	// Search is matched case-insensitively as a substring of the name. Empty means no filter.
	Search string
	// Page is 1 based, values below 1 are treated as 1.
	Page int
}

// PageNumber returns the normalized page number.
func (q ListQuery) PageNumber() int {
	if q.Page < 1 {
		return 1
	}

	return q.Page
}

// Page is one page of a list.
type Page[T any] struct {
	Items []T
	Total int64
	Page  int
}

// EscapeLike escapes the LIKE wildcards of s so it matches literally.
func EscapeLike(s string) string {
	return strings.NewReplacer(
		likeEscape, likeEscape+likeEscape,
		"%", likeEscape+"%",
		"_", likeEscape+"_",
	).Replace(s)
}

// searchName filters by a case-insensitive substring match on the name column.
func searchName(search string) func(*gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		if search == "" {
			return db
		}

		// both sides are lowered by the database, so engines that only fold ASCII stay consistent
		return db.Where("LOWER(name) LIKE LOWER(?) ESCAPE '"+likeEscape+"'", "%"+EscapeLike(search)+"%")
	}
}

// list loads one page of T, most recent first.
func list[T any](ctx context.Context, db *gorm.DB, q ListQuery, preload ...func(*gorm.DB) *gorm.DB) (Page[T], error) {
	page := Page[T]{Items: []T{}, Page: q.PageNumber()}

	query := func() *gorm.DB {
		return db.WithContext(ctx).Model(new(T)).Scopes(searchName(q.Search))
	}

	if err := query().Count(&page.Total).Error; err != nil {
		return page, err
	}

	// compared in pages so huge page numbers can not overflow the offset
	if page.Total == 0 || int64(page.Page-1) >= (page.Total+PageSize-1)/PageSize {
		return page, nil
	}

	err := query().
		Scopes(preload...).
		Order("created_at DESC").
		Order("id DESC").
		Offset((page.Page - 1) * PageSize).
		Limit(PageSize).
		Find(&page.Items).Error

	return page, err
}
