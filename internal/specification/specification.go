// Package specification implements the query descriptor every read path is
// built on: a filter predicate, eager-load paths, at most one sort direction
// and optional paging, evaluated against a gorm query in one place so no
// caller hand-writes query logic.
package specification

import "gorm.io/gorm"

// Specification is an immutable query descriptor. The with-style builder
// methods return copies, so a named specification can be shared and extended
// safely.
type Specification struct {
	Criteria      string
	Args          []any
	Includes      []string
	OrderBy       string
	OrderByDesc   string
	Skip          int
	Take          int
	PagingEnabled bool
}

func New(criteria string, args ...any) Specification {
	return Specification{Criteria: criteria, Args: args}
}

// Include registers a navigation path for eager loading. Paths are applied in
// the order they were added.
func (s Specification) Include(path string) Specification {
	includes := make([]string, 0, len(s.Includes)+1)
	includes = append(includes, s.Includes...)
	s.Includes = append(includes, path)

	return s
}

// SortBy sets an ascending sort key. At most one sort direction is active:
// setting one clears the other.
func (s Specification) SortBy(column string) Specification {
	s.OrderBy = column
	s.OrderByDesc = ""

	return s
}

// SortByDesc sets a descending sort key, clearing any ascending key.
func (s Specification) SortByDesc(column string) Specification {
	s.OrderByDesc = column
	s.OrderBy = ""

	return s
}

// Paginate enables paging. Skip and take are ignored by Apply until this is
// called.
func (s Specification) Paginate(skip, take int) Specification {
	s.Skip = skip
	s.Take = take
	s.PagingEnabled = true

	return s
}

// CriteriaOnly strips sorting, paging and includes, keeping just the filter.
// Count queries use this so pagination never changes the reported total.
func (s Specification) CriteriaOnly() Specification {
	return Specification{Criteria: s.Criteria, Args: s.Args}
}

// Apply composes the specification onto a gorm query: criteria first, then
// the single active sort direction, then skip/take when paging is enabled,
// then every include in registration order. Includes attach related data via
// separate queries and never change which rows match.
func Apply(db *gorm.DB, spec Specification) *gorm.DB {
	if spec.Criteria != "" {
		db = db.Where(spec.Criteria, spec.Args...)
	}

	switch {
	case spec.OrderBy != "":
		db = db.Order(spec.OrderBy)
	case spec.OrderByDesc != "":
		db = db.Order(spec.OrderByDesc + " DESC")
	}

	if spec.PagingEnabled {
		db = db.Offset(spec.Skip).Limit(spec.Take)
	}

	for _, path := range spec.Includes {
		db = db.Preload(path)
	}

	return db
}
