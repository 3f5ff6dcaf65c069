package domain

import (
	"fmt"

	"github.com/google/uuid"
)

const MaxPageSize = 25

type SortField string

const (
	SortFieldTitle SortField = "title"
	SortFieldYear  SortField = "year"
)

type SortKey struct {
	Field      SortField
	Descending bool
}

// QueryOptions describes a movie listing request. Title and Year filters are
// optional and combine with AND. UserID only decorates results with that
// user's own rating; it never filters them.
type QueryOptions struct {
	Title    string
	Year     *int
	Sort     []SortKey
	Page     int
	PageSize int
	UserID   uuid.UUID
}

// Validate rejects malformed paging and unknown sort fields before any
// storage call is made.
func (o QueryOptions) Validate() error {
	if o.Page < 1 {
		return ValidationError{Field: "page", Message: "must be greater than zero"}
	}
	if o.PageSize < 1 {
		return ValidationError{Field: "pageSize", Message: "must be greater than zero"}
	}
	if o.PageSize > MaxPageSize {
		return ValidationError{Field: "pageSize", Message: fmt.Sprintf("must be at most %d", MaxPageSize)}
	}

	for _, key := range o.Sort {
		switch key.Field {
		case SortFieldTitle, SortFieldYear:
		default:
			return ValidationError{Field: "sort", Message: fmt.Sprintf("unknown sort field %q", key.Field)}
		}
	}

	return nil
}

func (o QueryOptions) Limit() int {
	return o.PageSize
}

func (o QueryOptions) Offset() int {
	return (o.Page - 1) * o.PageSize
}
