package domain

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

const (
	MinRating = 1
	MaxRating = 5
)

type Rating struct {
	MovieID   uuid.UUID
	UserID    uuid.UUID
	Value     int
	CreatedAt time.Time
	UpdatedAt time.Time
}

// MovieRating is a user's rating joined with enough movie context for display.
type MovieRating struct {
	MovieID uuid.UUID
	Slug    string
	Title   string
	Value   int
}

// AverageRating computes the arithmetic mean of a movie's current rating
// values, rounded to one decimal place. The second return is false when the
// set is empty: a movie with no ratings has no aggregate, not a zero one.
func AverageRating(values []int) (decimal.Decimal, bool) {
	if len(values) == 0 {
		return decimal.Decimal{}, false
	}

	sum := 0
	for _, v := range values {
		sum += v
	}

	mean := decimal.NewFromInt(int64(sum)).Div(decimal.NewFromInt(int64(len(values))))

	return mean.Round(1), true
}

type RatingRepository interface {
	Rate(ctx context.Context, movieId, userId uuid.UUID, value int) error
	Delete(ctx context.Context, movieId, userId uuid.UUID) error
	GetAllForUser(ctx context.Context, userId uuid.UUID) ([]MovieRating, error)
}
