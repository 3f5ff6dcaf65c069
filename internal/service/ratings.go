package service

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/movielib/movie-catalog-service/internal/domain"
)

// RatingService is the sole writer of rating records. Every write goes
// through the rating repository, which recomputes the movie's average in the
// same transaction.
type RatingService struct {
	ratings domain.RatingRepository
}

func NewRatingService(ratings domain.RatingRepository) *RatingService {
	return &RatingService{
		ratings: ratings,
	}
}

// Rate records the user's rating for the movie, overwriting any prior one.
// Values outside the allowed range are rejected before storage is touched.
func (s *RatingService) Rate(ctx context.Context, movieId uuid.UUID, value int, userId uuid.UUID) error {
	if value < domain.MinRating || value > domain.MaxRating {
		return domain.ValidationError{
			Field:   "rating",
			Message: fmt.Sprintf("must be between %d and %d", domain.MinRating, domain.MaxRating),
		}
	}

	return s.ratings.Rate(ctx, movieId, userId, value)
}

// Delete removes the user's rating for the movie. Deleting a rating that was
// never made succeeds; only a missing movie is reported as not found.
func (s *RatingService) Delete(ctx context.Context, movieId, userId uuid.UUID) error {
	return s.ratings.Delete(ctx, movieId, userId)
}

// GetForUser returns every rating the user has made, joined with the rated
// movie's id, slug and title.
func (s *RatingService) GetForUser(ctx context.Context, userId uuid.UUID) ([]domain.MovieRating, error) {
	return s.ratings.GetAllForUser(ctx, userId)
}
