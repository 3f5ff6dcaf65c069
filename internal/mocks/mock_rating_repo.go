package mocks

import (
	"context"

	"github.com/google/uuid"

	"github.com/movielib/movie-catalog-service/internal/domain"
)

type MockRatingRepo struct {
	domain.RatingRepository
	RateFunc          func(ctx context.Context, movieId, userId uuid.UUID, value int) error
	DeleteFunc        func(ctx context.Context, movieId, userId uuid.UUID) error
	GetAllForUserFunc func(ctx context.Context, userId uuid.UUID) ([]domain.MovieRating, error)
}

func (m *MockRatingRepo) Rate(ctx context.Context, movieId, userId uuid.UUID, value int) error {
	return m.RateFunc(ctx, movieId, userId, value)
}

func (m *MockRatingRepo) Delete(ctx context.Context, movieId, userId uuid.UUID) error {
	return m.DeleteFunc(ctx, movieId, userId)
}

func (m *MockRatingRepo) GetAllForUser(ctx context.Context, userId uuid.UUID) ([]domain.MovieRating, error) {
	return m.GetAllForUserFunc(ctx, userId)
}
