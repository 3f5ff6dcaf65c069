package mocks

import (
	"context"

	"github.com/google/uuid"

	"github.com/movielib/movie-catalog-service/internal/domain"
)

type MockMovieRepo struct {
	domain.MovieRepository
	CreateFunc    func(ctx context.Context, movie *domain.Movie) error
	GetByIdFunc   func(ctx context.Context, id uuid.UUID, userId uuid.UUID) (*domain.Movie, error)
	GetBySlugFunc func(ctx context.Context, slug string, userId uuid.UUID) (*domain.Movie, error)
	GetAllFunc    func(ctx context.Context, options domain.QueryOptions) ([]*domain.Movie, *domain.Metadata, error)
	UpdateFunc    func(ctx context.Context, movie *domain.Movie) error
	DeleteFunc    func(ctx context.Context, id uuid.UUID) error
}

func (m *MockMovieRepo) Create(ctx context.Context, movie *domain.Movie) error {
	return m.CreateFunc(ctx, movie)
}

func (m *MockMovieRepo) GetById(ctx context.Context, id uuid.UUID, userId uuid.UUID) (*domain.Movie, error) {
	return m.GetByIdFunc(ctx, id, userId)
}

func (m *MockMovieRepo) GetBySlug(ctx context.Context, slug string, userId uuid.UUID) (*domain.Movie, error) {
	return m.GetBySlugFunc(ctx, slug, userId)
}

func (m *MockMovieRepo) GetAll(ctx context.Context, options domain.QueryOptions) ([]*domain.Movie, *domain.Metadata, error) {
	return m.GetAllFunc(ctx, options)
}

func (m *MockMovieRepo) Update(ctx context.Context, movie *domain.Movie) error {
	return m.UpdateFunc(ctx, movie)
}

func (m *MockMovieRepo) Delete(ctx context.Context, id uuid.UUID) error {
	return m.DeleteFunc(ctx, id)
}
