// Package service holds the catalog and rating orchestration between the
// HTTP transport and the storage/cache collaborators.
package service

import (
	"context"
	"log/slog"

	"github.com/google/uuid"

	"github.com/movielib/movie-catalog-service/internal/cache"
	"github.com/movielib/movie-catalog-service/internal/domain"
)

// Evictor is the cache collaborator. Eviction is attempted synchronously
// after every successful movie mutation, but its failure never fails the
// write.
type Evictor interface {
	EvictByTag(ctx context.Context, tag string) error
}

// CatalogService is the sole writer of movie records.
type CatalogService struct {
	movies domain.MovieRepository
	cache  Evictor
	logger *slog.Logger
}

func NewCatalogService(movies domain.MovieRepository, evictor Evictor, logger *slog.Logger) *CatalogService {
	return &CatalogService{
		movies: movies,
		cache:  evictor,
		logger: logger,
	}
}

// Create assigns the movie a new id, derives its slug and persists it.
func (s *CatalogService) Create(ctx context.Context, movie *domain.Movie) (*domain.Movie, error) {
	if movie.Title == "" {
		return nil, domain.ValidationError{Field: "title", Message: "must not be empty"}
	}

	movie.ID = uuid.New()
	movie.Slug = domain.Slugify(movie.Title, movie.YearOfRelease)

	if err := s.movies.Create(ctx, movie); err != nil {
		return nil, err
	}

	s.evictListings(ctx)

	return movie, nil
}

// Get resolves a movie by either its uuid or its slug: a token that parses
// as a uuid is looked up by id, anything else by exact slug match. The
// result carries the requesting user's own rating when userId is not
// uuid.Nil.
func (s *CatalogService) Get(ctx context.Context, idOrSlug string, userId uuid.UUID) (*domain.Movie, error) {
	if id, err := uuid.Parse(idOrSlug); err == nil {
		return s.movies.GetById(ctx, id, userId)
	}

	return s.movies.GetBySlug(ctx, idOrSlug, userId)
}

// GetAll returns one page of movies matching the options plus the total
// count of matches before paging.
func (s *CatalogService) GetAll(ctx context.Context, options domain.QueryOptions) ([]*domain.Movie, *domain.Metadata, error) {
	if err := options.Validate(); err != nil {
		return nil, nil, err
	}

	return s.movies.GetAll(ctx, options)
}

// Update rewrites the movie's title, release year and genres, re-deriving
// the slug from the new title/year pair. The id and creation time never
// change.
func (s *CatalogService) Update(ctx context.Context, movie *domain.Movie, userId uuid.UUID) (*domain.Movie, error) {
	if movie.Title == "" {
		return nil, domain.ValidationError{Field: "title", Message: "must not be empty"}
	}

	movie.Slug = domain.Slugify(movie.Title, movie.YearOfRelease)

	if err := s.movies.Update(ctx, movie); err != nil {
		return nil, err
	}

	s.evictListings(ctx)

	return s.movies.GetById(ctx, movie.ID, userId)
}

// Delete removes the movie and, through the storage layer, all of its
// ratings.
func (s *CatalogService) Delete(ctx context.Context, id uuid.UUID) error {
	if err := s.movies.Delete(ctx, id); err != nil {
		return err
	}

	s.evictListings(ctx)

	return nil
}

func (s *CatalogService) evictListings(ctx context.Context) {
	if err := s.cache.EvictByTag(ctx, cache.TagMovies); err != nil {
		s.logger.Warn("failed to evict cached movie listings", "tag", cache.TagMovies, "error", err)
	}
}
