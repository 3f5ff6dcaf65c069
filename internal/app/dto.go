package app

import (
	"time"

	"github.com/google/uuid"

	"github.com/movielib/movie-catalog-service/internal/domain"
)

type ErrorResponse struct {
	Message   string    `json:"message"`
	RequestId string    `json:"requestId"`
	Timestamp time.Time `json:"timestamp"`
}

type ValidationErrorResponse struct {
	Message          string                 `json:"message"`
	RequestId        string                 `json:"requestId"`
	Timestamp        time.Time              `json:"timestamp"`
	ValidationErrors []FieldValidationError `json:"validationErrors"`
}

type FieldValidationError struct {
	Field string `json:"field"`
	Issue string `json:"issue"`
}

type CreateMovieRequest struct {
	Title         string   `json:"title" validate:"required,max=500"`
	YearOfRelease int      `json:"yearOfRelease" validate:"required,releaseyear"`
	Genres        []string `json:"genres" validate:"required,min=1,dive,required,max=50"`
}

type UpdateMovieRequest struct {
	Title         string   `json:"title" validate:"required,max=500"`
	YearOfRelease int      `json:"yearOfRelease" validate:"required,releaseyear"`
	Genres        []string `json:"genres" validate:"required,min=1,dive,required,max=50"`
}

type RateMovieRequest struct {
	Rating int `json:"rating" validate:"gte=1,lte=5"`
}

type MovieResponse struct {
	Id            uuid.UUID `json:"id"`
	Title         string    `json:"title"`
	YearOfRelease int       `json:"yearOfRelease"`
	Genres        []string  `json:"genres"`
	Slug          string    `json:"slug"`
	Rating        *float64  `json:"rating,omitempty"`
	UserRating    *int      `json:"userRating,omitempty"`
}

type MovieListResponse struct {
	Movies   []MovieResponse `json:"movies"`
	Metadata *Metadata       `json:"metadata"`
}

type Metadata struct {
	CurrentPage  int `json:"currentPage"`
	FirstPage    int `json:"firstPage"`
	LastPage     int `json:"lastPage"`
	PageSize     int `json:"pageSize"`
	TotalRecords int `json:"totalRecords"`
}

type MovieRatingResponse struct {
	MovieId uuid.UUID `json:"movieId"`
	Slug    string    `json:"slug"`
	Title   string    `json:"title"`
	Rating  int       `json:"rating"`
}

type UserRatingsResponse struct {
	Ratings []MovieRatingResponse `json:"ratings"`
}

type HealthcheckResponse struct {
	Status     string     `json:"status"`
	SystemInfo SystemInfo `json:"systemInfo"`
}

type SystemInfo struct {
	Version     string `json:"version"`
	Environment string `json:"environment"`
}

func toMovieResponse(movie *domain.Movie) MovieResponse {
	resp := MovieResponse{
		Id:            movie.ID,
		Title:         movie.Title,
		YearOfRelease: movie.YearOfRelease,
		Genres:        movie.Genres,
		Slug:          movie.Slug,
		UserRating:    movie.UserRating,
	}

	if movie.Rating != nil {
		rating := movie.Rating.InexactFloat64()
		resp.Rating = &rating
	}

	return resp
}

func toApiMetadata(metadata *domain.Metadata) *Metadata {
	if metadata == nil {
		return nil
	}

	return &Metadata{
		CurrentPage:  metadata.CurrentPage,
		FirstPage:    metadata.FirstPage,
		LastPage:     metadata.LastPage,
		PageSize:     metadata.PageSize,
		TotalRecords: metadata.TotalRecords,
	}
}
