package app

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/movielib/movie-catalog-service/internal/domain"
)

func (app *Application) RateMovie(w http.ResponseWriter, r *http.Request) {
	movieId, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		app.badRequestResponse(w, r, errors.New("invalid movie ID"))
		return
	}

	var input RateMovieRequest

	err = app.readJSON(w, r, &input)
	if err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	err = app.validator.Struct(input)
	if err != nil {
		app.failedValidationResponse(w, r, err)
		return
	}

	err = app.ratings.Rate(r.Context(), movieId, input.Rating, app.contextGetUserId(r))
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrRecordNotFound):
			app.notFoundResponse(w, r)
		default:
			var validationErr domain.ValidationError
			if errors.As(err, &validationErr) {
				app.failedValidationResponse(w, r, err)
				return
			}

			app.serverErrorResponse(w, r, err)
		}

		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (app *Application) DeleteRating(w http.ResponseWriter, r *http.Request) {
	movieId, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		app.badRequestResponse(w, r, errors.New("invalid movie ID"))
		return
	}

	err = app.ratings.Delete(r.Context(), movieId, app.contextGetUserId(r))
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrRecordNotFound):
			app.notFoundResponse(w, r)
		default:
			app.serverErrorResponse(w, r, err)
		}

		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (app *Application) GetUserRatings(w http.ResponseWriter, r *http.Request) {
	ratings, err := app.ratings.GetForUser(r.Context(), app.contextGetUserId(r))
	if err != nil {
		app.serverErrorResponse(w, r, err)
		return
	}

	ratingResponses := make([]MovieRatingResponse, len(ratings))
	for i, rating := range ratings {
		ratingResponses[i] = MovieRatingResponse{
			MovieId: rating.MovieID,
			Slug:    rating.Slug,
			Title:   rating.Title,
			Rating:  rating.Value,
		}
	}

	err = app.writeJSON(w, http.StatusOK, UserRatingsResponse{Ratings: ratingResponses}, nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}
