package app

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/movielib/movie-catalog-service/internal/cache"
	"github.com/movielib/movie-catalog-service/internal/domain"
)

const (
	DefaultPage     = 1
	DefaultPageSize = 10
)

func (app *Application) CreateMovie(w http.ResponseWriter, r *http.Request) {
	var input CreateMovieRequest

	err := app.readJSON(w, r, &input)
	if err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	err = app.validator.Struct(input)
	if err != nil {
		app.failedValidationResponse(w, r, err)
		return
	}

	movie := domain.Movie{
		Title:         input.Title,
		YearOfRelease: input.YearOfRelease,
		Genres:        input.Genres,
	}

	created, err := app.catalog.Create(r.Context(), &movie)
	if err != nil {
		var validationErr domain.ValidationError
		if errors.As(err, &validationErr) {
			app.failedValidationResponse(w, r, err)
			return
		}

		app.serverErrorResponse(w, r, err)
		return
	}

	headers := http.Header{
		"Location": []string{fmt.Sprintf("/movies/%s", created.ID)},
	}

	err = app.writeJSON(w, http.StatusCreated, toMovieResponse(created), headers)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

func (app *Application) GetMovie(w http.ResponseWriter, r *http.Request) {
	idOrSlug := chi.URLParam(r, "idOrSlug")
	userId := app.contextGetUserId(r)

	movie, err := app.catalog.Get(r.Context(), idOrSlug, userId)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrRecordNotFound):
			app.notFoundResponse(w, r)
		default:
			app.serverErrorResponse(w, r, err)
		}

		return
	}

	err = app.writeJSON(w, http.StatusOK, toMovieResponse(movie), nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

func (app *Application) GetMovies(w http.ResponseWriter, r *http.Request) {
	options, err := app.parseQueryOptions(r)
	if err != nil {
		app.failedValidationResponse(w, r, err)
		return
	}

	cacheKey := listingCacheKey(options.UserID, r.URL.RawQuery)

	if payload, ok := app.cachedListing(r, cacheKey); ok {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		w.Write(payload)
		return
	}

	movies, metadata, err := app.catalog.GetAll(r.Context(), options)
	if err != nil {
		var validationErr domain.ValidationError
		if errors.As(err, &validationErr) {
			app.failedValidationResponse(w, r, err)
			return
		}

		app.serverErrorResponse(w, r, err)
		return
	}

	movieResponses := make([]MovieResponse, len(movies))
	for i, movie := range movies {
		movieResponses[i] = toMovieResponse(movie)
	}

	resp := MovieListResponse{
		Movies:   movieResponses,
		Metadata: toApiMetadata(metadata),
	}

	app.cacheListing(r, cacheKey, resp)

	err = app.writeJSON(w, http.StatusOK, resp, nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

func (app *Application) UpdateMovie(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		app.badRequestResponse(w, r, errors.New("invalid movie ID"))
		return
	}

	var input UpdateMovieRequest

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

	movie := domain.Movie{
		ID:            id,
		Title:         input.Title,
		YearOfRelease: input.YearOfRelease,
		Genres:        input.Genres,
	}

	updated, err := app.catalog.Update(r.Context(), &movie, app.contextGetUserId(r))
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

	err = app.writeJSON(w, http.StatusOK, toMovieResponse(updated), nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

func (app *Application) DeleteMovie(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		app.badRequestResponse(w, r, errors.New("invalid movie ID"))
		return
	}

	err = app.catalog.Delete(r.Context(), id)
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

func (app *Application) parseQueryOptions(r *http.Request) (domain.QueryOptions, error) {
	query := r.URL.Query()

	options := domain.QueryOptions{
		Title:    query.Get("title"),
		Page:     DefaultPage,
		PageSize: DefaultPageSize,
		UserID:   app.contextGetUserId(r),
	}

	if v := query.Get("year"); v != "" {
		year, err := strconv.Atoi(v)
		if err != nil {
			return options, domain.ValidationError{Field: "year", Message: "must be an integer"}
		}
		options.Year = &year
	}

	if v := query.Get("page"); v != "" {
		page, err := strconv.Atoi(v)
		if err != nil {
			return options, domain.ValidationError{Field: "page", Message: "must be an integer"}
		}
		options.Page = page
	}

	if v := query.Get("pageSize"); v != "" {
		pageSize, err := strconv.Atoi(v)
		if err != nil {
			return options, domain.ValidationError{Field: "pageSize", Message: "must be an integer"}
		}
		options.PageSize = pageSize
	}

	options.Sort = parseSortKeys(query.Get("sort"))

	return options, nil
}

// parseSortKeys turns "year,-title" into an ordered sort specification; a
// leading hyphen flips the key to descending. Unknown fields are caught by
// QueryOptions.Validate.
func parseSortKeys(raw string) []domain.SortKey {
	if raw == "" {
		return nil
	}

	var keys []domain.SortKey

	for _, part := range strings.Split(raw, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}

		key := domain.SortKey{Field: domain.SortField(strings.TrimPrefix(part, "-"))}
		key.Descending = strings.HasPrefix(part, "-")

		keys = append(keys, key)
	}

	return keys
}

// Cached listings are keyed per user because each user sees their own rating
// on the results. Every entry registers under the movies tag so any movie
// mutation drops the lot.
func listingCacheKey(userId uuid.UUID, rawQuery string) string {
	return fmt.Sprintf("cache:movies:%s:%s", userId, rawQuery)
}

func (app *Application) cachedListing(r *http.Request, key string) ([]byte, bool) {
	payload, ok, err := app.cache.Get(r.Context(), key)
	if err != nil {
		app.logger.Warn("failed to read cached movie listing", "key", key, "error", err)
		return nil, false
	}

	return payload, ok
}

func (app *Application) cacheListing(r *http.Request, key string, resp MovieListResponse) {
	payload, err := json.Marshal(resp)
	if err != nil {
		app.logger.Warn("failed to encode movie listing for cache", "key", key, "error", err)
		return
	}

	if err := app.cache.Set(r.Context(), key, payload, cache.TagMovies); err != nil {
		app.logger.Warn("failed to cache movie listing", "key", key, "error", err)
	}
}
