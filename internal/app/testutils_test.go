package app

import (
	"bytes"
	"encoding/json"
	"io"
	"log/slog"
	"net/http/httptest"
	"testing"

	"github.com/movielib/movie-catalog-service/internal/domain"
	"github.com/movielib/movie-catalog-service/internal/mocks"
	"github.com/movielib/movie-catalog-service/internal/service"
	"github.com/movielib/movie-catalog-service/internal/validator"
)

func newTestApplication(movieRepo domain.MovieRepository, ratingRepo domain.RatingRepository, opts ...func(*Application)) *Application {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	app := &Application{
		config:    Config{Env: "test"},
		logger:    logger,
		validator: validator.NewValidator(),
		cache:     &mocks.MockListingCache{},
		catalog:   service.NewCatalogService(movieRepo, &mocks.MockEvictor{}, logger),
		ratings:   service.NewRatingService(ratingRepo),
	}

	for _, opt := range opts {
		opt(app)
	}

	return app
}

func executeRequest(t *testing.T, app *Application, method, url string, body any, headers map[string]string) *httptest.ResponseRecorder {
	t.Helper()

	var reader io.Reader
	if body != nil {
		jsonData, err := json.Marshal(body)
		if err != nil {
			t.Fatal(err)
		}
		reader = bytes.NewReader(jsonData)
	}

	r := httptest.NewRequest(method, url, reader)
	if body != nil {
		r.Header.Set("Content-Type", "application/json")
	}

	for k, v := range headers {
		r.Header.Set(k, v)
	}

	w := httptest.NewRecorder()
	app.Routes().ServeHTTP(w, r)

	return w
}

func checkValidationIssue(t *testing.T, w *httptest.ResponseRecorder, wantIssue string) {
	t.Helper()

	var resp ValidationErrorResponse
	if err := json.NewDecoder(w.Body).Decode(&resp); err != nil {
		t.Fatalf("failed to decode validation error response: %v", err)
	}

	for _, vErr := range resp.ValidationErrors {
		if vErr.Issue == wantIssue {
			return
		}
	}

	t.Errorf("expected validation issue %q not found in %+v", wantIssue, resp.ValidationErrors)
}

func ptr[T any](v T) *T {
	return &v
}
