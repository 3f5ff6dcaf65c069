package integration_test

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

// Fields whose values vary between runs are stripped before comparison:
// generated ids, request ids and timestamps.
var keysToIgnore = map[string]struct{}{
	"timestamp": {},
	"requestId": {},
	"createdAt": {},
	"updatedAt": {},
	"id":        {},
	"version":   {},
}

func prepareRequest(method, path string, body io.Reader, headers map[string]string) (*http.Request, error) {
	req := httptest.NewRequest(method, path, body)

	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	for k, v := range headers {
		req.Header.Set(k, v)
	}

	return req, nil
}

func newRecorder(t testing.TB, app *TestApp, req *http.Request) *httptest.ResponseRecorder {
	t.Helper()

	rec := httptest.NewRecorder()
	app.App.Routes().ServeHTTP(rec, req)

	return rec
}

func compareResponse(t testing.TB, body io.Reader, expectedResponse string) {
	var actual map[string]any
	require.NoError(t, json.NewDecoder(body).Decode(&actual))

	cleanMap(actual)

	var expected map[string]any
	require.NoError(t, json.Unmarshal([]byte(expectedResponse), &expected))

	opts := cmpopts.IgnoreMapEntries(func(k string, _ any) bool {
		_, ok := keysToIgnore[k]
		return ok
	})

	if diff := cmp.Diff(expected, actual, opts); diff != "" {
		t.Errorf("response mismatch (-want +got):\n%s", diff)
	}
}

func cleanMap(m map[string]any) {
	for k := range m {
		if _, ok := keysToIgnore[k]; ok {
			delete(m, k)
			continue
		}
		switch v := m[k].(type) {
		case map[string]any:
			cleanMap(v)
		case []any:
			for _, item := range v {
				if nested, ok := item.(map[string]any); ok {
					cleanMap(nested)
				}
			}
		}
	}
}

func insertMovie(t testing.TB, app *TestApp, title string, year int, slug string, genres []string) uuid.UUID {
	t.Helper()

	id := uuid.New()

	_, err := app.DB.Exec(context.Background(),
		`INSERT INTO movies (id, title, year_of_release, slug, genres) VALUES ($1, $2, $3, $4, $5)`,
		id, title, year, slug, genres)
	require.NoError(t, err)

	return id
}

func insertRating(t testing.TB, app *TestApp, movieId, userId uuid.UUID, value int) {
	t.Helper()

	_, err := app.DB.Exec(context.Background(),
		`INSERT INTO ratings (movie_id, user_id, value) VALUES ($1, $2, $3)
		 ON CONFLICT (movie_id, user_id) DO UPDATE SET value = EXCLUDED.value`,
		movieId, userId, value)
	require.NoError(t, err)
}

func movieAverage(t testing.TB, app *TestApp, movieId uuid.UUID) *float64 {
	t.Helper()

	var avg *float64
	err := app.DB.QueryRow(context.Background(),
		`SELECT avg_rating FROM movies WHERE id = $1`, movieId).Scan(&avg)
	require.NoError(t, err)

	return avg
}

func ratingCount(t testing.TB, app *TestApp, movieId uuid.UUID) int {
	t.Helper()

	var count int
	err := app.DB.QueryRow(context.Background(),
		`SELECT count(*) FROM ratings WHERE movie_id = $1`, movieId).Scan(&count)
	require.NoError(t, err)

	return count
}

func truncateTables(t testing.TB, app *TestApp) {
	t.Helper()

	_, err := app.DB.Exec(context.Background(), `TRUNCATE TABLE movies CASCADE`)
	require.NoError(t, err)

	require.NoError(t, app.Redis.FlushAll(context.Background()).Err())
}
