package api

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"github.com/rmarques/wishflix/internal/config"
	"github.com/rmarques/wishflix/internal/controllers"
	"github.com/rmarques/wishflix/internal/models"
	"github.com/rmarques/wishflix/internal/services/tmdb"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type testEnv struct {
	router http.Handler
	db     *models.Database
	cfg    *config.Config
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	// Fake TMDB backend.
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/search/movie":
			if r.URL.Query().Get("query") == "No Such Movie" {
				io.WriteString(w, `{"results":[]}`)
				return
			}
			io.WriteString(w, `{"results":[{"id":157336,"title":"Interstellar","overview":"Space.","release_date":"2014-11-05","genre_ids":[12,878]}]}`)
		case "/genre/movie/list":
			io.WriteString(w, `{"genres":[{"id":12,"name":"Adventure"},{"id":878,"name":"Science Fiction"}]}`)
		default:
			http.NotFound(w, r)
		}
	}))
	t.Cleanup(upstream.Close)

	cfg := &config.Config{
		TMDBAPIKey:    "test-key",
		TMDBBaseURL:   upstream.URL,
		BasicAuthUser: "user",
		BasicAuthPass: "secret",
		ServerPort:    "0",
	}

	logger := logrus.New()
	logger.SetOutput(io.Discard)

	db, err := models.NewDatabase(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	tmdbClient := tmdb.NewClient(cfg, logger)
	wishlist := controllers.NewWishlistController(db, tmdbClient, logger)
	catalog := controllers.NewCatalogController(db, logger)

	return &testEnv{
		router: NewRouter(cfg, db, wishlist, catalog, logger),
		db:     db,
		cfg:    cfg,
	}
}

func (e *testEnv) do(t *testing.T, method, path string, body interface{}, authed bool) *httptest.ResponseRecorder {
	t.Helper()

	var reqBody io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		require.NoError(t, err)
		reqBody = bytes.NewReader(data)
	}

	req := httptest.NewRequest(method, path, reqBody)
	if authed {
		req.SetBasicAuth(e.cfg.BasicAuthUser, e.cfg.BasicAuthPass)
	}

	rec := httptest.NewRecorder()
	e.router.ServeHTTP(rec, req)
	return rec
}

func decodeMovie(t *testing.T, rec *httptest.ResponseRecorder) *models.Movie {
	t.Helper()

	var movie models.Movie
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &movie))
	return &movie
}

func TestRouterRequiresAuth(t *testing.T) {
	env := newTestEnv(t)

	rec := env.do(t, http.MethodGet, "/movies", nil, false)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	req := httptest.NewRequest(http.MethodGet, "/movies", nil)
	req.SetBasicAuth("user", "wrong")
	rec = httptest.NewRecorder()
	env.router.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = env.do(t, http.MethodGet, "/movies", nil, true)
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestHealthEndpoint(t *testing.T) {
	env := newTestEnv(t)

	rec := env.do(t, http.MethodGet, "/health", nil, false)
	require.Equal(t, http.StatusOK, rec.Code)

	var response map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &response))
	assert.Equal(t, "healthy", response["status"])
}

func TestMovieLifecycleOverHTTP(t *testing.T) {
	env := newTestEnv(t)

	rec := env.do(t, http.MethodPost, "/movies", map[string]string{"title": "Interstellar"}, true)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	movie := decodeMovie(t, rec)
	assert.Equal(t, models.StateQueued, movie.State)
	assert.Equal(t, []string{"Adventure", "Science Fiction"}, movie.Genres)
	require.Len(t, movie.History, 1)

	// Duplicate title.
	rec = env.do(t, http.MethodPost, "/movies", map[string]string{"title": "Interstellar"}, true)
	assert.Equal(t, http.StatusConflict, rec.Code)

	// Unknown title upstream.
	rec = env.do(t, http.MethodPost, "/movies", map[string]string{"title": "No Such Movie"}, true)
	assert.Equal(t, http.StatusBadGateway, rec.Code)

	base := "/movies/" + movie.ID

	rec = env.do(t, http.MethodPatch, base+"/state", map[string]string{"state": "Watched"}, true)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, models.StateWatched, decodeMovie(t, rec).State)

	rec = env.do(t, http.MethodPatch, base+"/state", map[string]string{"state": "Recommended"}, true)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = env.do(t, http.MethodPatch, base+"/rating", map[string]float64{"rating": 4}, true)
	require.Equal(t, http.StatusOK, rec.Code)
	rated := decodeMovie(t, rec)
	require.NotNil(t, rated.Rating)
	assert.Equal(t, 4.0, *rated.Rating)
	assert.Equal(t, models.StateWatched, rated.State)

	rec = env.do(t, http.MethodPatch, base+"/rating", map[string]float64{"rating": 7}, true)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = env.do(t, http.MethodPatch, base+"/state", map[string]string{"state": "Rated"}, true)
	require.Equal(t, http.StatusOK, rec.Code)

	rec = env.do(t, http.MethodPatch, base+"/state", map[string]string{"state": "Recommended"}, true)
	require.Equal(t, http.StatusOK, rec.Code)

	rec = env.do(t, http.MethodGet, base+"/history", nil, true)
	require.Equal(t, http.StatusOK, rec.Code)
	var history []models.HistoryEntry
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &history))
	assert.Len(t, history, 5)

	rec = env.do(t, http.MethodGet, base, nil, true)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, models.StateRecommended, decodeMovie(t, rec).State)

	rec = env.do(t, http.MethodGet, "/movies/no-such-id", nil, true)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestListMoviesOverHTTP(t *testing.T) {
	env := newTestEnv(t)

	rec := env.do(t, http.MethodPost, "/movies", map[string]string{"title": "Interstellar"}, true)
	require.Equal(t, http.StatusCreated, rec.Code)

	rec = env.do(t, http.MethodGet, "/movies?page=1&limit=10&sortBy=title&sortOrder=desc", nil, true)
	require.Equal(t, http.StatusOK, rec.Code)

	var result controllers.ListResult
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &result))
	assert.Equal(t, 1, result.TotalMovies)
	assert.Equal(t, 1, result.CurrentPage)
	require.Len(t, result.Movies, 1)

	rec = env.do(t, http.MethodGet, "/movies?sortBy=bogus", nil, true)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestRequestLogPersisted(t *testing.T) {
	env := newTestEnv(t)

	rec := env.do(t, http.MethodPost, "/movies", map[string]string{"title": "Interstellar"}, true)
	require.Equal(t, http.StatusCreated, rec.Code)
	movie := decodeMovie(t, rec)

	rec = env.do(t, http.MethodGet, "/movies/"+movie.ID, nil, true)
	require.Equal(t, http.StatusOK, rec.Code)

	logs, err := env.db.GetRequestLogsByMovieID(movie.ID)
	require.NoError(t, err)
	require.NotEmpty(t, logs)
	assert.Equal(t, http.StatusOK, logs[0].StatusCode)
	assert.NotEmpty(t, logs[0].RequestID)
}
