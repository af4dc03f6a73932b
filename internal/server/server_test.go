package server

import (
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"filmorate/internal/cache"
	"filmorate/internal/config"
	"filmorate/internal/models"
	"filmorate/internal/repository"
	"filmorate/internal/service"

	"github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestServer(t *testing.T) *Server {
	t.Helper()
	cache.SetClient(nil)
	films := repository.NewFilmRepository(repository.NewSequence())
	users := repository.NewUserRepository(repository.NewSequence())
	cfg := &config.Config{Port: "0", Env: "test"}
	return NewServer(cfg, service.NewFilmService(films, users), service.NewUserService(users))
}

func do(t *testing.T, s *Server, method, path, body string) (*http.Response, []byte) {
	t.Helper()
	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	resp, err := s.App().Test(req, -1)
	require.NoError(t, err)
	defer func() { _ = resp.Body.Close() }()
	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp, raw
}

func TestCatalogueFlow(t *testing.T) {
	s := newTestServer(t)

	resp, raw := do(t, s, http.MethodPost, "/films",
		`{"name":"Matrix","description":"Neo","releaseDate":"1999-03-31","duration":136}`)
	require.Equal(t, http.StatusCreated, resp.StatusCode, string(raw))
	var film models.Film
	require.NoError(t, json.Unmarshal(raw, &film))
	assert.Equal(t, int64(1), film.ID)
	assert.Equal(t, "1999-03-31", film.ReleaseDate.String())

	resp, raw = do(t, s, http.MethodPost, "/users", `{"email":"b@x.io","login":"bob"}`)
	require.Equal(t, http.StatusCreated, resp.StatusCode, string(raw))
	var bob models.User
	require.NoError(t, json.Unmarshal(raw, &bob))
	assert.Equal(t, "bob", bob.Name)

	resp, raw = do(t, s, http.MethodPut, "/films/1/like/1", "")
	require.Equal(t, http.StatusOK, resp.StatusCode, string(raw))
	assert.Contains(t, string(raw), `"likes":[1]`)

	resp, raw = do(t, s, http.MethodGet, "/films/popular?count=1", "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var popular []models.Film
	require.NoError(t, json.Unmarshal(raw, &popular))
	require.Len(t, popular, 1)
	assert.Equal(t, 1, popular[0].LikeCount())

	resp, _ = do(t, s, http.MethodDelete, "/films/1/like/1", "")
	assert.Equal(t, http.StatusNoContent, resp.StatusCode)

	resp, _ = do(t, s, http.MethodDelete, "/films/1", "")
	assert.Equal(t, http.StatusNoContent, resp.StatusCode)
	resp, _ = do(t, s, http.MethodDelete, "/films/1", "")
	assert.Equal(t, http.StatusNoContent, resp.StatusCode)

	resp, _ = do(t, s, http.MethodGet, "/films/1", "")
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestCreateFilmValidation(t *testing.T) {
	s := newTestServer(t)

	tests := []struct {
		name string
		body string
	}{
		{"blank name", `{"name":" ","releaseDate":"2000-01-01","duration":10}`},
		{"too early", `{"name":"Old","releaseDate":"1800-01-01","duration":10}`},
		{"zero duration", `{"name":"Short","releaseDate":"2000-01-01","duration":0}`},
		{"long description", `{"name":"Long","description":"` + strings.Repeat("x", 201) + `","releaseDate":"2000-01-01","duration":10}`},
		{"bad date", `{"name":"Bad","releaseDate":"01.01.2000","duration":10}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp, raw := do(t, s, http.MethodPost, "/films", tt.body)
			assert.Equal(t, http.StatusBadRequest, resp.StatusCode, string(raw))
		})
	}

	resp, raw := do(t, s, http.MethodPost, "/films",
		`{"name":"Matrix","releaseDate":"1999-03-31","duration":136}`)
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	assert.Contains(t, string(raw), `"id":1`)
}

func TestFriendshipRoutes(t *testing.T) {
	s := newTestServer(t)
	for _, login := range []string{"alice", "bob", "carol"} {
		resp, raw := do(t, s, http.MethodPost, "/users", `{"email":"`+login+`@x.io","login":"`+login+`"}`)
		require.Equal(t, http.StatusCreated, resp.StatusCode, string(raw))
	}

	resp, _ := do(t, s, http.MethodPut, "/users/1/friends/2", "")
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	resp, _ = do(t, s, http.MethodPut, "/users/3/friends/2", "")
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	resp, _ = do(t, s, http.MethodPut, "/users/1/friends/1", "")
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	resp, _ = do(t, s, http.MethodPut, "/users/1/friends/9", "")
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)

	resp, raw := do(t, s, http.MethodGet, "/users/2/friends", "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var friends []models.User
	require.NoError(t, json.Unmarshal(raw, &friends))
	require.Len(t, friends, 2)
	assert.Equal(t, int64(1), friends[0].ID)
	assert.Equal(t, int64(3), friends[1].ID)

	resp, raw = do(t, s, http.MethodGet, "/users/1/friends/common/3", "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var common []models.User
	require.NoError(t, json.Unmarshal(raw, &common))
	require.Len(t, common, 1)
	assert.Equal(t, int64(2), common[0].ID)

	resp, _ = do(t, s, http.MethodDelete, "/users/1/friends/3", "")
	assert.Equal(t, http.StatusNoContent, resp.StatusCode)

	resp, _ = do(t, s, http.MethodGet, "/users/42/friends", "")
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestHealthAndMetrics(t *testing.T) {
	s := newTestServer(t)

	resp, raw := do(t, s, http.MethodGet, "/healthz", "")
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, string(raw), `"redis":"disabled"`)
	assert.NotEmpty(t, resp.Header.Get("X-Request-ID"))

	resp, raw = do(t, s, http.MethodGet, "/metrics", "")
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, string(raw), "filmorate")
}

func TestUnknownRoute(t *testing.T) {
	s := newTestServer(t)

	resp, raw := do(t, s, http.MethodGet, "/nope", "")
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	assert.Contains(t, string(raw), models.CodeNotFound)
}

func TestHumanizeParam(t *testing.T) {
	assert.Equal(t, "ID", humanizeParam("id"))
	assert.Equal(t, "user ID", humanizeParam("userId"))
	assert.Equal(t, "friend ID", humanizeParam("friendId"))
	assert.Equal(t, "other ID", humanizeParam("otherId"))
}
