package server

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"wordbank/internal/model"
	"wordbank/internal/provider"
	"wordbank/internal/repository"
	"wordbank/internal/service"
)

func newTestServer(t *testing.T, dsn string) *httptest.Server {
	t.Helper()
	repo := repository.NewCategoryRepository(dsn, zap.NewNop())
	t.Cleanup(func() { repo.Close() })

	chain := provider.NewChain(zap.NewNop(), time.Second)
	refresh := service.NewRefreshService(repo, chain, service.DefaultTunables(), nil, zap.NewNop())
	categories := service.NewCategoryService(repo, refresh)

	srv := httptest.NewServer(New(categories, zap.NewNop()).Handler())
	t.Cleanup(srv.Close)
	return srv
}

func getCategories(t *testing.T, srv *httptest.Server, query string) (int, []model.Category) {
	t.Helper()
	resp, err := http.Get(srv.URL + "/categories" + query)
	require.NoError(t, err)
	defer resp.Body.Close()

	var records []model.Category
	if resp.StatusCode == http.StatusOK {
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&records))
	}
	return resp.StatusCode, records
}

func postCategory(t *testing.T, srv *httptest.Server, body string) (int, map[string]string) {
	t.Helper()
	resp, err := http.Post(srv.URL+"/categories", "application/json", bytes.NewBufferString(body))
	require.NoError(t, err)
	defer resp.Body.Close()

	var payload map[string]string
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&payload))
	return resp.StatusCode, payload
}

func TestGetCategories_RefreshesEmptyStore(t *testing.T) {
	srv := newTestServer(t, filepath.Join(t.TempDir(), "test.db"))

	status, records := getCategories(t, srv, "")
	require.Equal(t, http.StatusOK, status)
	assert.Len(t, records, 100, "default limit is 100 and an empty store refreshes to 100")
	for _, rec := range records {
		assert.NotEmpty(t, rec.ID)
		assert.NotEmpty(t, rec.Name)
		assert.Equal(t, provider.SourceFallback, rec.Source)
	}
}

func TestGetCategories_LimitHandling(t *testing.T) {
	srv := newTestServer(t, filepath.Join(t.TempDir(), "test.db"))

	status, records := getCategories(t, srv, "?limit=5")
	require.Equal(t, http.StatusOK, status)
	assert.Len(t, records, 5)

	// Non-numeric input falls back to the default of 100.
	status, records = getCategories(t, srv, "?limit=abc")
	require.Equal(t, http.StatusOK, status)
	assert.Len(t, records, 100)

	// Oversized input clamps to 1000; only 100 records exist.
	status, records = getCategories(t, srv, "?limit=50000")
	require.Equal(t, http.StatusOK, status)
	assert.Len(t, records, 100)

	status, records = getCategories(t, srv, "?limit=0")
	require.Equal(t, http.StatusOK, status)
	assert.Len(t, records, 1)
}

func TestPostCategories_CreateAndConflict(t *testing.T) {
	srv := newTestServer(t, filepath.Join(t.TempDir(), "test.db"))

	status, payload := postCategory(t, srv, `{"categoryName": "Dances", "words": ["waltz", "tango"]}`)
	require.Equal(t, http.StatusCreated, status)
	assert.NotEmpty(t, payload["insertedId"])

	status, payload = postCategory(t, srv, `{"categoryName": "Dances", "words": ["salsa"]}`)
	assert.Equal(t, http.StatusConflict, status)
	assert.NotEmpty(t, payload["error"])
}

func TestPostCategories_BadRequests(t *testing.T) {
	srv := newTestServer(t, filepath.Join(t.TempDir(), "test.db"))

	for label, body := range map[string]string{
		"malformed json": `{"categoryName": `,
		"missing name":   `{"words": ["a"]}`,
		"no words":       `{"categoryName": "x", "words": []}`,
		"too many words": tooManyWordsBody(),
	} {
		t.Run(label, func(t *testing.T) {
			status, payload := postCategory(t, srv, body)
			assert.Equal(t, http.StatusBadRequest, status)
			assert.NotEmpty(t, payload["error"])
		})
	}
}

func tooManyWordsBody() string {
	words := make([]string, 21)
	for i := range words {
		words[i] = "w"
	}
	payload, _ := json.Marshal(map[string]any{"categoryName": "big", "words": words})
	return string(payload)
}

func TestStoreNotReady_Returns503(t *testing.T) {
	// A directory dsn can never open, so every request sees NotReady.
	srv := newTestServer(t, t.TempDir())

	status, _ := getCategories(t, srv, "")
	assert.Equal(t, http.StatusServiceUnavailable, status)

	status, _ = postCategory(t, srv, `{"categoryName": "x", "words": ["y"]}`)
	assert.Equal(t, http.StatusServiceUnavailable, status)
}
