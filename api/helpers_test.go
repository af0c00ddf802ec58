package api

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/rpupo63/blog-backend/database/memory"
	"github.com/stretchr/testify/require"
)

const testSecret = "test-secret"

type testEnv struct {
	t      *testing.T
	store  *memory.Store
	router http.Handler
	token  string
}

func newTestEnv(t *testing.T, store *memory.Store, extra map[string]string) *testEnv {
	t.Helper()
	c := map[string]string{
		"JWT_SECRET":       testSecret,
		"ACCEPTED_ORIGINS": "https://blog.example",
	}
	for k, v := range extra {
		c[k] = v
	}
	token, err := IssueAdminToken(testSecret, "admin", time.Hour)
	require.NoError(t, err)

	return &testEnv{
		t:      t,
		store:  store,
		router: newRouter(Dependencies{Store: store}, withConfig(c)),
		token:  token,
	}
}

func (e *testEnv) request(method, path string, body any, token string) *httptest.ResponseRecorder {
	e.t.Helper()
	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(e.t, err)
		reader = bytes.NewReader(raw)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	e.router.ServeHTTP(rec, req)
	return rec
}

func (e *testEnv) admin(method, path string, body any) *httptest.ResponseRecorder {
	e.t.Helper()
	return e.request(method, path, body, e.token)
}

func decodeBody[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var out T
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out), rec.Body.String())
	return out
}

func postBody(title string, categoryIDs ...string) PostRequest {
	if categoryIDs == nil {
		categoryIDs = []string{}
	}
	return PostRequest{
		Title:         title,
		Content:       "<b>Hello</b> world",
		CoverImageURL: "https://cdn.example/covers/a.png",
		CategoryIDs:   categoryIDs,
	}
}
