package main

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/snx/snx/internal/app"
	"github.com/snx/snx/internal/config"
	"github.com/snx/snx/internal/router"
	"github.com/snx/snx/internal/server"
)

func newBlogServer(t *testing.T) *server.Server {
	t.Helper()

	b := newBlog(zap.NewNop())
	table, err := app.BuildTable(b)
	require.NoError(t, err)
	return server.New(config.DefaultConfig(), table, b, zap.NewNop(), nil)
}

func do(s http.Handler, method, path, body string) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	s.ServeHTTP(rec, httptest.NewRequest(method, path, strings.NewReader(body)))
	return rec
}

func TestBlog_Routes(t *testing.T) {
	t.Parallel()

	s := newBlogServer(t)

	tests := []struct {
		method string
		path   string
		status int
		body   string
	}{
		{http.MethodGet, "/", http.StatusOK, `{"name":"blog"}`},
		{http.MethodGet, "/posts/1", http.StatusOK, `{"id":1,"title":"Hello","body":"First post.","comments":["Welcome!"]}`},
		{http.MethodGet, "/posts//1/", http.StatusOK, `{"id":1,"title":"Hello","body":"First post.","comments":["Welcome!"]}`},
		{http.MethodGet, "/posts/1/comments", http.StatusOK, `["Welcome!"]`},
		{http.MethodGet, "/static/css/site.css", http.StatusOK, `{"asset":"css/site.css"}`},
		{http.MethodGet, "/posts/99", http.StatusNotFound, ""},
		{http.MethodGet, "/posts/abc/comments", http.StatusNotFound, ""},
		{http.MethodGet, "/unknown", http.StatusNotFound, ""},
		{http.MethodDelete, "/posts/1", http.StatusNotFound, ""},
	}

	for _, tc := range tests {
		t.Run(tc.method+" "+tc.path, func(t *testing.T) {
			rec := do(s, tc.method, tc.path, "")
			assert.Equal(t, tc.status, rec.Code)
			if tc.body != "" {
				assert.JSONEq(t, tc.body, rec.Body.String())
			}
		})
	}
}

func TestBlog_CreatePost(t *testing.T) {
	t.Parallel()

	s := newBlogServer(t)

	rec := do(s, http.MethodPost, "/posts", `{"title":"New","body":"text"}`)
	require.Equal(t, http.StatusCreated, rec.Code)
	assert.JSONEq(t, `{"id":3,"title":"New","body":"text","comments":[]}`, rec.Body.String())

	rec = do(s, http.MethodGet, "/posts", "")
	require.Equal(t, http.StatusOK, rec.Code)
	var posts []post
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &posts))
	assert.Len(t, posts, 3)

	rec = do(s, http.MethodPost, "/posts", `{"body":"no title"}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	// GET-only route does not accept POST
	rec = do(s, http.MethodPost, "/posts/3", `{}`)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

// blockingWriter stalls the first Write until release is closed.
type blockingWriter struct {
	*httptest.ResponseRecorder
	started chan struct{}
	release chan struct{}
}

func (w *blockingWriter) Write(p []byte) (int, error) {
	close(w.started)
	<-w.release
	return w.ResponseRecorder.Write(p)
}

func TestBlog_SlowListDoesNotBlockCreate(t *testing.T) {
	t.Parallel()

	b := newBlog(zap.NewNop())
	table, err := app.BuildTable(b)
	require.NoError(t, err)

	slow := &blockingWriter{
		ResponseRecorder: httptest.NewRecorder(),
		started:          make(chan struct{}),
		release:          make(chan struct{}),
	}
	listDone := make(chan struct{})
	go func() {
		defer close(listDone)
		req := httptest.NewRequest(http.MethodGet, "/posts", nil)
		b.ServeRoute(slow, req, table.MatchRequest(req))
	}()
	<-slow.started

	created := make(chan int, 1)
	go func() {
		req := httptest.NewRequest(http.MethodPost, "/posts", strings.NewReader(`{"title":"t"}`))
		rec := httptest.NewRecorder()
		b.ServeRoute(rec, req, &router.MatchedRoute{Route: routeCreate, Params: map[string]string{}})
		created <- rec.Code
	}()

	select {
	case code := <-created:
		assert.Equal(t, http.StatusCreated, code)
	case <-time.After(2 * time.Second):
		t.Error("create blocked behind a slow list response")
	}

	close(slow.release)
	<-listDone
	assert.Equal(t, http.StatusOK, slow.Code)
}

func TestBlog_ListReturnsSnapshot(t *testing.T) {
	t.Parallel()

	b := newBlog(zap.NewNop())
	posts := b.list()
	posts[0].Title = "changed"

	assert.Equal(t, "Hello", b.list()[0].Title)
}
