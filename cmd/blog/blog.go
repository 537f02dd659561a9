package main

import (
	"encoding/json"
	"net/http"
	"strconv"
	"sync"

	"go.uber.org/zap"

	"github.com/snx/snx/internal/router"
)

var (
	routeIndex    = router.Get("/")
	routePosts    = router.Get("/posts")
	routePost     = router.Get("/posts/:id")
	routeComments = router.Get("/posts/:id/comments")
	routeCreate   = router.Post("/posts")
	routeStatic   = router.Get("/static/*")
)

type post struct {
	ID       int      `json:"id"`
	Title    string   `json:"title"`
	Body     string   `json:"body"`
	Comments []string `json:"comments"`
}

type blog struct {
	logger *zap.Logger

	mu     sync.RWMutex
	posts  []post
	nextID int
}

func newBlog(logger *zap.Logger) *blog {
	return &blog{
		logger: logger,
		posts: []post{
			{ID: 1, Title: "Hello", Body: "First post.", Comments: []string{"Welcome!"}},
			{ID: 2, Title: "Routing", Body: "Static routes win over dynamic ones.", Comments: []string{}},
		},
		nextID: 3,
	}
}

func (b *blog) Routes(rb *router.Builder) {
	rb.AddMany(
		routeIndex,
		routePosts,
		routePost,
		routeComments,
		routeCreate,
		routeStatic,
	)
}

func (b *blog) ServeRoute(w http.ResponseWriter, r *http.Request, m *router.MatchedRoute) {
	switch m.Route {
	case routeIndex:
		writeJSON(w, http.StatusOK, map[string]string{"name": "blog"})
	case routePosts:
		writeJSON(w, http.StatusOK, b.list())
	case routePost:
		p, ok := b.find(m.Param("id"))
		if !ok {
			http.Error(w, "Not Found", http.StatusNotFound)
			return
		}
		writeJSON(w, http.StatusOK, p)
	case routeComments:
		p, ok := b.find(m.Param("id"))
		if !ok {
			http.Error(w, "Not Found", http.StatusNotFound)
			return
		}
		writeJSON(w, http.StatusOK, p.Comments)
	case routeCreate:
		b.create(w, r)
	case routeStatic:
		writeJSON(w, http.StatusOK, map[string]string{"asset": m.Wildcard})
	default:
		http.Error(w, "Not Found", http.StatusNotFound)
	}
}

// list returns a snapshot so encoding never holds the lock.
func (b *blog) list() []post {
	b.mu.RLock()
	defer b.mu.RUnlock()

	posts := make([]post, len(b.posts))
	copy(posts, b.posts)
	return posts
}

func (b *blog) find(rawID string) (post, bool) {
	id, err := strconv.Atoi(rawID)
	if err != nil {
		return post{}, false
	}

	b.mu.RLock()
	defer b.mu.RUnlock()

	for _, p := range b.posts {
		if p.ID == id {
			return p, true
		}
	}
	return post{}, false
}

func (b *blog) create(w http.ResponseWriter, r *http.Request) {
	var in struct {
		Title string `json:"title"`
		Body  string `json:"body"`
	}
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil || in.Title == "" {
		http.Error(w, "Bad Request", http.StatusBadRequest)
		return
	}

	b.mu.Lock()
	p := post{ID: b.nextID, Title: in.Title, Body: in.Body, Comments: []string{}}
	b.nextID++
	b.posts = append(b.posts, p)
	b.mu.Unlock()

	b.logger.Info("post created", zap.Int("id", p.ID))
	writeJSON(w, http.StatusCreated, p)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
