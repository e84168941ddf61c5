package httpapi

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/avolkov/microblog/internal/common"
	"github.com/avolkov/microblog/internal/server/models"
	"github.com/avolkov/microblog/internal/server/services"
)

type postRequest struct {
	Title   string `json:"title"`
	Content string `json:"content"`
	Author  string `json:"author"`
}

// GET /api/posts?skip=0&take=20
func (s *Server) handleListPosts(w http.ResponseWriter, r *http.Request) {
	skip := queryInt(r, "skip", 0)
	take := queryInt(r, "take", services.ListTakeDefault)

	posts, err := s.posts.List(r.Context(), skip, take)
	if err != nil {
		s.logger.Error(r.Context(), "listing posts failed", "error", err.Error())
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}
	if posts == nil {
		posts = []*models.Post{}
	}
	writeJSON(w, http.StatusOK, posts)
}

// GET /api/posts/{id}
func (s *Server) handleGetPost(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	post, err := s.posts.Get(r.Context(), id)
	if err != nil {
		s.respondPostError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, post)
}

// POST /api/posts
func (s *Server) handleCreatePost(w http.ResponseWriter, r *http.Request) {
	var req postRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	claims := claimsFromContext(r.Context())

	post, err := s.posts.Create(r.Context(), req.Title, req.Content, req.Author, claims.UniqueName)
	if err != nil {
		s.respondPostError(w, r, err)
		return
	}

	w.Header().Set("Location", fmt.Sprintf("/api/posts/%d", post.ID))
	writeJSON(w, http.StatusCreated, post)
}

// PUT /api/posts/{id}
func (s *Server) handleUpdatePost(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	var req postRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	post, err := s.posts.Update(r.Context(), id, req.Title, req.Content, req.Author)
	if err != nil {
		s.respondPostError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, post)
}

// DELETE /api/posts/{id}
func (s *Server) handleDeletePost(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	if err := s.posts.Delete(r.Context(), id); err != nil {
		s.respondPostError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) respondPostError(w http.ResponseWriter, r *http.Request, err error) {
	var ve *services.ValidationError
	switch {
	case errors.As(err, &ve):
		writeValidationError(w, ve)
	case errors.Is(err, common.ErrorNotFound):
		writeError(w, http.StatusNotFound, "not found")
	default:
		s.logger.Error(r.Context(), "posts operation failed", "error", err.Error())
		writeError(w, http.StatusInternalServerError, "internal error")
	}
}

// pathID parses the {id} route parameter; a non-numeric id is a not-found,
// matching the route constraint behavior.
func pathID(w http.ResponseWriter, r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		writeError(w, http.StatusNotFound, "not found")
		return 0, false
	}
	return id, true
}

func queryInt(r *http.Request, name string, def int) int {
	v := r.URL.Query().Get(name)
	if v == "" {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return def
	}
	return n
}
