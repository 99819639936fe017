package handlers

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/proconnect/backend/internal/api/middleware"
	"github.com/proconnect/backend/internal/api/types"
	"github.com/proconnect/backend/internal/services"
)

type PostsHandler struct {
	posts services.PostService
}

func NewPostsHandler(posts services.PostService) *PostsHandler {
	return &PostsHandler{posts: posts}
}

func (h *PostsHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req types.ContentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		types.WriteErrorStr(w, http.StatusBadRequest, "invalid", "invalid json")
		return
	}
	caller := middleware.CurrentUser(r.Context())
	view, err := h.posts.CreatePost(r.Context(), caller.ID, req.Content)
	if err != nil {
		types.WriteAppError(w, err)
		return
	}
	types.WriteJSON(w, http.StatusCreated, view)
}

func (h *PostsHandler) List(w http.ResponseWriter, r *http.Request) {
	skip, limit := pagination(r, 0, 20)
	views, err := h.posts.Feed(r.Context(), skip, limit)
	if err != nil {
		types.WriteAppError(w, err)
		return
	}
	types.WriteJSON(w, http.StatusOK, views)
}

func (h *PostsHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := postID(w, r)
	if !ok {
		return
	}
	view, err := h.posts.GetPost(r.Context(), id)
	if err != nil {
		types.WriteAppError(w, err)
		return
	}
	types.WriteJSON(w, http.StatusOK, view)
}

func (h *PostsHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := postID(w, r)
	if !ok {
		return
	}
	caller := middleware.CurrentUser(r.Context())
	if err := h.posts.DeletePost(r.Context(), id, caller.ID); err != nil {
		types.WriteAppError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *PostsHandler) AddComment(w http.ResponseWriter, r *http.Request) {
	id, ok := postID(w, r)
	if !ok {
		return
	}
	var req types.ContentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		types.WriteErrorStr(w, http.StatusBadRequest, "invalid", "invalid json")
		return
	}
	caller := middleware.CurrentUser(r.Context())
	view, err := h.posts.AddComment(r.Context(), id, caller.ID, req.Content)
	if err != nil {
		types.WriteAppError(w, err)
		return
	}
	types.WriteJSON(w, http.StatusCreated, view)
}

func (h *PostsHandler) ListComments(w http.ResponseWriter, r *http.Request) {
	id, ok := postID(w, r)
	if !ok {
		return
	}
	skip, limit := pagination(r, 0, 100)
	views, err := h.posts.Comments(r.Context(), id, skip, limit)
	if err != nil {
		types.WriteAppError(w, err)
		return
	}
	types.WriteJSON(w, http.StatusOK, views)
}

func (h *PostsHandler) Like(w http.ResponseWriter, r *http.Request) {
	id, ok := postID(w, r)
	if !ok {
		return
	}
	caller := middleware.CurrentUser(r.Context())
	if err := h.posts.Like(r.Context(), id, caller.ID); err != nil {
		types.WriteAppError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *PostsHandler) Unlike(w http.ResponseWriter, r *http.Request) {
	id, ok := postID(w, r)
	if !ok {
		return
	}
	caller := middleware.CurrentUser(r.Context())
	if err := h.posts.Unlike(r.Context(), id, caller.ID); err != nil {
		types.WriteAppError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// postID parses the {id} URL param; malformed ids read as missing posts.
func postID(w http.ResponseWriter, r *http.Request) (uuid.UUID, bool) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		types.WriteErrorStr(w, http.StatusNotFound, "not_found", "post not found")
		return uuid.Nil, false
	}
	return id, true
}

func pagination(r *http.Request, defaultSkip, defaultLimit int) (int, int) {
	skip := defaultSkip
	limit := defaultLimit
	if s := r.URL.Query().Get("skip"); s != "" {
		if n, err := strconv.Atoi(s); err == nil && n >= 0 {
			skip = n
		}
	}
	if s := r.URL.Query().Get("limit"); s != "" {
		if n, err := strconv.Atoi(s); err == nil && n > 0 {
			limit = n
		}
	}
	return skip, limit
}
