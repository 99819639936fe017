package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/proconnect/backend/internal/api/types"
	"github.com/proconnect/backend/internal/models"
	"github.com/proconnect/backend/internal/repository"
	"github.com/proconnect/backend/internal/services"
)

type UsersHandler struct {
	users repository.UserRepository
	posts services.PostService
}

func NewUsersHandler(users repository.UserRepository, posts services.PostService) *UsersHandler {
	return &UsersHandler{users: users, posts: posts}
}

func (h *UsersHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		types.WriteErrorStr(w, http.StatusNotFound, "not_found", "user not found")
		return
	}
	var u models.User
	if err := h.users.GetByID(r.Context(), id, &u); err != nil {
		types.WriteErrorStr(w, http.StatusNotFound, "not_found", "user not found")
		return
	}
	types.WriteJSON(w, http.StatusOK, &u)
}

// Posts lists a user's posts newest-first, each joined with the author's
// public fields. An unknown user id simply yields an empty list.
func (h *UsersHandler) Posts(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		types.WriteJSON(w, http.StatusOK, []services.PostView{})
		return
	}
	views, err := h.posts.UserPosts(r.Context(), id)
	if err != nil {
		types.WriteAppError(w, err)
		return
	}
	types.WriteJSON(w, http.StatusOK, views)
}
