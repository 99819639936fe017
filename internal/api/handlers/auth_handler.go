package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/proconnect/backend/internal/api/middleware"
	"github.com/proconnect/backend/internal/api/types"
	"github.com/proconnect/backend/internal/api/validators"
	"github.com/proconnect/backend/internal/models"
	"github.com/proconnect/backend/internal/repository"
	"github.com/proconnect/backend/internal/services"
	appErr "github.com/proconnect/backend/pkg/errors"
)

type AuthHandler struct {
	auth  services.AuthService
	users repository.UserRepository
}

func NewAuthHandler(auth services.AuthService, users repository.UserRepository) *AuthHandler {
	return &AuthHandler{auth: auth, users: users}
}

func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req types.RegisterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		types.WriteErrorStr(w, http.StatusBadRequest, "invalid", "invalid json")
		return
	}
	if err := validators.New().Struct(req); err != nil {
		types.WriteErrorStr(w, http.StatusUnprocessableEntity, "unprocessable", err.Error())
		return
	}

	token, u, err := h.auth.Register(r.Context(), services.RegisterInput{
		Name:     req.Name,
		Email:    req.Email,
		Password: req.Password,
		Title:    req.Title,
		Bio:      req.Bio,
	})
	if err != nil {
		types.WriteAppError(w, err)
		return
	}
	types.WriteJSON(w, http.StatusCreated, types.AuthResponse{AccessToken: token, User: u})
}

func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req types.LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		types.WriteErrorStr(w, http.StatusBadRequest, "invalid", "invalid json")
		return
	}
	if err := validators.New().Struct(req); err != nil {
		types.WriteErrorStr(w, http.StatusUnprocessableEntity, "unprocessable", err.Error())
		return
	}

	token, u, err := h.auth.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		types.WriteAppError(w, err)
		return
	}
	types.WriteJSON(w, http.StatusOK, types.AuthResponse{AccessToken: token, User: u})
}

// IDByEmail resolves an email to a user id, returned as a bare JSON string.
func (h *AuthHandler) IDByEmail(w http.ResponseWriter, r *http.Request) {
	email := r.URL.Query().Get("email")
	if email == "" {
		types.WriteErrorStr(w, http.StatusUnprocessableEntity, "unprocessable", "email query parameter is required")
		return
	}
	var u models.User
	if err := h.users.GetByEmail(r.Context(), email, &u); err != nil {
		if appErr.IsCode(err, appErr.CodeNotFound) {
			types.WriteErrorStr(w, http.StatusNotFound, "not_found", "user not found")
			return
		}
		types.WriteAppError(w, err)
		return
	}
	types.WriteJSON(w, http.StatusOK, u.ID.String())
}

func (h *AuthHandler) Me(w http.ResponseWriter, r *http.Request) {
	types.WriteJSON(w, http.StatusOK, middleware.CurrentUser(r.Context()))
}
