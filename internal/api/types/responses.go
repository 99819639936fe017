package types

import (
	"encoding/json"
	"net/http"

	"github.com/proconnect/backend/internal/models"
)

// AuthResponse is returned by register and login.
type AuthResponse struct {
	AccessToken string       `json:"access_token"`
	User        *models.User `json:"user"`
}

// StatusResponse is the health probe body.
type StatusResponse struct {
	Status    string `json:"status"`
	Timestamp string `json:"timestamp"`
}

// APIError is the error envelope returned for all failed requests.
type APIError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

type errorBody struct {
	Error APIError `json:"error"`
}

// WriteJSON writes v as a JSON response with the given status.
func WriteJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// WriteErrorStr writes an error envelope with an explicit code and message.
func WriteErrorStr(w http.ResponseWriter, status int, code, msg string) {
	WriteJSON(w, status, errorBody{Error: APIError{Code: code, Message: msg}})
}
