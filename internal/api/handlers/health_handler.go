package handlers

import (
	"net/http"
	"time"

	"github.com/proconnect/backend/internal/api/types"
)

type HealthHandler struct{}

func NewHealthHandler() *HealthHandler { return &HealthHandler{} }

// Status is the health probe: a static ok plus the current UTC time at
// second precision.
func (h *HealthHandler) Status(w http.ResponseWriter, r *http.Request) {
	types.WriteJSON(w, http.StatusOK, types.StatusResponse{
		Status:    "ok",
		Timestamp: time.Now().UTC().Truncate(time.Second).Format(time.RFC3339),
	})
}
