package handler

import (
	"net/http"

	"github.com/vortex/docx-api/internal/quota"
	"github.com/vortex/docx-api/pkg/response"
)

// UsageHandler serves GET /usage.
type UsageHandler struct {
	quota *quota.Tracker
}

// NewUsageHandler constructs a UsageHandler backed by tracker.
func NewUsageHandler(tracker *quota.Tracker) *UsageHandler {
	return &UsageHandler{quota: tracker}
}

// Get handles GET /usage?card_key=….
func (h *UsageHandler) Get(w http.ResponseWriter, r *http.Request) {
	cardKey := r.URL.Query().Get("card_key")
	if cardKey == "" {
		response.Error(w, http.StatusUnauthorized, "card_key is required")
		return
	}
	response.JSON(w, http.StatusOK, h.quota.Get(cardKey))
}
