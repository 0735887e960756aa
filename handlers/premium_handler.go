package handlers

import (
	"context"
	"errors"
	"net/http"
	"time"

	"hydroTrackerAPI/middleware"
	"hydroTrackerAPI/services"
)

type PremiumHandler struct {
	premiumService *services.PremiumService
}

func NewPremiumHandler(premiumService *services.PremiumService) *PremiumHandler {
	return &PremiumHandler{
		premiumService: premiumService,
	}
}

// GetGoal serves GET /premium/goal/, the personalized daily target merged
// into the dashboard's daily summary client-side.
func (h *PremiumHandler) GetGoal(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	clerkID, ok := middleware.GetClerkID(ctx)
	if !ok {
		respondWithError(w, http.StatusUnauthorized, "User not authenticated")
		return
	}

	goal, err := h.premiumService.GetPersonalizedGoal(ctx, clerkID)
	if err != nil {
		if errors.Is(err, services.ErrPremiumRequired) {
			respondWithError(w, http.StatusForbidden, "Premium subscription required")
			return
		}
		respondWithError(w, http.StatusInternalServerError, err.Error())
		return
	}

	respondWithJSON(w, http.StatusOK, goal)
}
