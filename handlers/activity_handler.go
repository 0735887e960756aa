package handlers

import (
	"context"
	"encoding/json"
	"log"
	"net/http"
	"time"

	"github.com/gorilla/mux"

	"hydroTrackerAPI/internal/activity"
	"hydroTrackerAPI/middleware"
	"hydroTrackerAPI/services"
)

type ActivityHandler struct {
	activityService *services.ActivityService
}

func NewActivityHandler(activityService *services.ActivityService) *ActivityHandler {
	return &ActivityHandler{
		activityService: activityService,
	}
}

func (h *ActivityHandler) GetTodayActivities(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	clerkID, ok := middleware.GetClerkID(ctx)
	if !ok {
		respondWithError(w, http.StatusUnauthorized, "User not authenticated")
		return
	}

	loc, err := viewerLocation(r)
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid tz parameter")
		return
	}

	activities, err := h.activityService.GetTodayActivities(ctx, clerkID, loc)
	if err != nil {
		respondWithError(w, http.StatusInternalServerError, err.Error())
		return
	}

	respondWithJSON(w, http.StatusOK, activities)
}

func (h *ActivityHandler) CreateActivity(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	clerkID, ok := middleware.GetClerkID(ctx)
	if !ok {
		respondWithError(w, http.StatusUnauthorized, "User not authenticated")
		return
	}

	var req activity.CreateActivityRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Printf("CreateActivity Handler: Failed to decode request body: %v", err)
		respondWithError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	if msg, ok := validateActivityFields(req.ActivityType, req.Intensity, req.DurationMinutes); !ok {
		respondWithError(w, http.StatusBadRequest, msg)
		return
	}

	created, err := h.activityService.CreateActivity(ctx, clerkID, &req)
	if err != nil {
		log.Printf("CreateActivity Handler: Service error: %v", err)
		respondWithError(w, http.StatusInternalServerError, "Failed to create activity")
		return
	}

	respondWithJSON(w, http.StatusCreated, created)
}

func (h *ActivityHandler) UpdateActivity(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	clerkID, ok := middleware.GetClerkID(ctx)
	if !ok {
		respondWithError(w, http.StatusUnauthorized, "User not authenticated")
		return
	}

	activityID := mux.Vars(r)["id"]
	if activityID == "" {
		respondWithError(w, http.StatusBadRequest, "Activity id is required")
		return
	}

	var req activity.UpdateActivityRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	if msg, ok := validateActivityFields(req.ActivityType, req.Intensity, req.DurationMinutes); !ok {
		respondWithError(w, http.StatusBadRequest, msg)
		return
	}

	updated, err := h.activityService.UpdateActivity(ctx, clerkID, activityID, &req)
	if err != nil {
		if err.Error() == "activity not found" {
			respondWithError(w, http.StatusNotFound, err.Error())
			return
		}
		respondWithError(w, http.StatusInternalServerError, "Failed to update activity")
		return
	}

	respondWithJSON(w, http.StatusOK, updated)
}

func (h *ActivityHandler) DeleteActivity(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	clerkID, ok := middleware.GetClerkID(ctx)
	if !ok {
		respondWithError(w, http.StatusUnauthorized, "User not authenticated")
		return
	}

	activityID := mux.Vars(r)["id"]
	if activityID == "" {
		respondWithError(w, http.StatusBadRequest, "Activity id is required")
		return
	}

	if err := h.activityService.DeleteActivity(ctx, clerkID, activityID); err != nil {
		if err.Error() == "activity not found" {
			respondWithError(w, http.StatusNotFound, err.Error())
			return
		}
		respondWithError(w, http.StatusInternalServerError, "Failed to delete activity")
		return
	}

	respondWithJSON(w, http.StatusOK, map[string]string{"message": "Activity deleted successfully"})
}

// validateActivityFields enforces the form-level constraints before any
// service call. Unknown activity types and intensities are allowed through
// on purpose: the estimator degrades to table defaults.
func validateActivityFields(activityType, intensity string, durationMinutes int) (string, bool) {
	if activityType == "" {
		return "tipo_actividad is required", false
	}
	if intensity == "" {
		return "intensidad is required", false
	}
	if durationMinutes < 1 || durationMinutes > 1440 {
		return "duracion_minutos must be between 1 and 1440", false
	}
	return "", true
}
