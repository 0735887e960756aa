package handlers

import (
	"context"
	"encoding/json"
	"log"
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"

	"hydroTrackerAPI/internal/consumption"
	"hydroTrackerAPI/internal/hydration"
	"hydroTrackerAPI/middleware"
	"hydroTrackerAPI/services"
)

const (
	defaultPageSize = 50
	maxPageSize     = 200
)

type ConsumptionHandler struct {
	consumptionService *services.ConsumptionService
}

func NewConsumptionHandler(consumptionService *services.ConsumptionService) *ConsumptionHandler {
	return &ConsumptionHandler{
		consumptionService: consumptionService,
	}
}

// GetConsumptions serves GET /consumos/ with fecha_inicio, fecha_fin and
// pagination. Dates are local calendar days in the viewer's tz.
func (h *ConsumptionHandler) GetConsumptions(w http.ResponseWriter, r *http.Request) {
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

	q := r.URL.Query()
	from, err := parseDateParam(q.Get("fecha_inicio"), loc, time.Now().In(loc).AddDate(0, 0, -7))
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid fecha_inicio, expected YYYY-MM-DD")
		return
	}
	to, err := parseDateParam(q.Get("fecha_fin"), loc, time.Now().In(loc))
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid fecha_fin, expected YYYY-MM-DD")
		return
	}
	// fecha_fin is inclusive on the wire
	to = to.AddDate(0, 0, 1)

	page := 1
	if p := q.Get("page"); p != "" {
		if page, err = strconv.Atoi(p); err != nil || page < 1 {
			respondWithError(w, http.StatusBadRequest, "Invalid page")
			return
		}
	}
	pageSize := defaultPageSize
	if ps := q.Get("page_size"); ps != "" {
		if pageSize, err = strconv.Atoi(ps); err != nil || pageSize < 1 || pageSize > maxPageSize {
			respondWithError(w, http.StatusBadRequest, "Invalid page_size")
			return
		}
	}

	result, err := h.consumptionService.ListConsumptions(ctx, clerkID, from, to, page, pageSize)
	if err != nil {
		respondWithError(w, http.StatusInternalServerError, err.Error())
		return
	}

	respondWithJSON(w, http.StatusOK, result)
}

func (h *ConsumptionHandler) CreateConsumption(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	clerkID, ok := middleware.GetClerkID(ctx)
	if !ok {
		respondWithError(w, http.StatusUnauthorized, "User not authenticated")
		return
	}

	var req consumption.CreateConsumptionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Printf("CreateConsumption Handler: Failed to decode request body: %v", err)
		respondWithError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	if msg, ok := validateConsumptionFields(req.BeverageID, req.VolumeMl); !ok {
		respondWithError(w, http.StatusBadRequest, msg)
		return
	}

	created, err := h.consumptionService.CreateConsumption(ctx, clerkID, &req)
	if err != nil {
		if err.Error() == "beverage not found" {
			respondWithError(w, http.StatusNotFound, err.Error())
			return
		}
		log.Printf("CreateConsumption Handler: Service error: %v", err)
		respondWithError(w, http.StatusInternalServerError, "Failed to create consumption")
		return
	}

	respondWithJSON(w, http.StatusCreated, created)
}

func (h *ConsumptionHandler) UpdateConsumption(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	clerkID, ok := middleware.GetClerkID(ctx)
	if !ok {
		respondWithError(w, http.StatusUnauthorized, "User not authenticated")
		return
	}

	consumptionID := mux.Vars(r)["id"]
	if consumptionID == "" {
		respondWithError(w, http.StatusBadRequest, "Consumption id is required")
		return
	}

	var req consumption.UpdateConsumptionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	if msg, ok := validateConsumptionFields(req.BeverageID, req.VolumeMl); !ok {
		respondWithError(w, http.StatusBadRequest, msg)
		return
	}

	updated, err := h.consumptionService.UpdateConsumption(ctx, clerkID, consumptionID, &req)
	if err != nil {
		switch err.Error() {
		case "consumption not found", "beverage not found":
			respondWithError(w, http.StatusNotFound, err.Error())
		default:
			respondWithError(w, http.StatusInternalServerError, "Failed to update consumption")
		}
		return
	}

	respondWithJSON(w, http.StatusOK, updated)
}

func (h *ConsumptionHandler) DeleteConsumption(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	clerkID, ok := middleware.GetClerkID(ctx)
	if !ok {
		respondWithError(w, http.StatusUnauthorized, "User not authenticated")
		return
	}

	consumptionID := mux.Vars(r)["id"]
	if consumptionID == "" {
		respondWithError(w, http.StatusBadRequest, "Consumption id is required")
		return
	}

	if err := h.consumptionService.DeleteConsumption(ctx, clerkID, consumptionID); err != nil {
		if err.Error() == "consumption not found" {
			respondWithError(w, http.StatusNotFound, err.Error())
			return
		}
		respondWithError(w, http.StatusInternalServerError, "Failed to delete consumption")
		return
	}

	respondWithJSON(w, http.StatusOK, map[string]string{"message": "Consumption deleted successfully"})
}

// GetDailySummary serves GET /consumos/daily_summary/?fecha=YYYY-MM-DD.
func (h *ConsumptionHandler) GetDailySummary(w http.ResponseWriter, r *http.Request) {
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

	day, err := parseDateParam(r.URL.Query().Get("fecha"), loc, time.Now().In(loc))
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid fecha, expected YYYY-MM-DD")
		return
	}

	summary, err := h.consumptionService.DailySummary(ctx, clerkID, hydration.DateOf(day, loc), loc)
	if err != nil {
		log.Printf("GetDailySummary Handler: Service error: %v", err)
		respondWithError(w, http.StatusInternalServerError, "Failed to build daily summary")
		return
	}

	respondWithJSON(w, http.StatusOK, summary)
}

// GetTrends serves GET /consumos/trends/?period=daily|weekly|monthly|annual.
func (h *ConsumptionHandler) GetTrends(w http.ResponseWriter, r *http.Request) {
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

	period := hydration.Period(r.URL.Query().Get("period"))
	if !hydration.ValidPeriod(period) {
		respondWithError(w, http.StatusBadRequest, "period must be one of daily, weekly, monthly, annual")
		return
	}

	buckets, err := h.consumptionService.Trends(ctx, clerkID, period, loc)
	if err != nil {
		respondWithError(w, http.StatusInternalServerError, err.Error())
		return
	}

	respondWithJSON(w, http.StatusOK, buckets)
}

func validateConsumptionFields(beverageID string, volumeMl float64) (string, bool) {
	if beverageID == "" {
		return "bebida_id is required", false
	}
	if volumeMl < 1 || volumeMl > 5000 {
		return "cantidad_ml must be between 1 and 5000", false
	}
	return "", true
}

// parseDateParam reads a YYYY-MM-DD value as midnight in loc, falling back
// to def's calendar day when empty.
func parseDateParam(value string, loc *time.Location, def time.Time) (time.Time, error) {
	if value == "" {
		return time.Date(def.Year(), def.Month(), def.Day(), 0, 0, 0, 0, loc), nil
	}
	return time.ParseInLocation("2006-01-02", value, loc)
}
