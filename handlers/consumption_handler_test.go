package handlers

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"hydroTrackerAPI/services"
)

func TestCreateConsumptionValidatesVolume(t *testing.T) {
	h := NewConsumptionHandler(services.NewConsumptionService(nil, nil))

	cases := []string{
		`{"bebida_id": "b1", "cantidad_ml": 0}`,
		`{"bebida_id": "b1", "cantidad_ml": -250}`,
		`{"bebida_id": "b1", "cantidad_ml": 5001}`,
	}
	for _, body := range cases {
		w := httptest.NewRecorder()
		h.CreateConsumption(w, authedRequest("POST", "/api/v1/consumos/", body))
		if w.Code != http.StatusBadRequest {
			t.Errorf("body %s: expected 400, got %d", body, w.Code)
		}
	}
}

func TestCreateConsumptionRequiresBeverage(t *testing.T) {
	h := NewConsumptionHandler(services.NewConsumptionService(nil, nil))

	w := httptest.NewRecorder()
	h.CreateConsumption(w, authedRequest("POST", "/api/v1/consumos/", `{"cantidad_ml": 250}`))

	if w.Code != http.StatusBadRequest {
		t.Errorf("expected 400, got %d", w.Code)
	}
}

func TestGetDailySummaryRejectsBadDate(t *testing.T) {
	h := NewConsumptionHandler(services.NewConsumptionService(nil, nil))

	w := httptest.NewRecorder()
	h.GetDailySummary(w, authedRequest("GET", "/api/v1/consumos/daily_summary/?fecha=10-03-2026", ""))

	if w.Code != http.StatusBadRequest {
		t.Errorf("expected 400, got %d", w.Code)
	}
}

func TestGetTrendsRejectsUnknownPeriod(t *testing.T) {
	h := NewConsumptionHandler(services.NewConsumptionService(nil, nil))

	w := httptest.NewRecorder()
	h.GetTrends(w, authedRequest("GET", "/api/v1/consumos/trends/?period=hourly", ""))

	if w.Code != http.StatusBadRequest {
		t.Errorf("expected 400, got %d", w.Code)
	}
}

func TestGetConsumptionsRejectsBadPagination(t *testing.T) {
	h := NewConsumptionHandler(services.NewConsumptionService(nil, nil))

	w := httptest.NewRecorder()
	h.GetConsumptions(w, authedRequest("GET", "/api/v1/consumos/?page=0", ""))
	if w.Code != http.StatusBadRequest {
		t.Errorf("page=0: expected 400, got %d", w.Code)
	}

	w = httptest.NewRecorder()
	h.GetConsumptions(w, authedRequest("GET", "/api/v1/consumos/?page_size=9999", ""))
	if w.Code != http.StatusBadRequest {
		t.Errorf("page_size=9999: expected 400, got %d", w.Code)
	}
}
