package handlers

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"hydroTrackerAPI/middleware"
	"hydroTrackerAPI/services"
)

func authedRequest(method, target, body string) *http.Request {
	var r *http.Request
	if body == "" {
		r = httptest.NewRequest(method, target, nil)
	} else {
		r = httptest.NewRequest(method, target, strings.NewReader(body))
	}
	ctx := context.WithValue(r.Context(), middleware.ClerkIDKey, "user_test123")
	return r.WithContext(ctx)
}

func TestCreateActivityRequiresAuth(t *testing.T) {
	h := NewActivityHandler(services.NewActivityService(nil))

	w := httptest.NewRecorder()
	r := httptest.NewRequest("POST", "/api/v1/activities/", strings.NewReader(`{}`))
	h.CreateActivity(w, r)

	if w.Code != http.StatusUnauthorized {
		t.Errorf("expected 401, got %d", w.Code)
	}
}

func TestCreateActivityRejectsBadBody(t *testing.T) {
	h := NewActivityHandler(services.NewActivityService(nil))

	w := httptest.NewRecorder()
	h.CreateActivity(w, authedRequest("POST", "/api/v1/activities/", `{not json`))

	if w.Code != http.StatusBadRequest {
		t.Errorf("expected 400, got %d", w.Code)
	}
}

func TestCreateActivityValidatesDuration(t *testing.T) {
	h := NewActivityHandler(services.NewActivityService(nil))

	cases := []string{
		`{"tipo_actividad": "correr", "intensidad": "media", "duracion_minutos": 0}`,
		`{"tipo_actividad": "correr", "intensidad": "media", "duracion_minutos": -10}`,
		`{"tipo_actividad": "correr", "intensidad": "media", "duracion_minutos": 1441}`,
	}
	for _, body := range cases {
		w := httptest.NewRecorder()
		h.CreateActivity(w, authedRequest("POST", "/api/v1/activities/", body))
		if w.Code != http.StatusBadRequest {
			t.Errorf("body %s: expected 400, got %d", body, w.Code)
		}
	}
}

func TestCreateActivityValidatesRequiredFields(t *testing.T) {
	h := NewActivityHandler(services.NewActivityService(nil))

	w := httptest.NewRecorder()
	h.CreateActivity(w, authedRequest("POST", "/api/v1/activities/", `{"intensidad": "media", "duracion_minutos": 30}`))
	if w.Code != http.StatusBadRequest {
		t.Errorf("missing tipo_actividad: expected 400, got %d", w.Code)
	}

	w = httptest.NewRecorder()
	h.CreateActivity(w, authedRequest("POST", "/api/v1/activities/", `{"tipo_actividad": "correr", "duracion_minutos": 30}`))
	if w.Code != http.StatusBadRequest {
		t.Errorf("missing intensidad: expected 400, got %d", w.Code)
	}
}

func TestGetTodayActivitiesRejectsBadTimezone(t *testing.T) {
	h := NewActivityHandler(services.NewActivityService(nil))

	w := httptest.NewRecorder()
	h.GetTodayActivities(w, authedRequest("GET", "/api/v1/activities/today/?tz=Mars%2FOlympus", ""))

	if w.Code != http.StatusBadRequest {
		t.Errorf("expected 400, got %d", w.Code)
	}
}
