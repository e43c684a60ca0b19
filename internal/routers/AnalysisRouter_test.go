package routers

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gorilla/mux"

	"SurveyPulse/internal/realtime"
	"SurveyPulse/pkg/jwt"
)

func TestWebsocketRoutesRejectMissingToken(t *testing.T) {
	mainRouter := mux.NewRouter()
	wsRouter := mainRouter.PathPrefix("/api/v1").Subrouter()
	RegisterWebsocketRoutes(wsRouter, realtime.NewHub())

	req := httptest.NewRequest(http.MethodGet, "/api/v1/ws/stats?analysisId=65f000000000000000000001", nil)
	rec := httptest.NewRecorder()

	mainRouter.ServeHTTP(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Errorf("expected 401 without a token, got %d", rec.Code)
	}
}

func TestWebsocketStatsAllowsAuthenticatedCaller(t *testing.T) {
	mainRouter := mux.NewRouter()
	wsRouter := mainRouter.PathPrefix("/api/v1").Subrouter()
	RegisterWebsocketRoutes(wsRouter, realtime.NewHub())

	token, err := jwt.GenerateToken("65f000000000000000000002", "owner@example.com")
	if err != nil {
		t.Fatalf("failed to generate token: %v", err)
	}

	req := httptest.NewRequest(http.MethodGet, "/api/v1/ws/stats?analysisId=65f000000000000000000001", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()

	mainRouter.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Errorf("expected 200 with a valid token, got %d", rec.Code)
	}
}
